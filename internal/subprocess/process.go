package subprocess

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"sync"

	"github.com/wagiedev/msgpipe-go/internal/channel"
	"github.com/wagiedev/msgpipe-go/internal/config"
	"github.com/wagiedev/msgpipe-go/internal/errors"
	"github.com/wagiedev/msgpipe-go/internal/serializer"
)

// maxStderrLineSize is the maximum length of a forwarded stderr line.
const maxStderrLineSize = 64 * 1024

// Stream selects which output pipe of the child carries messages.
type Stream int

const (
	// Stdout reads messages from the child's standard output.
	Stdout Stream = iota
	// Stderr reads messages from the child's standard error.
	Stderr
)

func (s Stream) String() string {
	if s == Stderr {
		return "stderr"
	}

	return "stdout"
}

// Process is a running peer with an owned channel bound to its stdio.
type Process[M any] struct {
	log      *slog.Logger
	cmd      *exec.Cmd
	stdin    io.WriteCloser
	channel  *channel.UniChannel[M]
	stderrWg sync.WaitGroup

	mu          sync.Mutex // Protects closing and stdinClosed
	closing     bool
	stdinClosed bool
}

// Spawn starts cmd with piped stdin and the selected output stream, and
// returns the process together with a channel writing to its stdin and
// reading from that stream.
//
// Returns MissingPipeError if a pipe cannot be obtained (for example because
// cmd.Stdin was already set), or SpawnError if the process fails to start.
func Spawn[M any](
	cmd *exec.Cmd,
	s serializer.Serializer[M],
	stream Stream,
	opts ...config.Option,
) (*Process[M], error) {
	options := config.Apply(opts)
	log := options.Logger.With("component", "subprocess", "path", cmd.Path)

	stdin, err := cmd.StdinPipe()
	if err != nil || stdin == nil {
		log.Error("Failed to create stdin pipe", "error", err)

		return nil, &errors.MissingPipeError{Pipe: "stdin", Err: err}
	}

	output, err := outputPipe(cmd, stream)
	if err != nil || output == nil {
		log.Error("Failed to create output pipe", "stream", stream, "error", err)

		_ = stdin.Close()

		return nil, &errors.MissingPipeError{Pipe: stream.String(), Err: err}
	}

	// Forward the child's stderr to the logger when it is not the message stream.
	var diagnostics io.ReadCloser

	if stream == Stdout && cmd.Stderr == nil {
		diagnostics, err = cmd.StderrPipe()
		if err != nil {
			log.Debug("Stderr not forwarded", "error", err)

			diagnostics = nil
		}
	}

	if err := cmd.Start(); err != nil {
		log.Error("Failed to start process", "error", err)

		return nil, &errors.SpawnError{Path: cmd.Path, Err: err}
	}

	log = log.With("pid", cmd.Process.Pid)
	log.Info("Process started", "stream", stream)

	p := &Process[M]{
		log:     log,
		cmd:     cmd,
		stdin:   stdin,
		channel: channel.NewUniChannelSize(output, stdin, s, options.BufferSize),
	}

	if diagnostics != nil {
		p.stderrWg.Go(func() { p.forwardStderr(diagnostics) })
	}

	return p, nil
}

func outputPipe(cmd *exec.Cmd, stream Stream) (io.ReadCloser, error) {
	if stream == Stderr {
		return cmd.StderrPipe()
	}

	return cmd.StdoutPipe()
}

// forwardStderr logs each stderr line until the pipe closes.
func (p *Process[M]) forwardStderr(r io.Reader) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxStderrLineSize)

	for scanner.Scan() {
		p.log.Debug("Process stderr", "line", scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		p.log.Debug("Stderr scanner error", "error", err)
	}
}

// Channel returns the owned channel bound to the process's stdio.
func (p *Process[M]) Channel() *channel.UniChannel[M] {
	return p.channel
}

// Pid returns the operating system process ID.
func (p *Process[M]) Pid() int {
	return p.cmd.Process.Pid
}

// CloseInput closes the child's stdin, signalling that no more messages
// will be sent. It is safe to call more than once.
func (p *Process[M]) CloseInput() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stdinClosed {
		return nil
	}

	p.stdinClosed = true
	p.log.Debug("Closing stdin pipe")

	return p.stdin.Close()
}

// Wait waits for the process to exit. An exit caused by Close is not
// reported as an error.
func (p *Process[M]) Wait() error {
	p.stderrWg.Wait()

	err := p.cmd.Wait()
	if err == nil {
		p.log.Info("Process exited successfully")

		return nil
	}

	p.mu.Lock()
	closing := p.closing
	p.mu.Unlock()

	if closing {
		p.log.Debug("Process terminated during shutdown")

		return nil
	}

	exitCode := -1
	if exitErr, ok := stderrors.AsType[*exec.ExitError](err); ok {
		exitCode = exitErr.ExitCode()
	}

	p.log.Error("Process exited with error", "exit_code", exitCode, "error", err)

	return fmt.Errorf("wait for process %d: %w", p.cmd.Process.Pid, err)
}

// Close closes stdin and kills the process. It's safe to call Close
// multiple times or on an already-terminated process.
func (p *Process[M]) Close() error {
	if err := p.CloseInput(); err != nil {
		p.log.Debug("Closing stdin failed", "error", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.closing = true

	p.log.Debug("Killing process")

	if err := p.cmd.Process.Kill(); err != nil && !stderrors.Is(err, os.ErrProcessDone) {
		return fmt.Errorf("kill process (pid %d): %w", p.cmd.Process.Pid, err)
	}

	return nil
}
