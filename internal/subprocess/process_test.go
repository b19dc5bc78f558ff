package subprocess

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wagiedev/msgpipe-go/internal/channel"
	"github.com/wagiedev/msgpipe-go/internal/errors"
	"github.com/wagiedev/msgpipe-go/internal/serializer"
	"github.com/wagiedev/msgpipe-go/internal/server"
)

const helperEnv = "MSGPIPE_WANT_HELPER_PROCESS"

// TestHelperProcess is not a real test. It is the peer spawned by the tests
// below: a ping/pong server on stdin and the stream named by helperEnv.
func TestHelperProcess(t *testing.T) {
	mode := os.Getenv(helperEnv)
	if mode == "" {
		return
	}

	s := serializer.NewJSONLines[string]()

	ch := channel.Stdio[string](s)
	if mode == "stderr" {
		ch = channel.Stdie[string](s)
	} else {
		fmt.Fprintln(os.Stderr, "helper ready")
	}

	srv := server.New(ch, func(msg string) (string, bool) {
		if msg == "ping" {
			return "pong", true
		}

		return "", false
	})

	err := srv.Serve(context.Background(), func(err error) bool {
		return stderrors.Is(err, io.EOF)
	})
	if err != nil && !stderrors.Is(err, io.EOF) {
		os.Exit(2)
	}

	os.Exit(0)
}

func helperCommand(t *testing.T, mode string) *exec.Cmd {
	t.Helper()

	//nolint:gosec // G204: re-executing the test binary as a helper process
	cmd := exec.Command(os.Args[0], "-test.run=^TestHelperProcess$")
	cmd.Env = append(os.Environ(), helperEnv+"="+mode)

	return cmd
}

func TestSpawn_StdoutPingPong(t *testing.T) {
	p, err := Spawn(helperCommand(t, "stdout"), serializer.NewJSONLines[string](), Stdout)
	require.NoError(t, err)
	require.Positive(t, p.Pid())

	ch := p.Channel()

	require.NoError(t, ch.Write("ping"))

	reply, err := ch.Read()
	require.NoError(t, err)
	require.Equal(t, "pong", reply)

	require.NoError(t, p.CloseInput())
	require.NoError(t, p.CloseInput())
	require.NoError(t, p.Wait())
}

func TestSpawn_StderrPingPong(t *testing.T) {
	p, err := Spawn(helperCommand(t, "stderr"), serializer.NewJSONLines[string](), Stderr)
	require.NoError(t, err)

	ch := p.Channel()

	require.NoError(t, ch.Write("other"))
	require.NoError(t, ch.Write("ping"))

	reply, err := ch.Read()
	require.NoError(t, err)
	require.Equal(t, "pong", reply)

	require.NoError(t, p.CloseInput())
	require.NoError(t, p.Wait())
}

func TestSpawn_CloseKillsProcess(t *testing.T) {
	p, err := Spawn(helperCommand(t, "stdout"), serializer.NewJSONLines[string](), Stdout)
	require.NoError(t, err)

	require.NoError(t, p.Close())
	require.NoError(t, p.Close())
	require.NoError(t, p.Wait())
}

func TestSpawn_MissingStdinPipe(t *testing.T) {
	cmd := helperCommand(t, "stdout")
	cmd.Stdin = strings.NewReader("")

	_, err := Spawn(cmd, serializer.NewJSONLines[string](), Stdout)

	var pipeErr *errors.MissingPipeError

	require.ErrorAs(t, err, &pipeErr)
	require.Equal(t, "stdin", pipeErr.Pipe)
}

func TestSpawn_MissingOutputPipe(t *testing.T) {
	cmd := helperCommand(t, "stdout")
	cmd.Stdout = &bytes.Buffer{}

	_, err := Spawn(cmd, serializer.NewJSONLines[string](), Stdout)

	var pipeErr *errors.MissingPipeError

	require.ErrorAs(t, err, &pipeErr)
	require.Equal(t, "stdout", pipeErr.Pipe)
}

func TestSpawn_StartFailure(t *testing.T) {
	cmd := exec.Command("/nonexistent/msgpipe-peer")

	_, err := Spawn(cmd, serializer.NewJSONLines[string](), Stdout)

	var spawnErr *errors.SpawnError

	require.ErrorAs(t, err, &spawnErr)
	require.Equal(t, "/nonexistent/msgpipe-peer", spawnErr.Path)
}

func TestStream_String(t *testing.T) {
	require.Equal(t, "stdout", Stdout.String())
	require.Equal(t, "stderr", Stderr.String())
}
