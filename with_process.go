package msgpipe

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/wagiedev/msgpipe-go/internal/config"
)

// WithProcess manages a peer process lifecycle with automatic cleanup.
//
// It spawns cmd with a channel on the child's stdin and stdout, runs fn,
// and then shuts the peer down. When fn succeeds the child's stdin is
// closed and WithProcess waits for it to exit, returning any exit error.
// When fn fails the child is killed and fn's error is returned.
//
// If ctx is done while fn runs, the child is killed at once, which fails
// any read blocked inside fn. WithProcess then returns ctx.Err() rather
// than that read error.
//
// Example usage:
//
//	err := msgpipe.WithProcess(ctx, exec.Command("peer"), msgpipe.NewJSONLines[Msg](),
//	    func(p *msgpipe.Process[Msg]) error {
//	        if err := p.Channel().Write(Msg{Kind: "hello"}); err != nil {
//	            return err
//	        }
//	        reply, err := p.Channel().Read()
//	        // ...
//	    },
//	    msgpipe.WithLogger(log),
//	)
func WithProcess[M any](
	ctx context.Context,
	cmd *exec.Cmd,
	s Serializer[M],
	fn func(*Process[M]) error,
	opts ...Option,
) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	log := config.Apply(opts).Logger

	p, err := SpawnStdio(cmd, s, opts...)
	if err != nil {
		return fmt.Errorf("failed to start process: %w", err)
	}

	kill := func() {
		if closeErr := p.Close(); closeErr != nil {
			log.Warn("failed to kill process", "error", closeErr)
		}
	}

	stop := context.AfterFunc(ctx, kill)

	err = fn(p)

	if !stop() {
		_ = p.Wait()

		return ctx.Err()
	}

	if err != nil {
		kill()
		_ = p.Wait()

		return err
	}

	if err := p.CloseInput(); err != nil {
		log.Warn("failed to close process input", "error", err)
	}

	return p.Wait()
}
