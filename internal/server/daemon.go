package server

import (
	"context"
	"sync/atomic"

	"github.com/oklog/ulid/v2"

	"github.com/wagiedev/msgpipe-go/internal/channel"
	"github.com/wagiedev/msgpipe-go/internal/config"
)

// Daemon is a handle to a server loop running on a background goroutine.
//
// The liveness flag is the only state shared with that goroutine. Kill
// clears it; the goroutine notices before its next Update, so termination
// waits for at most one in-flight Update.
type Daemon struct {
	id    string
	alive *atomic.Bool
	done  chan struct{}
}

// Daemonize starts a server over ch on a new goroutine and returns at once.
//
// The goroutine loops while the daemon is alive and ctx is not done. Each
// error from Update is passed to errs; when errs returns true the flag is
// cleared and the goroutine exits.
func Daemonize[M any](
	ctx context.Context,
	ch channel.OwnedChannel[M],
	messages Handler[M],
	errs ErrorHandler,
	opts ...config.Option,
) *Daemon {
	options := config.Apply(opts)

	d := &Daemon{
		id:    ulid.Make().String(),
		alive: new(atomic.Bool),
		done:  make(chan struct{}),
	}

	d.alive.Store(true)

	log := options.Logger.With("component", "daemon", "daemon_id", d.id)
	if options.Name != "" {
		log = log.With("name", options.Name)
	}

	srv := &Server[M]{log: log, channel: ch, handler: messages}

	go func() {
		defer close(d.done)

		log.Info("Daemon started")

		err := srv.loop(ctx, d.alive, errs)

		d.alive.Store(false)

		log.Info("Daemon stopped", "error", err)
	}()

	return d
}

// ID returns the daemon's unique identifier, also attached to its logs.
func (d *Daemon) ID() string { return d.id }

// IsAlive reports whether the background loop is still meant to run.
func (d *Daemon) IsAlive() bool {
	return d.alive.Load()
}

// Kill asks the background loop to stop before its next iteration.
// It does not interrupt a blocked read; close the stream for that.
func (d *Daemon) Kill() {
	d.alive.Store(false)
}

// Done returns a channel that is closed once the background goroutine has
// returned.
func (d *Daemon) Done() <-chan struct{} {
	return d.done
}
