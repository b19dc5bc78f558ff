package server

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/wagiedev/msgpipe-go/internal/channel"
	"github.com/wagiedev/msgpipe-go/internal/config"
)

// Handler maps an incoming message to an optional response. When ok is
// false nothing is written back.
type Handler[M any] func(msg M) (response M, ok bool)

// ErrorHandler classifies an error raised by Update. Returning true stops
// the loop; returning false treats the error as transient.
type ErrorHandler func(err error) (stop bool)

// Server answers messages read from one owned channel using one handler.
type Server[M any] struct {
	log     *slog.Logger
	channel channel.OwnedChannel[M]
	handler Handler[M]
}

// New creates a server over ch.
func New[M any](ch channel.OwnedChannel[M], handler Handler[M], opts ...config.Option) *Server[M] {
	options := config.Apply(opts)

	log := options.Logger.With("component", "server")
	if options.Name != "" {
		log = log.With("name", options.Name)
	}

	return &Server[M]{
		log:     log,
		channel: ch,
		handler: handler,
	}
}

// Channel returns the channel the server reads from and writes to.
func (s *Server[M]) Channel() channel.OwnedChannel[M] {
	return s.channel
}

// Update reads one message, passes it to the handler and writes the
// response, if any.
//
// A read error is returned before the handler runs. A write error is
// returned as is and the response is dropped; Update never retries.
func (s *Server[M]) Update() error {
	msg, err := s.channel.Read()
	if err != nil {
		return err
	}

	response, ok := s.handler(msg)
	if !ok {
		s.log.Debug("Handled message without response")

		return nil
	}

	if err := s.channel.Write(response); err != nil {
		return err
	}

	s.log.Debug("Handled message and sent response")

	return nil
}

// Serve calls Update until errs reports an error as fatal or ctx is done.
// It returns the fatal error, or ctx.Err() when the context ended the loop.
func (s *Server[M]) Serve(ctx context.Context, errs ErrorHandler) error {
	var alive atomic.Bool

	alive.Store(true)

	return s.loop(ctx, &alive, errs)
}

// loop runs Update while alive is set and ctx is not done. The flag and the
// context are only checked between iterations.
func (s *Server[M]) loop(ctx context.Context, alive *atomic.Bool, errs ErrorHandler) error {
	for alive.Load() {
		if err := ctx.Err(); err != nil {
			alive.Store(false)

			return err
		}

		err := s.Update()
		if err == nil {
			continue
		}

		if errs(err) {
			s.log.Warn("Stopping on fatal error", "error", err)
			alive.Store(false)

			return err
		}

		s.log.Debug("Ignoring transient error", "error", err)
	}

	return nil
}
