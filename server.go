package msgpipe

import (
	"context"

	"github.com/wagiedev/msgpipe-go/internal/server"
)

// Handler maps an incoming message to an optional response.
type Handler[M any] = server.Handler[M]

// ErrorHandler classifies loop errors; returning true stops the loop.
type ErrorHandler = server.ErrorHandler

// Server answers messages read from one owned channel.
type Server[M any] = server.Server[M]

// Daemon is a handle to a server loop running on a background goroutine.
type Daemon = server.Daemon

// NewServer creates a server over ch.
func NewServer[M any](ch OwnedChannel[M], handler Handler[M], opts ...Option) *Server[M] {
	return server.New(ch, handler, opts...)
}

// Daemonize starts a server over ch on a background goroutine and returns
// immediately. The loop stops when errs returns true, when Kill is called,
// or when ctx is done; all three are observed between iterations only.
func Daemonize[M any](
	ctx context.Context,
	ch OwnedChannel[M],
	messages Handler[M],
	errs ErrorHandler,
	opts ...Option,
) *Daemon {
	return server.Daemonize(ctx, ch, messages, errs, opts...)
}
