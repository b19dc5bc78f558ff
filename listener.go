package msgpipe

import (
	"context"

	"github.com/wagiedev/msgpipe-go/internal/listener"
)

// Listener accepts connections on a locked unix domain socket.
type Listener = listener.Listener

// Listen locks and listens on the unix domain socket at path.
func Listen(path string, opts ...Option) (*Listener, error) {
	return listener.Listen(path, opts...)
}

// Serve answers every connection accepted by l with its own server loop
// until ctx is done.
func Serve[M any](
	ctx context.Context,
	l *Listener,
	s Serializer[M],
	handler Handler[M],
	errs ErrorHandler,
) error {
	return listener.Serve(ctx, l, s, handler, errs)
}
