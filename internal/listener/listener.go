package listener

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net"
	"os"

	"github.com/gofrs/flock"
	"github.com/oklog/ulid/v2"
	"golang.org/x/sync/errgroup"

	"github.com/wagiedev/msgpipe-go/internal/channel"
	"github.com/wagiedev/msgpipe-go/internal/config"
	"github.com/wagiedev/msgpipe-go/internal/errors"
	"github.com/wagiedev/msgpipe-go/internal/serializer"
	"github.com/wagiedev/msgpipe-go/internal/server"
)

// Listener accepts connections on a locked unix domain socket.
type Listener struct {
	log        *slog.Logger
	path       string
	bufferSize int
	lock       *flock.Flock
	listener   net.Listener
}

// Listen locks path+".lock", removes a stale socket file at path and starts
// listening on it.
//
// Returns ErrSocketLocked if another listener holds the lock, and
// ErrNotSocket if path exists but is not a socket. Such a path is left
// untouched.
func Listen(path string, opts ...config.Option) (*Listener, error) {
	options := config.Apply(opts)

	log := options.Logger.With("component", "listener", "socket", path)
	if options.Name != "" {
		log = log.With("name", options.Name)
	}

	lock := flock.New(path + ".lock")

	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire socket lock: %w", err)
	}

	if !ok {
		return nil, fmt.Errorf("%w: %s", errors.ErrSocketLocked, path)
	}

	if err := removeStaleSocket(path); err != nil {
		_ = lock.Unlock()

		return nil, err
	}

	l, err := net.Listen("unix", path)
	if err != nil {
		_ = lock.Unlock()

		return nil, fmt.Errorf("listen on socket: %w", err)
	}

	log.Debug("Listening")

	return &Listener{
		log:        log,
		path:       path,
		bufferSize: options.BufferSize,
		lock:       lock,
		listener:   l,
	}, nil
}

// removeStaleSocket deletes a socket left at path by a previous listener.
// Any other kind of file is refused.
func removeStaleSocket(path string) error {
	fi, err := os.Lstat(path)
	if stderrors.Is(err, fs.ErrNotExist) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("stat socket path: %w", err)
	}

	if fi.Mode()&os.ModeSocket == 0 {
		return fmt.Errorf("%w: %s is a %s", errors.ErrNotSocket, path, fi.Mode().Type())
	}

	if err := os.Remove(path); err != nil {
		return fmt.Errorf("remove stale socket: %w", err)
	}

	return nil
}

// Path returns the socket path.
func (l *Listener) Path() string { return l.path }

// Close stops listening, removes the socket file and releases the lock.
// It's safe to call Close multiple times.
func (l *Listener) Close() error {
	err := l.listener.Close()
	if stderrors.Is(err, net.ErrClosed) {
		err = nil
	}

	if rmErr := os.Remove(l.path); rmErr != nil && !os.IsNotExist(rmErr) {
		err = stderrors.Join(err, rmErr)
	}

	if unlockErr := l.lock.Unlock(); unlockErr != nil {
		err = stderrors.Join(err, unlockErr)
	}

	return err
}

// Serve accepts connections until ctx is done and answers each one with its
// own server loop using s and handler.
//
// Every connection runs on its own goroutine and shares s, handler and errs,
// so all three must be safe for concurrent use.
//
// End of stream and closed-connection errors end a connection's loop; every
// other error is passed to errs, which decides whether that connection
// stops. Cancelling ctx closes the listener and all open connections, then
// Serve returns ctx.Err() once every loop has exited.
func Serve[M any](
	ctx context.Context,
	l *Listener,
	s serializer.Serializer[M],
	handler server.Handler[M],
	errs server.ErrorHandler,
) error {
	g, gCtx := errgroup.WithContext(ctx)

	stop := context.AfterFunc(gCtx, func() {
		_ = l.listener.Close()
	})
	defer stop()

	g.Go(func() error {
		for {
			conn, err := l.listener.Accept()
			if err != nil {
				if gCtx.Err() != nil {
					return gCtx.Err()
				}

				return fmt.Errorf("accept connection: %w", err)
			}

			g.Go(func() error {
				serveConn(gCtx, l, conn, s, handler, errs)

				return nil
			})
		}
	})

	return g.Wait()
}

func serveConn[M any](
	ctx context.Context,
	l *Listener,
	conn net.Conn,
	s serializer.Serializer[M],
	handler server.Handler[M],
	errs server.ErrorHandler,
) {
	connID := ulid.Make().String()
	log := l.log.With("conn_id", connID)

	ch := channel.NewBiChannelSize(conn, s, l.bufferSize)

	// A read blocked on the connection is only released by closing it.
	stop := context.AfterFunc(ctx, func() {
		_ = ch.Close()
	})
	defer stop()

	defer func() {
		if err := ch.Close(); err != nil && !stderrors.Is(err, net.ErrClosed) {
			log.Debug("Closing connection failed", "error", err)
		}
	}()

	log.Debug("Connection accepted")

	srv := server.New[M](ch, handler, config.WithLogger(log))

	err := srv.Serve(ctx, func(err error) bool {
		if isDisconnect(err) {
			return true
		}

		return errs(err)
	})

	log.Debug("Connection finished", "error", err)
}

func isDisconnect(err error) bool {
	return stderrors.Is(err, io.EOF) ||
		stderrors.Is(err, io.ErrUnexpectedEOF) ||
		stderrors.Is(err, net.ErrClosed) ||
		stderrors.Is(err, io.ErrClosedPipe)
}
