package channel

import (
	"context"
	"fmt"
	"net"
	"os"

	"github.com/wagiedev/msgpipe-go/internal/serializer"
)

// Stdin returns a read-only channel over the current process's standard input.
func Stdin() *ReadChannel {
	return NewReadChannel(os.Stdin)
}

// Stdout returns a write-only channel over the current process's standard output.
func Stdout() *WriteChannel {
	return NewWriteChannel(os.Stdout)
}

// Stderr returns a write-only channel over the current process's standard error.
func Stderr() *WriteChannel {
	return NewWriteChannel(os.Stderr)
}

// Stdio returns an owned channel reading standard input and writing standard
// output. Once stdout carries messages, diagnostics must go to stderr.
func Stdio[M any](s serializer.Serializer[M]) *UniChannel[M] {
	return NewUniChannel(os.Stdin, os.Stdout, s)
}

// Stdie returns an owned channel reading standard input and writing standard
// error, leaving stdout free for ordinary output.
func Stdie[M any](s serializer.Serializer[M]) *UniChannel[M] {
	return NewUniChannel(os.Stdin, os.Stderr, s)
}

// DialUnix connects to the unix domain socket at path and returns an owned
// channel over the connection.
func DialUnix[M any](ctx context.Context, path string, s serializer.Serializer[M]) (*BiChannel[M], error) {
	var dialer net.Dialer

	conn, err := dialer.DialContext(ctx, "unix", path)
	if err != nil {
		return nil, fmt.Errorf("dial unix socket %s: %w", path, err)
	}

	return NewBiChannel(conn, s), nil
}
