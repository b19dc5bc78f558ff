package msgpipe

import (
	"context"
	"io"

	"github.com/wagiedev/msgpipe-go/internal/channel"
)

// OwnedChannel is a bidirectional channel that owns its serializer.
type OwnedChannel[M any] = channel.OwnedChannel[M]

// ReadChannel is a read-only channel; the serializer is supplied per call.
type ReadChannel = channel.ReadChannel

// WriteChannel is a write-only channel; the serializer is supplied per call.
type WriteChannel = channel.WriteChannel

// UniChannel owns a separate reader and writer plus its serializer.
type UniChannel[M any] = channel.UniChannel[M]

// BiChannel owns one duplex stream plus its serializer.
type BiChannel[M any] = channel.BiChannel[M]

// NewReadChannel wraps reader as a read-only channel.
func NewReadChannel(reader io.Reader) *ReadChannel {
	return channel.NewReadChannel(reader)
}

// NewWriteChannel wraps writer as a write-only channel.
func NewWriteChannel(writer io.Writer) *WriteChannel {
	return channel.NewWriteChannel(writer)
}

// NewUniChannel creates an owned channel over a separate reader and writer.
func NewUniChannel[M any](reader io.Reader, writer io.Writer, s Serializer[M]) *UniChannel[M] {
	return channel.NewUniChannel(reader, writer, s)
}

// NewBiChannel creates an owned channel over one duplex stream.
func NewBiChannel[M any](rw io.ReadWriter, s Serializer[M]) *BiChannel[M] {
	return channel.NewBiChannel(rw, s)
}

// TryReadFrom decodes at most one message from c using s.
func TryReadFrom[M any](c *ReadChannel, s Serializer[M]) (M, bool, error) {
	return channel.TryRead(c, s)
}

// ReadFrom blocks until s decodes one message from c.
func ReadFrom[M any](c *ReadChannel, s Serializer[M]) (M, error) {
	return channel.Read(c, s)
}

// WriteTo encodes msg to c using s and flushes it.
func WriteTo[M any](c *WriteChannel, s Serializer[M], msg M) error {
	return channel.Write(c, s, msg)
}

// Stdin returns a read-only channel over standard input.
func Stdin() *ReadChannel { return channel.Stdin() }

// Stdout returns a write-only channel over standard output.
func Stdout() *WriteChannel { return channel.Stdout() }

// Stderr returns a write-only channel over standard error.
func Stderr() *WriteChannel { return channel.Stderr() }

// Stdio returns an owned channel over standard input and standard output.
func Stdio[M any](s Serializer[M]) *UniChannel[M] { return channel.Stdio(s) }

// Stdie returns an owned channel over standard input and standard error.
func Stdie[M any](s Serializer[M]) *UniChannel[M] { return channel.Stdie(s) }

// DialUnix connects to a unix domain socket and returns an owned channel.
func DialUnix[M any](ctx context.Context, path string, s Serializer[M]) (*BiChannel[M], error) {
	return channel.DialUnix(ctx, path, s)
}
