package channel

import (
	"bufio"
	"io"

	"github.com/wagiedev/msgpipe-go/internal/config"
	"github.com/wagiedev/msgpipe-go/internal/errors"
	"github.com/wagiedev/msgpipe-go/internal/serializer"
)

// UniChannel owns an independent reader and writer together with the
// serializer used for both directions.
type UniChannel[M any] struct {
	reader     *ReadChannel
	writer     *WriteChannel
	serializer serializer.Serializer[M]
}

// Compile-time verification that UniChannel implements OwnedChannel.
var _ OwnedChannel[any] = (*UniChannel[any])(nil)

// NewUniChannel creates an owned channel reading from reader and writing to writer.
func NewUniChannel[M any](reader io.Reader, writer io.Writer, s serializer.Serializer[M]) *UniChannel[M] {
	return NewUniChannelSize(reader, writer, s, config.DefaultBufferSize)
}

// NewUniChannelSize is NewUniChannel with an explicit read buffer size.
func NewUniChannelSize[M any](reader io.Reader, writer io.Writer, s serializer.Serializer[M], size int) *UniChannel[M] {
	return &UniChannel[M]{
		reader:     NewReadChannelSize(reader, size),
		writer:     NewWriteChannel(writer),
		serializer: s,
	}
}

// Reader returns the buffered reader side.
func (c *UniChannel[M]) Reader() *bufio.Reader { return c.reader.Reader() }

// Writer returns the buffered writer side.
func (c *UniChannel[M]) Writer() *bufio.Writer { return c.writer.Writer() }

// Serializer returns the owned serializer.
func (c *UniChannel[M]) Serializer() serializer.Serializer[M] { return c.serializer }

// TryRead implements OwnedChannel.
func (c *UniChannel[M]) TryRead() (M, bool, error) {
	return TryRead(c.reader, c.serializer)
}

// Read implements OwnedChannel.
func (c *UniChannel[M]) Read() (M, error) {
	return Read(c.reader, c.serializer)
}

// Write implements OwnedChannel.
func (c *UniChannel[M]) Write(msg M) error {
	return Write(c.writer, c.serializer, msg)
}

// Close closes both streams.
func (c *UniChannel[M]) Close() error {
	return closeAll(c.reader.src, c.writer.dst)
}

// Unwrap hands back the streams and the serializer. The reader is returned
// buffered so that no unread bytes are lost.
func (c *UniChannel[M]) Unwrap() (*bufio.Reader, io.Writer, serializer.Serializer[M]) {
	return c.reader.Unwrap(), c.writer.Unwrap(), c.serializer
}

// Transpose returns a channel that reads from the current writer and writes
// to the current reader, keeping the serializer.
//
// It fails with ErrNotTransposable when either stream does not support its
// new role or when the reader still holds unread bytes. c must not be used
// after a successful Transpose.
func (c *UniChannel[M]) Transpose() (*UniChannel[M], error) {
	newReader, ok := c.writer.dst.(io.Reader)
	if !ok {
		return nil, errors.ErrNotTransposable
	}

	newWriter, ok := c.reader.src.(io.Writer)
	if !ok {
		return nil, errors.ErrNotTransposable
	}

	if c.reader.r.Buffered() > 0 {
		return nil, errors.ErrNotTransposable
	}

	return NewUniChannelSize(newReader, newWriter, c.serializer, c.reader.r.Size()), nil
}
