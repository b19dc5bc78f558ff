package channel

import (
	"bufio"
	stderrors "errors"
	"io"

	"github.com/wagiedev/msgpipe-go/internal/config"
	"github.com/wagiedev/msgpipe-go/internal/serializer"
)

// OwnedChannel is a bidirectional channel that owns its serializer.
type OwnedChannel[M any] interface {
	// TryRead decodes at most one message; ok is false when none is complete yet.
	TryRead() (msg M, ok bool, err error)

	// Read blocks until one message is decoded.
	Read() (M, error)

	// Write encodes and flushes one message.
	Write(msg M) error

	// Close closes the underlying streams that implement io.Closer.
	Close() error
}

// ReadChannel is a read-only channel over a buffered reader.
type ReadChannel struct {
	src io.Reader
	r   *bufio.Reader
}

// NewReadChannel wraps reader with a buffer of config.DefaultBufferSize.
func NewReadChannel(reader io.Reader) *ReadChannel {
	return NewReadChannelSize(reader, config.DefaultBufferSize)
}

// NewReadChannelSize wraps reader with a buffer of at least size bytes.
// The buffer bounds the largest message that can be decoded.
func NewReadChannelSize(reader io.Reader, size int) *ReadChannel {
	return &ReadChannel{src: reader, r: bufio.NewReaderSize(reader, size)}
}

// Reader returns the buffered reader that serializers decode from.
func (c *ReadChannel) Reader() *bufio.Reader { return c.r }

// Unwrap returns the buffered reader, which still holds any unread bytes.
func (c *ReadChannel) Unwrap() *bufio.Reader { return c.r }

// Close closes the wrapped reader if it implements io.Closer.
func (c *ReadChannel) Close() error { return closeStream(c.src) }

// TryRead decodes at most one message from c using s.
func TryRead[M any](c *ReadChannel, s serializer.Serializer[M]) (M, bool, error) {
	return s.TryRead(c.r)
}

// Read blocks until s decodes one message from c.
func Read[M any](c *ReadChannel, s serializer.Serializer[M]) (M, error) {
	return serializer.Read(s, c.r)
}

// WriteChannel is a write-only channel over a buffered writer.
type WriteChannel struct {
	dst io.Writer
	w   *bufio.Writer
}

// NewWriteChannel wraps writer. Every Write flushes, so nothing stays buffered
// between calls.
func NewWriteChannel(writer io.Writer) *WriteChannel {
	return &WriteChannel{dst: writer, w: bufio.NewWriter(writer)}
}

// Writer returns the buffered writer that serializers encode to.
func (c *WriteChannel) Writer() *bufio.Writer { return c.w }

// Unwrap returns the wrapped writer.
func (c *WriteChannel) Unwrap() io.Writer { return c.dst }

// Close closes the wrapped writer if it implements io.Closer.
func (c *WriteChannel) Close() error { return closeStream(c.dst) }

// Write encodes msg to c using s and flushes it.
func Write[M any](c *WriteChannel, s serializer.Serializer[M], msg M) error {
	return s.Write(c.w, msg)
}

func closeStream(stream any) error {
	if closer, ok := stream.(io.Closer); ok {
		return closer.Close()
	}

	return nil
}

// closeAll closes every stream, returning the joined errors.
func closeAll(streams ...any) error {
	var errs []error

	for _, stream := range streams {
		if err := closeStream(stream); err != nil {
			errs = append(errs, err)
		}
	}

	return stderrors.Join(errs...)
}
