package channel

import (
	"bufio"
	"io"

	"github.com/wagiedev/msgpipe-go/internal/config"
	"github.com/wagiedev/msgpipe-go/internal/serializer"
)

// BiChannel owns one stream used for both reading and writing, such as a
// duplex socket. Reads and writes must not overlap from different
// goroutines without external synchronization.
type BiChannel[M any] struct {
	rw         io.ReadWriter
	r          *bufio.Reader
	w          *bufio.Writer
	serializer serializer.Serializer[M]
}

// Compile-time verification that BiChannel implements OwnedChannel.
var _ OwnedChannel[any] = (*BiChannel[any])(nil)

// NewBiChannel creates an owned channel over rw.
func NewBiChannel[M any](rw io.ReadWriter, s serializer.Serializer[M]) *BiChannel[M] {
	return NewBiChannelSize(rw, s, config.DefaultBufferSize)
}

// NewBiChannelSize is NewBiChannel with an explicit read buffer size.
func NewBiChannelSize[M any](rw io.ReadWriter, s serializer.Serializer[M], size int) *BiChannel[M] {
	return &BiChannel[M]{
		rw:         rw,
		r:          bufio.NewReaderSize(rw, size),
		w:          bufio.NewWriter(rw),
		serializer: s,
	}
}

// Reader returns the buffered reader side of the stream.
func (c *BiChannel[M]) Reader() *bufio.Reader { return c.r }

// Writer returns the buffered writer side of the stream.
func (c *BiChannel[M]) Writer() *bufio.Writer { return c.w }

// Serializer returns the owned serializer.
func (c *BiChannel[M]) Serializer() serializer.Serializer[M] { return c.serializer }

// TryRead implements OwnedChannel.
func (c *BiChannel[M]) TryRead() (M, bool, error) {
	return c.serializer.TryRead(c.r)
}

// Read implements OwnedChannel.
func (c *BiChannel[M]) Read() (M, error) {
	return serializer.Read(c.serializer, c.r)
}

// Write implements OwnedChannel.
func (c *BiChannel[M]) Write(msg M) error {
	return c.serializer.Write(c.w, msg)
}

// Close closes the stream if it implements io.Closer.
func (c *BiChannel[M]) Close() error {
	return closeStream(c.rw)
}

// Unwrap hands back the stream, its buffered reader holding any unread
// bytes, and the serializer.
func (c *BiChannel[M]) Unwrap() (io.ReadWriter, *bufio.Reader, serializer.Serializer[M]) {
	return c.rw, c.r, c.serializer
}
