package serializer

import (
	"bufio"
	"encoding/binary"
	stderrors "errors"
	"fmt"
	"io"
	"math"

	"github.com/wagiedev/msgpipe-go/internal/codec"
	"github.com/wagiedev/msgpipe-go/internal/errors"
)

// frameHeaderSize is the length of the big-endian payload size prefix.
const frameHeaderSize = 4

// Frames encodes each message as a 4-byte big-endian payload length followed
// by the payload produced by a codec. Payloads may contain any bytes.
type Frames[M any] struct {
	codec   codec.Codec
	maxSize int
}

// Compile-time verification that Frames implements Serializer.
var _ Serializer[any] = (*Frames[any])(nil)

// NewFrames creates a length-prefixed serializer for M using c.
func NewFrames[M any](c codec.Codec) *Frames[M] {
	return &Frames[M]{codec: c}
}

// WithMaxSize returns a copy of s that rejects payloads larger than n bytes
// in both directions. Zero disables the limit; the reader's buffer size
// still bounds decoding.
func (s *Frames[M]) WithMaxSize(n int) *Frames[M] {
	return &Frames[M]{codec: s.codec, maxSize: n}
}

// Codec returns the payload codec.
func (s *Frames[M]) Codec() codec.Codec { return s.codec }

// TryRead implements Serializer.
func (s *Frames[M]) TryRead(r *bufio.Reader) (M, bool, error) {
	var msg M

	ok, err := fill(r, frameHeaderSize)
	if err != nil || !ok {
		return msg, false, truncated(r, err)
	}

	header, _ := r.Peek(frameHeaderSize)
	size := int(binary.BigEndian.Uint32(header))

	limit := r.Size() - frameHeaderSize
	if s.maxSize > 0 && s.maxSize < limit {
		limit = s.maxSize
	}

	// An oversized frame is skipped so the stream stays aligned.
	if size > limit {
		_, _ = r.Discard(frameHeaderSize + size)

		return msg, false, &errors.DecodeError{
			Err: fmt.Errorf("%w: frame of %d bytes exceeds limit of %d", errors.ErrMessageTooLarge, size, limit),
		}
	}

	ok, err = fill(r, frameHeaderSize+size)
	if err != nil || !ok {
		return msg, false, truncated(r, err)
	}

	frame, _ := r.Peek(frameHeaderSize + size)
	payload := frame[frameHeaderSize:]
	decodeErr := s.codec.Unmarshal(payload, &msg)

	_, _ = r.Discard(frameHeaderSize + size)

	if decodeErr != nil {
		return msg, false, &errors.DecodeError{Err: decodeErr}
	}

	return msg, true, nil
}

// truncated drops a frame cut short by end of stream so the next read
// reports plain io.EOF instead of the same truncation again.
func truncated(r *bufio.Reader, err error) error {
	if stderrors.Is(err, io.ErrUnexpectedEOF) {
		discardBuffered(r)
	}

	return err
}

// Write implements Serializer.
func (s *Frames[M]) Write(w *bufio.Writer, msg M) error {
	payload, err := s.codec.Marshal(msg)
	if err != nil {
		return &errors.EncodeError{Err: err}
	}

	if uint64(len(payload)) > math.MaxUint32 || (s.maxSize > 0 && len(payload) > s.maxSize) {
		return &errors.EncodeError{
			Err: fmt.Errorf("%w: payload of %d bytes", errors.ErrMessageTooLarge, len(payload)),
		}
	}

	var header [frameHeaderSize]byte

	binary.BigEndian.PutUint32(header[:], uint32(len(payload)))

	return writeAll(w, header[:], payload)
}
