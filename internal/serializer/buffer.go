package serializer

import (
	"bufio"
	stderrors "errors"
	"io"

	"github.com/wagiedev/msgpipe-go/internal/errors"
)

// fill blocks until r holds at least n buffered bytes.
//
// It returns ok == false with a nil error when the stream made no progress;
// buffered bytes are kept for the next attempt. End of stream with nothing
// buffered is a TransportError wrapping io.EOF, and with a partial message
// buffered a TransportError wrapping io.ErrUnexpectedEOF. The partial bytes
// stay in r so the caller can decide what to do with them.
func fill(r *bufio.Reader, n int) (bool, error) {
	if n > r.Size() {
		return false, &errors.DecodeError{Err: errors.ErrMessageTooLarge}
	}

	if r.Buffered() >= n {
		return true, nil
	}

	_, err := r.Peek(n)
	if err == nil {
		return true, nil
	}

	switch {
	case stderrors.Is(err, io.EOF) && r.Buffered() == 0:
		return false, &errors.TransportError{Op: "read", Err: err}
	case stderrors.Is(err, io.EOF):
		return false, &errors.TransportError{Op: "read", Err: io.ErrUnexpectedEOF}
	case stderrors.Is(err, io.ErrNoProgress):
		return false, nil
	default:
		return false, &errors.TransportError{Op: "read", Err: err}
	}
}

// discardBuffered drops every buffered byte without reading further.
func discardBuffered(r *bufio.Reader) {
	_, _ = r.Discard(r.Buffered())
}

// flush wraps a flush failure as a TransportError.
func flush(w *bufio.Writer) error {
	if err := w.Flush(); err != nil {
		return &errors.TransportError{Op: "flush", Err: err}
	}

	return nil
}

// writeAll writes every chunk to w and flushes it.
func writeAll(w *bufio.Writer, chunks ...[]byte) error {
	for _, chunk := range chunks {
		if _, err := w.Write(chunk); err != nil {
			return &errors.TransportError{Op: "write", Err: err}
		}
	}

	return flush(w)
}
