package serializer

import (
	"bufio"
)

// Serializer decodes messages of type M from a buffered reader and encodes
// them to a buffered writer.
type Serializer[M any] interface {
	// TryRead decodes at most one message. It returns ok == false with a nil
	// error when no complete message is available yet, and must leave the
	// bytes of an incomplete message in the reader.
	TryRead(r *bufio.Reader) (msg M, ok bool, err error)

	// Write encodes msg, writes it in full and flushes w.
	Write(w *bufio.Writer, msg M) error
}

// Read blocks until s decodes one message from r, returning the first error.
//
// Read retries TryRead without backoff and relies on r blocking when no data
// is available. Supplying a reader that repeatedly returns no data without
// blocking makes Read spin; callers that cannot guarantee blocking reads
// should bound the call externally, for example by closing the stream.
func Read[M any](s Serializer[M], r *bufio.Reader) (M, error) {
	for {
		msg, ok, err := s.TryRead(r)
		if err != nil {
			var zero M

			return zero, err
		}

		if ok {
			return msg, nil
		}
	}
}
