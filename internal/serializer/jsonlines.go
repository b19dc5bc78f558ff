package serializer

import (
	"bufio"
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/wagiedev/msgpipe-go/internal/codec"
	"github.com/wagiedev/msgpipe-go/internal/errors"
)

var newline = []byte{'\n'}

// JSONLines encodes one JSON value per line.
//
// Decoding trims surrounding whitespace and treats a blank line as "no
// message yet". A line is only consumed once its terminating newline has
// arrived, so the longest accepted line is bounded by the reader's buffer.
type JSONLines[M any] struct {
	codec  codec.Codec
	schema *jsonschema.Resolved
}

// Compile-time verification that JSONLines implements Serializer.
var _ Serializer[any] = (*JSONLines[any])(nil)

// NewJSONLines creates a newline-delimited JSON serializer for M.
func NewJSONLines[M any]() *JSONLines[M] {
	return &JSONLines[M]{codec: codec.JSON()}
}

// NewValidatedJSONLines creates a newline-delimited JSON serializer that
// validates every decoded line against the JSON Schema inferred from M.
func NewValidatedJSONLines[M any]() (*JSONLines[M], error) {
	schema, err := jsonschema.For[M](nil)
	if err != nil {
		return nil, fmt.Errorf("infer schema: %w", err)
	}

	return NewJSONLines[M]().WithSchema(schema)
}

// WithSchema returns a copy of s that validates decoded lines against schema.
func (s *JSONLines[M]) WithSchema(schema *jsonschema.Schema) (*JSONLines[M], error) {
	resolved, err := schema.Resolve(nil)
	if err != nil {
		return nil, fmt.Errorf("resolve schema: %w", err)
	}

	return &JSONLines[M]{codec: s.codec, schema: resolved}, nil
}

// TryRead implements Serializer.
func (s *JSONLines[M]) TryRead(r *bufio.Reader) (M, bool, error) {
	var msg M

	line, ok, err := readLine(r)
	if err != nil || !ok {
		return msg, false, err
	}

	line = bytes.TrimSpace(line)
	if len(line) == 0 {
		return msg, false, nil
	}

	if s.schema != nil {
		if err := s.validate(line); err != nil {
			return msg, false, &errors.DecodeError{RawData: string(line), Err: err}
		}
	}

	if err := s.codec.Unmarshal(line, &msg); err != nil {
		return msg, false, &errors.DecodeError{RawData: string(line), Err: err}
	}

	return msg, true, nil
}

// Write implements Serializer.
func (s *JSONLines[M]) Write(w *bufio.Writer, msg M) error {
	data, err := s.codec.Marshal(msg)
	if err != nil {
		return &errors.EncodeError{Err: err}
	}

	return writeAll(w, data, newline)
}

func (s *JSONLines[M]) validate(line []byte) error {
	var instance any
	if err := json.Unmarshal(line, &instance); err != nil {
		return err
	}

	if err := s.schema.Validate(instance); err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}

	return nil
}

// readLine returns the next line without its newline. A line whose newline
// has not arrived yet stays buffered and ok is false. At end of stream an
// unterminated final line is returned as is.
func readLine(r *bufio.Reader) ([]byte, bool, error) {
	for {
		if buffered := r.Buffered(); buffered > 0 {
			peek, _ := r.Peek(buffered)

			if i := bytes.IndexByte(peek, '\n'); i >= 0 {
				line := bytes.Clone(peek[:i])
				_, _ = r.Discard(i + 1)

				return line, true, nil
			}
		}

		if r.Buffered() >= r.Size() {
			skipLine(r)

			return nil, false, &errors.DecodeError{
				Err: fmt.Errorf("%w: line exceeds %d byte buffer", errors.ErrMessageTooLarge, r.Size()),
			}
		}

		ok, err := fill(r, r.Buffered()+1)
		if stderrors.Is(err, io.ErrUnexpectedEOF) {
			peek, _ := r.Peek(r.Buffered())
			line := bytes.Clone(peek)
			discardBuffered(r)

			return line, true, nil
		}

		if err != nil || !ok {
			return nil, false, err
		}
	}
}

// skipLine drops input up to and including the next newline. Read errors
// stay in r and surface on the next read.
func skipLine(r *bufio.Reader) {
	for {
		_, err := r.ReadSlice('\n')
		if !stderrors.Is(err, bufio.ErrBufferFull) {
			return
		}
	}
}
