package msgpipe

import (
	"bufio"

	"github.com/wagiedev/msgpipe-go/internal/codec"
	"github.com/wagiedev/msgpipe-go/internal/serializer"
)

// Serializer decodes messages of type M from a buffered reader and encodes
// them to a buffered writer. See the serializer contract on TryRead: an
// incomplete message yields ok == false with a nil error and stays buffered.
type Serializer[M any] = serializer.Serializer[M]

// JSONLines encodes one JSON value per line.
type JSONLines[M any] = serializer.JSONLines[M]

// Frames encodes each message as a 4-byte big-endian length and a codec payload.
type Frames[M any] = serializer.Frames[M]

// Codec marshals payloads inside Frames.
type Codec = codec.Codec

// CodecRegistry maps codec names and content types to codecs.
type CodecRegistry = codec.Registry

// NewJSONLines creates a newline-delimited JSON serializer for M.
func NewJSONLines[M any]() *JSONLines[M] {
	return serializer.NewJSONLines[M]()
}

// NewValidatedJSONLines creates a newline-delimited JSON serializer that
// rejects lines not matching the JSON Schema inferred from M.
func NewValidatedJSONLines[M any]() (*JSONLines[M], error) {
	return serializer.NewValidatedJSONLines[M]()
}

// NewFrames creates a length-prefixed serializer for M using c.
func NewFrames[M any](c Codec) *Frames[M] {
	return serializer.NewFrames[M](c)
}

// JSONCodec returns the JSON payload codec.
func JSONCodec() Codec { return codec.JSON() }

// CBORCodec returns a deterministic CBOR payload codec.
func CBORCodec() (Codec, error) { return codec.CBOR() }

// ProtoCodec returns a deterministic Protocol Buffers payload codec.
func ProtoCodec() Codec { return codec.Proto() }

// NewCodecRegistry returns a registry holding the json, cbor and proto codecs.
func NewCodecRegistry() (*CodecRegistry, error) { return codec.NewRegistry() }

// Read blocks until s decodes one message from r.
//
// Read retries without backoff and relies on r blocking when no data is
// available; a reader that returns no data without blocking makes it spin.
func Read[M any](s Serializer[M], r *bufio.Reader) (M, error) {
	return serializer.Read(s, r)
}
