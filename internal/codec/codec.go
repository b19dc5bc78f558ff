// Package codec provides payload encodings used inside framing serializers.
package codec

import (
	"fmt"
	"strings"

	"github.com/wagiedev/msgpipe-go/internal/errors"
)

// Codec marshals typed messages to and from payload bytes.
// Implementations must be deterministic so that both peers agree on the wire.
type Codec interface {
	ContentType() string
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// Registry maps content types and short aliases to codecs.
type Registry struct {
	byName map[string]Codec
}

// NewRegistry constructs a registry preloaded with the JSON, CBOR and
// Protobuf codecs under both their content types and short aliases.
func NewRegistry() (*Registry, error) {
	r := &Registry{byName: make(map[string]Codec, 6)}

	cborCodec, err := CBOR()
	if err != nil {
		return nil, fmt.Errorf("init cbor codec: %w", err)
	}

	r.Register("json", JSON())
	r.Register("cbor", cborCodec)
	r.Register("proto", Proto())

	return r, nil
}

// Register adds a codec under its content type and the given alias.
func (r *Registry) Register(alias string, c Codec) {
	r.byName[c.ContentType()] = c

	if alias != "" {
		r.byName[strings.ToLower(alias)] = c
	}
}

// Lookup returns the codec registered under name, which may be an alias or
// a content type.
func (r *Registry) Lookup(name string) (Codec, error) {
	c, ok := r.byName[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", errors.ErrUnknownCodec, name)
	}

	return c, nil
}
