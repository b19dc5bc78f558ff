package serializer

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/wagiedev/msgpipe-go/internal/codec"
	"github.com/wagiedev/msgpipe-go/internal/errors"
)

func newCBORFrames[M any](t *testing.T) *Frames[M] {
	t.Helper()

	c, err := codec.CBOR()
	require.NoError(t, err)

	return NewFrames[M](c)
}

func TestFrames_CBORRoundTripWithNewlines(t *testing.T) {
	s := newCBORFrames[string](t)

	var buf bytes.Buffer

	w := bufio.NewWriter(&buf)
	require.NoError(t, s.Write(w, "first\nline"))
	require.NoError(t, s.Write(w, "second"))

	r := bufio.NewReader(&buf)

	first, err := Read[string](s, r)
	require.NoError(t, err)
	require.Equal(t, "first\nline", first)

	second, err := Read[string](s, r)
	require.NoError(t, err)
	require.Equal(t, "second", second)
}

func TestFrames_JSONRoundTrip(t *testing.T) {
	s := NewFrames[event](codec.JSON())

	var buf bytes.Buffer

	require.NoError(t, s.Write(bufio.NewWriter(&buf), event{Name: "cpu", Count: 7}))

	payloadLen := binary.BigEndian.Uint32(buf.Bytes()[:frameHeaderSize])
	require.Equal(t, buf.Len()-frameHeaderSize, int(payloadLen))

	msg, err := Read[event](s, bufio.NewReader(&buf))
	require.NoError(t, err)
	require.Equal(t, event{Name: "cpu", Count: 7}, msg)
}

func TestFrames_ProtoRoundTrip(t *testing.T) {
	s := NewFrames[*structpb.Struct](codec.Proto())

	in, err := structpb.NewStruct(map[string]any{"op": "ping"})
	require.NoError(t, err)

	var buf bytes.Buffer

	require.NoError(t, s.Write(bufio.NewWriter(&buf), in))

	out, err := Read[*structpb.Struct](s, bufio.NewReader(&buf))
	require.NoError(t, err)
	require.Equal(t, "ping", out.GetFields()["op"].GetStringValue())
}

func TestFrames_PartialInputStability(t *testing.T) {
	s := newCBORFrames[string](t)

	var encoded bytes.Buffer

	require.NoError(t, s.Write(bufio.NewWriter(&encoded), "split across reads"))

	wire := encoded.String()
	src := &growingReader{}
	r := bufio.NewReader(src)

	// Half a header.
	src.append(wire[:2])

	_, ok, err := s.TryRead(r)
	require.NoError(t, err)
	require.False(t, ok)

	// Full header, partial payload.
	src.append(wire[2:8])

	_, ok, err = s.TryRead(r)
	require.NoError(t, err)
	require.False(t, ok)

	src.append(wire[8:])

	msg, ok, err := s.TryRead(r)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "split across reads", msg)
}

func TestFrames_TruncatedFrameAtEndOfStream(t *testing.T) {
	s := NewFrames[string](codec.JSON())

	var encoded bytes.Buffer

	require.NoError(t, s.Write(bufio.NewWriter(&encoded), "cut short"))

	wire := encoded.Bytes()

	tests := []struct {
		name string
		data []byte
	}{
		{name: "partial header", data: wire[:2]},
		{name: "partial payload", data: wire[:len(wire)-3]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := bufio.NewReader(bytes.NewReader(tt.data))

			_, _, err := s.TryRead(r)

			var transportErr *errors.TransportError

			require.ErrorAs(t, err, &transportErr)
			require.ErrorIs(t, err, io.ErrUnexpectedEOF)

			// The truncated bytes are dropped; the stream now just ends.
			_, _, err = s.TryRead(r)
			require.ErrorIs(t, err, io.EOF)
			require.NotErrorIs(t, err, io.ErrUnexpectedEOF)
		})
	}
}

func TestFrames_MaxSize(t *testing.T) {
	s := newCBORFrames[string](t).WithMaxSize(8)

	var buf bytes.Buffer

	err := s.Write(bufio.NewWriter(&buf), "this payload is too long")
	require.ErrorIs(t, err, errors.ErrMessageTooLarge)
	require.Zero(t, buf.Len())

	unlimited := NewFrames[string](s.Codec())
	require.NoError(t, unlimited.Write(bufio.NewWriter(&buf), "this payload is too long"))

	require.NoError(t, s.Write(bufio.NewWriter(&buf), "short"))

	r := bufio.NewReader(&buf)

	_, _, err = s.TryRead(r)

	var decodeErr *errors.DecodeError

	require.ErrorAs(t, err, &decodeErr)
	require.ErrorIs(t, err, errors.ErrMessageTooLarge)

	// The oversized frame is skipped and the next one decodes.
	msg, err := Read[string](s, r)
	require.NoError(t, err)
	require.Equal(t, "short", msg)
}

func TestFrames_FrameLargerThanBuffer(t *testing.T) {
	s := NewFrames[string](codec.JSON())

	var buf bytes.Buffer

	w := bufio.NewWriter(&buf)
	require.NoError(t, s.Write(w, strings.Repeat("x", 64)))
	require.NoError(t, s.Write(w, "fits"))

	r := bufio.NewReaderSize(&buf, 16)

	_, _, err := s.TryRead(r)
	require.ErrorIs(t, err, errors.ErrMessageTooLarge)

	msg, err := Read[string](s, r)
	require.NoError(t, err)
	require.Equal(t, "fits", msg)
}

func TestFrames_DecodeErrorConsumesFrame(t *testing.T) {
	s := NewFrames[int](codec.JSON())

	var buf bytes.Buffer

	w := bufio.NewWriter(&buf)
	require.NoError(t, NewFrames[string](codec.JSON()).Write(w, "not a number"))
	require.NoError(t, s.Write(w, 42))

	r := bufio.NewReader(&buf)

	_, _, err := s.TryRead(r)

	var decodeErr *errors.DecodeError

	require.ErrorAs(t, err, &decodeErr)

	n, err := Read[int](s, r)
	require.NoError(t, err)
	require.Equal(t, 42, n)
}
