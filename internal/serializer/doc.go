// Package serializer defines the contract that turns a byte stream into a
// typed message stream and back.
//
// A Serializer decodes from a *bufio.Reader so that an incomplete message can
// stay buffered: TryRead reports "no message yet" (ok == false, err == nil)
// without consuming the partial bytes, and a later call sees those bytes plus
// whatever arrived since. Once the stream ends the partial bytes are final:
// JSONLines decodes an unterminated last line, and Frames reports a
// truncated frame as a TransportError wrapping io.ErrUnexpectedEOF. Write
// always flushes before returning.
//
// Two implementations are provided:
//   - JSONLines: one JSON value per line, blank lines ignored, optionally
//     validated against a JSON Schema.
//   - Frames: a 4-byte big-endian length prefix followed by a payload encoded
//     with any codec.Codec, suitable for binary encodings.
package serializer
