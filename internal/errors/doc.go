// Package errors defines error types for msgpipe.
//
// Errors are classified by origin: the stream failed (TransportError), bytes
// did not form a message (DecodeError), a message could not be encoded
// (EncodeError), or a peer process could not be set up (SpawnError,
// MissingPipeError). All error types support unwrapping and can be checked
// using errors.Is, errors.As, and errors.AsType.
//
// "No complete message yet" is not an error and never appears here.
package errors
