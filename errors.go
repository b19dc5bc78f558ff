package msgpipe

import "github.com/wagiedev/msgpipe-go/internal/errors"

// Re-export error types from internal package

// TransportError indicates the underlying stream failed. End of stream is a
// TransportError wrapping io.EOF.
type TransportError = errors.TransportError

// DecodeError indicates bytes were present but did not form a valid message.
type DecodeError = errors.DecodeError

// EncodeError indicates a message could not be encoded.
type EncodeError = errors.EncodeError

// MissingPipeError indicates an expected stdio pipe of a spawned process was
// not provided.
type MissingPipeError = errors.MissingPipeError

// SpawnError indicates a peer process failed to start.
type SpawnError = errors.SpawnError

// MsgpipeError is the base interface for all msgpipe errors.
type MsgpipeError = errors.MsgpipeError

// Re-export sentinel errors from internal package.
var (
	// ErrMessageTooLarge indicates a message exceeds the read buffer or size limit.
	ErrMessageTooLarge = errors.ErrMessageTooLarge

	// ErrNotTransposable indicates a channel cannot swap its read and write sides.
	ErrNotTransposable = errors.ErrNotTransposable

	// ErrSocketLocked indicates another listener holds the socket lock.
	ErrSocketLocked = errors.ErrSocketLocked

	// ErrNotSocket indicates a listener path exists but is not a socket.
	ErrNotSocket = errors.ErrNotSocket

	// ErrUnknownCodec indicates a codec name is not registered.
	ErrUnknownCodec = errors.ErrUnknownCodec
)
