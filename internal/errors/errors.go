package errors

import (
	"errors"
	"fmt"
)

// MsgpipeError is the base interface for all msgpipe errors.
type MsgpipeError interface {
	error
	IsMsgpipeError() bool
}

// Compile-time verification that all error types implement MsgpipeError.
var (
	_ MsgpipeError = (*TransportError)(nil)
	_ MsgpipeError = (*DecodeError)(nil)
	_ MsgpipeError = (*EncodeError)(nil)
	_ MsgpipeError = (*MissingPipeError)(nil)
	_ MsgpipeError = (*SpawnError)(nil)
)

// Sentinel errors for commonly checked conditions.
var (
	// ErrMessageTooLarge indicates a message does not fit the read buffer
	// or exceeds the configured size limit.
	ErrMessageTooLarge = errors.New("message too large")

	// ErrNotTransposable indicates a channel cannot swap its read and write sides.
	ErrNotTransposable = errors.New("channel not transposable")

	// ErrSocketLocked indicates another listener holds the socket lock.
	ErrSocketLocked = errors.New("socket is locked by another listener")

	// ErrNotSocket indicates a listener path exists but is not a socket.
	ErrNotSocket = errors.New("path exists and is not a socket")

	// ErrUnknownCodec indicates a codec name or content type is not registered.
	ErrUnknownCodec = errors.New("unknown codec")
)

// TransportError indicates the underlying stream failed on read, write or flush.
// End of stream is reported as a TransportError wrapping io.EOF.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsMsgpipeError implements MsgpipeError.
func (e *TransportError) IsMsgpipeError() bool { return true }

// DecodeError indicates bytes were present but did not form a valid message.
// RawData holds the offending bytes when they are known.
type DecodeError struct {
	RawData string
	Err     error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode message: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsMsgpipeError implements MsgpipeError.
func (e *DecodeError) IsMsgpipeError() bool { return true }

// EncodeError indicates a message could not be encoded.
type EncodeError struct {
	Err error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("failed to encode message: %v", e.Err)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}

// IsMsgpipeError implements MsgpipeError.
func (e *EncodeError) IsMsgpipeError() bool { return true }

// MissingPipeError indicates an expected stdio pipe of a spawned process
// was not provided.
type MissingPipeError struct {
	Pipe string
	Err  error
}

func (e *MissingPipeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("spawned process %s pipe is missing: %v", e.Pipe, e.Err)
	}

	return fmt.Sprintf("spawned process %s pipe is missing", e.Pipe)
}

func (e *MissingPipeError) Unwrap() error {
	return e.Err
}

// IsMsgpipeError implements MsgpipeError.
func (e *MissingPipeError) IsMsgpipeError() bool { return true }

// SpawnError indicates the operating system failed to start a peer process.
type SpawnError struct {
	Path string
	Err  error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("failed to spawn %s: %v", e.Path, e.Err)
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}

// IsMsgpipeError implements MsgpipeError.
func (e *SpawnError) IsMsgpipeError() bool { return true }
