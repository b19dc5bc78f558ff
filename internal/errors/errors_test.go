package errors

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTransportError(t *testing.T) {
	err := &TransportError{Op: "read", Err: io.EOF}

	require.Equal(t, "transport read: EOF", err.Error())
	require.ErrorIs(t, err, io.EOF)
	require.True(t, err.IsMsgpipeError())
}

func TestDecodeError(t *testing.T) {
	root := errors.New("unexpected token")
	err := &DecodeError{
		RawData: `{"not":"valid",`,
		Err:     root,
	}

	require.Equal(t, "failed to decode message: unexpected token", err.Error())
	require.ErrorIs(t, err, root)
	require.True(t, err.IsMsgpipeError())
}

func TestDecodeError_MessageTooLarge(t *testing.T) {
	err := &DecodeError{Err: ErrMessageTooLarge}

	require.ErrorIs(t, err, ErrMessageTooLarge)
}

func TestEncodeError(t *testing.T) {
	root := errors.New("unsupported type")
	err := &EncodeError{Err: root}

	require.Equal(t, "failed to encode message: unsupported type", err.Error())
	require.ErrorIs(t, err, root)
	require.True(t, err.IsMsgpipeError())
}

func TestMissingPipeError_WithUnderlyingError(t *testing.T) {
	root := errors.New("exec: Stdin already set")
	err := &MissingPipeError{Pipe: "stdin", Err: root}

	require.Equal(t, "spawned process stdin pipe is missing: exec: Stdin already set", err.Error())
	require.ErrorIs(t, err, root)
	require.True(t, err.IsMsgpipeError())
}

func TestMissingPipeError_WithoutUnderlyingError(t *testing.T) {
	err := &MissingPipeError{Pipe: "stdout"}

	require.Equal(t, "spawned process stdout pipe is missing", err.Error())
	require.NoError(t, err.Unwrap())
}

func TestSpawnError(t *testing.T) {
	root := errors.New("executable file not found in $PATH")
	err := &SpawnError{Path: "peer", Err: root}

	require.Equal(t, "failed to spawn peer: executable file not found in $PATH", err.Error())
	require.ErrorIs(t, err, root)

	var target MsgpipeError

	require.ErrorAs(t, err, &target)
}
