// Package channel adapts concrete byte streams to the serializer contract.
//
// Four shapes are provided:
//   - ReadChannel: read-only, serializer supplied on every call.
//   - WriteChannel: write-only, serializer supplied on every call.
//   - UniChannel: owns a separate reader and writer plus its serializer, for
//     example a child process's stdout and stdin.
//   - BiChannel: owns one stream used in both directions plus its
//     serializer, for example a connected socket.
//
// Channels are pure delegation: every error comes from the serializer
// unchanged. A channel is the sole accessor of its streams and is not safe
// for concurrent use without external synchronization.
package channel
