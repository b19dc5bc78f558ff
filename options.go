package msgpipe

import (
	"log/slog"

	"github.com/wagiedev/msgpipe-go/internal/config"
)

// Option configures servers, daemons, spawned processes and listeners using
// the functional options pattern.
type Option = config.Option

// DefaultBufferSize is the default read buffer size, which bounds the
// largest message a channel can decode.
const DefaultBufferSize = config.DefaultBufferSize

// WithLogger sets the logger for debug output.
// If not set, logging is disabled (silent operation).
func WithLogger(logger *slog.Logger) Option {
	return config.WithLogger(logger)
}

// WithName labels a daemon, server or listener in log output.
func WithName(name string) Option {
	return config.WithName(name)
}

// WithBufferSize sets the read buffer size of channels created by
// SpawnStdio, SpawnStdie and Serve.
func WithBufferSize(size int) Option {
	return config.WithBufferSize(size)
}
