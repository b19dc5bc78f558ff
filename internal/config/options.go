// Package config provides configuration types shared by msgpipe components.
package config

import (
	"io"
	"log/slog"
)

// DefaultBufferSize is the default read buffer size for channels.
// A single message must fit in the read buffer.
const DefaultBufferSize = 1024 * 1024 // 1MB

// Options configures servers, daemons, spawned peers and listeners.
type Options struct {
	// Logger is the slog logger for debug output.
	// If nil, logging is disabled (silent operation).
	Logger *slog.Logger

	// Name labels a daemon or listener in log output.
	Name string

	// BufferSize is the read buffer size of channels created by msgpipe
	// itself (spawned peers, accepted connections). Zero means DefaultBufferSize.
	BufferSize int
}

// Option configures Options using the functional options pattern.
type Option func(*Options)

// Apply applies functional options to a fresh Options struct and fills defaults.
func Apply(opts []Option) *Options {
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}

	if options.Logger == nil {
		options.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if options.BufferSize <= 0 {
		options.BufferSize = DefaultBufferSize
	}

	return options
}

// WithLogger sets the logger for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithName sets the name used to label log output.
func WithName(name string) Option {
	return func(o *Options) {
		o.Name = name
	}
}

// WithBufferSize sets the read buffer size of channels msgpipe creates.
func WithBufferSize(size int) Option {
	return func(o *Options) {
		o.BufferSize = size
	}
}
