package packmat

import (
	"github.com/hupe1980/packmat/codec"
	"github.com/hupe1980/packmat/stream"
)

type options struct {
	codec       codec.Codec
	compression stream.Compression
	logger      *Logger
}

// Option configures WriteMatrix and OpenMatrix behavior.
//
// Today options primarily exist to avoid exploding the API surface
// (e.g. compression-specific constructor variants).
type Option func(*options)

func defaultOptions() *options {
	return &options{
		codec:       codec.Default,
		compression: stream.Zstd,
		logger:      NoopLogger(),
	}
}

// WithCodec configures the codec used for the manifest.
//
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithCompression selects how the integer streams are stored. The choice
// is recorded in the manifest, so readers pick it up automatically.
//
// The default is zstd; stream.None trades disk for open/write speed, which
// can be reasonable on stores that compress transparently.
func WithCompression(c stream.Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithLogger configures structured logging. By default nothing is logged.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}
