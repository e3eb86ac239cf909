// SPDX-License-Identifier: MPL-2.0

package cueutil

// DefaultMaxFileSize is the default maximum document size (1MB).
const DefaultMaxFileSize int64 = 1 << 20

type (
	// loadOptions holds configuration for Load.
	loadOptions struct {
		maxFileSize int64
		concrete    bool
		filename    string
	}

	// Option configures Load.
	Option func(*loadOptions)
)

// defaultOptions returns the default load options.
func defaultOptions() loadOptions {
	return loadOptions{
		maxFileSize: DefaultMaxFileSize,
		concrete:    true,
		filename:    "<input>",
	}
}

// WithMaxFileSize sets the maximum allowed document size.
// Default is DefaultMaxFileSize.
func WithMaxFileSize(size int64) Option {
	return func(o *loadOptions) {
		o.maxFileSize = size
	}
}

// WithConcrete sets whether all values must be concrete after unification.
// Default is true.
func WithConcrete(concrete bool) Option {
	return func(o *loadOptions) {
		o.concrete = concrete
	}
}

// WithFilename sets the filename shown in error messages.
func WithFilename(name string) Option {
	return func(o *loadOptions) {
		if name != "" {
			o.filename = name
		}
	}
}
