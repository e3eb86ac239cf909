// SPDX-License-Identifier: MPL-2.0

package render

import (
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
)

const (
	// DefaultWidth is the output width used when none is given.
	DefaultWidth = 80
	// DefaultSpacing is the gap between the id and description columns.
	DefaultSpacing = 2
	// MinHardWrapWidth is the narrowest width at which an overflowing head
	// description is split mid-word instead of being hidden.
	MinHardWrapWidth = 20
)

type (
	// renderOptions holds the settings of one Render call.
	renderOptions struct {
		width       int
		spacing     int
		indent      int
		indentSet   bool
		color       bool
		styles      Styles
		programName string
		profile     termenv.Profile
		logger      *log.Logger
	}

	// Option configures rendering.
	Option func(*renderOptions)
)

// defaultOptions returns the default render options.
func defaultOptions() renderOptions {
	return renderOptions{
		width:   DefaultWidth,
		spacing: DefaultSpacing,
		color:   true,
		profile: termenv.ANSI,
	}
}

func newOptions(opts []Option) renderOptions {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if !o.indentSet {
		o.indent = o.spacing
	}
	return o
}

// WithWidth sets the total output width in terminal cells.
// Default is DefaultWidth. Use layout.Unbounded to never wrap.
func WithWidth(width int) Option {
	return func(o *renderOptions) {
		o.width = width
	}
}

// WithSpacing sets the gap between table columns.
// Default is DefaultSpacing.
func WithSpacing(spacing int) Option {
	return func(o *renderOptions) {
		o.spacing = spacing
	}
}

// WithIndent sets the indentation of section content.
// Default is the column spacing.
func WithIndent(indent int) Option {
	return func(o *renderOptions) {
		o.indent = indent
		o.indentSet = true
	}
}

// WithColor enables or disables styling. Default is true.
//
// Style overrides are validated either way.
func WithColor(color bool) Option {
	return func(o *renderOptions) {
		o.color = color
	}
}

// WithStyles overrides entries of DefaultStyles.
func WithStyles(styles Styles) Option {
	return func(o *renderOptions) {
		o.styles = styles
	}
}

// WithProgramName sets the name shown in the usage line when the schema does
// not name the program.
func WithProgramName(name string) Option {
	return func(o *renderOptions) {
		o.programName = name
	}
}

// WithColorProfile sets the color profile styles are rendered with.
// Default is termenv.ANSI, which keeps output identical across terminals.
func WithColorProfile(profile termenv.Profile) Option {
	return func(o *renderOptions) {
		o.profile = profile
	}
}

// WithLogger sets a logger for layout decisions, logged at debug level.
// Default is no logging.
func WithLogger(logger *log.Logger) Option {
	return func(o *renderOptions) {
		o.logger = logger
	}
}
