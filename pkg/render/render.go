// SPDX-License-Identifier: MPL-2.0

package render

import (
	"errors"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/invowk/helpout/pkg/layout"
	"github.com/invowk/helpout/pkg/schema"
	"github.com/invowk/helpout/pkg/usage"
)

// Section titles.
const (
	UsageTitle     = "USAGE:"
	ArgumentsTitle = "ARGUMENTS:"
	OptionsTitle   = "OPTIONS:"
)

var (
	// ErrMissingSchema is returned when Render is called without a schema.
	ErrMissingSchema = schema.ErrMissingSchema

	// ErrMissingName is returned when the usage line needs a program name
	// and neither the schema nor WithProgramName provides one.
	ErrMissingName = errors.New("a program name is required")
)

// Render validates s and renders its help text.
//
// Validation problems and usage contradictions are reported together as a
// *schema.ValidationError. Narrow widths never fail: columns are collapsed or
// hidden and the usage line falls back to short option names, then to "...".
func Render(s *schema.Schema, opts ...Option) (string, error) {
	if s == nil {
		return "", ErrMissingSchema
	}
	o := newOptions(opts)
	logger := o.logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	spec, err := schema.Validate(s)
	if err != nil {
		return "", err
	}
	stylers, err := compileStyles(o.styles, o.color, o.profile)
	if err != nil {
		return "", err
	}
	forest, err := usage.Resolve(spec.Options)
	if err != nil {
		return "", err
	}

	f := &formatter{styles: stylers}
	tokens, err := f.tokens(spec.Positional, forest)
	if err != nil {
		return "", err
	}
	name := s.Name
	if name == "" {
		name = o.programName
	}
	if name == "" && len(tokens) > 0 {
		return "", ErrMissingName
	}

	argRows := f.argRows(spec.Positional)
	optionRows := f.optionRows(spec.Options)
	inner := o.width - o.indent
	if o.width == layout.Unbounded {
		inner = layout.Unbounded
	}
	cols := layout.AllocateColumns(append(append([]layout.Row{}, argRows...), optionRows...), inner, o.spacing)
	logger.Debug("allocated table columns", "tier", cols.Tier, "id", cols.ID, "description", cols.Description)

	var sections []string
	if head := renderHead(s, name, o.width); head != "" {
		sections = append(sections, head)
	}
	if len(tokens) > 0 {
		target := cols.Span(o.spacing)
		if o.width == layout.Unbounded {
			target = layout.Unbounded
		}
		line, form := layout.FitUsage(name, tokens, inner, target)
		logger.Debug("wrapped usage line", "form", form, "tokens", len(tokens))
		sections = append(sections, section(f.title(UsageTitle), line, o.indent))
	}
	if table := layout.AlignRows(argRows, cols, o.spacing); table != "" {
		sections = append(sections, section(f.title(ArgumentsTitle), table, o.indent))
	}
	if table := layout.AlignRows(optionRows, cols, o.spacing); table != "" {
		sections = append(sections, section(f.title(OptionsTitle), table, o.indent))
	}
	return strings.Join(sections, "\n\n"), nil
}

// renderHead renders the title and description. The description is wrapped
// at word boundaries, split mid-word when a word overflows a wide enough
// output, and dropped when the output is too narrow for either.
func renderHead(s *schema.Schema, name string, width int) string {
	var lines []string
	if s.Title != "" {
		lines = append(lines, strings.NewReplacer("%name", name, "%version", s.Version).Replace(s.Title))
	}
	if s.Description != "" {
		desc := layout.WrapText(s.Description, width, false)
		if overflows(desc, width) {
			if width >= MinHardWrapWidth {
				desc = layout.WrapText(s.Description, width, true)
			} else {
				desc = nil
			}
		}
		lines = append(lines, desc...)
	}
	return strings.Join(lines, "\n")
}

func overflows(lines []string, width int) bool {
	for _, l := range lines {
		if layout.Width(l) > width {
			return true
		}
	}
	return false
}

// section renders a titled block with its content indented.
func section(title, content string, indent int) string {
	pad := strings.Repeat(" ", max(indent, 0))
	lines := strings.Split(content, "\n")
	for i, l := range lines {
		lines[i] = pad + l
	}
	return title + "\n" + strings.Join(lines, "\n")
}
