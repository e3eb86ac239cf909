// SPDX-License-Identifier: MPL-2.0

package render

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Style keys.
const (
	StyleArg    = "arg"
	StyleOption = "option"
	StyleTitle  = "title"
)

// ErrInvalidStyles is the sentinel error wrapped by StyleError.
var ErrInvalidStyles = errors.New("invalid styles config")

type (
	// Styles maps a style key to a style descriptor: a string of style ids
	// joined by dots ("bold.red"), a list of such strings, or nil for no
	// styling.
	Styles map[string]any

	// StyleError lists every problem found in a styles config. It wraps
	// ErrInvalidStyles for errors.Is() compatibility.
	StyleError struct {
		Errors []string
	}

	// styler applies one style key.
	styler func(string) string
)

// styleKeys lists the valid keys in the order they are checked.
var styleKeys = []string{StyleArg, StyleOption, StyleTitle}

// ansiColors maps color names to ANSI color indexes. Background variants
// are the same names prefixed with "bg".
var ansiColors = map[string]int{
	"black": 0, "red": 1, "green": 2, "yellow": 3,
	"blue": 4, "magenta": 5, "cyan": 6, "white": 7,
	"blackBright": 8, "gray": 8, "grey": 8,
	"redBright": 9, "greenBright": 10, "yellowBright": 11, "blueBright": 12,
	"magentaBright": 13, "cyanBright": 14, "whiteBright": 15,
}

var modifiers = map[string]func(lipgloss.Style) lipgloss.Style{
	"reset":         func(s lipgloss.Style) lipgloss.Style { return s },
	"bold":          func(s lipgloss.Style) lipgloss.Style { return s.Bold(true) },
	"dim":           func(s lipgloss.Style) lipgloss.Style { return s.Faint(true) },
	"italic":        func(s lipgloss.Style) lipgloss.Style { return s.Italic(true) },
	"underline":     func(s lipgloss.Style) lipgloss.Style { return s.Underline(true) },
	"inverse":       func(s lipgloss.Style) lipgloss.Style { return s.Reverse(true) },
	"strikethrough": func(s lipgloss.Style) lipgloss.Style { return s.Strikethrough(true) },
}

// DefaultStyles returns the styles used when none are overridden.
func DefaultStyles() Styles {
	return Styles{
		StyleArg:    "yellow",
		StyleOption: "green",
		StyleTitle:  "bold.underline",
	}
}

// Error renders the problems as a bulleted list.
func (e *StyleError) Error() string {
	var b strings.Builder
	b.WriteString("Invalid styles config")
	for _, msg := range e.Errors {
		b.WriteString("\n * ")
		b.WriteString(msg)
	}
	return b.String()
}

// Unwrap returns ErrInvalidStyles for errors.Is() compatibility.
func (e *StyleError) Unwrap() error { return ErrInvalidStyles }

// ParseStyles accepts a loosely typed styles object, such as one decoded
// from YAML or JSON.
func ParseStyles(v any) (Styles, error) {
	switch v := v.(type) {
	case nil:
		return nil, nil
	case Styles:
		return v, nil
	case map[string]any:
		return Styles(v), nil
	default:
		return nil, &StyleError{Errors: []string{"styles option must be an object"}}
	}
}

// styleIDs splits a style descriptor into ids. ok is false when the
// descriptor has the wrong type.
func styleIDs(value any) (ids []string, ok bool) {
	var parts []string
	switch v := value.(type) {
	case string:
		parts = []string{v}
	case []string:
		parts = v
	case []any:
		for _, item := range v {
			s, isString := item.(string)
			if !isString {
				return nil, false
			}
			parts = append(parts, s)
		}
	default:
		return nil, false
	}
	for _, p := range parts {
		for _, id := range strings.Split(p, ".") {
			if id != "" {
				ids = append(ids, id)
			}
		}
	}
	return ids, true
}

// applyStyleID adds a single style id to s.
func applyStyleID(s lipgloss.Style, id string) (lipgloss.Style, bool) {
	if mod, ok := modifiers[id]; ok {
		return mod(s), true
	}
	if idx, ok := ansiColors[id]; ok {
		return s.Foreground(lipgloss.Color(fmt.Sprint(idx))), true
	}
	if name, isBg := strings.CutPrefix(id, "bg"); isBg && name != "" {
		name = strings.ToLower(name[:1]) + name[1:]
		if idx, ok := ansiColors[name]; ok {
			return s.Background(lipgloss.Color(fmt.Sprint(idx))), true
		}
	}
	return s, false
}

// compileStyles merges overrides into the defaults and builds a styler per
// key. With color disabled every styler is the identity, but overrides are
// still validated.
func compileStyles(overrides Styles, color bool, profile termenv.Profile) (map[string]styler, error) {
	merged := DefaultStyles()
	for k, v := range overrides {
		merged[k] = v
	}

	keys := slices.Clone(styleKeys)
	var unknown []string
	for k := range merged {
		if !slices.Contains(styleKeys, k) {
			unknown = append(unknown, k)
		}
	}
	slices.Sort(unknown)
	keys = append(keys, unknown...)

	renderer := lipgloss.NewRenderer(io.Discard)
	renderer.SetColorProfile(profile)

	var errs []string
	stylers := make(map[string]styler, len(styleKeys))
	for _, key := range keys {
		value := merged[key]
		if !slices.Contains(styleKeys, key) {
			errs = append(errs, fmt.Sprintf("'%s' is not a valid style key", key))
			continue
		}
		if value == nil {
			stylers[key] = plain
			continue
		}
		ids, ok := styleIDs(value)
		if !ok {
			errs = append(errs, fmt.Sprintf("style value for '%s' must be a string, array of strings, or null", key))
			continue
		}

		style := renderer.NewStyle()
		for _, id := range ids {
			var known bool
			if style, known = applyStyleID(style, id); !known {
				errs = append(errs, fmt.Sprintf("'%s' is not a recognized style", id))
			}
		}
		if color {
			stylers[key] = func(s string) string { return style.Render(s) }
		} else {
			stylers[key] = plain
		}
	}

	if len(errs) > 0 {
		return nil, &StyleError{Errors: errs}
	}
	return stylers, nil
}

func plain(s string) string { return s }
