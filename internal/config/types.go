// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// ColorAuto colors output when stdout is a terminal that supports it.
	ColorAuto ColorMode = "auto"
	// ColorAlways forces ANSI colors.
	ColorAlways ColorMode = "always"
	// ColorNever disables colors.
	ColorNever ColorMode = "never"

	// UnsetIndent means the indent follows the spacing.
	UnsetIndent = -1
)

var (
	// ErrInvalidColorMode is returned when a ColorMode value is not recognized.
	ErrInvalidColorMode = errors.New("invalid color mode")
	// ErrInvalidStyleFlag is the sentinel error wrapped by InvalidStyleFlagError.
	ErrInvalidStyleFlag = errors.New("invalid style flag")
	// ErrInvalidSettings is the sentinel error wrapped by InvalidSettingsError.
	ErrInvalidSettings = errors.New("invalid settings")
)

type (
	// ColorMode selects when output is colored.
	ColorMode string

	// InvalidColorModeError is returned when a ColorMode value is not
	// recognized. It wraps ErrInvalidColorMode for errors.Is() compatibility.
	InvalidColorModeError struct {
		Value ColorMode
	}

	// InvalidStyleFlagError is returned for a --style value that is not of
	// the form key=value. It wraps ErrInvalidStyleFlag.
	InvalidStyleFlagError struct {
		Value string
	}

	// InvalidSettingsError collects every invalid field. It wraps
	// ErrInvalidSettings for errors.Is() compatibility.
	InvalidSettingsError struct {
		FieldErrors []error
	}

	// Settings holds the render settings of one CLI invocation.
	Settings struct {
		// Width is the output width. Zero or less means detect it.
		Width int `mapstructure:"width"`
		// Spacing is the gap between table columns.
		Spacing int `mapstructure:"spacing"`
		// Indent is the section indentation; UnsetIndent follows Spacing.
		Indent int `mapstructure:"indent"`
		// Color selects when output is colored.
		Color ColorMode `mapstructure:"color"`
		// Style holds key=value style overrides, e.g. "arg=cyan.bold".
		Style []string `mapstructure:"style"`
		// Name is the fallback program name.
		Name string `mapstructure:"name"`
		// Verbose enables debug logging.
		Verbose bool `mapstructure:"verbose"`
	}
)

// Error implements the error interface.
func (e *InvalidColorModeError) Error() string {
	return fmt.Sprintf("invalid color mode %q (valid: auto, always, never)", e.Value)
}

// Unwrap returns ErrInvalidColorMode for errors.Is() compatibility.
func (e *InvalidColorModeError) Unwrap() error { return ErrInvalidColorMode }

// Error implements the error interface.
func (e *InvalidStyleFlagError) Error() string {
	return fmt.Sprintf("invalid style %q (expected key=value)", e.Value)
}

// Unwrap returns ErrInvalidStyleFlag for errors.Is() compatibility.
func (e *InvalidStyleFlagError) Unwrap() error { return ErrInvalidStyleFlag }

// Error implements the error interface.
func (e *InvalidSettingsError) Error() string {
	msgs := make([]string, len(e.FieldErrors))
	for i, err := range e.FieldErrors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("invalid settings: %s", strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidSettings for errors.Is() compatibility.
func (e *InvalidSettingsError) Unwrap() error { return ErrInvalidSettings }

// IsValid reports whether m is a known color mode.
func (m ColorMode) IsValid() (bool, []error) {
	switch m {
	case ColorAuto, ColorAlways, ColorNever:
		return true, nil
	default:
		return false, []error{&InvalidColorModeError{Value: m}}
	}
}

// String returns the mode name.
func (m ColorMode) String() string { return string(m) }

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() *Settings {
	return &Settings{
		Width:   0,
		Spacing: 2,
		Indent:  UnsetIndent,
		Color:   ColorAuto,
	}
}

// IsValid checks every field and reports all problems.
func (s *Settings) IsValid() (bool, []error) {
	var errs []error
	if _, colorErrs := s.Color.IsValid(); len(colorErrs) > 0 {
		errs = append(errs, colorErrs...)
	}
	if s.Spacing < 0 {
		errs = append(errs, fmt.Errorf("spacing must not be negative, got %d", s.Spacing))
	}
	if s.Indent < UnsetIndent {
		errs = append(errs, fmt.Errorf("indent must not be negative, got %d", s.Indent))
	}
	if _, err := ParseStyleFlags(s.Style); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidSettingsError{FieldErrors: errs}}
	}
	return true, nil
}
