// SPDX-License-Identifier: MPL-2.0

package schema

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidSchema is the sentinel error wrapped by ValidationError.
	ErrInvalidSchema = errors.New("invalid help output config")

	// ErrMissingSchema is returned when no schema is given at all.
	ErrMissingSchema = errors.New("a help schema is required")

	// ErrLeadingRepeat is the sentinel error wrapped by LeadingRepeatError.
	ErrLeadingRepeat = errors.New("leading repeat indicator")
)

type (
	// ValidationError lists every problem found in a schema. It wraps
	// ErrInvalidSchema for errors.Is() compatibility.
	ValidationError struct {
		Errors []string
	}

	// LeadingRepeatError is returned when an arg string starts with a repeat
	// indicator ("..." or "…") that has nothing to apply to.
	LeadingRepeatError struct {
		Arg string
	}
)

// Error renders the problems as a bulleted list.
func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("Invalid help output config")
	for _, msg := range e.Errors {
		b.WriteString("\n * ")
		b.WriteString(msg)
	}
	return b.String()
}

// Unwrap returns ErrInvalidSchema for errors.Is() compatibility.
func (e *ValidationError) Unwrap() error { return ErrInvalidSchema }

// Error implements the error interface for LeadingRepeatError.
func (e *LeadingRepeatError) Error() string {
	return fmt.Sprintf("arg '%s' contains a leading variadic indicator", e.Arg)
}

// Unwrap returns ErrLeadingRepeat for errors.Is() compatibility.
func (e *LeadingRepeatError) Unwrap() error { return ErrLeadingRepeat }

// problems collects validation messages in discovery order.
type problems []string

func (p *problems) addf(format string, args ...any) {
	*p = append(*p, fmt.Sprintf(format, args...))
}

func (p problems) err() error {
	if len(p) == 0 {
		return nil
	}
	return &ValidationError{Errors: p}
}
