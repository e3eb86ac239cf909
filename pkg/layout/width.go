// SPDX-License-Identifier: MPL-2.0

// Package layout fits help text into a terminal width: word wrapping, the
// usage line, and the two-column argument and option tables.
//
// All measurements are in terminal cells and ignore ANSI escape sequences, so
// styled and plain text lay out identically.
package layout

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Width returns the number of cells s occupies, ignoring escape sequences.
func Width(s string) int {
	return ansi.StringWidth(s)
}

// Strip removes escape sequences from s.
func Strip(s string) string {
	return ansi.Strip(s)
}

// widest returns the largest Width among strs.
func widest(strs []string) int {
	w := 0
	for _, s := range strs {
		w = max(w, Width(s))
	}
	return w
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}

// padRight pads s with spaces to width cells.
func padRight(s string, width int) string {
	return s + spaces(width-Width(s))
}
