// SPDX-License-Identifier: MPL-2.0

package layout

import (
	"math"
	"strings"
)

// Unbounded is a width that never forces wrapping.
const Unbounded = math.MaxInt

// Token is one element of a usage line in its long form ("[--verbose]") and
// its short form ("[-V]"). Short equals Long when no short form exists.
type Token struct {
	Long  string
	Short string
}

// UsageForm reports which token form WrapUsage chose.
type UsageForm int

const (
	// UsageLong shows every token in its long form.
	UsageLong UsageForm = iota
	// UsageShort shows every token in its short form.
	UsageShort
	// UsageHidden replaces the tokens with "...".
	UsageHidden
)

// String returns the form name used in log output.
func (f UsageForm) String() string {
	switch f {
	case UsageLong:
		return "long"
	case UsageShort:
		return "short"
	default:
		return "hidden"
	}
}

// WrapUsage lays out "name tok1 tok2 ..." within maxWidth cells.
//
// Long forms are used when the widest of them fits beside the name, short
// forms otherwise, and when even a short form does not fit the tokens are
// replaced by "...". Lines are filled up to targetWidth (maxWidth when
// targetWidth <= 0) but never narrower than the widest token. When the tokens
// need more than one line, breaks minimize the sum of squared unused cells
// over all lines, and continuation lines are indented under the first token.
func WrapUsage(name string, tokens []Token, maxWidth, targetWidth int) string {
	text, _ := FitUsage(name, tokens, maxWidth, targetWidth)
	return text
}

// FitUsage is WrapUsage that also reports the token form it chose.
func FitUsage(name string, tokens []Token, maxWidth, targetWidth int) (string, UsageForm) {
	if len(tokens) == 0 {
		return name, UsageLong
	}
	prefix := Width(name) + 1
	budget := maxWidth - prefix
	if targetWidth <= 0 {
		targetWidth = maxWidth
	}

	form := UsageLong
	args := make([]string, len(tokens))
	for i, t := range tokens {
		args[i] = t.Long
	}
	if widest(args) > budget {
		form = UsageShort
		for i, t := range tokens {
			args[i] = t.Short
		}
		if widest(args) > budget {
			return name + " ...", UsageHidden
		}
	}

	wrapWidth := max(widest(args), targetWidth-prefix)
	if Width(strings.Join(args, " ")) <= wrapWidth {
		return name + " " + strings.Join(args, " "), form
	}

	lines := balance(args, wrapWidth)
	indent := spaces(prefix)
	for i := range lines {
		if i == 0 {
			lines[i] = name + " " + lines[i]
		} else {
			lines[i] = indent + lines[i]
		}
	}
	return strings.Join(lines, "\n"), form
}

// balance breaks words into lines of at most width cells, minimizing the sum
// of squared slack over every line. Every word must fit within width.
func balance(words []string, width int) []string {
	n := len(words)
	widths := make([]int, n)
	for i, w := range words {
		widths[i] = Width(w)
	}

	// cost[i] is the best total for words[i:], next[i] the end of its first line.
	cost := make([]int, n+1)
	next := make([]int, n+1)
	for i := n - 1; i >= 0; i-- {
		cost[i] = math.MaxInt
		lineW := -1
		for j := i; j < n; j++ {
			lineW += widths[j] + 1
			if lineW > width {
				break
			}
			slack := width - lineW
			if c := slack*slack + cost[j+1]; c <= cost[i] {
				cost[i] = c
				next[i] = j + 1
			}
		}
		if next[i] == 0 {
			// words[i] alone is wider than width: give it its own line.
			cost[i], next[i] = cost[i+1], i+1
		}
	}

	var lines []string
	for i := 0; i < n; i = next[i] {
		lines = append(lines, strings.Join(words[i:next[i]], " "))
	}
	return lines
}
