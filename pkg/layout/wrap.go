// SPDX-License-Identifier: MPL-2.0

package layout

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// WrapText wraps s into rows of at most columns cells, one paragraph per input
// line. Words are separated by whitespace and rows carry no leading or
// trailing spaces.
//
// In soft mode a word wider than columns gets a row of its own and overflows
// it. In hard mode such a word is split across rows, starting on the current
// row unless that would make it span more rows than starting on a fresh one.
func WrapText(s string, columns int, hard bool) []string {
	var rows []string
	for _, paragraph := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n") {
		rows = append(rows, wrapParagraph(paragraph, columns, hard && columns > 0)...)
	}
	return rows
}

func wrapParagraph(paragraph string, columns int, hard bool) []string {
	words := strings.Fields(paragraph)
	if len(words) == 0 {
		return []string{""}
	}

	rows := []string{""}
	for _, word := range words {
		rowW := Width(rows[len(rows)-1])
		w := Width(word)

		if hard && w > columns {
			remaining := columns - rowW
			if rowW > 0 {
				remaining--
			}
			breaksThis := 1 + (w-remaining-1)/columns
			breaksNext := (w - 1) / columns
			switch {
			case breaksNext < breaksThis || remaining <= 0:
				if rowW > 0 {
					rows = append(rows, "")
				}
			case rowW > 0:
				rows[len(rows)-1] += " "
			}
			rows = splitWord(rows, word, columns)
			continue
		}

		if rowW > 0 {
			if rowW+1+w > columns {
				rows = append(rows, word)
				continue
			}
			rows[len(rows)-1] += " "
		}
		rows[len(rows)-1] += word
	}
	return rows
}

// splitWord appends word to the last row, moving to a new row each time the
// current one reaches columns cells.
func splitWord(rows []string, word string, columns int) []string {
	total := Width(word)
	for pos := 0; pos < total; {
		free := columns - Width(rows[len(rows)-1])
		if free <= 0 {
			rows = append(rows, "")
			continue
		}
		chunk := ansi.Cut(word, pos, pos+free)
		cw := Width(chunk)
		if cw == 0 {
			// A wide rune that does not fit in the remaining cells.
			if Width(rows[len(rows)-1]) == 0 {
				chunk = ansi.Cut(word, pos, pos+free+1)
				cw = max(Width(chunk), 1)
			} else {
				rows = append(rows, "")
				continue
			}
		}
		rows[len(rows)-1] += chunk
		pos += cw
	}
	return rows
}
