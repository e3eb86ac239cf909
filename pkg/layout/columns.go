// SPDX-License-Identifier: MPL-2.0

package layout

import "strings"

type (
	// Row is one table entry: an id such as "-q, --quiet", an optional value
	// placeholder shown after it, and a description.
	Row struct {
		ID          string
		Arg         string
		Description string
	}

	// Tier identifies which layout AllocateColumns settled on.
	Tier int

	// Columns holds the cell widths of the id and description columns. An ID
	// of zero hides the table, a Description of zero hides descriptions.
	Columns struct {
		ID          int
		Description int
		Tier        Tier
	}
)

const (
	// TierFit shows every row on one line.
	TierFit Tier = iota
	// TierExpanded keeps ids and placeholders together and wraps descriptions.
	TierExpanded
	// TierCollapsed lets a placeholder drop below its id to widen descriptions.
	TierCollapsed
	// TierIDOnly hides descriptions.
	TierIDOnly
	// TierHidden hides the table.
	TierHidden
)

// String returns the tier name used in log output.
func (t Tier) String() string {
	switch t {
	case TierFit:
		return "fit"
	case TierExpanded:
		return "expanded"
	case TierCollapsed:
		return "collapsed"
	case TierIDOnly:
		return "id-only"
	case TierHidden:
		return "hidden"
	default:
		return "unknown"
	}
}

// Span returns the total width of both columns and the gap between them.
func (c Columns) Span(spacing int) int {
	if c.Description > 0 {
		return c.ID + spacing + c.Description
	}
	return c.ID
}

// expandedWidth is the width of a row's id and placeholder on one line.
func (r Row) expandedWidth() int {
	if r.Arg == "" {
		return Width(r.ID)
	}
	return Width(r.ID) + 1 + Width(r.Arg)
}

// collapsedWidth is the width of a row's id column when the placeholder may
// sit on a line of its own.
func (r Row) collapsedWidth() int {
	if r.Arg == "" {
		return Width(r.ID)
	}
	return max(Width(r.ID)+1, Width(r.Arg))
}

// AllocateColumns picks column widths for rows within width cells.
//
// Rows that fit side by side are shown as they are. Otherwise the expanded
// layout (id and placeholder on one line) and the collapsed layout
// (placeholder may drop to a second line) are compared by the total number of
// lines they render, preferring expanded on a tie. A layout is unusable when
// a description word does not fit its column. With neither usable only ids
// are shown, and when even collapsed ids do not fit the table is hidden.
func AllocateColumns(rows []Row, width, spacing int) Columns {
	argExp, descMax := 0, 0
	for _, r := range rows {
		argExp = max(argExp, r.expandedWidth())
		descMax = max(descMax, Width(r.Description))
	}
	if argExp+descMax+spacing <= width {
		return Columns{ID: argExp, Description: descMax, Tier: TierFit}
	}

	argClpse := 0
	for _, r := range rows {
		argClpse = max(argClpse, r.collapsedWidth())
	}
	if argClpse > width {
		return Columns{Tier: TierHidden}
	}

	dscExp := max(width-argExp-spacing, 0)
	dscClpse := max(width-argClpse-spacing, 0)
	hExp, expOK := 0, true
	hClpse, clpseOK := 0, true
	for _, r := range rows {
		if lines := WrapText(r.Description, dscExp, false); widest(lines) > dscExp {
			expOK = false
		} else {
			hExp += len(lines)
		}

		if lines := WrapText(r.Description, dscClpse, false); widest(lines) > dscClpse {
			clpseOK = false
		} else {
			idLines := 1
			if r.expandedWidth() > argClpse {
				idLines = 2
			}
			hClpse += max(idLines, len(lines))
		}
	}

	switch {
	case expOK && (!clpseOK || hExp <= hClpse):
		return Columns{ID: argExp, Description: dscExp, Tier: TierExpanded}
	case clpseOK:
		return Columns{ID: argClpse, Description: dscClpse, Tier: TierCollapsed}
	default:
		return Columns{ID: width, Tier: TierIDOnly}
	}
}

// AlignRows renders rows into the allocated columns, separated by spacing
// cells. A placeholder that does not fit beside its id is right-aligned on
// the line below it. Returns "" when the id column is hidden.
func AlignRows(rows []Row, cols Columns, spacing int) string {
	if cols.ID <= 0 {
		return ""
	}

	var lines []string
	for _, r := range rows {
		id := []string{r.ID}
		if r.Arg != "" {
			if r.expandedWidth() > cols.ID {
				id = append(id, spaces(cols.ID-Width(r.Arg))+r.Arg)
			} else {
				id[0] += " " + r.Arg
			}
		}
		if cols.Description <= 0 {
			lines = append(lines, id...)
			continue
		}

		wrapped := WrapText(r.Description, cols.Description, false)
		for i := range max(len(id), len(wrapped)) {
			line := spaces(cols.ID)
			if i < len(id) {
				line = padRight(id[i], cols.ID)
			}
			if i < len(wrapped) && wrapped[i] != "" {
				line += spaces(spacing) + wrapped[i]
			}
			lines = append(lines, strings.TrimRight(line, " "))
		}
	}
	return strings.Join(lines, "\n")
}
