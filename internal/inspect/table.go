// SPDX-License-Identifier: MPL-2.0

package inspect

import (
	"slices"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/invowk/helpout/pkg/schema"
)

// none marks an empty cell.
const none = "-"

// OptionHeader lists the columns of the option table.
var OptionHeader = table.Row{"NAME", "ALIASES", "ARGS", "REQUIRED", "CONFLICTS", "REQUIRES"}

// OptionTable renders one row per option of spec with its relationships.
func OptionTable(spec *schema.Spec, color bool) string {
	t := optionWriter(spec, false)
	t.SetStyle(table.StyleRounded)
	if color {
		t.Style().Color.Header = text.Colors{text.Bold, text.FgHiCyan}
	}
	return t.Render()
}

func optionWriter(spec *schema.Spec, describe bool) table.Writer {
	t := table.NewWriter()
	header := OptionHeader
	if describe {
		header = append(slices.Clone(header), "DESCRIPTION")
	}
	t.AppendHeader(header)
	for _, o := range spec.Options {
		row := table.Row{
			"--" + o.Name,
			cell(flags(o.Aliases)),
			cell(argList(o.Args)),
			yesNo(o.Required),
			cell(flags(o.Conflicts)),
			cell(flag(o.Requires)),
		}
		if describe {
			row = append(row, cell(o.Description))
		}
		t.AppendRow(row)
	}
	return t
}

// argList renders option values the way the usage line shows them.
func argList(args []schema.Arg) string {
	parts := make([]string, len(args))
	for i, a := range args {
		s := "<" + a.Name + ">"
		if a.Repeat {
			s += " ..."
		}
		if !a.Required {
			s = "[" + s + "]"
		}
		parts[i] = s
	}
	return strings.Join(parts, " ")
}

func flags(names []string) string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = flag(n)
	}
	return strings.Join(out, ", ")
}

func flag(name string) string {
	switch len(name) {
	case 0:
		return ""
	case 1:
		return "-" + name
	default:
		return "--" + name
	}
}

func cell(s string) string {
	if s == "" {
		return none
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
