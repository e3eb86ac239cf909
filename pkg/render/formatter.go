// SPDX-License-Identifier: MPL-2.0

package render

import (
	"fmt"
	"strings"

	"github.com/invowk/helpout/pkg/layout"
	"github.com/invowk/helpout/pkg/schema"
	"github.com/invowk/helpout/pkg/usage"
)

// shortPad aligns long-only option ids under the long names of rows that
// start with "-x, ".
const shortPad = "    "

// flagForm selects how an option name is displayed on the usage line.
type flagForm int

const (
	longFlag flagForm = iota
	shortFlag
)

// formatter turns validated schema entries and usage nodes into styled text.
type formatter struct {
	styles map[string]styler
}

func (f *formatter) style(key, s string) string {
	return f.styles[key](s)
}

// flag renders a single option name with its dashes.
func flag(name string) string {
	if len([]rune(name)) > 1 {
		return "--" + name
	}
	return "-" + name
}

// displayName picks the name an option is shown under in the given form.
func displayName(o *schema.Option, form flagForm) string {
	long := o.Name
	if o.PreferAlias != "" {
		long = o.PreferAlias
	}
	if form == shortFlag {
		if name, ok := shortName(o); ok {
			return name
		}
	}
	return long
}

// shortName returns the first single-letter name of o.
func shortName(o *schema.Option) (string, bool) {
	for _, name := range append([]string{o.Name}, o.Aliases...) {
		if len([]rune(name)) == 1 {
			return name, true
		}
	}
	return "", false
}

// positional renders a positional argument for the usage line and the
// arguments table.
func (f *formatter) positional(p schema.Positional) string {
	var s string
	switch {
	case p.Required && p.Repeat:
		s = "<" + p.Name + "> ..."
	case p.Required:
		s = "<" + p.Name + ">"
	case p.Repeat:
		s = "[" + p.Name + " ...]"
	default:
		s = "[" + p.Name + "]"
	}
	return f.style(StyleArg, s)
}

func (f *formatter) arg(a schema.Arg) string {
	s := "<" + a.Name + ">"
	if a.Repeat {
		s += " ..."
	}
	s = f.style(StyleArg, s)
	if !a.Required {
		s = "[" + s + "]"
	}
	return s
}

func (f *formatter) args(args []schema.Arg) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = f.arg(a)
	}
	return strings.Join(parts, " ")
}

// node renders a usage node. Bare nodes are exclusive alternatives and are
// never wrapped in their own brackets.
func (f *formatter) node(n usage.Node, form flagForm, bare bool) (string, error) {
	switch n := n.(type) {
	case *usage.OptionNode:
		s := f.style(StyleOption, flag(displayName(n.Option, form)))
		if len(n.Option.Args) > 0 {
			s += " " + f.args(n.Option.Args)
		}
		if n.Dependent != nil {
			dep, err := f.node(n.Dependent, form, false)
			if err != nil {
				return "", err
			}
			s += " " + dep
		}
		if bare || n.Option.Required {
			return s, nil
		}
		return "[" + s + "]", nil
	case *usage.Group:
		parts, err := f.nodes(n.Members, form, false)
		if err != nil {
			return "", err
		}
		return strings.Join(parts, " "), nil
	case *usage.ExclusiveGroup:
		parts, err := f.nodes(n.Members, form, true)
		if err != nil {
			return "", err
		}
		s := strings.Join(parts, " | ")
		if n.Required() {
			return "(" + s + ")", nil
		}
		return "[" + s + "]", nil
	default:
		return "", fmt.Errorf("unknown usage node type %T", n)
	}
}

func (f *formatter) nodes(members []usage.Node, form flagForm, bare bool) ([]string, error) {
	parts := make([]string, len(members))
	for i, m := range members {
		s, err := f.node(m, form, bare)
		if err != nil {
			return nil, err
		}
		parts[i] = s
	}
	return parts, nil
}

// tokens renders the usage line elements: positionals first, then one token
// per top-level usage node.
func (f *formatter) tokens(positional []schema.Positional, forest []usage.Node) ([]layout.Token, error) {
	tokens := make([]layout.Token, 0, len(positional)+len(forest))
	for _, p := range positional {
		s := f.positional(p)
		tokens = append(tokens, layout.Token{Long: s, Short: s})
	}
	for _, n := range forest {
		long, err := f.node(n, longFlag, false)
		if err != nil {
			return nil, err
		}
		short, err := f.node(n, shortFlag, false)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, layout.Token{Long: long, Short: short})
	}
	return tokens, nil
}

func (f *formatter) argRows(positional []schema.Positional) []layout.Row {
	rows := make([]layout.Row, len(positional))
	for i, p := range positional {
		rows[i] = layout.Row{ID: f.positional(p), Description: p.Description}
	}
	return rows
}

func (f *formatter) optionRows(options []schema.Option) []layout.Row {
	anyShort := false
	for i := range options {
		if _, ok := shortName(&options[i]); ok {
			anyShort = true
			break
		}
	}

	rows := make([]layout.Row, len(options))
	for i := range options {
		var short, long []string
		for _, name := range append([]string{options[i].Name}, options[i].Aliases...) {
			styled := f.style(StyleOption, flag(name))
			if len([]rune(name)) == 1 {
				short = append(short, styled)
			} else {
				long = append(long, styled)
			}
		}
		id := strings.Join(append(short, long...), ", ")
		if anyShort && len(short) == 0 {
			id = shortPad + id
		}
		rows[i] = layout.Row{
			ID:          id,
			Arg:         f.args(options[i].Args),
			Description: options[i].Description,
		}
	}
	return rows
}

func (f *formatter) title(s string) string {
	return f.style(StyleTitle, s)
}
