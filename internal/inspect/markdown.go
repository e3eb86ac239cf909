// SPDX-License-Identifier: MPL-2.0

package inspect

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/invowk/helpout/pkg/render"
	"github.com/invowk/helpout/pkg/schema"
)

// Markdown renders a reference page for s: the plain help text in a code
// block followed by argument and option tables. opts are applied after
// disabling color.
func Markdown(s *schema.Schema, spec *schema.Spec, opts ...render.Option) (string, error) {
	help, err := render.Render(s, append([]render.Option{render.WithColor(false)}, opts...)...)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	if s.Name != "" {
		b.WriteString("# " + s.Name + "\n\n")
	}
	b.WriteString("```text\n" + help + "\n```\n")

	if len(spec.Positional) > 0 {
		t := table.NewWriter()
		t.AppendHeader(table.Row{"Argument", "Required", "Repeat", "Description"})
		for _, p := range spec.Positional {
			t.AppendRow(table.Row{p.Name, yesNo(p.Required), yesNo(p.Repeat), cell(p.Description)})
		}
		b.WriteString("\n## Arguments\n\n" + t.RenderMarkdown() + "\n")
	}
	if len(spec.Options) > 0 {
		t := optionWriter(spec, true)
		b.WriteString("\n## Options\n\n" + t.RenderMarkdown() + "\n")
	}
	return b.String(), nil
}
