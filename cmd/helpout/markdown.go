// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/invowk/helpout/internal/inspect"
	"github.com/invowk/helpout/pkg/render"
)

// markdownWidth is the help text width inside the generated code block.
const markdownWidth = 80

// newMarkdownCommand creates the `helpout markdown` command.
func newMarkdownCommand(root *rootFlagValues) *cobra.Command {
	var pretty bool
	cmd := &cobra.Command{
		Use:   "markdown <file>",
		Short: "Generate a Markdown reference page",
		Long: `Generate a Markdown reference page for a schema: the help text in a
code block followed by argument and option tables.

With --pretty the page is rendered for the terminal instead of printed as
Markdown source.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := resolveSchema(cmd, root, args[0])
			if err != nil {
				return reportError(cmd, root, err)
			}
			md, err := inspect.Markdown(r.Schema, r.Spec, render.WithWidth(markdownWidth))
			if err != nil {
				return reportError(cmd, root, classifyRenderError(err, args[0]))
			}
			if pretty {
				md, err = formatMarkdown(md, detectTerminal(cmd.OutOrStdout()).IsTerminal)
				if err != nil {
					return reportError(cmd, root, err)
				}
			}
			fmt.Fprint(cmd.OutOrStdout(), md)
			return nil
		},
	}
	cmd.Flags().BoolVar(&pretty, "pretty", false, "render the Markdown for the terminal")
	return cmd
}

// formatMarkdown renders md with glamour. Pipes get the plain notty style.
func formatMarkdown(md string, isTerminal bool) (string, error) {
	style := glamour.WithStandardStyle("notty")
	if isTerminal {
		style = glamour.WithAutoStyle()
	}
	renderer, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(markdownWidth))
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := renderer.Render(md)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}
