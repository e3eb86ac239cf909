// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/invowk/helpout/internal/inspect"
)

// newInspectCommand creates the `helpout inspect` command.
func newInspectCommand(root *rootFlagValues) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file>",
		Short: "Show options and their relationships as a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := resolveSchema(cmd, root, args[0])
			if err != nil {
				return reportError(cmd, root, err)
			}
			term := detectTerminal(cmd.OutOrStdout())
			color := term.IsTerminal && term.Profile != termenv.Ascii
			fmt.Fprintln(cmd.OutOrStdout(), inspect.OptionTable(r.Spec, color))
			return nil
		},
	}
}
