// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/invowk/helpout/internal/inspect"
)

// newResolveCommand creates the `helpout resolve` command.
func newResolveCommand(root *rootFlagValues) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <file>",
		Short: "Print the resolved usage structure as YAML",
		Long: `Print the usage forest of a schema as YAML.

Each top-level entry is an option, a group, or an exclusive group of
alternatives. Options required by others carry their dependents.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := resolveSchema(cmd, root, args[0])
			if err != nil {
				return reportError(cmd, root, err)
			}
			out, err := inspect.ForestYAML(r.forest)
			if err != nil {
				return reportError(cmd, root, err)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}
