// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/invowk/helpout/pkg/schema"
)

// newValidateCommand creates the `helpout validate` command.
func newValidateCommand(root *rootFlagValues) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a schema and report every problem",
		Long: `Validate a schema file and resolve its usage line.

All problems are reported at once: type errors in the document, invalid or
duplicate names, unknown conflict and requires references, circular requires,
and required options placed in a mutually exclusive relationship with
optional ones.

Examples:
  helpout validate cli.yaml
  helpout validate - --format json < cli.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, root, args[0])
		},
	}
}

func runValidate(cmd *cobra.Command, root *rootFlagValues, path string) error {
	stdout := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()

	r, err := resolveSchema(cmd, root, path)
	if err != nil {
		var verr *schema.ValidationError
		if !errors.As(err, &verr) {
			return reportError(cmd, root, err)
		}
		fmt.Fprintf(stderr, "%s %s is invalid\n", ErrorStyle.Render(errorIcon), PathStyle.Render(displayPath(path)))
		for i, problem := range verr.Errors {
			fmt.Fprintf(stderr, "  %d. %s\n", i+1, WarningStyle.Render(problem))
		}
		fmt.Fprintf(stderr, "\nValidation failed with %d issue(s)\n", len(verr.Errors))
		cmd.SilenceErrors = true
		return &ExitError{Code: 1}
	}

	fmt.Fprintf(stdout, "%s %s is valid: %d positional argument(s), %d option(s), %d usage group(s)\n",
		SuccessStyle.Render(successIcon),
		PathStyle.Render(displayPath(path)),
		len(r.Spec.Positional),
		len(r.Spec.Options),
		len(r.forest),
	)
	return nil
}
