// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/cobra"

	"github.com/invowk/helpout/internal/config"
	"github.com/invowk/helpout/internal/issue"
	"github.com/invowk/helpout/pkg/render"
	"github.com/invowk/helpout/pkg/schema"
	"github.com/invowk/helpout/pkg/schemafile"
)

// guidanceStyle is the glamour style used for issue guidance. It never
// emits escape sequences, so guidance reads the same in pipes and logs.
const guidanceStyle = "notty"

func formatList() string {
	names := make([]string, 0, len(schemafile.Formats()))
	for _, f := range schemafile.Formats() {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}

// classifyLoadError maps failures to read or decode a schema document.
func classifyLoadError(err error, path string) error {
	ctx := issue.NewErrorContext().
		WithOperation("load schema").
		WithResource(displayPath(path)).
		Wrap(err)

	switch {
	case errors.Is(err, fs.ErrNotExist):
		ctx.WithIssue(issue.SchemaNotFoundId).
			WithSuggestion("Check the path, or pass - to read the schema from stdin")
	case errors.Is(err, schemafile.ErrUnknownFormat):
		ctx.WithIssue(issue.UnknownFormatId).
			WithSuggestion("Use a file extension or --format value among: " + formatList())
	case errors.Is(err, schema.ErrInvalidSchema):
		ctx.WithOperation("validate schema").
			WithIssue(issue.SchemaInvalidId).
			WithSuggestion("Run 'helpout validate' to list every problem")
	default:
		ctx.WithIssue(issue.SchemaParseErrorId).
			WithSuggestion("Fix the syntax error reported above")
	}
	return ctx.Build()
}

// classifyResolveError maps usage contradictions found while building the
// usage line.
func classifyResolveError(err error, path string) error {
	return issue.NewErrorContext().
		WithOperation("resolve usage").
		WithResource(displayPath(path)).
		WithIssue(issue.UsageContradictionId).
		WithSuggestion("Make the required option optional, or drop the conflict").
		Wrap(err).
		Build()
}

// classifyRenderError maps failures of the render step itself.
func classifyRenderError(err error, path string) error {
	ctx := issue.NewErrorContext().
		WithOperation("render help").
		WithResource(displayPath(path)).
		Wrap(err)

	switch {
	case errors.Is(err, render.ErrInvalidStyles), errors.Is(err, config.ErrInvalidStyleFlag):
		ctx.WithIssue(issue.InvalidStylesId).
			WithSuggestion("Style keys are arg, option and title; values are dot-separated style names or null")
	case errors.Is(err, render.ErrMissingName):
		ctx.WithSuggestion("Add a name to the schema or pass --name")
	case errors.Is(err, config.ErrInvalidSettings):
		ctx.WithOperation("load settings").
			WithSuggestion("Check the flags and HELPOUT_* environment variables")
	case errors.Is(err, schema.ErrInvalidSchema):
		ctx.WithIssue(issue.UsageContradictionId)
	}
	return ctx.Build()
}

// reportError prints err to stderr and returns the ExitError to hand back to
// cobra. Verbose mode adds the error chain and catalogued guidance.
func reportError(cmd *cobra.Command, flags *rootFlagValues, err error) error {
	stderr := cmd.ErrOrStderr()
	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		ae = issue.WrapWithContext(err, "run "+cmd.Name(), "")
	}
	fmt.Fprintf(stderr, "%s %s\n", ErrorStyle.Render(errorIcon), ae.Format(flags.verbose))

	if flags.verbose {
		if guidance, ok, gerr := ae.Guidance(guidanceStyle); ok && gerr == nil {
			fmt.Fprint(stderr, guidance)
		}
	}

	cmd.SilenceErrors = true
	return &ExitError{Code: 1}
}
