// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/invowk/helpout/internal/config"
	"github.com/invowk/helpout/internal/issue"
	"github.com/invowk/helpout/internal/watch"
	"github.com/invowk/helpout/pkg/render"
)

// clearScreen clears the terminal and moves the cursor home.
const clearScreen = "\033[2J\033[H"

type renderFlagValues struct {
	noColor  bool
	watch    bool
	patterns []string
}

// newRenderCommand creates the `helpout render` command.
func newRenderCommand(root *rootFlagValues) *cobra.Command {
	flags := &renderFlagValues{}
	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render help text for a schema",
		Long: `Render the help text described by a schema file.

The output width defaults to the terminal width, or 80 columns when writing
to a pipe. Every flag can also be set through a HELPOUT_* environment
variable, for example HELPOUT_WIDTH=60 or HELPOUT_STYLE=arg=cyan,title=bold.

Examples:
  helpout render cli.yaml
  helpout render cli.cue --width 60 --color never
  helpout render cli.json --style arg=magenta --style title=null
  cat cli.toml | helpout render - --format toml
  helpout render cli.yaml --watch`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, root, flags, args[0])
		},
	}

	defaults := config.DefaultSettings()
	cmd.Flags().Int("width", defaults.Width, "output width in columns (0 detects the terminal width)")
	cmd.Flags().Int("spacing", defaults.Spacing, "spaces between table columns")
	cmd.Flags().Int("indent", defaults.Indent, "section indentation (-1 follows --spacing)")
	cmd.Flags().String("color", string(defaults.Color), "when to color output: auto, always, never")
	cmd.Flags().BoolVar(&flags.noColor, "no-color", false, "shorthand for --color never")
	cmd.Flags().StringArray("style", nil, "style override as key=value, e.g. arg=cyan.bold (repeatable)")
	cmd.Flags().String("name", defaults.Name, "program name used when the schema has none")
	cmd.Flags().BoolVarP(&flags.watch, "watch", "w", false, "re-render when the schema file changes")
	cmd.Flags().StringArrayVar(&flags.patterns, "watch-pattern", nil, "extra glob, relative to the schema directory, that triggers a re-render")
	return cmd
}

func runRender(cmd *cobra.Command, root *rootFlagValues, flags *renderFlagValues, path string) error {
	v, err := config.New(cmd.Flags())
	if err != nil {
		return reportError(cmd, root, err)
	}
	settings, err := config.Load(v)
	if err != nil {
		return reportError(cmd, root, classifyRenderError(err, path))
	}
	if flags.noColor {
		settings.Color = config.ColorNever
	}
	verbose := root.verbose || settings.Verbose
	logger := newLogger(cmd.ErrOrStderr(), verbose)
	reporting := &rootFlagValues{verbose: verbose, format: root.format}

	term := detectTerminal(cmd.OutOrStdout())
	opts, err := settings.RenderOptions(term, logger)
	if err != nil {
		return reportError(cmd, reporting, classifyRenderError(err, path))
	}

	out, err := renderOnce(cmd, root, path, opts)
	if err != nil {
		return reportError(cmd, reporting, err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)

	if !flags.watch {
		return nil
	}
	if path == stdinPath {
		return reportError(cmd, reporting, issue.NewErrorContext().
			WithOperation("watch schema").
			WithResource(displayPath(path)).
			WithIssue(issue.WatchFailedId).
			WithSuggestion("Pass a file path to use --watch").
			Wrap(watch.ErrNoFiles).
			Build())
	}
	return runWatch(cmd, reporting, flags, path, opts, term.IsTerminal, logger)
}

// renderOnce loads the schema at path and renders it.
func renderOnce(cmd *cobra.Command, root *rootFlagValues, path string, opts []render.Option) (string, error) {
	file, err := loadSchema(cmd, root, path)
	if err != nil {
		return "", err
	}
	out, err := render.Render(file.Schema, opts...)
	if err != nil {
		return "", classifyRenderError(err, path)
	}
	return out, nil
}

// runWatch re-renders path on every change until the command's context is
// cancelled. Failures while watching are printed and watching continues.
func runWatch(cmd *cobra.Command, root *rootFlagValues, flags *renderFlagValues, path string, opts []render.Option, clearTerm bool, logger *log.Logger) error {
	stdout := cmd.OutOrStdout()
	w, err := watch.New(watch.Config{
		Files:    []string{path},
		Patterns: flags.patterns,
		Logger:   logger,
		OnChange: func(_ context.Context, changed []string) error {
			logger.Debug("re-rendering", "changed", changed)
			out, err := renderOnce(cmd, root, path, opts)
			if clearTerm {
				fmt.Fprint(stdout, clearScreen)
			}
			if err != nil {
				reportError(cmd, root, err) //nolint:errcheck // keep watching
				return nil
			}
			fmt.Fprintln(stdout, out)
			return nil
		},
	})
	if err != nil {
		return reportError(cmd, root, watchError(err, path))
	}

	logger.Info("watching for changes", "dirs", w.Dirs())
	if err := w.Run(cmd.Context()); err != nil {
		return reportError(cmd, root, watchError(err, path))
	}
	return nil
}

func watchError(err error, path string) error {
	return issue.NewErrorContext().
		WithOperation("watch schema").
		WithResource(path).
		WithIssue(issue.WatchFailedId).
		WithSuggestion("Raise fs.inotify.max_user_watches or render without --watch").
		Wrap(err).
		Build()
}
