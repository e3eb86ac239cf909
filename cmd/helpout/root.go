// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the helpout CLI commands.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// rootFlagValues holds the persistent flags shared by every subcommand.
type rootFlagValues struct {
	verbose bool
	format  string
}

// NewRootCommand builds the helpout command tree.
func NewRootCommand() *cobra.Command {
	flags := &rootFlagValues{}
	root := &cobra.Command{
		Use:   "helpout",
		Short: "Render CLI help text from a schema",
		Long: TitleStyle.Render("helpout") + SubtitleStyle.Render(" - render CLI help text from a schema") + `

helpout reads a command description written in CUE, JSON, TOML or YAML and
prints the help text a program would show: a usage line that reflects which
options conflict or depend on each other, and argument and option tables laid
out for the terminal width.

` + SubtitleStyle.Render("Examples:") + `
  helpout render cli.yaml               Render help for the terminal
  helpout render cli.cue --width 60     Render help at a fixed width
  helpout validate cli.json             Report every problem in a schema
  helpout inspect cli.toml              Show option relationships
  helpout markdown cli.yaml --pretty    Preview a Markdown reference`,
		SilenceUsage: true,
	}

	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging and detailed errors")
	root.PersistentFlags().StringVarP(&flags.format, "format", "f", "", "schema format (cue, json, toml, yaml); required when reading stdin")

	root.AddCommand(
		newRenderCommand(flags),
		newValidateCommand(flags),
		newResolveCommand(flags),
		newInspectCommand(flags),
		newMarkdownCommand(flags),
	)
	return root
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI and exits with the command's status. It is called by
// main.main.
func Execute() {
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// newLogger creates the CLI logger. Verbose mode logs render decisions at
// debug level; otherwise only warnings and errors are shown.
func newLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: "helpout",
		Level:  level,
	})
}
