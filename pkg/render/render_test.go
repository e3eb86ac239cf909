// SPDX-License-Identifier: MPL-2.0

package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/invowk/helpout/pkg/layout"
	"github.com/invowk/helpout/pkg/schema"
)

func sampleSchema() *schema.Schema {
	return &schema.Schema{
		Name: "test",
		Positional: []schema.PositionalSpec{
			{Name: "arg", Description: "A positional argument"},
		},
		Options: []schema.OptionSpec{
			{Name: "message", Arg: []schema.ArgSpec{{Name: "msg"}}, Description: "An optional message string"},
			{Name: "quiet", Alias: []string{"q"}, Description: "Do not log any output", Conflicts: []string{"verbose"}},
			{Name: "verbose", Alias: []string{"V"}, Description: "Log verbose output", Conflicts: []string{"quiet"}},
			{Name: "help", Alias: []string{"h"}, Description: "Display help message"},
			{Name: "version", Alias: []string{"v"}, Description: "Display program version"},
		},
	}
}

func TestRender_Columns(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		width int
		want  []string
	}{
		{
			name:  "no collapse when width is large",
			width: 80,
			want: []string{
				"USAGE:",
				"  test <arg> [--message <msg>]",
				"       [--quiet | --verbose] [--help] [--version]",
				"",
				"ARGUMENTS:",
				"  <arg>                A positional argument",
				"",
				"OPTIONS:",
				"      --message <msg>  An optional message string",
				"  -q, --quiet          Do not log any output",
				"  -V, --verbose        Log verbose output",
				"  -h, --help           Display help message",
				"  -v, --version        Display program version",
			},
		},
		{
			name:  "id column collapses when width is limited",
			width: 45,
			want: []string{
				"USAGE:",
				"  test <arg> [--message <msg>]",
				"       [--quiet | --verbose]",
				"       [--help] [--version]",
				"",
				"ARGUMENTS:",
				"  <arg>           A positional argument",
				"",
				"OPTIONS:",
				"      --message   An optional message string",
				"           <msg>",
				"  -q, --quiet     Do not log any output",
				"  -V, --verbose   Log verbose output",
				"  -h, --help      Display help message",
				"  -v, --version   Display program version",
			},
		},
		{
			name:  "descriptions hidden when width is severely limited",
			width: 25,
			want: []string{
				"USAGE:",
				"  test <arg>",
				"       [--message <msg>]",
				"       [-q | -V]",
				"       [-h] [-v]",
				"",
				"ARGUMENTS:",
				"  <arg>",
				"",
				"OPTIONS:",
				"      --message <msg>",
				"  -q, --quiet",
				"  -V, --verbose",
				"  -h, --help",
				"  -v, --version",
			},
		},
		{
			name:  "descriptions hidden and ids collapsed when width is very severely limited",
			width: 20,
			want: []string{
				"USAGE:",
				"  test ...",
				"",
				"ARGUMENTS:",
				"  <arg>",
				"",
				"OPTIONS:",
				"      --message",
				"               <msg>",
				"  -q, --quiet",
				"  -V, --verbose",
				"  -h, --help",
				"  -v, --version",
			},
		},
		{
			name:  "tables hidden when width is extremely limited",
			width: 15,
			want: []string{
				"USAGE:",
				"  test ...",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Render(sampleSchema(), WithColor(false), WithWidth(tt.width))
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			if want := strings.Join(tt.want, "\n"); got != want {
				t.Errorf("Render() =\n%s\nwant\n%s", got, want)
			}
		})
	}
}

func TestRender_Head(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		schema *schema.Schema
		width  int
		want   []string
	}{
		{
			name:   "title placeholders",
			schema: &schema.Schema{Name: "mycli", Version: "1.0.0", Title: "%name %version"},
			width:  40,
			want:   []string{"mycli 1.0.0"},
		},
		{
			name:   "description wraps to width",
			schema: &schema.Schema{Description: "Lorem Ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod tempor."},
			width:  40,
			want: []string{
				"Lorem Ipsum dolor sit amet, consectetur",
				"adipiscing elit, sed do eiusmod tempor.",
			},
		},
		{
			name:   "description hard wraps a long word",
			schema: &schema.Schema{Description: "Lorem Ipsum dolor sit amet, consecteturadipiscingelitseddoeiusmodtempor."},
			width:  40,
			want: []string{
				"Lorem Ipsum dolor sit amet, consectetura",
				"dipiscingelitseddoeiusmodtempor.",
			},
		},
		{
			name:   "description hidden when width is extremely limited",
			schema: &schema.Schema{Description: "Lorem Ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod tempor."},
			width:  10,
			want:   []string{""},
		},
		{
			name: "head precedes sections",
			schema: &schema.Schema{
				Name:        "app",
				Title:       "%name",
				Description: "Does things.",
				Options:     []schema.OptionSpec{{Name: "help", Alias: []string{"h"}, Description: "Show help"}},
			},
			width: 40,
			want: []string{
				"app",
				"Does things.",
				"",
				"USAGE:",
				"  app [--help]",
				"",
				"OPTIONS:",
				"  -h, --help  Show help",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Render(tt.schema, WithColor(false), WithWidth(tt.width))
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			if want := strings.Join(tt.want, "\n"); got != want {
				t.Errorf("Render() =\n%s\nwant\n%s", got, want)
			}
		})
	}
}

func TestRender_Errors(t *testing.T) {
	t.Parallel()

	t.Run("missing schema", func(t *testing.T) {
		t.Parallel()
		if _, err := Render(nil); !errors.Is(err, ErrMissingSchema) {
			t.Errorf("Render(nil) error = %v, want ErrMissingSchema", err)
		}
	})

	t.Run("missing name", func(t *testing.T) {
		t.Parallel()
		s := &schema.Schema{Positional: []schema.PositionalSpec{{Name: "file"}}}
		if _, err := Render(s); !errors.Is(err, ErrMissingName) {
			t.Errorf("Render() error = %v, want ErrMissingName", err)
		}
	})

	t.Run("invalid schema", func(t *testing.T) {
		t.Parallel()
		s := &schema.Schema{Name: "app", Options: []schema.OptionSpec{
			{Name: "a", Conflicts: []string{"missing"}},
		}}
		_, err := Render(s)
		var verr *schema.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("Render() error = %v, want *schema.ValidationError", err)
		}
		if !errors.Is(err, schema.ErrInvalidSchema) {
			t.Error("error does not wrap ErrInvalidSchema")
		}
	})

	t.Run("usage contradiction", func(t *testing.T) {
		t.Parallel()
		s := &schema.Schema{Name: "app", Options: []schema.OptionSpec{
			{Name: "a", Required: true, Conflicts: []string{"b"}},
			{Name: "b"},
		}}
		_, err := Render(s)
		var verr *schema.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("Render() error = %v, want *schema.ValidationError", err)
		}
		want := "Required option 'a' cannot have a mutually exclusive relationship with non-required option 'b'"
		if len(verr.Errors) != 1 || verr.Errors[0] != want {
			t.Errorf("Errors = %q, want [%q]", verr.Errors, want)
		}
	})

	t.Run("invalid styles with color disabled", func(t *testing.T) {
		t.Parallel()
		_, err := Render(sampleSchema(), WithColor(false), WithStyles(Styles{"arg": "orange"}))
		if !errors.Is(err, ErrInvalidStyles) {
			t.Errorf("Render() error = %v, want ErrInvalidStyles", err)
		}
	})
}

func TestRender_Options(t *testing.T) {
	t.Parallel()

	t.Run("program name fallback", func(t *testing.T) {
		t.Parallel()
		s := &schema.Schema{Positional: []schema.PositionalSpec{{Name: "file", Optional: true, Repeat: true}}}
		got, err := Render(s, WithColor(false), WithProgramName("cat"))
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		want := "USAGE:\n  cat [file ...]\n\nARGUMENTS:\n  [file ...]"
		if got != want {
			t.Errorf("Render() =\n%s\nwant\n%s", got, want)
		}
	})

	t.Run("indent and spacing", func(t *testing.T) {
		t.Parallel()
		s := &schema.Schema{Name: "app", Options: []schema.OptionSpec{
			{Name: "help", Alias: []string{"h"}, Description: "Show help"},
			{Name: "all", Description: "Everything"},
		}}
		got, err := Render(s, WithColor(false), WithIndent(4), WithSpacing(3))
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		want := strings.Join([]string{
			"USAGE:",
			"    app [--help] [--all]",
			"",
			"OPTIONS:",
			"    -h, --help   Show help",
			"        --all    Everything",
		}, "\n")
		if got != want {
			t.Errorf("Render() =\n%s\nwant\n%s", got, want)
		}
	})

	t.Run("unbounded width", func(t *testing.T) {
		t.Parallel()
		got, err := Render(sampleSchema(), WithColor(false), WithWidth(layout.Unbounded))
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		lines := strings.Split(got, "\n")
		if lines[1] != "  test <arg> [--message <msg>] [--quiet | --verbose] [--help] [--version]" {
			t.Errorf("usage line = %q, want a single line", lines[1])
		}
		if lines[2] != "" {
			t.Errorf("usage section continues with %q, want a blank line", lines[2])
		}
	})

	t.Run("color", func(t *testing.T) {
		t.Parallel()
		plain, err := Render(sampleSchema(), WithColor(false))
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		colored, err := Render(sampleSchema())
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		if !strings.Contains(colored, "\x1b[") {
			t.Error("colored output has no escape sequences")
		}
		if got := layout.Strip(colored); got != plain {
			t.Errorf("stripped output =\n%s\nwant\n%s", got, plain)
		}
	})

	t.Run("logger receives layout decisions", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
		if _, err := Render(sampleSchema(), WithColor(false), WithWidth(45), WithLogger(logger)); err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		out := buf.String()
		for _, want := range []string{"allocated table columns", "tier=collapsed", "wrapped usage line", "form=long"} {
			if !strings.Contains(out, want) {
				t.Errorf("log output missing %q:\n%s", want, out)
			}
		}
	})
}
