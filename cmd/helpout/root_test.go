// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/invowk/helpout/internal/issue"
	"github.com/invowk/helpout/pkg/schemafile"
)

const greetYAML = `name: greet
title: "%name %version"
version: 1.2.0
description: Print a greeting.
positional:
  - name: who
    description: Person to greet
options:
  - name: shout
    alias: s
    description: Use capitals
    conflicts: whisper
  - name: whisper
    alias: [w]
    description: Use lowercase
  - name: times
    alias: n
    arg:
      name: count
      required: true
    description: Repeat the greeting
`

type result struct {
	stdout string
	stderr string
	err    error
}

func run(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := NewRootCommand()
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	err := root.ExecuteContext(context.Background())
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func writeSchema(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func wantExit(t *testing.T, r result) {
	t.Helper()
	var exitErr *ExitError
	if !errors.As(r.err, &exitErr) || exitErr.Code != 1 {
		t.Fatalf("error = %v, want *ExitError with code 1", r.err)
	}
}

func TestGetVersionString(t *testing.T) {
	// Not parallel: mutates package-level Version/Commit/BuildDate vars.
	origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
	t.Cleanup(func() {
		Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
	})

	Version, Commit, BuildDate = "v1.2.3", "abc1234", "2026-01-02T10:00:00Z"
	if got, want := getVersionString(), "v1.2.3 (commit: abc1234, built: 2026-01-02T10:00:00Z)"; got != want {
		t.Errorf("getVersionString() = %q, want %q", got, want)
	}

	Version = "dev"
	if got, want := getVersionString(), "dev (built from source)"; got != want {
		t.Errorf("getVersionString() = %q, want %q", got, want)
	}
}

func TestRenderCommand(t *testing.T) {
	t.Parallel()

	path := writeSchema(t, "greet.yml", greetYAML)
	r := run(t, "", "render", path, "--width", "80", "--color", "never")
	if r.err != nil {
		t.Fatalf("render error = %v\n%s", r.err, r.stderr)
	}
	want := strings.Join([]string{
		"greet 1.2.0",
		"Print a greeting.",
		"",
		"USAGE:",
		"  greet <who> [--shout | --whisper]",
		"        [--times <count>]",
		"",
		"ARGUMENTS:",
		"  <who>                Person to greet",
		"",
		"OPTIONS:",
		"  -s, --shout          Use capitals",
		"  -w, --whisper        Use lowercase",
		"  -n, --times <count>  Repeat the greeting",
	}, "\n") + "\n"
	if r.stdout != want {
		t.Errorf("stdout =\n%s\nwant\n%s", r.stdout, want)
	}
}

func TestRenderCommand_Stdin(t *testing.T) {
	t.Parallel()

	r := run(t, greetYAML, "render", "-", "--format", "yaml", "--width", "25", "--no-color")
	if r.err != nil {
		t.Fatalf("render error = %v\n%s", r.err, r.stderr)
	}
	if !strings.Contains(r.stdout, "USAGE:\n  greet <who> [-s | -w]\n        [-n <count>]\n") {
		t.Errorf("stdout does not use short names at width 25:\n%s", r.stdout)
	}

	r = run(t, greetYAML, "render", "-")
	wantExit(t, r)
	if !strings.Contains(r.stderr, "--format is required") {
		t.Errorf("stderr = %q, want a hint about --format", r.stderr)
	}
}

func TestRenderCommand_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		file   string
		data   string
		args   []string
		stderr []string
	}{
		{
			name:   "unknown extension",
			file:   "cli.txt",
			data:   greetYAML,
			stderr: []string{"failed to load schema", "Use a file extension or --format value among: cue, json, toml, yaml"},
		},
		{
			name:   "syntax error",
			file:   "cli.json",
			data:   `{"name": `,
			stderr: []string{"failed to load schema"},
		},
		{
			name:   "invalid style",
			file:   "cli.yml",
			data:   greetYAML,
			args:   []string{"--style", "arg=orange"},
			stderr: []string{"failed to render help", "'orange' is not a recognized style", "Style keys are arg, option and title"},
		},
		{
			name:   "malformed style flag",
			file:   "cli.yml",
			data:   greetYAML,
			args:   []string{"--style", "cyan"},
			stderr: []string{"expected key=value"},
		},
		{
			name:   "missing program name",
			file:   "cli.yml",
			data:   "positional: [{name: file}]\n",
			stderr: []string{"a program name is required", "--name"},
		},
		{
			name:   "invalid color mode",
			file:   "cli.yml",
			data:   greetYAML,
			args:   []string{"--color", "sometimes"},
			stderr: []string{"failed to load settings", "invalid color mode"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := writeSchema(t, tt.file, tt.data)
			r := run(t, "", append([]string{"render", path}, tt.args...)...)
			wantExit(t, r)
			for _, want := range tt.stderr {
				if !strings.Contains(r.stderr, want) {
					t.Errorf("stderr missing %q:\n%s", want, r.stderr)
				}
			}
		})
	}
}

func TestRenderCommand_MissingFile(t *testing.T) {
	t.Parallel()

	r := run(t, "", "render", filepath.Join(t.TempDir(), "missing.yml"), "--verbose")
	wantExit(t, r)
	for _, want := range []string{"failed to load schema", "Error chain:", "Schema file not found"} {
		if !strings.Contains(r.stderr, want) {
			t.Errorf("stderr missing %q:\n%s", want, r.stderr)
		}
	}
}

func TestValidateCommand(t *testing.T) {
	t.Parallel()

	path := writeSchema(t, "greet.yml", greetYAML)
	r := run(t, "", "validate", path)
	if r.err != nil {
		t.Fatalf("validate error = %v\n%s", r.err, r.stderr)
	}
	if !strings.Contains(r.stdout, "is valid: 1 positional argument(s), 3 option(s), 2 usage group(s)") {
		t.Errorf("stdout = %q", r.stdout)
	}

	bad := writeSchema(t, "bad.json", `{"name": "app", "options": [
		{"name": "a", "conflicts": "missing"},
		{"name": "b", "requires": "nowhere"}
	]}`)
	r = run(t, "", "validate", bad)
	wantExit(t, r)
	for _, want := range []string{
		"is invalid",
		"1. Invalid conflict reference: option 'missing' is not specified",
		"2. Invalid requires reference: option 'nowhere' is not specified",
		"Validation failed with 2 issue(s)",
	} {
		if !strings.Contains(r.stderr, want) {
			t.Errorf("stderr missing %q:\n%s", want, r.stderr)
		}
	}
}

func TestValidateCommand_Contradiction(t *testing.T) {
	t.Parallel()

	path := writeSchema(t, "cli.toml", `name = "app"

[[options]]
name = "a"
required = true
conflicts = "b"

[[options]]
name = "b"
`)
	r := run(t, "", "validate", path)
	wantExit(t, r)
	want := "Required option 'a' cannot have a mutually exclusive relationship with non-required option 'b'"
	if !strings.Contains(r.stderr, want) {
		t.Errorf("stderr missing %q:\n%s", want, r.stderr)
	}
}

func TestResolveCommand(t *testing.T) {
	t.Parallel()

	path := writeSchema(t, "greet.yml", greetYAML)
	r := run(t, "", "resolve", path)
	if r.err != nil {
		t.Fatalf("resolve error = %v\n%s", r.err, r.stderr)
	}
	for _, want := range []string{"- kind: exclusive-group", "option: shout", "option: whisper", "- kind: option\n  option: times"} {
		if !strings.Contains(r.stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, r.stdout)
		}
	}
}

func TestInspectCommand(t *testing.T) {
	t.Parallel()

	path := writeSchema(t, "greet.yml", greetYAML)
	r := run(t, "", "inspect", path)
	if r.err != nil {
		t.Fatalf("inspect error = %v\n%s", r.err, r.stderr)
	}
	for _, want := range []string{"CONFLICTS", "--whisper", "<count>"} {
		if !strings.Contains(r.stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, r.stdout)
		}
	}
}

func TestMarkdownCommand(t *testing.T) {
	t.Parallel()

	path := writeSchema(t, "greet.yml", greetYAML)
	r := run(t, "", "markdown", path)
	if r.err != nil {
		t.Fatalf("markdown error = %v\n%s", r.err, r.stderr)
	}
	for _, want := range []string{"# greet\n", "```text\n", "## Options"} {
		if !strings.Contains(r.stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, r.stdout)
		}
	}

	r = run(t, "", "markdown", path, "--pretty")
	if r.err != nil {
		t.Fatalf("markdown --pretty error = %v\n%s", r.err, r.stderr)
	}
	if strings.Contains(r.stdout, "```") || !strings.Contains(r.stdout, "Repeat the greeting") {
		t.Errorf("pretty output was not rendered:\n%s", r.stdout)
	}
}

func TestClassifyLoadError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want issue.Id
	}{
		{os.ErrNotExist, issue.SchemaNotFoundId},
		{schemafile.ErrUnknownFormat, issue.UnknownFormatId},
		{schemafile.ErrNotObject, issue.SchemaParseErrorId},
	}
	for _, tt := range tests {
		var ae *issue.ActionableError
		if err := classifyLoadError(tt.err, "cli.yml"); !errors.As(err, &ae) || ae.Issue != tt.want {
			t.Errorf("classifyLoadError(%v) = %v, want issue %d", tt.err, err, tt.want)
		}
	}
}
