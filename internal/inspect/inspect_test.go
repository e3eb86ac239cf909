// SPDX-License-Identifier: MPL-2.0

package inspect

import (
	"strings"
	"testing"

	"github.com/invowk/helpout/pkg/schema"
	"github.com/invowk/helpout/pkg/usage"
)

func testSpec(t *testing.T) (*schema.Schema, *schema.Spec) {
	t.Helper()
	s := &schema.Schema{
		Name:        "greet",
		Description: "Print a greeting.",
		Positional:  []schema.PositionalSpec{{Name: "who", Description: "Who to greet"}},
		Options: []schema.OptionSpec{
			{Name: "shout", Alias: []string{"s"}, Description: "Use capitals", Conflicts: []string{"whisper"}},
			{Name: "whisper", Alias: []string{"w"}, Description: "Use lower case", Conflicts: []string{"shout"}},
			{Name: "times", Arg: []schema.ArgSpec{{Name: "n"}}, Description: "Repeat count", Requires: "shout"},
		},
	}
	spec, err := schema.Validate(s)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	return s, spec
}

func TestOptionTable(t *testing.T) {
	t.Parallel()

	_, spec := testSpec(t)
	out := OptionTable(spec, false)
	for _, want := range []string{"NAME", "REQUIRES", "--shout", "-s", "--whisper", "<n>", "--times"} {
		if !strings.Contains(out, want) {
			t.Errorf("OptionTable() missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("OptionTable() without color contains escape sequences:\n%s", out)
	}
}

func TestArgList(t *testing.T) {
	t.Parallel()

	got := argList([]schema.Arg{
		{Name: "a", Required: true},
		{Name: "b"},
		{Name: "c", Required: true, Repeat: true},
	})
	if want := "<a> [<b>] <c> ..."; got != want {
		t.Errorf("argList() = %q, want %q", got, want)
	}
}

func TestEntries(t *testing.T) {
	t.Parallel()

	_, spec := testSpec(t)
	forest, err := usage.Resolve(spec.Options)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	entries, err := Entries(forest)
	if err != nil {
		t.Fatalf("Entries() error = %v", err)
	}
	if len(entries) != 1 || entries[0].Kind != "exclusive-group" {
		t.Fatalf("Entries() = %+v, want one exclusive group", entries)
	}
	shout := entries[0].Members[0]
	if shout.Option != "shout" || shout.Dependent == nil || shout.Dependent.Option != "times" {
		t.Errorf("first member = %+v, want shout with times as dependent", shout)
	}

	out, err := ForestYAML(forest)
	if err != nil {
		t.Fatalf("ForestYAML() error = %v", err)
	}
	for _, want := range []string{"- kind: exclusive-group", "option: whisper", "dependent:"} {
		if !strings.Contains(string(out), want) {
			t.Errorf("ForestYAML() missing %q:\n%s", want, out)
		}
	}
}

func TestEntries_UnknownNode(t *testing.T) {
	t.Parallel()

	if _, err := Entries([]usage.Node{nil}); err == nil {
		t.Error("Entries() with a nil node succeeded")
	}
}

func TestMarkdown(t *testing.T) {
	t.Parallel()

	s, spec := testSpec(t)
	out, err := Markdown(s, spec)
	if err != nil {
		t.Fatalf("Markdown() error = %v", err)
	}
	for _, want := range []string{
		"# greet\n",
		"Print a greeting.",
		"```text\nPrint a greeting.\n\nUSAGE:\n  greet <who>",
		"## Arguments",
		"| who |",
		"## Options",
		"Use capitals",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Markdown() missing %q:\n%s", want, out)
		}
	}
}
