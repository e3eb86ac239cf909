// SPDX-License-Identifier: MPL-2.0

package schema

import (
	"errors"
	"slices"
	"testing"
)

func TestSplitArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "single arg", input: "<foo>", want: []string{"<foo>"}},
		{name: "single character args", input: "x  y", want: []string{"x", "y"}},
		{name: "untrimmed whitespace", input: "  foo bar ", want: []string{"foo", "bar"}},
		{name: "tabs separate args", input: "foo\tbar", want: []string{"foo", "bar"}},
		{name: "floating repeat indicator", input: "<foo> [bar] ...", want: []string{"<foo>", "[bar] ..."}},
		{name: "floating ellipsis", input: "<foo> …", want: []string{"<foo> …"}},
		{name: "internal whitespace", input: "<foo ...>  [ <bar> ]", want: []string{"<foo ...>", "[ <bar> ]"}},
		{name: "unbalanced brackets", input: "<foo>>  [bar]] [[baz]", want: []string{"<foo>>", "[bar]]", "[[baz]"}},
		{name: "empty string", input: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := SplitArgs(tt.input)
			if err != nil {
				t.Fatalf("SplitArgs(%q) error = %v", tt.input, err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("SplitArgs(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSplitArgs_LeadingRepeat(t *testing.T) {
	t.Parallel()

	_, err := SplitArgs("... foo")
	if err == nil {
		t.Fatal("expected error for leading repeat indicator")
	}
	if !errors.Is(err, ErrLeadingRepeat) {
		t.Errorf("error should wrap ErrLeadingRepeat, got: %v", err)
	}
	want := "arg '... foo' contains a leading variadic indicator"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestParseArg(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  ArgSpec
	}{
		{input: "<foo>", want: ArgSpec{Name: "foo"}},
		{input: "foo", want: ArgSpec{Name: "foo"}},
		{input: "[foo]", want: ArgSpec{Name: "foo", Optional: true}},
		{input: "[ foo ]", want: ArgSpec{Name: "foo", Optional: true}},
		{input: "[<foo>]", want: ArgSpec{Name: "foo", Optional: true}},
		{input: "<foo>...", want: ArgSpec{Name: "foo", Repeat: true}},
		{input: "...<foo>", want: ArgSpec{Name: "foo", Repeat: true}},
		{input: "<foo>…", want: ArgSpec{Name: "foo", Repeat: true}},
		{input: "[foo ...]", want: ArgSpec{Name: "foo", Optional: true, Repeat: true}},
		{input: "[<foo...>]", want: ArgSpec{Name: "foo", Optional: true, Repeat: true}},
		{input: "[bar] ...", want: ArgSpec{Name: "bar", Optional: true, Repeat: true}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			if got := ParseArg(tt.input); got != tt.want {
				t.Errorf("ParseArg(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseArgs(t *testing.T) {
	t.Parallel()

	got, err := ParseArgs("<src> [dest] ...")
	if err != nil {
		t.Fatalf("ParseArgs() error = %v", err)
	}
	want := []ArgSpec{
		{Name: "src"},
		{Name: "dest", Optional: true, Repeat: true},
	}
	if !slices.Equal(got, want) {
		t.Errorf("ParseArgs() = %+v, want %+v", got, want)
	}

	if _, err := ParseArgs("… x"); !errors.Is(err, ErrLeadingRepeat) {
		t.Errorf("ParseArgs() error = %v, want ErrLeadingRepeat", err)
	}
}
