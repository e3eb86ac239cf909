// SPDX-License-Identifier: MPL-2.0

package schemafile

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/invowk/helpout/pkg/cueutil"
	"github.com/invowk/helpout/pkg/schema"
)

func TestLoad_Formats(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"greet.cue", "greet.json", "greet.toml", "greet.yml"} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			f, err := Load(filepath.Join("testdata", name))
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			s := f.Schema
			if s.Name != "greet" || s.Version != "1.2.0" || s.Title != "%name %version" {
				t.Errorf("head = %q %q %q", s.Name, s.Version, s.Title)
			}
			if len(s.Positional) != 1 || s.Positional[0].Name != "who" || s.Positional[0].Optional {
				t.Errorf("Positional = %+v", s.Positional)
			}

			var names []string
			for _, o := range f.Spec.Options {
				names = append(names, o.Name)
			}
			if !slices.Equal(names, []string{"shout", "whisper", "times"}) {
				t.Errorf("option names = %q", names)
			}
			shout, _ := f.Spec.Option("shout")
			if !slices.Equal(shout.Aliases, []string{"s"}) || !shout.ConflictsWith("whisper") {
				t.Errorf("shout = %+v", shout)
			}
			times, _ := f.Spec.Option("times")
			if want := []schema.Arg{{Name: "count", Required: true}}; !slices.Equal(times.Args, want) {
				t.Errorf("times.Args = %+v, want %+v", times.Args, want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Format
	}{
		{"cue", FormatCUE},
		{".json", FormatJSON},
		{"TOML", FormatTOML},
		{".yml", FormatYAML},
		{"yaml", FormatYAML},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v, want %q", tt.in, got, err, tt.want)
		}
	}

	if _, err := ParseFormat("ini"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("ParseFormat(ini) error = %v, want ErrUnknownFormat", err)
	}
	if _, err := FormatOf("help"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("FormatOf(help) error = %v, want ErrUnknownFormat", err)
	}
}

func TestDecode_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		data   string
		format Format
		target error
	}{
		{name: "json array", data: `[1, 2]`, format: FormatJSON, target: ErrNotObject},
		{name: "yaml scalar", data: "hello\n", format: FormatYAML, target: ErrNotObject},
		{name: "empty yaml", data: "", format: FormatYAML, target: ErrNotObject},
		{name: "cue unknown field", data: `nme: "x"`, format: FormatCUE, target: cueutil.ErrInvalidDocument},
		{name: "cue wrong type", data: `options: [{name: 5}]`, format: FormatCUE, target: cueutil.ErrInvalidDocument},
		{name: "unknown format", data: `{}`, format: Format("ini"), target: ErrUnknownFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := Decode([]byte(tt.data), tt.format, "help"); !errors.Is(err, tt.target) {
				t.Errorf("Decode() error = %v, want %v", err, tt.target)
			}
		})
	}
}

func TestDecode_SyntaxErrorsNameTheFile(t *testing.T) {
	t.Parallel()

	for _, format := range []Format{FormatJSON, FormatTOML, FormatYAML} {
		_, err := Decode([]byte("{{{"), format, "help."+string(format))
		if err == nil || !strings.Contains(err.Error(), "help."+string(format)) {
			t.Errorf("Decode(%s) error = %v, want the file name", format, err)
		}
	}
}

func TestParse_ReportsValidationProblems(t *testing.T) {
	t.Parallel()

	data := []byte(`{"options": [{"name": "a", "conflicts": "b"}, {"name": "a", "alias": 3}]}`)
	_, _, err := Parse(data, FormatJSON, "help.json")
	var verr *schema.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Parse() error = %v, want *schema.ValidationError", err)
	}
	if len(verr.Errors) < 2 {
		t.Errorf("Errors = %q, want type and semantic problems together", verr.Errors)
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) error = %v, want os.ErrNotExist", err)
	}

	big := filepath.Join(dir, "big.json")
	if err := os.WriteFile(big, make([]byte, MaxFileSize+1), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(big); !errors.Is(err, cueutil.ErrFileTooLarge) {
		t.Errorf("Load(big) error = %v, want ErrFileTooLarge", err)
	}
}
