// SPDX-License-Identifier: MPL-2.0

package schema

type (
	// Schema describes a command's help output.
	Schema struct {
		// Name is the program name shown in the usage line.
		Name string
		// Title is printed first. "%name" and "%version" are replaced with
		// Name and Version.
		Title string
		// Description is printed below the title, wrapped to the output width.
		Description string
		// Version is substituted for "%version" in Title.
		Version string
		// Positional lists positional arguments in usage order.
		Positional []PositionalSpec
		// Options lists the flags. Declaration order is kept as a stable
		// tie-break in every rendered section.
		Options []OptionSpec
	}

	// PositionalSpec declares one positional argument.
	PositionalSpec struct {
		Name        string
		Description string
		// Optional marks the argument as not required. Positional arguments
		// are required unless stated otherwise.
		Optional bool
		// Repeat marks the argument as accepting several values.
		Repeat bool

		// malformed is set by the document decoder when the entry could not
		// be read, so validation does not report it a second time.
		malformed bool
	}

	// OptionSpec declares one option.
	OptionSpec struct {
		// Name is the canonical option name. Leading dashes are ignored.
		Name string
		// Alias lists alternate names, typically single letters.
		Alias []string
		// Arg lists the values the option takes.
		Arg         []ArgSpec
		Description string
		// Required marks options that must always be given.
		Required bool
		// Conflicts lists options that cannot be combined with this one.
		Conflicts []string
		// Requires names the option this one depends on.
		Requires string
		// PreferAlias selects an alias to show in the usage line instead of
		// the canonical name.
		PreferAlias PreferAlias

		malformed bool
	}

	// ArgSpec declares one value taken by an option.
	ArgSpec struct {
		Name     string
		Optional bool
		Repeat   bool
	}

	// PreferAlias selects the name an option is displayed under in the usage
	// line. The zero value displays the canonical name.
	PreferAlias struct {
		// First selects the option's first alias.
		First bool
		// Alias selects a specific alias. It takes precedence over First.
		Alias string
	}
)

// PreferFirstAlias displays an option under its first alias.
func PreferFirstAlias() PreferAlias { return PreferAlias{First: true} }

// Prefer displays an option under the named alias.
func Prefer(alias string) PreferAlias { return PreferAlias{Alias: alias} }

// IsZero reports whether no alias is preferred.
func (p PreferAlias) IsZero() bool { return !p.First && p.Alias == "" }
