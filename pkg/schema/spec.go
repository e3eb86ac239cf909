// SPDX-License-Identifier: MPL-2.0

package schema

import "slices"

type (
	// Spec is a validated schema: canonical names, resolved references, and
	// declaration order recorded on every entry.
	Spec struct {
		Positional []Positional
		Options    []Option
	}

	// Positional is a validated positional argument.
	Positional struct {
		Name        string
		Description string
		Required    bool
		Repeat      bool
		Order       int
	}

	// Option is a validated option. Name, Aliases, Conflicts, Requires and
	// PreferAlias hold canonical names without leading dashes.
	Option struct {
		Name        string
		Aliases     []string
		Args        []Arg
		Description string
		// Conflicts holds no duplicates and never names the option itself.
		Conflicts []string
		// Requires is empty when the option depends on nothing.
		Requires string
		Required bool
		// PreferAlias is the alias displayed in the usage line, or empty.
		PreferAlias string
		// Order is the declaration index.
		Order int
	}

	// Arg is a validated option value placeholder.
	Arg struct {
		Name     string
		Required bool
		Repeat   bool
	}
)

// ConflictsWith reports whether o declares a conflict with the named option.
func (o *Option) ConflictsWith(name string) bool {
	return slices.Contains(o.Conflicts, name)
}

// Option returns the option with the given canonical name.
func (s *Spec) Option(name string) (*Option, bool) {
	for i := range s.Options {
		if s.Options[i].Name == name {
			return &s.Options[i], true
		}
	}
	return nil, false
}
