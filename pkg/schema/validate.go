// SPDX-License-Identifier: MPL-2.0

package schema

import (
	"errors"
	"slices"
	"strings"

	"github.com/invowk/helpout/internal/dag"
)

// optionIndex maps canonical names and aliases to canonical names.
type optionIndex map[string]string

// Validate checks a schema and normalizes it into a Spec. Every problem is
// reported in one *ValidationError. A nil schema yields ErrMissingSchema.
func Validate(s *Schema) (*Spec, error) {
	if s == nil {
		return nil, ErrMissingSchema
	}
	spec, errs := validate(s)
	if err := errs.err(); err != nil {
		return nil, err
	}
	return spec, nil
}

// NormalizeName strips any number of leading dashes. An empty result means
// the name is not usable.
func NormalizeName(name string) string {
	return strings.TrimLeft(name, "-")
}

func validate(s *Schema) (*Spec, problems) {
	var errs problems
	spec := &Spec{Positional: validatePositionals(s.Positional, &errs)}

	options, ok := validateNames(s.Options, &errs)
	if !ok {
		return spec, errs
	}
	index := validateAliases(s.Options, options, &errs)
	validateConflicts(s.Options, options, index, &errs)
	validateRequires(s.Options, options, index, &errs)
	validatePreferAlias(s.Options, options, &errs)
	validateCycles(options, &errs)

	spec.Options = options
	return spec, errs
}

func validatePositionals(specs []PositionalSpec, errs *problems) []Positional {
	positionals := make([]Positional, 0, len(specs))
	for i, p := range specs {
		if p.malformed {
			continue
		}
		if p.Name == "" {
			errs.addf("Missing argument name: none specified for positional[%d]", i)
			continue
		}
		positionals = append(positionals, Positional{
			Name:        p.Name,
			Description: p.Description,
			Required:    !p.Optional,
			Repeat:      p.Repeat,
			Order:       i,
		})
	}
	return positionals
}

// validateNames normalizes option names. Reference checks need a complete
// name set, so a false result stops option validation.
func validateNames(specs []OptionSpec, errs *problems) ([]Option, bool) {
	before := len(*errs)
	options := make([]Option, 0, len(specs))
	seen := make(map[string]bool, len(specs))
	var duplicates []string
	malformed := false

	for i, o := range specs {
		if o.malformed {
			malformed = true
			continue
		}
		if o.Name == "" {
			errs.addf("Missing option name: none specified for options[%d]", i)
			continue
		}
		name := NormalizeName(o.Name)
		if name == "" {
			errs.addf("Invalid option name: '%s' is not a valid option name", o.Name)
			continue
		}
		if seen[name] {
			if !slices.Contains(duplicates, name) {
				duplicates = append(duplicates, name)
			}
			continue
		}
		seen[name] = true
		options = append(options, Option{
			Name:        name,
			Args:        convertArgs(o.Arg),
			Description: o.Description,
			Required:    o.Required,
			Order:       i,
		})
	}
	for _, name := range duplicates {
		errs.addf("Duplicate option name: '%s' is specified multiple times", name)
	}
	return options, !malformed && len(*errs) == before
}

func convertArgs(specs []ArgSpec) []Arg {
	if len(specs) == 0 {
		return nil
	}
	args := make([]Arg, len(specs))
	for i, a := range specs {
		args[i] = Arg{Name: a.Name, Required: !a.Optional, Repeat: a.Repeat}
	}
	return args
}

// validateAliases claims aliases in declaration order. The first option to
// use a name keeps it.
func validateAliases(specs []OptionSpec, options []Option, errs *problems) optionIndex {
	index := make(optionIndex, len(options))
	for _, o := range options {
		index[o.Name] = o.Name
	}
	for i := range options {
		o := &options[i]
		for _, raw := range specs[o.Order].Alias {
			alias := NormalizeName(raw)
			switch {
			case alias == "":
				errs.addf("Invalid option alias: '%s' is not a valid alias for option '%s'", raw, o.Name)
			case alias == o.Name, slices.Contains(o.Aliases, alias):
			case index[alias] != "":
				errs.addf("Duplicate option alias: '%s' of option '%s' is already used by option '%s'", alias, o.Name, index[alias])
			default:
				index[alias] = o.Name
				o.Aliases = append(o.Aliases, alias)
			}
		}
	}
	return index
}

func validateConflicts(specs []OptionSpec, options []Option, index optionIndex, errs *problems) {
	for i := range options {
		o := &options[i]
		for _, raw := range specs[o.Order].Conflicts {
			ref := NormalizeName(raw)
			switch {
			case ref == "":
				errs.addf("Invalid conflict reference: '%s' is not a valid option reference", raw)
			case index[ref] == "":
				errs.addf("Invalid conflict reference: option '%s' is not specified", raw)
			case index[ref] == o.Name, slices.Contains(o.Conflicts, index[ref]):
			default:
				o.Conflicts = append(o.Conflicts, index[ref])
			}
		}
	}
}

func validateRequires(specs []OptionSpec, options []Option, index optionIndex, errs *problems) {
	byName := make(map[string]*Option, len(options))
	for i := range options {
		byName[options[i].Name] = &options[i]
	}
	for i := range options {
		o := &options[i]
		raw := specs[o.Order].Requires
		if raw == "" {
			continue
		}
		ref := NormalizeName(raw)
		switch {
		case ref == "":
			errs.addf("Invalid requires field: '%s' is not a valid option reference", raw)
			continue
		case index[ref] == "":
			errs.addf("Invalid requires reference: option '%s' is not specified", raw)
			continue
		case index[ref] == o.Name:
			continue
		}
		ref = index[ref]
		if o.ConflictsWith(ref) || byName[ref].ConflictsWith(o.Name) {
			errs.addf("Contradictory reference: option '%s' both conflicts with and requires '%s'", o.Name, ref)
			continue
		}
		o.Requires = ref
	}
}

func validatePreferAlias(specs []OptionSpec, options []Option, errs *problems) {
	for i := range options {
		o := &options[i]
		prefer := specs[o.Order].PreferAlias
		switch {
		case prefer.IsZero():
		case len(o.Aliases) == 0:
			errs.addf("Invalid preferAlias field: option '%s' has no aliases", o.Name)
		case prefer.Alias != "":
			alias := NormalizeName(prefer.Alias)
			switch {
			case alias == o.Name:
			case slices.Contains(o.Aliases, alias):
				o.PreferAlias = alias
			default:
				errs.addf("Invalid preferAlias reference: '%s' is not an alias of option '%s'", prefer.Alias, o.Name)
			}
		default:
			o.PreferAlias = o.Aliases[0]
		}
	}
}

// validateCycles reports mutual requirements pair by pair. Longer cycles are
// only looked for when no direct pair exists.
func validateCycles(options []Option, errs *problems) {
	found := false
	for i, a := range options {
		if a.Requires == "" {
			continue
		}
		for _, b := range options[i+1:] {
			if a.Requires == b.Name && b.Requires == a.Name {
				errs.addf("Circular require: options '%s' and '%s' depend on each other", a.Name, b.Name)
				found = true
			}
		}
	}
	if found {
		return
	}

	g := dag.New()
	for _, o := range options {
		if o.Requires != "" {
			g.AddEdge(o.Name, o.Requires)
		}
	}
	if _, err := g.TopologicalSort(); err != nil {
		var cycleErr *dag.CycleError
		if errors.As(err, &cycleErr) {
			errs.addf("Circular require: options form a cycle %s", strings.Join(cycleErr.Cycle, " -> "))
		}
	}
}
