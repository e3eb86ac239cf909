// SPDX-License-Identifier: MPL-2.0

package schema

import (
	"encoding/json"
	"fmt"
	"strings"
)

// decoder reads loosely typed documents, recording a message for every field
// whose type is wrong and carrying on with the rest.
type decoder struct {
	errs problems
}

// Decode builds a Schema from a generic document such as the result of
// unmarshalling JSON, YAML, or TOML into a map. Field type problems are
// collected into a *ValidationError. Semantic checks are left to Validate;
// use Parse to run both and report every problem together.
func Decode(doc map[string]any) (*Schema, error) {
	d := &decoder{}
	s := d.schema(doc)
	if err := d.errs.err(); err != nil {
		return nil, err
	}
	return s, nil
}

// Parse decodes a generic document and validates the result, reporting type
// and semantic problems in one *ValidationError.
func Parse(doc map[string]any) (*Schema, *Spec, error) {
	if doc == nil {
		return nil, nil, ErrMissingSchema
	}
	d := &decoder{}
	s := d.schema(doc)
	spec, errs := validate(s)
	all := append(d.errs, errs...)
	if err := all.err(); err != nil {
		return nil, nil, err
	}
	return s, spec, nil
}

// UnmarshalJSON accepts the document form, including its shorthand fields.
func (s *Schema) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	doc, ok := raw.(map[string]any)
	if !ok {
		return &ValidationError{Errors: []string{"Invalid config structure: schema must be an object"}}
	}
	decoded, err := Decode(doc)
	if err != nil {
		return err
	}
	*s = *decoded
	return nil
}

func (d *decoder) schema(doc map[string]any) *Schema {
	return &Schema{
		Name:        d.topText(doc, "name"),
		Title:       d.topText(doc, "title"),
		Description: d.topText(doc, "description"),
		Version:     d.topText(doc, "version"),
		Positional:  d.positionals(doc["positional"]),
		Options:     d.options(doc["options"]),
	}
}

func (d *decoder) topText(doc map[string]any, key string) string {
	switch v := doc[key].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		d.errs.addf("Invalid config structure: '%s' field must be a string", key)
		return ""
	}
}

func (d *decoder) positionals(raw any) []PositionalSpec {
	if raw == nil {
		return nil
	}
	list, ok := raw.([]any)
	if !ok {
		d.errs.addf("Invalid config structure: 'positional' field must be an array")
		return nil
	}

	specs := make([]PositionalSpec, 0, len(list))
	for i, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			d.errs.addf("Invalid argument spec: positional[%d] is not an object", i)
			specs = append(specs, PositionalSpec{malformed: true})
			continue
		}

		var spec PositionalSpec
		switch name := obj["name"].(type) {
		case nil:
		case string:
			spec.Name = name
		default:
			d.errs.addf("Invalid argument name: value specified for positional[%d] must be a string", i)
			spec.malformed = true
		}

		label := fmt.Sprintf("positional[%d]", i)
		spec.Description = d.fieldText(obj, "description", label, "argument")
		if required, ok := d.fieldBool(obj, "required", label, "argument"); ok {
			spec.Optional = !required
		}
		spec.Repeat = d.repeat(obj, label, "argument")
		specs = append(specs, spec)
	}
	return specs
}

func (d *decoder) options(raw any) []OptionSpec {
	if raw == nil {
		return nil
	}
	list, ok := raw.([]any)
	if !ok {
		d.errs.addf("Invalid config structure: 'options' field must be an array")
		return nil
	}

	specs := make([]OptionSpec, 0, len(list))
	for i, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			d.errs.addf("Invalid option spec: options[%d] is not an object", i)
			specs = append(specs, OptionSpec{malformed: true})
			continue
		}
		specs = append(specs, d.option(i, obj))
	}
	return specs
}

func (d *decoder) option(i int, obj map[string]any) OptionSpec {
	var spec OptionSpec
	label := fmt.Sprintf("options[%d]", i)
	switch name := obj["name"].(type) {
	case nil:
	case string:
		spec.Name = name
		if name != "" {
			label = name
		}
	default:
		d.errs.addf("Invalid option name: type of name specified for options[%d] is not a string", i)
		spec.malformed = true
	}

	if aliases, ok := d.stringList(obj["alias"]); ok {
		spec.Alias = aliases
	} else {
		d.errs.addf("Invalid alias field: spec for option '%s' must be a string or array of strings", label)
	}
	if conflicts, ok := d.stringList(obj["conflicts"]); ok {
		spec.Conflicts = conflicts
	} else {
		d.errs.addf("Invalid conflicts field: spec for option '%s' must be a string or array of strings", label)
	}

	spec.Arg = d.args(obj["arg"], label)
	spec.Description = d.fieldText(obj, "description", label, "option")
	spec.Required, _ = d.fieldBool(obj, "required", label, "option")
	spec.Requires = d.requires(obj, label)
	spec.PreferAlias = d.preferAlias(obj["preferAlias"], label)
	return spec
}

// stringList accepts a single string or a list of strings.
func (d *decoder) stringList(raw any) ([]string, bool) {
	switch v := raw.(type) {
	case nil:
		return nil, true
	case string:
		return []string{v}, true
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}

func (d *decoder) args(raw any, label string) []ArgSpec {
	switch v := raw.(type) {
	case nil:
		return nil
	case string:
		specs, err := ParseArgs(v)
		if err != nil {
			d.errs.addf("Invalid option arg spec: %v", err)
			return nil
		}
		return specs
	case map[string]any:
		spec, ok := d.argObject(v)
		if !ok {
			d.errs.addf("Invalid option arg spec: object provided for option '%s' must include a valid name", label)
			return nil
		}
		return []ArgSpec{spec}
	case []any:
		specs := make([]ArgSpec, 0, len(v))
		for _, item := range v {
			switch elem := item.(type) {
			case string:
				specs = append(specs, ParseArg(elem))
			case map[string]any:
				spec, ok := d.argObject(elem)
				if !ok {
					d.errs.addf("Invalid option arg spec: array provided for option '%s' contains improper elements", label)
					return nil
				}
				specs = append(specs, spec)
			default:
				d.errs.addf("Invalid option arg spec: array provided for option '%s' contains improper elements", label)
				return nil
			}
		}
		return specs
	default:
		d.errs.addf("Invalid option arg spec: improper value provided for option '%s'", label)
		return nil
	}
}

// argObject reads {name, required, optional, repeat}. "required" wins over
// "optional" when both are present. Angle brackets around the name are dropped.
func (d *decoder) argObject(obj map[string]any) (ArgSpec, bool) {
	name, ok := obj["name"].(string)
	if !ok {
		return ArgSpec{}, false
	}
	spec := ArgSpec{Name: angleInner.ReplaceAllString(strings.TrimSpace(name), "$1")}
	if optional, ok := obj["optional"].(bool); ok {
		spec.Optional = optional
	}
	if required, ok := obj["required"].(bool); ok {
		spec.Optional = !required
	}
	for _, key := range []string{"repeat", "variadic"} {
		if repeat, ok := obj[key].(bool); ok && repeat {
			spec.Repeat = true
		}
	}
	return spec, true
}

// requires reads "requires" and its synonym "dependsOn".
func (d *decoder) requires(obj map[string]any, label string) string {
	var refs []string
	for _, key := range []string{"requires", "dependsOn"} {
		switch v := obj[key].(type) {
		case nil:
		case string:
			if v != "" {
				refs = append(refs, v)
			}
		default:
			d.errs.addf("Invalid requires field: type of reference specified for option '%s' is not a string", label)
		}
	}
	switch {
	case len(refs) == 0:
		return ""
	case len(refs) == 2 && refs[0] != refs[1]:
		d.errs.addf("Invalid requires field: option '%s' specifies both requires '%s' and dependsOn '%s'", label, refs[0], refs[1])
	}
	return refs[0]
}

func (d *decoder) preferAlias(raw any, label string) PreferAlias {
	switch v := raw.(type) {
	case nil:
		return PreferAlias{}
	case bool:
		return PreferAlias{First: v}
	case string:
		return PreferAlias{Alias: v}
	default:
		d.errs.addf("Invalid preferAlias field: value for option '%s' must be a boolean or string", label)
		return PreferAlias{}
	}
}

func (d *decoder) repeat(obj map[string]any, label, kind string) bool {
	repeat := false
	for _, key := range []string{"repeat", "variadic"} {
		if v, ok := d.fieldBool(obj, key, label, kind); ok && v {
			repeat = true
		}
	}
	return repeat
}

func (d *decoder) fieldText(obj map[string]any, key, label, kind string) string {
	switch v := obj[key].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		d.errs.addf("Invalid %s spec: '%s' field of %s must be a string", kind, key, label)
		return ""
	}
}

func (d *decoder) fieldBool(obj map[string]any, key, label, kind string) (value, present bool) {
	switch v := obj[key].(type) {
	case nil:
		return false, false
	case bool:
		return v, true
	default:
		d.errs.addf("Invalid %s spec: '%s' field of %s must be a boolean", kind, key, label)
		return false, false
	}
}
