// SPDX-License-Identifier: MPL-2.0

package inspect

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/invowk/helpout/pkg/usage"
)

// Entry is the serializable form of a usage node.
type Entry struct {
	Kind      string  `yaml:"kind"`
	Option    string  `yaml:"option,omitempty"`
	Required  bool    `yaml:"required,omitempty"`
	Dependent *Entry  `yaml:"dependent,omitempty"`
	Members   []Entry `yaml:"members,omitempty"`
}

// Entries converts a usage forest.
func Entries(forest []usage.Node) ([]Entry, error) {
	entries := make([]Entry, 0, len(forest))
	for _, n := range forest {
		e, err := entry(n)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func entry(n usage.Node) (Entry, error) {
	switch n := n.(type) {
	case *usage.OptionNode:
		e := Entry{Kind: n.Kind().String(), Option: n.Option.Name, Required: n.Required()}
		if n.Dependent != nil {
			dep, err := entry(n.Dependent)
			if err != nil {
				return Entry{}, err
			}
			e.Dependent = &dep
		}
		return e, nil
	case *usage.Group:
		return group(n, n.Members)
	case *usage.ExclusiveGroup:
		return group(n, n.Members)
	default:
		return Entry{}, fmt.Errorf("unknown usage node type %T", n)
	}
}

func group(n usage.Node, members []usage.Node) (Entry, error) {
	children, err := Entries(members)
	if err != nil {
		return Entry{}, err
	}
	return Entry{Kind: n.Kind().String(), Required: n.Required(), Members: children}, nil
}

// ForestYAML renders a usage forest as a YAML sequence.
func ForestYAML(forest []usage.Node) ([]byte, error) {
	entries, err := Entries(forest)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(entries); err != nil {
		return nil, fmt.Errorf("failed to encode usage forest: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode usage forest: %w", err)
	}
	return buf.Bytes(), nil
}
