// SPDX-License-Identifier: MPL-2.0

package usage

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/invowk/helpout/internal/dag"
	"github.com/invowk/helpout/pkg/schema"
)

type (
	// contradiction is a required option placed in an exclusive relationship
	// with an optional one.
	contradiction struct {
		required *schema.Option
		optional *schema.Option
	}

	resolver struct {
		nodes map[string]*OptionNode
		found []contradiction
	}
)

// Resolve builds the usage forest for a validated option list. Options that
// depend on another option are nested under it, conflicting options are
// grouped into exclusive alternatives, and the top-level nodes are sorted by
// declaration order.
//
// A required option that is mutually exclusive with an optional one cannot be
// expressed on a usage line. Every such pair is reported in one
// *schema.ValidationError.
func Resolve(options []schema.Option) ([]Node, error) {
	r := &resolver{nodes: make(map[string]*OptionNode, len(options))}
	working := make([]*OptionNode, 0, len(options))
	for i := range options {
		n := &OptionNode{Option: &options[i]}
		r.nodes[n.Option.Name] = n
		working = append(working, n)
	}
	conflicts := r.conflictPairs(options)

	order, err := dependencyOrder(options)
	if err != nil {
		return nil, err
	}
	for _, name := range order {
		target := r.nodes[name]
		var deps []*OptionNode
		for _, n := range working {
			if n.Option.Requires == name {
				deps = append(deps, n)
			}
		}
		if target == nil || len(deps) == 0 {
			continue
		}

		ids := names(deps)
		members, err := r.resolveUsage(touching(conflicts, ids), deps)
		if err != nil {
			return nil, err
		}
		if len(members) == 1 {
			target.Dependent = members[0]
		} else {
			target.Dependent = &Group{Members: members}
		}
		working = slices.DeleteFunc(working, func(n *OptionNode) bool {
			return slices.Contains(ids, n.Option.Name)
		})
		conflicts = without(conflicts, ids)
	}

	top, err := r.resolveUsage(conflicts, working)
	if err != nil {
		return nil, err
	}
	if err := r.err(); err != nil {
		return nil, err
	}
	return top, nil
}

// conflictPairs flattens declared conflicts into unique unordered pairs.
func (r *resolver) conflictPairs(options []schema.Option) []pair {
	var pairs []pair
	for _, o := range options {
		for _, other := range o.Conflicts {
			if other == o.Name || r.nodes[other] == nil {
				continue
			}
			p := pair{a: o.Name, b: other}
			if !slices.ContainsFunc(pairs, p.same) {
				pairs = append(pairs, p)
			}
		}
	}
	return pairs
}

// dependencyOrder lists option names so that every dependent comes before
// the option it requires.
func dependencyOrder(options []schema.Option) ([]string, error) {
	g := dag.New()
	for _, o := range options {
		g.AddNode(o.Name)
	}
	for _, o := range options {
		if o.Requires != "" && o.Requires != o.Name {
			g.AddEdge(o.Name, o.Requires)
		}
	}
	order, err := g.TopologicalSort()
	if err != nil {
		var cycleErr *dag.CycleError
		if errors.As(err, &cycleErr) {
			return nil, &schema.ValidationError{Errors: []string{
				"Circular require: options form a cycle " + strings.Join(cycleErr.Cycle, " -> "),
			}}
		}
		return nil, err
	}
	return order, nil
}

// resolveUsage resolves the options in subset together with every cluster
// formed by conflicts. Cluster members are looked up among all options, so a
// cluster may pull in options from outside subset.
func (r *resolver) resolveUsage(conflicts []pair, subset []*OptionNode) ([]Node, error) {
	clusters := findClusters(conflicts)
	var out []Node
	for _, n := range subset {
		if !inCluster(clusters, n.Option.Name) {
			out = append(out, n)
		}
	}
	for _, ids := range clusters {
		node, err := r.resolveExclusive(r.lookup(ids), within(conflicts, ids))
		if err != nil {
			return nil, err
		}
		out = append(out, node)
	}
	sortByOrder(out)
	return out, nil
}

// resolveExclusive turns a connected cluster of conflicting options into an
// exclusive group. Options that conflict with every other member become
// alternatives on their own; the rest is resolved recursively. When no member
// conflicts with all others, options sharing the same compatible set are
// merged into one alternative.
func (r *resolver) resolveExclusive(members []*OptionNode, conflicts []pair) (Node, error) {
	n, c := len(members), len(conflicts)
	if c < n-1 {
		return nil, fmt.Errorf("option group [%s] with conflict pairs %s does not form a mutually exclusive cluster",
			strings.Join(names(members), ", "), formatPairs(conflicts))
	}
	if c == n*(n-1)/2 {
		return r.exclusive(asNodes(members)), nil
	}

	links := make(map[string]int, n)
	for _, p := range conflicts {
		links[p.a]++
		links[p.b]++
	}
	var full, partial []*OptionNode
	for _, m := range members {
		if links[m.Option.Name] == n-1 {
			full = append(full, m)
		} else {
			partial = append(partial, m)
		}
	}

	if len(full) > 0 {
		alternatives := asNodes(full)
		if len(partial) > 0 {
			rest := without(conflicts, names(full))
			sub := findClusters(rest)

			var part Node
			var singles []Node
			for _, m := range partial {
				if !inCluster(sub, m.Option.Name) {
					singles = append(singles, m)
				}
			}
			if len(singles) > 0 || len(sub) > 1 {
				groupMembers := singles
				for _, ids := range sub {
					node, err := r.resolveExclusive(r.lookup(ids), within(rest, ids))
					if err != nil {
						return nil, err
					}
					groupMembers = append(groupMembers, node)
				}
				sortByOrder(groupMembers)
				part = &Group{Members: groupMembers}
			} else {
				node, err := r.resolveExclusive(partial, rest)
				if err != nil {
					return nil, err
				}
				part = node
			}
			alternatives = append(alternatives, part)
		}
		return r.exclusive(alternatives), nil
	}

	var combos [][]*OptionNode
	for _, m := range members {
		var compatible []*OptionNode
		for _, other := range members {
			if !slices.ContainsFunc(conflicts, pair{a: m.Option.Name, b: other.Option.Name}.same) {
				compatible = append(compatible, other)
			}
		}
		if !slices.ContainsFunc(combos, func(combo []*OptionNode) bool { return sameSet(combo, compatible) }) {
			combos = append(combos, compatible)
		}
	}
	alternatives := make([]Node, 0, len(combos))
	for _, combo := range combos {
		groupMembers := asNodes(combo)
		sortByOrder(groupMembers)
		alternatives = append(alternatives, &Group{Members: groupMembers})
	}
	return r.exclusive(alternatives), nil
}

// exclusive builds an exclusive group and records a contradiction for every
// required option in a required alternative paired with every option of an
// optional alternative.
func (r *resolver) exclusive(alternatives []Node) *ExclusiveGroup {
	sortByOrder(alternatives)
	g := &ExclusiveGroup{Members: alternatives}

	required := 0
	for _, alt := range alternatives {
		if alt.Required() {
			required++
		}
	}
	if required == 0 || required == len(alternatives) {
		return g
	}
	for _, alt := range alternatives {
		if !alt.Required() {
			continue
		}
		for _, req := range Leaves(alt) {
			if !req.Required() {
				continue
			}
			for _, other := range alternatives {
				if other.Required() {
					continue
				}
				for _, opt := range Leaves(other) {
					r.found = append(r.found, contradiction{required: req.Option, optional: opt.Option})
				}
			}
		}
	}
	return g
}

// err reports every recorded contradiction once, ordered by declaration.
func (r *resolver) err() error {
	if len(r.found) == 0 {
		return nil
	}
	slices.SortStableFunc(r.found, func(x, y contradiction) int {
		return cmp.Or(
			cmp.Compare(x.required.Order, y.required.Order),
			cmp.Compare(x.optional.Order, y.optional.Order),
		)
	})
	found := slices.CompactFunc(r.found, func(x, y contradiction) bool {
		return x.required.Name == y.required.Name && x.optional.Name == y.optional.Name
	})

	msgs := make([]string, len(found))
	for i, c := range found {
		msgs[i] = fmt.Sprintf("Required option '%s' cannot have a mutually exclusive relationship with non-required option '%s'",
			c.required.Name, c.optional.Name)
	}
	return &schema.ValidationError{Errors: msgs}
}

func (r *resolver) lookup(ids []string) []*OptionNode {
	nodes := make([]*OptionNode, len(ids))
	for i, id := range ids {
		nodes[i] = r.nodes[id]
	}
	return nodes
}

func sortByOrder(nodes []Node) {
	slices.SortStableFunc(nodes, func(a, b Node) int {
		return cmp.Compare(a.Order(), b.Order())
	})
}

func asNodes(opts []*OptionNode) []Node {
	nodes := make([]Node, len(opts))
	for i, o := range opts {
		nodes[i] = o
	}
	return nodes
}

func names(opts []*OptionNode) []string {
	out := make([]string, len(opts))
	for i, o := range opts {
		out[i] = o.Option.Name
	}
	return out
}

func inCluster(clusters [][]string, name string) bool {
	for _, ids := range clusters {
		if slices.Contains(ids, name) {
			return true
		}
	}
	return false
}

func sameSet(a, b []*OptionNode) bool {
	if len(a) != len(b) {
		return false
	}
	for _, x := range a {
		if !slices.Contains(b, x) {
			return false
		}
	}
	return true
}

func formatPairs(pairs []pair) string {
	parts := make([]string, len(pairs))
	for i, p := range pairs {
		parts[i] = fmt.Sprintf("(%s, %s)", p.a, p.b)
	}
	return strings.Join(parts, ", ")
}
