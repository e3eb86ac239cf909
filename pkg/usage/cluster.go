// SPDX-License-Identifier: MPL-2.0

package usage

import "slices"

// pair is an unordered conflict between two options, stored in the order it
// was first declared.
type pair struct {
	a, b string
}

func (p pair) has(name string) bool { return p.a == name || p.b == name }

func (p pair) same(q pair) bool {
	return (p.a == q.a && p.b == q.b) || (p.a == q.b && p.b == q.a)
}

// touching returns the pairs with at least one end in names.
func touching(pairs []pair, names []string) []pair {
	var out []pair
	for _, p := range pairs {
		if slices.Contains(names, p.a) || slices.Contains(names, p.b) {
			out = append(out, p)
		}
	}
	return out
}

// without returns the pairs with neither end in names.
func without(pairs []pair, names []string) []pair {
	var out []pair
	for _, p := range pairs {
		if !slices.Contains(names, p.a) && !slices.Contains(names, p.b) {
			out = append(out, p)
		}
	}
	return out
}

// disjointSet is a union-find over option names.
type disjointSet struct {
	parent map[string]string
	// seen records names in first-seen order.
	seen []string
}

func newDisjointSet() *disjointSet {
	return &disjointSet{parent: make(map[string]string)}
}

func (d *disjointSet) add(name string) {
	if _, ok := d.parent[name]; ok {
		return
	}
	d.parent[name] = name
	d.seen = append(d.seen, name)
}

func (d *disjointSet) find(name string) string {
	for d.parent[name] != name {
		d.parent[name] = d.parent[d.parent[name]]
		name = d.parent[name]
	}
	return name
}

func (d *disjointSet) union(a, b string) {
	d.add(a)
	d.add(b)
	if ra, rb := d.find(a), d.find(b); ra != rb {
		d.parent[rb] = ra
	}
}

// findClusters returns the connected components of the conflict graph.
// Clusters and their members keep first-seen order.
func findClusters(pairs []pair) [][]string {
	d := newDisjointSet()
	for _, p := range pairs {
		d.union(p.a, p.b)
	}

	index := make(map[string]int)
	var clusters [][]string
	for _, name := range d.seen {
		root := d.find(name)
		i, ok := index[root]
		if !ok {
			i = len(clusters)
			index[root] = i
			clusters = append(clusters, nil)
		}
		clusters[i] = append(clusters[i], name)
	}
	return clusters
}

// within returns the pairs whose ends both lie in names.
func within(pairs []pair, names []string) []pair {
	var out []pair
	for _, p := range pairs {
		if slices.Contains(names, p.a) && slices.Contains(names, p.b) {
			out = append(out, p)
		}
	}
	return out
}
