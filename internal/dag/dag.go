// SPDX-License-Identifier: MPL-2.0

// Package dag orders option requirement relationships. The schema validator
// uses it to reject requirement cycles of any length, and the usage resolver
// uses it to attach dependent options innermost-first.
package dag

import (
	"fmt"
	"strings"
)

type (
	// CycleError reports a requirement cycle. Cycle lists the nodes along the
	// cycle in edge order, with the first node repeated at the end.
	CycleError struct {
		Cycle []string
	}

	// Graph is a directed graph keyed by option name. An edge from A to B
	// means A has to be handled before B.
	Graph struct {
		// successors maps each node to the nodes that wait on it.
		successors map[string][]string
		// predecessors is the reverse of successors, used to trace cycles.
		predecessors map[string][]string
		// nodes keeps insertion order so results are deterministic.
		nodes   []string
		nodeSet map[string]bool
	}
)

func (e *CycleError) Error() string {
	return fmt.Sprintf("cycle detected: %s", strings.Join(e.Cycle, " -> "))
}

// New creates an empty Graph.
func New() *Graph {
	return &Graph{
		successors:   make(map[string][]string),
		predecessors: make(map[string][]string),
		nodeSet:      make(map[string]bool),
	}
}

// AddNode adds a node. Adding an existing node is a no-op.
func (g *Graph) AddNode(name string) {
	if g.nodeSet[name] {
		return
	}
	g.nodeSet[name] = true
	g.nodes = append(g.nodes, name)
}

// AddEdge adds the edge from -> to, adding either node if missing.
func (g *Graph) AddEdge(from, to string) {
	g.AddNode(from)
	g.AddNode(to)
	g.successors[from] = append(g.successors[from], to)
	g.predecessors[to] = append(g.predecessors[to], from)
}

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// TopologicalSort returns the nodes so that every edge points forward, using
// Kahn's algorithm. Nodes that become ready together keep insertion order.
// A *CycleError is returned when no such order exists.
func (g *Graph) TopologicalSort() ([]string, error) {
	if len(g.nodes) == 0 {
		return nil, nil
	}

	inDegree := make(map[string]int, len(g.nodes))
	for _, node := range g.nodes {
		inDegree[node] = len(g.predecessors[node])
	}

	queue := make([]string, 0, len(g.nodes))
	for _, node := range g.nodes {
		if inDegree[node] == 0 {
			queue = append(queue, node)
		}
	}

	result := make([]string, 0, len(g.nodes))
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		result = append(result, node)

		for _, next := range g.successors[node] {
			inDegree[next]--
			if inDegree[next] == 0 {
				queue = append(queue, next)
			}
		}
	}

	if len(result) != len(g.nodes) {
		return nil, &CycleError{Cycle: g.traceCycle(inDegree)}
	}
	return result, nil
}

// traceCycle walks predecessors from the first unsorted node. Every unsorted
// node still has an unsorted predecessor, so the walk must revisit a node,
// and the path from that first revisit back to itself is a cycle.
func (g *Graph) traceCycle(inDegree map[string]int) []string {
	var start string
	for _, node := range g.nodes {
		if inDegree[node] > 0 {
			start = node
			break
		}
	}

	seen := make(map[string]int)
	var path []string
	node := start
	for {
		if at, ok := seen[node]; ok {
			return g.orient(path[at:])
		}
		seen[node] = len(path)
		path = append(path, node)
		for _, prev := range g.predecessors[node] {
			if inDegree[prev] > 0 {
				node = prev
				break
			}
		}
	}
}

// orient turns a loop traced against edge direction into edge order, starting
// from its earliest inserted node and closing back on it.
func (g *Graph) orient(loop []string) []string {
	n := len(loop)
	forward := make([]string, n)
	for i, node := range loop {
		forward[n-1-i] = node
	}

	rank := make(map[string]int, len(g.nodes))
	for i, node := range g.nodes {
		rank[node] = i
	}
	first := 0
	for i, node := range forward {
		if rank[node] < rank[forward[first]] {
			first = i
		}
	}

	cycle := make([]string, 0, n+1)
	cycle = append(cycle, forward[first:]...)
	cycle = append(cycle, forward[:first]...)
	return append(cycle, cycle[0])
}
