// SPDX-License-Identifier: MPL-2.0

// Package usage turns a validated option set into the nested structure shown
// on a usage line: plain groups, mutually exclusive alternatives, and options
// that only make sense after another option.
package usage

import "github.com/invowk/helpout/pkg/schema"

// Kind identifies the concrete type of a Node.
type Kind int

const (
	// KindOption is an *OptionNode.
	KindOption Kind = iota
	// KindGroup is a *Group.
	KindGroup
	// KindExclusive is an *ExclusiveGroup.
	KindExclusive
)

type (
	// Node is one element of a resolved usage forest. The set of
	// implementations is closed: *OptionNode, *Group and *ExclusiveGroup.
	Node interface {
		Kind() Kind
		// Order is the smallest declaration index among the options the node
		// contains.
		Order() int
		// Required reports whether the node has to appear in an invocation.
		Required() bool

		node()
	}

	// OptionNode is a single option, with the usage of every option that
	// depends on it attached as Dependent.
	OptionNode struct {
		Option    *schema.Option
		Dependent Node
	}

	// Group lists nodes that can be combined freely.
	Group struct {
		Members []Node
	}

	// ExclusiveGroup lists alternatives of which at most one may be given,
	// or exactly one when the group is required.
	ExclusiveGroup struct {
		Members []Node
	}
)

// String returns the kind name used in inspection output.
func (k Kind) String() string {
	switch k {
	case KindOption:
		return "option"
	case KindGroup:
		return "group"
	case KindExclusive:
		return "exclusive-group"
	default:
		return "unknown"
	}
}

func (n *OptionNode) Kind() Kind     { return KindOption }
func (n *OptionNode) Order() int     { return n.Option.Order }
func (n *OptionNode) Required() bool { return n.Option.Required }
func (*OptionNode) node()            {}

func (g *Group) Kind() Kind     { return KindGroup }
func (g *Group) Order() int     { return minOrder(g.Members) }
func (g *Group) Required() bool { return anyRequired(g.Members) }
func (*Group) node()            {}

func (g *ExclusiveGroup) Kind() Kind     { return KindExclusive }
func (g *ExclusiveGroup) Order() int     { return minOrder(g.Members) }
func (g *ExclusiveGroup) Required() bool { return anyRequired(g.Members) }
func (*ExclusiveGroup) node()            {}

func minOrder(members []Node) int {
	if len(members) == 0 {
		return -1
	}
	order := members[0].Order()
	for _, m := range members[1:] {
		order = min(order, m.Order())
	}
	return order
}

func anyRequired(members []Node) bool {
	for _, m := range members {
		if m.Required() {
			return true
		}
	}
	return false
}

// Walk visits n and everything below it depth-first, dependents included.
// Returning false from fn skips the children of the node just visited.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	switch n := n.(type) {
	case *OptionNode:
		Walk(n.Dependent, fn)
	case *Group:
		for _, m := range n.Members {
			Walk(m, fn)
		}
	case *ExclusiveGroup:
		for _, m := range n.Members {
			Walk(m, fn)
		}
	}
}

// Leaves returns the option nodes directly making up n, without descending
// into dependents.
func Leaves(n Node) []*OptionNode {
	var leaves []*OptionNode
	Walk(n, func(child Node) bool {
		if opt, ok := child.(*OptionNode); ok {
			leaves = append(leaves, opt)
			return false
		}
		return true
	})
	return leaves
}
