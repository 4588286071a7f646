package formula

import (
	"strconv"
	"strings"
)

// Node is a node in a parsed formula tree: either an Element leaf or a
// nested Group. Atom counting is a single recursive code path over this
// tagged variant rather than polymorphic dispatch.
type Node interface {
	node()
}

// Element is a single atomic symbol with a local multiplicity
// (the "2" in H2O).
type Element struct {
	Symbol       string // one uppercase letter followed by lowercase letters
	Multiplicity int    // positive
}

func (*Element) node() {}

// Group is a molecule or a bracketed sub-unit. Its coefficient multiplies
// every descendant contribution. Bracketed is true only for groups parsed
// from (...), [...] or {...}; it controls rendering, not semantics.
type Group struct {
	Coefficient int
	Children    []Node // non-empty
	Bracketed   bool
}

func (*Group) node() {}

// NewGroup constructs a group, enforcing the non-empty children invariant.
func NewGroup(coefficient int, children []Node, bracketed bool) (*Group, error) {
	if len(children) == 0 {
		return nil, &MalformedFormulaError{Message: "group has no children"}
	}
	return &Group{Coefficient: coefficient, Children: children, Bracketed: bracketed}, nil
}

// Clone returns a deep copy of the group. Balancing assigns coefficients
// onto fresh copies so the parsed equation stays untouched.
func (g *Group) Clone() *Group {
	children := make([]Node, len(g.Children))
	for i, child := range g.Children {
		switch c := child.(type) {
		case *Element:
			el := *c
			children[i] = &el
		case *Group:
			children[i] = c.Clone()
		}
	}
	return &Group{Coefficient: g.Coefficient, Children: children, Bracketed: g.Bracketed}
}

// AtomCounts returns a map from element symbol to the number of atoms this
// group contributes. A group scales the summed child contributions by its
// own coefficient, applied recursively.
func (g *Group) AtomCounts() map[string]int {
	counts := make(map[string]int)
	countInto(g, 1, counts)
	return counts
}

// countInto accumulates node's contribution, scaled by factor, into counts.
func countInto(n Node, factor int, counts map[string]int) {
	switch v := n.(type) {
	case *Element:
		counts[v.Symbol] += factor * v.Multiplicity
	case *Group:
		for _, child := range v.Children {
			countInto(child, factor*v.Coefficient, counts)
		}
	}
}

// ElementTypeCount returns the number of distinct element symbols in the
// group.
func (g *Group) ElementTypeCount() int {
	return len(g.AtomCounts())
}

// Symbols returns the distinct element symbols of the group in
// first-encounter order, scanning the tree left to right. This ordering is
// part of the contract: the balancer derives its row order from it.
func (g *Group) Symbols() []string {
	var symbols []string
	seen := make(map[string]bool)
	var walk func(Node)
	walk = func(n Node) {
		switch v := n.(type) {
		case *Element:
			if !seen[v.Symbol] {
				seen[v.Symbol] = true
				symbols = append(symbols, v.Symbol)
			}
		case *Group:
			for _, child := range v.Children {
				walk(child)
			}
		}
	}
	walk(g)
	return symbols
}

// String renders the group in plain ASCII so that the result parses back
// to a tree with identical atom counts. A bracketed group renders as
// (children)N; a top-level group prefixes its coefficient. Coefficients
// and multiplicities of 1 are omitted.
func (g *Group) String() string {
	var sb strings.Builder
	g.writeTo(&sb)
	return sb.String()
}

func (g *Group) writeTo(sb *strings.Builder) {
	if !g.Bracketed && g.Coefficient > 1 {
		sb.WriteString(strconv.Itoa(g.Coefficient))
	}
	if g.Bracketed {
		sb.WriteByte('(')
	}
	for _, child := range g.Children {
		switch c := child.(type) {
		case *Element:
			sb.WriteString(c.Symbol)
			if c.Multiplicity > 1 {
				sb.WriteString(strconv.Itoa(c.Multiplicity))
			}
		case *Group:
			c.writeTo(sb)
		}
	}
	if g.Bracketed {
		sb.WriteByte(')')
		if g.Coefficient > 1 {
			sb.WriteString(strconv.Itoa(g.Coefficient))
		}
	}
}
