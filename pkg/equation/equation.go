// Package equation models a chemical equation as two ordered lists of
// top-level formula groups and aggregates per-side atom counts.
package equation

import (
	"errors"
	"strings"

	"github.com/stoichlabs/stoich/pkg/formula"
)

// ErrEmptyEquation is returned when either side of an equation has no
// groups.
var ErrEmptyEquation = errors.New("equation side has no groups")

// Side selects one side of an equation.
type Side int

const (
	Left Side = iota
	Right
)

// Equation is a chemical equation. It is treated as an immutable value:
// balancing produces a new equation rather than mutating in place, so the
// originally parsed equation stays available for display.
type Equation struct {
	Left  []*formula.Group
	Right []*formula.Group
}

// New constructs an equation, rejecting empty sides.
func New(left, right []*formula.Group) (*Equation, error) {
	if len(left) == 0 || len(right) == 0 {
		return nil, ErrEmptyEquation
	}
	return &Equation{Left: left, Right: right}, nil
}

// Parse parses an equation of the form "CH4 + O2 -> CO2 + H2O": two
// formula lists separated by "->", groups within a list separated by "+".
// Only the first "->" is honored; text after a second one is ignored.
func Parse(text string) (*Equation, error) {
	parts := strings.Split(text, "->")
	if len(parts) < 2 {
		return nil, ErrEmptyEquation
	}
	left, err := parseSide(parts[0])
	if err != nil {
		return nil, err
	}
	right, err := parseSide(parts[1])
	if err != nil {
		return nil, err
	}
	return New(left, right)
}

// parseSide parses a "+"-separated list of formulas. Blank fragments are
// skipped; a side that yields no groups at all is rejected by New.
func parseSide(text string) ([]*formula.Group, error) {
	var groups []*formula.Group
	for _, part := range strings.Split(text, "+") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		g, err := formula.Parse(part)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, nil
}

// side returns the groups of the selected side.
func (e *Equation) side(s Side) []*formula.Group {
	if s == Left {
		return e.Left
	}
	return e.Right
}

// SideCounts returns the per-element atom counts of one side: the sum,
// over every top-level group on that side, of the group's scaled
// contribution.
func (e *Equation) SideCounts(s Side) map[string]int {
	counts := make(map[string]int)
	for _, g := range e.side(s) {
		for symbol, n := range g.AtomCounts() {
			counts[symbol] += n
		}
	}
	return counts
}

// AtomCounts returns the combined atom counts of both sides.
func (e *Equation) AtomCounts() map[string]int {
	counts := e.SideCounts(Left)
	for symbol, n := range e.SideCounts(Right) {
		counts[symbol] += n
	}
	return counts
}

// IsBalanced reports whether both sides have exactly equal atom counts:
// same element set, same values.
func (e *Equation) IsBalanced() bool {
	left, right := e.SideCounts(Left), e.SideCounts(Right)
	if len(left) != len(right) {
		return false
	}
	for symbol, n := range left {
		if right[symbol] != n {
			return false
		}
	}
	return true
}

// Symbols returns the distinct element symbols of the whole equation in
// first-encounter order, scanning the left side then the right.
func (e *Equation) Symbols() []string {
	var symbols []string
	seen := make(map[string]bool)
	for _, g := range append(append([]*formula.Group{}, e.Left...), e.Right...) {
		for _, symbol := range g.Symbols() {
			if !seen[symbol] {
				seen[symbol] = true
				symbols = append(symbols, symbol)
			}
		}
	}
	return symbols
}

// String renders the equation in plain ASCII, sides joined by " -> " and
// groups by " + ".
func (e *Equation) String() string {
	return joinSide(e.Left) + " -> " + joinSide(e.Right)
}

func joinSide(groups []*formula.Group) string {
	parts := make([]string, len(groups))
	for i, g := range groups {
		parts[i] = g.String()
	}
	return strings.Join(parts, " + ")
}
