// Package balance computes integer stoichiometric coefficients for a
// chemical equation by solving the linear system of atom-conservation
// constraints exactly over rational arithmetic.
package balance

import (
	"errors"
	"math/big"
	"sort"

	"github.com/stoichlabs/stoich/pkg/equation"
	"github.com/stoichlabs/stoich/pkg/formula"
	"github.com/stoichlabs/stoich/pkg/matrix"
)

var (
	// ErrUnderdetermined is returned when the equation cannot yield a
	// unique coefficient ratio: more distinct element types than free
	// unknowns, or too few independent constraints.
	ErrUnderdetermined = errors.New("equation is underdetermined")
	// ErrCouldNotBalance is returned when a numeric solution exists but
	// does not produce a balanced integer equation.
	ErrCouldNotBalance = errors.New("could not balance equation")
)

// maxDenominator bounds the denominators of the solved coefficient
// ratios. Realistic stoichiometry fits well within it; a larger true
// denominator means the equation is unsupported and balancing fails
// rather than rounding silently.
const maxDenominator = 15

// row is one atom-conservation constraint: the element's multiplicity
// contributed by each unknown group, and the negated contribution of the
// reference group.
type row struct {
	symbol  string
	entries []int64
	rhs     int64
}

// Balance returns a new equation whose group coefficients are the
// smallest integers conserving every element. The input equation is not
// modified. The first left-side group is the reference: its negated atom
// contribution forms the constant vector while the remaining left groups
// (positive sign) and all right groups (negative sign) form the unknown
// columns. Group contributions are taken per unit, so balancing an
// already balanced equation reproduces it.
func Balance(eq *equation.Equation) (*equation.Equation, error) {
	groups := make([]*formula.Group, 0, len(eq.Left)+len(eq.Right))
	groups = append(groups, eq.Left...)
	groups = append(groups, eq.Right...)
	unknowns := len(groups) - 1

	symbols := eq.Symbols()
	if len(symbols) > unknowns {
		return nil, ErrUnderdetermined
	}

	counts := make([]map[string]int, len(groups))
	for i, g := range groups {
		counts[i] = unitCounts(g)
	}

	rows := buildRows(symbols, counts, len(eq.Left))
	rows = dedupRows(rows)
	if len(rows) < unknowns {
		return nil, ErrUnderdetermined
	}
	rows = selectRows(rows, unknowns)

	solution, err := solveRows(rows, unknowns)
	if err != nil {
		return nil, err
	}

	coefs, err := normalize(solution)
	if err != nil {
		return nil, err
	}

	balanced, err := rebuild(eq, coefs)
	if err != nil {
		return nil, err
	}
	if !balanced.IsBalanced() {
		return nil, ErrCouldNotBalance
	}
	return balanced, nil
}

// unitCounts returns the group's atom counts with its top-level
// coefficient treated as 1. Nested coefficients and multiplicities keep
// their effect.
func unitCounts(g *formula.Group) map[string]int {
	unit := g.Clone()
	unit.Coefficient = 1
	return unit.AtomCounts()
}

// buildRows creates one constraint row per element symbol. Unknown
// columns follow the group order after the reference: remaining left
// groups positive, right groups negative. Rows with a zero constant are
// divided by the gcd of their entries.
func buildRows(symbols []string, counts []map[string]int, leftLen int) []row {
	rows := make([]row, 0, len(symbols))
	for _, symbol := range symbols {
		entries := make([]int64, len(counts)-1)
		for i := 1; i < len(counts); i++ {
			n := int64(counts[i][symbol])
			if i >= leftLen {
				n = -n
			}
			entries[i-1] = n
		}
		r := row{symbol: symbol, entries: entries, rhs: -int64(counts[0][symbol])}
		if r.rhs == 0 {
			reduceRow(r.entries)
		}
		rows = append(rows, r)
	}
	return rows
}

// reduceRow divides the entries by their collective gcd in place.
func reduceRow(entries []int64) {
	var g int64
	for _, v := range entries {
		if v < 0 {
			v = -v
		}
		g = gcd(g, v)
	}
	if g <= 1 {
		return
	}
	for i := range entries {
		entries[i] /= g
	}
}

// dedupRows collapses rows with identical entries and constant, keeping
// the first occurrence.
func dedupRows(rows []row) []row {
	seen := make(map[string]bool, len(rows))
	out := rows[:0]
	for _, r := range rows {
		key := rowKey(r)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, r)
	}
	return out
}

func rowKey(r row) string {
	buf := make([]byte, 0, 4*len(r.entries))
	for _, v := range r.entries {
		buf = appendInt(buf, v)
		buf = append(buf, ',')
	}
	return string(appendInt(buf, r.rhs))
}

func appendInt(buf []byte, v int64) []byte {
	if v < 0 {
		buf = append(buf, '-')
		v = -v
	}
	if v >= 10 {
		buf = appendInt(buf, v/10)
	}
	return append(buf, byte('0'+v%10))
}

// selectRows keeps exactly n rows, favoring the least sparse constraints:
// rows are ranked by their count of non-zero entries, descending, with
// ties kept in first-encounter order.
func selectRows(rows []row, n int) []row {
	sort.SliceStable(rows, func(i, j int) bool {
		return nonZero(rows[i].entries) > nonZero(rows[j].entries)
	})
	return rows[:n]
}

func nonZero(entries []int64) int {
	n := 0
	for _, v := range entries {
		if v != 0 {
			n++
		}
	}
	return n
}

// solveRows builds the square system and solves it exactly.
func solveRows(rows []row, unknowns int) ([]*big.Rat, error) {
	a := matrix.New(len(rows), unknowns)
	b := make([]*big.Rat, len(rows))
	for r, rw := range rows {
		for c, v := range rw.entries {
			a.Set(r, c, new(big.Rat).SetInt64(v))
		}
		b[r] = new(big.Rat).SetInt64(rw.rhs)
	}
	return matrix.Solve(a, b)
}

// normalize converts the rational solution into integer coefficients: each
// ratio is clamped to the denominator bound, the least common multiple of
// the denominators scales every unknown, and the reference group is fixed
// at the multiple itself. Non-positive coefficients cannot balance a real
// equation and are rejected.
func normalize(solution []*big.Rat) ([]int, error) {
	ratios := make([]*big.Rat, len(solution))
	mult := int64(1)
	for i, x := range solution {
		ratios[i] = limitDenominator(x, maxDenominator)
		mult = lcm(mult, ratios[i].Denom().Int64())
	}

	coefs := make([]int, len(solution)+1)
	coefs[0] = int(mult)
	scale := new(big.Rat).SetInt64(mult)
	for i, ratio := range ratios {
		v := new(big.Rat).Mul(ratio, scale)
		if !v.IsInt() {
			return nil, ErrCouldNotBalance
		}
		coefs[i+1] = int(v.Num().Int64())
	}
	for _, c := range coefs {
		if c <= 0 {
			return nil, ErrCouldNotBalance
		}
	}
	return coefs, nil
}

// rebuild assigns the coefficients onto fresh copies of the original
// groups, left side first, and constructs the resulting equation.
func rebuild(eq *equation.Equation, coefs []int) (*equation.Equation, error) {
	left := make([]*formula.Group, len(eq.Left))
	right := make([]*formula.Group, len(eq.Right))
	i := 0
	for j, g := range eq.Left {
		left[j] = withCoefficient(g, coefs[i])
		i++
	}
	for j, g := range eq.Right {
		right[j] = withCoefficient(g, coefs[i])
		i++
	}
	return equation.New(left, right)
}

func withCoefficient(g *formula.Group, coefficient int) *formula.Group {
	out := g.Clone()
	out.Coefficient = coefficient
	return out
}
