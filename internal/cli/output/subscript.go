package output

import (
	"strconv"
	"strings"

	"github.com/stoichlabs/stoich/pkg/formula"
)

// zeroSubscript is U+2080; the subscript digits are contiguous from it.
const zeroSubscript = '₀'

// Subscript renders n with Unicode subscript digits.
func Subscript(n int) string {
	var sb strings.Builder
	for _, d := range strconv.Itoa(n) {
		sb.WriteRune(zeroSubscript + (d - '0'))
	}
	return sb.String()
}

// FormatGroup renders a formula group for display. With unicode enabled,
// element multiplicities and bracket coefficients become subscript glyphs
// (H₂O); otherwise the plain re-parseable ASCII form is used.
func FormatGroup(g *formula.Group, unicode bool) string {
	if !unicode {
		return g.String()
	}
	var sb strings.Builder
	writeGroup(&sb, g)
	return sb.String()
}

func writeGroup(sb *strings.Builder, g *formula.Group) {
	if !g.Bracketed && g.Coefficient > 1 {
		sb.WriteString(strconv.Itoa(g.Coefficient))
	}
	if g.Bracketed {
		sb.WriteByte('(')
	}
	for _, child := range g.Children {
		switch c := child.(type) {
		case *formula.Element:
			sb.WriteString(c.Symbol)
			if c.Multiplicity > 1 {
				sb.WriteString(Subscript(c.Multiplicity))
			}
		case *formula.Group:
			writeGroup(sb, c)
		}
	}
	if g.Bracketed {
		sb.WriteByte(')')
		if g.Coefficient > 1 {
			sb.WriteString(Subscript(g.Coefficient))
		}
	}
}
