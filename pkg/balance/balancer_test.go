package balance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stoichlabs/stoich/pkg/equation"
	"github.com/stoichlabs/stoich/pkg/matrix"
)

func mustParse(t *testing.T, text string) *equation.Equation {
	t.Helper()
	eq, err := equation.Parse(text)
	require.NoError(t, err)
	return eq
}

// coefficients returns the top-level coefficients of all groups,
// left side first.
func coefficients(eq *equation.Equation) []int {
	var out []int
	for _, g := range eq.Left {
		out = append(out, g.Coefficient)
	}
	for _, g := range eq.Right {
		out = append(out, g.Coefficient)
	}
	return out
}

func TestBalance_Methane(t *testing.T) {
	eq := mustParse(t, "CH4 + O2 -> CO2 + H2O")

	balanced, err := Balance(eq)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 1, 2}, coefficients(balanced))
	assert.True(t, balanced.IsBalanced())
	assert.Equal(t, "CH4 + 2O2 -> CO2 + 2H2O", balanced.String())
}

func TestBalance_IronOxide(t *testing.T) {
	eq := mustParse(t, "Fe + O2 -> Fe2O3")

	balanced, err := Balance(eq)
	require.NoError(t, err)

	assert.Equal(t, []int{4, 3, 2}, coefficients(balanced))
	assert.True(t, balanced.IsBalanced())
}

func TestBalance_Combustion(t *testing.T) {
	eq := mustParse(t, "C3H8 + O2 -> CO2 + H2O")

	balanced, err := Balance(eq)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 5, 3, 4}, coefficients(balanced))
	assert.True(t, balanced.IsBalanced())
}

func TestBalance_BracketedFormulas(t *testing.T) {
	eq := mustParse(t, "Al + HCl -> AlCl3 + H2")

	balanced, err := Balance(eq)
	require.NoError(t, err)

	assert.Equal(t, []int{2, 6, 2, 3}, coefficients(balanced))
	assert.True(t, balanced.IsBalanced())
}

func TestBalance_DoesNotMutateInput(t *testing.T) {
	eq := mustParse(t, "Fe + O2 -> Fe2O3")

	_, err := Balance(eq)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 1, 1}, coefficients(eq))
}

func TestBalance_ElementConservation(t *testing.T) {
	inputs := []string{
		"CH4 + O2 -> CO2 + H2O",
		"Fe + O2 -> Fe2O3",
		"Al + HCl -> AlCl3 + H2",
		"C3H8 + O2 -> CO2 + H2O",
		"Na + H2O -> NaOH + H2",
	}
	for _, input := range inputs {
		balanced, err := Balance(mustParse(t, input))
		require.NoError(t, err, input)
		assert.Equal(t,
			balanced.SideCounts(equation.Left),
			balanced.SideCounts(equation.Right),
			input)
	}
}

func TestBalance_Idempotent(t *testing.T) {
	balanced, err := Balance(mustParse(t, "CH4 + O2 -> CO2 + H2O"))
	require.NoError(t, err)

	again, err := Balance(balanced)
	require.NoError(t, err)
	assert.Equal(t, coefficients(balanced), coefficients(again))

	// A pre-coefficiented balanced equation also reproduces itself.
	pre := mustParse(t, "2H2 + O2 -> 2H2O")
	out, err := Balance(pre)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 1, 2}, coefficients(out))
}

func TestBalance_Underdetermined(t *testing.T) {
	// Two distinct elements but a single free unknown.
	_, err := Balance(mustParse(t, "H2 -> O2"))
	assert.ErrorIs(t, err, ErrUnderdetermined)

	// Three elements, two unknowns.
	_, err = Balance(mustParse(t, "C + O2 -> N2"))
	assert.ErrorIs(t, err, ErrUnderdetermined)
}

func TestBalance_TooFewConstraints(t *testing.T) {
	// Four groups but only two elements: fewer constraint rows than
	// unknowns survive.
	_, err := Balance(mustParse(t, "C + O -> CO + CO"))
	assert.ErrorIs(t, err, ErrUnderdetermined)
}

func TestBalance_DenominatorBoundExceeded(t *testing.T) {
	// The exact ratio is 31/16; its denominator exceeds the bound of 15,
	// so the approximated solution fails verification instead of being
	// silently rounded.
	_, err := Balance(mustParse(t, "H31 -> H16"))
	assert.ErrorIs(t, err, ErrCouldNotBalance)
}

func TestBalance_WithinDenominatorBound(t *testing.T) {
	balanced, err := Balance(mustParse(t, "H4 -> H2"))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, coefficients(balanced))
}

func TestBalance_SingularSystem(t *testing.T) {
	// Identical formulas in every unknown position give proportional
	// columns, so the square system has determinant zero.
	_, err := Balance(mustParse(t, "H2O + H2O -> H2O"))
	assert.ErrorIs(t, err, matrix.ErrSingular)
}
