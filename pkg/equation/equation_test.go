package equation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stoichlabs/stoich/pkg/formula"
)

func TestParse_Basic(t *testing.T) {
	eq, err := Parse("CH4 + O2 -> CO2 + H2O")
	require.NoError(t, err)

	require.Len(t, eq.Left, 2)
	require.Len(t, eq.Right, 2)
	assert.Equal(t, "CH4 + O2 -> CO2 + H2O", eq.String())
}

func TestParse_OnlyFirstArrowHonored(t *testing.T) {
	eq, err := Parse("H2 + O2 -> H2O -> this is ignored")
	require.NoError(t, err)

	require.Len(t, eq.Right, 1)
	assert.Equal(t, "H2 + O2 -> H2O", eq.String())
}

func TestParse_BlankFragmentsSkipped(t *testing.T) {
	eq, err := Parse("H2 + + O2 -> H2O")
	require.NoError(t, err)
	assert.Len(t, eq.Left, 2)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"no arrow", "H2 + O2"},
		{"empty right side", "H2 + O2 ->"},
		{"empty left side", "-> H2O"},
		{"empty input", ""},
		{"malformed formula", "H2 + O2 -> h2o"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			assert.Error(t, err)
		})
	}
}

func TestNew_RejectsEmptySides(t *testing.T) {
	g, err := formula.Parse("H2")
	require.NoError(t, err)

	_, err = New(nil, []*formula.Group{g})
	assert.ErrorIs(t, err, ErrEmptyEquation)

	_, err = New([]*formula.Group{g}, nil)
	assert.ErrorIs(t, err, ErrEmptyEquation)
}

func TestSideCounts_AddsAcrossGroups(t *testing.T) {
	// O appears in both right-side groups; counts must add, not override.
	eq, err := Parse("CH4 + O2 -> CO2 + H2O")
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"C": 1, "H": 4, "O": 2}, eq.SideCounts(Left))
	assert.Equal(t, map[string]int{"C": 1, "O": 3, "H": 2}, eq.SideCounts(Right))
}

func TestIsBalanced(t *testing.T) {
	unbalanced, err := Parse("CH4 + O2 -> CO2 + H2O")
	require.NoError(t, err)
	assert.False(t, unbalanced.IsBalanced())

	balanced, err := Parse("CH4 + 2O2 -> CO2 + 2H2O")
	require.NoError(t, err)
	assert.True(t, balanced.IsBalanced())

	// Same totals but different element sets on each side.
	mismatched, err := Parse("H2 -> He2")
	require.NoError(t, err)
	assert.False(t, mismatched.IsBalanced())
}

func TestSymbols_FirstEncounterOrder(t *testing.T) {
	eq, err := Parse("Fe + O2 -> Fe2O3")
	require.NoError(t, err)
	assert.Equal(t, []string{"Fe", "O"}, eq.Symbols())
}

func TestAtomCounts_Combined(t *testing.T) {
	eq, err := Parse("H2 + O2 -> H2O")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"H": 4, "O": 3}, eq.AtomCounts())
}
