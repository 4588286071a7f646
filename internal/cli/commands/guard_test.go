package commands

import (
	"testing"

	"github.com/stoichlabs/stoich/internal/cli/config"
	"github.com/stoichlabs/stoich/pkg/equation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, text string) *equation.Equation {
	t.Helper()
	eq, err := equation.Parse(text)
	require.NoError(t, err)
	return eq
}

func TestCheckLimits_WithinBounds(t *testing.T) {
	cfg := config.Default()
	assert.NoError(t, checkLimits(cfg, mustParse(t, "CH4 + O2 -> CO2 + H2O")))
}

func TestCheckLimits_TooManyElements(t *testing.T) {
	cfg := config.Default()
	cfg.MaxElements = 2

	err := checkLimits(cfg, mustParse(t, "CH4 + O2 -> CO2 + H2O"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "3 distinct elements")
}

func TestCheckLimits_TooDeep(t *testing.T) {
	cfg := config.Default()
	cfg.MaxDepth = 2

	err := checkLimits(cfg, mustParse(t, "K4[ON(SO3)2]2 -> K4[ON(SO3)2]2"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nests 3 levels deep")
}

func TestDepth(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"H2O", 1},
		{"Ca(OH)2", 2},
		{"K4[ON(SO3)2]2", 3},
	}
	for _, tt := range tests {
		eq := mustParse(t, tt.text+" -> "+tt.text)
		assert.Equal(t, tt.want, depth(eq.Left[0]), tt.text)
	}
}
