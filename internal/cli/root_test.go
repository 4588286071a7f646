package cli

import (
	"bytes"
	"testing"

	"github.com/stoichlabs/stoich/internal/cli/config"
	"github.com/stoichlabs/stoich/pkg/balance"
	"github.com/stoichlabs/stoich/pkg/equation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and captures stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	config.ResetConfig()
	cfgFile = ""

	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestBalanceCommand(t *testing.T) {
	out, _, err := execute(t, "balance", "-o", "markdown", "CH4 + O2 -> CO2 + H2O")
	require.NoError(t, err)
	assert.Contains(t, out, "Out: `CH4 + 2O2 -> CO2 + 2H2O`")
}

func TestBalanceCommand_JoinsArgs(t *testing.T) {
	// Unquoted equations arrive as separate args; "--" keeps "->" from
	// being parsed as a flag.
	out, _, err := execute(t, "balance", "-o", "markdown", "--", "Fe", "+", "O2", "->", "Fe2O3")
	require.NoError(t, err)
	assert.Contains(t, out, "4Fe + 3O2 -> 2Fe2O3")
}

func TestBalanceCommand_JSONOutput(t *testing.T) {
	out, _, err := execute(t, "balance", "-o", "json", "H2 + O2 -> H2O")
	require.NoError(t, err)
	assert.Contains(t, out, `"balanced": "2H2 + O2 -> 2H2O"`)
}

func TestBalanceCommand_ParseError(t *testing.T) {
	_, _, err := execute(t, "balance", "H2 + o2 -> H2O")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed formula")
}

func TestBalanceCommand_NoArrow(t *testing.T) {
	_, _, err := execute(t, "balance", "H2 + O2")
	assert.ErrorIs(t, err, equation.ErrEmptyEquation)
}

func TestBalanceCommand_Underdetermined(t *testing.T) {
	_, _, err := execute(t, "balance", "H2 -> O2")
	assert.ErrorIs(t, err, balance.ErrUnderdetermined)
}

func TestBalanceCommand_MaxElementsLimit(t *testing.T) {
	_, _, err := execute(t, "balance", "--max-elements", "2",
		"KMnO4 + HCl -> KCl + MnCl2 + H2O + Cl2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "distinct elements")
}

func TestAtomsCommand(t *testing.T) {
	out, _, err := execute(t, "atoms", "-o", "markdown", "2H2 + O2 -> 2H2O")
	require.NoError(t, err)
	assert.Contains(t, out, "| H | 4 | 4 |")
	assert.Contains(t, out, "This equation is balanced")
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "stoich v"+Version)
}

func TestUnknownOutputFormatRejected(t *testing.T) {
	_, _, err := execute(t, "balance", "-o", "xml", "H2 + O2 -> H2O")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}
