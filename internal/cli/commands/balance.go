// Package commands implements the stoich subcommands.
package commands

import (
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/stoichlabs/stoich/internal/cli/config"
	"github.com/stoichlabs/stoich/internal/cli/output"
	"github.com/stoichlabs/stoich/pkg/balance"
	"github.com/stoichlabs/stoich/pkg/equation"
)

// NewBalanceCommand creates the balance command.
func NewBalanceCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "balance <equation>",
		Short: "Balance a chemical equation",
		Long: `Parse a chemical equation and compute the smallest integer
coefficients that conserve every element.

The equation is written as two formula lists separated by "->", with
groups separated by "+":

  stoich balance "CH4 + O2 -> CO2 + H2O"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.GetConfig(ctx)
			logger := config.GetLogger(ctx)
			renderer := output.GetRenderer(ctx)

			text := strings.Join(args, " ")
			start := time.Now()
			eq, err := equation.Parse(text)
			if err != nil {
				return err
			}
			logger.Debug("parsed equation", "equation", eq.String(), "elapsed", time.Since(start))

			if err := checkLimits(cfg, eq); err != nil {
				return err
			}

			start = time.Now()
			balanced, err := balance.Balance(eq)
			if err != nil {
				return err
			}
			logger.Debug("balanced equation", "equation", balanced.String(), "elapsed", time.Since(start))

			return renderer.BalanceResult(eq, balanced)
		},
	}
}
