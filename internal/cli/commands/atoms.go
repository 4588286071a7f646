package commands

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/stoichlabs/stoich/internal/cli/config"
	"github.com/stoichlabs/stoich/internal/cli/output"
	"github.com/stoichlabs/stoich/pkg/equation"
)

// NewAtomsCommand creates the atoms command.
func NewAtomsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "atoms <equation>",
		Short: "Show per-side atom counts of an equation",
		Long: `Parse a chemical equation and report how many atoms of each
element appear on each side, along with whether the equation is balanced
as written.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.GetConfig(ctx)
			renderer := output.GetRenderer(ctx)

			eq, err := equation.Parse(strings.Join(args, " "))
			if err != nil {
				return err
			}
			if err := checkLimits(cfg, eq); err != nil {
				return err
			}
			return renderer.AtomCounts(eq)
		},
	}
}
