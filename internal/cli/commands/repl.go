package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
	"github.com/stoichlabs/stoich/internal/cli/config"
	"github.com/stoichlabs/stoich/internal/cli/output"
	"github.com/stoichlabs/stoich/pkg/balance"
	"github.com/stoichlabs/stoich/pkg/equation"
)

// NewREPLCommand creates the repl command.
func NewREPLCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start the interactive balancer",
		Long: `Start an interactive loop that balances every equation typed at
the prompt. Type .help inside the loop for the available commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runREPL(cmd)
		},
	}
}

func runREPL(cmd *cobra.Command) error {
	ctx := cmd.Context()
	cfg := config.GetConfig(ctx)
	logger := config.GetLogger(ctx)
	renderer := output.GetRenderer(ctx)

	// Configure readline
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          cfg.Prompt,
		HistoryFile:     cfg.HistoryFile,
		AutoComplete:    newREPLCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	// Print welcome message
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "stoich equation balancer")
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Type an equation like \"CH4 + O2 -> CO2 + H2O\", or .help for commands")
	_, _ = fmt.Fprintln(cmd.OutOrStdout())

	// REPL loop
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		// Handle dot-commands
		if strings.HasPrefix(line, ".") {
			if quit := handleDotCommand(cmd, cfg, renderer, line); quit {
				break
			}
			continue
		}

		eq, err := equation.Parse(line)
		if err != nil {
			renderer.Errorf("%v", err)
			continue
		}
		if err := checkLimits(cfg, eq); err != nil {
			renderer.Errorf("%v", err)
			continue
		}

		balanced, err := balance.Balance(eq)
		if err != nil {
			renderer.Errorf("%v", err)
			continue
		}
		logger.Debug("balanced equation", "equation", balanced.String())

		if err := renderer.BalanceResult(eq, balanced); err != nil {
			renderer.Errorf("%v", err)
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout())
	}

	return nil
}

// handleDotCommand runs one dot-command; it reports whether the loop
// should exit.
func handleDotCommand(cmd *cobra.Command, cfg *config.Config, renderer *output.Renderer, line string) bool {
	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])
	rest := strings.TrimSpace(strings.TrimPrefix(line, parts[0]))

	switch command {
	case ".quit", ".exit":
		return true

	case ".help":
		printREPLHelp(cmd.OutOrStdout())

	case ".atoms", ".check":
		if rest == "" {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Usage: %s <equation>\n", command)
			return false
		}
		eq, err := equation.Parse(rest)
		if err != nil {
			renderer.Errorf("%v", err)
			return false
		}
		if err := checkLimits(cfg, eq); err != nil {
			renderer.Errorf("%v", err)
			return false
		}
		if err := renderer.AtomCounts(eq); err != nil {
			renderer.Errorf("%v", err)
		}

	case ".unicode":
		switch rest {
		case "on":
			renderer.SetUnicode(true)
		case "off":
			renderer.SetUnicode(false)
		default:
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Usage: .unicode on|off")
		}

	case ".clear":
		_, _ = fmt.Fprint(cmd.OutOrStdout(), "\033[H\033[2J")

	default:
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Unknown command: %s (type .help for commands)\n", command)
	}
	return false
}

func printREPLHelp(w io.Writer) {
	help := `
Commands:
  .help             Show this help message
  .atoms <eq>       Show per-side atom counts without balancing
  .check <eq>       Alias for .atoms
  .unicode on|off   Toggle subscript glyphs in output
  .clear            Clear the screen
  .quit / .exit     Exit the loop

Tips:
  - Anything else is treated as an equation and balanced
  - Sides are separated by ->, groups by +
  - Use arrow keys to navigate history
`
	_, _ = fmt.Fprintln(w, help)
}

// commonSymbols seeds tab completion with frequently typed element
// symbols.
var commonSymbols = []string{
	"H", "He", "C", "N", "O", "F", "Na", "Mg", "Al", "Si", "P", "S",
	"Cl", "K", "Ca", "Fe", "Cu", "Zn", "Br", "Ag", "I", "Au", "Pb",
}

// newREPLCompleter creates a readline completer for dot-commands and
// element symbols.
func newREPLCompleter() *readline.PrefixCompleter {
	items := []readline.PrefixCompleterInterface{
		readline.PcItem(".help"),
		readline.PcItem(".atoms"),
		readline.PcItem(".check"),
		readline.PcItem(".unicode", readline.PcItem("on"), readline.PcItem("off")),
		readline.PcItem(".clear"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	}
	for _, symbol := range commonSymbols {
		items = append(items, readline.PcItem(symbol))
	}
	return readline.NewPrefixCompleter(items...)
}
