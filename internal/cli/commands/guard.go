package commands

import (
	"fmt"

	"github.com/stoichlabs/stoich/internal/cli/config"
	"github.com/stoichlabs/stoich/pkg/equation"
	"github.com/stoichlabs/stoich/pkg/formula"
)

// checkLimits bounds the input before it reaches the core: determinant
// computation is exponential in the number of distinct elements, and the
// core itself performs no guarding.
func checkLimits(cfg *config.Config, eq *equation.Equation) error {
	if n := len(eq.Symbols()); n > cfg.MaxElements {
		return fmt.Errorf("equation has %d distinct elements, limit is %d", n, cfg.MaxElements)
	}
	for _, g := range append(append([]*formula.Group{}, eq.Left...), eq.Right...) {
		if d := depth(g); d > cfg.MaxDepth {
			return fmt.Errorf("formula %s nests %d levels deep, limit is %d", g, d, cfg.MaxDepth)
		}
	}
	return nil
}

// depth returns the bracket-nesting depth of a group tree.
func depth(n formula.Node) int {
	g, ok := n.(*formula.Group)
	if !ok {
		return 0
	}
	max := 0
	for _, child := range g.Children {
		if d := depth(child); d > max {
			max = d
		}
	}
	return max + 1
}
