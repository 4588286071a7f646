// Package output renders equations, balance results and atom-count tables
// in the CLI's output formats.
package output

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/stoichlabs/stoich/pkg/equation"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// Mode selects the output format.
type Mode string

const (
	ModeAuto     Mode = "auto"
	ModeText     Mode = "text"
	ModeMarkdown Mode = "markdown"
	ModeJSON     Mode = "json"
	ModeYAML     Mode = "yaml"
)

// rendererKey is used to store the renderer in a command context.
type rendererKey struct{}

var (
	headingStyle    = lipgloss.NewStyle().Bold(true)
	balancedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	unbalancedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

// Renderer writes results in the selected mode.
type Renderer struct {
	out     io.Writer
	errOut  io.Writer
	mode    Mode
	unicode bool
}

// NewRenderer creates a renderer. ModeAuto resolves to text on a TTY and
// markdown otherwise.
func NewRenderer(out, errOut io.Writer, mode Mode, unicode bool) *Renderer {
	if mode == ModeAuto || mode == "" {
		mode = ModeMarkdown
		if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			mode = ModeText
		}
	}
	if mode == "md" {
		mode = ModeMarkdown
	}
	return &Renderer{out: out, errOut: errOut, mode: mode, unicode: unicode}
}

// WithRenderer stores the renderer in a context.
func WithRenderer(ctx context.Context, r *Renderer) context.Context {
	return context.WithValue(ctx, rendererKey{}, r)
}

// GetRenderer retrieves the renderer from the command context.
func GetRenderer(ctx context.Context) *Renderer {
	if r, ok := ctx.Value(rendererKey{}).(*Renderer); ok {
		return r
	}
	return NewRenderer(os.Stdout, os.Stderr, ModeAuto, true)
}

// SetUnicode toggles subscript-glyph rendering.
func (r *Renderer) SetUnicode(on bool) { r.unicode = on }

// Unicode reports whether subscript-glyph rendering is enabled.
func (r *Renderer) Unicode() bool { return r.unicode }

// Equation renders an equation on one line.
func (r *Renderer) Equation(eq *equation.Equation) string {
	if !r.unicode || r.mode == ModeJSON || r.mode == ModeYAML {
		return eq.String()
	}
	parts := make([]string, 0, len(eq.Left)+len(eq.Right))
	for _, g := range eq.Left {
		parts = append(parts, FormatGroup(g, true))
	}
	left := strings.Join(parts, " + ")
	parts = parts[:0]
	for _, g := range eq.Right {
		parts = append(parts, FormatGroup(g, true))
	}
	return left + " -> " + strings.Join(parts, " + ")
}

// balanceDoc is the structured form of a balance result.
type balanceDoc struct {
	Input        string         `json:"input" yaml:"input"`
	Balanced     string         `json:"balanced" yaml:"balanced"`
	Coefficients []coefficient  `json:"coefficients" yaml:"coefficients"`
	Atoms        map[string]int `json:"atoms" yaml:"atoms"`
}

type coefficient struct {
	Formula     string `json:"formula" yaml:"formula"`
	Coefficient int    `json:"coefficient" yaml:"coefficient"`
}

// BalanceResult renders the outcome of balancing in against out.
func (r *Renderer) BalanceResult(in, balanced *equation.Equation) error {
	switch r.mode {
	case ModeJSON, ModeYAML:
		doc := balanceDoc{
			Input:    in.String(),
			Balanced: balanced.String(),
			Atoms:    balanced.SideCounts(equation.Left),
		}
		for _, g := range balanced.Left {
			doc.Coefficients = append(doc.Coefficients, coefficient{Formula: trimCoefficient(g.String(), g.Coefficient), Coefficient: g.Coefficient})
		}
		for _, g := range balanced.Right {
			doc.Coefficients = append(doc.Coefficients, coefficient{Formula: trimCoefficient(g.String(), g.Coefficient), Coefficient: g.Coefficient})
		}
		return r.encode(doc)
	case ModeText:
		_, _ = fmt.Fprintf(r.out, "%s %s\n", headingStyle.Render("In: "), r.Equation(in))
		_, _ = fmt.Fprintf(r.out, "%s %s\n", headingStyle.Render("Out:"), r.Equation(balanced))
		return nil
	default: // markdown
		_, _ = fmt.Fprintf(r.out, "In:  `%s`\n", in.String())
		_, _ = fmt.Fprintf(r.out, "Out: `%s`\n", balanced.String())
		return nil
	}
}

// atomsDoc is the structured form of an atom-count report.
type atomsDoc struct {
	Equation string         `json:"equation" yaml:"equation"`
	Left     map[string]int `json:"left" yaml:"left"`
	Right    map[string]int `json:"right" yaml:"right"`
	Balanced bool           `json:"balanced" yaml:"balanced"`
}

// AtomCounts renders the per-side atom counts of an equation plus a
// balanced/unbalanced verdict.
func (r *Renderer) AtomCounts(eq *equation.Equation) error {
	left, right := eq.SideCounts(equation.Left), eq.SideCounts(equation.Right)

	if r.mode == ModeJSON || r.mode == ModeYAML {
		return r.encode(atomsDoc{
			Equation: eq.String(),
			Left:     left,
			Right:    right,
			Balanced: eq.IsBalanced(),
		})
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Element", "Left", "Right"})
	for _, symbol := range eq.Symbols() {
		t.AppendRow(table.Row{symbol, left[symbol], right[symbol]})
	}
	if r.mode == ModeMarkdown {
		t.RenderMarkdown()
	} else {
		t.Render()
	}

	verdict := "balanced"
	style := balancedStyle
	if !eq.IsBalanced() {
		verdict = "not balanced"
		style = unbalancedStyle
	}
	if r.mode == ModeText {
		_, _ = fmt.Fprintf(r.out, "This equation is %s\n", style.Render(verdict))
	} else {
		_, _ = fmt.Fprintf(r.out, "\nThis equation is %s\n", verdict)
	}
	return nil
}

// Errorf prints a one-line error message.
func (r *Renderer) Errorf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if r.mode == ModeText {
		msg = errorStyle.Render(msg)
	}
	_, _ = fmt.Fprintf(r.errOut, "Error: %s\n", msg)
}

func (r *Renderer) encode(v any) error {
	if r.mode == ModeYAML {
		enc := yaml.NewEncoder(r.out)
		enc.SetIndent(2)
		defer func() { _ = enc.Close() }()
		return enc.Encode(v)
	}
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// trimCoefficient strips a rendered group's leading coefficient so the
// bare formula and its coefficient can be reported separately.
func trimCoefficient(rendered string, coefficient int) string {
	if coefficient > 1 {
		return strings.TrimPrefix(rendered, fmt.Sprint(coefficient))
	}
	return rendered
}
