package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/pterm/pterm"

	"github.com/benchkit/benchkit/pkg/types"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			MarginBottom(1)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "42"}).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "130", Dark: "214"}).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "124", Dark: "196"}).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "241", Dark: "245"})

	pathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "25", Dark: "39"}).
			Italic(true)
)

// glyphFor returns the colored marker printed before each step line.
func glyphFor(c types.Classification) string {
	switch c {
	case types.ClassSatisfied:
		return pterm.NewStyle(pterm.FgGray).Sprint("=")
	case types.ClassSucceeded:
		return pterm.NewStyle(pterm.FgGreen, pterm.Bold).Sprint("+")
	case types.ClassSoftFailed:
		return pterm.NewStyle(pterm.FgYellow, pterm.Bold).Sprint("!")
	case types.ClassHardFailed:
		return pterm.NewStyle(pterm.FgRed, pterm.Bold).Sprint("x")
	case types.ClassSkipped:
		return pterm.NewStyle(pterm.FgGray).Sprint("-")
	default:
		return "?"
	}
}

func styleFor(c types.Classification) lipgloss.Style {
	switch c {
	case types.ClassSucceeded:
		return successStyle
	case types.ClassSoftFailed:
		return warningStyle
	case types.ClassHardFailed:
		return errorStyle
	case types.ClassSkipped, types.ClassSatisfied:
		return mutedStyle
	default:
		return mutedStyle
	}
}

// groupOrder lists the summary sections in display order.
var groupOrder = []struct {
	class   types.Classification
	heading string
}{
	{types.ClassSucceeded, "Installed"},
	{types.ClassSatisfied, "Already in place"},
	{types.ClassSkipped, "Skipped"},
	{types.ClassSoftFailed, "Failed (optional)"},
	{types.ClassHardFailed, "Failed (required)"},
}

// Renderer writes reports to a terminal or plain stream.
type Renderer struct {
	w     io.Writer
	plain bool
}

// NewRenderer builds a renderer for w. Styling is dropped when w is
// not a terminal or the environment disables color.
func NewRenderer(w io.Writer) *Renderer {
	plain := true
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		plain = !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd())
	}
	if termenv.EnvNoColor() {
		plain = true
	}
	return &Renderer{w: w, plain: plain}
}

// NewPlainRenderer builds a renderer that never emits styling.
func NewPlainRenderer(w io.Writer) *Renderer {
	return &Renderer{w: w, plain: true}
}

func (rd *Renderer) styled(s lipgloss.Style, text string) string {
	if rd.plain {
		return text
	}
	return s.Render(text)
}

// Render writes the full run summary: detected capabilities, grouped
// step outcomes, remediation hints, and the log file location.
func (rd *Renderer) Render(r *Report) {
	fmt.Fprintln(rd.w, rd.styled(titleStyle, "Run summary"))

	rd.renderCapabilities(r)
	rd.renderOutcomes(r)
	rd.renderHints(r)
	rd.renderFooter(r)
}

func (rd *Renderer) renderCapabilities(r *Report) {
	if len(r.Capabilities) == 0 {
		return
	}
	names := make([]string, 0, len(r.Capabilities))
	for name := range r.Capabilities {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(rd.w, "Detected tools:")
	for _, name := range names {
		c := r.Capabilities[name]
		if c.Present {
			line := fmt.Sprintf("  %s", name)
			if c.Version != "" {
				line += " " + rd.styled(mutedStyle, c.Version)
			}
			fmt.Fprintln(rd.w, line)
		} else {
			fmt.Fprintf(rd.w, "  %s %s\n", name, rd.styled(mutedStyle, "(not found)"))
		}
	}
	fmt.Fprintln(rd.w)
}

func (rd *Renderer) renderOutcomes(r *Report) {
	groups := r.Grouped()
	for _, g := range groupOrder {
		outcomes := groups[g.class]
		if len(outcomes) == 0 {
			continue
		}
		heading := fmt.Sprintf("%s (%d)", g.heading, len(outcomes))
		fmt.Fprintln(rd.w, rd.styled(styleFor(g.class), heading))
		for _, o := range outcomes {
			glyph := glyphFor(o.Class)
			if rd.plain {
				glyph = plainGlyph(o.Class)
			}
			line := fmt.Sprintf("  %s %s", glyph, o.Step)
			if o.Message != "" {
				line += rd.styled(mutedStyle, " — "+o.Message)
			}
			fmt.Fprintln(rd.w, line)
		}
		fmt.Fprintln(rd.w)
	}
}

func plainGlyph(c types.Classification) string {
	switch c {
	case types.ClassSucceeded:
		return "+"
	case types.ClassSatisfied:
		return "="
	case types.ClassSoftFailed:
		return "!"
	case types.ClassHardFailed:
		return "x"
	case types.ClassSkipped:
		return "-"
	default:
		return "?"
	}
}

func (rd *Renderer) renderHints(r *Report) {
	hints := r.Hints()
	if len(hints) == 0 {
		return
	}
	fmt.Fprintln(rd.w, rd.styled(warningStyle, "Next steps"))
	for _, h := range hints {
		fmt.Fprintf(rd.w, "  * %s\n", h)
	}
	fmt.Fprintln(rd.w)
}

func (rd *Renderer) renderFooter(r *Report) {
	c := r.Count()
	var status string
	switch {
	case c.HardFails > 0 || r.FinalState == types.StateAborted:
		status = rd.styled(errorStyle, "Run aborted")
	case c.SoftFails > 0:
		status = rd.styled(warningStyle, "Run finished with warnings")
	case c.Succeeded == 0 && c.Satisfied > 0:
		status = rd.styled(successStyle, "Everything already in place")
	default:
		status = rd.styled(successStyle, "Run finished")
	}

	parts := []string{status}
	if !r.Started.IsZero() && !r.Finished.IsZero() {
		parts = append(parts, rd.styled(mutedStyle, "in "+r.Finished.Sub(r.Started).Round(10*time.Millisecond).String()))
	}
	fmt.Fprintln(rd.w, strings.Join(parts, " "))

	if r.LogFile != "" {
		fmt.Fprintf(rd.w, "Full log: %s\n", rd.styled(pathStyle, r.LogFile))
	}
}
