package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorDim    = lipgloss.Color("240")
)

var (
	styleName    = lipgloss.NewStyle().Foreground(colorCyan)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
	styleMatch   = lipgloss.NewStyle().Foreground(colorGreen)
	styleNoMatch = lipgloss.NewStyle().Foreground(colorYellow)
	styleError   = lipgloss.NewStyle().Foreground(colorRed)
)

const (
	iconMatch   = "✓"
	iconNoMatch = "·"
	iconError   = "✗"
	iconArrow   = "→"
)

// printMatch prints a rule that matched, with the text it read.
func printMatch(w io.Writer, rule, text string) {
	fmt.Fprintf(w, "%s %s %s\n", styleMatch.Render(iconMatch), rule, styleDim.Render(fmt.Sprintf("%q", text)))
}

// printNoMatch prints a rule that read text but did not match.
func printNoMatch(w io.Writer, rule, text string) {
	fmt.Fprintf(w, "%s %s %s\n", styleNoMatch.Render(iconNoMatch), rule, styleDim.Render(fmt.Sprintf("%q", text)))
}

// printFailure prints a rule that could not be applied.
func printFailure(w io.Writer, rule string, err error) {
	fmt.Fprintf(w, "%s %s %s\n", styleError.Render(iconError), rule, styleError.Render(err.Error()))
}

// printBox prints a group and its box in scan pixels.
func printBox(w io.Writer, name string, x, y, x2, y2 int) {
	fmt.Fprintf(w, "%s %s (%d,%d)-(%d,%d)\n", styleName.Render(name), iconArrow, x, y, x2, y2)
}
