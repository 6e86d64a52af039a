package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ProgressBar renders a bar with a percentage. An undefined (NaN) percentage,
// as for an empty list, renders an empty bar with "--%".
func ProgressBar(pct float64, width int) string {
	t := Current()
	if width < 5 {
		width = 5
	}
	if math.IsNaN(pct) {
		return strings.Repeat(t.BarEmpty, width) + "  --%"
	}
	pct = max(0, min(100, pct))
	filled := int(pct / 100 * float64(width))
	bar := strings.Repeat(t.BarFull, filled) + strings.Repeat(t.BarEmpty, width-filled)
	return fmt.Sprintf("%s %3d%%", bar, int(pct))
}

// Panel frames lines with the current theme's border.
func Panel(lines []string) string {
	border := lipgloss.NewStyle().
		Border(Current().Border).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1)
	return border.Render(strings.Join(lines, "\n"))
}
