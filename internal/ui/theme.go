package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles styles, symbols and the panel border.
// All renderers pull from Current.
type Theme struct {
	Title, Muted, Accent, Success, Error, Pending lipgloss.Style
	Cursor, Done, Help                            lipgloss.Style

	Border lipgloss.Border

	BoxUnchecked, BoxChecked, BoxPartial string
	SymDone, SymPending                  string
	BarFull, BarEmpty                    string
}

var current = classic()

func classic() Theme {
	return Theme{
		Title:   lipgloss.NewStyle().Bold(true),
		Muted:   lipgloss.NewStyle().Faint(true),
		Accent:  lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Pending: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Cursor:  lipgloss.NewStyle().Bold(true).Reverse(true),
		Done:    lipgloss.NewStyle().Faint(true).Strikethrough(true),
		Help:    lipgloss.NewStyle().Faint(true),
		Border:  lipgloss.RoundedBorder(),

		BoxUnchecked: "☐", BoxChecked: "☑", BoxPartial: "⊟",
		SymDone: "✔", SymPending: "•",
		BarFull: "█", BarEmpty: "░",
	}
}

// SetTheme switches the current theme; unknown names fall back to classic.
func SetTheme(name string) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "neon":
		t := classic()
		t.Title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
		t.Accent = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
		t.Pending = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
		t.BoxUnchecked, t.BoxChecked, t.BoxPartial = "◻", "◼", "◩"
		current = t
	case "mono":
		plain := lipgloss.NewStyle()
		current = Theme{
			Title: plain, Muted: plain, Accent: plain, Success: plain,
			Error: plain, Pending: plain, Cursor: plain, Done: plain, Help: plain,
			Border: lipgloss.Border{
				Top: "-", Bottom: "-", Left: "|", Right: "|",
				TopLeft: "+", TopRight: "+", BottomLeft: "+", BottomRight: "+",
			},
			BoxUnchecked: "[ ]", BoxChecked: "[x]", BoxPartial: "[-]",
			SymDone: "x", SymPending: "-",
			BarFull: "#", BarEmpty: ".",
		}
	default:
		current = classic()
	}
}

func Current() Theme { return current }
