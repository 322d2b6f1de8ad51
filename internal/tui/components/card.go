// Package components provides reusable TUI widgets for the hormiga wizard.
package components

import (
	"github.com/theirongolddev/hormiga/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Stat is one labeled figure shown in a StatCard.
type Stat struct {
	Label string
	Value string
	Note  string
}

// LayoutRow distributes totalWidth into n widths that sum to exactly totalWidth.
// First items absorb the remainder from integer division.
func LayoutRow(totalWidth, n int) []int {
	if n <= 0 {
		return nil
	}
	base := totalWidth / n
	remainder := totalWidth % n
	widths := make([]int, n)
	for i := range widths {
		widths[i] = base
		if i < remainder {
			widths[i]++
		}
	}
	return widths
}

// StatCard renders a bordered figure with its label above and an optional
// note below. accent colors the value; an empty accent uses the primary text color.
func StatCard(s Stat, accent lipgloss.Color, outerWidth int) string {
	t := theme.Active
	if accent == "" {
		accent = t.TextPrimary
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Width(max(outerWidth-2, 10)).
		Padding(0, 1)

	content := lipgloss.NewStyle().Foreground(t.TextMuted).Render(s.Label) + "\n" +
		lipgloss.NewStyle().Foreground(accent).Bold(true).Render(s.Value)
	if s.Note != "" {
		content += "\n" + lipgloss.NewStyle().Foreground(t.TextDim).Render(s.Note)
	}
	return box.Render(content)
}

// StatRow renders stats side by side, filling exactly totalWidth.
func StatRow(stats []Stat, totalWidth int) string {
	if len(stats) == 0 {
		return ""
	}
	widths := LayoutRow(totalWidth, len(stats))
	cards := make([]string, len(stats))
	for i, s := range stats {
		cards[i] = StatCard(s, "", widths[i])
	}
	return CardRow(cards)
}

// Panel renders a bordered block of content with an optional title.
// A focused panel uses the accent border.
func Panel(title, body string, outerWidth int, focused bool) string {
	t := theme.Active

	border := t.Border
	if focused {
		border = t.BorderAccent
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(max(outerWidth-2, 10)).
		Padding(0, 1)

	content := body
	if title != "" {
		content = lipgloss.NewStyle().Foreground(t.TextMuted).Bold(true).Render(title) + "\n" + body
	}
	return box.Render(content)
}

// CardRow joins pre-rendered blocks horizontally, top aligned.
func CardRow(cards []string) string {
	if len(cards) == 0 {
		return ""
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

// PanelInnerWidth returns the usable text width inside a Panel of the given
// outer width.
func PanelInnerWidth(outerWidth int) int {
	return max(outerWidth-4, 10)
}
