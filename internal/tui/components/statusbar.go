package components

import (
	"strings"

	"github.com/theirongolddev/hormiga/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// KeyHint is a key binding shown in the status bar.
type KeyHint struct {
	Key  string
	Desc string
}

// RenderStatusBar renders the key hints on the left and an optional
// message on the right. isErr renders the message in the error color.
func RenderStatusBar(width int, hints []KeyHint, msg string, isErr bool) string {
	t := theme.Active

	keyStyle := lipgloss.NewStyle().Foreground(t.Accent)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = keyStyle.Render("["+h.Key+"]") + descStyle.Render(h.Desc)
	}
	left := " " + strings.Join(parts, "  ")

	right := ""
	if msg != "" {
		color := t.TextMuted
		if isErr {
			color = t.Red
		}
		right = lipgloss.NewStyle().Foreground(color).Render(msg) + " "
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}
	return left + strings.Repeat(" ", padding) + right
}
