package components

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/hormiga/internal/model"
	"github.com/theirongolddev/hormiga/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStageBar renders the wizard steps with the active one highlighted
// and the finished ones dimmed.
func RenderStageBar(active model.Stage) string {
	t := theme.Active

	activeStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	doneStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	pendingStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	sep := lipgloss.NewStyle().Foreground(t.TextDim).Render(" › ")

	parts := make([]string, len(model.Stages))
	for i, s := range model.Stages {
		name := fmt.Sprintf("%d %s", i+1, s.Title())
		switch {
		case s == active:
			parts[i] = activeStyle.Render(name)
		case s < active:
			parts[i] = doneStyle.Render(name)
		default:
			parts[i] = pendingStyle.Render(name)
		}
	}
	return " " + strings.Join(parts, sep)
}
