package components

import (
	"fmt"

	"github.com/theirongolddev/hormiga/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ShareBar renders a labeled bar for the share of income spent. The bar is
// clamped to full, while the printed percentage is shown as given.
func ShareBar(label string, share float64, rounded int, color lipgloss.Color, labelW, barWidth int) string {
	t := theme.Active

	fill := share
	if fill < 0 {
		fill = 0
	}
	if fill > 1 {
		fill = 1
	}

	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	pctStyle := lipgloss.NewStyle().Foreground(color).Bold(true)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) + " " +
		bar.ViewAs(fill) + " " +
		pctStyle.Render(fmt.Sprintf("%3d%%", rounded))
}
