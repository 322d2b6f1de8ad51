package components

import (
	"math"
	"strings"

	"github.com/theirongolddev/hormiga/internal/model"
	"github.com/theirongolddev/hormiga/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

const donutCell = "█"

// Donut renders a proportion as a ring, radius rows tall on each side of the
// center. The expense segment starts at twelve o'clock and runs clockwise.
// Terminal cells are roughly twice as tall as wide, so columns are doubled.
func Donut(p model.Proportion, radius int) string {
	if radius < 2 {
		radius = 2
	}
	expense := lipgloss.NewStyle().Foreground(lipgloss.Color(p.ExpenseColor))
	income := lipgloss.NewStyle().Foreground(lipgloss.Color(p.IncomeColor))

	outer := float64(radius) + 0.5
	inner := float64(radius) * 0.55

	var b strings.Builder
	for row := -radius; row <= radius; row++ {
		if row > -radius {
			b.WriteByte('\n')
		}
		var line strings.Builder
		for col := -2 * radius; col <= 2*radius; col++ {
			dx := float64(col) / 2
			dy := float64(row)
			dist := math.Hypot(dx, dy)
			if dist > outer || dist < inner {
				line.WriteByte(' ')
				continue
			}
			if p.Full || clockAngle(dx, dy) < p.ExpenseAngle {
				line.WriteString(expense.Render(donutCell))
			} else {
				line.WriteString(income.Render(donutCell))
			}
		}
		b.WriteString(strings.TrimRight(line.String(), " "))
	}
	return b.String()
}

// clockAngle returns the clockwise angle in degrees from twelve o'clock
// for a cell offset from the center, in [0, 360).
func clockAngle(dx, dy float64) float64 {
	a := math.Atan2(dx, -dy) * 180 / math.Pi
	if a < 0 {
		a += 360
	}
	return a
}

// DonutLegend renders the two swatches that explain a Donut.
func DonutLegend(p model.Proportion, expenseLabel, incomeLabel string) string {
	t := theme.Active
	muted := lipgloss.NewStyle().Foreground(t.TextMuted)
	swatch := func(color string) string {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("■")
	}

	legend := swatch(p.ExpenseColor) + " " + muted.Render(expenseLabel)
	if !p.Full {
		legend += "   " + swatch(p.IncomeColor) + " " + muted.Render(incomeLabel)
	}
	return legend
}
