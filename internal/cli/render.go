package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/hormiga/internal/model"
)

// Theme colors (Flexoki Dark)
var (
	ColorBorder    = lipgloss.Color("#282726")
	ColorTextDim   = lipgloss.Color("#575653")
	ColorTextMuted = lipgloss.Color("#6F6E69")
	ColorText      = lipgloss.Color("#FFFCF0")
	ColorAccent    = lipgloss.Color("#3AA99F")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	valueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	dimStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)
)

// Table represents a bordered text table for CLI output.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(48).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

// RenderTable renders a bordered table. The first column is left-aligned,
// the rest are right-aligned. A row holding only "---" draws a separator.
func RenderTable(t Table) string {
	numCols := len(t.Headers)
	if numCols == 0 && len(t.Rows) > 0 {
		numCols = len(t.Rows[0])
	}
	if numCols == 0 {
		return ""
	}

	widths := make([]int, numCols)
	measure := func(cells []string) {
		for i, c := range cells {
			if i < numCols && lipgloss.Width(c) > widths[i] {
				widths[i] = lipgloss.Width(c)
			}
		}
	}
	measure(t.Headers)
	for _, row := range t.Rows {
		measure(row)
	}

	rule := func(left, mid, right string) string {
		var b strings.Builder
		b.WriteString(left)
		for i, w := range widths {
			b.WriteString(strings.Repeat("─", w+2))
			if i < numCols-1 {
				b.WriteString(mid)
			}
		}
		b.WriteString(right)
		return dimStyle.Render(b.String()) + "\n"
	}

	line := func(cells []string, style lipgloss.Style, alignRight bool) string {
		var b strings.Builder
		b.WriteString(dimStyle.Render("│"))
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			pad := strings.Repeat(" ", widths[i]-lipgloss.Width(cell))
			if alignRight && i > 0 {
				cell = pad + cell
			} else {
				cell += pad
			}
			b.WriteString(style.Render(" " + cell + " "))
			b.WriteString(dimStyle.Render("│"))
		}
		return b.String() + "\n"
	}

	var b strings.Builder
	if t.Title != "" {
		b.WriteString("  ")
		b.WriteString(headerStyle.Render(t.Title))
		b.WriteString("\n")
	}

	b.WriteString(rule("╭", "┬", "╮"))
	if len(t.Headers) > 0 {
		b.WriteString(line(t.Headers, headerStyle, false))
		b.WriteString(rule("├", "┼", "┤"))
	}
	for _, row := range t.Rows {
		if len(row) == 1 && row[0] == "---" {
			b.WriteString(rule("├", "┼", "┤"))
			continue
		}
		b.WriteString(line(row, valueStyle, true))
	}
	b.WriteString(rule("╰", "┴", "╯"))

	return b.String()
}

// RenderSplitBar draws the chart proportion as a horizontal bar: income
// share on the left, expense share on the right.
func RenderSplitBar(p model.Proportion, width int) string {
	if width < 4 {
		width = 4
	}
	expenseCells := int(p.ExpenseAngle / 360 * float64(width))
	if p.Full {
		expenseCells = width
	}
	if expenseCells > width {
		expenseCells = width
	}
	incomeCells := width - expenseCells

	incomeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(p.IncomeColor))
	expenseStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(p.ExpenseColor))

	return incomeStyle.Render(strings.Repeat("░", incomeCells)) +
		expenseStyle.Render(strings.Repeat("█", expenseCells))
}

// RenderKeyValue renders an aligned "label  value" line.
func RenderKeyValue(label, value string, labelW int) string {
	return fmt.Sprintf("  %s %s", mutedStyle.Render(fmt.Sprintf("%-*s", labelW, label)), valueStyle.Render(value))
}
