package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/hormiga/internal/calc"
	"github.com/theirongolddev/hormiga/internal/cli"
	"github.com/theirongolddev/hormiga/internal/model"
	"github.com/theirongolddev/hormiga/internal/tui/components"
	"github.com/theirongolddev/hormiga/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderIncome(cw int) string {
	t := theme.Active
	muted := lipgloss.NewStyle().Foreground(t.TextMuted)

	var b strings.Builder
	b.WriteString(muted.Render("How much do you earn per month?"))
	b.WriteString("\n\n")
	b.WriteString(a.income.View())
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(t.TextDim).Render(
		fmt.Sprintf("Amounts in %s (%s)", a.money.Code(), a.money.Symbol())))

	return components.Panel("Monthly income", b.String(), cw, true)
}

func (a App) renderExpenses(cw int) string {
	t := theme.Active
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	focusStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	errStyle := lipgloss.NewStyle().Foreground(t.Red)

	labelW := 0
	for _, r := range a.rows {
		labelW = max(labelW, lipgloss.Width(rowLabel(r)))
	}

	var b strings.Builder
	if len(a.rows) == 0 {
		b.WriteString(labelStyle.Render("No expenses yet. Press ctrl+n to add one."))
	}
	for i, r := range a.rows {
		if i > 0 {
			b.WriteString("\n")
		}
		label := fmt.Sprintf("%-*s", labelW, rowLabel(r))
		if i == a.focus {
			b.WriteString(focusStyle.Render(label))
		} else {
			b.WriteString(labelStyle.Render(label))
		}
		b.WriteString("  ")
		b.WriteString(r.input.View())
		if r.err != "" {
			b.WriteString("  ")
			b.WriteString(errStyle.Render(r.err))
		}
	}

	list := components.Panel("Small daily expenses", b.String(), cw, true)
	return lipgloss.JoinVertical(lipgloss.Left, list, a.renderTotals(cw), a.renderShare(cw))
}

func rowLabel(r expenseRow) string {
	return fmt.Sprintf("%s #%d", r.label, r.id)
}

func (a App) renderTotals(cw int) string {
	s := a.ctrl.Summary()
	return components.StatRow([]components.Stat{
		{Label: "Daily", Value: a.money.Format(s.Daily)},
		{Label: "Weekly", Value: a.money.Format(s.Weekly), Note: fmt.Sprintf("× %d", model.DaysInWeek)},
		{Label: "Monthly", Value: a.money.Format(s.Monthly), Note: fmt.Sprintf("× %d", model.DaysInMonth)},
		{Label: "Annual", Value: a.money.Format(s.Annual), Note: fmt.Sprintf("× %d", model.DaysInYear)},
	}, cw)
}

// renderShare shows the running share of income for the current rows.
func (a App) renderShare(cw int) string {
	pct, err := calc.Percentage(a.ctrl.MonthlyTotal(), a.ctrl.Income())
	if err != nil {
		return ""
	}
	color := theme.Active.Severity(calc.BandFor(pct).Severity)
	barW := max(cw-shareLabelWidth-8, 10)
	return " " + components.ShareBar("of income", pct.Shift(-2).InexactFloat64(), calc.RoundHalfUp(pct), color, shareLabelWidth, barW)
}

func (a App) renderResults(cw int) string {
	t := theme.Active
	result, ok := a.ctrl.Result()
	if !ok {
		return ""
	}

	accent := t.Severity(result.Severity)
	pctStyle := lipgloss.NewStyle().Foreground(accent).Bold(true)
	catStyle := lipgloss.NewStyle().Foreground(accent)
	textStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	chart := components.Donut(result.Chart, donutRadius) + "\n\n" +
		components.DonutLegend(result.Chart, "expenses", "income")
	chartW := 4*donutRadius + 5

	var b strings.Builder
	b.WriteString(mutedStyle.Render("Your small daily expenses take"))
	b.WriteString("\n")
	b.WriteString(pctStyle.Render(cli.FormatPercent(result.Rounded)))
	b.WriteString(mutedStyle.Render(" of your income"))
	b.WriteString("\n\n")
	b.WriteString(catStyle.Render(result.Category))
	b.WriteString("\n")
	b.WriteString(textStyle.Render(result.Message))
	b.WriteString("\n\n")
	b.WriteString(mutedStyle.Render("Income   ") + textStyle.Render(a.money.Format(result.Income)))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Monthly  ") + textStyle.Render(a.money.Format(result.MonthlyTotal)))

	widths := components.LayoutRow(cw, 2)
	left := components.Panel("", chart, max(widths[0], chartW), false)
	right := components.Panel(model.StageResults.Title(), b.String(), cw-lipgloss.Width(left), false)

	return lipgloss.JoinVertical(lipgloss.Left,
		components.CardRow([]string{left, right}),
		a.renderTotals(cw),
	)
}
