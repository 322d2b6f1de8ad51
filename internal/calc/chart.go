package calc

import (
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/hormiga/internal/model"
)

const fullCircle = 360.0

// Chart maps an expense/income pair to a two-segment radial proportion.
// The expense share is clamped to the full circle; when expenses exceed
// income the chart collapses to one expense-colored segment.
func Chart(expenses, income decimal.Decimal, expenseColor, incomeColor string) model.Proportion {
	ratio := decimal.NewFromInt(1)
	if income.IsPositive() {
		ratio = decimal.Min(expenses.Div(income), ratio)
	}
	if ratio.IsNegative() {
		ratio = decimal.Zero
	}

	p := model.Proportion{
		ExpenseAngle: ratio.InexactFloat64() * fullCircle,
		ExpenseColor: expenseColor,
		IncomeColor:  incomeColor,
	}
	p.IncomeAngle = fullCircle - p.ExpenseAngle

	if expenses.GreaterThan(income) {
		p.Full = true
		p.ExpenseAngle = fullCircle
		p.IncomeAngle = 0
	}
	return p
}
