// Package wizard implements the three-stage expense wizard: it captures a
// monthly income, manages the list of daily expenses and computes the
// result when leaving the Expenses stage.
package wizard

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/hormiga/internal/calc"
	"github.com/theirongolddev/hormiga/internal/model"
)

// Controller owns one wizard session. It is not safe for concurrent use;
// callers that share it must serialize access.
type Controller struct {
	stage model.Stage

	incomeDraft string
	income      decimal.Decimal

	expenses     *ExpenseList
	summary      model.Summary
	monthlyTotal decimal.Decimal

	palette   model.Palette
	result    model.Result
	hasResult bool

	initialLabel string
}

// Option configures a Controller.
type Option func(*Controller)

// WithPalette sets the colors written into results.
func WithPalette(p model.Palette) Option {
	return func(c *Controller) { c.palette = p }
}

// WithInitialExpense seeds the list with one empty row, like the first
// visit to the Expenses stage shows.
func WithInitialExpense(label string) Option {
	return func(c *Controller) { c.initialLabel = label }
}

// New creates a controller positioned on the Income stage.
func New(opts ...Option) *Controller {
	c := &Controller{
		stage:   model.StageIncome,
		palette: model.DefaultPalette,
	}
	c.expenses = NewExpenseList(c.recompute)
	c.recompute(decimal.Zero)
	for _, opt := range opts {
		opt(c)
	}
	if c.initialLabel != "" {
		c.expenses.Add(c.initialLabel)
	}
	return c
}

// recompute refreshes the projected totals from the current daily sum.
func (c *Controller) recompute(daily decimal.Decimal) {
	c.summary = calc.Project(daily)
	c.monthlyTotal = c.summary.Monthly
}

// Stage returns the active stage.
func (c *Controller) Stage() model.Stage { return c.stage }

// Income returns the last committed income, zero before the first advance.
func (c *Controller) Income() decimal.Decimal { return c.income }

// IncomeDraft returns the income text as last set.
func (c *Controller) IncomeDraft() string { return c.incomeDraft }

// MonthlyTotal returns the monthly projection of the current expense list.
func (c *Controller) MonthlyTotal() decimal.Decimal { return c.monthlyTotal }

// Summary returns the daily sum and its projections.
func (c *Controller) Summary() model.Summary { return c.summary }

// Entries returns a copy of the expense rows.
func (c *Controller) Entries() []model.ExpenseEntry { return c.expenses.Entries() }

// Result returns the computed result. ok is false unless the Results stage
// is active.
func (c *Controller) Result() (model.Result, bool) {
	return c.result, c.hasResult && c.stage == model.StageResults
}

// SetIncome stores the income draft. The returned error describes why the
// draft would not pass validation; the draft is kept either way.
func (c *Controller) SetIncome(raw string) error {
	c.incomeDraft = raw
	if _, err := ParseIncome(raw); err != nil {
		return err
	}
	return nil
}

// AddExpense appends an empty row and returns its id.
func (c *Controller) AddExpense(label string) int {
	return c.expenses.Add(label)
}

// RemoveExpense drops a row. Unknown ids are a no-op.
func (c *Controller) RemoveExpense(id int) {
	c.expenses.Remove(id)
}

// SetExpenseAmount stores the amount text for a row. Totals are refreshed
// even when the text is not a valid amount; the returned error says why it
// would fail validation. Unknown ids change nothing.
func (c *Controller) SetExpenseAmount(id int, raw string) error {
	if !c.expenses.SetAmount(id, raw) {
		return invalid(ExpenseField(id), "no such expense")
	}
	e, _ := c.expenses.Get(id)
	if !e.Valid {
		_, err := parseAmount(raw)
		return amountInvalid(id, err)
	}
	if e.Amount.IsNegative() {
		return invalid(ExpenseField(id), "amount cannot be negative")
	}
	return nil
}

// Advance validates the active stage and moves to the next one. On any
// error nothing changes.
func (c *Controller) Advance() error {
	switch c.stage {
	case model.StageIncome:
		income, err := ParseIncome(c.incomeDraft)
		if err != nil {
			return err
		}
		c.income = income

	case model.StageExpenses:
		if err := c.expenses.Validate(); err != nil {
			return err
		}
		c.recompute(c.expenses.SumDaily())
		result, err := calc.Classify(c.monthlyTotal, c.income, c.palette)
		if errors.Is(err, calc.ErrPercentageRange) {
			return invalid(FieldExpenses, "expenses are too large to compare with this income")
		}
		if err != nil {
			return fmt.Errorf("computing result: %w", err)
		}
		c.result = result
		c.hasResult = true

	case model.StageResults:
		c.result = model.Result{}
		c.hasResult = false
	}
	c.stage = c.stage.Next()
	return nil
}

// Reset starts a fresh session on the Income stage. Ids keep counting up
// from where they were.
func (c *Controller) Reset() {
	c.stage = model.StageIncome
	c.incomeDraft = ""
	c.income = decimal.Zero
	c.result = model.Result{}
	c.hasResult = false
	c.expenses.clear()
	if c.initialLabel != "" {
		c.expenses.Add(c.initialLabel)
	}
}
