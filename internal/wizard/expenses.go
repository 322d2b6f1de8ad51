package wizard

import (
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/hormiga/internal/model"
)

// ExpenseList is an ordered set of expense rows. Ids come from a counter
// that only grows, so a removed id is never handed out again.
//
// Every mutation calls onChange with the new daily sum.
type ExpenseList struct {
	entries  []model.ExpenseEntry
	lastID   int
	onChange func(daily decimal.Decimal)
}

// NewExpenseList returns an empty list. onChange may be nil.
func NewExpenseList(onChange func(daily decimal.Decimal)) *ExpenseList {
	return &ExpenseList{onChange: onChange}
}

// Add appends a row with no amount and returns its id.
func (l *ExpenseList) Add(label string) int {
	l.lastID++
	l.entries = append(l.entries, model.ExpenseEntry{ID: l.lastID, Label: label})
	l.changed()
	return l.lastID
}

// Remove deletes the row with the given id. Unknown ids are ignored.
func (l *ExpenseList) Remove(id int) {
	i := l.index(id)
	if i < 0 {
		return
	}
	l.entries = append(l.entries[:i], l.entries[i+1:]...)
	l.changed()
}

// SetAmount stores raw as the row's amount text. It reports false when no
// row has that id.
func (l *ExpenseList) SetAmount(id int, raw string) bool {
	i := l.index(id)
	if i < 0 {
		return false
	}
	e := &l.entries[i]
	e.Raw = raw
	amount, err := parseAmount(raw)
	e.Amount, e.Valid = amount, err == nil
	l.changed()
	return true
}

// Get returns the row with the given id.
func (l *ExpenseList) Get(id int) (model.ExpenseEntry, bool) {
	i := l.index(id)
	if i < 0 {
		return model.ExpenseEntry{}, false
	}
	return l.entries[i], true
}

// SumDaily adds up the amounts of all rows; rows without a valid amount
// count as 0.
func (l *ExpenseList) SumDaily() decimal.Decimal {
	sum := decimal.Zero
	for _, e := range l.entries {
		if e.Valid {
			sum = sum.Add(e.Amount)
		}
	}
	return sum
}

// Entries returns a copy of the rows in order.
func (l *ExpenseList) Entries() []model.ExpenseEntry {
	out := make([]model.ExpenseEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of rows.
func (l *ExpenseList) Len() int {
	return len(l.entries)
}

// Validate checks that the list is non-empty and every amount is a number
// not below zero. The first offending row is reported.
func (l *ExpenseList) Validate() error {
	if len(l.entries) == 0 {
		return invalid(FieldExpenses, "add at least one daily expense")
	}
	for _, e := range l.entries {
		if !e.Valid {
			_, err := parseAmount(e.Raw)
			return amountInvalid(e.ID, err)
		}
		if e.Amount.IsNegative() {
			return invalid(ExpenseField(e.ID), "amount cannot be negative")
		}
	}
	return nil
}

// clear drops every row but keeps the id counter.
func (l *ExpenseList) clear() {
	l.entries = nil
	l.changed()
}

func (l *ExpenseList) index(id int) int {
	for i, e := range l.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func (l *ExpenseList) changed() {
	if l.onChange != nil {
		l.onChange(l.SumDaily())
	}
}
