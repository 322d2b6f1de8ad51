package model

import "github.com/shopspring/decimal"

// Day-count constants used for projections.
const (
	DaysInWeek  = 7
	DaysInMonth = 30 // 30-day approximation
	DaysInYear  = 365
)

// ExpenseEntry is one recurring daily cost entered by the user.
type ExpenseEntry struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
	// Raw is the text as typed. Amount is only meaningful when Valid is set.
	Raw    string          `json:"raw"`
	Amount decimal.Decimal `json:"amount"`
	Valid  bool            `json:"valid"`
}

// Summary holds the daily sum and its projections.
type Summary struct {
	Daily   decimal.Decimal `json:"daily"`
	Weekly  decimal.Decimal `json:"weekly"`
	Monthly decimal.Decimal `json:"monthly"`
	Annual  decimal.Decimal `json:"annual"`
}
