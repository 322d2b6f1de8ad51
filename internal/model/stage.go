// Package model defines domain types for the hormiga expense wizard.
package model

// Stage is one of the sequential phases of the wizard.
type Stage int

const (
	StageIncome Stage = iota
	StageExpenses
	StageResults
)

// Stages lists every stage in wizard order.
var Stages = []Stage{StageIncome, StageExpenses, StageResults}

func (s Stage) String() string {
	switch s {
	case StageIncome:
		return "income"
	case StageExpenses:
		return "expenses"
	case StageResults:
		return "results"
	default:
		return "unknown"
	}
}

// Title is the human-facing stage name.
func (s Stage) Title() string {
	switch s {
	case StageIncome:
		return "Income"
	case StageExpenses:
		return "Expenses"
	case StageResults:
		return "Results"
	default:
		return "?"
	}
}

// Next returns the stage that follows s. Results wraps around to Income.
func (s Stage) Next() Stage {
	if s >= StageResults {
		return StageIncome
	}
	return s + 1
}
