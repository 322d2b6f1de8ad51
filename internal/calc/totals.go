// Package calc holds the pure computations behind the expense wizard:
// projections of the daily sum, spend classification and chart proportions.
// Amounts are exact decimals; floats appear only in chart angles.
package calc

import (
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/hormiga/internal/model"
)

// MaxMagnitude is the largest power of ten an accepted income or daily
// amount may reach.
const MaxMagnitude = 15

// MaxAmount is 10^MaxMagnitude.
var MaxAmount = decimal.New(1, MaxMagnitude)

// MaxFractionDigits is the finest precision accepted for an amount.
const MaxFractionDigits = 8

// Project converts a daily sum into weekly, monthly and annual totals.
func Project(daily decimal.Decimal) model.Summary {
	return model.Summary{
		Daily:   daily,
		Weekly:  daily.Mul(decimal.NewFromInt(model.DaysInWeek)),
		Monthly: Monthly(daily),
		Annual:  daily.Mul(decimal.NewFromInt(model.DaysInYear)),
	}
}

// Monthly returns the 30-day projection of a daily sum.
func Monthly(daily decimal.Decimal) decimal.Decimal {
	return daily.Mul(decimal.NewFromInt(model.DaysInMonth))
}
