package calc

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/hormiga/internal/model"
)

var (
	// ErrZeroIncome is returned when a percentage is requested against a
	// non-positive income. Validation upstream should make this unreachable.
	ErrZeroIncome = errors.New("income must be greater than zero")

	// ErrPercentageRange is returned when expenses dwarf income so far that
	// the share can no longer be displayed as a whole percentage.
	ErrPercentageRange = errors.New("expense share is out of range")
)

// MaxPercentage is the largest share Percentage will report.
var MaxPercentage = decimal.New(1, 12)

var hundred = decimal.NewFromInt(100)

// Band is one row of the classification table. A band matches when the
// percentage is strictly above Above. Bands[0] is the floor and its Above
// is never consulted.
type Band struct {
	Above    decimal.Decimal
	Category string
	Message  string
	Severity model.Severity
}

// Bands is evaluated in ascending order; the last matching band wins.
var Bands = []Band{
	{
		Category: "Saver",
		Message:  "Congratulations! Your small daily expenses are under control.",
		Severity: model.SeverityLow,
	},
	{
		Above:    decimal.NewFromInt(50),
		Category: "Moderate spender",
		Message:  "Heads up! Your small daily expenses are significant.",
		Severity: model.SeverityMedium,
	},
	{
		Above:    decimal.NewFromInt(100),
		Category: "Extreme spender",
		Message:  "Fumigate these expenses! Your small daily expenses are too high.",
		Severity: model.SeverityHigh,
	},
}

// Percentage returns monthly expenses as a percentage of income, unrounded.
// Division keeps decimal.DivisionPrecision fractional digits.
func Percentage(monthly, income decimal.Decimal) (decimal.Decimal, error) {
	if !income.IsPositive() {
		return decimal.Zero, ErrZeroIncome
	}
	pct := monthly.Mul(hundred).Div(income)
	if pct.Abs().GreaterThan(MaxPercentage) {
		return decimal.Zero, ErrPercentageRange
	}
	return pct, nil
}

var (
	maxInt = decimal.NewFromInt(math.MaxInt32)
	minInt = decimal.NewFromInt(math.MinInt32)
)

// RoundHalfUp rounds to the nearest whole number, halves away from zero.
// Results outside the int32 range are clamped.
func RoundHalfUp(v decimal.Decimal) int {
	r := v.Round(0)
	switch {
	case r.GreaterThan(maxInt):
		return math.MaxInt32
	case r.LessThan(minInt):
		return math.MinInt32
	}
	return int(r.IntPart())
}

// BandFor returns the band a percentage falls into.
func BandFor(pct decimal.Decimal) Band {
	band := Bands[0]
	for _, b := range Bands[1:] {
		if pct.GreaterThan(b.Above) {
			band = b
		}
	}
	return band
}

// Classify builds the full result for a monthly expense total against an
// income. Colors come from the palette.
func Classify(monthly, income decimal.Decimal, palette model.Palette) (model.Result, error) {
	pct, err := Percentage(monthly, income)
	if err != nil {
		return model.Result{}, err
	}

	band := BandFor(pct)
	color := palette.ForSeverity(band.Severity)

	return model.Result{
		Income:       income,
		MonthlyTotal: monthly,
		Percentage:   pct,
		Rounded:      RoundHalfUp(pct),
		Category:     band.Category,
		Message:      band.Message,
		Severity:     band.Severity,
		Color:        color,
		Chart:        Chart(monthly, income, color, palette.Income),
	}, nil
}
