package wizard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/hormiga/internal/calc"
)

var (
	errBlank      = errors.New("blank")
	errNotANumber = errors.New("not a number")
	errTooLarge   = errors.New("too large")
	errTooPrecise = fmt.Errorf("use at most %d decimal places", calc.MaxFractionDigits)
)

// parseAmount parses user input as an exact decimal within calc.MaxAmount
// and calc.MaxFractionDigits.
func parseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, errBlank
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, errNotANumber
	}
	if d.IsZero() {
		return decimal.Zero, nil
	}

	// Order of magnitude first: comparing or rounding a value with an
	// extreme exponent rescales it to that exponent.
	mag := int(d.Exponent()) + d.NumDigits() - 1
	switch {
	case mag > calc.MaxMagnitude || d.Abs().GreaterThan(calc.MaxAmount):
		return decimal.Zero, errTooLarge
	case mag < -calc.MaxFractionDigits || !d.Round(calc.MaxFractionDigits).Equal(d):
		return decimal.Zero, errTooPrecise
	}
	return d, nil
}

// ParseIncome validates an income draft: it must be a number above zero.
func ParseIncome(raw string) (decimal.Decimal, error) {
	v, err := parseAmount(raw)
	switch {
	case errors.Is(err, errBlank):
		return decimal.Zero, invalid(FieldIncome, "enter your monthly income")
	case errors.Is(err, errNotANumber):
		return decimal.Zero, invalid(FieldIncome, "%q is not a number", strings.TrimSpace(raw))
	case errors.Is(err, errTooLarge):
		return decimal.Zero, invalid(FieldIncome, "must not exceed %s", calc.MaxAmount)
	case err != nil:
		return decimal.Zero, invalid(FieldIncome, "%s", err)
	case !v.IsPositive():
		return decimal.Zero, invalid(FieldIncome, "must be greater than zero")
	}
	return v, nil
}

// amountInvalid explains why an expense row's text was rejected.
func amountInvalid(id int, err error) *ValidationError {
	switch {
	case errors.Is(err, errTooLarge):
		return invalid(ExpenseField(id), "amount must not exceed %s", calc.MaxAmount)
	case errors.Is(err, errTooPrecise):
		return invalid(ExpenseField(id), "%s", err)
	default:
		return invalid(ExpenseField(id), "enter a valid amount")
	}
}
