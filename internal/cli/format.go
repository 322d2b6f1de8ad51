// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/theirongolddev/hormiga/internal/config"
)

// Money formats amounts for one locale and currency. It only affects how
// numbers are shown.
type Money struct {
	tag     language.Tag
	unit    currency.Unit
	digits  int
	printer *message.Printer
	symbol  string
}

// NewMoney builds a formatter from a BCP 47 locale and an ISO 4217 code.
func NewMoney(locale, code string, fractionDigits int) (*Money, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parsing locale %q: %w", locale, err)
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, fmt.Errorf("parsing currency %q: %w", code, err)
	}
	if fractionDigits < 0 {
		fractionDigits = 0
	}

	p := message.NewPrinter(tag)
	return &Money{
		tag:     tag,
		unit:    unit,
		digits:  fractionDigits,
		printer: p,
		symbol:  p.Sprint(currency.Symbol(unit)),
	}, nil
}

// MoneyFromConfig builds a formatter from the [currency] section, falling
// back to en-US/USD when the configured values don't parse.
func MoneyFromConfig(cfg config.CurrencyConfig) *Money {
	m, err := NewMoney(cfg.Locale, cfg.Code, cfg.FractionDigits)
	if err != nil {
		m, _ = NewMoney("en-US", "USD", 2)
	}
	return m
}

// Locale returns the BCP 47 tag the formatter was built for.
func (m *Money) Locale() string {
	return m.tag.String()
}

// Code returns the ISO currency code.
func (m *Money) Code() string {
	return m.unit.String()
}

// Symbol returns the locale's symbol for the currency.
func (m *Money) Symbol() string {
	return m.symbol
}

// Format renders v with the currency symbol, locale grouping and the
// configured number of fraction digits. v is rounded half away from zero
// before it is handed to the locale printer as a float.
func (m *Money) Format(v decimal.Decimal) string {
	sign := ""
	if v.IsNegative() {
		sign = "-"
		v = v.Neg()
	}
	rounded := v.Round(int32(m.digits)).InexactFloat64()
	num := m.printer.Sprint(number.Decimal(rounded,
		number.MinFractionDigits(m.digits),
		number.MaxFractionDigits(m.digits),
	))
	return sign + m.symbol + num
}

// FormatPercent formats a whole-number percentage.
func FormatPercent(rounded int) string {
	return fmt.Sprintf("%d%%", rounded)
}

// FormatAngle formats a chart angle in degrees.
func FormatAngle(deg float64) string {
	s := fmt.Sprintf("%.1f", deg)
	return strings.TrimSuffix(s, ".0") + "°"
}
