package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Severity is the qualitative band assigned to a spend percentage.
type Severity int

const (
	SeverityLow Severity = iota
	SeverityMedium
	SeverityHigh
)

func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	default:
		return "unknown"
	}
}

// MarshalText renders the severity by name in JSON payloads.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a severity name.
func (s *Severity) UnmarshalText(b []byte) error {
	switch string(b) {
	case "low":
		*s = SeverityLow
	case "medium":
		*s = SeverityMedium
	case "high":
		*s = SeverityHigh
	default:
		return fmt.Errorf("unknown severity %q", b)
	}
	return nil
}

// Palette holds the colors used for the chart segments and severity bands.
// Values are hex strings or ANSI color numbers.
type Palette struct {
	Income string
	Low    string
	Medium string
	High   string
}

// ForSeverity returns the color for a severity band.
func (p Palette) ForSeverity(s Severity) string {
	switch s {
	case SeverityMedium:
		return p.Medium
	case SeverityHigh:
		return p.High
	default:
		return p.Low
	}
}

// DefaultPalette is the palette used when no theme supplies one.
var DefaultPalette = Palette{
	Income: "#E91E63",
	Low:    "#E91E63",
	Medium: "#FF9800",
	High:   "#FF0000",
}

// Proportion is a two-segment radial chart descriptor. Angles are in degrees
// and always sum to 360. Full means a single expense-colored segment.
type Proportion struct {
	ExpenseAngle float64 `json:"expense_angle"`
	IncomeAngle  float64 `json:"income_angle"`
	ExpenseColor string  `json:"expense_color"`
	IncomeColor  string  `json:"income_color"`
	Full         bool    `json:"full"`
}

// Result is the outcome computed when leaving the Expenses stage.
type Result struct {
	Income       decimal.Decimal `json:"income"`
	MonthlyTotal decimal.Decimal `json:"monthly_total"`
	// Percentage is unrounded; Rounded is for display.
	Percentage decimal.Decimal `json:"percentage"`
	Rounded    int             `json:"rounded_percentage"`
	Category   string          `json:"category"`
	Message    string          `json:"message"`
	Severity   Severity        `json:"severity"`
	Color      string          `json:"color"`
	Chart      Proportion      `json:"chart"`
}
