package calc

import (
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/hormiga/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestProject(t *testing.T) {
	s := Project(dec("12.5"))
	if !s.Weekly.Equal(dec("87.5")) {
		t.Errorf("Weekly = %s, want 87.5", s.Weekly)
	}
	if !s.Monthly.Equal(dec("375")) {
		t.Errorf("Monthly = %s, want 375", s.Monthly)
	}
	if !s.Annual.Equal(dec("4562.5")) {
		t.Errorf("Annual = %s, want 4562.5", s.Annual)
	}
	if !s.Daily.Equal(dec("12.5")) {
		t.Errorf("Daily = %s, want 12.5", s.Daily)
	}
}

func TestProjectIsExact(t *testing.T) {
	// 0.1 + 0.2 has no exact float64 form; the projection must not drift.
	s := Project(dec("0.1").Add(dec("0.2")))
	if s.Monthly.String() != "9" {
		t.Errorf("Monthly = %s, want 9", s.Monthly)
	}
	if s.Annual.String() != "109.5" {
		t.Errorf("Annual = %s, want 109.5", s.Annual)
	}
}

func TestClassifyBands(t *testing.T) {
	tests := []struct {
		name     string
		monthly  string
		income   string
		category string
		severity model.Severity
		rounded  int
	}{
		{"saver", "300", "1000", "Saver", model.SeverityLow, 30},
		{"boundary fifty is saver", "500", "1000", "Saver", model.SeverityLow, 50},
		{"just above fifty", "501", "1000", "Moderate spender", model.SeverityMedium, 50},
		{"boundary hundred is moderate", "1000", "1000", "Moderate spender", model.SeverityMedium, 100},
		{"extreme", "1200", "1000", "Extreme spender", model.SeverityHigh, 120},
		{"nothing spent", "0", "1000", "Saver", model.SeverityLow, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Classify(dec(tt.monthly), dec(tt.income), model.DefaultPalette)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if r.Category != tt.category {
				t.Errorf("Category = %q, want %q", r.Category, tt.category)
			}
			if r.Severity != tt.severity {
				t.Errorf("Severity = %s, want %s", r.Severity, tt.severity)
			}
			if r.Rounded != tt.rounded {
				t.Errorf("Rounded = %d, want %d", r.Rounded, tt.rounded)
			}
			if r.Color != model.DefaultPalette.ForSeverity(tt.severity) {
				t.Errorf("Color = %q, want palette color for %s", r.Color, tt.severity)
			}
		})
	}
}

func TestClassifyZeroIncome(t *testing.T) {
	for _, income := range []string{"0", "-10"} {
		if _, err := Classify(dec("100"), dec(income), model.DefaultPalette); !errors.Is(err, ErrZeroIncome) {
			t.Errorf("Classify(income=%s) err = %v, want ErrZeroIncome", income, err)
		}
	}
}

func TestClassifyPercentageOutOfRange(t *testing.T) {
	_, err := Classify(dec("30000000000000000"), dec("0.00000001"), model.DefaultPalette)
	if !errors.Is(err, ErrPercentageRange) {
		t.Fatalf("err = %v, want ErrPercentageRange", err)
	}

	r, err := Classify(dec("30000000000"), dec("1"), model.DefaultPalette)
	if err != nil {
		t.Fatalf("share just under the limit: %v", err)
	}
	if r.Rounded != math.MaxInt32 {
		t.Errorf("Rounded = %d, want clamp to %d", r.Rounded, math.MaxInt32)
	}
	if r.Category != "Extreme spender" {
		t.Errorf("Category = %q, want Extreme spender", r.Category)
	}
}

func TestRoundHalfUp(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"0", 0},
		{"0.49", 0},
		{"0.5", 1},
		{"49.99999", 50},
		{"120", 120},
		{"2.5", 3},
		{"-2.5", -3},
		{"1e30", math.MaxInt32},
		{"-1e30", math.MinInt32},
	}
	for _, tt := range tests {
		if got := RoundHalfUp(dec(tt.in)); got != tt.want {
			t.Errorf("RoundHalfUp(%s) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestPercentageKeepsPrecision(t *testing.T) {
	pct, err := Percentage(Monthly(dec("8.33")), dec("500"))
	if err != nil {
		t.Fatal(err)
	}
	if !pct.Equal(dec("49.98")) {
		t.Errorf("Percentage = %s, want 49.98 (unrounded)", pct)
	}
	if RoundHalfUp(pct) != 50 {
		t.Errorf("rounded = %d, want 50", RoundHalfUp(pct))
	}
}

func TestChart(t *testing.T) {
	p := Chart(dec("250"), dec("1000"), "red", "pink")
	if !approx(p.ExpenseAngle, 90) || !approx(p.IncomeAngle, 270) {
		t.Errorf("angles = %.1f/%.1f, want 90/270", p.ExpenseAngle, p.IncomeAngle)
	}
	if p.Full {
		t.Error("Full set for expenses below income")
	}

	p = Chart(dec("1000"), dec("1000"), "red", "pink")
	if !approx(p.ExpenseAngle, 360) || p.IncomeAngle != 0 || p.Full {
		t.Errorf("equal expenses: got %+v, want 360/0 not full", p)
	}

	p = Chart(dec("1200"), dec("1000"), "red", "pink")
	if !p.Full {
		t.Error("Full not set for expenses above income")
	}
	if p.ExpenseAngle != 360 || p.IncomeAngle != 0 {
		t.Errorf("clamped angles = %.1f/%.1f, want 360/0", p.ExpenseAngle, p.IncomeAngle)
	}
	if p.ExpenseColor != "red" || p.IncomeColor != "pink" {
		t.Errorf("colors = %s/%s, want red/pink", p.ExpenseColor, p.IncomeColor)
	}

	p = Chart(dec("-5"), dec("1000"), "red", "pink")
	if p.ExpenseAngle != 0 || p.IncomeAngle != 360 {
		t.Errorf("negative expenses: angles = %.1f/%.1f, want 0/360", p.ExpenseAngle, p.IncomeAngle)
	}
}
