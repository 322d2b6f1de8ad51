package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/hormiga/internal/model"
)

func openTemp(t *testing.T) *History {
	t.Helper()
	h, err := Open(filepath.Join(t.TempDir(), "nested", "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = h.Close() })
	return h
}

func sampleRecord(pct int64, at time.Time) Record {
	p := decimal.NewFromInt(pct)
	rec := NewRecord(
		model.Result{
			Income:       decimal.NewFromInt(1000),
			MonthlyTotal: p.Mul(decimal.NewFromInt(10)),
			Percentage:   p,
			Category:     "Saver",
			Severity:     model.SeverityMedium,
		},
		model.Summary{Daily: p.Div(decimal.NewFromInt(3))},
		[]model.ExpenseEntry{
			{ID: 1, Label: "coffee", Amount: decimal.NewFromInt(2), Valid: true},
			{ID: 2, Label: "blank"},
			{ID: 5, Label: "bus", Amount: decimal.RequireFromString("1.5"), Valid: true},
		},
		"USD",
	)
	rec.CreatedAt = at
	return rec
}

func TestNewRecordSkipsInvalidRows(t *testing.T) {
	rec := sampleRecord(30, time.Now())
	if len(rec.Expenses) != 2 {
		t.Fatalf("Expenses = %d, want 2", len(rec.Expenses))
	}
	if rec.ID == "" {
		t.Error("record id is empty")
	}
	if rec.Severity != model.SeverityMedium {
		t.Errorf("Severity = %s, want medium", rec.Severity)
	}
}

func TestSaveAndRecent(t *testing.T) {
	h := openTemp(t)
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	for i, pct := range []int64{30, 60, 120} {
		if err := h.Save(sampleRecord(pct, base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	recs, err := h.Recent(2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("Recent(2) returned %d records", len(recs))
	}
	if !recs[0].Percentage.Equal(decimal.NewFromInt(120)) || !recs[1].Percentage.Equal(decimal.NewFromInt(60)) {
		t.Errorf("order = %s, %s, want 120, 60", recs[0].Percentage, recs[1].Percentage)
	}
	if recs[0].Severity != model.SeverityMedium {
		t.Errorf("Severity = %s, want medium", recs[0].Severity)
	}
	if len(recs[0].Expenses) != 2 || recs[0].Expenses[1].Label != "bus" {
		t.Fatalf("expenses = %+v", recs[0].Expenses)
	}
	if got := recs[0].Expenses[1].Amount.String(); got != "1.5" {
		t.Errorf("bus amount = %s, want 1.5", got)
	}
	if got := recs[0].DailyTotal.String(); got != "40" {
		t.Errorf("DailyTotal = %s, want 40", got)
	}
	if !recs[0].CreatedAt.Equal(base.Add(2 * time.Hour)) {
		t.Errorf("CreatedAt = %v", recs[0].CreatedAt)
	}

	n, err := h.Count()
	if err != nil || n != 3 {
		t.Errorf("Count = %d, %v, want 3", n, err)
	}
}

func TestDeleteCascades(t *testing.T) {
	h := openTemp(t)
	rec := sampleRecord(30, time.Now())
	if err := h.Save(rec); err != nil {
		t.Fatal(err)
	}
	got, err := h.Delete(rec.ID[:8])
	if err != nil {
		t.Fatal(err)
	}
	if got != rec.ID {
		t.Errorf("Delete returned %q, want %q", got, rec.ID)
	}

	var left int
	if err := h.db.QueryRow("SELECT COUNT(*) FROM result_expenses").Scan(&left); err != nil {
		t.Fatal(err)
	}
	if left != 0 {
		t.Errorf("result_expenses rows left = %d, want 0", left)
	}
}

func TestDeleteUnknownPrefix(t *testing.T) {
	h := openTemp(t)
	if err := h.Save(sampleRecord(30, time.Now())); err != nil {
		t.Fatal(err)
	}

	for _, prefix := range []string{"", "zzzz", "%"} {
		if _, err := h.Delete(prefix); !errors.Is(err, ErrNotFound) {
			t.Errorf("Delete(%q) err = %v, want ErrNotFound", prefix, err)
		}
	}
	if n, _ := h.Count(); n != 1 {
		t.Errorf("Count = %d, want 1", n)
	}
}

func TestRecentRejectsUnknownSeverity(t *testing.T) {
	h := openTemp(t)
	rec := sampleRecord(30, time.Now())
	if err := h.Save(rec); err != nil {
		t.Fatal(err)
	}
	if _, err := h.db.Exec("UPDATE results SET severity = 'dire'"); err != nil {
		t.Fatal(err)
	}

	if _, err := h.Recent(5); err == nil {
		t.Error("Recent accepted an unknown severity")
	}
}
