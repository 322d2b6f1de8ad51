// Package store provides an opt-in SQLite log of finished wizard results.
// Only completed results are written; a wizard session is never restored.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/hormiga/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// History is a SQLite-backed result log.
type History struct {
	db *sql.DB
}

// Record is one stored result.
type Record struct {
	ID           string
	CreatedAt    time.Time
	Income       decimal.Decimal
	DailyTotal   decimal.Decimal
	MonthlyTotal decimal.Decimal
	Percentage   decimal.Decimal
	Category     string
	Severity     model.Severity
	CurrencyCode string
	Expenses     []model.ExpenseEntry
}

// NewRecord builds a record for a result and the rows that produced it.
// Rows without a valid amount are skipped.
func NewRecord(r model.Result, s model.Summary, entries []model.ExpenseEntry, currencyCode string) Record {
	rec := Record{
		ID:           uuid.NewString(),
		CreatedAt:    time.Now().UTC(),
		Income:       r.Income,
		DailyTotal:   s.Daily,
		MonthlyTotal: r.MonthlyTotal,
		Percentage:   r.Percentage,
		Category:     r.Category,
		Severity:     r.Severity,
		CurrencyCode: currencyCode,
	}
	for _, e := range entries {
		if e.Valid {
			rec.Expenses = append(rec.Expenses, e)
		}
	}
	return rec
}

// Open opens or creates the history database at the given path.
func Open(dbPath string) (*History, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating history dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening history db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &History{db: db}, nil
}

// Close closes the history database.
func (h *History) Close() error {
	return h.db.Close()
}

// Save stores a record and its expense rows.
func (h *History) Save(rec Record) error {
	tx, err := h.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(`INSERT INTO results
		(result_id, created_at, income, daily_total, monthly_total, percentage,
		 category, severity, currency_code)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.CreatedAt.UTC().Format(time.RFC3339Nano), rec.Income, rec.DailyTotal,
		rec.MonthlyTotal, rec.Percentage, rec.Category, rec.Severity.String(), rec.CurrencyCode,
	)
	if err != nil {
		return fmt.Errorf("inserting result: %w", err)
	}

	for i, e := range rec.Expenses {
		_, err = tx.Exec(`INSERT INTO result_expenses (result_id, position, label, daily_amount)
			VALUES (?, ?, ?, ?)`, rec.ID, i, e.Label, e.Amount)
		if err != nil {
			return fmt.Errorf("inserting expense: %w", err)
		}
	}

	return tx.Commit()
}

// Recent returns up to limit records, newest first.
func (h *History) Recent(limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := h.db.Query(`SELECT
		result_id, created_at, income, daily_total, monthly_total, percentage,
		category, severity, currency_code
		FROM results ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var records []Record
	for rows.Next() {
		var rec Record
		var created, severity string
		if err := rows.Scan(&rec.ID, &created, &rec.Income, &rec.DailyTotal, &rec.MonthlyTotal,
			&rec.Percentage, &rec.Category, &severity, &rec.CurrencyCode); err != nil {
			return nil, err
		}
		rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
		if err := rec.Severity.UnmarshalText([]byte(severity)); err != nil {
			return nil, fmt.Errorf("result %s: %w", rec.ID, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range records {
		expenses, err := h.expenses(records[i].ID)
		if err != nil {
			return nil, err
		}
		records[i].Expenses = expenses
	}
	return records, nil
}

func (h *History) expenses(resultID string) ([]model.ExpenseEntry, error) {
	rows, err := h.db.Query(`SELECT position, label, daily_amount
		FROM result_expenses WHERE result_id = ? ORDER BY position`, resultID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.ExpenseEntry
	for rows.Next() {
		var e model.ExpenseEntry
		var pos int
		if err := rows.Scan(&pos, &e.Label, &e.Amount); err != nil {
			return nil, err
		}
		e.ID = pos + 1
		e.Valid = true
		out = append(out, e)
	}
	return out, rows.Err()
}

// ErrNotFound is returned when no stored result matches an id prefix.
var ErrNotFound = errors.New("no matching result")

// Delete removes the one record whose id starts with prefix, along with its
// expense rows, and returns the full id.
func (h *History) Delete(prefix string) (string, error) {
	if prefix == "" {
		return "", ErrNotFound
	}
	rows, err := h.db.Query(`SELECT result_id FROM results
		WHERE substr(result_id, 1, length(?)) = ? LIMIT 2`, prefix, prefix)
	if err != nil {
		return "", err
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			_ = rows.Close()
			return "", err
		}
		ids = append(ids, id)
	}
	_ = rows.Close()
	if err := rows.Err(); err != nil {
		return "", err
	}

	switch len(ids) {
	case 0:
		return "", fmt.Errorf("%w: %q", ErrNotFound, prefix)
	case 1:
	default:
		return "", fmt.Errorf("id prefix %q matches more than one result", prefix)
	}

	if _, err := h.db.Exec("DELETE FROM results WHERE result_id = ?", ids[0]); err != nil {
		return "", fmt.Errorf("deleting result: %w", err)
	}
	return ids[0], nil
}

// Count returns the number of stored results.
func (h *History) Count() (int, error) {
	var count int
	err := h.db.QueryRow("SELECT COUNT(*) FROM results").Scan(&count)
	return count, err
}
