// Package pipeline evaluates expense sheets: one at a time for `calc`, or a
// whole set in parallel for `batch`.
package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/theirongolddev/hormiga/internal/model"
	"github.com/theirongolddev/hormiga/internal/source"
	"github.com/theirongolddev/hormiga/internal/wizard"
)

// SheetResult is the outcome of evaluating one sheet file.
type SheetResult struct {
	Path    string
	Entries []model.ExpenseEntry
	Summary model.Summary
	Result  model.Result
	Err     error
}

// BatchResult holds every evaluated sheet, in input order.
type BatchResult struct {
	Sheets []SheetResult
	Failed int
}

// ProgressFunc is called during evaluation to report progress.
// current is the number of sheets processed so far, total is the total count.
type ProgressFunc func(current, total int)

// Play drives a controller through Income and Expenses with the sheet's
// text, exactly as a user would type it. On success the controller is on
// the Results stage.
func Play(sheet source.Sheet, opts ...wizard.Option) (*wizard.Controller, error) {
	ctrl := wizard.New(opts...)

	_ = ctrl.SetIncome(sheet.Income)
	if err := ctrl.Advance(); err != nil {
		return nil, err
	}
	for _, row := range sheet.Expenses {
		id := ctrl.AddExpense(row.Label)
		_ = ctrl.SetExpenseAmount(id, row.Daily)
	}
	if err := ctrl.Advance(); err != nil {
		return nil, err
	}
	return ctrl, nil
}

// ScanSheets expands paths into sheet files. Directories contribute their
// .toml and .json files, sorted by name; files are kept as given.
func ScanSheets(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", p, err)
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}

		entries, err := os.ReadDir(p)
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", p, err)
		}
		var found []string
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			switch strings.ToLower(filepath.Ext(e.Name())) {
			case ".toml", ".json":
				found = append(found, filepath.Join(p, e.Name()))
			}
		}
		sort.Strings(found)
		files = append(files, found...)
	}
	return files, nil
}

// Evaluate loads and plays every sheet using a bounded worker pool.
// A failing sheet is reported in its SheetResult and does not stop the rest.
func Evaluate(files []string, progressFn ProgressFunc, opts ...wizard.Option) *BatchResult {
	result := &BatchResult{Sheets: make([]SheetResult, len(files))}
	if len(files) == 0 {
		return result
	}

	numWorkers := runtime.GOMAXPROCS(0)
	if numWorkers < 1 {
		numWorkers = 4
	}
	if numWorkers > len(files) {
		numWorkers = len(files)
	}

	work := make(chan int, len(files))
	for i := range files {
		work <- i
	}
	close(work)

	var wg sync.WaitGroup
	var processed atomic.Int64

	wg.Add(numWorkers)
	for w := 0; w < numWorkers; w++ {
		go func() {
			defer wg.Done()
			for idx := range work {
				result.Sheets[idx] = evaluateFile(files[idx], opts)
				n := processed.Add(1)
				if progressFn != nil {
					progressFn(int(n), len(files))
				}
			}
		}()
	}
	wg.Wait()

	for _, s := range result.Sheets {
		if s.Err != nil {
			result.Failed++
		}
	}
	return result
}

func evaluateFile(path string, opts []wizard.Option) SheetResult {
	sr := SheetResult{Path: path}

	sheet, err := source.LoadFile(path)
	if err != nil {
		sr.Err = err
		return sr
	}
	ctrl, err := Play(sheet, opts...)
	if err != nil {
		sr.Err = err
		return sr
	}

	sr.Entries = ctrl.Entries()
	sr.Summary = ctrl.Summary()
	sr.Result, _ = ctrl.Result()
	return sr
}
