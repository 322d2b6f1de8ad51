package pipeline

import (
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/hormiga/internal/model"
	"github.com/theirongolddev/hormiga/internal/source"
	"github.com/theirongolddev/hormiga/internal/wizard"
)

func writeSheet(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestPlay(t *testing.T) {
	ctrl, err := Play(source.Sheet{
		Income: "1000",
		Expenses: []source.Row{
			source.ParseRow("coffee=2.5"),
			source.ParseRow("7.5"),
		},
	})
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	if ctrl.Stage() != model.StageResults {
		t.Fatalf("stage = %v, want results", ctrl.Stage())
	}
	result, _ := ctrl.Result()
	if !result.MonthlyTotal.Equal(decimal.NewFromInt(300)) || result.Rounded != 30 || result.Category != "Saver" {
		t.Errorf("result = %+v", result)
	}
}

func TestPlayErrors(t *testing.T) {
	tests := []struct {
		name      string
		sheet     source.Sheet
		wantField string
	}{
		{"no income", source.Sheet{Expenses: []source.Row{{Label: "x", Daily: "1"}}}, wizard.FieldIncome},
		{"no expenses", source.Sheet{Income: "100"}, wizard.FieldExpenses},
		{"bad row", source.Sheet{Income: "100", Expenses: []source.Row{{Label: "x", Daily: "abc"}}}, wizard.ExpenseField(1)},
		{"negative row", source.Sheet{Income: "100", Expenses: []source.Row{{Label: "x", Daily: "-1"}}}, wizard.ExpenseField(1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Play(tt.sheet)
			var ve *wizard.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("err = %v, want ValidationError", err)
			}
			if ve.Field != tt.wantField {
				t.Errorf("field = %q, want %q", ve.Field, tt.wantField)
			}
		})
	}
}

func TestScanSheets(t *testing.T) {
	dir := t.TempDir()
	writeSheet(t, dir, "b.json", `{}`)
	writeSheet(t, dir, "a.toml", ``)
	writeSheet(t, dir, "notes.txt", ``)
	if err := os.Mkdir(filepath.Join(dir, "sub.toml"), 0o755); err != nil {
		t.Fatal(err)
	}
	extra := writeSheet(t, t.TempDir(), "single.toml", ``)

	files, err := ScanSheets([]string{dir, extra})
	if err != nil {
		t.Fatalf("ScanSheets: %v", err)
	}
	want := []string{filepath.Join(dir, "a.toml"), filepath.Join(dir, "b.json"), extra}
	if len(files) != len(want) {
		t.Fatalf("files = %v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("files[%d] = %s, want %s", i, files[i], want[i])
		}
	}

	if _, err := ScanSheets([]string{filepath.Join(dir, "missing")}); err == nil {
		t.Error("expected an error for a missing path")
	}
}

func TestEvaluate(t *testing.T) {
	dir := t.TempDir()
	saver := writeSheet(t, dir, "saver.toml", "income = 1000\n[[expenses]]\nlabel = \"coffee\"\ndaily = 10\n")
	extreme := writeSheet(t, dir, "extreme.json", `{"income": "100", "expenses": [{"label": "taxi", "daily": 5}]}`)
	broken := writeSheet(t, dir, "broken.toml", "income = 0\n")

	var calls atomic.Int64
	res := Evaluate([]string{saver, extreme, broken}, func(current, total int) {
		calls.Add(1)
		if total != 3 {
			t.Errorf("total = %d, want 3", total)
		}
	})

	if got := calls.Load(); got != 3 {
		t.Errorf("progress calls = %d, want 3", got)
	}
	if res.Failed != 1 {
		t.Errorf("Failed = %d, want 1", res.Failed)
	}
	if got := res.Sheets[0]; got.Err != nil || got.Result.Category != "Saver" || !got.Summary.Monthly.Equal(decimal.NewFromInt(300)) {
		t.Errorf("saver = %+v", got)
	}
	if got := res.Sheets[1]; got.Err != nil || got.Result.Category != "Extreme spender" || !got.Result.Chart.Full {
		t.Errorf("extreme = %+v", got)
	}
	if res.Sheets[2].Err == nil {
		t.Error("zero income sheet should fail")
	}
	if res.Sheets[2].Path != broken {
		t.Errorf("results out of order: %s", res.Sheets[2].Path)
	}
}

func TestEvaluateEmpty(t *testing.T) {
	res := Evaluate(nil, nil)
	if len(res.Sheets) != 0 || res.Failed != 0 {
		t.Errorf("res = %+v", res)
	}
}
