package tui

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/hormiga/internal/config"
	"github.com/theirongolddev/hormiga/internal/model"
	"github.com/theirongolddev/hormiga/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

type fakeRecorder struct {
	saved []store.Record
	err   error
}

func (f *fakeRecorder) Save(rec store.Record) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, rec)
	return nil
}

func newTestApp(rec Recorder) App {
	a := NewApp(Options{Config: config.DefaultConfig(), Recorder: rec})
	m, _ := a.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m.(App)
}

func send(a App, msgs ...tea.Msg) (App, tea.Cmd) {
	var cmd tea.Cmd
	for _, msg := range msgs {
		var m tea.Model
		m, cmd = a.Update(msg)
		a = m.(App)
	}
	return a, cmd
}

func typed(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func key(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func TestAppWizardFlow(t *testing.T) {
	rec := &fakeRecorder{}
	a := newTestApp(rec)

	a, _ = send(a, typed("1000"), key(tea.KeyEnter))
	if got := a.ctrl.Stage(); got != model.StageExpenses {
		t.Fatalf("stage = %v, want expenses", got)
	}
	if len(a.rows) != 1 {
		t.Fatalf("rows = %d, want the initial row", len(a.rows))
	}

	a, _ = send(a, typed("10"))
	if got := a.ctrl.MonthlyTotal(); !got.Equal(decimal.NewFromInt(300)) {
		t.Errorf("MonthlyTotal = %s, want 300", got)
	}

	a, cmd := send(a, key(tea.KeyEnter))
	result, ok := a.ctrl.Result()
	if !ok {
		t.Fatalf("no result after advancing from expenses (err %q)", a.errMsg)
	}
	if result.Category != "Saver" || result.Rounded != 30 {
		t.Errorf("result = %s %d%%, want Saver 30%%", result.Category, result.Rounded)
	}

	if cmd == nil {
		t.Fatal("expected a history command")
	}
	a, _ = send(a, cmd())
	if len(rec.saved) != 1 {
		t.Fatalf("saved = %d, want 1", len(rec.saved))
	}
	if a.notice != "saved to history" {
		t.Errorf("notice = %q", a.notice)
	}

	view := a.View()
	for _, want := range []string{"Saver", "30%", "Congratulations!"} {
		if !strings.Contains(view, want) {
			t.Errorf("results view missing %q", want)
		}
	}
}

func TestAppInvalidIncomeStays(t *testing.T) {
	a := newTestApp(nil)

	a, _ = send(a, typed("abc"), key(tea.KeyEnter))
	if a.ctrl.Stage() != model.StageIncome {
		t.Fatalf("stage = %v, want income", a.ctrl.Stage())
	}
	if !strings.HasPrefix(a.errMsg, "income:") {
		t.Errorf("errMsg = %q, want it to name the income field", a.errMsg)
	}

	// Typing again clears the error.
	a, _ = send(a, key(tea.KeyBackspace))
	if a.errMsg != "" {
		t.Errorf("errMsg = %q after editing, want empty", a.errMsg)
	}
}

func TestAppAddDeleteAndMove(t *testing.T) {
	a := newTestApp(nil)
	a, _ = send(a, typed("500"), key(tea.KeyEnter))

	a, _ = send(a, key(tea.KeyCtrlN), key(tea.KeyCtrlN))
	if len(a.rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(a.rows))
	}
	if a.focus != 2 {
		t.Errorf("focus = %d, want the new row", a.focus)
	}

	a, _ = send(a, key(tea.KeyTab))
	if a.focus != 0 {
		t.Errorf("focus after tab = %d, want wrap to 0", a.focus)
	}
	a, _ = send(a, key(tea.KeyShiftTab))
	if a.focus != 2 {
		t.Errorf("focus after shift+tab = %d, want 2", a.focus)
	}

	a, _ = send(a, typed("4"))
	removed := a.rows[a.focus].id
	a, _ = send(a, key(tea.KeyCtrlD))
	if len(a.rows) != 2 {
		t.Fatalf("rows = %d after delete, want 2", len(a.rows))
	}
	for _, r := range a.rows {
		if r.id == removed {
			t.Errorf("row %d still present", removed)
		}
	}
	if !a.ctrl.Summary().Daily.IsZero() {
		t.Errorf("Daily = %s after removing the only amount, want 0", a.ctrl.Summary().Daily)
	}
}

func TestAppEmptyRowBlocksResults(t *testing.T) {
	a := newTestApp(nil)
	a, _ = send(a, typed("500"), key(tea.KeyEnter), key(tea.KeyEnter))

	if a.ctrl.Stage() != model.StageExpenses {
		t.Fatalf("stage = %v, want expenses", a.ctrl.Stage())
	}
	if !strings.Contains(a.errMsg, "expense #1") {
		t.Errorf("errMsg = %q, want it to name expense #1", a.errMsg)
	}
}

func TestAppNegativeAmountShowsRowError(t *testing.T) {
	a := newTestApp(nil)
	a, _ = send(a, typed("500"), key(tea.KeyEnter), typed("-3"))

	if a.rows[0].err == "" {
		t.Error("expected an inline error on the negative row")
	}
	if got := a.ctrl.Summary().Daily; !got.Equal(decimal.NewFromInt(-3)) {
		t.Errorf("Daily = %s, want -3", got)
	}
}

func TestAppResultsReturnAndReset(t *testing.T) {
	a := newTestApp(nil)
	a, _ = send(a, typed("100"), key(tea.KeyEnter), typed("5"), key(tea.KeyEnter))
	if a.ctrl.Stage() != model.StageResults {
		t.Fatalf("stage = %v, want results", a.ctrl.Stage())
	}

	a, _ = send(a, key(tea.KeyEnter))
	if a.ctrl.Stage() != model.StageIncome {
		t.Fatalf("stage = %v, want income", a.ctrl.Stage())
	}
	if a.income.Value() != "100" {
		t.Errorf("income input = %q, want the kept draft", a.income.Value())
	}

	a, _ = send(a, key(tea.KeyEnter))
	if len(a.rows) != 1 || a.rows[0].input.Value() != "5" {
		t.Errorf("rows after returning = %+v, want the kept row", a.rows)
	}

	a, _ = send(a, key(tea.KeyEnter), key(tea.KeyCtrlR))
	if a.ctrl.Stage() != model.StageIncome || a.income.Value() != "" {
		t.Errorf("after reset stage=%v income=%q, want a fresh income stage", a.ctrl.Stage(), a.income.Value())
	}
	if entries := a.ctrl.Entries(); len(entries) != 1 || entries[0].ID == 1 {
		t.Errorf("entries after reset = %+v, want one new row with a fresh id", entries)
	}
}

func TestAppRecorderError(t *testing.T) {
	a := newTestApp(&fakeRecorder{err: errors.New("disk full")})
	a, cmd := send(a, typed("100"), key(tea.KeyEnter), typed("1"), key(tea.KeyEnter))
	a, _ = send(a, cmd())

	if !strings.Contains(a.notice, "disk full") {
		t.Errorf("notice = %q, want the recorder error", a.notice)
	}
	if a.ctrl.Stage() != model.StageResults {
		t.Error("a history failure must not leave the results stage")
	}
}

func TestAppViewTooNarrow(t *testing.T) {
	a := newTestApp(nil)
	a, _ = send(a, tea.WindowSizeMsg{Width: 40, Height: 20})
	if !strings.Contains(a.View(), "too narrow") {
		t.Error("expected the narrow terminal message")
	}
}

func TestAppQuitKeys(t *testing.T) {
	for _, k := range []tea.KeyType{tea.KeyEsc, tea.KeyCtrlC} {
		_, cmd := send(newTestApp(nil), key(k))
		if cmd == nil {
			t.Fatalf("%v: no command", k)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%v: expected tea.Quit", k)
		}
	}
}
