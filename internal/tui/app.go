// Package tui provides the interactive Bubble Tea wizard for hormiga.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/theirongolddev/hormiga/internal/cli"
	"github.com/theirongolddev/hormiga/internal/config"
	"github.com/theirongolddev/hormiga/internal/model"
	"github.com/theirongolddev/hormiga/internal/source"
	"github.com/theirongolddev/hormiga/internal/store"
	"github.com/theirongolddev/hormiga/internal/tui/components"
	"github.com/theirongolddev/hormiga/internal/tui/theme"
	"github.com/theirongolddev/hormiga/internal/wizard"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Recorder stores finished results. *store.History satisfies it.
type Recorder interface {
	Save(rec store.Record) error
}

// Options configures a new App.
type Options struct {
	Config     config.Config
	ConfigPath string   // where the setup form saves; empty means config.Path()
	Recorder   Recorder // nil disables history
	NeedSetup  bool     // show the setup form before the wizard
}

// recordedMsg reports the outcome of writing a result to history.
type recordedMsg struct {
	err error
}

// expenseRow is the editor for one expense in the controller.
type expenseRow struct {
	id    int
	label string
	input textinput.Model
	err   string
}

// App is the root Bubble Tea model.
type App struct {
	cfg      config.Config
	cfgPath  string
	ctrl     *wizard.Controller
	money    *cli.Money
	recorder Recorder

	income textinput.Model
	rows   []expenseRow
	focus  int // index into rows on the Expenses stage

	errMsg string
	notice string

	width  int
	height int

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals *SetupValues
	needSetup bool
}

const (
	minTerminalWidth = 60
	maxContentWidth  = 110
	donutRadius      = 6
	shareLabelWidth  = 10
)

// NewApp creates a new TUI app model.
func NewApp(opts Options) App {
	theme.SetActive(opts.Config.Appearance.Theme)

	a := App{
		cfg:       opts.Config,
		cfgPath:   opts.ConfigPath,
		money:     cli.MoneyFromConfig(opts.Config.Currency),
		recorder:  opts.Recorder,
		income:    newAmountInput("monthly income"),
		needSetup: opts.NeedSetup,
	}
	if a.cfgPath == "" {
		a.cfgPath = config.Path()
	}
	a.ctrl = newController()
	a.income.Focus()

	if a.needSetup {
		a.setupVals = NewSetupValues(opts.Config)
		a.setupForm = a.setupVals.Form()
	}
	return a
}

func newController() *wizard.Controller {
	return wizard.New(
		wizard.WithPalette(theme.Active.Palette()),
		wizard.WithInitialExpense(source.DefaultLabel),
	)
}

func newAmountInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 24
	ti.Width = 20
	ti.Prompt = "› "
	return ti
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	if a.setupForm != nil {
		return a.setupForm.Init()
	}
	return textinput.Blink
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(min(msg.Width, maxContentWidth))
		}
		return a, nil

	case recordedMsg:
		if msg.err != nil {
			a.notice = "history: " + msg.err.Error()
		} else {
			a.notice = "saved to history"
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.needSetup && a.setupForm != nil {
			return a.updateSetupForm(msg)
		}
		if msg.String() == "esc" {
			return a, tea.Quit
		}

		switch a.ctrl.Stage() {
		case model.StageIncome:
			return a.updateIncome(msg)
		case model.StageExpenses:
			return a.updateExpenses(msg)
		case model.StageResults:
			return a.updateResults(msg)
		}
	}

	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	return a.forwardToFocused(msg)
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		if cfg, err := a.setupVals.Apply(a.cfg); err != nil {
			a.errMsg = err.Error()
		} else if err := config.SaveTo(a.cfgPath, cfg); err != nil {
			a.errMsg = fmt.Sprintf("could not save config: %s", err)
			a.applyConfig(cfg)
		} else {
			a.notice = "saved " + a.cfgPath
			a.applyConfig(cfg)
		}
		a.needSetup = false
		a.setupForm = nil
		return a, textinput.Blink

	case huh.StateAborted:
		a.needSetup = false
		a.setupForm = nil
		return a, textinput.Blink
	}
	return a, cmd
}

// applyConfig switches theme and currency. The form only runs before any
// input, so the session is restarted with the new palette.
func (a *App) applyConfig(cfg config.Config) {
	a.cfg = cfg
	theme.SetActive(cfg.Appearance.Theme)
	a.money = cli.MoneyFromConfig(cfg.Currency)
	a.ctrl = newController()
	a.rows = nil
}

func (a App) updateIncome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() != "enter" {
		return a.forwardToFocused(msg)
	}

	_ = a.ctrl.SetIncome(a.income.Value())
	if err := a.ctrl.Advance(); err != nil {
		a.errMsg = errorText(err)
		return a, nil
	}
	a.errMsg = ""
	a.income.Blur()
	a.syncRows()
	cmd := a.focusRow(0)
	return a, cmd
}

func (a App) updateExpenses(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if err := a.ctrl.Advance(); err != nil {
			a.errMsg = errorText(err)
			return a, nil
		}
		a.errMsg = ""
		a.blurRows()
		return a, a.recordCmd()

	case "ctrl+n":
		a.ctrl.AddExpense(source.DefaultLabel)
		a.syncRows()
		cmd := a.focusRow(len(a.rows) - 1)
		return a, cmd

	case "ctrl+d":
		if len(a.rows) == 0 {
			return a, nil
		}
		a.ctrl.RemoveExpense(a.rows[a.focus].id)
		a.syncRows()
		cmd := a.focusRow(min(a.focus, len(a.rows)-1))
		return a, cmd

	case "tab", "down":
		if len(a.rows) == 0 {
			return a, nil
		}
		cmd := a.focusRow((a.focus + 1) % len(a.rows))
		return a, cmd

	case "shift+tab", "up":
		if len(a.rows) == 0 {
			return a, nil
		}
		cmd := a.focusRow((a.focus - 1 + len(a.rows)) % len(a.rows))
		return a, cmd
	}
	return a.forwardToFocused(msg)
}

func (a App) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		_ = a.ctrl.Advance()
	case "ctrl+r":
		a.ctrl.Reset()
		a.income.SetValue("")
		a.rows = nil
	default:
		return a, nil
	}
	a.errMsg = ""
	a.notice = ""
	cmd := a.income.Focus()
	return a, cmd
}

// forwardToFocused passes a message to the focused input and pushes the
// new text into the controller so the totals follow every keystroke.
func (a App) forwardToFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.ctrl.Stage() {
	case model.StageIncome:
		a.income, cmd = a.income.Update(msg)
		if _, ok := msg.(tea.KeyMsg); ok {
			a.errMsg = ""
			_ = a.ctrl.SetIncome(a.income.Value())
		}

	case model.StageExpenses:
		if len(a.rows) == 0 {
			return a, nil
		}
		row := &a.rows[a.focus]
		before := row.input.Value()
		row.input, cmd = row.input.Update(msg)
		if row.input.Value() != before {
			a.errMsg = ""
			row.err = ""
			if err := a.ctrl.SetExpenseAmount(row.id, row.input.Value()); err != nil && row.input.Value() != "" {
				row.err = validationMessage(err)
			}
		}
	}
	return a, cmd
}

// syncRows rebuilds the row editors from the controller, keeping the
// editors of rows that still exist.
func (a *App) syncRows() {
	prev := make(map[int]expenseRow, len(a.rows))
	for _, r := range a.rows {
		prev[r.id] = r
	}

	entries := a.ctrl.Entries()
	rows := make([]expenseRow, 0, len(entries))
	for _, e := range entries {
		if r, ok := prev[e.ID]; ok {
			rows = append(rows, r)
			continue
		}
		in := newAmountInput("daily amount")
		in.SetValue(e.Raw)
		rows = append(rows, expenseRow{id: e.ID, label: e.Label, input: in})
	}
	a.rows = rows
	if a.focus >= len(a.rows) {
		a.focus = max(len(a.rows)-1, 0)
	}
}

func (a *App) focusRow(i int) tea.Cmd {
	a.blurRows()
	if i < 0 || i >= len(a.rows) {
		return nil
	}
	a.focus = i
	return a.rows[i].input.Focus()
}

func (a *App) blurRows() {
	for i := range a.rows {
		a.rows[i].input.Blur()
	}
}

func (a App) recordCmd() tea.Cmd {
	if a.recorder == nil {
		return nil
	}
	result, ok := a.ctrl.Result()
	if !ok {
		return nil
	}
	rec := store.NewRecord(result, a.ctrl.Summary(), a.ctrl.Entries(), a.money.Code())
	recorder := a.recorder
	return func() tea.Msg {
		return recordedMsg{err: recorder.Save(rec)}
	}
}

// errorText renders an Advance error for the status bar.
func errorText(err error) string {
	var ve *wizard.ValidationError
	if errors.As(err, &ve) {
		return ve.Error()
	}
	return "error: " + err.Error()
}

func validationMessage(err error) string {
	var ve *wizard.ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	return err.Error()
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return fmt.Sprintf("\n  Terminal too narrow (%d cols)\n\n  hormiga needs at least %d columns.\n",
			a.width, minTerminalWidth)
	}
	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
	}
	return a.viewMain()
}

func (a App) viewMain() string {
	t := theme.Active
	cw := a.contentWidth()

	logo := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true).Render(" ◈ hormiga")
	subtitle := lipgloss.NewStyle().Foreground(t.TextMuted).Render(" · small daily expenses")
	header := logo + subtitle + "\n" + components.RenderStageBar(a.ctrl.Stage())

	var content string
	switch a.ctrl.Stage() {
	case model.StageIncome:
		content = a.renderIncome(cw)
	case model.StageExpenses:
		content = a.renderExpenses(cw)
	case model.StageResults:
		content = a.renderResults(cw)
	}

	msg, isErr := a.notice, false
	if a.errMsg != "" {
		msg, isErr = a.errMsg, true
	}
	status := components.RenderStatusBar(cw, a.hints(), msg, isErr)

	body := lipgloss.JoinVertical(lipgloss.Left, header, "", content)
	if a.height > 0 {
		bodyH := a.height - lipgloss.Height(status)
		body = padHeight(truncateHeight(body, bodyH), bodyH)
	}
	return body + "\n" + status
}

func (a App) hints() []components.KeyHint {
	switch a.ctrl.Stage() {
	case model.StageIncome:
		return []components.KeyHint{{Key: "enter", Desc: "next"}, {Key: "esc", Desc: "quit"}}
	case model.StageExpenses:
		return []components.KeyHint{
			{Key: "enter", Desc: "results"},
			{Key: "ctrl+n", Desc: "add"},
			{Key: "ctrl+d", Desc: "delete"},
			{Key: "tab", Desc: "move"},
			{Key: "esc", Desc: "quit"},
		}
	default:
		return []components.KeyHint{
			{Key: "enter", Desc: "edit again"},
			{Key: "ctrl+r", Desc: "start over"},
			{Key: "esc", Desc: "quit"},
		}
	}
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}
