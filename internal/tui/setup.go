package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/hormiga/internal/config"
	"github.com/theirongolddev/hormiga/internal/tui/theme"

	"github.com/charmbracelet/huh"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

// SetupValues holds the answers of the setup form.
type SetupValues struct {
	Locale  string
	Code    string
	Digits  string
	Theme   string
	History bool
}

// NewSetupValues seeds the form with the current configuration.
func NewSetupValues(cfg config.Config) *SetupValues {
	return &SetupValues{
		Locale:  cfg.Currency.Locale,
		Code:    cfg.Currency.Code,
		Digits:  strconv.Itoa(cfg.Currency.FractionDigits),
		Theme:   theme.ByName(cfg.Appearance.Theme).Name,
		History: cfg.History.Enabled,
	}
}

// Form builds the huh form bound to v.
func (v *SetupValues) Form() *huh.Form {
	themes := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themes = append(themes, huh.NewOption(t.Name, t.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to hormiga").
				Description("Find out how much your small daily expenses cost you.\nThese settings only change how amounts are shown."),
			huh.NewInput().
				Title("Locale").
				Description("BCP 47 tag used for number formatting, e.g. es-CL").
				Value(&v.Locale).
				Validate(validLocale),
			huh.NewInput().
				Title("Currency").
				Description("ISO 4217 code, e.g. CLP").
				Value(&v.Code).
				Validate(validCurrency),
			huh.NewInput().
				Title("Decimals").
				Description("Digits shown after the decimal separator").
				Value(&v.Digits).
				Validate(validDigits),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themes...).
				Value(&v.Theme),
			huh.NewConfirm().
				Title("Keep a history of results?").
				Description("Finished results are saved to a local SQLite file.").
				Value(&v.History),
		),
	).WithTheme(huh.ThemeDracula())
}

// Apply copies the answers into cfg.
func (v *SetupValues) Apply(cfg config.Config) (config.Config, error) {
	if err := validLocale(v.Locale); err != nil {
		return cfg, err
	}
	if err := validCurrency(v.Code); err != nil {
		return cfg, err
	}
	if err := validDigits(v.Digits); err != nil {
		return cfg, err
	}

	digits, _ := strconv.Atoi(strings.TrimSpace(v.Digits))
	cfg.Currency.Locale = strings.TrimSpace(v.Locale)
	cfg.Currency.Code = strings.ToUpper(strings.TrimSpace(v.Code))
	cfg.Currency.FractionDigits = digits
	cfg.Appearance.Theme = theme.ByName(v.Theme).Name
	cfg.History.Enabled = v.History
	return cfg, nil
}

func validLocale(s string) error {
	if _, err := language.Parse(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("unknown locale %q", s)
	}
	return nil
}

func validCurrency(s string) error {
	if _, err := currency.ParseISO(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("unknown currency %q", s)
	}
	return nil
}

func validDigits(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 || n > 6 {
		return fmt.Errorf("decimals must be a whole number from 0 to 6")
	}
	return nil
}
