package tui

import (
	"testing"

	"github.com/theirongolddev/hormiga/internal/config"
)

func TestSetupValuesApply(t *testing.T) {
	v := NewSetupValues(config.DefaultConfig())
	if v.Locale != "es-CL" || v.Code != "CLP" || v.Digits != "0" {
		t.Fatalf("seeded values = %+v", v)
	}

	v.Locale = " en-US "
	v.Code = "usd"
	v.Digits = "2"
	v.Theme = "tokyo-night"
	v.History = true

	cfg, err := v.Apply(config.DefaultConfig())
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if cfg.Currency.Locale != "en-US" || cfg.Currency.Code != "USD" || cfg.Currency.FractionDigits != 2 {
		t.Errorf("currency = %+v", cfg.Currency)
	}
	if cfg.Appearance.Theme != "tokyo-night" || !cfg.History.Enabled {
		t.Errorf("appearance=%q history=%v", cfg.Appearance.Theme, cfg.History.Enabled)
	}
}

func TestSetupValuesRejectInvalid(t *testing.T) {
	tests := []struct {
		name string
		edit func(*SetupValues)
	}{
		{"locale", func(v *SetupValues) { v.Locale = "not a locale!" }},
		{"currency", func(v *SetupValues) { v.Code = "ZZZZ" }},
		{"digits", func(v *SetupValues) { v.Digits = "-1" }},
		{"digits text", func(v *SetupValues) { v.Digits = "two" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewSetupValues(config.DefaultConfig())
			tt.edit(v)
			if _, err := v.Apply(config.DefaultConfig()); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
