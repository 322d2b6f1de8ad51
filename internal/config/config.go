// Package config loads and saves the hormiga TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all hormiga configuration.
type Config struct {
	Currency   CurrencyConfig   `toml:"currency"`
	Appearance AppearanceConfig `toml:"appearance"`
	History    HistoryConfig    `toml:"history"`
	Server     ServerConfig     `toml:"server"`
}

// CurrencyConfig controls how amounts are displayed. It never changes the
// stored numbers.
type CurrencyConfig struct {
	Locale         string `toml:"locale"`
	Code           string `toml:"code"`
	FractionDigits int    `toml:"fraction_digits"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// HistoryConfig controls the opt-in log of finished results.
type HistoryConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path,omitempty"`
}

// ServerConfig holds settings for `hormiga serve`.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Currency: CurrencyConfig{
			Locale:         "es-CL",
			Code:           "CLP",
			FractionDigits: 0,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8788",
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "hormiga")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "hormiga")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// HistoryPath returns the SQLite file used for result history.
func HistoryPath(cfg Config) string {
	if cfg.History.Path != "" {
		return cfg.History.Path
	}
	return filepath.Join(Dir(), "history.db")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	return LoadFrom(Path())
}

// LoadFrom reads the config at path over the defaults.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnv(&cfg)
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Currency.FractionDigits < 0 {
		return cfg, fmt.Errorf("parsing config: fraction_digits must not be negative")
	}

	applyEnv(&cfg)
	return cfg, nil
}

// applyEnv lets HORMIGA_LOCALE and HORMIGA_CURRENCY override the file.
func applyEnv(cfg *Config) {
	if v := os.Getenv("HORMIGA_LOCALE"); v != "" {
		cfg.Currency.Locale = v
	}
	if v := os.Getenv("HORMIGA_CURRENCY"); v != "" {
		cfg.Currency.Code = v
	}
}

// Save writes the config to disk.
func Save(cfg Config) error {
	return SaveTo(Path(), cfg)
}

// SaveTo writes the config to path, creating parent directories.
func SaveTo(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}
