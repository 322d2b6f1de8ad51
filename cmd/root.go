// Package cmd implements the hormiga CLI commands.
package cmd

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/hormiga/internal/config"
	"github.com/theirongolddev/hormiga/internal/store"
)

var flagConfig string

var rootCmd = &cobra.Command{
	Use:   "hormiga",
	Short: "Find out what your small daily expenses cost you",
	Long: "hormiga takes your monthly income and your small daily expenses, projects them\n" +
		"over a week, a month and a year, and tells you how much of your income they take.",
	SilenceUsage:      true,
	PersistentPreRunE: initLogging,
	RunE:              runTUI,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default "+config.Path()+")")
}

// initLogging sets the logrus level from LOG_LEVEL, defaulting to info.
func initLogging(_ *cobra.Command, _ []string) error {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		log.SetLevel(log.InfoLevel)
		return nil
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("LOG_LEVEL: %w", err)
	}
	log.SetLevel(lvl)
	return nil
}

func configPath() string {
	if flagConfig != "" {
		return flagConfig
	}
	return config.Path()
}

func loadConfig() (config.Config, error) {
	return config.LoadFrom(configPath())
}

// openHistory opens the result log when history is enabled. It returns
// nil without error when it is disabled.
func openHistory(cfg config.Config) (*store.History, error) {
	if !cfg.History.Enabled {
		return nil, nil
	}
	h, err := store.Open(config.HistoryPath(cfg))
	if err != nil {
		return nil, fmt.Errorf("opening history: %w", err)
	}
	return h, nil
}
