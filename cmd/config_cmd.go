package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/hormiga/internal/cli"
	"github.com/theirongolddev/hormiga/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	money := cli.MoneyFromConfig(cfg.Currency)

	fmt.Printf("  Config file: %s\n", configPath())
	if _, err := os.Stat(configPath()); err == nil {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [Currency]")
	fmt.Printf("    Locale:   %s\n", cfg.Currency.Locale)
	fmt.Printf("    Code:     %s\n", cfg.Currency.Code)
	fmt.Printf("    Decimals: %d\n", cfg.Currency.FractionDigits)
	fmt.Printf("    Sample:   %s\n", money.Format(decimal.RequireFromString("1234.5")))
	if !strings.EqualFold(money.Code(), cfg.Currency.Code) || !strings.EqualFold(money.Locale(), cfg.Currency.Locale) {
		fmt.Printf("    Invalid locale or code, showing %s %s instead\n", money.Locale(), money.Code())
	}
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [History]")
	if cfg.History.Enabled {
		fmt.Printf("    Enabled: yes (%s)\n", config.HistoryPath(cfg))
	} else {
		fmt.Println("    Enabled: no")
	}
	fmt.Println()

	fmt.Println("  [Server]")
	fmt.Printf("    Address: %s\n", cfg.Server.Addr)
	fmt.Println()

	fmt.Println("  Run `hormiga setup` to reconfigure.")
	return nil
}
