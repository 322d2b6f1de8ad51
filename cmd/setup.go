package cmd

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/hormiga/internal/config"
	"github.com/theirongolddev/hormiga/internal/tui"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Choose currency, theme and history settings",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	vals := tui.NewSetupValues(cfg)
	if err := vals.Form().Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("  Setup cancelled, nothing saved.")
			return nil
		}
		return err
	}

	cfg, err = vals.Apply(cfg)
	if err != nil {
		return err
	}
	if err := config.SaveTo(configPath(), cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", configPath())
	fmt.Println("  Run `hormiga setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}
