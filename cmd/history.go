package cmd

import (
	"fmt"

	"github.com/theirongolddev/hormiga/internal/cli"
	"github.com/theirongolddev/hormiga/internal/config"

	"github.com/spf13/cobra"
)

var (
	flagHistoryLimit  int
	flagHistoryDelete string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded results",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&flagHistoryLimit, "limit", "l", 20, "Number of results to show")
	historyCmd.Flags().StringVar(&flagHistoryDelete, "delete", "", "Delete the result whose id starts with this prefix")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !cfg.History.Enabled {
		fmt.Println("  History is disabled. Enable it with `hormiga setup`.")
		return nil
	}

	h, err := openHistory(cfg)
	if err != nil {
		return err
	}
	defer h.Close()

	if flagHistoryDelete != "" {
		id, err := h.Delete(flagHistoryDelete)
		if err != nil {
			return err
		}
		fmt.Printf("  Deleted result %s\n", id)
		return nil
	}

	records, err := h.Recent(flagHistoryLimit)
	if err != nil {
		return err
	}
	total, err := h.Count()
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Printf("  No results recorded yet in %s\n", config.HistoryPath(cfg))
		return nil
	}

	money := cli.MoneyFromConfig(cfg.Currency)
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			shortID(r.ID),
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			money.Format(r.Income),
			money.Format(r.MonthlyTotal),
			r.Percentage.StringFixed(1) + "%",
			r.Category,
			fmt.Sprint(len(r.Expenses)),
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("Results (%d of %d)", len(records), total),
		Headers: []string{"ID", "When", "Income", "Monthly", "Share", "Category", "Rows"},
		Rows:    rows,
	}))
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
