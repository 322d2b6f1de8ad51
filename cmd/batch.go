package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/hormiga/internal/cli"
	"github.com/theirongolddev/hormiga/internal/pipeline"

	"github.com/spf13/cobra"
)

var (
	flagBatchJSON  bool
	flagBatchQuiet bool
)

var batchCmd = &cobra.Command{
	Use:   "batch <sheet-or-dir>...",
	Short: "Evaluate many expense sheets and compare the results",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runBatch,
}

func init() {
	batchCmd.Flags().BoolVar(&flagBatchJSON, "json", false, "Print JSON instead of a table")
	batchCmd.Flags().BoolVarP(&flagBatchQuiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.AddCommand(batchCmd)
}

// batchRow is one --json line. Numbers are nil only for failed sheets, so
// a zero spend still shows up as 0.
type batchRow struct {
	Path       string           `json:"path"`
	Income     *decimal.Decimal `json:"income,omitempty"`
	Monthly    *decimal.Decimal `json:"monthly,omitempty"`
	Percentage *decimal.Decimal `json:"percentage,omitempty"`
	Rounded    *int             `json:"rounded_percentage,omitempty"`
	Category   string           `json:"category,omitempty"`
	Error      string           `json:"error,omitempty"`
}

func newBatchRow(s pipeline.SheetResult) batchRow {
	row := batchRow{Path: s.Path}
	if s.Err != nil {
		row.Error = s.Err.Error()
		return row
	}
	r := s.Result
	row.Income = &r.Income
	row.Monthly = &r.MonthlyTotal
	row.Percentage = &r.Percentage
	row.Rounded = &r.Rounded
	row.Category = r.Category
	return row
}

func runBatch(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	files, err := pipeline.ScanSheets(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no .toml or .json sheets found")
	}

	progressFn := func(current, total int) {
		if flagBatchQuiet || flagBatchJSON {
			return
		}
		fmt.Fprintf(os.Stderr, "\r  Evaluating [%d/%d]", current, total)
	}
	res := pipeline.Evaluate(files, progressFn)
	if !flagBatchQuiet && !flagBatchJSON {
		fmt.Fprintln(os.Stderr)
	}

	if flagBatchJSON {
		rows := make([]batchRow, 0, len(res.Sheets))
		for _, s := range res.Sheets {
			rows = append(rows, newBatchRow(s))
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	money := cli.MoneyFromConfig(cfg.Currency)
	rows := make([][]string, 0, len(res.Sheets))
	for _, s := range res.Sheets {
		name := filepath.Base(s.Path)
		if s.Err != nil {
			rows = append(rows, []string{name, "-", "-", "-", s.Err.Error()})
			continue
		}
		rows = append(rows, []string{
			name,
			money.Format(s.Result.Income),
			money.Format(s.Result.MonthlyTotal),
			cli.FormatPercent(s.Result.Rounded),
			s.Result.Category,
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("%d sheets, %d failed", len(res.Sheets), res.Failed),
		Headers: []string{"Sheet", "Income", "Monthly", "Share", "Category"},
		Rows:    rows,
	}))
	return nil
}
