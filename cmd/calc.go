package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/theirongolddev/hormiga/internal/cli"
	"github.com/theirongolddev/hormiga/internal/model"
	"github.com/theirongolddev/hormiga/internal/pipeline"
	"github.com/theirongolddev/hormiga/internal/source"
	"github.com/theirongolddev/hormiga/internal/store"
	"github.com/theirongolddev/hormiga/internal/wizard"

	"github.com/spf13/cobra"
)

var (
	flagCalcIncome   string
	flagCalcExpenses []string
	flagCalcFile     string
	flagCalcJSON     bool
)

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Compute the result without the interactive wizard",
	Example: "  hormiga calc --income 500000 --expense coffee=2500 --expense 1200\n" +
		"  hormiga calc --file expenses.toml --json",
	RunE: runCalc,
}

func init() {
	calcCmd.Flags().StringVar(&flagCalcIncome, "income", "", "Monthly income (overrides the sheet)")
	calcCmd.Flags().StringArrayVarP(&flagCalcExpenses, "expense", "e", nil, "Daily expense as amount or label=amount (repeatable)")
	calcCmd.Flags().StringVarP(&flagCalcFile, "file", "f", "", "Expense sheet (.toml or .json)")
	calcCmd.Flags().BoolVar(&flagCalcJSON, "json", false, "Print JSON instead of tables")
	rootCmd.AddCommand(calcCmd)
}

// calcOutput is the --json document.
type calcOutput struct {
	Income   decimal.Decimal      `json:"income"`
	Expenses []model.ExpenseEntry `json:"expenses"`
	Summary  model.Summary        `json:"summary"`
	Result   model.Result         `json:"result"`
	Display  map[string]string    `json:"display"`
}

func runCalc(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var sheet source.Sheet
	if flagCalcFile != "" {
		if sheet, err = source.LoadFile(flagCalcFile); err != nil {
			return err
		}
	}
	if flagCalcIncome != "" {
		sheet.Income = flagCalcIncome
	}
	for _, arg := range flagCalcExpenses {
		sheet.Expenses = append(sheet.Expenses, source.ParseRow(arg))
	}

	ctrl, err := pipeline.Play(sheet)
	if err != nil {
		var ve *wizard.ValidationError
		if errors.As(err, &ve) {
			return fmt.Errorf("invalid %s: %s", ve.Field, ve.Message)
		}
		return err
	}
	result, _ := ctrl.Result()
	money := cli.MoneyFromConfig(cfg.Currency)

	history, err := openHistory(cfg)
	if err != nil {
		log.WithError(err).Warn("history unavailable")
	} else if history != nil {
		defer history.Close()
		rec := store.NewRecord(result, ctrl.Summary(), ctrl.Entries(), money.Code())
		if err := history.Save(rec); err != nil {
			log.WithError(err).Warn("recording result failed")
		} else {
			log.WithField("id", rec.ID).Debug("result recorded")
		}
	}

	if flagCalcJSON {
		return printCalcJSON(ctrl, result, money)
	}
	printCalc(ctrl, result, money)
	return nil
}

func printCalcJSON(ctrl *wizard.Controller, result model.Result, money *cli.Money) error {
	s := ctrl.Summary()
	out := calcOutput{
		Income:   ctrl.Income(),
		Expenses: ctrl.Entries(),
		Summary:  s,
		Result:   result,
		Display: map[string]string{
			"income":     money.Format(result.Income),
			"daily":      money.Format(s.Daily),
			"weekly":     money.Format(s.Weekly),
			"monthly":    money.Format(s.Monthly),
			"annual":     money.Format(s.Annual),
			"percentage": cli.FormatPercent(result.Rounded),
		},
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func printCalc(ctrl *wizard.Controller, result model.Result, money *cli.Money) {
	s := ctrl.Summary()

	fmt.Println()
	fmt.Println(cli.RenderTitle("hormiga · small daily expenses"))
	fmt.Println()

	rows := make([][]string, 0, len(ctrl.Entries())+2)
	for _, e := range ctrl.Entries() {
		rows = append(rows, []string{fmt.Sprintf("%s #%d", e.Label, e.ID), money.Format(e.Amount)})
	}
	rows = append(rows, []string{"---"}, []string{"Total per day", money.Format(s.Daily)})
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Expenses",
		Headers: []string{"Expense", "Daily"},
		Rows:    rows,
	}))
	fmt.Println()

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Projection",
		Headers: []string{"Period", "Days", "Amount"},
		Rows: [][]string{
			{"Week", fmt.Sprint(model.DaysInWeek), money.Format(s.Weekly)},
			{"Month", fmt.Sprint(model.DaysInMonth), money.Format(s.Monthly)},
			{"Year", fmt.Sprint(model.DaysInYear), money.Format(s.Annual)},
		},
	}))
	fmt.Println()

	fmt.Println(cli.RenderKeyValue("Income", money.Format(result.Income), 10))
	fmt.Println(cli.RenderKeyValue("Share", cli.FormatPercent(result.Rounded), 10))
	fmt.Println(cli.RenderKeyValue("Category", result.Category, 10))
	fmt.Println(cli.RenderKeyValue("", result.Message, 10))
	fmt.Println()
	fmt.Println("  " + cli.RenderSplitBar(result.Chart, 40))
	fmt.Printf("  income %s · expenses %s\n",
		cli.FormatAngle(result.Chart.IncomeAngle), cli.FormatAngle(result.Chart.ExpenseAngle))
	fmt.Println()
}
