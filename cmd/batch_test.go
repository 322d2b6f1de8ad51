package cmd

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/hormiga/internal/model"
	"github.com/theirongolddev/hormiga/internal/pipeline"
)

func TestBatchRowKeepsZeroSpend(t *testing.T) {
	row := newBatchRow(pipeline.SheetResult{
		Path: "idle.toml",
		Result: model.Result{
			Income:       decimal.NewFromInt(1000),
			MonthlyTotal: decimal.Zero,
			Percentage:   decimal.Zero,
			Category:     "Saver",
		},
	})

	data, err := json.Marshal(row)
	if err != nil {
		t.Fatal(err)
	}
	got := string(data)
	for _, want := range []string{`"monthly":"0"`, `"percentage":"0"`, `"rounded_percentage":0`, `"income":"1000"`} {
		if !strings.Contains(got, want) {
			t.Errorf("row JSON %s is missing %s", got, want)
		}
	}
}

func TestBatchRowFailedSheetHasNoNumbers(t *testing.T) {
	row := newBatchRow(pipeline.SheetResult{Path: "bad.toml", Err: errors.New("income: enter your monthly income")})

	data, err := json.Marshal(row)
	if err != nil {
		t.Fatal(err)
	}
	got := string(data)
	for _, absent := range []string{`"income":`, `"monthly":`, `"percentage":`, `"rounded_percentage":`, `"category":`} {
		if strings.Contains(got, absent) {
			t.Errorf("failed row JSON %s contains %s", got, absent)
		}
	}
	if !strings.Contains(got, `"error":"income: enter your monthly income"`) {
		t.Errorf("failed row JSON %s lacks the error", got)
	}
}
