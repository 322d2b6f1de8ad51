// Package source loads expense sheets used by the non-interactive commands.
package source

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultLabel is used for rows without a label.
const DefaultLabel = "Daily expense"

// LoadFile reads a sheet from a .toml or .json file.
//
//	income = 1000
//	[[expenses]]
//	label = "coffee"
//	daily = 2.5
func LoadFile(path string) (Sheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Sheet{}, fmt.Errorf("reading sheet: %w", err)
	}

	var raw rawSheet
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		err = dec.Decode(&raw)
	case ".toml", "":
		err = toml.Unmarshal(data, &raw)
	default:
		return Sheet{}, fmt.Errorf("unsupported sheet format %q", filepath.Ext(path))
	}
	if err != nil {
		return Sheet{}, fmt.Errorf("parsing sheet %s: %w", filepath.Base(path), err)
	}

	sheet := Sheet{Income: amountText(raw.Income)}
	for _, r := range raw.Expenses {
		label := strings.TrimSpace(r.Label)
		if label == "" {
			label = DefaultLabel
		}
		sheet.Expenses = append(sheet.Expenses, Row{Label: label, Daily: amountText(r.Daily)})
	}
	return sheet, nil
}

// ParseRow parses a flag value of the form "amount" or "label=amount".
func ParseRow(arg string) Row {
	label, amount, ok := strings.Cut(arg, "=")
	if !ok {
		return Row{Label: DefaultLabel, Daily: strings.TrimSpace(arg)}
	}
	label = strings.TrimSpace(label)
	if label == "" {
		label = DefaultLabel
	}
	return Row{Label: label, Daily: strings.TrimSpace(amount)}
}

// amountText turns a decoded number or string back into input text.
func amountText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		return x.String()
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(x, 10)
	case int:
		return strconv.Itoa(x)
	default:
		return fmt.Sprint(x)
	}
}
