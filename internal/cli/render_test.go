package cli

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/hormiga/internal/model"
)

func TestRenderTableShape(t *testing.T) {
	out := RenderTable(Table{
		Title:   "Summary",
		Headers: []string{"Period", "Total"},
		Rows: [][]string{
			{"Weekly", "70"},
			{"---"},
			{"Monthly", "300"},
		},
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// title, top, header, header rule, row, separator, row, bottom
	if len(lines) != 8 {
		t.Fatalf("got %d lines, want 8:\n%s", len(lines), out)
	}
	width := lipgloss.Width(lines[1])
	for i, l := range lines[1:] {
		if w := lipgloss.Width(l); w != width {
			t.Errorf("line %d width = %d, want %d", i+1, w, width)
		}
	}
	if !strings.Contains(out, "Monthly") || !strings.Contains(out, "300") {
		t.Error("missing row content")
	}
}

func TestRenderTableEmpty(t *testing.T) {
	if got := RenderTable(Table{}); got != "" {
		t.Errorf("RenderTable(empty) = %q, want empty", got)
	}
}

func TestRenderSplitBar(t *testing.T) {
	p := model.Proportion{ExpenseAngle: 90, IncomeAngle: 270}
	bar := RenderSplitBar(p, 20)
	if got := strings.Count(bar, "█"); got != 5 {
		t.Errorf("expense cells = %d, want 5", got)
	}
	if got := strings.Count(bar, "░"); got != 15 {
		t.Errorf("income cells = %d, want 15", got)
	}

	full := RenderSplitBar(model.Proportion{ExpenseAngle: 360, Full: true}, 10)
	if strings.Contains(full, "░") || strings.Count(full, "█") != 10 {
		t.Errorf("full bar = %q, want 10 expense cells only", full)
	}
}
