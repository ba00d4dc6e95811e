// Package report renders training summaries as terminal tables.
package report

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"go.trai.ch/tagger/internal/engine/schedule"
	"go.trai.ch/tagger/internal/ui/style"
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(style.Muted).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return style.Header.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
}

func formatBest(v float64) string {
	if math.IsInf(v, 0) {
		return "-"
	}
	return fmt.Sprintf("%.4f", v)
}

// Schedule renders the task schedules as a table.
// It has the signature of trainer.Reporter.
func Schedule(states []schedule.State) string {
	t := newTable("Task", "Kind", "Mode", "Best", "Steps", "Patience", "Weight", "Status")
	for _, s := range states {
		status := style.Good.Render(style.Dot + " active")
		if s.Stopped {
			status = style.Bad.Render(style.Circle + " stopped")
		}
		t.Row(
			s.Task,
			string(s.Kind),
			string(s.Mode),
			formatBest(s.Best),
			strconv.Itoa(s.Steps),
			strconv.Itoa(s.Patience),
			fmt.Sprintf("%.4f", s.Weight),
			status,
		)
	}
	return t.String()
}

// Scores renders named scores sorted by name.
func Scores(scores map[string]float64) string {
	t := newTable("Task", "Score")
	for _, k := range slices.Sorted(maps.Keys(scores)) {
		t.Row(k, fmt.Sprintf("%.4f", scores[k]))
	}
	return t.String()
}

// Sizes renders the size of each named vocabulary in the given order.
func Sizes(names []string, sizes map[string]int) string {
	t := newTable("Vocabulary", "Size")
	for _, name := range names {
		t.Row(name, strconv.Itoa(sizes[name]))
	}
	return t.String()
}
