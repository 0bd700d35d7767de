package commands

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/balkashynov/gauge/internal/stats"
	"github.com/balkashynov/gauge/internal/timing"
	"github.com/balkashynov/gauge/internal/tui"
)

const barWidth = 30

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show focus statistics",
	Long: `Show your focus dashboard computed from the daily focus ledger:

  - streak of consecutive focus days
  - 28-day activity heatmap
  - minutes per weekday this week and the last 8 weeks
  - most focused task and completions by weekday`,
	Args: cobra.NoArgs,
	Run: withApp(func(app *App, cmd *cobra.Command, args []string) error {
		snap := app.Ctrl.Snapshot()
		now := app.Ctrl.Now()

		heading := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(tui.ColorAccentBright))
		muted := lipgloss.NewStyle().Foreground(lipgloss.Color(tui.ColorSecondaryText))

		summary := stats.Summarize(snap.Tasks, snap.History, now)
		streak := stats.Streak(snap.History, now, app.Config.StreakLookbackDays)

		fmt.Println(heading.Render("Summary"))
		fmt.Printf("  Total focus:    %s\n", timing.FormatHuman(summary.TotalFocusSeconds))
		fmt.Printf("  Completed:      %s of %s tasks\n", humanize.Comma(int64(summary.Completed)), humanize.Comma(int64(summary.Total)))
		fmt.Printf("  Daily average:  %dm\n", summary.DailyAverageMinutes)
		fmt.Printf("  Streak:         🔥 %d %s\n", streak, plural(streak, "day", "days"))
		fmt.Println()

		fmt.Println(heading.Render("Last 28 days"))
		fmt.Println(renderHeatmap(stats.Heatmap(snap.History, now)))
		fmt.Println()

		fmt.Println(heading.Render("This week") + "  " + muted.Render(stats.WeekRange(now)))
		days := stats.WeekdayActivity(snap.History, now)
		var dayMax int64
		for _, d := range days {
			dayMax = max(dayMax, d.Minutes)
		}
		for _, d := range days {
			fmt.Printf("  %-4s %s %dm\n", d.Label, renderBar(d.Minutes, dayMax), d.Minutes)
		}
		fmt.Println()

		fmt.Println(heading.Render("Weekly focus"))
		weeks := stats.WeeklyRollup(snap.History, now, stats.RollupWeeks)
		var weekMax int64
		for _, w := range weeks {
			weekMax = max(weekMax, w.Minutes)
		}
		for _, w := range weeks {
			fmt.Printf("  %-10s %s %s\n", w.Start, renderBar(w.Minutes, weekMax), timing.FormatHuman(w.Minutes*60))
		}
		fmt.Println()

		if task, ok := stats.MostFocused(snap.Tasks, now); ok {
			fmt.Println(heading.Render("Most focused"))
			fmt.Printf("  %s  %s\n", task.Title, muted.Render(timing.FormatHuman(timing.ActiveTime(task, now))))
			fmt.Println()
		}

		fmt.Println(heading.Render("Completed by weekday"))
		var labels, counts []string
		for _, c := range stats.CompletedByWeekday(snap.Tasks, now.Location()) {
			labels = append(labels, fmt.Sprintf("%4s", c.Label))
			counts = append(counts, fmt.Sprintf("%4d", c.Count))
		}
		fmt.Println(" " + strings.Join(labels, ""))
		fmt.Println(" " + strings.Join(counts, ""))
		return nil
	}),
}

// renderHeatmap prints cells oldest first, seven per row
func renderHeatmap(cells []stats.HeatCell) string {
	var b strings.Builder
	for i, cell := range cells {
		if i%7 == 0 {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString("  ")
		}
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(tui.HeatColors[cell.Intensity]))
		b.WriteString(style.Render("■ "))
	}
	return b.String()
}

// renderBar draws value as a bar scaled against top
func renderBar(value, top int64) string {
	filled := 0
	if top > 0 {
		filled = int(value * barWidth / top)
	}
	if value > 0 && filled == 0 {
		filled = 1
	}
	bar := lipgloss.NewStyle().Foreground(lipgloss.Color(tui.ColorAccentMain)).Render(strings.Repeat("█", filled))
	return bar + strings.Repeat(" ", barWidth-filled)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
