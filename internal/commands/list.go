package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/balkashynov/gauge/internal/models"
	"github.com/balkashynov/gauge/internal/timing"
	"github.com/balkashynov/gauge/internal/tui"
)

// shortIDLen is how many id characters the list shows; any unique prefix resolves
const shortIDLen = 8

var listCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List tasks",
	Long:    "List pending tasks, or all / completed ones with --all / --done",
	Run: withApp(func(app *App, cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		done, _ := cmd.Flags().GetBool("done")

		snap := app.Ctrl.Snapshot()
		if len(snap.Tasks) == 0 {
			fmt.Println("No tasks found. Use 'gauge add \"task title\"' to create your first task.")
			return nil
		}

		tasks := filterByStatus(snap.Tasks, all, done)
		if len(tasks) == 0 {
			fmt.Println("No matching tasks.")
			return nil
		}

		renderTaskTable(tasks, app.Ctrl.Now())
		return nil
	}),
}

// filterByStatus keeps pending tasks unless all or done is set
func filterByStatus(tasks []models.Task, all, done bool) []models.Task {
	if all {
		return tasks
	}
	var out []models.Task
	for _, t := range tasks {
		if t.Completed == done {
			out = append(out, t)
		}
	}
	return out
}

// renderTaskTable prints tasks in a fixed-width table
func renderTaskTable(tasks []models.Task, now time.Time) {
	fmt.Printf("%-8s %-7s %-34s %-12s %-6s %-6s %-9s %s\n", "ID", "STATUS", "TITLE", "TAG", "PRIO", "GOAL", "TIME", "CREATED")
	fmt.Println(strings.Repeat("-", 100))

	for _, task := range tasks {
		title := tui.Truncate(task.Title, 32)
		tag := tui.Truncate(task.Tag, 10)

		fmt.Printf("%-8s %-7s %-34s %-12s %-6s %-6s %-9s %s\n",
			shortID(task.ID),
			taskStatus(task),
			title,
			tag,
			priorityShort(task.Priority),
			fmt.Sprintf("%dm", task.FocusGoal),
			timing.FormatClock(timing.ActiveTime(task, now)),
			humanize.RelTime(task.CreatedAt, now, "ago", "from now"))
	}
}

func shortID(id string) string {
	if len(id) > shortIDLen {
		return id[:shortIDLen]
	}
	return id
}

func taskStatus(task models.Task) string {
	switch {
	case task.IsRunning():
		return "running"
	case task.Completed:
		return "done"
	default:
		return "todo"
	}
}

func priorityShort(p models.Priority) string {
	switch p {
	case models.PriorityLow:
		return "low"
	case models.PriorityHigh:
		return "high"
	default:
		return "med"
	}
}

func init() {
	listCmd.Flags().BoolP("all", "a", false, "Show pending and completed tasks")
	listCmd.Flags().Bool("done", false, "Show only completed tasks")
}
