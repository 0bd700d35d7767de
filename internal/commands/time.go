package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/gauge/internal/parser"
	"github.com/balkashynov/gauge/internal/timing"
	"github.com/balkashynov/gauge/internal/tui"
)

var startCmd = &cobra.Command{
	Use:   "start [task-id]",
	Short: "Start focusing on a task",
	Long: `Start a focus session on a task. Any other running session is paused first.
Opens the focus screen by default, use --no-ui for a simple start.

Daily stats (streak, heatmap, weekly focus) count seconds only while gauge is
open, such as on the focus screen. A --no-ui session still adds to the task's
total time when paused, but not to the daily stats.

Examples:
  gauge start 3f2a        # Start with the focus screen
  gauge start 3f2a --no-ui # Start without UI`,
	Args: cobra.ExactArgs(1),
	Run: withApp(func(app *App, cmd *cobra.Command, args []string) error {
		task, err := app.Ctrl.Find(args[0])
		if err != nil {
			return err
		}
		if err := app.Ctrl.Start(task.ID); err != nil {
			return err
		}

		noUI, _ := cmd.Flags().GetBool("no-ui")
		if noUI {
			fmt.Printf("⏱️  Started focusing on %s: %s\n", shortID(task.ID), task.Title)
			fmt.Printf("Started at: %s\n", app.Ctrl.Now().Format("15:04:05"))
			return nil
		}
		return tui.RunFocusTUI(app.Ctrl, task.ID)
	}),
}

var pauseCmd = &cobra.Command{
	Use:     "pause",
	Aliases: []string{"stop"},
	Short:   "Pause the running focus session",
	Run: withApp(func(app *App, cmd *cobra.Command, args []string) error {
		task, ok := app.Ctrl.Snapshot().Active()
		if !ok {
			fmt.Println("No active focus session")
			return nil
		}

		elapsed := timing.SessionTime(task, app.Ctrl.Now())
		if err := app.Ctrl.Pause(); err != nil {
			return err
		}

		fmt.Printf("⏸️  Paused %s: %s\n", shortID(task.ID), task.Title)
		fmt.Printf("Session duration: %s\n", timing.FormatHuman(elapsed))
		return nil
	}),
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current focus session",
	Run: withApp(func(app *App, cmd *cobra.Command, args []string) error {
		task, ok := app.Ctrl.Snapshot().Active()
		if !ok {
			fmt.Println("No active focus session")
			return nil
		}

		now := app.Ctrl.Now()
		fmt.Printf("⏱️  Currently focusing: %s: %s\n", shortID(task.ID), task.Title)
		fmt.Printf("Started at: %s\n", task.StartedAt.Local().Format("15:04:05"))
		fmt.Printf("Session: %s of %s goal\n", timing.FormatMinSec(timing.SessionTime(task, now)), parser.FormatFocusGoal(task.FocusGoal))
		fmt.Printf("Total on task: %s\n", timing.FormatClock(timing.ActiveTime(task, now)))
		if timing.Overtime(task, now) {
			fmt.Println("⚠️  Overtime: the focus goal has been reached")
		}
		return nil
	}),
}

func init() {
	startCmd.Flags().Bool("no-ui", false, "Start without the focus screen (time is not counted in daily stats)")
}
