package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var doneCmd = &cobra.Command{
	Use:   "done [task-id]",
	Short: "Toggle a task between completed and todo",
	Long:  "Mark a task as completed, or back to todo if it already is. A running task is paused first.",
	Args:  cobra.ExactArgs(1),
	Run: withApp(func(app *App, cmd *cobra.Command, args []string) error {
		task, err := app.Ctrl.Find(args[0])
		if err != nil {
			return err
		}
		if err := app.Ctrl.ToggleComplete(task.ID); err != nil {
			return err
		}

		if task.Completed {
			fmt.Printf("↩️  Marked task %s back to todo: %s\n", shortID(task.ID), task.Title)
		} else {
			fmt.Printf("✅ Marked task %s as done: %s\n", shortID(task.ID), task.Title)
		}
		return nil
	}),
}
