package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:     "rm [task-id]",
	Aliases: []string{"remove"},
	Short:   "Remove a task",
	Long:    "Remove a task permanently. Focus time already recorded for the day stays in your stats.",
	Args:    cobra.ExactArgs(1),
	Run: withApp(func(app *App, cmd *cobra.Command, args []string) error {
		task, err := app.Ctrl.Find(args[0])
		if err != nil {
			return err
		}
		if err := app.Ctrl.Remove(task.ID); err != nil {
			return err
		}
		fmt.Printf("🗑️  Removed task %s: %s\n", shortID(task.ID), task.Title)
		return nil
	}),
}
