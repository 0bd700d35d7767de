package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/gauge/internal/tui"
)

var focusCmd = &cobra.Command{
	Use:   "focus [task-id]",
	Short: "Open the focus screen",
	Long: `Open the focus screen for a task, starting it if needed.
Without an id it shows the running task, or lets you pick a pending one.`,
	Args: cobra.MaximumNArgs(1),
	Run: withApp(func(app *App, cmd *cobra.Command, args []string) error {
		var id string
		if len(args) == 1 {
			task, err := app.Ctrl.Find(args[0])
			if err != nil {
				return err
			}
			id = task.ID
		} else if active, ok := app.Ctrl.Snapshot().Active(); ok {
			id = active.ID
		} else {
			pending := filterByStatus(app.Ctrl.Snapshot().Tasks, false, false)
			if len(pending) == 0 {
				fmt.Println("No pending tasks. Use 'gauge add \"task title\"' first.")
				return nil
			}
			chosen, err := tui.RunPickerTUI(pending)
			if err != nil {
				return err
			}
			if chosen == "" {
				return nil
			}
			id = chosen
		}

		if err := app.Ctrl.Start(id); err != nil {
			return err
		}
		return tui.RunFocusTUI(app.Ctrl, id)
	}),
}
