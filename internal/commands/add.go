package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/gauge/internal/models"
	"github.com/balkashynov/gauge/internal/parser"
	"github.com/balkashynov/gauge/internal/session"
)

var addCmd = &cobra.Command{
	Use:   "add [task title]",
	Short: "Add a new task",
	Long: `Add a new task with optional metadata.

Smart parsing syntax:
  #tag        - Tag (one per task, default General)
  +priority   - Priority (low/medium/high or 1/2/3)
  ~45m        - Focus goal (also goal:1h30m, plain minutes work too)

Example:
  gauge add "Write report #work +high ~50m"`,
	Args: cobra.MinimumNArgs(1),
	Run: withApp(func(app *App, cmd *cobra.Command, args []string) error {
		parsed := parser.ParseTitle(strings.Join(args, " "))
		if len(parsed.Errors) > 0 {
			fmt.Printf("⚠️  Found issues with parsing: %s\n", strings.Join(parsed.Errors, ", "))
		}

		in, err := applyAddFlags(cmd, parsed)
		if err != nil {
			return err
		}

		task, err := app.Ctrl.Add(in)
		if err != nil {
			return err
		}

		fmt.Printf("Created task %s: %s\n", shortID(task.ID), task.Title)
		fmt.Printf("  Tag: %s\n", task.Tag)
		fmt.Printf("  Priority: %s\n", task.Priority)
		fmt.Printf("  Focus goal: %s\n", parser.FormatFocusGoal(task.FocusGoal))
		if task.Description != "" {
			fmt.Printf("  Description: %s\n", task.Description)
		}
		return nil
	}),
}

// applyAddFlags merges explicit flags over the parsed title; flags take precedence
func applyAddFlags(cmd *cobra.Command, parsed parser.ParsedTask) (session.NewTask, error) {
	in := session.NewTask{
		Title:     parsed.Title,
		Tag:       parsed.Tag,
		Priority:  parsed.Priority,
		FocusGoal: parsed.FocusGoal,
	}

	if desc, _ := cmd.Flags().GetString("desc"); desc != "" {
		in.Description = desc
	}
	if tag, _ := cmd.Flags().GetString("tag"); tag != "" {
		in.Tag = strings.TrimPrefix(tag, "#")
	}
	if prio, _ := cmd.Flags().GetString("priority"); prio != "" {
		p, ok := models.ParsePriority(prio)
		if !ok {
			return in, fmt.Errorf("invalid priority '%s' (use low, medium, high or 1-3)", prio)
		}
		in.Priority = p
	}
	if goal, _ := cmd.Flags().GetString("goal"); goal != "" {
		minutes, err := parser.ParseFocusGoal(goal)
		if err != nil {
			return in, err
		}
		in.FocusGoal = minutes
	}
	return in, nil
}

func registerAddFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("desc", "d", "", "Task description")
	cmd.Flags().StringP("tag", "t", "", "Tag")
	cmd.Flags().StringP("priority", "p", "", "Priority: low, medium, high, or 1-3")
	cmd.Flags().StringP("goal", "g", "", "Focus goal: 45, 45m, 1h30m")
}

func init() {
	registerAddFlags(addCmd)
}
