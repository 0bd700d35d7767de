package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/balkashynov/gauge/internal/models"
	"github.com/balkashynov/gauge/internal/session"
)

// RunFocusTUI shows the focus screen for taskID until the user leaves it.
// Leaving with esc keeps the session running.
func RunFocusTUI(ctrl *session.Controller, taskID string) error {
	model := NewFocusModel(ctrl, taskID)

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	if m, ok := finalModel.(FocusModel); ok {
		switch {
		case m.err != nil:
			fmt.Printf("❌ Error: %v\n", m.err)
		case m.removed:
			fmt.Println("❌ Task was removed.")
		case m.completed:
			fmt.Printf("✅ Completed \"%s\"\n", m.task.Title)
		case m.running:
			fmt.Printf("⏱  Still focusing on \"%s\"\n", m.task.Title)
		default:
			fmt.Printf("⏸  Paused \"%s\"\n", m.task.Title)
		}
	}

	return nil
}

// RunPickerTUI lets the user choose one of tasks. It returns an empty id when cancelled.
func RunPickerTUI(tasks []models.Task) (string, error) {
	p := tea.NewProgram(NewPickerModel(tasks), tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}
	if m, ok := finalModel.(PickerModel); ok {
		return m.Chosen(), nil
	}
	return "", nil
}
