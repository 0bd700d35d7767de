package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/gauge/internal/models"
	"github.com/balkashynov/gauge/internal/parser"
)

type pickerKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Search key.Binding
	Select key.Binding
	Quit   key.Binding
}

func (k pickerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Search, k.Select, k.Quit}
}

func (k pickerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var pickerKeys = pickerKeyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Search: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
	Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "focus")),
	Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("esc/q", "quit")),
}

// PickerModel lets the user choose a pending task to focus on
type PickerModel struct {
	width  int
	height int

	tasks    []models.Task
	filtered []models.Task
	selected int

	// Search state
	searchMode  bool
	searchQuery string

	help help.Model

	chosen    string
	cancelled bool
}

// NewPickerModel creates a picker over tasks in the given order
func NewPickerModel(tasks []models.Task) PickerModel {
	return PickerModel{
		tasks:    tasks,
		filtered: tasks,
		help:     help.New(),
	}
}

// Chosen returns the selected task id, empty if the picker was cancelled
func (m PickerModel) Chosen() string {
	return m.chosen
}

// Init implements tea.Model
func (m PickerModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.searchMode {
			return m.handleSearchKey(msg)
		}
		switch {
		case key.Matches(msg, pickerKeys.Quit):
			m.cancelled = true
			return m, tea.Quit
		case key.Matches(msg, pickerKeys.Up):
			if m.selected > 0 {
				m.selected--
			}
		case key.Matches(msg, pickerKeys.Down):
			if m.selected < len(m.filtered)-1 {
				m.selected++
			}
		case key.Matches(msg, pickerKeys.Search):
			m.searchMode = true
		case key.Matches(msg, pickerKeys.Select):
			if len(m.filtered) > 0 {
				m.chosen = m.filtered[m.selected].ID
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

// handleSearchKey edits the filter query
func (m PickerModel) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.cancelled = true
		return m, tea.Quit
	case "esc":
		m.searchMode = false
		m.searchQuery = ""
	case "enter":
		m.searchMode = false
		return m, nil
	case "backspace":
		if len(m.searchQuery) > 0 {
			runes := []rune(m.searchQuery)
			m.searchQuery = string(runes[:len(runes)-1])
		}
	default:
		if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
			m.searchQuery += string(msg.Runes)
		}
	}
	m.filtered = filterTasks(m.tasks, m.searchQuery)
	m.selected = 0
	return m, nil
}

// filterTasks keeps tasks whose title or tag contains query, case-insensitive
func filterTasks(tasks []models.Task, query string) []models.Task {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return tasks
	}
	var out []models.Task
	for _, t := range tasks {
		if strings.Contains(strings.ToLower(t.Title), query) ||
			strings.Contains(strings.ToLower(t.Tag), query) {
			out = append(out, t)
		}
	}
	return out
}

// View renders the picker
func (m PickerModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder
	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccentMain)).
		Render("Pick a task to focus on")
	b.WriteString(header + "\n\n")

	if m.searchMode || m.searchQuery != "" {
		cursor := ""
		if m.searchMode {
			cursor = "█"
		}
		b.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorAccentBright)).
			Render("/ "+m.searchQuery+cursor) + "\n\n")
	}

	if len(m.filtered) == 0 {
		b.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorDisabledText)).
			Italic(true).
			Render("No matching tasks"))
		b.WriteString("\n")
	}

	// Keep the selection visible when the list is taller than the screen
	visible := m.height - 8
	if visible < 3 {
		visible = 3
	}
	start := 0
	if m.selected >= visible {
		start = m.selected - visible + 1
	}
	end := start + visible
	if end > len(m.filtered) {
		end = len(m.filtered)
	}

	for i := start; i < end; i++ {
		b.WriteString(m.renderRow(m.filtered[i], i == m.selected))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Render(m.help.View(pickerKeys)))

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

// renderRow renders one task line
func (m PickerModel) renderRow(task models.Task, selected bool) string {
	marker := "  "
	titleColor := ColorPrimaryText
	if selected {
		marker = "▸ "
		titleColor = ColorAccentBright
	}

	title := lipgloss.NewStyle().Foreground(lipgloss.Color(titleColor)).Bold(selected).Render(task.Title)
	meta := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText)).Render(
		fmt.Sprintf("#%s · %s", task.Tag, parser.FormatFocusGoal(task.FocusGoal)))
	prio := lipgloss.NewStyle().Foreground(lipgloss.Color(PriorityColor(string(task.Priority)))).Render("●")

	return fmt.Sprintf("%s%s %s  %s", marker, prio, title, meta)
}
