package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/gauge/internal/models"
	"github.com/balkashynov/gauge/internal/parser"
	"github.com/balkashynov/gauge/internal/session"
	"github.com/balkashynov/gauge/internal/timing"
)

type focusKeyMap struct {
	Toggle key.Binding
	Done   key.Binding
	Exit   key.Binding
}

func (k focusKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Done, k.Exit}
}

func (k focusKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var focusKeys = focusKeyMap{
	Toggle: key.NewBinding(key.WithKeys(" ", "space", "p"), key.WithHelp("space", "pause/resume")),
	Done:   key.NewBinding(key.WithKeys("d", "D"), key.WithHelp("d", "mark done")),
	Exit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("esc/q", "exit")),
}

// FocusModel is the live focus screen for one task
type FocusModel struct {
	width  int
	height int

	ctrl   *session.Controller
	taskID string

	// Refreshed from the controller on every tick
	task    models.Task
	running bool
	today   int64
	now     time.Time

	progress progress.Model
	help     help.Model

	// Animation state
	frame int

	// Exit state
	completed bool
	removed   bool
	err       error
}

// focusTickMsg is sent every second to refresh the screen
type focusTickMsg struct{}

// animationTickMsg is sent for faster animations
type animationTickMsg struct{}

// NewFocusModel creates a focus screen bound to taskID
func NewFocusModel(ctrl *session.Controller, taskID string) FocusModel {
	m := FocusModel{
		ctrl:   ctrl,
		taskID: taskID,
		progress: progress.New(
			progress.WithGradient(ColorAccentMain, ColorAccentBright),
			progress.WithoutPercentage(),
		),
		help: help.New(),
	}
	return m.refresh()
}

// refresh reloads the task and today's ledger entry from the controller
func (m FocusModel) refresh() FocusModel {
	snap := m.ctrl.Snapshot()
	m.now = m.ctrl.Now()
	task, ok := snap.Task(m.taskID)
	if !ok {
		m.removed = true
		m.running = false
		return m
	}
	m.task = task
	m.running = snap.ActiveTaskID == m.taskID
	m.today = snap.History.Seconds(models.DateKey(m.now))
	return m
}

func focusTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return focusTickMsg{}
	})
}

func animationTick() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(time.Time) tea.Msg {
		return animationTickMsg{}
	})
}

// Init starts the refresh and animation tickers
func (m FocusModel) Init() tea.Cmd {
	return tea.Batch(focusTick(), animationTick())
}

// Update handles messages
func (m FocusModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case focusTickMsg:
		m = m.refresh()
		if m.removed {
			return m, tea.Quit
		}
		return m, focusTick()

	case animationTickMsg:
		m.frame = (m.frame + 1) % 4
		return m, animationTick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, focusKeys.Toggle):
			if m.running {
				m.err = m.ctrl.Pause()
			} else {
				m.err = m.ctrl.Start(m.taskID)
			}
			return m.refresh(), nil

		case key.Matches(msg, focusKeys.Done):
			m.err = m.ctrl.ToggleComplete(m.taskID)
			m = m.refresh()
			m.completed = m.task.Completed
			return m, tea.Quit

		case key.Matches(msg, focusKeys.Exit):
			return m, tea.Quit
		}
	}

	return m, nil
}

// View renders the focus screen
func (m FocusModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	helpBar := m.renderHelpBar()
	contentHeight := m.height - 2

	// Narrow view: just the clock panel
	if m.width < 90 {
		return lipgloss.JoinVertical(
			lipgloss.Left,
			m.renderClockPanel(m.width, contentHeight),
			helpBar,
		)
	}

	leftWidth := m.width / 2
	rightWidth := m.width - leftWidth - 2

	content := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderClockPanel(leftWidth, contentHeight),
		"  ",
		m.renderDetailsPanel(rightWidth, contentHeight),
	)

	return lipgloss.JoinVertical(lipgloss.Left, content, helpBar)
}

// renderClockPanel renders the session clock and goal progress
func (m FocusModel) renderClockPanel(width, height int) string {
	center := lipgloss.NewStyle().Align(lipgloss.Center).Width(width)
	var components []string

	// Animated header
	header := "⏸  PAUSED  ⏸"
	headerColor := ColorDisabledText
	if m.running {
		frames := []string{"⏱", "⏲", "⏱", "⏲"}
		header = fmt.Sprintf("%s  FOCUSING  %s", frames[m.frame], frames[m.frame])
		headerColor = ColorAccentBright
	}
	components = append(components, center.
		Foreground(lipgloss.Color(headerColor)).
		Bold(true).
		Render(header))

	components = append(components, center.
		Foreground(lipgloss.Color(ColorPrimaryText)).
		Bold(true).
		Render(Truncate(m.task.Title, width-4)))

	sessionSecs := timing.SessionTime(m.task, m.now)
	var clockLines []string
	for _, line := range strings.Split(renderBigClock(sessionSecs, m.running), "\n") {
		clockLines = append(clockLines, center.Render(line))
	}
	components = append(components, strings.Join(clockLines, "\n"))

	// Goal progress
	barWidth := width - 10
	if barWidth > 50 {
		barWidth = 50
	}
	m.progress.Width = barWidth
	pct := float64(timing.GoalProgress(m.task, m.now)) / 100
	components = append(components, center.Render(m.progress.ViewAs(pct)))

	var goalLine string
	goalStyle := center.Foreground(lipgloss.Color(ColorSecondaryText)).Italic(true)
	switch {
	case !m.running:
		goalLine = fmt.Sprintf("Goal %s · press space to resume", parser.FormatFocusGoal(m.task.FocusGoal))
	case timing.Overtime(m.task, m.now):
		over := sessionSecs - int64(m.task.FocusGoal)*60
		goalLine = fmt.Sprintf("OVERTIME +%s", timing.FormatMinSec(over))
		goalStyle = goalStyle.Foreground(lipgloss.Color(ColorWarning)).Bold(true)
	default:
		goalLine = fmt.Sprintf("%s left of %s", timing.FormatMinSec(timing.Remaining(m.task, m.now)), parser.FormatFocusGoal(m.task.FocusGoal))
	}
	components = append(components, goalStyle.Render(goalLine))

	if m.err != nil {
		components = append(components, center.
			Foreground(lipgloss.Color(ColorError)).
			Render("Error: "+m.err.Error()))
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(strings.Join(components, "\n\n"))
}

// Truncate shortens s to at most limit runes, ending in "..." when cut
func Truncate(s string, limit int) string {
	runes := []rune(s)
	if limit < 4 || len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}

// renderBigClock renders the session time as block digits
func renderBigClock(seconds int64, running bool) string {
	digits := map[rune][5]string{
		'0': {" ███ ", "█   █", "█   █", "█   █", " ███ "},
		'1': {"  █  ", " ██  ", "  █  ", "  █  ", "█████"},
		'2': {" ███ ", "█   █", "   █ ", "  █  ", "█████"},
		'3': {" ███ ", "█   █", "  ██ ", "█   █", " ███ "},
		'4': {"█   █", "█   █", "█████", "    █", "    █"},
		'5': {"█████", "█    ", "████ ", "    █", "████ "},
		'6': {" ███ ", "█    ", "████ ", "█   █", " ███ "},
		'7': {"█████", "    █", "   █ ", "  █  ", " █   "},
		'8': {" ███ ", "█   █", " ███ ", "█   █", " ███ "},
		'9': {" ███ ", "█   █", " ████", "    █", " ███ "},
		':': {"     ", "  █  ", "     ", "  █  ", "     "},
	}

	timeStr := timing.FormatMinSec(seconds)
	if seconds >= 3600 {
		timeStr = timing.FormatClock(seconds)
	}

	var lines [5]strings.Builder
	for _, char := range timeStr {
		art, ok := digits[char]
		if !ok {
			continue
		}
		for i := 0; i < 5; i++ {
			lines[i].WriteString(art[i])
			lines[i].WriteString(" ")
		}
	}

	color := ColorDisabledText
	if running {
		color = ColorAccentBright
	}
	clockStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)

	rendered := make([]string, 0, 5)
	for i := range lines {
		rendered = append(rendered, clockStyle.Render(lines[i].String()))
	}
	return strings.Join(rendered, "\n")
}

// renderDetailsPanel renders the task details on the right
func (m FocusModel) renderDetailsPanel(width, height int) string {
	task := m.task
	row := lipgloss.NewStyle().Align(lipgloss.Center).Width(width - 8)
	value := func(color, text string) string {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(text)
	}

	var b strings.Builder
	b.WriteString("\n")

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorPrimaryText)).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccentMain)).
		Width(width-12).
		Padding(0, 1)
	b.WriteString(titleStyle.Render(task.Title))
	b.WriteString("\n\n")

	if task.Description != "" {
		b.WriteString(row.Foreground(lipgloss.Color(ColorSecondaryText)).Italic(true).Render(task.Description))
		b.WriteString("\n\n")
	}

	lines := []string{
		fmt.Sprintf("🏷️  Tag: %s", value(ColorAccentBright, task.Tag)),
		fmt.Sprintf("⚑ Priority: %s", value(PriorityColor(string(task.Priority)), string(task.Priority))),
		fmt.Sprintf("🎯 Goal: %s", value(ColorPrimaryText, parser.FormatFocusGoal(task.FocusGoal))),
		fmt.Sprintf("⏳ Total: %s", value(ColorPrimaryText, timing.FormatClock(timing.ActiveTime(task, m.now)))),
		fmt.Sprintf("📅 Today: %s", value(ColorPrimaryText, timing.FormatHuman(m.today))),
		fmt.Sprintf("📝 Created: %s", value(ColorSecondaryText, task.CreatedAt.Format("Jan 02, 2006"))),
	}
	for _, line := range lines {
		b.WriteString(row.Render(line))
		b.WriteString("\n")
	}

	return lipgloss.NewStyle().Width(width).Height(height).Render(b.String())
}

// renderHelpBar renders the key hints at the bottom
func (m FocusModel) renderHelpBar() string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Align(lipgloss.Center).
		Width(m.width).
		Render(m.help.View(focusKeys))
}
