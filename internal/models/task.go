package models

import (
	"strings"
	"time"
)

// Priority is the user-assigned importance of a task
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

const (
	DefaultTag       = "General"
	DefaultFocusGoal = 25 // minutes
)

// ParsePriority converts user input to a Priority.
// Accepts low/medium/med/high or 1/2/3, case-insensitive.
func ParsePriority(s string) (Priority, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low", "1":
		return PriorityLow, true
	case "medium", "med", "2":
		return PriorityMedium, true
	case "high", "3":
		return PriorityHigh, true
	default:
		return "", false
	}
}

// Valid reports whether p is one of the known priorities
func (p Priority) Valid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// Task represents a unit of trackable work
type Task struct {
	ID          string   `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Priority    Priority `json:"priority" yaml:"priority"`
	Tag         string   `json:"tag" yaml:"tag"`
	FocusGoal   int      `json:"focusGoal" yaml:"focus_goal"` // minutes
	Completed   bool     `json:"completed" yaml:"completed"`

	// TimeSpent holds whole seconds of finished sessions only
	TimeSpent int64 `json:"timeSpent" yaml:"time_spent"`

	// StartedAt is non-nil iff this task is the running session
	StartedAt    *time.Time `json:"startedAt" yaml:"started_at"`
	CreatedAt    time.Time  `json:"createdAt" yaml:"created_at"`
	LastWorkedAt *time.Time `json:"lastWorkedAt" yaml:"last_worked_at"`
}

// IsRunning reports whether the task has an open session
func (t Task) IsRunning() bool {
	return t.StartedAt != nil
}

// Clone returns a copy that shares no pointers with t
func (t Task) Clone() Task {
	c := t
	if t.StartedAt != nil {
		v := *t.StartedAt
		c.StartedAt = &v
	}
	if t.LastWorkedAt != nil {
		v := *t.LastWorkedAt
		c.LastWorkedAt = &v
	}
	return c
}

// CloneTasks deep-copies a task slice
func CloneTasks(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.Clone()
	}
	return out
}

// NormalizeRunning makes sure at most one task is running and returns its id.
// The earliest StartedAt wins, ties go to the first task in the slice. Losers
// are stopped without committing any time.
func NormalizeRunning(tasks []Task) string {
	winner := -1
	for i := range tasks {
		if tasks[i].StartedAt == nil {
			continue
		}
		if winner < 0 || tasks[i].StartedAt.Before(*tasks[winner].StartedAt) {
			winner = i
		}
	}
	if winner < 0 {
		return ""
	}
	for i := range tasks {
		if i != winner {
			tasks[i].StartedAt = nil
		}
	}
	return tasks[winner].ID
}
