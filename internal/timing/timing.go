// Package timing computes elapsed and accumulated focus time from task snapshots.
// Everything here is pure; callers pass the instant to evaluate at.
package timing

import (
	"fmt"
	"math"
	"time"

	"github.com/balkashynov/gauge/internal/models"
)

// Elapsed returns whole seconds between start and now, clamped at zero
func Elapsed(start, now time.Time) int64 {
	secs := int64(now.Sub(start) / time.Second)
	if secs < 0 {
		return 0
	}
	return secs
}

// ActiveTime returns TimeSpent plus the running session, if any
func ActiveTime(task models.Task, now time.Time) int64 {
	return task.TimeSpent + SessionTime(task, now)
}

// SessionTime returns seconds of the current run only, 0 when idle
func SessionTime(task models.Task, now time.Time) int64 {
	if task.StartedAt == nil {
		return 0
	}
	return Elapsed(*task.StartedAt, now)
}

func goalSeconds(task models.Task) int64 {
	goal := task.FocusGoal
	if goal <= 0 {
		goal = models.DefaultFocusGoal
	}
	return int64(goal) * 60
}

// Overtime reports whether the current run has reached the task's focus goal
func Overtime(task models.Task, now time.Time) bool {
	return task.IsRunning() && SessionTime(task, now) >= goalSeconds(task)
}

// Remaining returns seconds left until the focus goal, never negative
func Remaining(task models.Task, now time.Time) int64 {
	left := goalSeconds(task) - SessionTime(task, now)
	if left < 0 {
		return 0
	}
	return left
}

// GoalProgress returns the current run as a percentage of the focus goal, capped at 100
func GoalProgress(task models.Task, now time.Time) int {
	pct := math.Round(float64(SessionTime(task, now)) / float64(goalSeconds(task)) * 100)
	if pct > 100 {
		return 100
	}
	return int(pct)
}

// FormatClock renders seconds as HH:MM:SS
func FormatClock(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// FormatMinSec renders seconds as MM:SS; minutes are not wrapped at the hour
func FormatMinSec(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// FormatHuman renders "45s", "12m", "1h" or "1h 5m"
func FormatHuman(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	if h > 0 {
		if m > 0 {
			return fmt.Sprintf("%dh %dm", h, m)
		}
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dm", m)
}
