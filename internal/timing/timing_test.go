package timing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/balkashynov/gauge/internal/models"
)

var base = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func running(started time.Time, spent int64, goal int) models.Task {
	return models.Task{ID: "t1", Title: "write", TimeSpent: spent, FocusGoal: goal, StartedAt: &started}
}

func TestActiveTimeIdleEqualsTimeSpent(t *testing.T) {
	task := models.Task{TimeSpent: 300}
	assert.Equal(t, int64(300), ActiveTime(task, base))
	assert.Equal(t, int64(0), SessionTime(task, base))
}

func TestActiveTimeRunningAddsWholeSeconds(t *testing.T) {
	task := running(base, 100, 25)
	now := base.Add(61*time.Second + 999*time.Millisecond)

	assert.Equal(t, int64(161), ActiveTime(task, now))
	assert.Equal(t, int64(61), SessionTime(task, now))
	assert.Greater(t, ActiveTime(task, now), task.TimeSpent)
}

func TestActiveTimeClampsClockSkew(t *testing.T) {
	task := running(base, 42, 25)
	now := base.Add(-10 * time.Minute)

	assert.Equal(t, int64(42), ActiveTime(task, now))
	assert.Equal(t, int64(0), SessionTime(task, now))
}

func TestOvertimeBoundary(t *testing.T) {
	task := running(base, 0, 25)

	assert.True(t, Overtime(task, base.Add(1500000*time.Millisecond)))
	assert.False(t, Overtime(task, base.Add(1499000*time.Millisecond)))
	assert.False(t, Overtime(models.Task{FocusGoal: 25}, base), "idle task is never overtime")
}

func TestGoalProgressAndRemaining(t *testing.T) {
	task := running(base, 0, 10)

	assert.Equal(t, 50, GoalProgress(task, base.Add(5*time.Minute)))
	assert.Equal(t, int64(300), Remaining(task, base.Add(5*time.Minute)))
	assert.Equal(t, 100, GoalProgress(task, base.Add(30*time.Minute)))
	assert.Equal(t, int64(0), Remaining(task, base.Add(30*time.Minute)))
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "00:00:00", FormatClock(0))
	assert.Equal(t, "01:01:05", FormatClock(3665))
	assert.Equal(t, "00:00:00", FormatClock(-5))
}

func TestFormatMinSec(t *testing.T) {
	assert.Equal(t, "00:09", FormatMinSec(9))
	assert.Equal(t, "25:00", FormatMinSec(1500))
	assert.Equal(t, "61:01", FormatMinSec(3661))
	assert.Equal(t, "00:00", FormatMinSec(-1))
}

func TestFormatHuman(t *testing.T) {
	cases := map[int64]string{
		0:    "0s",
		45:   "45s",
		720:  "12m",
		3600: "1h",
		3900: "1h 5m",
		-3:   "0s",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatHuman(in), "seconds=%d", in)
	}
}
