// Package stats derives dashboard figures from tasks and the focus ledger.
// Nothing here is persisted; every function recomputes from its inputs and
// degrades to zero values on missing data.
package stats

import (
	"time"

	"github.com/balkashynov/gauge/internal/models"
	"github.com/balkashynov/gauge/internal/timing"
)

const (
	HeatmapDays           = 28
	RollupWeeks           = 8
	DefaultStreakLookback = 365
)

// HeatCell is one day of the activity heatmap
type HeatCell struct {
	Date      string
	Active    bool
	Intensity int
}

// DayMinutes is focus minutes for one weekday
type DayMinutes struct {
	Day     time.Weekday
	Label   string
	Minutes int64
}

// WeekTotal is focus minutes for one Monday-start week
type WeekTotal struct {
	Start   string
	Minutes int64
}

// DayCount is a per-weekday counter
type DayCount struct {
	Day   time.Weekday
	Label string
	Count int
}

// Summary holds the headline numbers of the dashboard
type Summary struct {
	TotalFocusSeconds   int64
	Completed           int
	Total               int
	DailyAverageMinutes int64
}

// Streak counts consecutive days with focus time walking back from today.
// An empty today does not break the chain; an empty earlier day does.
func Streak(h models.History, now time.Time, lookback int) int {
	if lookback <= 0 {
		lookback = DefaultStreakLookback
	}
	today := StartOfDay(now)

	streak := 0
	for i := 0; i < lookback; i++ {
		if seconds(h, dayKey(today, -i)) > 0 {
			streak++
			continue
		}
		if i == 0 {
			continue
		}
		break
	}
	return streak
}

// Intensity buckets a day's focus seconds: 0 (<=5m), 1 (>5m), 2 (>60m), 3 (>120m)
func Intensity(secs int64) int {
	minutes := float64(secs) / 60
	switch {
	case minutes > 120:
		return 3
	case minutes > 60:
		return 2
	case minutes > 5:
		return 1
	default:
		return 0
	}
}

// Heatmap returns the trailing HeatmapDays days, oldest first, ending today
func Heatmap(h models.History, now time.Time) []HeatCell {
	today := StartOfDay(now)
	cells := make([]HeatCell, 0, HeatmapDays)
	for i := HeatmapDays - 1; i >= 0; i-- {
		key := dayKey(today, -i)
		secs := seconds(h, key)
		cells = append(cells, HeatCell{
			Date:      key,
			Active:    secs > 0,
			Intensity: Intensity(secs),
		})
	}
	return cells
}

// WeekdayActivity returns focus minutes for each day of the current week
func WeekdayActivity(h models.History, now time.Time) []DayMinutes {
	monday := WeekStart(now)
	out := make([]DayMinutes, 0, len(Weekdays))
	for i, d := range Weekdays {
		out = append(out, DayMinutes{
			Day:     d,
			Label:   dayNames[i],
			Minutes: seconds(h, dayKey(monday, i)) / 60,
		})
	}
	return out
}

// WeeklyRollup returns the trailing weeks (current week last) with total minutes
func WeeklyRollup(h models.History, now time.Time, weeks int) []WeekTotal {
	if weeks <= 0 {
		weeks = RollupWeeks
	}
	current := WeekStart(now)
	out := make([]WeekTotal, 0, weeks)
	for w := weeks - 1; w >= 0; w-- {
		start := current.AddDate(0, 0, -7*w)
		var total int64
		for d := 0; d < 7; d++ {
			total += seconds(h, dayKey(start, d))
		}
		out = append(out, WeekTotal{Start: models.DateKey(start), Minutes: total / 60})
	}
	return out
}

// MostFocused returns the task with the largest active time; the first wins ties
func MostFocused(tasks []models.Task, now time.Time) (models.Task, bool) {
	if len(tasks) == 0 {
		return models.Task{}, false
	}
	best := 0
	bestTime := timing.ActiveTime(tasks[0], now)
	for i := 1; i < len(tasks); i++ {
		if t := timing.ActiveTime(tasks[i], now); t > bestTime {
			best, bestTime = i, t
		}
	}
	return tasks[best], true
}

// CompletedByWeekday counts completed tasks by the weekday they were last
// worked on, or created on if never worked. Weekdays are taken in loc.
func CompletedByWeekday(tasks []models.Task, loc *time.Location) []DayCount {
	if loc == nil {
		loc = time.Local
	}
	out := make([]DayCount, len(Weekdays))
	for i, d := range Weekdays {
		out[i] = DayCount{Day: d, Label: dayNames[i]}
	}
	for _, t := range tasks {
		if !t.Completed {
			continue
		}
		when := t.CreatedAt
		if t.LastWorkedAt != nil {
			when = *t.LastWorkedAt
		}
		if when.IsZero() {
			continue
		}
		out[mondayIndex(when.In(loc).Weekday())].Count++
	}
	return out
}

// Summarize computes the dashboard headline numbers. The daily average spreads
// ledger seconds of the heatmap window over all of its days.
func Summarize(tasks []models.Task, h models.History, now time.Time) Summary {
	var s Summary
	s.Total = len(tasks)
	for _, t := range tasks {
		s.TotalFocusSeconds += timing.ActiveTime(t, now)
		if t.Completed {
			s.Completed++
		}
	}

	today := StartOfDay(now)
	var window int64
	for i := 0; i < HeatmapDays; i++ {
		window += seconds(h, dayKey(today, -i))
	}
	s.DailyAverageMinutes = window / HeatmapDays / 60
	return s
}
