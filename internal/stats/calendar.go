package stats

import (
	"fmt"
	"time"

	"github.com/balkashynov/gauge/internal/models"
)

// Weekdays in Monday-first order
var Weekdays = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

var dayNames = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// DayLabel returns the short Monday-first label for a weekday
func DayLabel(d time.Weekday) string {
	return dayNames[mondayIndex(d)]
}

// mondayIndex converts a weekday to 0-6 with Monday=0
func mondayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}

// StartOfDay truncates t to local midnight in t's location
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// WeekStart returns midnight of the Monday starting t's calendar week
func WeekStart(t time.Time) time.Time {
	day := StartOfDay(t)
	return day.AddDate(0, 0, -mondayIndex(day.Weekday()))
}

// WeekRange renders the current Monday-Sunday range, e.g. "Mar 9–Mar 15, 2026".
// A week spanning New Year shows both years: "Dec 29, 2025–Jan 4, 2026".
func WeekRange(now time.Time) string {
	monday := WeekStart(now)
	sunday := monday.AddDate(0, 0, 6)
	if monday.Year() != sunday.Year() {
		return fmt.Sprintf("%s–%s", monday.Format("Jan 2, 2006"), sunday.Format("Jan 2, 2006"))
	}
	return fmt.Sprintf("%s–%s, %d", monday.Format("Jan 2"), sunday.Format("Jan 2"), sunday.Year())
}

// dayKey returns the ledger key n days after day (negative n goes back)
func dayKey(day time.Time, n int) string {
	return models.DateKey(day.AddDate(0, 0, n))
}

// seconds reads a ledger entry, treating anything negative as zero
func seconds(h models.History, key string) int64 {
	v := h.Seconds(key)
	if v < 0 {
		return 0
	}
	return v
}
