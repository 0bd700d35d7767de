package models

import (
	"fmt"
	"time"
)

// DateKeyLayout is the calendar-day key format used by the focus ledger
const DateKeyLayout = "2006-01-02"

// History maps a local calendar date (YYYY-MM-DD) to focus seconds on that day
type History map[string]int64

// DateKey returns the ledger key for the calendar date of t in t's location
func DateKey(t time.Time) string {
	return t.Format(DateKeyLayout)
}

// ParseDateKey parses a ledger key. Keys that are not zero-padded are rejected.
func ParseDateKey(key string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(DateKeyLayout, key, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date key %q: %w", key, err)
	}
	if d.Format(DateKeyLayout) != key {
		return time.Time{}, fmt.Errorf("invalid date key %q", key)
	}
	return d, nil
}

// Add increments the entry for key. Non-positive amounts are ignored.
func (h History) Add(key string, seconds int64) {
	if seconds <= 0 {
		return
	}
	h[key] += seconds
}

// Seconds returns the recorded seconds for key, zero if missing
func (h History) Seconds(key string) int64 {
	if h == nil {
		return 0
	}
	return h[key]
}

// Clone returns an independent copy
func (h History) Clone() History {
	out := make(History, len(h))
	for k, v := range h {
		out[k] = v
	}
	return out
}
