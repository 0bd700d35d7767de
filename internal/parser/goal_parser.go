package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// MaxFocusGoal caps a focus goal at 12 hours
const MaxFocusGoal = 12 * 60

var (
	compactGoalRegex = regexp.MustCompile(`^(?:(\d+)h)?(?:(\d+)m(?:in)?)?$`)
	spelledGoalRegex = regexp.MustCompile(`^(\d+)\s*(minute|minutes|min|mins|hour|hours|hr|hrs)$`)
)

// ParseFocusGoal parses a focus goal into whole minutes
// Supported formats:
// - bare minutes (e.g., "45")
// - compact (e.g., "45m", "1h", "1h30m")
// - spelled out (e.g., "90 minutes", "2 hours")
func ParseFocusGoal(input string) (int, error) {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return 0, fmt.Errorf("empty focus goal")
	}

	minutes, err := parseGoalMinutes(input)
	if err != nil {
		return 0, fmt.Errorf("invalid focus goal. Use: 45, 45m, 1h30m, or 90 minutes")
	}

	if minutes < 1 || minutes > MaxFocusGoal {
		return 0, fmt.Errorf("focus goal must be between 1 minute and %d hours", MaxFocusGoal/60)
	}
	return minutes, nil
}

func parseGoalMinutes(input string) (int, error) {
	// Bare number means minutes
	if n, err := strconv.Atoi(input); err == nil {
		return n, nil
	}

	if matches := spelledGoalRegex.FindStringSubmatch(input); len(matches) == 3 {
		amount, err := strconv.Atoi(matches[1])
		if err != nil {
			return 0, err
		}
		switch matches[2] {
		case "hour", "hours", "hr", "hrs":
			return amount * 60, nil
		default:
			return amount, nil
		}
	}

	matches := compactGoalRegex.FindStringSubmatch(input)
	if len(matches) != 3 || (matches[1] == "" && matches[2] == "") {
		return 0, fmt.Errorf("unsupported format")
	}
	total := 0
	if matches[1] != "" {
		h, err := strconv.Atoi(matches[1])
		if err != nil {
			return 0, err
		}
		total += h * 60
	}
	if matches[2] != "" {
		m, err := strconv.Atoi(matches[2])
		if err != nil {
			return 0, err
		}
		total += m
	}
	return total, nil
}

// FormatFocusGoal renders minutes the way ParseFocusGoal accepts them
func FormatFocusGoal(minutes int) string {
	h, m := minutes/60, minutes%60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh%dm", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dm", m)
	}
}
