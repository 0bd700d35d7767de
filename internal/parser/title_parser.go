package parser

import (
	"regexp"
	"strings"

	"github.com/balkashynov/gauge/internal/models"
)

// ParsedTask represents a task parsed from natural language
type ParsedTask struct {
	Title     string
	Tag       string
	Priority  models.Priority
	FocusGoal int // minutes, 0 when not given
	Errors    []string
}

var (
	tagRegex      = regexp.MustCompile(`(?:^|\s)#([\p{L}\p{N}_-]+)`)
	priorityRegex = regexp.MustCompile(`(?:^|\s)\+([a-zA-Z0-9]+)`)
	goalRegex     = regexp.MustCompile(`(?:^|\s)(?:~|goal:)(\S+)`)
)

// ParseTitle extracts metadata from a task title using natural syntax
// Syntax: "Task title #tag +priority ~45m" (goal:45m works too)
func ParseTitle(input string) ParsedTask {
	result := ParsedTask{
		Title:  input,
		Errors: []string{},
	}

	// Extract tag (#writing); a task carries a single tag
	tagMatches := tagRegex.FindAllStringSubmatch(input, -1)
	if len(tagMatches) > 0 {
		result.Tag = tagMatches[0][1]
		if len(tagMatches) > 1 {
			result.Errors = append(result.Errors, "Only one tag per task, keeping #"+result.Tag)
		}
		input = tagRegex.ReplaceAllString(input, " ")
	}

	// Extract priority (+high, +3, +medium, etc.)
	priorityMatches := priorityRegex.FindStringSubmatch(input)
	if len(priorityMatches) > 1 {
		if p, ok := models.ParsePriority(priorityMatches[1]); ok {
			result.Priority = p
		} else {
			result.Errors = append(result.Errors, "Invalid priority '"+priorityMatches[1]+"'. Use: low, medium, high, 1, 2, or 3")
		}
		input = priorityRegex.ReplaceAllString(input, " ")
	}

	// Extract focus goal (~45m, goal:1h30m)
	goalMatches := goalRegex.FindStringSubmatch(input)
	if len(goalMatches) > 1 {
		goal, err := ParseFocusGoal(goalMatches[1])
		if err != nil {
			result.Errors = append(result.Errors, "Invalid focus goal '"+goalMatches[1]+"': "+err.Error())
		} else {
			result.FocusGoal = goal
		}
		input = goalRegex.ReplaceAllString(input, " ")
	}

	// Clean up the title (remove extra spaces)
	result.Title = strings.Join(strings.Fields(input), " ")

	return result
}
