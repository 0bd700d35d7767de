package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/gauge/internal/models"
)

func TestParseTitleAllTokens(t *testing.T) {
	got := ParseTitle("Write quarterly report #writing +high ~50m")

	assert.Equal(t, "Write quarterly report", got.Title)
	assert.Equal(t, "writing", got.Tag)
	assert.Equal(t, models.PriorityHigh, got.Priority)
	assert.Equal(t, 50, got.FocusGoal)
	assert.Empty(t, got.Errors)
}

func TestParseTitlePlain(t *testing.T) {
	got := ParseTitle("  Call   the bank  ")

	assert.Equal(t, "Call the bank", got.Title)
	assert.Empty(t, got.Tag)
	assert.Empty(t, got.Priority)
	assert.Zero(t, got.FocusGoal)
}

func TestParseTitleKeepsInlineSymbols(t *testing.T) {
	got := ParseTitle("Fix C# build for v2+ goal:1h30m")

	assert.Equal(t, "Fix C# build for v2+", got.Title)
	assert.Equal(t, 90, got.FocusGoal)
}

func TestParseTitleErrors(t *testing.T) {
	got := ParseTitle("Plan #a #b +urgent ~forever")

	assert.Equal(t, "Plan", got.Title)
	assert.Equal(t, "a", got.Tag)
	require.Len(t, got.Errors, 3)
	assert.Empty(t, got.Priority)
	assert.Zero(t, got.FocusGoal)
}

func TestParseFocusGoal(t *testing.T) {
	valid := map[string]int{
		"45":          45,
		"45m":         45,
		"45min":       45,
		"1h":          60,
		"1h30m":       90,
		"90 minutes":  90,
		"2 hours":     120,
		" 25 MIN ":    25,
		"12h":         720,
	}
	for in, want := range valid {
		got, err := ParseFocusGoal(in)
		require.NoError(t, err, "input=%q", in)
		assert.Equal(t, want, got, "input=%q", in)
	}

	for _, in := range []string{"", "0", "-5", "abc", "13h", "h", "m", "1d"} {
		_, err := ParseFocusGoal(in)
		assert.Error(t, err, "input=%q", in)
	}
}

func TestFormatFocusGoal(t *testing.T) {
	assert.Equal(t, "25m", FormatFocusGoal(25))
	assert.Equal(t, "1h", FormatFocusGoal(60))
	assert.Equal(t, "1h30m", FormatFocusGoal(90))
}
