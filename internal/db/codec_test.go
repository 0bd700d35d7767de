package db

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/gauge/internal/models"
)

var fixedNow = time.UnixMilli(1773133200000)

func testHydrator() (Hydrator, *[]string) {
	var discarded []string
	seq := 0
	return Hydrator{
		Now: func() time.Time { return fixedNow },
		NewID: func() string {
			seq++
			return fmt.Sprintf("gen-%d", seq)
		},
		Discard: func(_ int, reason string) { discarded = append(discarded, reason) },
	}, &discarded
}

func ms(v int64) *time.Time {
	t := time.UnixMilli(v)
	return &t
}

func TestDecodeTasksFillsMissingFields(t *testing.T) {
	h, _ := testHydrator()

	tasks := h.DecodeTasks(`[{"title":"Write"}]`)
	require.Len(t, tasks, 1)

	got := tasks[0]
	assert.Equal(t, "gen-1", got.ID)
	assert.Equal(t, "Write", got.Title)
	assert.Equal(t, models.PriorityMedium, got.Priority)
	assert.Equal(t, "General", got.Tag)
	assert.Equal(t, 25, got.FocusGoal)
	assert.False(t, got.Completed)
	assert.Equal(t, int64(0), got.TimeSpent)
	assert.Nil(t, got.StartedAt)
	assert.Nil(t, got.LastWorkedAt)
	assert.Equal(t, fixedNow, got.CreatedAt)
}

func TestDecodeTasksKeepsPresentFields(t *testing.T) {
	h, _ := testHydrator()
	raw := `[{"id":"abc","title":"Read","description":"ch. 3","priority":"High","tag":"",
		"focusGoal":50,"completed":true,"timeSpent":125,"startedAt":null,
		"createdAt":1773000000000,"lastWorkedAt":1773100000000}]`

	tasks := h.DecodeTasks(raw)
	require.Len(t, tasks, 1)

	got := tasks[0]
	assert.Equal(t, "abc", got.ID)
	assert.Equal(t, "ch. 3", got.Description)
	assert.Equal(t, models.PriorityHigh, got.Priority)
	assert.Equal(t, "", got.Tag)
	assert.Equal(t, 50, got.FocusGoal)
	assert.True(t, got.Completed)
	assert.Equal(t, int64(125), got.TimeSpent)
	assert.Equal(t, time.UnixMilli(1773000000000), got.CreatedAt)
	assert.Equal(t, ms(1773100000000), got.LastWorkedAt)
}

func TestDecodeTasksNonArray(t *testing.T) {
	for _, raw := range []string{`{"title":"x"}`, `not json`, `"str"`, `42`, ``} {
		h, discarded := testHydrator()
		assert.Empty(t, h.DecodeTasks(raw), "raw=%q", raw)
		assert.NotEmpty(t, *discarded, "raw=%q", raw)
	}
}

func TestDecodeTasksDropsBadElements(t *testing.T) {
	h, discarded := testHydrator()
	raw := `[1, "x", null, {"title": 5}, {"description":"no title"}, {"title":"  "}, {"title":"ok"}]`

	tasks := h.DecodeTasks(raw)
	require.Len(t, tasks, 1)
	assert.Equal(t, "ok", tasks[0].Title)
	// {"title": 5} reports its bad field and then its missing title
	assert.Len(t, *discarded, 7)
}

func TestDecodeTasksWrongTypedFieldFallsBackToDefault(t *testing.T) {
	h, discarded := testHydrator()
	raw := `[{"id":"a","title":"Keep me","tag":5,"timeSpent":3600},
		{"id":"b","title":"ok","completed":"yes","priority":3,"createdAt":"today"}]`

	tasks := h.DecodeTasks(raw)
	require.Len(t, tasks, 2)

	assert.Equal(t, "Keep me", tasks[0].Title)
	assert.Equal(t, models.DefaultTag, tasks[0].Tag)
	assert.Equal(t, int64(3600), tasks[0].TimeSpent)

	assert.False(t, tasks[1].Completed)
	assert.Equal(t, models.PriorityMedium, tasks[1].Priority)
	assert.Equal(t, fixedNow, tasks[1].CreatedAt)
	assert.Len(t, *discarded, 2)
}

func TestDecodeTasksHugeNumbersAreIgnored(t *testing.T) {
	h, _ := testHydrator()
	raw := `[{"title":"big","timeSpent":1e30,"focusGoal":1e30,"createdAt":1e30,
		"startedAt":-1e30,"lastWorkedAt":1e400}]`

	tasks := h.DecodeTasks(raw)
	require.Len(t, tasks, 1)

	got := tasks[0]
	assert.Equal(t, int64(0), got.TimeSpent)
	assert.Equal(t, models.DefaultFocusGoal, got.FocusGoal)
	assert.Equal(t, fixedNow, got.CreatedAt)
	assert.Nil(t, got.StartedAt)
	assert.Nil(t, got.LastWorkedAt)
}

func TestDecodeTasksSanitizesValues(t *testing.T) {
	h, _ := testHydrator()
	raw := `[{"title":"a","priority":"urgent","focusGoal":0,"timeSpent":-40},
		{"title":"b","priority":"low","focusGoal":12.7,"timeSpent":33.9}]`

	tasks := h.DecodeTasks(raw)
	require.Len(t, tasks, 2)
	assert.Equal(t, models.PriorityMedium, tasks[0].Priority)
	assert.Equal(t, 25, tasks[0].FocusGoal)
	assert.Equal(t, int64(0), tasks[0].TimeSpent)
	assert.Equal(t, models.PriorityLow, tasks[1].Priority)
	assert.Equal(t, 12, tasks[1].FocusGoal)
	assert.Equal(t, int64(33), tasks[1].TimeSpent)
}

func TestDecodeTasksDuplicateIDsGetFreshOne(t *testing.T) {
	h, _ := testHydrator()
	tasks := h.DecodeTasks(`[{"id":"x","title":"a"},{"id":"x","title":"b"}]`)
	require.Len(t, tasks, 2)
	assert.Equal(t, "x", tasks[0].ID)
	assert.Equal(t, "gen-1", tasks[1].ID)
}

func TestDecodeTasksEarliestRunningWins(t *testing.T) {
	h, _ := testHydrator()
	raw := `[{"id":"a","title":"a","startedAt":1773000500000},
		{"id":"b","title":"b","startedAt":1773000100000},
		{"id":"c","title":"c","startedAt":1773000100000}]`

	tasks := h.DecodeTasks(raw)
	require.Len(t, tasks, 3)
	assert.Nil(t, tasks[0].StartedAt)
	assert.Equal(t, ms(1773000100000), tasks[1].StartedAt)
	assert.Nil(t, tasks[2].StartedAt, "tie goes to the first in the array")
}

func TestDecodeHistory(t *testing.T) {
	h, discarded := testHydrator()
	raw := `{"2026-03-10":120,"2026-03-09":90.8,"2026-3-8":5,"yesterday":5,
		"2026-03-07":-1,"2026-03-06":"60","2026-03-05":null}`

	got := h.DecodeHistory(raw)
	assert.Equal(t, models.History{"2026-03-10": 120, "2026-03-09": 90}, got)
	assert.Len(t, *discarded, 5)
}

func TestDecodeHistoryDropsHugeValues(t *testing.T) {
	h, discarded := testHydrator()

	got := h.DecodeHistory(`{"2026-03-09":1e30,"2026-03-10":9007199254740993e3,"2026-03-11":60}`)
	assert.Equal(t, models.History{"2026-03-11": 60}, got)
	for _, secs := range got {
		assert.GreaterOrEqual(t, secs, int64(0))
	}
	assert.Len(t, *discarded, 2)
}

func TestDecodeHistoryWrongShape(t *testing.T) {
	for _, raw := range []string{`[1,2]`, `[]`, `"x"`, `{broken`, `null`, ``} {
		h, _ := testHydrator()
		got := h.DecodeHistory(raw)
		assert.NotNil(t, got, "raw=%q", raw)
		assert.Empty(t, got, "raw=%q", raw)
	}
}

func TestRoundTrip(t *testing.T) {
	tasks := []models.Task{
		{
			ID: "a", Title: "Write", Description: "draft", Priority: models.PriorityHigh,
			Tag: "Work", FocusGoal: 45, TimeSpent: 3600,
			CreatedAt: time.UnixMilli(1773000000000), LastWorkedAt: ms(1773100000000),
		},
		{
			ID: "b", Title: "Read", Priority: models.PriorityLow, Tag: "General",
			FocusGoal: 25, Completed: true, StartedAt: ms(1773120000000),
			CreatedAt: time.UnixMilli(1773000001000),
		},
	}
	history := models.History{"2026-03-09": 1500, "2026-03-10": 61}

	rawTasks, err := EncodeTasks(tasks)
	require.NoError(t, err)
	rawHistory, err := EncodeHistory(history)
	require.NoError(t, err)

	h, discarded := testHydrator()
	assert.Equal(t, tasks, h.DecodeTasks(rawTasks))
	assert.Equal(t, history, h.DecodeHistory(rawHistory))
	assert.Empty(t, *discarded)
}

func TestEncodeUsesEpochMillis(t *testing.T) {
	raw, err := EncodeTasks([]models.Task{{
		ID: "a", Title: "x", Priority: models.PriorityMedium, Tag: "General", FocusGoal: 25,
		CreatedAt: time.UnixMilli(1773000000000),
	}})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"a","title":"x","description":"","priority":"Medium","tag":"General",
		"focusGoal":25,"completed":false,"timeSpent":0,"startedAt":null,
		"createdAt":1773000000000,"lastWorkedAt":null}]`, raw)
}
