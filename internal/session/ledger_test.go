package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/gauge/internal/models"
)

func TestTickWhileRunningCreditsToday(t *testing.T) {
	h := newHarness(t, nil, nil)
	a := h.add(t, "A")
	require.NoError(t, h.ctrl.Start(a.ID))

	const n = 37
	for i := 0; i < n; i++ {
		h.clock.Advance(time.Second)
		h.timer.fire()
	}

	day := models.DateKey(h.clock.Now())
	assert.Equal(t, int64(n), h.ctrl.Snapshot().History[day])
	assert.Equal(t, int64(n), h.store.history[day])
	assert.Equal(t, n, h.store.histWrites)
}

func TestTickWhileIdleNeverMutates(t *testing.T) {
	h := newHarness(t, nil, models.History{"2026-03-09": 5})
	h.add(t, "A")

	changed, err := h.ctrl.Tick()
	require.NoError(t, err)

	assert.False(t, changed)
	assert.Equal(t, models.History{"2026-03-09": 5}, h.ctrl.Snapshot().History)
	assert.Equal(t, 0, h.store.histWrites)
	assert.Equal(t, 0, h.timer.armed)
}

func TestTickAcrossMidnightSplitsDays(t *testing.T) {
	h := newHarness(t, nil, nil)
	a := h.add(t, "A")
	h.clock.t = time.Date(2026, 3, 10, 23, 59, 58, 0, time.UTC)
	require.NoError(t, h.ctrl.Start(a.ID))

	for i := 0; i < 4; i++ {
		h.clock.Advance(time.Second)
		h.timer.fire()
	}

	hist := h.ctrl.Snapshot().History
	assert.Equal(t, int64(1), hist["2026-03-10"])
	assert.Equal(t, int64(3), hist["2026-03-11"])
}

func TestTickUsesLocalCalendarDay(t *testing.T) {
	h := newHarness(t, nil, nil)
	a := h.add(t, "A")
	tokyo := time.FixedZone("JST", 9*3600)
	h.clock.t = time.Date(2026, 3, 11, 1, 0, 0, 0, tokyo)
	require.NoError(t, h.ctrl.Start(a.ID))

	_, err := h.ctrl.Tick()
	require.NoError(t, err)

	assert.Equal(t, int64(1), h.ctrl.Snapshot().History["2026-03-11"])
}

func TestStaleTimerCallbackIsDropped(t *testing.T) {
	h := newHarness(t, nil, nil)
	a := h.add(t, "A")
	require.NoError(t, h.ctrl.Start(a.ID))
	stale := h.timer.fire

	require.NoError(t, h.ctrl.Pause())
	require.NoError(t, h.ctrl.Start(a.ID))
	stale()

	assert.Empty(t, h.ctrl.Snapshot().History)
	h.timer.fire()
	assert.Equal(t, int64(1), h.ctrl.Snapshot().History[models.DateKey(h.clock.Now())])
}

func TestTimerLifecycleFollowsTransitions(t *testing.T) {
	h := newHarness(t, nil, nil)
	a := h.add(t, "A")
	b := h.add(t, "B")

	require.NoError(t, h.ctrl.Start(a.ID))
	assert.True(t, h.ctrl.Ticking())

	require.NoError(t, h.ctrl.ToggleComplete(a.ID))
	assert.False(t, h.ctrl.Ticking())

	require.NoError(t, h.ctrl.Start(b.ID))
	assert.True(t, h.ctrl.Ticking())

	require.NoError(t, h.ctrl.Remove(b.ID))
	assert.False(t, h.ctrl.Ticking())

	assert.Equal(t, h.timer.armed, h.timer.stopped)
}

func TestTickerSchedulerStops(t *testing.T) {
	fired := make(chan struct{}, 16)
	stop := TickerScheduler(5*time.Millisecond, func() { fired <- struct{}{} })

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("scheduler never fired")
	}
	stop()
}

func TestCloseStopsTimerButKeepsSession(t *testing.T) {
	h := newHarness(t, nil, nil)
	a := h.add(t, "A")
	require.NoError(t, h.ctrl.Start(a.ID))

	h.ctrl.Close()

	assert.False(t, h.ctrl.Ticking())
	assert.Equal(t, a.ID, h.ctrl.Snapshot().ActiveTaskID)
}
