package session

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/balkashynov/gauge/internal/models"
)

// Scheduler calls fn every interval until the returned stop func is called
type Scheduler func(interval time.Duration, fn func()) (stop func())

// TickerScheduler runs fn from a goroutine driven by a time.Ticker
func TickerScheduler(interval time.Duration, fn func()) func() {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				fn()
			}
		}
	}()
	return cancel
}

// Ticking reports whether the ledger timer is armed
func (c *Controller) Ticking() bool {
	c.mustBeReady()
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stopTick != nil
}

// Tick credits one second to today's ledger entry if a task is running.
// It reports whether the ledger changed.
func (c *Controller) Tick() (bool, error) {
	c.mustBeReady()
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tickLocked()
}

func (c *Controller) tickLocked() (bool, error) {
	if c.activeID == "" {
		return false, nil
	}
	key := models.DateKey(c.now())
	c.history.Add(key, int64(TickInterval/time.Second))
	return true, c.saveHistory()
}

// tickFrom is the timer callback; ticks from a cancelled timer are dropped
func (c *Controller) tickFrom(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.tickGen || c.stopTick == nil {
		return
	}
	if _, err := c.tickLocked(); err != nil {
		c.log.Warn("ledger tick not persisted", zap.Error(err))
	}
}

func (c *Controller) armTicker() {
	if c.stopTick != nil {
		return
	}
	c.tickGen++
	gen := c.tickGen
	c.stopTick = c.schedule(TickInterval, func() { c.tickFrom(gen) })
}

func (c *Controller) disarmTicker() {
	if c.stopTick == nil {
		return
	}
	c.stopTick()
	c.stopTick = nil
	c.tickGen++
}
