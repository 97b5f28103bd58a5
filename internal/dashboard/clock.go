package dashboard

import (
	"context"
	"sync"
	"time"
)

type Clock struct {
	now func() time.Time

	mu      sync.RWMutex
	current time.Time
}

func NewClock() *Clock {
	return newClock(time.Now)
}

func newClock(now func() time.Time) *Clock {
	return &Clock{now: now, current: now()}
}

// Tick is a scheduler.TickFunc.
func (c *Clock) Tick(_ context.Context) error {
	t := c.now()

	c.mu.Lock()
	c.current = t
	c.mu.Unlock()

	return nil
}

func (c *Clock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}
