package health

import (
	"context"
	"fmt"
	"time"
)

type PublisherHealthChecker struct {
	healthFunc func(ctx context.Context) error
}

func NewPublisherHealthChecker(healthFunc func(ctx context.Context) error) *PublisherHealthChecker {
	return &PublisherHealthChecker{healthFunc: healthFunc}
}

func (c *PublisherHealthChecker) Name() string {
	return "publisher"
}

func (c *PublisherHealthChecker) Check(ctx context.Context) (Status, string) {
	if err := c.healthFunc(ctx); err != nil {
		return StatusDegraded, err.Error()
	}
	return StatusHealthy, ""
}

// SnapshotHealthChecker watches how long ago the displayed snapshot was
// produced. A refresh loop that stopped ticking shows up here.
type SnapshotHealthChecker struct {
	ageFunc    func(now time.Time) (time.Duration, bool)
	staleAfter time.Duration
	now        func() time.Time
}

func NewSnapshotHealthChecker(ageFunc func(now time.Time) (time.Duration, bool), staleAfter time.Duration) *SnapshotHealthChecker {
	return &SnapshotHealthChecker{
		ageFunc:    ageFunc,
		staleAfter: staleAfter,
		now:        time.Now,
	}
}

func (c *SnapshotHealthChecker) Name() string {
	return "snapshot"
}

func (c *SnapshotHealthChecker) Check(_ context.Context) (Status, string) {
	age, ok := c.ageFunc(c.now())
	if !ok {
		return StatusDegraded, "no snapshot yet"
	}

	if age > c.staleAfter {
		return StatusUnhealthy, fmt.Sprintf("snapshot is %s old", age.Round(time.Second))
	}

	return StatusHealthy, ""
}

type StartupHealthChecker struct {
	finishedFunc func() bool
}

func NewStartupHealthChecker(finishedFunc func() bool) *StartupHealthChecker {
	return &StartupHealthChecker{finishedFunc: finishedFunc}
}

func (c *StartupHealthChecker) Name() string {
	return "startup"
}

func (c *StartupHealthChecker) Check(_ context.Context) (Status, string) {
	if !c.finishedFunc() {
		return StatusDegraded, "starting up"
	}
	return StatusHealthy, ""
}
