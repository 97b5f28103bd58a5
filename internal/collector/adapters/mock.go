package adapters

import (
	"context"
	"log/slog"
	"time"

	"github.com/speedwagon-io/ecomonitor/internal/collector"
	"github.com/speedwagon-io/ecomonitor/internal/generator"
)

type MockAdapter struct {
	log *slog.Logger
	gen *generator.Generator
	now func() time.Time
}

func NewMockAdapter(log *slog.Logger, gen *generator.Generator) *MockAdapter {
	return &MockAdapter{
		log: log,
		gen: gen,
		now: time.Now,
	}
}

func (a *MockAdapter) Name() string {
	return "mock"
}

func (a *MockAdapter) Close() error {
	return nil
}

func (a *MockAdapter) Collect(ctx context.Context) (*collector.CollectedData, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := a.now()
	data := &collector.CollectedData{
		Source:    a.Name(),
		Timestamp: now,
		Samples:   a.gen.Samples(),
		Hourly:    a.gen.Hourly(now),
	}

	a.log.Debug("mock data generated",
		slog.Int("samples", len(data.Samples)),
		slog.Int("hourly_points", len(data.Hourly)),
	)

	return data, nil
}
