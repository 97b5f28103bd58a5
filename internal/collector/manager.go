package collector

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/speedwagon-io/ecomonitor/internal/dashboard"
	"github.com/speedwagon-io/ecomonitor/internal/lib/logger/sl"
	"github.com/speedwagon-io/ecomonitor/internal/model"
	"github.com/speedwagon-io/ecomonitor/internal/publisher"
	"github.com/speedwagon-io/ecomonitor/internal/threshold"
)

// Manager turns one collection round into a classified snapshot, puts it on
// display and hands it to the publishers. Refresh is meant to be scheduled.
type Manager struct {
	log       *slog.Logger
	collector Collector
	rule      threshold.Rule
	publisher publisher.Publisher
	store     *dashboard.Store

	stopOnce sync.Once
}

func NewManager(
	log *slog.Logger,
	collector Collector,
	rule threshold.Rule,
	publisher publisher.Publisher,
	store *dashboard.Store,
) *Manager {
	return &Manager{
		log:       log,
		collector: collector,
		rule:      rule,
		publisher: publisher,
		store:     store,
	}
}

func (m *Manager) Refresh(ctx context.Context) error {
	data, err := m.collector.Collect(ctx)
	if err != nil {
		return fmt.Errorf("failed to collect data from %s: %w", m.collector.Name(), err)
	}

	readings := make([]model.Reading, 0, len(data.Samples))
	for _, sample := range data.Samples {
		reading, err := m.rule.Apply(sample)
		if err != nil {
			m.log.Warn("failed to classify reading",
				slog.String("parameter", sample.Parameter),
				slog.Float64("value", sample.Value),
				slog.Float64("limit", sample.Limit),
				sl.Err(err),
			)
		}
		readings = append(readings, reading)
	}

	snapshot := model.NewSnapshot(data.Source, data.Timestamp, readings, data.Hourly)
	m.store.Set(snapshot)

	if err := m.publisher.Publish(ctx, snapshot); err != nil {
		m.log.Error("failed to publish snapshot",
			slog.String("id", snapshot.ID),
			sl.Err(err),
		)
		return nil
	}

	m.log.Debug("snapshot refreshed",
		slog.String("id", snapshot.ID),
		slog.String("worst", string(snapshot.Worst())),
	)
	return nil
}

// Stop releases the collector and publishers. Safe to call more than once.
func (m *Manager) Stop() {
	m.stopOnce.Do(func() {
		if err := m.collector.Close(); err != nil {
			m.log.Error("failed to close collector", sl.Err(err))
		}
		if err := m.publisher.Close(); err != nil {
			m.log.Error("failed to close publisher", sl.Err(err))
		}
	})
}
