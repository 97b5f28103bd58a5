package publisher

import (
	"context"
	"errors"
	"log/slog"

	"github.com/speedwagon-io/ecomonitor/internal/model"
)

type Publisher interface {
	Publish(ctx context.Context, snapshot *model.Snapshot) error
	Health(ctx context.Context) error
	Close() error
}

// LogPublisher logs snapshots instead of delivering them anywhere (dry-run).
type LogPublisher struct {
	log *slog.Logger
}

func NewLogPublisher(log *slog.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

func (p *LogPublisher) Publish(ctx context.Context, snapshot *model.Snapshot) error {
	attrs := []any{
		slog.String("id", snapshot.ID),
		slog.Time("timestamp", snapshot.Timestamp),
		slog.String("worst", string(snapshot.Worst())),
	}
	for _, r := range snapshot.Readings {
		attrs = append(attrs, slog.Group(r.Parameter,
			slog.Float64("value", r.Value),
			slog.Float64("pct", r.Percentage),
			slog.String("status", string(r.Status)),
		))
	}

	p.log.Info("SNAPSHOT", attrs...)
	return nil
}

func (p *LogPublisher) Health(ctx context.Context) error {
	return nil
}

func (p *LogPublisher) Close() error {
	return nil
}

// Multi publishes to every wrapped publisher, even when one of them fails.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, snapshot *model.Snapshot) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, snapshot); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m Multi) Health(ctx context.Context) error {
	var errs []error
	for _, p := range m {
		if err := p.Health(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m Multi) Close() error {
	var errs []error
	for _, p := range m {
		if err := p.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
