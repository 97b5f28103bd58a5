package collector

import (
	"context"
	"time"

	"github.com/speedwagon-io/ecomonitor/internal/model"
)

// CollectedData is one round of raw values from a source, not yet classified.
type CollectedData struct {
	Source    string
	Timestamp time.Time
	Samples   []model.Sample
	Hourly    []model.HourlyPoint
}

type Collector interface {
	Collect(ctx context.Context) (*CollectedData, error)
	Name() string
	Close() error
}
