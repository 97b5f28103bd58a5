package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Snapshot is one refresh worth of dashboard data. It is never mutated after
// NewSnapshot returns; a new tick produces a new Snapshot.
type Snapshot struct {
	ID        string        `json:"id"`
	Timestamp time.Time     `json:"timestamp"`
	Source    string        `json:"source"`
	Readings  []Reading     `json:"readings"`
	Hourly    []HourlyPoint `json:"hourly"`
}

func NewSnapshot(source string, timestamp time.Time, readings []Reading, hourly []HourlyPoint) *Snapshot {
	return &Snapshot{
		ID:        uuid.New().String(),
		Timestamp: timestamp.UTC(),
		Source:    source,
		Readings:  readings,
		Hourly:    hourly,
	}
}

// Worst returns the most severe status among the readings.
func (s *Snapshot) Worst() Status {
	worst := StatusUnknown
	for _, r := range s.Readings {
		if r.Status.Severity() > worst.Severity() {
			worst = r.Status
		}
	}
	return worst
}

func (s *Snapshot) Reading(parameter string) (Reading, bool) {
	for _, r := range s.Readings {
		if r.Parameter == parameter {
			return r, true
		}
	}
	return Reading{}, false
}

func (s *Snapshot) ToJSON() ([]byte, error) {
	return json.Marshal(s)
}

func SnapshotFromJSON(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
