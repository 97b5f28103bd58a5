package dashboard

import (
	"sync/atomic"
	"time"

	"github.com/speedwagon-io/ecomonitor/internal/model"
)

// Store holds the snapshot currently on display. Each refresh replaces it
// wholesale; readers get an immutable value and never block the writer.
type Store struct {
	latest  atomic.Pointer[model.Snapshot]
	updates atomic.Int64
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Set(snapshot *model.Snapshot) {
	s.latest.Store(snapshot)
	s.updates.Add(1)
}

func (s *Store) Latest() (*model.Snapshot, bool) {
	snap := s.latest.Load()
	return snap, snap != nil
}

func (s *Store) Updates() int64 {
	return s.updates.Load()
}

// Age reports how old the current snapshot is. ok is false before the first Set.
func (s *Store) Age(now time.Time) (age time.Duration, ok bool) {
	snap, ok := s.Latest()
	if !ok {
		return 0, false
	}
	return now.Sub(snap.Timestamp), true
}
