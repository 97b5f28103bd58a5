package publisher

import (
	"context"
	"log/slog"
	"sync"

	"github.com/speedwagon-io/ecomonitor/internal/model"
)

// Hub fans snapshots out to in-process subscribers, such as open event
// streams. Delivery never blocks: a subscriber whose buffer is full misses
// that snapshot.
type Hub struct {
	log    *slog.Logger
	buffer int

	mu     sync.RWMutex
	subs   map[chan *model.Snapshot]struct{}
	closed bool
}

func NewHub(log *slog.Logger, buffer int) *Hub {
	if buffer < 1 {
		buffer = 1
	}
	return &Hub{
		log:    log,
		buffer: buffer,
		subs:   make(map[chan *model.Snapshot]struct{}),
	}
}

// Subscribe registers a subscriber. The returned cancel func unregisters it
// and closes the channel; it is safe to call more than once.
func (h *Hub) Subscribe() (<-chan *model.Snapshot, func()) {
	ch := make(chan *model.Snapshot, h.buffer)

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if _, ok := h.subs[ch]; ok {
				delete(h.subs, ch)
				close(ch)
			}
		})
	}
}

func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

func (h *Hub) Publish(_ context.Context, snapshot *model.Snapshot) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	dropped := 0
	for ch := range h.subs {
		select {
		case ch <- snapshot:
		default:
			dropped++
		}
	}

	if dropped > 0 {
		h.log.Debug("slow subscribers skipped snapshot",
			slog.String("id", snapshot.ID),
			slog.Int("dropped", dropped),
		)
	}
	return nil
}

func (h *Hub) Health(_ context.Context) error {
	return nil
}

func (h *Hub) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil
	}
	h.closed = true
	for ch := range h.subs {
		delete(h.subs, ch)
		close(ch)
	}
	return nil
}
