package dashboard

import (
	"context"
	"sync"

	"github.com/speedwagon-io/ecomonitor/internal/scheduler"
)

const (
	progressStep = 2
	progressMax  = 100
)

var startupMessages = []string{
	"Initializing system",
	"Connecting sensors",
	"Loading monitoring data",
	"Synchronizing equipment",
	"Checking connection",
	"Ready",
}

type ProgressState struct {
	Percent int    `json:"percent"`
	Message string `json:"message"`
	Done    bool   `json:"done"`
}

// Progress simulates the startup loading sequence. The percentage and the
// status message advance on separate ticks and both stop at their last value.
type Progress struct {
	mu       sync.RWMutex
	percent  int
	msgIndex int
	messages []string
	done     chan struct{}
}

func NewProgress() *Progress {
	return &Progress{
		messages: startupMessages,
		done:     make(chan struct{}),
	}
}

// Advance is a scheduler.TickFunc. It returns scheduler.ErrStop once the
// percentage has reached 100.
func (p *Progress) Advance(_ context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.percent >= progressMax {
		return scheduler.ErrStop
	}

	p.percent += progressStep
	if p.percent >= progressMax {
		p.percent = progressMax
		close(p.done)
		return scheduler.ErrStop
	}
	return nil
}

// NextMessage is a scheduler.TickFunc. It returns scheduler.ErrStop on the
// last message.
func (p *Progress) NextMessage(_ context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.msgIndex < len(p.messages)-1 {
		p.msgIndex++
	}
	if p.msgIndex == len(p.messages)-1 {
		return scheduler.ErrStop
	}
	return nil
}

func (p *Progress) State() ProgressState {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return ProgressState{
		Percent: p.percent,
		Message: p.messages[p.msgIndex],
		Done:    p.percent >= progressMax,
	}
}

func (p *Progress) Finished() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

// Done is closed when the percentage reaches 100.
func (p *Progress) Done() <-chan struct{} {
	return p.done
}
