package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/speedwagon-io/ecomonitor/internal/lib/logger/sl"
)

var (
	// ErrStop is returned by a TickFunc to end its own task.
	ErrStop = errors.New("stop task")

	ErrStopped         = errors.New("scheduler is stopped")
	ErrDuplicateTask   = errors.New("task already registered")
	ErrInvalidInterval = errors.New("interval must be positive")
)

type TickFunc func(ctx context.Context) error

type taskOptions struct {
	immediate bool
}

type TaskOption func(o *taskOptions)

// Immediately runs the first tick as soon as the task starts instead of
// after the first interval.
func Immediately() TaskOption {
	return func(o *taskOptions) {
		o.immediate = true
	}
}

// Task is a repeating tick owned by a Scheduler.
type Task struct {
	name     string
	interval time.Duration
	fn       TickFunc
	log      *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
	ticks  int64
	mu     sync.Mutex
}

func (t *Task) Name() string {
	return t.name
}

// Done is closed once the task goroutine has exited.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

func (t *Task) Ticks() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ticks
}

// Stop cancels the task and waits until its goroutine has returned. No tick
// starts after Stop returns.
func (t *Task) Stop() {
	t.cancel()
	<-t.done
}

func (t *Task) run(opts taskOptions) {
	defer close(t.done)

	if opts.immediate {
		if !t.tick() {
			return
		}
	}

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-t.ctx.Done():
			return
		case <-ticker.C:
			if !t.tick() {
				return
			}
		}
	}
}

func (t *Task) tick() bool {
	// A ready ticker and a cancelled context may race in select.
	if t.ctx.Err() != nil {
		return false
	}

	err := t.fn(t.ctx)

	t.mu.Lock()
	t.ticks++
	t.mu.Unlock()

	switch {
	case err == nil:
		return true
	case errors.Is(err, ErrStop):
		t.log.Debug("task finished", slog.String("task", t.name))
		return false
	default:
		t.log.Error("task tick failed", slog.String("task", t.name), sl.Err(err))
		return true
	}
}

type Scheduler struct {
	log *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	tasks   map[string]*Task
	stopped bool
}

func New(log *slog.Logger) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		log:    log,
		ctx:    ctx,
		cancel: cancel,
		tasks:  make(map[string]*Task),
	}
}

// Every starts fn on its own goroutine, invoked once per interval until the
// task or the scheduler is stopped, or fn returns ErrStop.
func (s *Scheduler) Every(name string, interval time.Duration, fn TickFunc, opts ...TaskOption) (*Task, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("task %s: %w", name, ErrInvalidInterval)
	}

	var o taskOptions
	for _, opt := range opts {
		opt(&o)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return nil, fmt.Errorf("task %s: %w", name, ErrStopped)
	}
	if existing, ok := s.tasks[name]; ok {
		select {
		case <-existing.done:
		default:
			return nil, fmt.Errorf("task %s: %w", name, ErrDuplicateTask)
		}
	}

	ctx, cancel := context.WithCancel(s.ctx)
	task := &Task{
		name:     name,
		interval: interval,
		fn:       fn,
		log:      s.log,
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	s.tasks[name] = task

	s.log.Debug("starting task",
		slog.String("task", name),
		slog.Duration("interval", interval),
	)

	go task.run(o)

	return task, nil
}

func (s *Scheduler) Task(name string) (*Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[name]
	return t, ok
}

// Stop cancels every task and waits for all of them to exit. It is safe to
// call more than once.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	s.stopped = true
	tasks := make([]*Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		tasks = append(tasks, t)
	}
	s.mu.Unlock()

	s.cancel()
	for _, t := range tasks {
		<-t.done
	}

	s.log.Debug("scheduler stopped", slog.Int("tasks", len(tasks)))
}
