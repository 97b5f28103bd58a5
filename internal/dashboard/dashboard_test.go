package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/speedwagon-io/ecomonitor/internal/lib/logger/sl"
	"github.com/speedwagon-io/ecomonitor/internal/model"
	"github.com/speedwagon-io/ecomonitor/internal/scheduler"
)

func TestStore(t *testing.T) {
	s := NewStore()

	_, ok := s.Latest()
	assert.False(t, ok)
	_, ok = s.Age(time.Now())
	assert.False(t, ok)

	ts := time.Date(2026, 2, 12, 14, 0, 0, 0, time.UTC)
	first := model.NewSnapshot("mock", ts, nil, nil)
	s.Set(first)

	got, ok := s.Latest()
	require.True(t, ok)
	assert.Same(t, first, got)

	second := model.NewSnapshot("mock", ts.Add(5*time.Second), nil, nil)
	s.Set(second)

	got, _ = s.Latest()
	assert.Same(t, second, got)
	assert.Equal(t, int64(2), s.Updates())

	age, ok := s.Age(ts.Add(7 * time.Second))
	require.True(t, ok)
	assert.Equal(t, 2*time.Second, age)
}

func TestClockTick(t *testing.T) {
	current := time.Date(2026, 2, 12, 14, 0, 0, 0, time.UTC)
	c := newClock(func() time.Time { return current })
	assert.Equal(t, current, c.Now())

	current = current.Add(time.Second)
	assert.NotEqual(t, current, c.Now())

	require.NoError(t, c.Tick(context.Background()))
	assert.Equal(t, current, c.Now())
}

func TestProgressAdvance(t *testing.T) {
	p := NewProgress()
	ctx := context.Background()

	state := p.State()
	assert.Equal(t, 0, state.Percent)
	assert.Equal(t, "Initializing system", state.Message)
	assert.False(t, state.Done)

	for i := 1; i < 50; i++ {
		require.NoError(t, p.Advance(ctx), "tick %d", i)
		assert.Equal(t, i*2, p.State().Percent)
		assert.False(t, p.Finished())
	}

	assert.ErrorIs(t, p.Advance(ctx), scheduler.ErrStop)
	assert.Equal(t, 100, p.State().Percent)
	assert.True(t, p.State().Done)
	assert.True(t, p.Finished())

	assert.ErrorIs(t, p.Advance(ctx), scheduler.ErrStop)
	assert.Equal(t, 100, p.State().Percent)
}

func TestProgressMessages(t *testing.T) {
	p := NewProgress()
	ctx := context.Background()

	for i := 1; i < len(startupMessages)-1; i++ {
		require.NoError(t, p.NextMessage(ctx))
		assert.Equal(t, startupMessages[i], p.State().Message)
	}

	assert.ErrorIs(t, p.NextMessage(ctx), scheduler.ErrStop)
	assert.Equal(t, "Ready", p.State().Message)

	assert.ErrorIs(t, p.NextMessage(ctx), scheduler.ErrStop)
	assert.Equal(t, "Ready", p.State().Message)
}

func TestProgressUnderScheduler(t *testing.T) {
	s := scheduler.New(sl.Discard())
	defer s.Stop()

	p := NewProgress()
	task, err := s.Every("startup-progress", time.Millisecond, p.Advance)
	require.NoError(t, err)

	select {
	case <-p.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("progress did not complete")
	}

	select {
	case <-task.Done():
	case <-time.After(time.Second):
		t.Fatal("progress task did not stop itself")
	}
	assert.Equal(t, int64(50), task.Ticks())
}
