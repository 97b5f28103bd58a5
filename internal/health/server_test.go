package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/speedwagon-io/ecomonitor/internal/lib/logger/sl"
)

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealthAggregation(t *testing.T) {
	tests := []struct {
		name       string
		checkers   []HealthChecker
		wantStatus Status
		wantCode   int
	}{
		{
			name:       "no checkers",
			wantStatus: StatusHealthy,
			wantCode:   http.StatusOK,
		},
		{
			name: "degraded publisher",
			checkers: []HealthChecker{
				NewPublisherHealthChecker(func(context.Context) error { return errors.New("nats disconnected") }),
				NewStartupHealthChecker(func() bool { return true }),
			},
			wantStatus: StatusDegraded,
			wantCode:   http.StatusOK,
		},
		{
			name: "stale snapshot",
			checkers: []HealthChecker{
				NewPublisherHealthChecker(func(context.Context) error { return errors.New("nats disconnected") }),
				NewSnapshotHealthChecker(func(time.Time) (time.Duration, bool) { return time.Minute, true }, 30*time.Second),
			},
			wantStatus: StatusUnhealthy,
			wantCode:   http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewServer(sl.Discard(), ":0")
			for _, c := range tt.checkers {
				s.AddChecker(c)
			}

			rec := get(t, s.Handler(), "/health")
			assert.Equal(t, tt.wantCode, rec.Code)

			var resp HealthResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantStatus, resp.Status)
			assert.Len(t, resp.Components, len(tt.checkers))
		})
	}
}

func TestReadyGate(t *testing.T) {
	s := NewServer(sl.Discard(), ":0")
	assert.Equal(t, http.StatusOK, get(t, s.Handler(), "/ready").Code)

	var ready atomic.Bool
	s.SetReadiness(ready.Load)

	rec := get(t, s.Handler(), "/ready")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "NOT READY", rec.Body.String())

	ready.Store(true)
	assert.Equal(t, http.StatusOK, get(t, s.Handler(), "/ready").Code)

	assert.Equal(t, http.StatusOK, get(t, s.Handler(), "/live").Code)
}

func TestSnapshotHealthChecker(t *testing.T) {
	var (
		age time.Duration
		ok  bool
	)
	c := NewSnapshotHealthChecker(func(time.Time) (time.Duration, bool) { return age, ok }, 30*time.Second)

	status, msg := c.Check(context.Background())
	assert.Equal(t, StatusDegraded, status)
	assert.Equal(t, "no snapshot yet", msg)

	age, ok = 5*time.Second, true
	status, _ = c.Check(context.Background())
	assert.Equal(t, StatusHealthy, status)

	age = 45 * time.Second
	status, msg = c.Check(context.Background())
	assert.Equal(t, StatusUnhealthy, status)
	assert.Equal(t, "snapshot is 45s old", msg)
}

func TestStartupHealthChecker(t *testing.T) {
	done := false
	c := NewStartupHealthChecker(func() bool { return done })

	status, _ := c.Check(context.Background())
	assert.Equal(t, StatusDegraded, status)

	done = true
	status, _ = c.Check(context.Background())
	assert.Equal(t, StatusHealthy, status)
}
