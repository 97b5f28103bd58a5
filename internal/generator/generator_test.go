package generator

import (
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGenerator(t *testing.T, params []Parameter) *Generator {
	t.Helper()
	g, err := New(params, WithRand(rand.New(rand.NewSource(42))))
	require.NoError(t, err)
	return g
}

func TestSamplesWithinBounds(t *testing.T) {
	params := DefaultParameters()
	g := newTestGenerator(t, params)

	for i := 0; i < 10000; i++ {
		samples := g.Samples()
		require.Len(t, samples, len(params))
		for j, s := range samples {
			p := params[j]
			assert.Equal(t, p.Code, s.Parameter)
			assert.Equal(t, p.Unit, s.Unit)
			assert.Equal(t, p.Limit, s.Limit)
			assert.GreaterOrEqual(t, s.Value, p.Base)
			assert.Less(t, s.Value, p.Base+p.Range)
		}
	}
}

func TestZeroRangeIsConstant(t *testing.T) {
	g := newTestGenerator(t, []Parameter{{Code: "flat", Base: 12, Range: 0, Limit: 20}})

	for i := 0; i < 100; i++ {
		assert.Equal(t, 12.0, g.Samples()[0].Value)
	}
}

func TestSamplesAreNotRepeated(t *testing.T) {
	g := newTestGenerator(t, DefaultParameters())

	first := g.Samples()
	second := g.Samples()
	assert.NotEqual(t, first[0].Value, second[0].Value)
}

func TestHourly(t *testing.T) {
	params := DefaultParameters()
	g := newTestGenerator(t, params)
	now := time.Date(2026, 2, 12, 14, 23, 0, 0, time.UTC)

	points := g.Hourly(now)
	require.Len(t, points, 24)
	assert.Equal(t, "15:00", points[0].Time)
	assert.Equal(t, "0:00", points[9].Time)
	assert.Equal(t, "14:00", points[23].Time)

	for _, pt := range points {
		require.Len(t, pt.Values, len(params))
		for _, p := range params {
			v := pt.Values[p.Code]
			assert.GreaterOrEqual(t, v, p.Base)
			assert.Less(t, v, p.Base+p.Range)
		}
	}
}

func TestWeekly(t *testing.T) {
	g := newTestGenerator(t, DefaultParameters())

	days := g.Weekly()
	require.Len(t, days, 7)
	assert.Equal(t, "Mon", days[0].Day)
	assert.Equal(t, "Sun", days[6].Day)
	for _, d := range days {
		assert.Equal(t, 3500.0, d.Limit)
		assert.GreaterOrEqual(t, d.Value, 2500.0)
		assert.Less(t, d.Value, 3500.0)
	}
}

func TestSensorHistory(t *testing.T) {
	g := newTestGenerator(t, DefaultParameters())

	points := g.SensorHistory()
	require.Len(t, points, 20)
	assert.Equal(t, "20m", points[0].Time)
	assert.Equal(t, "1m", points[19].Time)
	for _, p := range points {
		assert.GreaterOrEqual(t, p.Value, 30.0)
		assert.Less(t, p.Value, 70.0)
	}
}

func TestNewValidatesParameters(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)

	_, err = New([]Parameter{{Code: "x", Base: 1, Range: 1, Limit: 0}})
	assert.ErrorContains(t, err, "limit must be positive")

	_, err = New([]Parameter{{Code: "x", Base: 1, Range: -1, Limit: 2}})
	assert.ErrorContains(t, err, "range must not be negative")

	_, err = New([]Parameter{{Code: "x", Base: -1, Range: 1, Limit: 2}})
	assert.ErrorContains(t, err, "base must not be negative")

	_, err = New([]Parameter{{Base: 1, Range: 1, Limit: 2}})
	assert.ErrorContains(t, err, "code is required")

	_, err = New([]Parameter{
		{Code: "x", Base: 1, Range: 1, Limit: 2},
		{Code: "x", Base: 1, Range: 1, Limit: 2},
	})
	assert.ErrorContains(t, err, "duplicate")
}

func TestParametersIsACopy(t *testing.T) {
	g := newTestGenerator(t, DefaultParameters())

	params := g.Parameters()
	params[0].Base = 1e6

	assert.Equal(t, 320.0, g.Parameters()[0].Base)
}

func TestConcurrentUse(t *testing.T) {
	g := newTestGenerator(t, DefaultParameters())
	now := time.Now()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				g.Samples()
				g.Hourly(now)
			}
		}()
	}
	wg.Wait()
}
