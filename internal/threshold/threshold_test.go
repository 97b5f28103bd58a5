package threshold

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/speedwagon-io/ecomonitor/internal/model"
)

func TestClassifyExamples(t *testing.T) {
	rule := DefaultRule()

	cases := []struct {
		name     string
		value    float64
		limit    float64
		wantPct  float64
		expected model.Status
	}{
		{"co2 above warning", 352, 400, 88, model.StatusWarning},
		{"so2 at lower band", 42, 70, 60, model.StatusNormal},
		{"exactly at warning cut", 40, 50, 80, model.StatusNormal},
		{"just over warning cut", 40.0001, 50, 80.0002, model.StatusWarning},
		{"exactly at limit", 45, 45, 100, model.StatusWarning},
		{"nox over limit", 65, 50, 130, model.StatusExceeded},
		{"zero value", 0, 50, 0, model.StatusNormal},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pct, status, err := rule.Evaluate(tc.value, tc.limit)
			require.NoError(t, err)
			assert.InDelta(t, tc.wantPct, pct, 1e-9)
			assert.Equal(t, tc.expected, status)
		})
	}
}

func TestClassifyMonotonic(t *testing.T) {
	rule := DefaultRule()
	limits := []float64{0.5, 45, 70, 400, 3500}

	for _, limit := range limits {
		prevPct := -1.0
		prevSeverity := 0
		for step := 0; step <= 3000; step++ {
			value := limit * float64(step) / 1000
			pct, status, err := rule.Evaluate(value, limit)
			require.NoError(t, err)

			assert.GreaterOrEqual(t, pct, prevPct, "limit=%v value=%v", limit, value)
			assert.GreaterOrEqual(t, status.Severity(), prevSeverity, "limit=%v value=%v", limit, value)

			prevPct = pct
			prevSeverity = status.Severity()
		}
		assert.Equal(t, model.StatusExceeded.Severity(), prevSeverity)
	}
}

func TestClassifyInvalidInput(t *testing.T) {
	rule := DefaultRule()

	for _, limit := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		status, err := rule.Classify(10, limit)
		assert.ErrorIs(t, err, ErrInvalidLimit, "limit=%v", limit)
		assert.Equal(t, model.StatusUnknown, status)
	}

	_, err := rule.Classify(math.NaN(), 10)
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestRuleValidate(t *testing.T) {
	assert.NoError(t, DefaultRule().Validate())
	assert.NoError(t, Rule{WarningAbove: 60, ExceededAbove: 90}.Validate())

	for _, r := range []Rule{
		{WarningAbove: 0, ExceededAbove: 100},
		{WarningAbove: 80, ExceededAbove: 80},
		{WarningAbove: 90, ExceededAbove: 60},
		{WarningAbove: math.NaN(), ExceededAbove: 100},
	} {
		assert.ErrorIs(t, r.Validate(), ErrInvalidRule, "rule=%+v", r)
	}
}

func TestCustomRule(t *testing.T) {
	rule := Rule{WarningAbove: 60, ExceededAbove: 80}

	assert.Equal(t, model.StatusNormal, rule.Tier(60))
	assert.Equal(t, model.StatusWarning, rule.Tier(61))
	assert.Equal(t, model.StatusWarning, rule.Tier(80))
	assert.Equal(t, model.StatusExceeded, rule.Tier(81))
}

func TestApply(t *testing.T) {
	rule := DefaultRule()

	reading, err := rule.Apply(model.Sample{Parameter: "co2", Label: "CO₂", Value: 352, Unit: "mg/m³", Limit: 400})
	require.NoError(t, err)
	assert.Equal(t, "co2", reading.Parameter)
	assert.Equal(t, "CO₂", reading.Label)
	assert.InDelta(t, 88, reading.Percentage, 1e-9)
	assert.Equal(t, model.StatusWarning, reading.Status)

	reading, err = rule.Apply(model.Sample{Parameter: "broken", Value: 1, Limit: 0})
	assert.ErrorIs(t, err, ErrInvalidLimit)
	assert.Equal(t, model.StatusUnknown, reading.Status)
	assert.Equal(t, 1.0, reading.Value)
}
