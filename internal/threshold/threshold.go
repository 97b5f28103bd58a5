// Package threshold classifies a reading against its regulatory limit.
//
// A single rule is used everywhere a status is derived: the share of the limit
// is compared against two exclusive cut points. Values at a cut point fall on
// the less severe side.
package threshold

import (
	"errors"
	"fmt"
	"math"

	"github.com/speedwagon-io/ecomonitor/internal/model"
)

const (
	DefaultWarningAbove  = 80.0
	DefaultExceededAbove = 100.0
)

var (
	ErrInvalidLimit = errors.New("limit must be a positive number")
	ErrInvalidValue = errors.New("value must be a number")
	ErrInvalidRule  = errors.New("invalid threshold rule")
)

type Rule struct {
	WarningAbove  float64 `yaml:"warning_above" env-default:"80"`
	ExceededAbove float64 `yaml:"exceeded_above" env-default:"100"`
}

func DefaultRule() Rule {
	return Rule{
		WarningAbove:  DefaultWarningAbove,
		ExceededAbove: DefaultExceededAbove,
	}
}

func (r Rule) Validate() error {
	if math.IsNaN(r.WarningAbove) || math.IsNaN(r.ExceededAbove) {
		return fmt.Errorf("%w: cut points must be numbers", ErrInvalidRule)
	}
	if r.WarningAbove <= 0 {
		return fmt.Errorf("%w: warning_above must be positive, got %v", ErrInvalidRule, r.WarningAbove)
	}
	if r.ExceededAbove <= r.WarningAbove {
		return fmt.Errorf("%w: exceeded_above (%v) must be greater than warning_above (%v)",
			ErrInvalidRule, r.ExceededAbove, r.WarningAbove)
	}
	return nil
}

// Percentage returns value as a percentage of limit.
func Percentage(value, limit float64) (float64, error) {
	if math.IsNaN(limit) || math.IsInf(limit, 0) || limit <= 0 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidLimit, limit)
	}
	if math.IsNaN(value) {
		return 0, ErrInvalidValue
	}
	return value / limit * 100, nil
}

// Tier buckets an already computed percentage.
func (r Rule) Tier(percentage float64) model.Status {
	switch {
	case percentage > r.ExceededAbove:
		return model.StatusExceeded
	case percentage > r.WarningAbove:
		return model.StatusWarning
	default:
		return model.StatusNormal
	}
}

func (r Rule) Classify(value, limit float64) (model.Status, error) {
	_, status, err := r.Evaluate(value, limit)
	return status, err
}

func (r Rule) Evaluate(value, limit float64) (float64, model.Status, error) {
	pct, err := Percentage(value, limit)
	if err != nil {
		return 0, model.StatusUnknown, err
	}
	return pct, r.Tier(pct), nil
}

// Apply classifies a generated sample into a reading. On malformed input the
// reading is returned with StatusUnknown together with the error.
func (r Rule) Apply(s model.Sample) (model.Reading, error) {
	reading := model.Reading{
		Parameter: s.Parameter,
		Label:     s.Label,
		Value:     s.Value,
		Unit:      s.Unit,
		Limit:     s.Limit,
		Status:    model.StatusUnknown,
	}

	pct, status, err := r.Evaluate(s.Value, s.Limit)
	if err != nil {
		return reading, fmt.Errorf("failed to classify %s: %w", s.Parameter, err)
	}

	reading.Percentage = pct
	reading.Status = status
	return reading, nil
}
