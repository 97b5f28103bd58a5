package generator

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/speedwagon-io/ecomonitor/internal/model"
)

const (
	hourlyPoints = 24

	weeklyBase  = 2500
	weeklyRange = 1000
	weeklyLimit = 3500

	historyPoints = 20
	historyBase   = 30
	historyRange  = 40
)

var weekdays = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// Parameter describes one tracked pollutant. Generated values fall in
// [Base, Base+Range).
type Parameter struct {
	Code  string  `yaml:"code"`
	Label string  `yaml:"label"`
	Unit  string  `yaml:"unit"`
	Base  float64 `yaml:"base"`
	Range float64 `yaml:"range"`
	Limit float64 `yaml:"limit"`
}

func (p Parameter) Validate() error {
	if p.Code == "" {
		return fmt.Errorf("parameter code is required")
	}
	if p.Base < 0 {
		return fmt.Errorf("parameter %s: base must not be negative", p.Code)
	}
	if p.Range < 0 {
		return fmt.Errorf("parameter %s: range must not be negative", p.Code)
	}
	if p.Limit <= 0 {
		return fmt.Errorf("parameter %s: limit must be positive", p.Code)
	}
	return nil
}

func DefaultParameters() []Parameter {
	return []Parameter{
		{Code: "co2", Label: "CO₂", Unit: "mg/m³", Base: 320, Range: 80, Limit: 400},
		{Code: "so2", Label: "SO₂", Unit: "µg/m³", Base: 45, Range: 25, Limit: 70},
		{Code: "nox", Label: "NOₓ", Unit: "µg/m³", Base: 38, Range: 20, Limit: 50},
		{Code: "pm25", Label: "PM2.5", Unit: "µg/m³", Base: 28, Range: 15, Limit: 45},
	}
}

type Option func(g *Generator)

// WithRand replaces the time-seeded source, mostly for tests.
func WithRand(r *rand.Rand) Option {
	return func(g *Generator) {
		g.random = r
	}
}

// Generator produces memoryless synthetic readings. Every call samples afresh;
// nothing from a previous call influences the next one.
type Generator struct {
	params []Parameter

	mu     sync.Mutex
	random *rand.Rand
}

func New(params []Parameter, opts ...Option) (*Generator, error) {
	if len(params) == 0 {
		return nil, fmt.Errorf("at least one parameter is required")
	}

	seen := make(map[string]struct{}, len(params))
	for _, p := range params {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if _, ok := seen[p.Code]; ok {
			return nil, fmt.Errorf("duplicate parameter code %q", p.Code)
		}
		seen[p.Code] = struct{}{}
	}

	g := &Generator{
		params: append([]Parameter(nil), params...),
		random: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

func (g *Generator) Parameters() []Parameter {
	return append([]Parameter(nil), g.params...)
}

// Samples returns one fresh value per tracked parameter, in configuration order.
func (g *Generator) Samples() []model.Sample {
	g.mu.Lock()
	defer g.mu.Unlock()

	samples := make([]model.Sample, len(g.params))
	for i, p := range g.params {
		samples[i] = model.Sample{
			Parameter: p.Code,
			Label:     p.Label,
			Value:     g.sample(p.Base, p.Range),
			Unit:      p.Unit,
			Limit:     p.Limit,
		}
	}
	return samples
}

// Hourly returns 24 points, one per hour, the last one being the hour of now.
func (g *Generator) Hourly(now time.Time) []model.HourlyPoint {
	g.mu.Lock()
	defer g.mu.Unlock()

	points := make([]model.HourlyPoint, hourlyPoints)
	for i := range points {
		hour := now.Add(-time.Duration(hourlyPoints-1-i) * time.Hour)
		values := make(map[string]float64, len(g.params))
		for _, p := range g.params {
			values[p.Code] = g.sample(p.Base, p.Range)
		}
		points[i] = model.HourlyPoint{
			Time:   fmt.Sprintf("%d:00", hour.Hour()),
			Values: values,
		}
	}
	return points
}

func (g *Generator) Weekly() []model.DailyEmission {
	g.mu.Lock()
	defer g.mu.Unlock()

	days := make([]model.DailyEmission, len(weekdays))
	for i, day := range weekdays {
		days[i] = model.DailyEmission{
			Day:   day,
			Value: g.sample(weeklyBase, weeklyRange),
			Limit: weeklyLimit,
		}
	}
	return days
}

// SensorHistory returns 20 points labelled from "20m" down to "1m".
func (g *Generator) SensorHistory() []model.HistoryPoint {
	g.mu.Lock()
	defer g.mu.Unlock()

	points := make([]model.HistoryPoint, historyPoints)
	for i := range points {
		points[i] = model.HistoryPoint{
			Time:  fmt.Sprintf("%dm", historyPoints-i),
			Value: g.sample(historyBase, historyRange),
		}
	}
	return points
}

func (g *Generator) sample(base, spread float64) float64 {
	return base + g.random.Float64()*spread
}
