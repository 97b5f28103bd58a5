package model

type Status string

const (
	StatusUnknown  Status = "unknown"
	StatusNormal   Status = "normal"
	StatusWarning  Status = "warning"
	StatusExceeded Status = "exceeded"
)

// Severity orders statuses so that a higher value is worse. Unknown sorts lowest.
func (s Status) Severity() int {
	switch s {
	case StatusNormal:
		return 1
	case StatusWarning:
		return 2
	case StatusExceeded:
		return 3
	default:
		return 0
	}
}

type Reading struct {
	Parameter  string  `json:"parameter"`
	Label      string  `json:"label"`
	Value      float64 `json:"value"`
	Unit       string  `json:"unit"`
	Limit      float64 `json:"limit"`
	Percentage float64 `json:"percentage"`
	Status     Status  `json:"status"`
}

// Sample is a raw generated value before classification.
type Sample struct {
	Parameter string  `json:"parameter"`
	Label     string  `json:"label"`
	Value     float64 `json:"value"`
	Unit      string  `json:"unit"`
	Limit     float64 `json:"limit"`
}

type HourlyPoint struct {
	Time   string             `json:"time"`
	Values map[string]float64 `json:"values"`
}

type DailyEmission struct {
	Day   string  `json:"day"`
	Value float64 `json:"value"`
	Limit float64 `json:"limit"`
}

type HistoryPoint struct {
	Time  string  `json:"time"`
	Value float64 `json:"value"`
}
