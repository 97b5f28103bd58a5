package model

const (
	LinkActive  = "active"
	LinkWarning = "warning"
	LinkError   = "error"
)

const (
	EquipmentActive      = "active"
	EquipmentIdle        = "idle"
	EquipmentMaintenance = "maintenance"
	EquipmentError       = "error"
)

const (
	ReportCompleted = "completed"
	ReportWarning   = "warning"
)

type Sensor struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Type            string  `json:"type"`
	Location        string  `json:"location"`
	LinkStatus      string  `json:"link_status"`
	Value           float64 `json:"value"`
	Unit            string  `json:"unit"`
	Limit           float64 `json:"limit"`
	LastCalibration string  `json:"last_calibration"`
	NextCalibration string  `json:"next_calibration"`
}

type SensorStats struct {
	Total   int `json:"total"`
	Active  int `json:"active"`
	Warning int `json:"warning"`
	Error   int `json:"error"`
}

type Emissions struct {
	CO2 float64 `json:"co2"`
	SO2 float64 `json:"so2"`
	NOx float64 `json:"nox"`
}

func (e Emissions) Total() float64 {
	return e.CO2 + e.SO2 + e.NOx
}

type Equipment struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Category        string    `json:"category"`
	Location        string    `json:"location"`
	Status          string    `json:"status"`
	Power           float64   `json:"power"`
	Efficiency      float64   `json:"efficiency"`
	Emissions       Emissions `json:"emissions"`
	WorkingHours    int64     `json:"working_hours"`
	LastMaintenance string    `json:"last_maintenance"`
	NextMaintenance string    `json:"next_maintenance"`
}

type EquipmentStats struct {
	Total          int     `json:"total"`
	Active         int     `json:"active"`
	AvgEfficiency  float64 `json:"avg_efficiency"`
	TotalEmissions float64 `json:"total_emissions"`
}

type Report struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Type   string `json:"type"`
	Date   string `json:"date"`
	Status string `json:"status"`
	Size   string `json:"size"`
}

type ReportStats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Warning   int `json:"warning"`
}

type ComplianceItem struct {
	Parameter string  `json:"parameter"`
	Current   float64 `json:"current"`
	Limit     float64 `json:"limit"`
	Unit      string  `json:"unit"`
}

type Event struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
	Text string `json:"text"`
	Time string `json:"time"`
}
