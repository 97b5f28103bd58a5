package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/speedwagon-io/ecomonitor/internal/model"
)

var seedSensors = []model.Sensor{
	{ID: 1, Name: "CO₂ sensor #1", Type: "CO₂", Location: "Shop A, zone 1", LinkStatus: model.LinkActive, Value: 348, Unit: "mg/m³", Limit: 400, LastCalibration: "2026-01-15", NextCalibration: "2026-04-15"},
	{ID: 2, Name: "SO₂ sensor #2", Type: "SO₂", Location: "Shop B, zone 3", LinkStatus: model.LinkActive, Value: 52, Unit: "µg/m³", Limit: 70, LastCalibration: "2026-01-20", NextCalibration: "2026-04-20"},
	{ID: 3, Name: "NOₓ sensor #3", Type: "NOₓ", Location: "Exhaust stack #1", LinkStatus: model.LinkWarning, Value: 65, Unit: "µg/m³", Limit: 50, LastCalibration: "2026-01-10", NextCalibration: "2026-04-10"},
	{ID: 4, Name: "PM2.5 sensor #4", Type: "PM2.5", Location: "Materials warehouse", LinkStatus: model.LinkActive, Value: 31, Unit: "µg/m³", Limit: 45, LastCalibration: "2026-01-25", NextCalibration: "2026-04-25"},
	{ID: 5, Name: "Temperature sensor #5", Type: "Temperature", Location: "Shop A, zone 2", LinkStatus: model.LinkError, Value: 0, Unit: "°C", Limit: 50, LastCalibration: "2026-01-05", NextCalibration: "2026-04-05"},
	{ID: 6, Name: "CO₂ sensor #6", Type: "CO₂", Location: "Shop C, zone 5", LinkStatus: model.LinkActive, Value: 312, Unit: "mg/m³", Limit: 400, LastCalibration: "2026-01-18", NextCalibration: "2026-04-18"},
}

var seedEquipment = []model.Equipment{
	{ID: 1, Name: "Boiler unit #1", Category: "Boiler equipment", Location: "Shop A", Status: model.EquipmentActive, Power: 85, Efficiency: 92, Emissions: model.Emissions{CO2: 145, SO2: 28, NOx: 35}, WorkingHours: 8240, LastMaintenance: "2025-12-10", NextMaintenance: "2026-03-10"},
	{ID: 2, Name: "Industrial furnace #2", Category: "Thermal equipment", Location: "Shop B", Status: model.EquipmentActive, Power: 92, Efficiency: 88, Emissions: model.Emissions{CO2: 210, SO2: 42, NOx: 58}, WorkingHours: 6850, LastMaintenance: "2026-01-15", NextMaintenance: "2026-04-15"},
	{ID: 3, Name: "Ventilation system #3", Category: "Ventilation equipment", Location: "Shop A", Status: model.EquipmentIdle, Power: 0, Efficiency: 95, WorkingHours: 12450, LastMaintenance: "2026-01-20", NextMaintenance: "2026-04-20"},
	{ID: 4, Name: "Compressor station #4", Category: "Compressor equipment", Location: "Shop C", Status: model.EquipmentActive, Power: 78, Efficiency: 85, Emissions: model.Emissions{CO2: 98, SO2: 15, NOx: 22}, WorkingHours: 9560, LastMaintenance: "2026-01-05", NextMaintenance: "2026-04-05"},
	{ID: 5, Name: "Diesel generator #5", Category: "Power equipment", Location: "Power block", Status: model.EquipmentMaintenance, Power: 0, Efficiency: 82, WorkingHours: 3240, LastMaintenance: "2026-02-12", NextMaintenance: "2026-05-12"},
	{ID: 6, Name: "Treatment plant #6", Category: "Treatment equipment", Location: "Treatment facilities", Status: model.EquipmentError, Power: 45, Efficiency: 65, Emissions: model.Emissions{CO2: 75, SO2: 32, NOx: 48}, WorkingHours: 15200, LastMaintenance: "2025-12-01", NextMaintenance: "2026-03-01"},
}

var seedReports = []model.Report{
	{ID: 1, Title: "Emissions report, January 2026", Type: "Monthly", Date: "2026-01-31", Status: model.ReportCompleted, Size: "2.4 MB"},
	{ID: 2, Title: "Air quality report", Type: "Weekly", Date: "2026-02-10", Status: model.ReportCompleted, Size: "1.8 MB"},
	{ID: 3, Title: "Equipment report", Type: "Quarterly", Date: "2025-12-31", Status: model.ReportCompleted, Size: "5.2 MB"},
	{ID: 4, Title: "Sensor calibration report", Type: "Monthly", Date: "2026-01-31", Status: model.ReportCompleted, Size: "1.2 MB"},
	{ID: 5, Title: "Limit exceedance report", Type: "Unscheduled", Date: "2026-02-12", Status: model.ReportWarning, Size: "856 KB"},
	{ID: 6, Title: "Annual environmental report 2025", Type: "Annual", Date: "2026-01-15", Status: model.ReportCompleted, Size: "12.8 MB"},
}

var seedCompliance = []model.ComplianceItem{
	{Parameter: "CO₂", Current: 352, Limit: 400, Unit: "mg/m³"},
	{Parameter: "SO₂", Current: 58, Limit: 70, Unit: "µg/m³"},
	{Parameter: "NOₓ", Current: 65, Limit: 50, Unit: "µg/m³"},
	{Parameter: "PM2.5", Current: 35, Limit: 45, Unit: "µg/m³"},
	{Parameter: "PM10", Current: 68, Limit: 80, Unit: "µg/m³"},
}

var seedEvents = []model.Event{
	{ID: 1, Type: "warning", Text: "NOₓ 30% over limit", Time: "14:23"},
	{ID: 2, Type: "error", Text: "Lost connection to sensor #5", Time: "13:45"},
	{ID: 3, Type: "success", Text: "System back to normal", Time: "12:18"},
	{ID: 4, Type: "info", Text: "Scheduled maintenance completed", Time: "10:30"},
}

func (c *SQLiteCatalog) seed(ctx context.Context) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, s := range seedSensors {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO sensors (id, name, type, location, link_status, value, unit, limit_value, last_calibration, next_calibration)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			s.ID, s.Name, s.Type, s.Location, s.LinkStatus, s.Value, s.Unit, s.Limit, s.LastCalibration, s.NextCalibration,
		)
		if err != nil {
			return fmt.Errorf("failed to insert sensor %d: %w", s.ID, err)
		}
	}

	for _, e := range seedEquipment {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO equipment (id, name, category, location, status, power, efficiency, co2, so2, nox, working_hours, last_maintenance, next_maintenance)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			e.ID, e.Name, e.Category, e.Location, e.Status, e.Power, e.Efficiency,
			e.Emissions.CO2, e.Emissions.SO2, e.Emissions.NOx, e.WorkingHours, e.LastMaintenance, e.NextMaintenance,
		)
		if err != nil {
			return fmt.Errorf("failed to insert equipment %d: %w", e.ID, err)
		}
	}

	for _, r := range seedReports {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO reports (id, title, type, date, status, size) VALUES (?, ?, ?, ?, ?, ?)`,
			r.ID, r.Title, r.Type, r.Date, r.Status, r.Size,
		)
		if err != nil {
			return fmt.Errorf("failed to insert report %d: %w", r.ID, err)
		}
	}

	for i, item := range seedCompliance {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO compliance (position, parameter, current_value, limit_value, unit) VALUES (?, ?, ?, ?, ?)`,
			i, item.Parameter, item.Current, item.Limit, item.Unit,
		)
		if err != nil {
			return fmt.Errorf("failed to insert compliance item %s: %w", item.Parameter, err)
		}
	}

	for _, e := range seedEvents {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO events (id, type, text, time) VALUES (?, ?, ?, ?)`,
			e.ID, e.Type, e.Text, e.Time,
		)
		if err != nil {
			return fmt.Errorf("failed to insert event %d: %w", e.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	c.log.Debug("catalog seeded",
		slog.Int("sensors", len(seedSensors)),
		slog.Int("equipment", len(seedEquipment)),
		slog.Int("reports", len(seedReports)),
	)
	return nil
}
