package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	_ "github.com/mattn/go-sqlite3"

	"github.com/speedwagon-io/ecomonitor/internal/lib/logger/sl"
	"github.com/speedwagon-io/ecomonitor/internal/model"
)

var ErrNotFound = errors.New("record not found")

type Catalog interface {
	Sensors(ctx context.Context, status string) ([]model.Sensor, error)
	Sensor(ctx context.Context, id int64) (*model.Sensor, error)
	SensorStats(ctx context.Context) (model.SensorStats, error)
	Equipment(ctx context.Context, status string) ([]model.Equipment, error)
	EquipmentByID(ctx context.Context, id int64) (*model.Equipment, error)
	EquipmentStats(ctx context.Context) (model.EquipmentStats, error)
	Reports(ctx context.Context) ([]model.Report, error)
	ReportStats(ctx context.Context) (model.ReportStats, error)
	Compliance(ctx context.Context) ([]model.ComplianceItem, error)
	Events(ctx context.Context, limit int) ([]model.Event, error)
	Close() error
}

// SQLiteCatalog keeps the static reference records in an in-memory database.
// Nothing is written to disk and the data is rebuilt on every start.
type SQLiteCatalog struct {
	log *slog.Logger
	db  *sql.DB
}

func NewSQLiteCatalog(ctx context.Context, log *slog.Logger) (*SQLiteCatalog, error) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Every pooled connection to ":memory:" would get its own empty database.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	c := &SQLiteCatalog{
		log: log,
		db:  db,
	}

	if err := c.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := c.seed(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to seed database: %w", err)
	}

	return c, nil
}

func (c *SQLiteCatalog) migrate(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS sensors (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			type TEXT NOT NULL,
			location TEXT NOT NULL,
			link_status TEXT NOT NULL,
			value REAL NOT NULL,
			unit TEXT NOT NULL,
			limit_value REAL NOT NULL,
			last_calibration TEXT,
			next_calibration TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_sensors_status ON sensors(link_status);

		CREATE TABLE IF NOT EXISTS equipment (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			category TEXT NOT NULL,
			location TEXT NOT NULL,
			status TEXT NOT NULL,
			power REAL NOT NULL,
			efficiency REAL NOT NULL,
			co2 REAL NOT NULL,
			so2 REAL NOT NULL,
			nox REAL NOT NULL,
			working_hours INTEGER NOT NULL,
			last_maintenance TEXT,
			next_maintenance TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_equipment_status ON equipment(status);

		CREATE TABLE IF NOT EXISTS reports (
			id INTEGER PRIMARY KEY,
			title TEXT NOT NULL,
			type TEXT NOT NULL,
			date TEXT NOT NULL,
			status TEXT NOT NULL,
			size TEXT
		);

		CREATE TABLE IF NOT EXISTS compliance (
			position INTEGER PRIMARY KEY,
			parameter TEXT NOT NULL,
			current_value REAL NOT NULL,
			limit_value REAL NOT NULL,
			unit TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS events (
			id INTEGER PRIMARY KEY,
			type TEXT NOT NULL,
			text TEXT NOT NULL,
			time TEXT NOT NULL
		);
	`
	_, err := c.db.ExecContext(ctx, query)
	return err
}

func (c *SQLiteCatalog) Sensors(ctx context.Context, status string) ([]model.Sensor, error) {
	query := `
		SELECT id, name, type, location, link_status, value, unit, limit_value, last_calibration, next_calibration
		FROM sensors
		WHERE (? = '' OR link_status = ?)
		ORDER BY id ASC
	`

	rows, err := c.db.QueryContext(ctx, query, status, status)
	if err != nil {
		return nil, fmt.Errorf("failed to query sensors: %w", err)
	}
	defer rows.Close()

	sensors := make([]model.Sensor, 0)
	for rows.Next() {
		s, err := scanSensor(rows)
		if err != nil {
			c.log.Error("failed to scan sensor", sl.Err(err))
			continue
		}
		sensors = append(sensors, *s)
	}

	return sensors, rows.Err()
}

func (c *SQLiteCatalog) Sensor(ctx context.Context, id int64) (*model.Sensor, error) {
	query := `
		SELECT id, name, type, location, link_status, value, unit, limit_value, last_calibration, next_calibration
		FROM sensors
		WHERE id = ?
	`

	s, err := scanSensor(c.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("sensor %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get sensor %d: %w", id, err)
	}
	return s, nil
}

func (c *SQLiteCatalog) SensorStats(ctx context.Context) (model.SensorStats, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN link_status = ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN link_status = ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN link_status = ? THEN 1 ELSE 0 END), 0)
		FROM sensors
	`

	var stats model.SensorStats
	err := c.db.QueryRowContext(ctx, query, model.LinkActive, model.LinkWarning, model.LinkError).
		Scan(&stats.Total, &stats.Active, &stats.Warning, &stats.Error)
	if err != nil {
		return stats, fmt.Errorf("failed to compute sensor stats: %w", err)
	}
	return stats, nil
}

func (c *SQLiteCatalog) Equipment(ctx context.Context, status string) ([]model.Equipment, error) {
	query := `
		SELECT id, name, category, location, status, power, efficiency, co2, so2, nox, working_hours, last_maintenance, next_maintenance
		FROM equipment
		WHERE (? = '' OR status = ?)
		ORDER BY id ASC
	`

	rows, err := c.db.QueryContext(ctx, query, status, status)
	if err != nil {
		return nil, fmt.Errorf("failed to query equipment: %w", err)
	}
	defer rows.Close()

	items := make([]model.Equipment, 0)
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			c.log.Error("failed to scan equipment", sl.Err(err))
			continue
		}
		items = append(items, *e)
	}

	return items, rows.Err()
}

func (c *SQLiteCatalog) EquipmentByID(ctx context.Context, id int64) (*model.Equipment, error) {
	query := `
		SELECT id, name, category, location, status, power, efficiency, co2, so2, nox, working_hours, last_maintenance, next_maintenance
		FROM equipment
		WHERE id = ?
	`

	e, err := scanEquipment(c.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("equipment %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get equipment %d: %w", id, err)
	}
	return e, nil
}

func (c *SQLiteCatalog) EquipmentStats(ctx context.Context) (model.EquipmentStats, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0),
			COALESCE(AVG(efficiency), 0),
			COALESCE(SUM(co2 + so2 + nox), 0)
		FROM equipment
	`

	var stats model.EquipmentStats
	err := c.db.QueryRowContext(ctx, query, model.EquipmentActive).
		Scan(&stats.Total, &stats.Active, &stats.AvgEfficiency, &stats.TotalEmissions)
	if err != nil {
		return stats, fmt.Errorf("failed to compute equipment stats: %w", err)
	}
	return stats, nil
}

func (c *SQLiteCatalog) Reports(ctx context.Context) ([]model.Report, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT id, title, type, date, status, size FROM reports ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	defer rows.Close()

	reports := make([]model.Report, 0)
	for rows.Next() {
		var r model.Report
		if err := rows.Scan(&r.ID, &r.Title, &r.Type, &r.Date, &r.Status, &r.Size); err != nil {
			c.log.Error("failed to scan report", sl.Err(err))
			continue
		}
		reports = append(reports, r)
	}

	return reports, rows.Err()
}

func (c *SQLiteCatalog) ReportStats(ctx context.Context) (model.ReportStats, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0)
		FROM reports
	`

	var stats model.ReportStats
	err := c.db.QueryRowContext(ctx, query, model.ReportCompleted, model.ReportWarning).
		Scan(&stats.Total, &stats.Completed, &stats.Warning)
	if err != nil {
		return stats, fmt.Errorf("failed to compute report stats: %w", err)
	}
	return stats, nil
}

func (c *SQLiteCatalog) Compliance(ctx context.Context) ([]model.ComplianceItem, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT parameter, current_value, limit_value, unit FROM compliance ORDER BY position ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query compliance: %w", err)
	}
	defer rows.Close()

	items := make([]model.ComplianceItem, 0)
	for rows.Next() {
		var item model.ComplianceItem
		if err := rows.Scan(&item.Parameter, &item.Current, &item.Limit, &item.Unit); err != nil {
			c.log.Error("failed to scan compliance item", sl.Err(err))
			continue
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

// Events returns the most recent events first. A non-positive limit returns all.
func (c *SQLiteCatalog) Events(ctx context.Context, limit int) ([]model.Event, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := c.db.QueryContext(ctx, `SELECT id, type, text, time FROM events ORDER BY time DESC, id ASC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	events := make([]model.Event, 0)
	for rows.Next() {
		var e model.Event
		if err := rows.Scan(&e.ID, &e.Type, &e.Text, &e.Time); err != nil {
			c.log.Error("failed to scan event", sl.Err(err))
			continue
		}
		events = append(events, e)
	}

	return events, rows.Err()
}

func (c *SQLiteCatalog) Close() error {
	return c.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSensor(row scanner) (*model.Sensor, error) {
	var s model.Sensor
	err := row.Scan(&s.ID, &s.Name, &s.Type, &s.Location, &s.LinkStatus, &s.Value, &s.Unit, &s.Limit,
		&s.LastCalibration, &s.NextCalibration)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func scanEquipment(row scanner) (*model.Equipment, error) {
	var e model.Equipment
	err := row.Scan(&e.ID, &e.Name, &e.Category, &e.Location, &e.Status, &e.Power, &e.Efficiency,
		&e.Emissions.CO2, &e.Emissions.SO2, &e.Emissions.NOx, &e.WorkingHours, &e.LastMaintenance, &e.NextMaintenance)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
