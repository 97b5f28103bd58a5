package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/speedwagon-io/ecomonitor/internal/catalog"
	"github.com/speedwagon-io/ecomonitor/internal/lib/logger/sl"
	"github.com/speedwagon-io/ecomonitor/internal/model"
)

const defaultEventsLimit = 10

type metricsResponse struct {
	Timestamp time.Time       `json:"timestamp"`
	Worst     model.Status    `json:"worst"`
	Readings  []model.Reading `json:"readings"`
}

type sensorsResponse struct {
	Sensors []model.Sensor    `json:"sensors"`
	Stats   model.SensorStats `json:"stats"`
}

type sensorResponse struct {
	model.Sensor
	Percentage float64      `json:"percentage"`
	Status     model.Status `json:"status"`
}

type equipmentResponse struct {
	Equipment []model.Equipment    `json:"equipment"`
	Stats     model.EquipmentStats `json:"stats"`
}

type reportsResponse struct {
	Reports []model.Report    `json:"reports"`
	Stats   model.ReportStats `json:"stats"`
}

type complianceItem struct {
	model.ComplianceItem
	Percentage float64      `json:"percentage"`
	Status     model.Status `json:"status"`
}

type clockResponse struct {
	Now  time.Time `json:"now"`
	Date string    `json:"date"`
	Time string    `json:"time"`
}

func (s *Server) latest(w http.ResponseWriter) (*model.Snapshot, bool) {
	snap, ok := s.deps.Store.Latest()
	if !ok {
		writeError(w, http.StatusServiceUnavailable, "no data yet")
	}
	return snap, ok
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.latest(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.latest(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, metricsResponse{
		Timestamp: snap.Timestamp,
		Worst:     snap.Worst(),
		Readings:  snap.Readings,
	})
}

func (s *Server) handleHourly(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.latest(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, snap.Hourly)
}

func (s *Server) handleWeekly(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.Weekly)
}

func (s *Server) handleSensors(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sensors, err := s.deps.Catalog.Sensors(ctx, r.URL.Query().Get("status"))
	if err != nil {
		s.internalError(w, "failed to list sensors", err)
		return
	}
	stats, err := s.deps.Catalog.SensorStats(ctx)
	if err != nil {
		s.internalError(w, "failed to count sensors", err)
		return
	}

	writeJSON(w, http.StatusOK, sensorsResponse{Sensors: sensors, Stats: stats})
}

func (s *Server) handleSensor(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	sensor, err := s.deps.Catalog.Sensor(r.Context(), id)
	if err != nil {
		s.lookupError(w, "failed to get sensor", err)
		return
	}

	resp := sensorResponse{Sensor: *sensor, Status: model.StatusUnknown}
	pct, status, err := s.deps.Rule.Evaluate(sensor.Value, sensor.Limit)
	if err != nil {
		s.log.Warn("failed to classify sensor value", slog.Int64("id", id), sl.Err(err))
	} else {
		resp.Percentage = pct
		resp.Status = status
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSensorHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if _, err := s.deps.Catalog.Sensor(r.Context(), id); err != nil {
		s.lookupError(w, "failed to get sensor", err)
		return
	}

	history := s.deps.Histories[id]
	if history == nil {
		history = []model.HistoryPoint{}
	}
	writeJSON(w, http.StatusOK, history)
}

func (s *Server) handleEquipment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	items, err := s.deps.Catalog.Equipment(ctx, r.URL.Query().Get("status"))
	if err != nil {
		s.internalError(w, "failed to list equipment", err)
		return
	}
	stats, err := s.deps.Catalog.EquipmentStats(ctx)
	if err != nil {
		s.internalError(w, "failed to aggregate equipment", err)
		return
	}

	writeJSON(w, http.StatusOK, equipmentResponse{Equipment: items, Stats: stats})
}

func (s *Server) handleEquipmentItem(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	item, err := s.deps.Catalog.EquipmentByID(r.Context(), id)
	if err != nil {
		s.lookupError(w, "failed to get equipment", err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleReports(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	reports, err := s.deps.Catalog.Reports(ctx)
	if err != nil {
		s.internalError(w, "failed to list reports", err)
		return
	}
	stats, err := s.deps.Catalog.ReportStats(ctx)
	if err != nil {
		s.internalError(w, "failed to count reports", err)
		return
	}

	writeJSON(w, http.StatusOK, reportsResponse{Reports: reports, Stats: stats})
}

// handleCompliance classifies the stored figures with the same rule the live
// readings use, so the two views cannot disagree.
func (s *Server) handleCompliance(w http.ResponseWriter, r *http.Request) {
	items, err := s.deps.Catalog.Compliance(r.Context())
	if err != nil {
		s.internalError(w, "failed to list compliance", err)
		return
	}

	resp := make([]complianceItem, len(items))
	for i, item := range items {
		resp[i] = complianceItem{ComplianceItem: item, Status: model.StatusUnknown}
		pct, status, err := s.deps.Rule.Evaluate(item.Current, item.Limit)
		if err != nil {
			s.log.Warn("failed to classify compliance item",
				slog.String("parameter", item.Parameter),
				sl.Err(err),
			)
			continue
		}
		resp[i].Percentage = pct
		resp[i].Status = status
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	limit := defaultEventsLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	events, err := s.deps.Catalog.Events(r.Context(), limit)
	if err != nil {
		s.internalError(w, "failed to list events", err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

func (s *Server) handleClock(w http.ResponseWriter, r *http.Request) {
	now := s.deps.Clock.Now()
	writeJSON(w, http.StatusOK, clockResponse{
		Now:  now,
		Date: now.Format("2006-01-02"),
		Time: now.Format("15:04:05"),
	})
}

func (s *Server) handleStartup(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.Progress.State())
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

func (s *Server) lookupError(w http.ResponseWriter, msg string, err error) {
	if errors.Is(err, catalog.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	s.internalError(w, msg, err)
}

func (s *Server) internalError(w http.ResponseWriter, msg string, err error) {
	s.log.Error(msg, sl.Err(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}
