package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/speedwagon-io/ecomonitor/internal/catalog"
	"github.com/speedwagon-io/ecomonitor/internal/config"
	"github.com/speedwagon-io/ecomonitor/internal/dashboard"
	"github.com/speedwagon-io/ecomonitor/internal/lib/logger/sl"
	"github.com/speedwagon-io/ecomonitor/internal/model"
	"github.com/speedwagon-io/ecomonitor/internal/publisher"
	"github.com/speedwagon-io/ecomonitor/internal/threshold"
)

// Deps is everything the handlers read from. Weekly and Histories are
// generated once at startup and never change afterwards.
type Deps struct {
	Store     *dashboard.Store
	Clock     *dashboard.Clock
	Progress  *dashboard.Progress
	Catalog   catalog.Catalog
	Hub       *publisher.Hub
	Rule      threshold.Rule
	Weekly    []model.DailyEmission
	Histories map[int64][]model.HistoryPoint
}

type Server struct {
	log    *slog.Logger
	cfg    *config.HTTPConfig
	deps   Deps
	router chi.Router
	server *http.Server
}

func NewServer(log *slog.Logger, cfg *config.HTTPConfig, deps Deps) *Server {
	s := &Server{
		log:  log,
		cfg:  cfg,
		deps: deps,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.log))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/snapshot", s.handleSnapshot)
		r.Get("/metrics", s.handleMetrics)
		r.Get("/emissions/hourly", s.handleHourly)
		r.Get("/emissions/weekly", s.handleWeekly)

		r.Get("/sensors", s.handleSensors)
		r.Get("/sensors/{id}", s.handleSensor)
		r.Get("/sensors/{id}/history", s.handleSensorHistory)

		r.Get("/equipment", s.handleEquipment)
		r.Get("/equipment/{id}", s.handleEquipmentItem)

		r.Get("/reports", s.handleReports)
		r.Get("/compliance", s.handleCompliance)
		r.Get("/events", s.handleEvents)

		r.Get("/clock", s.handleClock)
		r.Get("/startup", s.handleStartup)
		r.Get("/stream", s.handleStream)
	})

	return r
}

// Handler exposes the router without starting a listener.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:        s.cfg.Address,
		Handler:     s.router,
		ReadTimeout: s.cfg.ReadTimeout,
	}

	s.log.Info("starting api server", slog.String("address", s.cfg.Address))

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("api server error", sl.Err(err))
		}
	}()

	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				log.Debug("http request",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.Int("status", ww.Status()),
					slog.Int("bytes", ww.BytesWritten()),
					slog.String("request_id", middleware.GetReqID(r.Context())),
					slog.Duration("duration", time.Since(start)),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
