package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/speedwagon-io/ecomonitor/internal/api"
	"github.com/speedwagon-io/ecomonitor/internal/catalog"
	"github.com/speedwagon-io/ecomonitor/internal/collector"
	"github.com/speedwagon-io/ecomonitor/internal/collector/adapters"
	"github.com/speedwagon-io/ecomonitor/internal/config"
	"github.com/speedwagon-io/ecomonitor/internal/dashboard"
	"github.com/speedwagon-io/ecomonitor/internal/generator"
	"github.com/speedwagon-io/ecomonitor/internal/health"
	"github.com/speedwagon-io/ecomonitor/internal/lib/logger/sl"
	"github.com/speedwagon-io/ecomonitor/internal/model"
	"github.com/speedwagon-io/ecomonitor/internal/publisher"
	"github.com/speedwagon-io/ecomonitor/internal/scheduler"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	dryRun := flag.Bool("dry-run", false, "log snapshots instead of publishing them")
	flag.Parse()

	cfg := config.MustLoad(*configPath)

	log := sl.SetupLogger(cfg.Log.Level, cfg.Log.Format)

	log.Info("starting ecomonitor",
		slog.String("env", cfg.Env),
		slog.String("source", cfg.Monitor.Source),
		slog.Duration("refresh_interval", cfg.Monitor.RefreshInterval),
		slog.Int("parameters", len(cfg.Monitor.Parameters)),
		slog.Bool("dry_run", *dryRun),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gen, err := generator.New(cfg.Monitor.Parameters)
	if err != nil {
		log.Error("failed to create generator", sl.Err(err))
		os.Exit(1)
	}

	var coll collector.Collector
	switch cfg.Monitor.Source {
	case "mock":
		coll = adapters.NewMockAdapter(component(log, "collector"), gen)
	default:
		log.Error("unknown source", slog.String("source", cfg.Monitor.Source))
		os.Exit(1)
	}

	cat, err := catalog.NewSQLiteCatalog(ctx, component(log, "catalog"))
	if err != nil {
		log.Error("failed to create catalog", sl.Err(err))
		os.Exit(1)
	}

	sensors, err := cat.Sensors(ctx, "")
	if err != nil {
		log.Error("failed to load sensors", sl.Err(err))
		os.Exit(1)
	}
	histories := make(map[int64][]model.HistoryPoint, len(sensors))
	for _, s := range sensors {
		histories[s.ID] = gen.SensorHistory()
	}

	// Log publisher for dry-run mode, configured adapter otherwise
	var sink publisher.Publisher
	switch {
	case *dryRun || cfg.Publisher.Adapter == config.AdapterLog:
		sink = publisher.NewLogPublisher(component(log, "publisher"))
		log.Info("snapshots will be logged instead of published")
	case cfg.Publisher.Adapter == config.AdapterNATS:
		sink, err = publisher.NewNATSPublisher(component(log, "publisher"), &cfg.Publisher.NATS)
		if err != nil {
			log.Error("failed to create nats publisher", sl.Err(err))
			os.Exit(1)
		}
	default:
		log.Error("unknown publisher adapter", slog.String("adapter", cfg.Publisher.Adapter))
		os.Exit(1)
	}

	hub := publisher.NewHub(component(log, "stream"), cfg.Stream.Buffer)
	store := dashboard.NewStore()
	clock := dashboard.NewClock()
	progress := dashboard.NewProgress()

	manager := collector.NewManager(component(log, "manager"), coll, cfg.Thresholds, publisher.Multi{hub, sink}, store)

	healthServer := health.NewServer(component(log, "health"), cfg.Health.Address)
	healthServer.AddChecker(health.NewPublisherHealthChecker(sink.Health))
	healthServer.AddChecker(health.NewSnapshotHealthChecker(store.Age, cfg.Monitor.StaleAfter))
	healthServer.AddChecker(health.NewStartupHealthChecker(progress.Finished))
	healthServer.SetReadiness(progress.Finished)

	if err := healthServer.Start(); err != nil {
		log.Error("failed to start health server", sl.Err(err))
		os.Exit(1)
	}

	apiServer := api.NewServer(component(log, "api"), &cfg.HTTP, api.Deps{
		Store:     store,
		Clock:     clock,
		Progress:  progress,
		Catalog:   cat,
		Hub:       hub,
		Rule:      cfg.Thresholds,
		Weekly:    gen.Weekly(),
		Histories: histories,
	})

	if err := apiServer.Start(); err != nil {
		log.Error("failed to start api server", sl.Err(err))
		os.Exit(1)
	}

	sched := scheduler.New(component(log, "scheduler"))
	tasks := []struct {
		name     string
		interval time.Duration
		fn       scheduler.TickFunc
		opts     []scheduler.TaskOption
	}{
		{"refresh", cfg.Monitor.RefreshInterval, manager.Refresh, []scheduler.TaskOption{scheduler.Immediately()}},
		{"clock", cfg.Dashboard.ClockInterval, clock.Tick, []scheduler.TaskOption{scheduler.Immediately()}},
		{"startup-progress", cfg.Dashboard.ProgressInterval, progress.Advance, nil},
		{"startup-status", cfg.Dashboard.StatusInterval, progress.NextMessage, nil},
	}
	for _, t := range tasks {
		if _, err := sched.Every(t.name, t.interval, t.fn, t.opts...); err != nil {
			log.Error("failed to schedule task", slog.String("task", t.name), sl.Err(err))
			os.Exit(1)
		}
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		log.Info("received signal, shutting down", slog.String("signal", sig.String()))
		cancel()
	}()

	select {
	case <-progress.Done():
		log.Info("startup complete")
	case <-ctx.Done():
	}
	<-ctx.Done()

	sched.Stop()
	manager.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer shutdownCancel()

	if err := apiServer.Stop(shutdownCtx); err != nil {
		log.Error("failed to stop api server", sl.Err(err))
	}

	if err := healthServer.Stop(shutdownCtx); err != nil {
		log.Error("failed to stop health server", sl.Err(err))
	}

	if err := cat.Close(); err != nil {
		log.Error("failed to close catalog", sl.Err(err))
	}

	log.Info("ecomonitor stopped")
}

func component(log *slog.Logger, name string) *slog.Logger {
	return log.With(slog.String("component", name))
}
