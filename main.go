package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/viant/afs"

	"github.com/neptune-T/OS-Simulation-Platform/api"
	"github.com/neptune-T/OS-Simulation-Platform/config"
	"github.com/neptune-T/OS-Simulation-Platform/internal/logger"
	"github.com/neptune-T/OS-Simulation-Platform/internal/metrics"
	"github.com/neptune-T/OS-Simulation-Platform/internal/report"
	"github.com/neptune-T/OS-Simulation-Platform/internal/scenario"
	"github.com/neptune-T/OS-Simulation-Platform/internal/tracing"
)

const (
	serviceName    = "os-simulation-platform"
	serviceVersion = "1.0.0"
)

func main() {
	cfg := config.GetSchedulerConfig()

	logger.Initialize(&cfg.Logging)
	logger.GetLogger().Info("Starting OS simulation platform...")
	logger.GetLogger().Infof("Configuration loaded: port=%d rr_quantum=%d mlfq_levels=%v memory=%d/%s",
		cfg.Port, cfg.RoundRobinTimeQuantum, cfg.MultilevelFeedbackQueueLevelsTimeQuantum,
		cfg.Memory.TotalSize, cfg.Memory.Strategy)

	if cfg.Tracing.Enabled {
		if err := tracing.Init(serviceName, serviceVersion, cfg.Tracing.Output); err != nil {
			logger.GetLogger().Fatalf("Failed to initialise tracing: %v", err)
		}
	}

	collector := metrics.NewPrometheusMetrics()
	metricsServer := metrics.NewMetricsServer(&cfg.Metrics, collector)
	if err := metricsServer.Start(); err != nil {
		logger.GetLogger().Fatalf("Failed to start metrics server: %v", err)
	}

	fs := afs.New()
	var exporter *report.Exporter
	if cfg.Report.URL != "" {
		var err error
		if exporter, err = report.NewExporter(fs, cfg.Report.URL); err != nil {
			logger.GetLogger().Fatalf("Failed to create report exporter: %v", err)
		}
		logger.GetLogger().Infof("Exporting reports to %s", cfg.Report.URL)
	}

	catalog, err := scenario.LoadCatalog(context.Background(), fs, cfg.Scenario.URL)
	if err != nil {
		logger.GetLogger().Fatalf("Failed to load scenarios: %v", err)
	}
	logger.GetLogger().Infof("Scenarios available: %v", catalog.Names())

	handler := api.NewSchedulerHandlerImpl(cfg, collector, exporter)
	handler.SetScenarios(catalog)
	if path := os.Getenv("CONFIG_FILE_PATH"); path != "" {
		if err := config.Watch(path, applyConfig(handler)); err != nil {
			logger.GetLogger().Warnf("Config hot reload disabled: %v", err)
		}
	}

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	handler.Register(app.Group("/api").Group("/v1"))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		logger.GetLogger().Infof("Listening on port %d", cfg.Port)
		if err := app.Listen(fmt.Sprintf(":%d", cfg.Port)); err != nil {
			serverErr <- err
		}
	}()

	select {
	case sig := <-sigCh:
		logger.GetLogger().Infof("Received signal: %v", sig)
	case err := <-serverErr:
		logger.GetLogger().Errorf("Server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Shutdown(); err != nil {
		logger.GetLogger().Errorf("Failed to stop API server: %v", err)
	}
	if err := metricsServer.Stop(shutdownCtx); err != nil {
		logger.GetLogger().Errorf("Failed to stop metrics server: %v", err)
	}
	if err := tracing.Shutdown(shutdownCtx); err != nil {
		logger.GetLogger().Errorf("Failed to flush traces: %v", err)
	}

	logger.GetLogger().Info("OS simulation platform stopped")
	if err := logger.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to close log file: %v\n", err)
	}
}

// applyConfig returns the hot-reload callback: the logger is rebuilt from the new logging
// section and the handlers serve later requests with the new values.
func applyConfig(handler *api.SchedulerHandlerImpl) func(*config.SchedulerConfig) {
	return func(cfg *config.SchedulerConfig) {
		logger.Initialize(&cfg.Logging)
		handler.SetConfig(cfg)
		logger.GetLogger().WithField("level", cfg.Logging.Level).Info("configuration reloaded")
	}
}
