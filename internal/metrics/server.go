package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/neptune-T/OS-Simulation-Platform/config"
	"github.com/neptune-T/OS-Simulation-Platform/internal/logger"
)

// MetricsServer exposes the collectors over HTTP on a port separate from the API
type MetricsServer struct {
	server  *http.Server
	metrics *PrometheusMetrics
	config  *config.MetricsConfig
}

func NewMetricsServer(cfg *config.MetricsConfig, metrics *PrometheusMetrics) *MetricsServer {
	mux := http.NewServeMux()

	ms := &MetricsServer{
		metrics: metrics,
		config:  cfg,
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}

	mux.Handle(cfg.Path, promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{}))
	mux.HandleFunc("/health", ms.handleHealth)

	return ms
}

// Handler is the mux serving the metrics and health endpoints
func (ms *MetricsServer) Handler() http.Handler {
	return ms.server.Handler
}

func (ms *MetricsServer) Start() error {
	if !ms.config.Enabled {
		logger.GetLogger().Info("Metrics server disabled")
		return nil
	}

	logger.GetLogger().Infof("Starting metrics server on port %d", ms.config.Port)

	go func() {
		if err := ms.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.GetLogger().Errorf("Metrics server error: %v", err)
		}
	}()

	return nil
}

func (ms *MetricsServer) Stop(ctx context.Context) error {
	if !ms.config.Enabled {
		return nil
	}

	logger.GetLogger().Info("Stopping metrics server...")
	return ms.server.Shutdown(ctx)
}

func (ms *MetricsServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status":"healthy","uptime":%q}`, ms.metrics.Uptime().Round(time.Second).String())
}
