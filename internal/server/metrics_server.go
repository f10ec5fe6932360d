package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/giantswarm/mcp-kubectl-guard/internal/instrumentation"
)

// DefaultShutdownTimeout is the grace period given to in-flight requests
// when shutting down HTTP servers.
const DefaultShutdownTimeout = 10 * time.Second

// MetricsServerConfig configures the standalone metrics server.
//
// Metrics are served on a separate listener so the Prometheus endpoint can
// stay private while the MCP endpoint is exposed.
type MetricsServerConfig struct {
	// Addr is the listen address, for example ":9090".
	Addr string

	// Enabled controls whether the server starts at all.
	Enabled bool

	// InstrumentationProvider supplies the Prometheus handler.
	InstrumentationProvider *instrumentation.Provider
}

// MetricsServer serves the Prometheus /metrics endpoint on its own listener.
type MetricsServer struct {
	config MetricsServerConfig
	server *http.Server
}

// NewMetricsServer creates a metrics server from the given configuration.
func NewMetricsServer(config MetricsServerConfig) *MetricsServer {
	return &MetricsServer{config: config}
}

// Start begins serving metrics. It returns immediately when the server is
// disabled or no Prometheus handler is available, and otherwise blocks until
// the listener fails or Shutdown is called.
func (ms *MetricsServer) Start() error {
	if !ms.config.Enabled {
		return nil
	}
	if ms.config.InstrumentationProvider == nil {
		return nil
	}

	handler := ms.config.InstrumentationProvider.PrometheusHandler()
	if handler == nil {
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)

	ms.server = &http.Server{
		Addr:              ms.config.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	if err := ms.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("metrics server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the metrics server.
func (ms *MetricsServer) Shutdown(ctx context.Context) error {
	if ms.server == nil {
		return nil
	}
	return ms.server.Shutdown(ctx)
}
