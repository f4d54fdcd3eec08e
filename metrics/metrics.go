package metrics

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tea-network/sbtmarket/config"
)

// Metrics contains all metric groups
type Metrics struct {
	HTTP        *HTTPMetrics
	ExternalAPI *ExternalAPIMetrics
	Catalog     *CatalogMetrics
	Market      *MarketMetrics
	Error       *ErrorMetrics
}

var (
	// Global registry and metrics
	registry *prometheus.Registry
	metrics  *Metrics

	// Singleton initialization
	initOnce sync.Once

	// Chain identifier for metrics labeling
	evmChainId string
)

// constLabels returns the constant labels to be added to all metrics
func constLabels() prometheus.Labels {
	if evmChainId == "" {
		return nil
	}
	return prometheus.Labels{"chain_id": evmChainId}
}

// MetricsServer represents the Prometheus metrics HTTP server
type MetricsServer struct {
	server *http.Server
	logger *slog.Logger
	cfg    *config.MetricsConfig
}

// Init initializes the Prometheus metrics registry and registers all metrics.
// It is safe to call multiple times; only the first call has an effect.
func Init(chainId int64) {
	initOnce.Do(func() {
		if chainId > 0 {
			evmChainId = strconv.FormatInt(chainId, 10)
		}
		registry = prometheus.NewRegistry()

		metrics = &Metrics{
			HTTP:        NewHTTPMetrics(),
			ExternalAPI: NewExternalAPIMetrics(),
			Catalog:     NewCatalogMetrics(),
			Market:      NewMarketMetrics(),
			Error:       NewErrorMetrics(),
		}

		metrics.HTTP.Register(registry)
		metrics.ExternalAPI.Register(registry)
		metrics.Catalog.Register(registry)
		metrics.Market.Register(registry)
		metrics.Error.Register(registry)

		// Add Go runtime metrics
		registry.MustRegister(collectors.NewGoCollector())
		registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

		StartEndpointTracking()
	})
}

// NewServer creates a new metrics server
func NewServer(cfg *config.Config, logger *slog.Logger) *MetricsServer {
	metricsConfig := cfg.GetMetricsConfig()

	Init(cfg.GetChainId())

	mux := http.NewServeMux()
	mux.Handle(metricsConfig.Path, promhttp.HandlerFor(registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	}))

	server := &http.Server{
		Addr:              ":" + metricsConfig.Port,
		Handler:           mux,
		ReadHeaderTimeout: 3 * time.Second,
	}

	return &MetricsServer{
		server: server,
		logger: logger.With("component", "metrics"),
		cfg:    metricsConfig,
	}
}

// Start starts the metrics server
func (m *MetricsServer) Start() error {
	if !m.cfg.Enabled {
		m.logger.Info("metrics server disabled")
		return nil
	}

	m.logger.Info("starting metrics server",
		slog.String("addr", m.server.Addr),
		slog.String("path", m.cfg.Path))

	if err := m.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the metrics server
func (m *MetricsServer) Shutdown(ctx context.Context) error {
	if !m.cfg.Enabled {
		return nil
	}

	m.logger.Info("shutting down metrics server")
	StopEndpointTracking()
	return m.server.Shutdown(ctx)
}

// Registry exposes the registry for tests and custom handlers.
func Registry() *prometheus.Registry {
	Init(0)
	return registry
}

// GetMetrics returns the global metrics instance, initializing an unlabeled
// registry when nothing has called Init yet. One-shot commands and tests
// rely on this so instrumentation never has to nil-check.
func GetMetrics() *Metrics {
	Init(0)
	return metrics
}
