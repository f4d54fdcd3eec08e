package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	ScanLatencyBuckets = []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60}
)

// CatalogMetrics groups catalog reconciliation metrics
type CatalogMetrics struct {
	ScansTotal        *prometheus.CounterVec
	ScanDuration      *prometheus.HistogramVec
	ItemsScanned      *prometheus.CounterVec
	ItemFailures      *prometheus.CounterVec
	AvailableEntries  prometheus.Gauge
	LastScanTimestamp *prometheus.GaugeVec
}

// NewCatalogMetrics creates and returns catalog metrics
func NewCatalogMetrics() *CatalogMetrics {
	return &CatalogMetrics{
		ScansTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "sbtmarket_catalog_scans_total",
				Help:        "Total number of catalog scans by kind and outcome",
				ConstLabels: constLabels(),
			},
			[]string{"kind", "outcome"}, // kind: available, owned, dashboard; outcome: populated, empty, abandoned
		),
		ScanDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "sbtmarket_catalog_scan_duration_seconds",
				Help:        "Time spent on a complete catalog scan",
				Buckets:     ScanLatencyBuckets,
				ConstLabels: constLabels(),
			},
			[]string{"kind"},
		),
		ItemsScanned: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "sbtmarket_catalog_items_scanned_total",
				Help:        "Total number of type ids or tokens scanned",
				ConstLabels: constLabels(),
			},
			[]string{"kind"},
		),
		ItemFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "sbtmarket_catalog_item_failures_total",
				Help:        "Total number of skipped items by failure stage",
				ConstLabels: constLabels(),
			},
			[]string{"kind", "stage"}, // stage: read, metadata
		),
		AvailableEntries: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name:        "sbtmarket_catalog_available_entries",
				Help:        "Number of entries in the current available snapshot",
				ConstLabels: constLabels(),
			},
		),
		LastScanTimestamp: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name:        "sbtmarket_catalog_last_scan_timestamp_seconds",
				Help:        "Unix time of the last completed scan",
				ConstLabels: constLabels(),
			},
			[]string{"kind"},
		),
	}
}

// Register registers all catalog metrics with the given registry
func (c *CatalogMetrics) Register(reg *prometheus.Registry) {
	reg.MustRegister(
		c.ScansTotal,
		c.ScanDuration,
		c.ItemsScanned,
		c.ItemFailures,
		c.AvailableEntries,
		c.LastScanTimestamp,
	)
}
