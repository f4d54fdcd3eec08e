package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	TxLatencyBuckets = []float64{1, 2.5, 5, 10, 20, 30, 60, 120}
)

// MarketMetrics groups claim and admin action metrics
type MarketMetrics struct {
	ActionsTotal     *prometheus.CounterVec
	ActionDuration   *prometheus.HistogramVec
	ActionsInFlight  prometheus.Gauge
	RejectionsTotal  *prometheus.CounterVec
	ConsentsRecorded prometheus.Counter
}

// NewMarketMetrics creates and returns market metrics
func NewMarketMetrics() *MarketMetrics {
	return &MarketMetrics{
		ActionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "sbtmarket_actions_total",
				Help:        "Total number of submitted contract actions by outcome",
				ConstLabels: constLabels(),
			},
			[]string{"action", "outcome"}, // outcome: confirmed, reverted, failed
		),
		ActionDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "sbtmarket_action_duration_seconds",
				Help:        "Time from submission to confirmation of contract actions",
				Buckets:     TxLatencyBuckets,
				ConstLabels: constLabels(),
			},
			[]string{"action"},
		),
		ActionsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name:        "sbtmarket_actions_in_flight",
				Help:        "Number of contract actions awaiting confirmation",
				ConstLabels: constLabels(),
			},
		),
		RejectionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "sbtmarket_action_rejections_total",
				Help:        "Total number of actions rejected before submission",
				ConstLabels: constLabels(),
			},
			[]string{"action", "reason"},
		),
		ConsentsRecorded: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name:        "sbtmarket_consents_recorded_total",
				Help:        "Total number of recorded policy consents",
				ConstLabels: constLabels(),
			},
		),
	}
}

// Register registers all market metrics with the given registry
func (m *MarketMetrics) Register(reg *prometheus.Registry) {
	reg.MustRegister(
		m.ActionsTotal,
		m.ActionDuration,
		m.ActionsInFlight,
		m.RejectionsTotal,
		m.ConsentsRecorded,
	)
}
