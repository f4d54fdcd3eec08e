package metrics

import (
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

var HTTPLatencyBuckets = []float64{0.005, 0.025, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}

// HTTPMetrics covers the API server. Handler labels are route groups, not
// raw paths, so ids in the URL never reach a label.
type HTTPMetrics struct {
	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge
	ErrorsTotal      *prometheus.CounterVec
	SlowRequests     *prometheus.CounterVec
	TopEndpoints     *prometheus.GaugeVec
}

func NewHTTPMetrics() *HTTPMetrics {
	return &HTTPMetrics{
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "sbtmarket_http_requests_total",
			Help:        "API requests by method, route group and status class",
			ConstLabels: constLabels(),
		}, []string{"method", "handler", "status_class"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "sbtmarket_http_request_duration_seconds",
			Help:        "API request latency",
			Buckets:     HTTPLatencyBuckets,
			ConstLabels: constLabels(),
		}, []string{"method", "handler"}),
		RequestsInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "sbtmarket_http_requests_in_flight",
			Help:        "API requests being served",
			ConstLabels: constLabels(),
		}),
		ErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "sbtmarket_http_errors_total",
			Help:        "API responses with a 4xx or 5xx status",
			ConstLabels: constLabels(),
		}, []string{"handler", "status"}),
		SlowRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "sbtmarket_http_slow_requests_total",
			Help:        "API requests slower than one second",
			ConstLabels: constLabels(),
		}, []string{"method", "handler", "duration_bucket"}),
		TopEndpoints: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "sbtmarket_http_top_endpoints_duration_p99",
			Help:        "p99 latency of the slowest route groups, refreshed periodically",
			ConstLabels: constLabels(),
		}, []string{"path"}),
	}
}

func (h *HTTPMetrics) Register(reg *prometheus.Registry) {
	reg.MustRegister(
		h.RequestsTotal,
		h.RequestDuration,
		h.RequestsInFlight,
		h.ErrorsTotal,
		h.SlowRequests,
		h.TopEndpoints,
	)
}

// GetStatusClass maps 2xx to 5xx codes onto their class, anything else to "other".
func GetStatusClass(statusCode int) string {
	if statusCode < 200 || statusCode > 599 {
		return "other"
	}
	return strconv.Itoa(statusCode/100) + "xx"
}

// GetHandlerPattern reduces a request path to its route group:
// /sbt/v1/types/3/claim is "types", /sbt/v1/admin/templates is "admin".
func GetHandlerPattern(path string) string {
	switch {
	case path == "" || path == "/":
		return "root"
	case path == "/health":
		return "health"
	case strings.HasPrefix(path, "/swagger"):
		return "swagger"
	}

	rest, ok := strings.CutPrefix(path, "/sbt/v1/")
	if !ok {
		return "other"
	}
	if group, _, _ := strings.Cut(rest, "/"); group != "" {
		return group
	}
	return "sbt"
}

// GetDurationBucket returns "" for requests under a second.
func GetDurationBucket(seconds float64) string {
	switch {
	case seconds < 1:
		return ""
	case seconds < 2:
		return "1-2s"
	case seconds < 5:
		return "2-5s"
	default:
		return "5s+"
	}
}
