package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/tea-network/sbtmarket/types"
)

// ErrorMetrics counts failures and panics per component and publishes the
// last known health of long running components.
type ErrorMetrics struct {
	PanicsTotal     *prometheus.CounterVec
	ErrorsTotal     *prometheus.CounterVec
	ComponentHealth *prometheus.GaugeVec
}

func NewErrorMetrics() *ErrorMetrics {
	return &ErrorMetrics{
		PanicsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "sbtmarket_panics_total",
			Help:        "Recovered panics by component",
			ConstLabels: constLabels(),
		}, []string{"component"}),
		ErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "sbtmarket_errors_total",
			Help:        "Errors by component and error type",
			ConstLabels: constLabels(),
		}, []string{"component", "error_type"}),
		ComponentHealth: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "sbtmarket_component_health",
			Help:        "1 when the last cycle of the component succeeded, 0 otherwise",
			ConstLabels: constLabels(),
		}, []string{"component"}),
	}
}

func (e *ErrorMetrics) Register(reg *prometheus.Registry) {
	reg.MustRegister(e.PanicsTotal, e.ErrorsTotal, e.ComponentHealth)
}

func TrackError(component, errorType string) {
	GetMetrics().Error.ErrorsTotal.WithLabelValues(component, errorType).Inc()
}

// TrackFailure labels err with its StandardError type.
func TrackFailure(component string, err error) {
	if err == nil {
		return
	}
	TrackError(component, string(types.ErrorTypeOf(err)))
}

func SetComponentHealth(component string, healthy bool) {
	var v float64
	if healthy {
		v = 1
	}
	GetMetrics().Error.ComponentHealth.WithLabelValues(component).Set(v)
}

// RecoverFromPanic is deferred by component loops. It counts the panic and
// panics again with the component name attached.
func RecoverFromPanic(component string) {
	r := recover()
	if r == nil {
		return
	}
	GetMetrics().Error.PanicsTotal.WithLabelValues(component).Inc()
	TrackError(component, "panic")
	panic(fmt.Sprintf("%s: %v", component, r))
}
