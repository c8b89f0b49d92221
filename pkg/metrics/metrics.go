package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	StoreOperations *prometheus.CounterVec
	StoreErrors     *prometheus.CounterVec
	StoreLatency    *prometheus.HistogramVec
}

// New creates and registers all application metrics against the given
// registerer. Tests pass a fresh registry to avoid duplicate registration.
func New(reg prometheus.Registerer, namespace string) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		StoreOperations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "operations_total",
			Help:      "Total number of store operations",
		}, []string{"table", "operation"}),
		StoreErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "errors_total",
			Help:      "Total number of failed store operations",
		}, []string{"table", "operation"}),
		StoreLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "operation_duration_seconds",
			Help:      "Time spent executing store operations",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"table", "operation"}),
	}
}

// Observe records one store operation. Nil receivers are allowed so
// repositories can run without instrumentation.
func (m *Metrics) Observe(table, operation string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.StoreOperations.WithLabelValues(table, operation).Inc()
	m.StoreLatency.WithLabelValues(table, operation).Observe(duration.Seconds())
	if err != nil {
		m.StoreErrors.WithLabelValues(table, operation).Inc()
	}
}
