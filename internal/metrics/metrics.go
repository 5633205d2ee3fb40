package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors of the person service and proxy.
// All methods are safe on a nil receiver so tests can skip registration.
type Metrics struct {
	PersonsCreated prometheus.Counter
	PersonsUpdated prometheus.Counter
	PersonsDeleted prometheus.Counter

	// Query and statistics latency by operation
	QueryLatency *prometheus.HistogramVec

	// Forwarded proxy calls by route and outcome
	UpstreamRequests *prometheus.CounterVec
}

// New creates and registers all metrics with the default registry
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers the metrics with reg
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		PersonsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "persons_created_total",
			Help: "Total number of persons created",
		}),
		PersonsUpdated: factory.NewCounter(prometheus.CounterOpts{
			Name: "persons_updated_total",
			Help: "Total number of persons updated",
		}),
		PersonsDeleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "persons_deleted_total",
			Help: "Total number of persons deleted",
		}),
		QueryLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "persons_query_duration_seconds",
			Help:    "Duration of list, count and statistics queries by operation",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"operation"}),
		UpstreamRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "proxy_upstream_requests_total",
			Help: "Demography calls forwarded to the central service by route and outcome",
		}, []string{"route", "outcome"}),
	}
}

// IncrementCreated counts one stored person
func (m *Metrics) IncrementCreated() {
	if m != nil {
		m.PersonsCreated.Inc()
	}
}

// IncrementUpdated counts one replaced person
func (m *Metrics) IncrementUpdated() {
	if m != nil {
		m.PersonsUpdated.Inc()
	}
}

// IncrementDeleted counts one removed person
func (m *Metrics) IncrementDeleted() {
	if m != nil {
		m.PersonsDeleted.Inc()
	}
}

// ObserveQuery records how long a query operation took since start
func (m *Metrics) ObserveQuery(operation string, start time.Time) {
	if m != nil {
		m.QueryLatency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	}
}

// IncrementUpstream records one forwarded proxy call
func (m *Metrics) IncrementUpstream(route, outcome string) {
	if m != nil {
		m.UpstreamRequests.WithLabelValues(route, outcome).Inc()
	}
}
