package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label for operations that did not fail
const OutcomeSuccess = "success"

// Metrics holds all prometheus metrics
type Metrics struct {
	OperationsTotal   *prometheus.CounterVec
	OperationDuration *prometheus.HistogramVec
	StoredRecords     prometheus.Gauge
}

// NewMetrics creates new prometheus metrics registered on reg
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		OperationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_operations_total",
			Help:      "The total number of record store operations by outcome",
		}, []string{"operation", "outcome"}),
		OperationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "store_operation_duration_seconds",
			Help:      "Time taken by record store operations",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		StoredRecords: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "stored_records",
			Help:      "Number of baggage records seen by the last full read or count",
		}),
	}
}

// Observe records one finished operation
func (m *Metrics) Observe(operation, outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.OperationsTotal.WithLabelValues(operation, outcome).Inc()
	m.OperationDuration.WithLabelValues(operation).Observe(seconds)
}

// SetStoredRecords updates the record gauge
func (m *Metrics) SetStoredRecords(n int) {
	if m == nil {
		return
	}
	m.StoredRecords.Set(float64(n))
}
