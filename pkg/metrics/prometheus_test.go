package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveCountsByOutcome(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics("baggage", reg)

	m.Observe("insert", OutcomeSuccess, 0.01)
	m.Observe("insert", OutcomeSuccess, 0.02)
	m.Observe("insert", "validation", 0)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.OperationsTotal.WithLabelValues("insert", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OperationsTotal.WithLabelValues("insert", "validation")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.OperationDuration))
}

func TestSetStoredRecords(t *testing.T) {
	m := NewMetrics("baggage", prometheus.NewRegistry())
	m.SetStoredRecords(7)
	assert.Equal(t, 7.0, testutil.ToFloat64(m.StoredRecords))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.Observe("insert", OutcomeSuccess, 1)
	m.SetStoredRecords(3)
}
