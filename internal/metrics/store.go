package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	storeOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "depositledger",
		Subsystem: "store",
		Name:      "operations_total",
		Help:      "Count of key-value store operations.",
	}, []string{"operation", "backend", "status"})
	storeOperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "depositledger",
		Subsystem: "store",
		Name:      "operation_duration_seconds",
		Help:      "Duration of key-value store operations.",
		Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
	}, []string{"operation", "backend", "status"})
)

// Store tracks metrics for key-value store operations.
type Store struct {
	backend string
}

// NewStore creates a Store metrics collector for the named backend.
func NewStore(backend string) *Store {
	if backend == "" {
		backend = "unknown"
	}
	return &Store{backend: backend}
}

// Observe records duration and status of a store operation.
func (m Store) Observe(operation string, err error, started time.Time) {
	status := statusOf(err)
	storeOperationsTotal.WithLabelValues(operation, m.backend, status).Inc()
	storeOperationDuration.WithLabelValues(operation, m.backend, status).Observe(time.Since(started).Seconds())
}

func statusOf(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
