package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	btcRPCRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "depositledger",
		Subsystem: "rpc_client",
		Name:      "operations_total",
		Help:      "Count of wallet node RPC operations.",
	}, []string{"operation", "network", "status"})
	btcRPCRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "depositledger",
		Subsystem: "rpc_client",
		Name:      "operation_duration_seconds",
		Help:      "Duration of wallet node RPC operations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "network", "status"})
)

// RPCClient tracks metrics for RPC calls to the wallet node.
type RPCClient struct {
	network string
}

// NewRPCClient constructs a metrics collector for RPC calls.
func NewRPCClient(network string) *RPCClient {
	if network == "" {
		network = "unknown"
	}
	return &RPCClient{network: network}
}

// Observe records a single RPC call outcome and duration.
func (m RPCClient) Observe(operation string, err error, started time.Time) {
	status := statusOf(err)
	btcRPCRequestsTotal.WithLabelValues(operation, m.network, status).Inc()
	btcRPCRequestDuration.WithLabelValues(operation, m.network, status).Observe(time.Since(started).Seconds())
}
