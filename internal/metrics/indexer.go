package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	customerUpsertTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "depositledger",
		Subsystem: "customer_index",
		Name:      "upsert_total",
		Help:      "Count of customer batch upserts.",
	}, []string{"status"})

	customerUpsertSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "depositledger",
		Subsystem: "customer_index",
		Name:      "upsert_size",
		Help:      "Number of customers per upsert batch.",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
	})

	customerUpsertDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "depositledger",
		Subsystem: "customer_index",
		Name:      "upsert_duration_seconds",
		Help:      "Duration of customer batch upserts.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"status"})

	ledgerIngestTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "depositledger",
		Subsystem: "ledger",
		Name:      "ingest_total",
		Help:      "Count of transaction ingestion runs.",
	}, []string{"status"})

	ledgerTransactionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "depositledger",
		Subsystem: "ledger",
		Name:      "transactions_total",
		Help:      "Count of ingested transactions by outcome.",
	}, []string{"outcome"})

	ledgerIngestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "depositledger",
		Subsystem: "ledger",
		Name:      "ingest_duration_seconds",
		Help:      "Duration of transaction ingestion runs.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"status"})

	statsComputeTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "depositledger",
		Subsystem: "stats",
		Name:      "compute_total",
		Help:      "Count of bucket statistics computations.",
	}, []string{"bucket", "status"})

	statsComputeDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "depositledger",
		Subsystem: "stats",
		Name:      "compute_duration_seconds",
		Help:      "Duration of bucket statistics computations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"bucket", "status"})

	statsBucketSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "depositledger",
		Subsystem: "stats",
		Name:      "bucket_size",
		Help:      "Number of members scanned per statistics computation.",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
	})
)

// Indexer tracks metrics for customer indexing, transaction ingestion and statistics.
type Indexer struct{}

// NewIndexer creates an Indexer metrics collector.
func NewIndexer() *Indexer {
	return &Indexer{}
}

// ObserveUpsert records a customer batch upsert.
func (m Indexer) ObserveUpsert(err error, customers int, started time.Time) {
	status := statusOf(err)
	customerUpsertTotal.WithLabelValues(status).Inc()
	customerUpsertDuration.WithLabelValues(status).Observe(time.Since(started).Seconds())
	customerUpsertSize.Observe(float64(customers))
}

// ObserveIngest records a transaction ingestion run and its per-transaction outcomes.
func (m Indexer) ObserveIngest(err error, written, duplicates, skipped int, started time.Time) {
	status := statusOf(err)
	ledgerIngestTotal.WithLabelValues(status).Inc()
	ledgerIngestDuration.WithLabelValues(status).Observe(time.Since(started).Seconds())
	ledgerTransactionsTotal.WithLabelValues("written").Add(float64(written))
	ledgerTransactionsTotal.WithLabelValues("duplicate").Add(float64(duplicates))
	ledgerTransactionsTotal.WithLabelValues("skipped").Add(float64(skipped))
}

// ObserveStats records a statistics computation for a bucket kind (customer or anonymous).
func (m Indexer) ObserveStats(bucket string, err error, members int64, started time.Time) {
	status := statusOf(err)
	statsComputeTotal.WithLabelValues(bucket, status).Inc()
	statsComputeDuration.WithLabelValues(bucket, status).Observe(time.Since(started).Seconds())
	if err == nil {
		statsBucketSize.Observe(float64(members))
	}
}
