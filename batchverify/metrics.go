package batchverify

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// The spec treats the metrics sink as opaque to the verifier: this module
// exposes the same two request-scoped counters from Metrics as process-wide
// Prometheus counters, so a host that doesn't care about per-request
// numbers can still scrape aggregate totals.
var (
	batchRetriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "bls_batch_verifier",
			Name:      "batch_retries_total",
			Help:      "Number of batch-verification chunks that failed and were demoted to individual verification.",
		},
	)
	batchSigsSuccessTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "bls_batch_verifier",
			Name:      "batch_sigs_success_total",
			Help:      "Number of signature sets admitted via a successful batch-verification call.",
		},
	)
	requestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "bls_batch_verifier",
			Name:      "request_duration_seconds",
			Help:      "Wall-clock time spent processing one submit() request.",
			Buckets:   prometheus.DefBuckets,
		},
	)
)

// recordMetrics publishes a completed request's Metrics to the process
// registry. Called once per request by WorkerRuntime; never on the
// per-chunk hot path.
func recordMetrics(m Metrics) {
	batchRetriesTotal.Add(float64(m.BatchRetries))
	batchSigsSuccessTotal.Add(float64(m.BatchSigsSuccess))
	if !m.WorkerStart.IsZero() && !m.WorkerEnd.IsZero() {
		requestDuration.Observe(m.WorkerEnd.Sub(m.WorkerStart).Seconds())
	}
}
