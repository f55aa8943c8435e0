// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Distribution metrics
	RunsTotal           *prometheus.CounterVec
	RunDuration         prometheus.Histogram
	HoldersEvaluated    prometheus.Counter
	HoldersDisqualified prometheus.Counter
	AllocationsEmitted  prometheus.Counter
	DustFiltered        prometheus.Counter
	TokensDistributed   prometheus.Counter

	// Database metrics
	DBQueryDuration *prometheus.HistogramVec
	DBQueryErrors   *prometheus.CounterVec

	// Health metrics
	LastSuccessfulRun prometheus.Gauge
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "solana_rewards_lab"
	}

	return &Metrics{
		// Distribution metrics
		RunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "distribution",
			Name:      "runs_total",
			Help:      "Total number of distribution runs by status",
		}, []string{"status"}),
		RunDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "distribution",
			Name:      "run_duration_seconds",
			Help:      "Distribution run duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
		HoldersEvaluated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "distribution",
			Name:      "holders_evaluated_total",
			Help:      "Total number of holders evaluated across runs",
		}),
		HoldersDisqualified: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "distribution",
			Name:      "holders_disqualified_total",
			Help:      "Total number of holders outside the balance bounds",
		}),
		AllocationsEmitted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "distribution",
			Name:      "allocations_emitted_total",
			Help:      "Total number of allocations emitted across runs",
		}),
		DustFiltered: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "distribution",
			Name:      "dust_filtered_total",
			Help:      "Total number of allocations dropped below the dust threshold",
		}),
		TokensDistributed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "distribution",
			Name:      "tokens_distributed_total",
			Help:      "Total tokens distributed across runs",
		}),

		// Database metrics
		DBQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "database",
			Name:      "query_duration_seconds",
			Help:      "Database query duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"database", "operation"}),
		DBQueryErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "database",
			Name:      "query_errors_total",
			Help:      "Total number of database query errors",
		}, []string{"database", "operation"}),

		// Health metrics
		LastSuccessfulRun: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "health",
			Name:      "last_successful_run_timestamp",
			Help:      "Unix timestamp of last successful distribution run",
		}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("")

// RecordRun records a completed distribution run.
func RecordRun(status string, durationSeconds float64) {
	DefaultMetrics.RunsTotal.WithLabelValues(status).Inc()
	DefaultMetrics.RunDuration.Observe(durationSeconds)
}

// RecordRunCounts records per-run holder and allocation counts.
func RecordRunCounts(holders, disqualified, allocations int, distributed float64) {
	DefaultMetrics.HoldersEvaluated.Add(float64(holders))
	DefaultMetrics.HoldersDisqualified.Add(float64(disqualified))
	DefaultMetrics.AllocationsEmitted.Add(float64(allocations))
	DefaultMetrics.TokensDistributed.Add(distributed)
}

// RecordDustFiltered records allocations dropped by the dust threshold.
func RecordDustFiltered(count int) {
	DefaultMetrics.DustFiltered.Add(float64(count))
}

// RecordDBQuery records database query metrics.
func RecordDBQuery(database, operation string, seconds float64, err error) {
	DefaultMetrics.DBQueryDuration.WithLabelValues(database, operation).Observe(seconds)
	if err != nil {
		DefaultMetrics.DBQueryErrors.WithLabelValues(database, operation).Inc()
	}
}

// MarkRunSuccess updates the last successful run timestamp gauge.
func MarkRunSuccess(unixSeconds int64) {
	DefaultMetrics.LastSuccessfulRun.Set(float64(unixSeconds))
}
