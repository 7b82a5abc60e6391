package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for the community API
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    prometheus.CounterVec
	HTTPRequestDuration  prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.GaugeVec

	// Database Metrics
	DBQueriesTotal  prometheus.CounterVec
	DBQueryDuration prometheus.HistogramVec

	// Business Metrics
	SignupsTotal        prometheus.Counter
	ApprovalsTotal      prometheus.Counter
	NotificationsPushed prometheus.Counter
	EmailsQueued        prometheus.Counter
	DigestJobDuration   prometheus.HistogramVec
}

// NewMetricsRegistry initializes and returns a new MetricsRegistry with all metrics
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		HTTPRequestsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "community_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "community_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "community_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		DBQueriesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "community_db_queries_total",
				Help: "Total database queries by operation type",
			},
			[]string{"query_type"},
		),
		DBQueryDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "community_db_query_duration_seconds",
				Help:    "Database query execution time in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"query_type"},
		),

		SignupsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "community_signups_total",
				Help: "Total accounts registered",
			},
		),
		ApprovalsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "community_approvals_total",
				Help: "Total accounts approved by admins",
			},
		),
		NotificationsPushed: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "community_notifications_pushed_total",
				Help: "Total notifications published to realtime channels",
			},
		),
		EmailsQueued: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "community_emails_queued_total",
				Help: "Total email tasks enqueued for the worker",
			},
		),
		DigestJobDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "community_digest_job_duration_seconds",
				Help:    "Devotional digest job execution time in seconds",
				Buckets: []float64{0.5, 1, 5, 10, 30, 60, 120, 300},
			},
			[]string{"job_name"},
		),
	}
}
