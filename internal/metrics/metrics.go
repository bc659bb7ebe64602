// Package metrics provides Prometheus metrics for the clinic analytics
// service. Scrape these at /metrics for Grafana dashboards and alerting.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"

	"github.com/25ayu25/BEGC-FinancialManagementSystem-sub002/internal/models"
)

var (
	// HTTP Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clinic_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "clinic_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Report Cache Metrics
	ReportCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "clinic_report_cache_hits_total",
			Help: "Trend/breakdown responses served from the report cache",
		},
	)

	ReportCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "clinic_report_cache_misses_total",
			Help: "Trend/breakdown responses computed from the database",
		},
	)

	// Snapshot Worker Metrics
	SnapshotsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "clinic_snapshots_total",
			Help: "Daily snapshots written since start",
		},
	)

	SnapshotDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "clinic_snapshot_duration_seconds",
			Help:    "Time taken to compute and store a daily snapshot",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
	)

	// Auth Metrics
	LoginAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clinic_login_attempts_total",
			Help: "Login attempts by result",
		},
		[]string{"result"}, // "success", "failed", "rate_limited"
	)

	// Business Metrics
	TransactionsTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "clinic_transactions_total",
			Help: "Number of transaction rows in the database",
		},
	)

	OutstandingInsurance = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "clinic_insurance_outstanding",
			Help: "Claimed minus paid across all insurance providers",
		},
	)

	ExportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clinic_exports_total",
			Help: "Export downloads by format",
		},
		[]string{"format"}, // "csv", "xlsx", "html"
	)
)

// UpdateBusinessMetrics refreshes the database-derived gauges. Called
// after writes and by the snapshot worker.
func UpdateBusinessMetrics(db *gorm.DB) {
	var txCount int64
	if err := db.Model(&models.Transaction{}).Count(&txCount).Error; err == nil {
		TransactionsTotal.Set(float64(txCount))
	}

	var claimed, paid float64
	db.Model(&models.InsuranceClaim{}).
		Where("status != ?", models.ClaimRejected).
		Select("COALESCE(SUM(amount), 0)").Scan(&claimed)
	db.Model(&models.InsurancePayment{}).
		Select("COALESCE(SUM(amount), 0)").Scan(&paid)
	OutstandingInsurance.Set(claimed - paid)
}
