package observability

import (
	"database/sql"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds every custom metric the service exports.
type Metrics struct {
	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Domain Metrics
	SignupsTotal        prometheus.Counter
	LoginsTotal         *prometheus.CounterVec
	SessionsDestroyed   prometheus.Counter
	RecipesCreatedTotal prometheus.Counter

	// Database Metrics
	DBConnectionsOpen  prometheus.Gauge
	DBConnectionsInUse prometheus.Gauge

	// Cache (Redis) Metrics
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),

		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		HTTPRequestsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
		),

		SignupsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "signups_total",
				Help: "Total number of accounts created",
			},
		),

		LoginsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "logins_total",
				Help: "Total number of login attempts",
			},
			[]string{"status"}, // status: success, failure
		),

		SessionsDestroyed: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "sessions_destroyed_total",
				Help: "Total number of sessions ended by logout",
			},
		),

		RecipesCreatedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "recipes_created_total",
				Help: "Total number of recipes created",
			},
		),

		DBConnectionsOpen: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "db_connections_open",
				Help: "Number of open database connections",
			},
		),

		DBConnectionsInUse: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "db_connections_in_use",
				Help: "Number of database connections currently in use",
			},
		),

		CacheHitsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cache_hits_total",
				Help: "Total number of cache hits",
			},
			[]string{"key_type"},
		),

		CacheMissesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cache_misses_total",
				Help: "Total number of cache misses",
			},
			[]string{"key_type"},
		),
	}
}

// GlobalMetrics is the process-wide metrics instance. It is nil in
// unit tests, so the helpers below guard before touching it.
var GlobalMetrics *Metrics

func InitMetrics() {
	GlobalMetrics = NewMetrics()
}

func IncSignup() {
	if GlobalMetrics != nil {
		GlobalMetrics.SignupsTotal.Inc()
	}
}

func IncLogin(status string) {
	if GlobalMetrics != nil {
		GlobalMetrics.LoginsTotal.WithLabelValues(status).Inc()
	}
}

func IncSessionDestroyed() {
	if GlobalMetrics != nil {
		GlobalMetrics.SessionsDestroyed.Inc()
	}
}

func IncRecipeCreated() {
	if GlobalMetrics != nil {
		GlobalMetrics.RecipesCreatedTotal.Inc()
	}
}

func IncCacheHit(keyType string) {
	if GlobalMetrics != nil {
		GlobalMetrics.CacheHitsTotal.WithLabelValues(keyType).Inc()
	}
}

func IncCacheMiss(keyType string) {
	if GlobalMetrics != nil {
		GlobalMetrics.CacheMissesTotal.WithLabelValues(keyType).Inc()
	}
}

// CollectDBStats samples connection pool gauges until stop is closed.
func CollectDBStats(db *sql.DB, stop <-chan struct{}) {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if GlobalMetrics == nil {
				continue
			}
			stats := db.Stats()
			GlobalMetrics.DBConnectionsOpen.Set(float64(stats.OpenConnections))
			GlobalMetrics.DBConnectionsInUse.Set(float64(stats.InUse))
		}
	}
}
