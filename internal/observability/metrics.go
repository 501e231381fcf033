package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"
)

var (
	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "folio_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// CacheHits counts cache-aside hits by key prefix.
	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "folio_cache_hits_total",
		Help: "Total number of cache hits by key prefix",
	}, []string{"prefix"})

	// CacheMisses counts cache-aside misses by key prefix.
	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "folio_cache_misses_total",
		Help: "Total number of cache misses by key prefix",
	}, []string{"prefix"})

	// PageViewsRecorded counts tracked analytics page views by device class.
	PageViewsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "folio_page_views_recorded_total",
		Help: "Total number of analytics page views recorded",
	}, []string{"device"})

	// AuthFailures counts rejected authentication attempts by reason.
	AuthFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "folio_auth_failures_total",
		Help: "Total number of failed authentication attempts by reason",
	}, []string{"reason"})
)

const dbStartKey = "observability:query_start"

// InstrumentDatabase registers GORM callbacks that record per-query latency
// into DatabaseQueryLatency, labeled by operation and table.
func InstrumentDatabase(db *gorm.DB) error {
	start := func(db *gorm.DB) { db.InstanceSet(dbStartKey, time.Now()) }
	observe := func(operation string) func(*gorm.DB) {
		return func(db *gorm.DB) {
			v, ok := db.InstanceGet(dbStartKey)
			if !ok {
				return
			}
			DatabaseQueryLatency.WithLabelValues(operation, db.Statement.Table).
				Observe(time.Since(v.(time.Time)).Seconds())
		}
	}

	if err := db.Callback().Create().Before("gorm:create").Register("observability:create_start", start); err != nil {
		return err
	}
	if err := db.Callback().Create().After("gorm:create").Register("observability:create_observe", observe("create")); err != nil {
		return err
	}
	if err := db.Callback().Query().Before("gorm:query").Register("observability:query_start", start); err != nil {
		return err
	}
	if err := db.Callback().Query().After("gorm:query").Register("observability:query_observe", observe("query")); err != nil {
		return err
	}
	if err := db.Callback().Update().Before("gorm:update").Register("observability:update_start", start); err != nil {
		return err
	}
	if err := db.Callback().Update().After("gorm:update").Register("observability:update_observe", observe("update")); err != nil {
		return err
	}
	if err := db.Callback().Delete().Before("gorm:delete").Register("observability:delete_start", start); err != nil {
		return err
	}
	return db.Callback().Delete().After("gorm:delete").Register("observability:delete_observe", observe("delete"))
}
