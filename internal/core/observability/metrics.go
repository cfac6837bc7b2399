// Package observability wires Prometheus metrics for the forecast
// composition service: HTTP latency, upstream fetch outcomes, cache op
// timings, and classification/segment-status tallies.
package observability

import (
	"strconv"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
)

var enabled atomic.Bool

// Init registers all collectors against r if isEnabled, gating every
// Observe/Inc call behind an atomic-bool so metrics can be compiled in and
// cheaply disabled in environments without a scrape target.
func Init(r prometheus.Registerer, isEnabled bool) {
	enabled.Store(isEnabled)
	if !isEnabled || r == nil {
		return
	}
	initCollectors(r)
}

func Enabled() bool { return enabled.Load() }

var (
	httpRequestsTotal          *prometheus.CounterVec
	httpRequestDurationSeconds *prometheus.HistogramVec
	fetchTotal                 *prometheus.CounterVec
	cacheOpDurationSeconds     *prometheus.HistogramVec
	classificationBucketTotal  *prometheus.CounterVec
	segmentDataStatusTotal     *prometheus.CounterVec
)

func initCollectors(r prometheus.Registerer) {
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total number of HTTP requests."},
		[]string{"method", "route", "status"},
	)
	httpRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "Duration of HTTP requests in seconds.", Buckets: prometheus.ExponentialBuckets(0.005, 2, 12)},
		[]string{"method", "route", "status"},
	)
	fetchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "fetch_total", Help: "Count of upstream fetches by cast type and source."},
		[]string{"cast_type", "source"},
	)
	cacheOpDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "cache_op_duration_seconds", Help: "Latency of cache store operations in seconds.", Buckets: prometheus.ExponentialBuckets(0.001, 2, 15)},
		[]string{"op"},
	)
	classificationBucketTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "classification_bucket_total", Help: "Count of slots classified into each color bucket."},
		[]string{"bucket"},
	)
	segmentDataStatusTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "segment_data_status_total", Help: "Count of assembled segments by data status."},
		[]string{"status"},
	)

	r.MustRegister(
		httpRequestsTotal, httpRequestDurationSeconds,
		fetchTotal, cacheOpDurationSeconds,
		classificationBucketTotal, segmentDataStatusTotal,
	)
}

func ObserveHTTP(method, route string, status int, durationSeconds float64) {
	if !enabled.Load() || httpRequestsTotal == nil {
		return
	}
	st := strconv.Itoa(status)
	httpRequestsTotal.WithLabelValues(method, route, st).Inc()
	httpRequestDurationSeconds.WithLabelValues(method, route, st).Observe(durationSeconds)
}

func IncFetch(castType, source string) {
	if !enabled.Load() || fetchTotal == nil {
		return
	}
	fetchTotal.WithLabelValues(castType, source).Inc()
}

func ObserveCacheOp(op string, durationSeconds float64) {
	if !enabled.Load() || cacheOpDurationSeconds == nil {
		return
	}
	if op == "" {
		op = "unknown"
	}
	cacheOpDurationSeconds.WithLabelValues(op).Observe(durationSeconds)
}

func IncClassificationBucket(bucket string) {
	if !enabled.Load() || classificationBucketTotal == nil {
		return
	}
	classificationBucketTotal.WithLabelValues(bucket).Inc()
}

func IncSegmentDataStatus(status string) {
	if !enabled.Load() || segmentDataStatusTotal == nil {
		return
	}
	segmentDataStatusTotal.WithLabelValues(status).Inc()
}
