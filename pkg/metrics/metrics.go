package metrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "instudio_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "instudio_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	DatabaseTransactionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "instudio_database_transactions_total",
			Help: "Total number of database transactions",
		},
		[]string{"mode", "outcome"},
	)

	DatabaseTransactionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "instudio_database_transaction_duration_seconds",
			Help:    "Database transaction latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"mode"},
	)

	OrdersCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "instudio_orders_created_total",
			Help: "Number of orders created",
		},
	)

	OrderDetailsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "instudio_order_details_created_total",
			Help: "Number of order line items created",
		},
	)

	PaymentsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "instudio_payments_recorded_total",
			Help: "Number of payments recorded",
		},
		[]string{"method"},
	)

	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "instudio_auth_attempts_total",
			Help: "Login and registration attempts",
		},
		[]string{"action", "outcome"},
	)

	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "instudio_cache_hits_total",
			Help: "Number of cache hits",
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "instudio_cache_misses_total",
			Help: "Number of cache misses",
		},
	)
)

func RecordHttpRequest(method, route, status string, duration time.Duration) {
	HttpRequestsTotal.WithLabelValues(method, route, status).Inc()
	HttpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func RecordTransaction(mode, outcome string, duration time.Duration) {
	DatabaseTransactionsTotal.WithLabelValues(mode, outcome).Inc()
	DatabaseTransactionDuration.WithLabelValues(mode).Observe(duration.Seconds())
}

func RecordOrderCreated() {
	OrdersCreated.Inc()
}

func RecordOrderDetailCreated() {
	OrderDetailsCreated.Inc()
}

// paymentMethods bounds the method label; anything else is counted as "other".
var paymentMethods = map[string]bool{
	"transfer": true,
	"cash":     true,
	"card":     true,
	"ewallet":  true,
}

func paymentMethodLabel(method string) string {
	m := strings.ToLower(strings.TrimSpace(method))
	if paymentMethods[m] {
		return m
	}
	return "other"
}

func RecordPayment(method string) {
	PaymentsRecorded.WithLabelValues(paymentMethodLabel(method)).Inc()
}

func RecordAuthAttempt(action, outcome string) {
	AuthAttempts.WithLabelValues(action, outcome).Inc()
}

func RecordCacheHit() {
	CacheHits.Inc()
}

func RecordCacheMiss() {
	CacheMisses.Inc()
}
