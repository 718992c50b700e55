package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	activeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)

	leadsSold = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "leads_sold_total",
			Help: "Total number of leads sold",
		},
	)

	checkoutSessions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_sessions_total",
			Help: "Total number of checkout sessions opened",
		},
		[]string{"outcome"},
	)

	refundsResolved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "refunds_resolved_total",
			Help: "Total number of refund requests resolved",
		},
		[]string{"outcome"},
	)

	notificationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notification_errors_total",
			Help: "Total number of notification dispatch errors",
		},
		[]string{"event"},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		activeConnections.Inc()
		defer activeConnections.Dec()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(duration)
	})
}

func RecordLeadSold() {
	leadsSold.Inc()
}

func RecordCheckoutSession(outcome string) {
	checkoutSessions.WithLabelValues(outcome).Inc()
}

func RecordRefundResolved(outcome string) {
	refundsResolved.WithLabelValues(outcome).Inc()
}

func RecordNotificationError(event string) {
	notificationErrors.WithLabelValues(event).Inc()
}
