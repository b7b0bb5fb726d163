package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymcore_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gymcore_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	BookingOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymcore_booking_operations_total",
			Help: "Booking engine operations by outcome (ok or the failure kind)",
		},
		[]string{"operation", "outcome"},
	)

	ConflictsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymcore_conflicts_total",
			Help: "Rejected commitments by conflict check",
		},
		[]string{"code"},
	)

	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymcore_notifications_total",
			Help: "Notification events queued",
		},
		[]string{"type", "status"},
	)

	NotifyQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gymcore_notify_queue_length",
			Help: "Current length of the notification queue",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordBooking(operation, outcome string) {
	BookingOperationsTotal.WithLabelValues(operation, outcome).Inc()
}

func RecordConflict(code string) {
	ConflictsTotal.WithLabelValues(code).Inc()
}

func RecordNotification(eventType, status string) {
	NotificationsTotal.WithLabelValues(eventType, status).Inc()
}

func SetNotifyQueueLength(n int64) {
	NotifyQueueLength.Set(float64(n))
}
