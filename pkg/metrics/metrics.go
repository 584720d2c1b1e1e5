package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "taskboard_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
		[]string{"method", "path", "status"},
	)

	TaskOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taskboard_task_operations_total",
			Help: "Task store operations against the data service",
		},
		[]string{"operation", "result"},
	)

	AuthOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taskboard_auth_operations_total",
			Help: "Session manager operations against the identity service",
		},
		[]string{"operation", "result"},
	)

	NotificationsRaised = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taskboard_notifications_raised_total",
			Help: "Local notifications raised by the deadline notifier",
		},
		[]string{"kind"}, // kind: deadline, daily
	)

	Exports = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taskboard_exports_total",
			Help: "Task list exports",
		},
		[]string{"format", "result"},
	)
)

func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

func IncrementTaskOperation(operation string, err error) {
	TaskOperations.WithLabelValues(operation, result(err)).Inc()
}

func IncrementAuthOperation(operation string, err error) {
	AuthOperations.WithLabelValues(operation, result(err)).Inc()
}

func IncrementNotification(kind string) {
	NotificationsRaised.WithLabelValues(kind).Inc()
}

func IncrementExport(format string, err error) {
	Exports.WithLabelValues(format, result(err)).Inc()
}

func result(err error) string {
	if err != nil {
		return ResultFailure
	}
	return ResultSuccess
}
