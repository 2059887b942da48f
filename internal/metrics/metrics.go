package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "employee_directory_http_requests_total",
		Help: "Total number of HTTP requests served by the console gateway",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "employee_directory_http_request_duration_seconds",
		Help:    "Duration of HTTP requests served by the console gateway",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	backendRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "employee_directory_backend_requests_total",
		Help: "Total number of requests sent to the employee backend",
	}, []string{"method", "status"})

	backendRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "employee_directory_backend_request_duration_seconds",
		Help:    "Duration of requests sent to the employee backend",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "status"})

	bulkDeletes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "employee_directory_bulk_deletes_total",
		Help: "Count of deletes issued through bulk delete, by result",
	}, []string{"result"})
)

// ObserveHTTPRequest records an inbound request
func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// ObserveBackendRequest records a call to the employee backend
func ObserveBackendRequest(method, status string, duration time.Duration) {
	backendRequestsTotal.WithLabelValues(method, status).Inc()
	backendRequestDuration.WithLabelValues(method, status).Observe(duration.Seconds())
}

func ObserveBulkDelete(result string) {
	bulkDeletes.WithLabelValues(result).Inc()
}
