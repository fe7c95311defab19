package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orbit_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "orbit_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	facadeFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orbit_facade_failures_total",
		Help: "Count of backend failures absorbed by the entities facade",
	}, []string{"operation"})

	inquirySubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orbit_inquiry_submissions_total",
		Help: "Count of tenant application submissions by result",
	}, []string{"result"})
)

// ObserveHTTPRequest records an HTTP request metric.
func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// ObserveFacadeFailure counts a backend failure that the facade converted
// into a defaulted result, labelled by operation (e.g. "Property.list").
func ObserveFacadeFailure(operation string) {
	facadeFailures.WithLabelValues(operation).Inc()
}

// ObserveInquirySubmission counts an application submission attempt.
func ObserveInquirySubmission(result string) {
	inquirySubmissions.WithLabelValues(result).Inc()
}
