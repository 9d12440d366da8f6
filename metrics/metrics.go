// Package metrics holds the Prometheus collectors for the HTTP API, the
// document store and the image uploader.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "route"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of in-flight API requests",
		},
	)

	DBOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "store_operation_duration_seconds",
			Help:    "Duration of document store operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "collection"},
	)

	DBOperationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_operation_errors_total",
			Help: "Total number of failed document store operations",
		},
		[]string{"operation", "collection"},
	)

	ImageUploads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "image_uploads_total",
			Help: "Image uploads by outcome (success, failure, rejected)",
		},
		[]string{"outcome"},
	)

	ImageUploadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "image_upload_duration_seconds",
			Help:    "Duration of image uploads in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	InvoicesCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "invoices_created_total",
			Help: "Total number of invoices created",
		},
	)
)

// RecordAPIRequest records one finished HTTP request.
func RecordAPIRequest(method, route, statusCode string, d time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// TrackActiveRequest moves the in-flight gauge.
func TrackActiveRequest(start bool) {
	if start {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordStoreOperation records one store round-trip.
func RecordStoreOperation(operation, collection string, d time.Duration, err error) {
	DBOperationDuration.WithLabelValues(operation, collection).Observe(d.Seconds())
	if err != nil {
		DBOperationErrors.WithLabelValues(operation, collection).Inc()
	}
}

// RecordImageUpload records an upload attempt. outcome is success, failure
// or rejected (circuit open).
func RecordImageUpload(outcome string, d time.Duration) {
	ImageUploads.WithLabelValues(outcome).Inc()
	if outcome != "rejected" {
		ImageUploadDuration.Observe(d.Seconds())
	}
}
