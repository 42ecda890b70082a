package middlewares

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
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

	transcriptionsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "transcriptions_processed_total",
			Help: "Total number of audio transcriptions processed",
		},
		[]string{"status"},
	)

	contactsDelivered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contacts_delivered_total",
			Help: "Total number of contacts forwarded to the CRM webhook",
		},
		[]string{"variant", "status"},
	)

	integrationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "integration_errors_total",
			Help: "Total number of integration errors",
		},
		[]string{"service"},
	)
)

// Metrics records request counts and latency per route. Uses the route
// pattern (not the raw path) to keep cardinality bounded.
func Metrics() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		path := c.Route().Path
		status := strconv.Itoa(c.Response().StatusCode())
		httpRequestsTotal.WithLabelValues(c.Method(), path, status).Inc()
		httpRequestDuration.WithLabelValues(c.Method(), path).Observe(time.Since(start).Seconds())

		return err
	}
}

func RecordTranscription(status string) {
	transcriptionsProcessed.WithLabelValues(status).Inc()
}

func RecordDelivery(variant, status string) {
	contactsDelivered.WithLabelValues(variant, status).Inc()
}

func RecordIntegrationError(service string) {
	integrationErrors.WithLabelValues(service).Inc()
}
