package metrics

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/tphakala/weatherdash/internal/errors"
	"github.com/tphakala/weatherdash/internal/httpclient"
)

// APIMetrics contains Prometheus metrics for remote weather API requests
type APIMetrics struct {
	requestsTotal   *prometheus.CounterVec
	requestErrors   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewAPIMetrics creates and registers API request metrics
func NewAPIMetrics(registry *prometheus.Registry) (*APIMetrics, error) {
	m := &APIMetrics{}
	m.initMetrics()
	if err := registry.Register(m); err != nil {
		return nil, fmt.Errorf("failed to register API metrics: %w", err)
	}
	return m, nil
}

func (m *APIMetrics) initMetrics() {
	m.requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weatherdash_api_requests_total",
			Help: "Total number of remote weather API requests",
		},
		[]string{"operation", "status_code"}, // status_code 0 means no response
	)

	m.requestErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weatherdash_api_request_errors_total",
			Help: "Total number of failed remote weather API requests",
		},
		[]string{"operation", "error_type"},
	)

	m.requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "weatherdash_api_request_duration_seconds",
			Help: "Time taken by remote weather API requests",
			// 10ms, 20ms, 40ms ... ~5s
			Buckets: prometheus.ExponentialBuckets(BucketStart10ms, BucketFactor2, BucketCount10),
		},
		[]string{"operation"},
	)
}

// Describe implements the Collector interface
func (m *APIMetrics) Describe(ch chan<- *prometheus.Desc) {
	m.requestsTotal.Describe(ch)
	m.requestErrors.Describe(ch)
	m.requestDuration.Describe(ch)
}

// Collect implements the Collector interface
func (m *APIMetrics) Collect(ch chan<- prometheus.Metric) {
	m.requestsTotal.Collect(ch)
	m.requestErrors.Collect(ch)
	m.requestDuration.Collect(ch)
}

// Instrument records every request made through client.
func (m *APIMetrics) Instrument(client *httpclient.Client) {
	client.SetAfterResponseHook(m.ObserveRequest)
}

// ObserveRequest records one completed request. resp is nil when err is set.
func (m *APIMetrics) ObserveRequest(req *http.Request, resp *http.Response, err error, elapsed time.Duration) {
	op := httpclient.OperationFromContext(req.Context())
	m.requestDuration.WithLabelValues(op).Observe(elapsed.Seconds())

	if err != nil {
		m.requestsTotal.WithLabelValues(op, "0").Inc()
		m.requestErrors.WithLabelValues(op, classifyError(err)).Inc()
		return
	}

	m.requestsTotal.WithLabelValues(op, strconv.Itoa(resp.StatusCode)).Inc()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		m.requestErrors.WithLabelValues(op, ErrorTypeStatus).Inc()
	}
}

func classifyError(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return ErrorTypeTimeout
	case errors.Is(err, context.Canceled):
		return ErrorTypeCanceled
	default:
		return ErrorTypeTransport
	}
}
