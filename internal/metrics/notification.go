package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// NotificationMetrics contains Prometheus metrics for alert delivery.
type NotificationMetrics struct {
	deliveriesTotal  *prometheus.CounterVec // by sink and status
	deliveryDuration *prometheus.HistogramVec
}

// NewNotificationMetrics creates and registers notification metrics.
func NewNotificationMetrics(registry *prometheus.Registry) (*NotificationMetrics, error) {
	m := &NotificationMetrics{
		deliveriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "weatherdash_notification_deliveries_total",
				Help: "Total number of alert deliveries by sink and status",
			},
			[]string{"sink", "status"},
		),
		deliveryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "weatherdash_notification_delivery_duration_seconds",
				Help:    "Time taken to deliver an alert by sink",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0}, // 10ms to 30s
			},
			[]string{"sink"},
		),
	}
	if err := registry.Register(m); err != nil {
		return nil, fmt.Errorf("failed to register notification metrics: %w", err)
	}
	return m, nil
}

// Describe implements the Collector interface
func (m *NotificationMetrics) Describe(ch chan<- *prometheus.Desc) {
	m.deliveriesTotal.Describe(ch)
	m.deliveryDuration.Describe(ch)
}

// Collect implements the Collector interface
func (m *NotificationMetrics) Collect(ch chan<- prometheus.Metric) {
	m.deliveriesTotal.Collect(ch)
	m.deliveryDuration.Collect(ch)
}

// RecordDelivery records one delivery attempt to sink.
func (m *NotificationMetrics) RecordDelivery(sink string, err error, elapsed time.Duration) {
	status := StatusSuccess
	if err != nil {
		status = StatusError
	}
	m.deliveriesTotal.WithLabelValues(sink, status).Inc()
	m.deliveryDuration.WithLabelValues(sink).Observe(elapsed.Seconds())
}
