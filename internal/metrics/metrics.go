// Package metrics records Prometheus metrics for weatherdash: remote API
// requests, dashboard state and alert notifications. A CLI run is short
// lived, so metrics are exported by writing a node_exporter textfile.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/tphakala/weatherdash/internal/errors"
)

// Metrics holds all the metric collectors for the application.
type Metrics struct {
	registry     *prometheus.Registry
	API          *APIMetrics
	Dashboard    *DashboardMetrics
	Notification *NotificationMetrics
}

// NewMetrics creates a new registry with every collector registered.
func NewMetrics() (*Metrics, error) {
	registry := prometheus.NewRegistry()

	apiMetrics, err := NewAPIMetrics(registry)
	if err != nil {
		return nil, fmt.Errorf("failed to create API metrics: %w", err)
	}

	dashboardMetrics, err := NewDashboardMetrics(registry)
	if err != nil {
		return nil, fmt.Errorf("failed to create dashboard metrics: %w", err)
	}

	notificationMetrics, err := NewNotificationMetrics(registry)
	if err != nil {
		return nil, fmt.Errorf("failed to create notification metrics: %w", err)
	}

	return &Metrics{
		registry:     registry,
		API:          apiMetrics,
		Dashboard:    dashboardMetrics,
		Notification: notificationMetrics,
	}, nil
}

// Registry returns the Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes all metrics in the Prometheus text format to path.
// The write is atomic so a collector never reads a partial file.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return errors.New(fmt.Errorf("failed to write metrics textfile: %w", err)).
			Component("metrics").
			Category(errors.CategoryFileIO).
			Context("path", path).
			Build()
	}
	return nil
}
