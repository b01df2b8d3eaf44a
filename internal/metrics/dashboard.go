package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/tphakala/weatherdash/internal/dashboard"
)

// DashboardMetrics tracks the favorites list as last seen by the controller.
type DashboardMetrics struct {
	favorites    prometheus.Gauge
	alerting     prometheus.Gauge
	syncedCities prometheus.Gauge
	actions      *prometheus.GaugeVec
}

// NewDashboardMetrics creates and registers dashboard metrics
func NewDashboardMetrics(registry *prometheus.Registry) (*DashboardMetrics, error) {
	m := &DashboardMetrics{
		favorites: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "weatherdash_favorite_cities",
			Help: "Number of favorite cities in the dashboard",
		}),
		alerting: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "weatherdash_alerting_cities",
			Help: "Number of favorite cities with an active temperature alert",
		}),
		syncedCities: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "weatherdash_last_sync_cities",
			Help: "Number of cities refreshed by the last successful sync",
		}),
		actions: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "weatherdash_action_status",
			Help: "Current status of each dashboard action (1 for the active status)",
		}, []string{"action", "status"}),
	}

	for _, c := range []prometheus.Collector{m.favorites, m.alerting, m.syncedCities, m.actions} {
		if err := registry.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register dashboard metrics: %w", err)
		}
	}
	return m, nil
}

// Observe updates the gauges from a controller snapshot. It has the
// signature expected by dashboard.WithObserver.
func (m *DashboardMetrics) Observe(state dashboard.State) {
	alerting := 0
	for i := range state.Favorites {
		if state.Favorites[i].Alert {
			alerting++
		}
	}
	m.favorites.Set(float64(len(state.Favorites)))
	m.alerting.Set(float64(alerting))

	if state.LastSync != nil {
		m.syncedCities.Set(float64(state.LastSync.SyncedCount))
	}

	m.actions.Reset()
	for action, status := range state.Status {
		m.actions.WithLabelValues(string(action), string(status)).Set(1)
	}
}
