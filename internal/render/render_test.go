package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/weatherdash/internal/apiclient"
	"github.com/tphakala/weatherdash/internal/dashboard"
	"github.com/tphakala/weatherdash/internal/weather"
)

func TestAlertBadge(t *testing.T) {
	t.Parallel()
	assert.Equal(t, BadgeAlert, AlertBadge(true))
	assert.Equal(t, BadgeNormal, AlertBadge(false))
}

func TestGaugeColorFor(t *testing.T) {
	t.Parallel()

	f := apiclient.Float
	tests := []struct {
		name    string
		temp    float64
		minTemp *float64
		maxTemp *float64
		want    GaugeColor
	}{
		{"no bounds", 40, nil, nil, GaugeOrange},
		{"below min", -10, f(-5), f(25), GaugeBlue},
		{"above max", 30, f(-5), f(25), GaugeRed},
		{"inside range", 10, f(-5), f(25), GaugeOrange},
		{"at min", -5, f(-5), f(25), GaugeOrange},
		{"at max", 25, f(-5), f(25), GaugeOrange},
		{"min only below", 0, f(1), nil, GaugeBlue},
		{"max only above", 2, nil, f(1), GaugeRed},
		{"zero max is a bound", 0.5, nil, f(0), GaugeRed},
		{"inverted bounds check min first", 10, f(20), f(5), GaugeBlue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, GaugeColorFor(tt.temp, tt.minTemp, tt.maxTemp))
		})
	}
}

func TestIcon(t *testing.T) {
	t.Parallel()
	assert.Equal(t, weather.IconRain, Icon("Light Rain", 30))
	assert.Equal(t, weather.IconCloudy, Icon("cloudy", 30))
	assert.Equal(t, weather.IconClearSky, Icon("Clear", 21))
	assert.Equal(t, weather.IconCloudy, Icon("Clear", 20))
}

func TestFormatTemperature(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "21.0°C", FormatTemperature(21))
	assert.Equal(t, "-3.5°C", FormatTemperature(-3.46))
	assert.Equal(t, "-5°C", formatBound(-5))
	assert.Equal(t, "2.5°C", formatBound(2.5))
}

func osloCity() *apiclient.FavoriteCity {
	return &apiclient.FavoriteCity{
		ID: 1, City: "Oslo", Temperature: 30, Alert: true,
		MinTemp: apiclient.Float(-5), MaxTemp: apiclient.Float(25),
		LastUpdated: "2024-01-01T00:00:00Z",
	}
}

func TestCard_PlainText(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	r := New(Options{ASCII: true})
	require.NoError(t, r.Card(&buf, osloCity(), ""))

	out := buf.String()
	assert.Contains(t, out, "Oslo  [Alert]")
	assert.Contains(t, out, "│ Clear\n", "description defaults to Clear")
	assert.Contains(t, out, "(sun)  30.0°C")
	assert.Contains(t, out, "Min: -5°C")
	assert.Contains(t, out, "Max: 25°C")
	assert.Contains(t, out, "#1 · updated 2024-01-01T00:00:00Z")
	assert.NotContains(t, out, "\x1b[", "no escape sequences without colour")
}

func TestCard_NoBoundsNoRangeLines(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	fc := &apiclient.FavoriteCity{ID: 2, City: "Lima", Temperature: 18.25}
	require.NoError(t, New(Options{ASCII: true}).Card(&buf, fc, "overcast clouds"))

	out := buf.String()
	assert.Contains(t, out, "[Normal]")
	assert.Contains(t, out, "Overcast Clouds", "description is title-cased")
	assert.Contains(t, out, "(cloud)  18.2°C")
	assert.NotContains(t, out, "Min:")
	assert.NotContains(t, out, "Max:")
	assert.NotContains(t, out, "updated")
}

func TestCard_ColorAboveMaxIsRed(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, New(Options{Color: true}).Card(&buf, osloCity(), ""))

	out := buf.String()
	assert.Contains(t, out, ansiRed+ansiBold+"30.0°C"+ansiReset, "reading above max is red")
	assert.Contains(t, out, ansiRed+"┌", "alerting card has a red border")
}

func TestCard_ColorInRangeIsOrange(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	fc := &apiclient.FavoriteCity{ID: 3, City: "Rome", Temperature: 15}
	require.NoError(t, New(Options{Color: true}).Card(&buf, fc, ""))

	out := buf.String()
	assert.Contains(t, out, ansiOrange+ansiBold+"15.0°C")
	assert.False(t, strings.HasPrefix(out, ansiRed), "calm card border is plain")
}

func TestDashboard_EmptyState(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	state := &dashboard.State{}
	require.NoError(t, New(Options{}).Dashboard(&buf, state, nil))

	out := buf.String()
	assert.Contains(t, out, "Weather Dashboard")
	assert.Contains(t, out, "No cities yet")
	assert.Contains(t, out, "Add your first city")
}

func TestDashboard_ErrorBanner(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	state := &dashboard.State{Error: "failed to fetch favorite cities"}
	require.NoError(t, New(Options{}).Dashboard(&buf, state, nil))

	out := buf.String()
	assert.Contains(t, out, "Error: failed to fetch favorite cities")
	assert.NotContains(t, out, "No cities yet")
}

func TestDashboard_CardsInListOrder(t *testing.T) {
	t.Parallel()

	lima := apiclient.FavoriteCity{ID: 2, City: "Lima", Temperature: 18}
	state := &dashboard.State{Favorites: []apiclient.FavoriteCity{*osloCity(), lima}}

	var buf bytes.Buffer
	require.NoError(t, New(Options{ASCII: true}).Dashboard(&buf, state, map[int64]string{2: "light rain"}))

	out := buf.String()
	assert.Contains(t, out, "Your Favorite Cities (2, 1 alerting)")
	assert.Less(t, strings.Index(out, "Oslo"), strings.Index(out, "Lima"))
	assert.Contains(t, out, "Light Rain")
	assert.Contains(t, out, "(rain)  18.0°C")
}

func TestNewClampsWidth(t *testing.T) {
	t.Parallel()
	assert.Equal(t, defaultWidth, New(Options{}).opts.Width)
	assert.Equal(t, minWidth, New(Options{Width: 3}).opts.Width)
}

func TestConditions(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	r := New(Options{ASCII: true})
	require.NoError(t, r.Conditions(&buf, &apiclient.Weather{City: "London", Temperature: 12.3, Description: "light rain"}))
	assert.Equal(t, "(rain) London 12.3°C, Light Rain\n", buf.String())

	buf.Reset()
	require.NoError(t, r.Conditions(&buf, &apiclient.Weather{City: "Cairo", Temperature: 31}))
	assert.Equal(t, "(sun) Cairo 31.0°C\n", buf.String())
}

func TestSyncSummary(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	r := New(Options{})
	require.NoError(t, r.SyncSummary(&buf, &apiclient.SyncResult{SyncedCount: 3, Timestamp: "2024-01-01T00:00:00Z"}))
	assert.Equal(t, "Synced 3 cities at 2024-01-01T00:00:00Z\n", buf.String())
}
