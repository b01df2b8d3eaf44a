// Package render draws favorite cities for a terminal.
//
// The card components are pure functions of a FavoriteCity. They never
// recompute the alert flag; the gauge colour only compares the reading
// with the configured bounds.
package render

import (
	"strconv"

	"github.com/tphakala/weatherdash/internal/weather"
)

// Badge is the alert state shown on a card.
type Badge string

const (
	BadgeNormal Badge = "Normal"
	BadgeAlert  Badge = "Alert"
)

// AlertBadge returns the badge for the server-computed alert flag.
func AlertBadge(alert bool) Badge {
	if alert {
		return BadgeAlert
	}
	return BadgeNormal
}

// GaugeColor is the colour of a temperature reading.
type GaugeColor string

const (
	GaugeBlue   GaugeColor = "blue"
	GaugeRed    GaugeColor = "red"
	GaugeOrange GaugeColor = "orange"
)

// GaugeColorFor is blue below the minimum, red above the maximum and
// orange otherwise, including when no bounds are configured. The minimum
// is checked first.
func GaugeColorFor(temperature float64, minTemp, maxTemp *float64) GaugeColor {
	switch {
	case minTemp != nil && temperature < *minTemp:
		return GaugeBlue
	case maxTemp != nil && temperature > *maxTemp:
		return GaugeRed
	default:
		return GaugeOrange
	}
}

// Icon picks the weather icon for a card.
func Icon(description string, temperature float64) weather.IconCode {
	return weather.SelectIcon(description, temperature)
}

// FormatTemperature renders a reading with one decimal, e.g. "21.0°C".
func FormatTemperature(t float64) string {
	return strconv.FormatFloat(t, 'f', 1, 64) + "°C"
}

// formatBound renders a configured bound in its shortest form, e.g. "-5°C".
func formatBound(b float64) string {
	return strconv.FormatFloat(b, 'f', -1, 64) + "°C"
}

func (g GaugeColor) ansi() string {
	switch g {
	case GaugeBlue:
		return ansiBlue
	case GaugeRed:
		return ansiRed
	default:
		return ansiOrange
	}
}
