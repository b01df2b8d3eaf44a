// Package weather holds the standardized weather icon codes used on
// dashboard cards and the rules for picking one from a condition text.
package weather

import "strings"

// IconCode represents a standardized weather icon code
type IconCode string

// Standardized Icon Codes
const (
	IconClearSky     IconCode = "01"
	IconFair         IconCode = "02"
	IconPartlyCloudy IconCode = "03"
	IconCloudy       IconCode = "04"
	IconRainShowers  IconCode = "09"
	IconRain         IconCode = "10"
	IconThunderstorm IconCode = "11"
	IconSleet        IconCode = "12"
	IconSnow         IconCode = "13"
	IconFog          IconCode = "50"
	IconUnknown      IconCode = "unknown"
)

// WarmThreshold is the temperature (°C) above which a card without a
// recognised condition gets the sun icon instead of the cloud icon.
const WarmThreshold = 20.0

// IconDescription maps standardized icon codes to human-readable descriptions
var IconDescription = map[IconCode]string{
	IconClearSky:     "Clear Sky",
	IconFair:         "Fair",
	IconPartlyCloudy: "Partly Cloudy",
	IconCloudy:       "Cloudy",
	IconRainShowers:  "Rain Showers",
	IconRain:         "Rain",
	IconThunderstorm: "Thunderstorm",
	IconSleet:        "Sleet",
	IconSnow:         "Snow",
	IconFog:          "Fog",
	IconUnknown:      "Unknown",
}

// iconGlyph is the terminal rendering of each icon.
var iconGlyph = map[IconCode]string{
	IconClearSky:     "☀",
	IconFair:         "🌤",
	IconPartlyCloudy: "⛅",
	IconCloudy:       "☁",
	IconRainShowers:  "🌦",
	IconRain:         "🌧",
	IconThunderstorm: "⛈",
	IconSleet:        "🌨",
	IconSnow:         "❄",
	IconFog:          "🌫",
}

// asciiGlyph is used when the output cannot be assumed to handle emoji.
var asciiGlyph = map[IconCode]string{
	IconClearSky: "(sun)",
	IconCloudy:   "(cloud)",
	IconRain:     "(rain)",
}

// Glyph returns the symbol for an icon code. With ascii set only the
// three dashboard icons have dedicated forms; others fall back to their code.
func Glyph(code IconCode, ascii bool) string {
	if ascii {
		if g, ok := asciiGlyph[code]; ok {
			return g
		}
		return "(" + string(code) + ")"
	}
	if g, ok := iconGlyph[code]; ok {
		return g
	}
	return "?"
}

// SelectIcon picks the card icon for a condition description.
//
// A case-insensitive "rain" match wins over "cloud". Without a keyword
// match the choice depends only on temperature: above WarmThreshold is
// sunny, everything else (including exactly 20°C) is cloudy.
func SelectIcon(description string, temperature float64) IconCode {
	d := strings.ToLower(description)
	switch {
	case strings.Contains(d, "rain"):
		return IconRain
	case strings.Contains(d, "cloud"):
		return IconCloudy
	case temperature > WarmThreshold:
		return IconClearSky
	default:
		return IconCloudy
	}
}
