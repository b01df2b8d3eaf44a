package render

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tphakala/weatherdash/internal/apiclient"
	"github.com/tphakala/weatherdash/internal/dashboard"
	"github.com/tphakala/weatherdash/internal/weather"
)

const (
	defaultWidth = 40
	minWidth     = 24
)

// Options control terminal rendering.
type Options struct {
	Color bool // emit ANSI colour sequences
	ASCII bool // use ASCII icons instead of emoji
	Width int  // card rule width, defaults to 40
}

// Renderer writes cards and dashboard pages.
type Renderer struct {
	opts  Options
	style style
	title cases.Caser
}

// New creates a Renderer.
func New(opts Options) *Renderer {
	if opts.Width <= 0 {
		opts.Width = defaultWidth
	}
	opts.Width = max(opts.Width, minWidth)
	return &Renderer{
		opts:  opts,
		style: style{enabled: opts.Color},
		title: cases.Title(language.English),
	}
}

// Card writes one city card. An empty description defaults to "Clear".
// Alerting cards get a red border.
func (r *Renderer) Card(w io.Writer, fc *apiclient.FavoriteCity, description string) error {
	if description == "" {
		description = dashboard.DefaultDescription
	}

	border := func(s string) string { return s }
	if fc.Alert {
		border = func(s string) string { return r.style.paint(ansiRed, s) }
	}
	rule := strings.Repeat("─", r.opts.Width)
	bar := border("│")

	badge := AlertBadge(fc.Alert)
	badgeText := "[" + string(badge) + "]"
	if badge == BadgeAlert {
		badgeText = r.style.paint(ansiRed+ansiBold, badgeText)
	} else {
		badgeText = r.style.paint(ansiGreen, badgeText)
	}

	icon := weather.Glyph(Icon(description, fc.Temperature), r.opts.ASCII)
	gauge := GaugeColorFor(fc.Temperature, fc.MinTemp, fc.MaxTemp)

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", border("┌"+rule))
	fmt.Fprintf(&b, "%s %s  %s\n", bar, r.style.paint(ansiBold, fc.City), badgeText)
	fmt.Fprintf(&b, "%s %s\n", bar, r.style.paint(ansiDim, r.title.String(description)))
	fmt.Fprintf(&b, "%s %s  %s\n", bar, icon, r.style.paint(gauge.ansi()+ansiBold, FormatTemperature(fc.Temperature)))
	if fc.MinTemp != nil {
		fmt.Fprintf(&b, "%s    Min: %s\n", bar, formatBound(*fc.MinTemp))
	}
	if fc.MaxTemp != nil {
		fmt.Fprintf(&b, "%s    Max: %s\n", bar, formatBound(*fc.MaxTemp))
	}
	footer := fmt.Sprintf("#%d", fc.ID)
	if fc.LastUpdated != "" {
		footer += " · updated " + fc.LastUpdated
	}
	fmt.Fprintf(&b, "%s %s\n", bar, r.style.paint(ansiDim, footer))
	fmt.Fprintf(&b, "%s\n", border("└"+rule))

	_, err := io.WriteString(w, b.String())
	return err
}
