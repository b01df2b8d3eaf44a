package render

import (
	"fmt"
	"io"

	"github.com/tphakala/weatherdash/internal/apiclient"
	"github.com/tphakala/weatherdash/internal/weather"
)

// Conditions writes a one-line current-conditions summary, e.g.
// "(sun) Cairo 31.0°C, Sunny" in ASCII mode.
func (r *Renderer) Conditions(w io.Writer, cur *apiclient.Weather) error {
	icon := weather.Glyph(Icon(cur.Description, cur.Temperature), r.opts.ASCII)
	temp := r.style.paint(GaugeColorFor(cur.Temperature, nil, nil).ansi()+ansiBold, FormatTemperature(cur.Temperature))

	line := fmt.Sprintf("%s %s %s", icon, r.style.paint(ansiBold, cur.City), temp)
	if cur.Description != "" {
		line += ", " + r.title.String(cur.Description)
	}
	_, err := fmt.Fprintln(w, line)
	return err
}

// SyncSummary writes the outcome of a server-side refresh.
func (r *Renderer) SyncSummary(w io.Writer, res *apiclient.SyncResult) error {
	msg := fmt.Sprintf("Synced %d cities", res.SyncedCount)
	if res.Timestamp != "" {
		msg += " at " + res.Timestamp
	}
	_, err := fmt.Fprintln(w, r.style.paint(ansiGreen, msg))
	return err
}
