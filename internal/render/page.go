package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/tphakala/weatherdash/internal/dashboard"
)

// Dashboard writes the full page for state: header, error banner, and
// either the empty-state guidance or one card per city in list order.
// descriptions maps city id to live conditions; missing ids use the default.
func (r *Renderer) Dashboard(w io.Writer, state *dashboard.State, descriptions map[int64]string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", r.style.paint(ansiBold, "Weather Dashboard"))
	fmt.Fprintf(&b, "%s\n\n", r.style.paint(ansiDim, "Monitor your favorite cities"))

	if state.Error != "" {
		fmt.Fprintf(&b, "%s %s\n\n", r.style.paint(ansiRed+ansiBold, "Error:"), r.style.paint(ansiRed, state.Error))
	}

	if len(state.Favorites) == 0 {
		if state.Error == "" {
			fmt.Fprintln(&b, r.style.paint(ansiBold, "No cities yet"))
			fmt.Fprintln(&b, "Add your first city to start monitoring weather and temperature alerts.")
			fmt.Fprintln(&b, r.style.paint(ansiDim, `Try: weatherdash add "London" --min 5 --max 25`))
		}
		_, err := io.WriteString(w, b.String())
		return err
	}

	alerting := 0
	for i := range state.Favorites {
		if state.Favorites[i].Alert {
			alerting++
		}
	}
	fmt.Fprintf(&b, "%s (%d, %d alerting)\n", r.style.paint(ansiBold, "Your Favorite Cities"), len(state.Favorites), alerting)
	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}

	for i := range state.Favorites {
		fc := &state.Favorites[i]
		if err := r.Card(w, fc, descriptions[fc.ID]); err != nil {
			return err
		}
	}
	return nil
}
