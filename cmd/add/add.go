// Package add implements the add command.
package add

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tphakala/weatherdash/internal/app"
	"github.com/tphakala/weatherdash/internal/dashboard"
)

// Command returns the add command.
func Command(appCtx *app.Context) *cobra.Command {
	var minTemp, maxTemp string

	cmd := &cobra.Command{
		Use:   "add CITY",
		Short: "Add a favorite city",
		Long: `Add a city to the favorites. Optional --min and --max bounds in °C
raise an alert when the city's temperature leaves the range.

Examples:
  weatherdash add London
  weatherdash add "New York" --min -5 --max 30`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl := appCtx.Dashboard(dashboard.NeverConfirm)

			added, err := ctrl.Add(cmd.Context(), args[0], minTemp, maxTemp)
			if err != nil {
				return err
			}

			w, r := appCtx.Renderer(cmd.OutOrStdout())
			if _, err := fmt.Fprintf(w, "Added %s\n", added.City); err != nil {
				return err
			}
			return r.Card(w, added, "")
		},
	}

	cmd.Flags().StringVar(&minTemp, "min", "", "Minimum temperature alert in °C")
	cmd.Flags().StringVar(&maxTemp, "max", "", "Maximum temperature alert in °C")
	return cmd
}
