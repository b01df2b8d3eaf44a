// Package weather implements the weather command.
package weather

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/tphakala/weatherdash/internal/app"
)

// Command returns the weather command.
func Command(appCtx *app.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "weather CITY",
		Short: "Show current conditions for a city",
		Long: `Look up the current temperature and conditions for any city. The city
does not need to be a favorite.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// allow unquoted multi-word names: weatherdash weather New York
			city := strings.Join(args, " ")

			cur, err := appCtx.API.GetWeather(cmd.Context(), city)
			if err != nil {
				return err
			}
			w, r := appCtx.Renderer(cmd.OutOrStdout())
			return r.Conditions(w, cur)
		},
	}
	return cmd
}
