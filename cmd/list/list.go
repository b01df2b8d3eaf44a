// Package list implements the list command, the full dashboard view.
package list

import (
	"github.com/spf13/cobra"

	"github.com/tphakala/weatherdash/internal/app"
	"github.com/tphakala/weatherdash/internal/dashboard"
)

// Command returns the list command.
func Command(appCtx *app.Context) *cobra.Command {
	var conditions bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show the favorite cities dashboard",
		Long: `Load every favorite city and render the dashboard. Cards show the
last known temperature, the configured bounds and the alert badge.

With --conditions the current weather description is looked up for each
city; otherwise cards show "Clear".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctrl := appCtx.Dashboard(dashboard.NeverConfirm)
			w, r := appCtx.Renderer(cmd.OutOrStdout())

			loadErr := ctrl.Load(ctx)
			state := ctrl.Snapshot()

			var descriptions map[int64]string
			if loadErr == nil && len(state.Favorites) > 0 && (conditions || appCtx.Settings.Dashboard.Conditions) {
				var err error
				descriptions, err = dashboard.FetchConditions(ctx, appCtx.API, state.Favorites,
					appCtx.Settings.Dashboard.Concurrency, appCtx.Logger)
				if err != nil {
					return err
				}
			}

			if err := r.Dashboard(w, &state, descriptions); err != nil {
				return err
			}
			// the banner already shows the failure
			return app.Reported(loadErr)
		},
	}

	cmd.Flags().BoolVar(&conditions, "conditions", false, "Look up current conditions for every city")
	return cmd
}
