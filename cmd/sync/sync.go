// Package sync implements the sync command.
package sync

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tphakala/weatherdash/internal/app"
	"github.com/tphakala/weatherdash/internal/dashboard"
	"github.com/tphakala/weatherdash/pkg/spinner"
)

const syncMessage = "Syncing weather data..."

// Command returns the sync command.
func Command(appCtx *app.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Refresh the weather for every favorite city",
		Long: `Ask the server to refresh the temperature of every favorite city,
then reload and show the dashboard.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctrl := appCtx.Dashboard(dashboard.NeverConfirm)

			stop := func() {}
			if isTerminal(cmd.ErrOrStderr()) {
				stop = spinner.Start(ctx, cmd.ErrOrStderr(), syncMessage)
			}
			res, err := ctrl.Sync(ctx)
			stop()

			if res == nil {
				return err
			}

			w, r := appCtx.Renderer(cmd.OutOrStdout())
			if err := r.SyncSummary(w, res); err != nil {
				return err
			}
			state := ctrl.Snapshot()
			if err := r.Dashboard(w, &state, nil); err != nil {
				return err
			}
			// a failed reload is shown in the banner
			return app.Reported(err)
		},
	}
	return cmd
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
