// Package alerts implements the alerts command.
package alerts

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tphakala/weatherdash/internal/app"
	"github.com/tphakala/weatherdash/internal/dashboard"
	"github.com/tphakala/weatherdash/internal/errors"
	"github.com/tphakala/weatherdash/internal/logger"
	"github.com/tphakala/weatherdash/internal/notify"
)

// Command returns the alerts command.
func Command(appCtx *app.Context) *cobra.Command {
	var send bool

	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "List cities outside their temperature range",
		Long: `List favorite cities whose temperature is outside their configured
bounds. With --notify one notification per alerting city is sent to every
configured sink: notification.urls (shoutrrr), mqtt.broker and kafka.brokers.

Example:
  WEATHERDASH_NOTIFY_URLS=ntfy://ntfy.sh/my-weather weatherdash alerts --notify`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctrl := appCtx.Dashboard(dashboard.NeverConfirm)
			if err := ctrl.Load(ctx); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			pending := notify.Alerts(ctrl.Alerting())
			if len(pending) == 0 {
				_, err := fmt.Fprintln(out, "All cities are within their temperature range.")
				return err
			}

			fmt.Fprintf(out, "%d of %d cities alerting:\n", len(pending), len(ctrl.Favorites()))
			for _, a := range pending {
				fmt.Fprintf(out, "  #%d %s\n", a.CityID, a.Message())
			}

			if !send {
				return nil
			}
			return dispatch(cmd, appCtx, pending)
		},
	}

	cmd.Flags().BoolVar(&send, "notify", false, "Send a notification for every alerting city")
	return cmd
}

func dispatch(cmd *cobra.Command, appCtx *app.Context, pending []notify.Alert) error {
	ctx := cmd.Context()

	sinks, err := notify.SinksFromSettings(ctx, appCtx.Settings)
	if err != nil {
		return err
	}
	if len(sinks) == 0 {
		return errors.Newf("no notification sinks configured, set notification.urls, mqtt.broker or kafka.brokers").
			Component("cli").
			Category(errors.CategoryConfiguration).
			Build()
	}

	d := notify.NewDispatcher(appCtx.Logger, appCtx.Metrics.Notification, sinks...)
	defer func() {
		if err := d.Close(); err != nil {
			appCtx.Logger.Warn("closing notification sinks", logger.Error(err))
		}
	}()

	if err := d.Dispatch(ctx, pending); err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Sent %d alerts to %s\n", len(pending), strings.Join(d.SinkNames(), ", "))
	return err
}
