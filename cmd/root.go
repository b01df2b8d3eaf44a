package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tphakala/weatherdash/cmd/add"
	"github.com/tphakala/weatherdash/cmd/alerts"
	"github.com/tphakala/weatherdash/cmd/configcmd"
	"github.com/tphakala/weatherdash/cmd/list"
	"github.com/tphakala/weatherdash/cmd/remove"
	"github.com/tphakala/weatherdash/cmd/sync"
	"github.com/tphakala/weatherdash/cmd/version"
	"github.com/tphakala/weatherdash/cmd/weather"
	"github.com/tphakala/weatherdash/internal/app"
)

// RootCommand creates and returns the root command
func RootCommand(appCtx *app.Context) *cobra.Command {
	var configFile string

	rootCmd := &cobra.Command{
		Use:   "weatherdash",
		Short: "Weather dashboard for your favorite cities",
		Long: `weatherdash tracks favorite cities on a remote weather API, shows their
current temperature against configured bounds and raises alerts when a
city is outside its range.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Set up the global flags for the root command.
	setupFlags(rootCmd, &configFile)

	subcommands := []*cobra.Command{
		list.Command(appCtx),
		add.Command(appCtx),
		remove.Command(appCtx),
		sync.Command(appCtx),
		weather.Command(appCtx),
		alerts.Command(appCtx),
		configcmd.Command(appCtx, &configFile),
		version.Command(appCtx),
	}
	rootCmd.AddCommand(subcommands...)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// Skip setup for commands that never talk to the API
		if skipSetup(cmd) {
			return nil
		}

		ctx, err := appCtx.Setup(cmd.Context(), configFile, cmd.Flags())
		if err != nil {
			return err
		}
		cmd.SetContext(ctx)
		return nil
	}

	return rootCmd
}

func skipSetup(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if _, ok := c.Annotations[app.SkipSetupAnnotation]; ok {
			return true
		}
	}
	return false
}

// setupFlags defines flags that are global to the command line interface.
// Values are read through the settings loader so flags override the
// environment and the config file.
func setupFlags(rootCmd *cobra.Command, configFile *string) {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(configFile, "config", "c", "", "Path to config file (default: search ., ~/.config/weatherdash, /etc/weatherdash)")
	flags.String("api-url", "", "Base URL of the favorites API (env WEATHER_API_URL)")
	flags.Duration("timeout", 0, "Request timeout for API calls")
	flags.BoolP("debug", "d", false, "Enable debug output")
	flags.String("log-level", "", "Console log level: trace, debug, info, warn or error")
	flags.String("color", "", "Colour output: auto, always or never")
	flags.Bool("ascii", false, "Use ASCII weather icons instead of emoji")
}
