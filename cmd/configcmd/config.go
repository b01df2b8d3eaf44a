// Package configcmd implements the config command and its subcommands.
package configcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tphakala/weatherdash/internal/app"
	"github.com/tphakala/weatherdash/internal/conf"
)

// Command returns the config command. configFile is the value of the
// global --config flag.
func Command(appCtx *app.Context, configFile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:         "config",
		Short:       "Manage the configuration file",
		Annotations: map[string]string{app.SkipSetupAnnotation: "true"},
	}

	cmd.AddCommand(
		initCommand(),
		showCommand(appCtx, configFile),
		saveCommand(appCtx, configFile),
	)
	return cmd
}

func initCommand() *cobra.Command {
	var (
		path  string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a commented default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				p, err := conf.DefaultConfigPath()
				if err != nil {
					return err
				}
				path = p
			}
			if err := conf.WriteDefaultConfig(path, force); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return err
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "Where to write the file (default ~/.config/weatherdash/config.yaml)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")
	return cmd
}

func showCommand(appCtx *app.Context, configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration with secrets redacted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := appCtx.LoadSettings(*configFile, cmd.Flags()); err != nil {
				return err
			}
			data, err := conf.MarshalYAML(appCtx.Settings.Redacted())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if appCtx.Settings.ConfigFile != "" {
				fmt.Fprintf(out, "# loaded from %s\n", appCtx.Settings.ConfigFile)
			}
			_, err = out.Write(data)
			return err
		},
	}
}

func saveCommand(appCtx *app.Context, configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "save PATH",
		Short: "Save the effective configuration, including flags and environment, as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := appCtx.LoadSettings(*configFile, cmd.Flags()); err != nil {
				return err
			}
			if err := conf.SaveYAMLConfig(args[0], appCtx.Settings); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", args[0])
			return err
		},
	}
}
