// Package version implements the version command.
package version

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tphakala/weatherdash/internal/app"
)

// Command returns the version command.
func Command(appCtx *app.Context) *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print version information",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{app.SkipSetupAnnotation: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), appCtx.BuildInfo.String())
			return err
		},
	}
}
