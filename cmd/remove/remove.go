// Package remove implements the remove command.
package remove

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tphakala/weatherdash/internal/app"
	"github.com/tphakala/weatherdash/internal/dashboard"
	"github.com/tphakala/weatherdash/internal/errors"
)

// Command returns the remove command.
func Command(appCtx *app.Context) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "remove ID",
		Aliases: []string{"rm", "delete"},
		Short:   "Remove a favorite city",
		Long: `Remove the favorite city with the given id. The id is shown at the
bottom of each dashboard card. You are asked to confirm unless --yes is
given; without a terminal to ask on, nothing is removed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return errors.Newf("invalid city id %q", args[0]).
					Component("cli").
					Category(errors.CategoryValidation).
					Build()
			}

			ctrl := appCtx.Dashboard(confirmer(cmd.InOrStdin(), cmd.ErrOrStderr(), yes))
			deleted, err := ctrl.Delete(cmd.Context(), id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !deleted {
				_, err := fmt.Fprintln(out, "Not removed.")
				return err
			}
			_, err = fmt.Fprintf(out, "Removed city #%d\n", id)
			return err
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Remove without asking for confirmation")
	return cmd
}

// confirmer prompts on an interactive stdin. A non-terminal stdin can
// not answer, so removal is declined there unless --yes was given.
func confirmer(in io.Reader, out io.Writer, yes bool) dashboard.Confirmer {
	if yes {
		return dashboard.AlwaysConfirm
	}
	if f, ok := in.(*os.File); ok && !term.IsTerminal(int(f.Fd())) {
		return dashboard.NeverConfirm
	}
	return &dashboard.PromptConfirmer{In: in, Out: out}
}
