package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/tphakala/weatherdash/cmd"
	"github.com/tphakala/weatherdash/internal/app"
	"github.com/tphakala/weatherdash/internal/buildinfo"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appCtx := app.NewContext(buildinfo.Current())
	defer func() {
		if err := appCtx.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}()

	rootCmd := cmd.RootCommand(appCtx)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !app.IsReported(err) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}
