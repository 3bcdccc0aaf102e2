package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/reelhouse/movie-catalog/internal/app"
	"github.com/reelhouse/movie-catalog/internal/infrastructure/config"
	"github.com/reelhouse/movie-catalog/pkg/logger"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "catalogctl",
		Short:        "Maintenance tasks for the movie catalog",
		SilenceUsage: true,
	}
	root.AddCommand(newImportCmd(), newCheckBackrefsCmd())
	return root
}

// withApp loads configuration, connects and runs fn. The context is
// cancelled on SIGINT or SIGTERM.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  true,
		Service: "catalogctl",
		Output:  cmd.ErrOrStderr(),
	})

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}
	defer a.Close(context.Background())

	return fn(ctx, a)
}
