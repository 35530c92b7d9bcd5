package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"leadflow/internal/app"
	"leadflow/internal/config"
	"leadflow/internal/logging"
)

func newServeCommand(configFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the dashboard HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configFlag)
			if err != nil {
				return err
			}
			log := logging.New("leadflow", cfg.Log.Level, cfg.Log.Format, os.Stdout)

			a, err := app.New(cfg, log, nil)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.Run(ctx)
		},
	}
}
