package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rgehrsitz/finwise/internal/server"
)

func (a *app) serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculators over HTTP",
		Long: `Serve the calculators as a JSON API until interrupted.

  GET  /healthz
  GET  /api/v1/version
  GET  /api/v1/kinds
  GET  /api/v1/kinds/{kind}/defaults
  POST /api/v1/calculate/{kind}?format=json&set=field=value
  POST /api/v1/compare/{cloud|cards}?format=json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := a.engine()
			if err != nil {
				return err
			}
			maxBody, _ := cmd.Flags().GetInt64("max-body")

			handler := server.NewHandler(engine, server.Options{
				Logger:      a.logger,
				MaxBodySize: maxBody,
				Version:     version,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a.logger.Info("starting server",
				zap.String("addr", a.settings.ServerAddr),
				zap.String("rates", ratesSource(a.settings.ConfigPath)))
			return server.Run(ctx, a.settings.ServerAddr, handler, a.logger)
		},
	}
	cmd.Flags().String("addr", ":8080", "Listen address")
	cmd.Flags().Int64("max-body", server.DefaultMaxBodySize, "Maximum request body size in bytes")
	return cmd
}

func ratesSource(path string) string {
	if path == "" {
		return "built-in"
	}
	return path
}
