package commands

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/meikuraledutech/graphnav/api"
	"github.com/meikuraledutech/graphnav/telemetry"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(rt *session) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := rt.open(ctx)
			if err != nil {
				return err
			}
			defer rt.close()

			cfg := rt.cfg
			shutdownTracing, err := telemetry.Init(ctx, telemetry.Config{
				Enabled:  cfg.Telemetry.Enabled,
				Endpoint: cfg.Telemetry.Endpoint,
				Version:  Version,
			})
			if err != nil {
				return err
			}
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				if err := shutdownTracing(ctx); err != nil {
					rt.logger.Warn("shutdown tracing", "error", err)
				}
			}()

			app := api.New(api.Options{
				Store:     store,
				Engine:    rt.engine(),
				Logger:    rt.logger,
				RateLimit: cfg.Server.RateLimit,
				Burst:     cfg.Server.Burst,
			})

			errc := make(chan error, 1)
			go func() {
				errc <- app.Listen(cfg.Server.Addr, fiber.ListenConfig{DisableStartupMessage: true})
			}()
			rt.logger.Info("listening",
				"addr", cfg.Server.Addr,
				"driver", cfg.Database.Driver,
				"max_depth", cfg.Reach.MaxDepth,
			)

			select {
			case err := <-errc:
				return err
			case <-ctx.Done():
			}

			rt.logger.Info("shutting down")
			if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
				return err
			}
			if err := <-errc; err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
}
