package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	httpapi "github.com/viniciusth/suffixindex/internal/http"
	"github.com/viniciusth/suffixindex/internal/libs/obs"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "serve search-as-you-type queries over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, cfg, err := loadService(cmd)
			if err != nil {
				return err
			}
			logger := obs.Logger("api")

			handler := httpapi.NewHandler(svc, logger)
			server := &http.Server{
				Addr:              cfg.Addr(),
				Handler:           httpapi.NewRouter(handler, httpapi.NewLimiter(cfg.RateLimit, cfg.RateBurst)),
				ReadHeaderTimeout: 5 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			g, ctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				logger.Info().Str("addr", server.Addr).Msg("starting API server")
				if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			})
			g.Go(func() error {
				<-ctx.Done()
				logger.Info().Msg("shutting down API server")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				return server.Shutdown(shutdownCtx)
			})

			if err := g.Wait(); err != nil {
				logger.Error().Err(err).Msg("server failed")
				return err
			}
			return nil
		},
	}
	cmd.Flags().String("port", "", "listen port (env API_PORT)")
	return cmd
}
