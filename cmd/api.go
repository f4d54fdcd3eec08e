package cmd

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/tea-network/sbtmarket/api"
	"github.com/tea-network/sbtmarket/config"
	"github.com/tea-network/sbtmarket/log"
	"github.com/tea-network/sbtmarket/metrics"
	"github.com/tea-network/sbtmarket/refresher"
	"github.com/tea-network/sbtmarket/sentry_integration"
)

const shutdownTimeout = 10 * time.Second

func apiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "api",
		Short: "Run sbtmarket API server",
		Long: `
Run the sbtmarket API server.

This command starts the HTTP API that serves the claimable token type catalog,
the tokens held by an account and the claim and admin actions of the
configured wallet. A background worker re-scans the catalog every
REFRESH_INTERVAL when it is set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := newApp(ctx, log.NewLogger)
			if err != nil {
				return err
			}
			cfg, logger := a.cfg, a.logger

			if err := sentry_integration.Init(cfg, "api"); err != nil {
				logger.Warn("sentry init failed", slog.Any("error", err))
			}
			defer sentry_integration.Flush()

			metrics.Init(cfg.GetChainId())
			metricsServer := metrics.NewServer(cfg, logger)
			server := api.New(cfg, logger, a.catalog, a.market, a.templates)

			worker := refresher.NewWorker(cfg.GetCatalogConfig().RefreshInterval, a.catalog,
				a.market.Session().Address, a.market.IsAdmin(), logger)

			g, gctx := errgroup.WithContext(ctx)
			g.Go(metricsServer.Start)
			g.Go(server.Start)
			g.Go(func() error {
				worker.Start(gctx)
				return nil
			})
			g.Go(func() error {
				<-gctx.Done()
				logger.Info("shutting down API server...")

				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				return errors.Join(
					server.Shutdown(shutdownCtx),
					metricsServer.Shutdown(shutdownCtx),
				)
			})

			if err := g.Wait(); err != nil {
				logger.Error("API server stopped with error", slog.Any("error", err))
				return err
			}
			return nil
		},
	}

	return cmd
}

// SetVersion records build information reported by the status endpoint.
func SetVersion(version, commit string) {
	config.SetBuildInfo(version, commit)
}
