package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/resilience-works/continuity/pkg/cli/config"
	httpctrl "github.com/resilience-works/continuity/pkg/controller/http"
	"github.com/resilience-works/continuity/pkg/service/cache"
	"github.com/resilience-works/continuity/pkg/usecase"
	"github.com/resilience-works/continuity/pkg/utils/async"
	"github.com/resilience-works/continuity/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var addr string
	var cacheTTL time.Duration
	var appCfg config.App
	var repoCfg config.Repository

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("CONTINUITY_ADDR"),
			Destination: &addr,
		},
		&cli.DurationFlag{
			Name:        "cache-ttl",
			Usage:       "TTL for cached catalog reads",
			Value:       cache.DefaultTTL,
			Sources:     cli.EnvVars("CONTINUITY_CACHE_TTL"),
			Destination: &cacheTTL,
		},
	}
	flags = append(flags, appCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			scale, err := appCfg.Scale()
			if err != nil {
				return goerr.Wrap(err, "failed to load application config")
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			uc := usecase.New(repo, cache.New(cache.WithTTL(cacheTTL)), usecase.WithScale(scale))

			// Warm the catalog cache without blocking startup; the cache is
			// read-through so a failed warmup only delays the first request
			async.Dispatch(ctx, func(ctx context.Context) error {
				if err := uc.Cache.Warm(ctx); err != nil {
					return goerr.Wrap(err, "cache warmup failed")
				}
				logging.From(ctx).Info("catalog cache warmed")
				return nil
			})

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc),
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr, "backend", repoCfg.Backend())
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
