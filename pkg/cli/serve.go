package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	httpctrl "github.com/secmon-lab/vantagepoint/pkg/controller/http"
	"github.com/secmon-lab/vantagepoint/pkg/domain/types"
	"github.com/secmon-lab/vantagepoint/pkg/service/worker"
	"github.com/secmon-lab/vantagepoint/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var addr string
	var defaultMode string
	var enableMetrics bool
	var warmInterval time.Duration
	var appCfg appConfig

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("VANTAGEPOINT_ADDR"),
			Destination: &addr,
		},
		&cli.StringFlag{
			Name:        "default-mode",
			Usage:       "Data mode used when a request does not name one [live|synthetic]",
			Value:       string(types.DataModeSynthetic),
			Sources:     cli.EnvVars("VANTAGEPOINT_DEFAULT_MODE"),
			Destination: &defaultMode,
		},
		&cli.BoolFlag{
			Name:        "metrics",
			Usage:       "Expose Prometheus metrics at /metrics",
			Value:       true,
			Sources:     cli.EnvVars("VANTAGEPOINT_METRICS"),
			Destination: &enableMetrics,
		},
		&cli.DurationFlag{
			Name:        "warm-interval",
			Usage:       "Opt-in interval of background live acquisition keeping the source cache warm, e.g. 10m. Disabled when unset",
			Sources:     cli.EnvVars("VANTAGEPOINT_WARM_INTERVAL"),
			Destination: &warmInterval,
		},
	}

	// Add shared config flags
	flags = append(flags, appCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP API server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			mode, err := types.ParseDataMode(defaultMode)
			if err != nil {
				return goerr.Wrap(err, "invalid default mode", goerr.V("mode", defaultMode))
			}

			uc, err := appCfg.Configure(ctx)
			if err != nil {
				return err
			}

			handler := httpctrl.New(uc.Acquisition, uc.Enrichment,
				httpctrl.WithDefaultMode(mode),
				httpctrl.WithMetrics(enableMetrics),
			)
			server := &http.Server{
				Addr:              addr,
				Handler:           handler,
				ReadHeaderTimeout: 30 * time.Second,
			}

			var warmer *worker.CacheWarmer
			if warmInterval > 0 {
				warmer = worker.NewCacheWarmer(uc.Acquisition, warmInterval)
				warmer.Start(ctx)
				defer warmer.Stop()
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(sigCh)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server",
					"addr", addr,
					"default_mode", mode,
					"metrics", enableMetrics,
					"ai", uc.Enrichment.Enabled(),
				)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server", goerr.V("addr", addr))
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)
			case <-ctx.Done():
				logging.Default().Info("Context cancelled, shutting down")
			}

			// Stop cache warmer before draining requests
			if warmer != nil {
				warmer.Stop()
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logging.Default().Info("Server shutdown completed")
			return nil
		},
	}
}
