package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/airegister/pkg/cli/config"
	httpctrl "github.com/secmon-lab/airegister/pkg/controller/http"
	"github.com/secmon-lab/airegister/pkg/service/worker"
	"github.com/secmon-lab/airegister/pkg/usecase"
	"github.com/secmon-lab/airegister/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var addr string
	var baseURL string
	var reconcileInterval time.Duration
	var repoCfg config.Repository
	var slackCfg config.Slack

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("AIREGISTER_ADDR"),
			Destination: &addr,
		},
		&cli.StringFlag{
			Name:        "base-url",
			Usage:       "Base URL for links in notifications (e.g., https://your-domain.com)",
			Sources:     cli.EnvVars("AIREGISTER_BASE_URL"),
			Destination: &baseURL,
		},
		&cli.DurationFlag{
			Name:        "reconcile-interval",
			Usage:       "Interval of the background classification reconcile (0 disables it)",
			Sources:     cli.EnvVars("AIREGISTER_RECONCILE_INTERVAL"),
			Destination: &reconcileInterval,
		},
	}

	// Add shared config flags
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			repo, closeRepo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer closeRepo()

			var ucOpts []usecase.Option
			notifyOpt, err := slackCfg.Configure(baseURL)
			if err != nil {
				return goerr.Wrap(err, "failed to configure slack")
			}
			if notifyOpt != nil {
				ucOpts = append(ucOpts, notifyOpt)
			}

			uc := usecase.New(repo, ucOpts...)

			if reconcileInterval > 0 {
				reconcileWorker := worker.NewReconcileWorker(uc.Reconcile, reconcileInterval)
				reconcileWorker.Start(ctx)
				defer reconcileWorker.Stop()
			}

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
				logging.Default().Info("Starting HTTP server", "addr", addr, "repository", repoCfg, "slack", slackCfg)
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
