package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/airegister/pkg/cli/config"
	"github.com/secmon-lab/airegister/pkg/usecase"
	"github.com/secmon-lab/airegister/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdReconcile() *cli.Command {
	var repoCfg config.Repository
	var dryRun bool

	flags := []cli.Flag{
		&cli.BoolFlag{
			Name:        "dry-run",
			Usage:       "Report drifting classifications without repairing them",
			Destination: &dryRun,
		},
	}
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:  "reconcile",
		Usage: "Check that every system's risk classification matches its latest EU assessment",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			repo, closeRepo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer closeRepo()

			drifts, err := usecase.New(repo).Reconcile.Run(ctx, !dryRun)
			if err != nil {
				return goerr.Wrap(err, "failed to reconcile classifications")
			}

			logging.Default().Info("Reconcile completed",
				"drift_count", len(drifts),
				"repaired", !dryRun && len(drifts) > 0)
			return nil
		},
	}
}
