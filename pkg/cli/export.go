package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/airegister/pkg/cli/config"
	"github.com/secmon-lab/airegister/pkg/usecase"
	"github.com/secmon-lab/airegister/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdExport() *cli.Command {
	var repoCfg config.Repository
	var exportCfg config.Export

	var flags []cli.Flag
	flags = append(flags, exportCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:  "export",
		Usage: "Export the AI system register as CSV",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			repo, closeRepo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer closeRepo()

			w, err := exportCfg.Open(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to open export destination")
			}

			n, err := usecase.New(repo).Export.WriteCSV(ctx, w)
			if err != nil {
				_ = w.Close()
				return goerr.Wrap(err, "failed to export register")
			}
			if err := w.Close(); err != nil {
				return goerr.Wrap(err, "failed to finish export", goerr.V("output", exportCfg.Output()))
			}

			logging.Default().Info("Register exported", "systems", n, "export", exportCfg)
			return nil
		},
	}
}
