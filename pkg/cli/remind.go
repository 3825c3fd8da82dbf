package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/studyhall-lab/studyhall/pkg/cli/config"
	"github.com/studyhall-lab/studyhall/pkg/usecase"
	"github.com/studyhall-lab/studyhall/pkg/utils/logging"
)

func cmdRemind() *cli.Command {
	var canvasCfg config.Canvas
	var repoCfg config.Repository
	var notifyCfg config.Notify

	flags := canvasCfg.Flags()
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, notifyCfg.Flags()...)

	return &cli.Command{
		Name:    "remind",
		Aliases: []string{"r"},
		Usage:   "Run one due-soon reminder check and exit",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			notifier, err := notifyCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure notifier")
			}

			ucOpts := append(canvasCfg.Options(), usecase.WithNotifier(notifier))
			uc := usecase.New(repo, ucOpts...)
			if err := uc.Init(ctx); err != nil {
				return goerr.Wrap(err, "failed to initialize use cases")
			}

			if err := uc.RunReminderCheck(ctx); err != nil {
				return goerr.Wrap(err, "reminder check failed")
			}

			logging.Default().Info("Reminder check completed")
			return nil
		},
	}
}
