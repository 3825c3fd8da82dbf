package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/studyhall-lab/studyhall/pkg/cli/config"
	httpctrl "github.com/studyhall-lab/studyhall/pkg/controller/http"
	"github.com/studyhall-lab/studyhall/pkg/service/injector"
	"github.com/studyhall-lab/studyhall/pkg/service/worker"
	"github.com/studyhall-lab/studyhall/pkg/usecase"
	"github.com/studyhall-lab/studyhall/pkg/utils/logging"
)

func cmdServe() *cli.Command {
	var addr string
	var reminderInterval time.Duration
	var canvasCfg config.Canvas
	var repoCfg config.Repository
	var notifyCfg config.Notify
	var pageCfg config.Page

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("STUDYHALL_ADDR"),
			Destination: &addr,
		},
		&cli.DurationFlag{
			Name:        "reminder-interval",
			Usage:       "How often the due-soon reminder check runs",
			Value:       worker.DefaultReminderInterval,
			Sources:     cli.EnvVars("STUDYHALL_REMINDER_INTERVAL"),
			Destination: &reminderInterval,
		},
	}

	// Add shared config flags
	flags = append(flags, canvasCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, notifyCfg.Flags()...)
	flags = append(flags, pageCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start the HTTP bridge and the reminder worker",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			// Initialize repository based on backend type
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

			injectorOpts, err := pageCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load page config")
			}

			ucOpts := append(canvasCfg.Options(), usecase.WithNotifier(notifier))
			uc := usecase.New(repo, ucOpts...)
			if err := uc.Init(ctx); err != nil {
				return goerr.Wrap(err, "failed to initialize use cases")
			}

			reminderWorker := worker.NewReminderWorker(uc, reminderInterval)
			if err := reminderWorker.Start(ctx); err != nil {
				return goerr.Wrap(err, "failed to start reminder worker")
			}

			httpHandler := httpctrl.New(uc,
				httpctrl.WithInjectorRegistry(injector.NewRegistry(injectorOpts...)),
			)
			server := &http.Server{
				Addr:              addr,
				Handler:           httpHandler,
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				reminderWorker.Stop()
				return err

			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				reminderWorker.Stop()

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
