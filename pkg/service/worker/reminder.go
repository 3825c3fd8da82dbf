package worker

import (
	"context"
	"time"

	"github.com/studyhall-lab/studyhall/pkg/utils/logging"
)

// DefaultReminderInterval is how often the due-soon check runs during serve
const DefaultReminderInterval = time.Hour

// ReminderRunner is the single check the worker drives on each tick
type ReminderRunner interface {
	RunReminderCheck(ctx context.Context) error
}

// ReminderWorker runs the due-soon assignment check periodically.
//
// Architecture assumptions:
// - Single server instance (no distributed locking)
// - A failed check is logged and retried on the next tick
type ReminderWorker struct {
	runner   ReminderRunner
	interval time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewReminderWorker creates a worker driving the given runner
func NewReminderWorker(runner ReminderRunner, interval time.Duration) *ReminderWorker {
	if interval <= 0 {
		interval = DefaultReminderInterval
	}

	return &ReminderWorker{
		runner:   runner,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background check loop
// - Initial check and periodic ticks both run in a background goroutine
// - Does not block server startup
func (w *ReminderWorker) Start(ctx context.Context) error {
	logging.Default().Info("reminder worker starting",
		"interval", w.interval.String())

	go w.run(ctx)

	return nil
}

// Stop signals the worker to stop and waits for completion
func (w *ReminderWorker) Stop() {
	logging.Default().Info("reminder worker stopping")
	close(w.stopCh)
	<-w.doneCh
	logging.Default().Info("reminder worker stopped")
}

func (w *ReminderWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	if err := w.runner.RunReminderCheck(ctx); err != nil {
		logging.Default().Error("initial reminder check failed (will retry next interval)",
			"error", err.Error())
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := w.runner.RunReminderCheck(ctx); err != nil {
				// Log error but continue worker
				logging.Default().Error("reminder check failed (will retry next interval)",
					"error", err.Error())
			}

		case <-w.stopCh:
			logging.Default().Info("reminder worker received stop signal")
			return

		case <-ctx.Done():
			logging.Default().Info("reminder worker context cancelled")
			return
		}
	}
}
