package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/studyhall-lab/studyhall/pkg/domain/model"
	"github.com/studyhall-lab/studyhall/pkg/utils/logging"
)

// RunReminderCheck lists the user's assignments and sends one notification
// per assignment that is unsubmitted and due within the reminder window.
// Notification delivery failures are logged and do not abort the sweep.
func (uc *UseCases) RunReminderCheck(ctx context.Context) error {
	settings, _, _ := uc.snapshot()
	if settings == nil {
		return ErrNotInitialized
	}
	if !settings.EnableNotifications || !settings.StudyReminders {
		logging.From(ctx).Debug("reminder check skipped: notifications disabled")
		return nil
	}

	lms, err := uc.lmsFor("")
	if err != nil {
		return err
	}

	assignments, err := lms.ListAssignments(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to list assignments for reminder check")
	}

	now := time.Now()
	var sent int
	for _, a := range assignments {
		if !a.DueWithin(now, uc.reminderWindow) {
			continue
		}

		n := model.NewDueSoonNotification(a)
		if err := uc.notifier.Notify(ctx, n); err != nil {
			logging.From(ctx).Error("failed to deliver reminder",
				"assignment", a.Name,
				"course", a.CourseName,
				"error", err.Error(),
			)
			continue
		}
		sent++
	}

	logging.From(ctx).Info("reminder check completed",
		"assignments", len(assignments),
		"sent", sent,
	)
	return nil
}
