// Package notify holds Notifier implementations for the due-soon reminder.
package notify

import (
	"context"

	"github.com/studyhall-lab/studyhall/pkg/domain/interfaces"
	"github.com/studyhall-lab/studyhall/pkg/domain/model"
	"github.com/studyhall-lab/studyhall/pkg/utils/logging"
)

// Log writes notifications to the structured log. It is the default sink
// when no Slack channel is configured.
type Log struct{}

var _ interfaces.Notifier = &Log{}

// NewLog creates a log-backed notifier
func NewLog() *Log {
	return &Log{}
}

// Notify emits the notification at info level
func (x *Log) Notify(ctx context.Context, n *model.Notification) error {
	logging.From(ctx).Info("notification",
		"type", n.Type,
		"title", n.Title,
		"message", n.Message,
	)
	return nil
}
