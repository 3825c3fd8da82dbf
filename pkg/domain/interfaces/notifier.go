package interfaces

import (
	"context"

	"github.com/studyhall-lab/studyhall/pkg/domain/model"
)

// Notifier delivers due-soon reminder notifications to the user
type Notifier interface {
	Notify(ctx context.Context, notification *model.Notification) error
}
