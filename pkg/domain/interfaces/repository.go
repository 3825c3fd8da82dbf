package interfaces

import (
	"context"

	"github.com/studyhall-lab/studyhall/pkg/domain/model"
)

// SettingsRepository defines the interface for the single durable settings record
type SettingsRepository interface {
	// Get retrieves the stored settings. Returns the repository's not-found
	// error when nothing has been saved yet; callers apply defaults.
	Get(ctx context.Context) (*model.Settings, error)

	// Put stores the settings record, replacing any previous one
	Put(ctx context.Context, settings *model.Settings) error
}

// Repository aggregates all persistence concerns behind one handle
type Repository interface {
	Settings() SettingsRepository

	// Close releases underlying resources
	Close() error
}
