package memory

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/studyhall-lab/studyhall/pkg/domain/model"
	"github.com/studyhall-lab/studyhall/pkg/repository"
)

type settingsStore struct {
	mu       sync.RWMutex
	settings *model.Settings
}

func newSettingsStore() *settingsStore {
	return &settingsStore{}
}

func (r *settingsStore) Get(ctx context.Context) (*model.Settings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.settings == nil {
		return nil, goerr.Wrap(repository.ErrNotFound, "settings not saved yet")
	}

	return r.settings.Clone(), nil
}

func (r *settingsStore) Put(ctx context.Context, settings *model.Settings) error {
	if err := settings.Validate(); err != nil {
		return goerr.Wrap(err, "invalid settings")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.settings = settings.Clone()
	return nil
}
