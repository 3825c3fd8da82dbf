package memory

import (
	"github.com/studyhall-lab/studyhall/pkg/domain/interfaces"
)

// Repository is an alias for Memory to match the pattern
type Repository = Memory

type Memory struct {
	settings *settingsStore
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		settings: newSettingsStore(),
	}
}

func (m *Memory) Settings() interfaces.SettingsRepository {
	return m.settings
}

func (m *Memory) Close() error {
	return nil
}
