package model

import (
	"net/url"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/studyhall-lab/studyhall/pkg/domain/types"
)

// Settings is the single durable configuration record of the system. It is
// created with defaults on first read, mutated only through SETTINGS_UPDATE,
// and persisted verbatim under one key named "settings".
type Settings struct {
	GeminiAPIKey        string      `json:"geminiApiKey" firestore:"geminiApiKey" masq:"secret"`
	CanvasURL           string      `json:"canvasUrl" firestore:"canvasUrl"`
	EnableNotifications bool        `json:"enableNotifications" firestore:"enableNotifications"`
	StudyReminders      bool        `json:"studyReminders" firestore:"studyReminders"`
	Theme               types.Theme `json:"theme" firestore:"theme"`
}

// DefaultSettings returns the settings used before the user has saved any
func DefaultSettings() *Settings {
	return &Settings{
		EnableNotifications: true,
		StudyReminders:      true,
		Theme:               types.ThemeAuto,
	}
}

// HasAssistantKey returns true if an assistant API key is configured
func (s *Settings) HasAssistantKey() bool {
	return strings.TrimSpace(s.GeminiAPIKey) != ""
}

// Validate checks if the settings record is valid
func (s *Settings) Validate() error {
	if !s.Theme.Normalize().IsValid() {
		return goerr.New("invalid theme", goerr.V("theme", s.Theme))
	}

	if s.CanvasURL != "" {
		u, err := url.Parse(s.CanvasURL)
		if err != nil {
			return goerr.Wrap(err, "invalid canvas URL", goerr.V("url", s.CanvasURL))
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return goerr.New("canvas URL must be http or https", goerr.V("url", s.CanvasURL))
		}
	}

	return nil
}

// Clone returns a deep copy of the settings record
func (s *Settings) Clone() *Settings {
	clone := *s
	return &clone
}
