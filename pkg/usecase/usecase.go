package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/studyhall-lab/studyhall/pkg/domain/interfaces"
	"github.com/studyhall-lab/studyhall/pkg/domain/model"
	"github.com/studyhall-lab/studyhall/pkg/repository"
	"github.com/studyhall-lab/studyhall/pkg/service/canvas"
	"github.com/studyhall-lab/studyhall/pkg/service/gemini"
	"github.com/studyhall-lab/studyhall/pkg/service/notify"
	"github.com/studyhall-lab/studyhall/pkg/utils/async"
	"github.com/studyhall-lab/studyhall/pkg/utils/logging"
)

// DefaultReminderWindow is how far ahead the due-soon check looks
const DefaultReminderWindow = 24 * time.Hour

// LMSFactory builds an LMS client for a base URL
type LMSFactory func(baseURL string) (interfaces.LMSClient, error)

// AssistantFactory builds an assistant client for an API key
type AssistantFactory func(apiKey string) interfaces.AssistantClient

// UseCases is the decision core behind every UI surface. It holds the
// persisted settings and the clients built from them; SETTINGS_UPDATE
// replaces the clients wholesale, it never mutates a live one.
type UseCases struct {
	repo     interfaces.Repository
	notifier interfaces.Notifier

	defaultBaseURL string
	cookie         string
	demoFallback   bool
	reminderWindow time.Duration

	lmsFactory       LMSFactory
	assistantFactory AssistantFactory

	mu        sync.RWMutex
	settings  *model.Settings
	lms       interfaces.LMSClient
	assistant interfaces.AssistantClient
}

// Option is a functional option for UseCases configuration
type Option func(*UseCases)

// WithNotifier replaces the reminder notification sink (default: log)
func WithNotifier(n interfaces.Notifier) Option {
	return func(uc *UseCases) {
		uc.notifier = n
	}
}

// WithBaseURL sets the LMS base URL used when the persisted settings have
// none. Without either, the requesting page's origin decides per message.
func WithBaseURL(baseURL string) Option {
	return func(uc *UseCases) {
		uc.defaultBaseURL = baseURL
	}
}

// WithCookie sets a static LMS session cookie for headless use
func WithCookie(cookie string) Option {
	return func(uc *UseCases) {
		uc.cookie = cookie
	}
}

// WithDemoFallback enables the LMS client's built-in sample data fallback
func WithDemoFallback(enabled bool) Option {
	return func(uc *UseCases) {
		uc.demoFallback = enabled
	}
}

// WithReminderWindow overrides the due-soon look-ahead window
func WithReminderWindow(window time.Duration) Option {
	return func(uc *UseCases) {
		if window > 0 {
			uc.reminderWindow = window
		}
	}
}

// WithLMSFactory replaces the LMS client constructor, mainly for tests
func WithLMSFactory(f LMSFactory) Option {
	return func(uc *UseCases) {
		uc.lmsFactory = f
	}
}

// WithAssistantFactory replaces the assistant client constructor, mainly for tests
func WithAssistantFactory(f AssistantFactory) Option {
	return func(uc *UseCases) {
		uc.assistantFactory = f
	}
}

// New creates the use case layer on top of a settings repository. Call
// Init before handling messages.
func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:           repo,
		notifier:       notify.NewLog(),
		reminderWindow: DefaultReminderWindow,
	}

	for _, opt := range opts {
		opt(uc)
	}

	if uc.lmsFactory == nil {
		uc.lmsFactory = func(baseURL string) (interfaces.LMSClient, error) {
			return canvas.New(baseURL,
				canvas.WithCookie(uc.cookie),
				canvas.WithDemoFallback(uc.demoFallback),
			)
		}
	}
	if uc.assistantFactory == nil {
		uc.assistantFactory = func(apiKey string) interfaces.AssistantClient {
			return gemini.New(apiKey)
		}
	}

	return uc
}

// Init loads the persisted settings (creating defaults on first read) and
// builds the clients. It transitions the router from uninitialized to
// ready; HandleMessage before Init answers every message with an error
// envelope.
func (uc *UseCases) Init(ctx context.Context) error {
	settings, err := uc.repo.Settings().Get(ctx)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return goerr.Wrap(err, "failed to load settings")
		}

		settings = model.DefaultSettings()
		if err := uc.repo.Settings().Put(ctx, settings); err != nil {
			return goerr.Wrap(err, "failed to persist default settings")
		}
		logging.From(ctx).Info("initialized default settings")
	}

	return uc.apply(ctx, settings)
}

// apply swaps in a settings record and the clients built from it
func (uc *UseCases) apply(ctx context.Context, settings *model.Settings) error {
	settings = settings.Clone()
	settings.Theme = settings.Theme.Normalize()

	var lms interfaces.LMSClient
	baseURL := settings.CanvasURL
	if baseURL == "" {
		baseURL = uc.defaultBaseURL
	}
	if baseURL != "" {
		client, err := uc.lmsFactory(baseURL)
		if err != nil {
			return goerr.Wrap(err, "failed to build LMS client", goerr.V("baseURL", baseURL))
		}
		lms = client
	}

	var assistant interfaces.AssistantClient
	if settings.HasAssistantKey() {
		assistant = uc.assistantFactory(settings.GeminiAPIKey)
	}

	uc.mu.Lock()
	uc.settings = settings
	uc.lms = lms
	uc.assistant = assistant
	uc.mu.Unlock()

	logging.From(ctx).Info("configuration applied",
		"assistant_configured", assistant != nil,
		"lms_base_url", baseURL,
	)

	// Probe the LMS session in the background so a dead cookie shows up in
	// the log right after (re)configuration instead of on the first query
	if lms != nil {
		async.Dispatch(ctx, func(ctx context.Context) error {
			user, err := lms.CurrentUser(ctx)
			if err != nil {
				logging.From(ctx).Debug("LMS session probe failed", "error", err.Error())
				return nil
			}
			logging.From(ctx).Info("LMS session verified",
				"user", user.Name,
				"login_id", user.LoginID,
			)
			return nil
		})
	}

	return nil
}

// snapshot returns the current settings and clients under one read lock
func (uc *UseCases) snapshot() (*model.Settings, interfaces.LMSClient, interfaces.AssistantClient) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.settings, uc.lms, uc.assistant
}

// lmsFor resolves the LMS client for one message: the configured client
// when a base URL is set, otherwise a transient client for the requesting
// page's origin.
func (uc *UseCases) lmsFor(origin string) (interfaces.LMSClient, error) {
	_, lms, _ := uc.snapshot()
	if lms != nil {
		return lms, nil
	}
	if origin == "" {
		return nil, ErrLMSNotConfigured
	}
	return uc.lmsFactory(origin)
}

// Settings returns a copy of the active settings record
func (uc *UseCases) Settings() *model.Settings {
	settings, _, _ := uc.snapshot()
	if settings == nil {
		return nil
	}
	return settings.Clone()
}
