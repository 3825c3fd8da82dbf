// Package injector decides where and when the assistant panel is mounted
// into an LMS page. The browser side only reports page snapshots; all
// mount decisions live here so they stay testable and consistent across
// page loads.
package injector

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultSelectors is the candidate mount-point list in priority order.
// The trailing "body" entry is the unconditional fallback for any ready
// document.
var DefaultSelectors = []string{
	"#main",
	"#content",
	".ic-Layout-contentMain",
	"#wrapper",
	".ic-app-main-content",
	"body",
}

// DefaultRetryInterval is how long the bridge should wait before sending
// the next snapshot when no mount happened.
const DefaultRetryInterval = time.Second

// Snapshot is one observation of the page, sent by the bridge on
// DOMContentLoaded and on each mutation batch.
type Snapshot struct {
	// Ready reports whether the document finished loading
	Ready bool

	// Selectors lists the candidate selectors currently present on the page
	Selectors []string
}

// Decision tells the bridge what to do with the snapshot it sent.
type Decision struct {
	// Mount is true exactly once per session, on the offer that picked a target
	Mount bool

	// Target is the selector to mount at; set whenever Injected is true
	Target string

	// Injected reports whether the panel is mounted (by this or an earlier offer)
	Injected bool

	// RetryAfter is the recheck hint while not injected, zero afterwards
	RetryAfter time.Duration
}

// Injector is the per-page mount state machine. It starts not-injected
// and transitions to injected at most once; every later offer is a no-op
// that just reports the chosen target.
type Injector struct {
	mu         sync.Mutex
	selectors  []string
	retryAfter time.Duration
	injected   bool
	target     string
}

// Option is a functional option for injector configuration
type Option func(*Injector)

// WithSelectors replaces the candidate selector list. The order is the
// match priority.
func WithSelectors(selectors []string) Option {
	return func(x *Injector) {
		if len(selectors) > 0 {
			x.selectors = selectors
		}
	}
}

// WithRetryInterval replaces the recheck hint returned while not injected
func WithRetryInterval(d time.Duration) Option {
	return func(x *Injector) {
		if d > 0 {
			x.retryAfter = d
		}
	}
}

// New creates a not-injected state machine with the default candidates
func New(opts ...Option) *Injector {
	x := &Injector{
		selectors:  DefaultSelectors,
		retryAfter: DefaultRetryInterval,
	}

	for _, opt := range opts {
		opt(x)
	}

	return x
}

// Offer attempts injection against one page snapshot. A document that is
// not ready, or has no candidate present, keeps the machine not-injected
// and returns the retry hint. The first matching candidate wins and the
// machine stays injected for the rest of the session.
func (x *Injector) Offer(snap Snapshot) Decision {
	x.mu.Lock()
	defer x.mu.Unlock()

	if x.injected {
		return Decision{Injected: true, Target: x.target}
	}

	if !snap.Ready {
		return Decision{RetryAfter: x.retryAfter}
	}

	present := make(map[string]bool, len(snap.Selectors))
	for _, s := range snap.Selectors {
		present[s] = true
	}

	for _, candidate := range x.selectors {
		// A ready document always has a body, even if the bridge did not
		// list it
		if !present[candidate] && candidate != "body" {
			continue
		}

		x.injected = true
		x.target = candidate
		return Decision{Mount: true, Injected: true, Target: candidate}
	}

	return Decision{RetryAfter: x.retryAfter}
}

// Injected reports whether the mount transition already happened
func (x *Injector) Injected() bool {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.injected
}

// Registry tracks one Injector per page session. Sessions are uuid-keyed
// and live for the lifetime of the page; the bridge closes them on
// unload, and unknown IDs simply start a fresh session.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Injector
	opts     []Option
}

// NewRegistry creates a session registry. The options are applied to
// every injector it creates.
func NewRegistry(opts ...Option) *Registry {
	return &Registry{
		sessions: map[string]*Injector{},
		opts:     opts,
	}
}

// Offer routes a snapshot to the session's state machine, creating the
// session when the ID is empty or unknown. It returns the session ID the
// bridge must echo on subsequent events.
func (r *Registry) Offer(sessionID string, snap Snapshot) (string, Decision) {
	r.mu.Lock()
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	x, ok := r.sessions[sessionID]
	if !ok {
		x = New(r.opts...)
		r.sessions[sessionID] = x
	}
	r.mu.Unlock()

	return sessionID, x.Offer(snap)
}

// Close drops a session. Closing an unknown ID is a no-op.
func (r *Registry) Close(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sessionID)
}

// Len returns the number of live sessions
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
