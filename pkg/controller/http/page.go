package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"

	"github.com/studyhall-lab/studyhall/pkg/service/injector"
	"github.com/studyhall-lab/studyhall/pkg/utils/errutil"
)

// pageEventRequest is one page observation from the bridge: sent on
// DOMContentLoaded and on each mutation batch
type pageEventRequest struct {
	SessionID string   `json:"session_id"`
	Ready     bool     `json:"ready"`
	Selectors []string `json:"selectors"`
}

// pageEventResponse tells the bridge whether to mount the panel, where,
// and when to send the next observation
type pageEventResponse struct {
	SessionID    string `json:"session_id"`
	Mount        bool   `json:"mount"`
	Target       string `json:"target,omitempty"`
	Injected     bool   `json:"injected"`
	RetryAfterMS int64  `json:"retry_after_ms,omitempty"`
}

func (s *Server) handlePageEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req pageEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to decode page event"), http.StatusBadRequest)
		return
	}

	sessionID, decision := s.registry.Offer(req.SessionID, injector.Snapshot{
		Ready:     req.Ready,
		Selectors: req.Selectors,
	})

	resp := pageEventResponse{
		SessionID:    sessionID,
		Mount:        decision.Mount,
		Target:       decision.Target,
		Injected:     decision.Injected,
		RetryAfterMS: decision.RetryAfter.Milliseconds(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		errutil.Handle(ctx, goerr.Wrap(err, "failed to encode page event response"), "response write failed")
	}
}

// handlePageClose drops a page session; the bridge calls it on unload
func (s *Server) handlePageClose(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	s.registry.Close(sessionID)
	w.WriteHeader(http.StatusNoContent)
}
