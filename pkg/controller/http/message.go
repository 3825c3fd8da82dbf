package http

import (
	"encoding/json"
	"net/http"

	"github.com/m-mizutani/goerr/v2"

	"github.com/studyhall-lab/studyhall/pkg/domain/model"
	"github.com/studyhall-lab/studyhall/pkg/service/canvas"
	"github.com/studyhall-lab/studyhall/pkg/utils/errutil"
)

// lmsCookieHeader carries the browser's ambient LMS session cookie. The
// bridge copies it per request so the service can act with the user's own
// credentials without ever storing them.
const lmsCookieHeader = "X-Canvas-Cookie"

// handleMessage is the transport adapter for the envelope protocol: it
// decodes one Message, fills the Origin from the request when the envelope
// carried none, forwards the ambient cookie, and writes the Response.
// Routing failures travel inside the envelope with status 200; only a body
// that is not an envelope at all is a transport error.
func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var msg model.Message
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to decode message envelope"), http.StatusBadRequest)
		return
	}

	if msg.Origin == "" {
		msg.Origin = r.Header.Get("Origin")
	}

	if cookie := r.Header.Get(lmsCookieHeader); cookie != "" {
		ctx = canvas.WithRequestCookie(ctx, cookie)
	}

	resp := s.handler.HandleMessage(ctx, &msg)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		errutil.Handle(ctx, goerr.Wrap(err, "failed to encode response envelope"), "response write failed")
	}
}
