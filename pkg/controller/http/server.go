package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/studyhall-lab/studyhall/pkg/domain/model"
	"github.com/studyhall-lab/studyhall/pkg/service/injector"
	"github.com/studyhall-lab/studyhall/pkg/utils/logging"
	"github.com/studyhall-lab/studyhall/pkg/utils/safe"
)

// MessageHandler answers request envelopes; it is the usecase layer seen
// from the transport side
type MessageHandler interface {
	HandleMessage(ctx context.Context, msg *model.Message) *model.Response
}

type Server struct {
	router   *chi.Mux
	handler  MessageHandler
	registry *injector.Registry
}

type Options func(*Server)

// WithInjectorRegistry replaces the page session registry
func WithInjectorRegistry(registry *injector.Registry) Options {
	return func(s *Server) {
		s.registry = registry
	}
}

// New builds the HTTP surface: the message envelope endpoint, the page
// event bridge, and a health probe.
func New(handler MessageHandler, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router:   r,
		handler:  handler,
		registry: injector.NewRegistry(),
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Post("/message", s.handleMessage)
		r.Post("/page/events", s.handlePageEvent)
		r.Delete("/page/sessions/{sessionID}", s.handlePageClose)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		safe.Write(r.Context(), w, []byte("OK"))
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
