// Package api exposes sessions over HTTP. It mirrors the session engine's
// operations one-to-one: create, read the posed question, submit an answer,
// read progress, plus a websocket that runs the whole exchange on one
// connection.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/remivoice/remi/internal/respond"
	"github.com/remivoice/remi/internal/session"
	"github.com/remivoice/remi/internal/store"
)

// EngineFactory builds a fresh engine for one patient. The server owns no
// quiz or LLM wiring; the factory carries it.
type EngineFactory func(profile respond.Profile) *session.Engine

// Server is the HTTP surface over the session engine.
type Server struct {
	registry  *Registry
	newEngine EngineFactory
	progress  store.ProgressRepo // may be nil; progress endpoints 404 then
	log       *slog.Logger
}

func NewServer(factory EngineFactory, progress store.ProgressRepo, log *slog.Logger) *Server {
	return &Server{
		registry:  NewRegistry(),
		newEngine: factory,
		progress:  progress,
		log:       log,
	}
}

// Router assembles the route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", s.handleHealth)

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.handleCreateSession)
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/question", s.handleGetQuestion)
			r.Post("/answer", s.handleSubmitAnswer)
			r.Get("/progress", s.handleSessionProgress)
			r.Get("/ws", s.handleWebsocket)
		})
	})

	r.Get("/patients/{patientName}/progress", s.handlePatientProgress)

	return r
}

// logRequests is a minimal slog access log.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
