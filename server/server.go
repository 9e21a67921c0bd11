// Package server exposes the agent adapters over HTTP. Each adapter is
// mounted by name and speaks the task request/response envelope as JSON.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	adapterx "github.com/krittin-w/frontdesk/agent/adapter"
	contractx "github.com/krittin-w/frontdesk/agent/contract"
)

type Server struct {
	router   chi.Router
	adapters map[string]*adapterx.Service
}

func New(adapters ...*adapterx.Service) *Server {
	byName := make(map[string]*adapterx.Service, len(adapters))
	for _, a := range adapters {
		byName[a.Name()] = a
	}

	s := &Server{
		router:   chi.NewRouter(),
		adapters: byName,
	}

	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(requestLogger)

	s.router.Get("/healthz", s.handleHealth)
	s.router.Route("/agents/{agent}", func(r chi.Router) {
		r.Get("/card", s.handleCard)
		r.Post("/tasks", s.handleSendTask)
		r.Get("/tasks/{taskID}", s.handleGetTask)
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCard(w http.ResponseWriter, r *http.Request) {
	adapter, ok := s.adapters[chi.URLParam(r, "agent")]
	if !ok {
		writeError(w, http.StatusNotFound, "unknown agent")
		return
	}
	writeJSON(w, http.StatusOK, adapter.Card())
}

func (s *Server) handleSendTask(w http.ResponseWriter, r *http.Request) {
	adapter, ok := s.adapters[chi.URLParam(r, "agent")]
	if !ok {
		writeError(w, http.StatusNotFound, "unknown agent")
		return
	}

	var req contractx.SendTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	resp, err := adapter.OnSendTask(r.Context(), req)
	if err != nil {
		// Everything surfacing here is a request-shape problem; agent
		// failures were already folded into the task reply.
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	adapter, ok := s.adapters[chi.URLParam(r, "agent")]
	if !ok {
		writeError(w, http.StatusNotFound, "unknown agent")
		return
	}

	task, ok := adapter.Snapshot(chi.URLParam(r, "taskID"))
	if !ok {
		writeError(w, http.StatusNotFound, "unknown task")
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("encode response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Str("request_id", chimiddleware.GetReqID(r.Context())).
			Msg("request handled")
	})
}
