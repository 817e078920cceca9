// Package server provides the HTTP surface for the mudra gesture
// stabilization engine: settings, event history, gloss vocabulary, the
// camera stream, and the live status WebSocket.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ayusman/mudra/internal/engine"
	"github.com/ayusman/mudra/internal/server/api"
	"github.com/ayusman/mudra/internal/store"
)

// Config holds the server configuration.
type Config struct {
	Store  *store.Store
	Engine *engine.Engine
}

// Server represents the HTTP server for the mudra application.
type Server struct {
	config Config
	mux    *http.ServeMux
	start  time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	if s.config.Store != nil {
		glossHandler := api.NewGlossHandler(s.config.Store)
		s.mux.Handle("/api/glosses", glossHandler)
		s.mux.Handle("/api/glosses/", glossHandler)

		s.mux.Handle("/api/events", api.NewEventsHandler(s.config.Store))
	}

	if s.config.Engine != nil {
		s.mux.Handle("/api/settings", api.NewSettingsHandler(s.config.Store, s.config.Engine))
		s.mux.Handle("/api/status", NewStatusHandler(s.config.Engine))
		s.mux.Handle("/api/stream", NewStreamHandler(s.config.Engine.Camera()))
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(s.start)

	response := map[string]interface{}{
		"status": "ok",
		"uptime": uptime.String(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
