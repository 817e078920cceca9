// Package api provides HTTP API handlers for the mudra gesture
// stabilization engine.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/ayusman/mudra/internal/store"
)

// GlossHandler handles HTTP requests for the gloss vocabulary.
type GlossHandler struct {
	store *store.Store
}

// NewGlossHandler creates a new GlossHandler with the given store.
func NewGlossHandler(s *store.Store) *GlossHandler {
	return &GlossHandler{store: s}
}

// ServeHTTP implements the http.Handler interface and routes requests to
// appropriate methods.
func (h *GlossHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Expected paths: /api/glosses or /api/glosses/{id}
	path := strings.TrimPrefix(r.URL.Path, "/api/glosses")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodPost:
			h.create(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	id := path
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodPut:
		h.update(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Request and response types

type glossRequest struct {
	Label   string `json:"label"`
	Display string `json:"display"`
}

type glossResponse struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Display   string `json:"display"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type listGlossesResponse struct {
	Glosses []glossResponse `json:"glosses"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// toResponse converts a store.Gloss to a glossResponse.
func toResponse(g *store.Gloss) glossResponse {
	return glossResponse{
		ID:        g.ID,
		Label:     g.Label,
		Display:   g.Display,
		CreatedAt: g.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: g.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// list handles GET /api/glosses and returns all glosses.
func (h *GlossHandler) list(w http.ResponseWriter, r *http.Request) {
	glosses, err := h.store.Glosses().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list glosses")
		return
	}

	response := listGlossesResponse{Glosses: make([]glossResponse, 0, len(glosses))}
	for _, g := range glosses {
		response.Glosses = append(response.Glosses, toResponse(g))
	}

	writeJSON(w, http.StatusOK, response)
}

// create handles POST /api/glosses and inserts a new gloss.
func (h *GlossHandler) create(w http.ResponseWriter, r *http.Request) {
	var req glossRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Label == "" {
		writeError(w, http.StatusBadRequest, "Label is required")
		return
	}
	if req.Display == "" {
		writeError(w, http.StatusBadRequest, "Display is required")
		return
	}

	gloss := &store.Gloss{
		ID:      uuid.NewString(),
		Label:   req.Label,
		Display: req.Display,
	}

	if err := h.store.Glosses().Create(gloss); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create gloss")
		return
	}

	writeJSON(w, http.StatusCreated, toResponse(gloss))
}

// get handles GET /api/glosses/{id}.
func (h *GlossHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	gloss, err := h.store.Glosses().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Gloss not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get gloss")
		return
	}

	writeJSON(w, http.StatusOK, toResponse(gloss))
}

// update handles PUT /api/glosses/{id}.
func (h *GlossHandler) update(w http.ResponseWriter, r *http.Request, id string) {
	var req glossRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	gloss, err := h.store.Glosses().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Gloss not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get gloss")
		return
	}

	if req.Label != "" {
		gloss.Label = req.Label
	}
	if req.Display != "" {
		gloss.Display = req.Display
	}

	if err := h.store.Glosses().Update(gloss); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update gloss")
		return
	}

	writeJSON(w, http.StatusOK, toResponse(gloss))
}

// delete handles DELETE /api/glosses/{id}.
func (h *GlossHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.store.Glosses().Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Gloss not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete gloss")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
