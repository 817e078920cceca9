package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/ayusman/mudra/internal/store"
)

// newTestStore creates a new Store with a temporary database for testing.
func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "mudra-api-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() {
		os.RemoveAll(tmpDir)
	})

	dbPath := filepath.Join(tmpDir, "test.db")
	s, err := store.New(dbPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() {
		s.Close()
	})

	return s
}

func TestGlossHandler_List(t *testing.T) {
	s := newTestStore(t)
	handler := NewGlossHandler(s)

	gloss := &store.Gloss{
		ID:      "test-gloss-1",
		Label:   "CallMe",
		Display: "call me",
	}
	if err := s.Glosses().Create(gloss); err != nil {
		t.Fatalf("failed to create gloss: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/glosses", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	contentType := rec.Header().Get("Content-Type")
	if contentType != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", contentType)
	}

	var response listGlossesResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(response.Glosses) != 1 {
		t.Fatalf("expected 1 gloss, got %d", len(response.Glosses))
	}
	if response.Glosses[0].ID != "test-gloss-1" {
		t.Errorf("expected gloss ID 'test-gloss-1', got %q", response.Glosses[0].ID)
	}
	if response.Glosses[0].Display != "call me" {
		t.Errorf("expected display 'call me', got %q", response.Glosses[0].Display)
	}
}

func TestGlossHandler_Create(t *testing.T) {
	s := newTestStore(t)
	handler := NewGlossHandler(s)

	body, err := json.Marshal(glossRequest{Label: "RockOn", Display: "rock on"})
	if err != nil {
		t.Fatalf("failed to marshal request: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/glosses", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, rec.Code, rec.Body.String())
	}

	var response glossResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.ID == "" {
		t.Error("expected generated ID in response")
	}
	if response.Label != "RockOn" {
		t.Errorf("expected label 'RockOn', got %q", response.Label)
	}

	// The gloss is actually persisted
	if _, err := s.Glosses().GetByLabel("RockOn"); err != nil {
		t.Errorf("gloss not persisted: %v", err)
	}
}

func TestGlossHandler_Create_Validation(t *testing.T) {
	tests := []struct {
		name string
		body glossRequest
	}{
		{
			name: "missing label",
			body: glossRequest{Display: "call me"},
		},
		{
			name: "missing display",
			body: glossRequest{Label: "CallMe"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			handler := NewGlossHandler(s)

			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/api/glosses", bytes.NewReader(body))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
			}
		})
	}
}

func TestGlossHandler_Get_NotFound(t *testing.T) {
	s := newTestStore(t)
	handler := NewGlossHandler(s)

	req := httptest.NewRequest(http.MethodGet, "/api/glosses/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}

func TestGlossHandler_Update(t *testing.T) {
	s := newTestStore(t)
	handler := NewGlossHandler(s)

	gloss := &store.Gloss{ID: uuid.NewString(), Label: "Pinch", Display: "pinch"}
	if err := s.Glosses().Create(gloss); err != nil {
		t.Fatalf("failed to create gloss: %v", err)
	}

	body, _ := json.Marshal(glossRequest{Display: "grab"})
	req := httptest.NewRequest(http.MethodPut, "/api/glosses/"+gloss.ID, bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	updated, err := s.Glosses().GetByID(gloss.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if updated.Display != "grab" {
		t.Errorf("display = %q after update, want 'grab'", updated.Display)
	}
	if updated.Label != "Pinch" {
		t.Errorf("label = %q after partial update, want unchanged 'Pinch'", updated.Label)
	}
}

func TestGlossHandler_Delete(t *testing.T) {
	s := newTestStore(t)
	handler := NewGlossHandler(s)

	gloss := &store.Gloss{ID: uuid.NewString(), Label: "PointUp", Display: "up"}
	if err := s.Glosses().Create(gloss); err != nil {
		t.Fatalf("failed to create gloss: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/glosses/"+gloss.ID, nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("expected status %d, got %d", http.StatusNoContent, rec.Code)
	}

	if _, err := s.Glosses().GetByID(gloss.ID); err == nil {
		t.Error("gloss still present after delete")
	}
}

func TestGlossHandler_MethodNotAllowed(t *testing.T) {
	s := newTestStore(t)
	handler := NewGlossHandler(s)

	req := httptest.NewRequest(http.MethodPatch, "/api/glosses", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status %d, got %d", http.StatusMethodNotAllowed, rec.Code)
	}
}
