package api

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/engine"
	"github.com/ayusman/mudra/internal/store"
)

// newTestEngine builds an engine on mock devices. Engine construction
// allocates GoCV Mats, so callers skip in short mode.
func newTestEngine(t *testing.T, s *store.Store) *engine.Engine {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	e := engine.New(engine.Config{
		Store:   s,
		Camera:  capture.NewMockCamera(nil, false),
		Tracker: detector.NewMockTracker(),
	})
	t.Cleanup(e.Close)
	return e
}

func TestSettingsHandler_Get(t *testing.T) {
	s := newTestStore(t)
	e := newTestEngine(t, s)
	handler := NewSettingsHandler(s, e)

	req := httptest.NewRequest(http.MethodGet, "/api/settings", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var response settingsResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if response.Mode != string(engine.ModeLocal) {
		t.Errorf("mode = %q, want %q", response.Mode, engine.ModeLocal)
	}
	if response.StabilityMs != int(capture.DefaultStability/time.Millisecond) {
		t.Errorf("stability_ms = %d, want %d",
			response.StabilityMs, int(capture.DefaultStability/time.Millisecond))
	}
}

func TestSettingsHandler_Update(t *testing.T) {
	s := newTestStore(t)
	e := newTestEngine(t, s)
	handler := NewSettingsHandler(s, e)

	body, _ := json.Marshal(updateSettingsRequest{
		Mode:        "CLOUD",
		StabilityMs: 1500,
		Scope:       "SENTENCE",
		Language:    "hi",
	})
	req := httptest.NewRequest(http.MethodPut, "/api/settings", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	// Applied to the live engine
	if got := e.Mode(); got != engine.ModeCloud {
		t.Errorf("engine mode = %s, want %s", got, engine.ModeCloud)
	}
	if got := e.Stability(); got != 1500*time.Millisecond {
		t.Errorf("engine stability = %v, want 1.5s", got)
	}

	// Persisted through the store
	if got := s.Settings().GetDefault(store.SettingMode, ""); got != "CLOUD" {
		t.Errorf("persisted mode = %q, want CLOUD", got)
	}
	if got := s.Settings().GetInt(store.SettingStabilityMs, 0); got != 1500 {
		t.Errorf("persisted stability = %d, want 1500", got)
	}
	if got := s.Settings().GetDefault(store.SettingLanguage, ""); got != "hi" {
		t.Errorf("persisted language = %q, want hi", got)
	}
}

func TestSettingsHandler_StabilityClamped(t *testing.T) {
	s := newTestStore(t)
	e := newTestEngine(t, s)
	handler := NewSettingsHandler(s, e)

	body, _ := json.Marshal(updateSettingsRequest{StabilityMs: 10000})
	req := httptest.NewRequest(http.MethodPut, "/api/settings", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if got := e.Stability(); got != capture.MaxStability {
		t.Errorf("engine stability = %v, want clamped %v", got, capture.MaxStability)
	}

	// The clamped value is what gets persisted.
	want := int(capture.MaxStability / time.Millisecond)
	if got := s.Settings().GetInt(store.SettingStabilityMs, 0); got != want {
		t.Errorf("persisted stability = %d, want %d", got, want)
	}
}

func TestSettingsHandler_PersistErrorLogged(t *testing.T) {
	s := newTestStore(t)
	if err := s.Close(); err != nil {
		t.Fatalf("failed to close store: %v", err)
	}
	handler := NewSettingsHandler(s, nil)

	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	// Writes against the closed store fail; the failure must surface in
	// the log instead of vanishing.
	handler.persist(store.SettingMode, "CLOUD")
	handler.persistInt(store.SettingStabilityMs, 1500)

	logged := buf.String()
	if !strings.Contains(logged, "Failed to persist setting") {
		t.Errorf("store write failure not logged, got %q", logged)
	}
}

func TestSettingsHandler_Validation(t *testing.T) {
	tests := []struct {
		name string
		body updateSettingsRequest
	}{
		{
			name: "unknown mode",
			body: updateSettingsRequest{Mode: "TURBO"},
		},
		{
			name: "unknown scope",
			body: updateSettingsRequest{Scope: "PARAGRAPH"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			e := newTestEngine(t, s)
			handler := NewSettingsHandler(s, e)

			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPut, "/api/settings", bytes.NewReader(body))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
			}
		})
	}
}
