package api

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/ayusman/mudra/internal/engine"
	"github.com/ayusman/mudra/internal/recognize"
	"github.com/ayusman/mudra/internal/store"
)

// SettingsHandler reads and writes the engine's configuration surface:
// mode, stability threshold, recognition scope, and language hint.
// Writes apply to the live engine and persist through the store.
type SettingsHandler struct {
	store  *store.Store
	engine *engine.Engine
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(s *store.Store, e *engine.Engine) *SettingsHandler {
	return &SettingsHandler{store: s, engine: e}
}

type settingsResponse struct {
	Mode        string `json:"mode"`
	StabilityMs int    `json:"stability_ms"`
	Scope       string `json:"scope"`
	Language    string `json:"language"`
}

type updateSettingsRequest struct {
	Mode        string `json:"mode,omitempty"`
	StabilityMs int    `json:"stability_ms,omitempty"`
	Scope       string `json:"scope,omitempty"`
	Language    string `json:"language,omitempty"`
}

// ServeHTTP routes GET and PUT on /api/settings.
func (h *SettingsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.get(w, r)
	case http.MethodPut:
		h.update(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *SettingsHandler) get(w http.ResponseWriter, r *http.Request) {
	language := ""
	if h.store != nil {
		language = h.store.Settings().GetDefault(store.SettingLanguage, "")
	}

	writeJSON(w, http.StatusOK, settingsResponse{
		Mode:        string(h.engine.Mode()),
		StabilityMs: int(h.engine.Stability() / time.Millisecond),
		Scope:       string(h.engine.Scope()),
		Language:    language,
	})
}

func (h *SettingsHandler) update(w http.ResponseWriter, r *http.Request) {
	var req updateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Mode != "" {
		mode := engine.Mode(req.Mode)
		if mode != engine.ModeLocal && mode != engine.ModeCloud {
			writeError(w, http.StatusBadRequest, "Mode must be LOCAL or CLOUD")
			return
		}
		h.engine.SetMode(mode)
		h.persist(store.SettingMode, req.Mode)
	}

	if req.StabilityMs > 0 {
		h.engine.SetStability(time.Duration(req.StabilityMs) * time.Millisecond)
		h.persistInt(store.SettingStabilityMs, int(h.engine.Stability()/time.Millisecond))
	}

	if req.Scope != "" {
		scope := recognize.Scope(req.Scope)
		if scope != recognize.ScopeWord && scope != recognize.ScopeSentence {
			writeError(w, http.StatusBadRequest, "Scope must be WORD or SENTENCE")
			return
		}
		h.engine.SetScope(scope)
		h.persist(store.SettingScope, req.Scope)
	}

	if req.Language != "" {
		h.engine.SetLanguage(req.Language)
		h.persist(store.SettingLanguage, req.Language)
	}

	h.get(w, r)
}

func (h *SettingsHandler) persist(key, value string) {
	if h.store == nil {
		return
	}
	if err := h.store.Settings().Set(key, value); err != nil {
		log.Printf("Failed to persist setting %s: %v", key, err)
	}
}

func (h *SettingsHandler) persistInt(key string, value int) {
	if h.store == nil {
		return
	}
	if err := h.store.Settings().SetInt(key, value); err != nil {
		log.Printf("Failed to persist setting %s: %v", key, err)
	}
}
