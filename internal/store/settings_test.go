package store

import (
	"errors"
	"testing"
)

func TestSettings_SetGet(t *testing.T) {
	s := newTestStore(t)
	settings := s.Settings()

	if err := settings.Set(SettingMode, "CLOUD"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, err := settings.Get(SettingMode)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != "CLOUD" {
		t.Errorf("Get() = %q, want %q", got, "CLOUD")
	}
}

func TestSettings_SetOverwrites(t *testing.T) {
	s := newTestStore(t)
	settings := s.Settings()

	if err := settings.Set(SettingLanguage, "en"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := settings.Set(SettingLanguage, "hi"); err != nil {
		t.Fatalf("second Set() error = %v", err)
	}

	got, err := settings.Get(SettingLanguage)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != "hi" {
		t.Errorf("Get() = %q, want %q", got, "hi")
	}
}

func TestSettings_GetMissing(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Settings().Get("nonexistent")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestSettings_GetDefault(t *testing.T) {
	s := newTestStore(t)
	settings := s.Settings()

	if got := settings.GetDefault(SettingScope, "WORD"); got != "WORD" {
		t.Errorf("GetDefault() = %q for missing key, want fallback %q", got, "WORD")
	}

	settings.Set(SettingScope, "SENTENCE")
	if got := settings.GetDefault(SettingScope, "WORD"); got != "SENTENCE" {
		t.Errorf("GetDefault() = %q, want stored %q", got, "SENTENCE")
	}
}

func TestSettings_GetInt(t *testing.T) {
	s := newTestStore(t)
	settings := s.Settings()

	if got := settings.GetInt(SettingStabilityMs, 1000); got != 1000 {
		t.Errorf("GetInt() = %d for missing key, want fallback 1000", got)
	}

	if err := settings.SetInt(SettingStabilityMs, 1500); err != nil {
		t.Fatalf("SetInt() error = %v", err)
	}
	if got := settings.GetInt(SettingStabilityMs, 1000); got != 1500 {
		t.Errorf("GetInt() = %d, want 1500", got)
	}

	// Non-numeric stored values fall back too.
	settings.Set(SettingStabilityMs, "not a number")
	if got := settings.GetInt(SettingStabilityMs, 1000); got != 1000 {
		t.Errorf("GetInt() = %d for garbage value, want fallback 1000", got)
	}
}
