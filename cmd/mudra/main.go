package main

import (
	"fmt"
	"log"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/config"
	"github.com/ayusman/mudra/internal/engine"
	"github.com/ayusman/mudra/internal/recognize"
	"github.com/ayusman/mudra/internal/server"
	"github.com/ayusman/mudra/internal/store"
	"github.com/ayusman/mudra/internal/tray"
)

func main() {
	fmt.Println("Mudra - Sign Language Gesture Stabilization")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	dataDir, err := config.DataDir()
	if err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	st, err := store.New(filepath.Join(dataDir, "mudra.db"))
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	var recognizer recognize.Recognizer
	if cfg.RecognizerURL != "" {
		recognizer = recognize.NewHTTPRecognizer(cfg.RecognizerURL)
	}

	// Persisted settings override config-file defaults
	settings := st.Settings()
	mode := engine.Mode(settings.GetDefault(store.SettingMode, cfg.Mode))
	stabilityMs := settings.GetInt(store.SettingStabilityMs, cfg.StabilityMs)
	scope := recognize.Scope(settings.GetDefault(store.SettingScope, cfg.Scope))
	language := settings.GetDefault(store.SettingLanguage, cfg.Language)

	eng := engine.New(engine.Config{
		Store:      st,
		Camera:     capture.NewCamera(cfg.CameraID),
		Recognizer: recognizer,
		Mode:       mode,
		Stability:  time.Duration(stabilityMs) * time.Millisecond,
		Scope:      scope,
		Language:   language,
	})
	defer eng.Close()

	if err := eng.Start(); err != nil {
		log.Fatalf("Failed to start engine: %v", err)
	}
	eng.SetEnabled(true)

	srv := server.New(server.Config{
		Store:  st,
		Engine: eng,
	})

	go func() {
		log.Printf("Starting server on %s", cfg.ListenAddr)
		if err := srv.ListenAndServe(cfg.ListenAddr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	tr := tray.New()
	tr.SetCloudMode(mode == engine.ModeCloud)

	tr.OnToggle(func(enabled bool) {
		eng.SetEnabled(enabled)
	})
	tr.OnMode(func(cloud bool) {
		if cloud {
			eng.SetMode(engine.ModeCloud)
		} else {
			eng.SetMode(engine.ModeLocal)
		}
	})
	tr.OnSettings(func() {
		openBrowser("http://localhost" + cfg.ListenAddr)
	})
	tr.OnQuit(func() {
		eng.Stop()
	})

	eng.OnConfirmed(func(label, display string) {
		tr.SetLastGesture(display)
	})
	eng.OnRecognition(func(text string, err error) {
		if err == nil && text != "" {
			tr.SetLastGesture(text)
		}
	})

	// Blocks until quit
	tr.Run()
}

// openBrowser opens the given URL in the default browser.
func openBrowser(url string) {
	for _, cmd := range [][]string{{"open", url}, {"xdg-open", url}} {
		if err := exec.Command(cmd[0], cmd[1:]...).Start(); err == nil {
			return
		}
	}
	log.Printf("Open %s in your browser", url)
}
