package server

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/engine"
)

func TestStatusHandler_PushesSnapshot(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	e := engine.New(engine.Config{
		Camera:  capture.NewMockCamera(nil, false),
		Tracker: detector.NewMockTracker(),
	})
	defer e.Close()

	srv := httptest.NewServer(NewStatusHandler(e))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("websocket dial error = %v", err)
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage() error = %v", err)
	}

	var status engine.Status
	if err := json.Unmarshal(msg, &status); err != nil {
		t.Fatalf("snapshot is not valid JSON: %v", err)
	}

	if status.Mode != engine.ModeLocal {
		t.Errorf("snapshot mode = %s, want %s", status.Mode, engine.ModeLocal)
	}
	if status.State == "" {
		t.Error("snapshot state is empty")
	}
}
