// Package engine orchestrates the per-frame gesture stabilization
// pipeline: it owns the frame loop, selects the local or remote
// decision path by mode, throttles each path by wall clock, and exposes
// the observable status the presentation layer consumes.
package engine

import (
	"log"
	"sync"
	"time"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/recognize"
	"github.com/ayusman/mudra/internal/segment"
	"github.com/ayusman/mudra/internal/store"
)

// Mode selects which decision path the engine runs. Exactly one path is
// active at a time.
type Mode string

const (
	// ModeLocal runs the tracker, classifier, and segmentation machine.
	ModeLocal Mode = "LOCAL"
	// ModeCloud runs the motion-gated capture trigger and hands frames
	// to the remote recognizer.
	ModeCloud Mode = "CLOUD"
)

// Pipeline timing constants.
const (
	// TickInterval drives the frame loop. Per-frame work is throttled
	// by wall-clock gating below, not by frame skipping.
	TickInterval = 33 * time.Millisecond

	// LocalInterval is the minimum spacing between local-path
	// evaluations on a fast tracking backend.
	LocalInterval = 100 * time.Millisecond

	// LocalIntervalSlow is the spacing once the backend is known to be
	// CPU-bound.
	LocalIntervalSlow = 150 * time.Millisecond

	// RemoteInterval is the fixed spacing between remote-path
	// evaluations.
	RemoteInterval = 200 * time.Millisecond

	// SlowTrackerLatency is the per-call tracker latency past which the
	// backend is assumed to have fallen back to software. The downgrade
	// latches for the remainder of the session and is never upgraded
	// back.
	SlowTrackerLatency = 20 * time.Millisecond
)

// Config holds configuration options for the engine.
type Config struct {
	Store      *store.Store
	Camera     capture.Camera
	Tracker    detector.Tracker
	Recognizer recognize.Recognizer
	Mode       Mode
	Stability  time.Duration
	Scope      recognize.Scope
	Language   string
}

// Status is the engine's observable state for the presentation layer.
type Status struct {
	Running     bool   `json:"running"`
	Enabled     bool   `json:"enabled"`
	Mode        Mode   `json:"mode"`
	State       string `json:"state"`
	LastGesture string `json:"last_gesture"`
	LastResult  string `json:"last_result"`
}

// Engine is the gesture stabilization session. All pipeline state is
// owned by the frame loop; the mutex exists for control-surface calls
// (mode switches, settings) and for the async recognizer settling its
// capture.
type Engine struct {
	mu sync.RWMutex

	config      Config
	camera      capture.Camera
	tracker     detector.Tracker
	recognizer  recognize.Recognizer
	downsampler *capture.Downsampler
	trigger     *capture.Trigger
	segmenter   *segment.Segmenter
	sample      [capture.SampleLen]byte

	mode     Mode
	scope    recognize.Scope
	language string
	enabled  bool
	stopCh   chan struct{}

	// generation counts path resets. Work that left the lock (a tracker
	// call, a pending recognition) snapshots it and is discarded on
	// re-entry if a reset happened in between, so a stale observation
	// can never leak into a freshly reset path.
	generation uint64

	// Wall-clock gating
	lastLocal   time.Time
	lastRemote  time.Time
	slowTracker bool

	state       string
	lastGesture string
	lastResult  string

	onConfirmed   func(label, display string)
	onRecognition func(text string, err error)

	now func() time.Time
}

// New creates a new Engine with the given configuration.
func New(config Config) *Engine {
	e := &Engine{
		config:      config,
		camera:      config.Camera,
		tracker:     config.Tracker,
		recognizer:  config.Recognizer,
		downsampler: capture.NewDownsampler(),
		trigger:     capture.NewTrigger(),
		segmenter:   segment.New(),
		mode:        config.Mode,
		scope:       config.Scope,
		language:    config.Language,
		state:       string(segment.StateIdle),
		now:         time.Now,
	}

	if e.camera == nil {
		e.camera = capture.NewCamera(0)
	}
	if e.mode == "" {
		e.mode = ModeLocal
	}
	if e.scope == "" {
		e.scope = recognize.ScopeWord
	}
	if config.Stability > 0 {
		e.trigger.SetStability(config.Stability)
	}

	if e.tracker == nil {
		// Try MediaPipe first, fall back to mock tracker
		if mp, err := detector.NewMediaPipeTracker(detector.DefaultConfig()); err == nil {
			e.tracker = mp
			log.Println("Using MediaPipe hand tracking")
		} else {
			log.Printf("MediaPipe not available (%v), using mock tracker", err)
			e.tracker = detector.NewMockTracker()
		}
	}

	return e
}

// Start begins the frame loop. The backend throttle assumption is
// re-evaluated each session.
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stopCh != nil {
		return nil
	}

	if err := e.camera.Open(); err != nil {
		return err
	}

	e.slowTracker = false
	e.lastLocal = time.Time{}
	e.lastRemote = time.Time{}
	e.resetPaths()

	e.stopCh = make(chan struct{})
	go e.run(e.stopCh)

	log.Println("Stabilization pipeline started")
	return nil
}

// Stop halts the frame loop and synchronously discards all pipeline
// state, so nothing stale leaks into a later session.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stopCh != nil {
		close(e.stopCh)
		e.stopCh = nil
	}

	if err := e.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	e.resetPaths()

	log.Println("Stabilization pipeline stopped")
}

// Close releases the engine's resources after Stop.
func (e *Engine) Close() {
	e.Stop()

	e.mu.Lock()
	defer e.mu.Unlock()

	e.downsampler.Close()
	if e.tracker != nil {
		if err := e.tracker.Close(); err != nil {
			log.Printf("Error closing tracker: %v", err)
		}
	}
}

// resetPaths reverts both decision paths to their initial state.
// Callers must hold e.mu.
func (e *Engine) resetPaths() {
	e.generation++
	e.segmenter.Reset()
	e.trigger.Reset()
	e.state = string(segment.StateIdle)
}

// SetEnabled enables or disables pipeline evaluation without stopping
// the loop.
func (e *Engine) SetEnabled(enabled bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.enabled = enabled
	if !enabled {
		e.resetPaths()
	}
}

// IsEnabled returns whether pipeline evaluation is currently enabled.
func (e *Engine) IsEnabled() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.enabled
}

// SetMode switches the active decision path. Switching discards all
// pipeline state on both paths.
func (e *Engine) SetMode(mode Mode) {
	if mode != ModeLocal && mode != ModeCloud {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if mode == e.mode {
		return
	}

	e.mode = mode
	e.resetPaths()
	log.Printf("Switched to %s mode", mode)
}

// Mode returns the active decision path.
func (e *Engine) Mode() Mode {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.mode
}

// SetStability sets the remote path's stability hold (clamped by the
// trigger).
func (e *Engine) SetStability(d time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.trigger.SetStability(d)
}

// Stability returns the remote path's stability hold.
func (e *Engine) Stability() time.Duration {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.trigger.Stability()
}

// SetScope sets the recognition scope passed through to the remote
// recognizer. It does not affect the pipeline itself.
func (e *Engine) SetScope(scope recognize.Scope) {
	if scope != recognize.ScopeWord && scope != recognize.ScopeSentence {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.scope = scope
}

// Scope returns the recognition scope.
func (e *Engine) Scope() recognize.Scope {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.scope
}

// SetLanguage sets the language hint passed to the remote recognizer.
func (e *Engine) SetLanguage(language string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.language = language
}

// OnConfirmed sets the callback invoked for each confirmed gesture with
// its label and resolved display string.
func (e *Engine) OnConfirmed(fn func(label, display string)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onConfirmed = fn
}

// OnRecognition sets the callback invoked when a remote recognition
// settles.
func (e *Engine) OnRecognition(fn func(text string, err error)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onRecognition = fn
}

// Status returns a snapshot of the engine's observable state.
func (e *Engine) Status() Status {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return Status{
		Running:     e.stopCh != nil,
		Enabled:     e.enabled,
		Mode:        e.mode,
		State:       e.state,
		LastGesture: e.lastGesture,
		LastResult:  e.lastResult,
	}
}

// Camera returns the camera instance.
func (e *Engine) Camera() capture.Camera {
	return e.camera
}

// Tracker returns the hand tracker.
func (e *Engine) Tracker() detector.Tracker {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.tracker
}
