package capture

import (
	"time"
)

// TriggerState is the capture trigger's scene classification.
type TriggerState string

const (
	TriggerIdle      TriggerState = "IDLE"
	TriggerMoving    TriggerState = "MOVING"
	TriggerStable    TriggerState = "STABLE"
	TriggerCapturing TriggerState = "CAPTURING"
)

// Trigger tuning constants.
const (
	// DiffStride is the sampling stride over the luminance buffer; only
	// every DiffStride-th byte is compared.
	DiffStride = 4

	// DiffThreshold is the minimum absolute intensity delta (of 255)
	// for a sampled position to count as changed.
	DiffThreshold = 30

	// MinDiffCount is the number of changed positions past which the
	// scene classifies as moving.
	MinDiffCount = 5

	// CaptureInterval is the minimum time between capture events.
	CaptureInterval = 3000 * time.Millisecond

	// Stability hold bounds. The hold time is user-tunable; values
	// outside the bounds are clamped.
	DefaultStability = 1000 * time.Millisecond
	MinStability     = 500 * time.Millisecond
	MaxStability     = 3000 * time.Millisecond
)

// Trigger is the motion-gated capture trigger: it watches downsampled
// luminance samples for frame-to-frame motion and fires a rate-limited
// capture once the scene has stayed still past the stability hold. It
// is a cheap proxy for "the user finished a gesture and is holding it"
// that needs no hand tracker.
//
// Trigger is owned by the engine's frame loop and must not be shared
// across goroutines. The previous sample occupies a single fixed slot;
// each observed sample becomes the next frame's reference.
type Trigger struct {
	prev    [SampleLen]byte
	hasPrev bool

	state       TriggerState
	moved       bool // scene has moved since the last capture or reset
	lastMotion  time.Time
	lastCapture time.Time
	inFlight    bool

	stability time.Duration
	now       func() time.Time
}

// NewTrigger creates a Trigger with the default stability hold.
func NewTrigger() *Trigger {
	return &Trigger{
		state:     TriggerIdle,
		stability: DefaultStability,
		now:       time.Now,
	}
}

// NewTriggerWithClock creates a Trigger with an injected clock for tests.
func NewTriggerWithClock(now func() time.Time) *Trigger {
	t := NewTrigger()
	t.now = now
	return t
}

// Observe evaluates one luminance sample. It returns the new state and
// true when a capture event fires; the caller then hands the current
// full-resolution frame to the remote recognizer and settles the
// trigger when that call completes.
func (t *Trigger) Observe(sample []byte) (TriggerState, bool) {
	if len(sample) != SampleLen {
		return t.state, false
	}

	now := t.now()

	if !t.hasPrev {
		copy(t.prev[:], sample)
		t.hasPrev = true
		t.lastMotion = now
		t.state = TriggerIdle
		return t.state, false
	}

	changed := t.diffCount(sample)
	copy(t.prev[:], sample)

	if changed > MinDiffCount {
		t.moved = true
		t.lastMotion = now
		t.state = TriggerMoving
		return t.state, false
	}

	if !t.moved {
		// Scene has been still the whole time; nothing to capture.
		t.state = TriggerIdle
		return t.state, false
	}

	if now.Sub(t.lastMotion) > t.stability &&
		now.Sub(t.lastCapture) >= CaptureInterval &&
		!t.inFlight {
		t.state = TriggerCapturing
		t.moved = false
		t.lastCapture = now
		t.inFlight = true
		return t.state, true
	}

	t.state = TriggerStable
	return t.state, false
}

// diffCount samples the buffer at DiffStride and counts positions whose
// intensity delta from the previous sample exceeds DiffThreshold.
func (t *Trigger) diffCount(sample []byte) int {
	count := 0
	for i := 0; i < SampleLen; i += DiffStride {
		delta := int(sample[i]) - int(t.prev[i])
		if delta < 0 {
			delta = -delta
		}
		if delta > DiffThreshold {
			count++
		}
	}
	return count
}

// Settle releases the in-flight guard once the remote analysis call has
// completed, successfully or not, and reverts to IDLE so the user can
// immediately attempt another gesture.
func (t *Trigger) Settle() {
	t.inFlight = false
	t.state = TriggerIdle
}

// InFlight reports whether a capture is awaiting its remote result.
func (t *Trigger) InFlight() bool {
	return t.inFlight
}

// State returns the current trigger state.
func (t *Trigger) State() TriggerState {
	return t.state
}

// SetStability sets the stability hold, clamped to [MinStability,
// MaxStability].
func (t *Trigger) SetStability(d time.Duration) {
	if d < MinStability {
		d = MinStability
	}
	if d > MaxStability {
		d = MaxStability
	}
	t.stability = d
}

// Stability returns the current stability hold.
func (t *Trigger) Stability() time.Duration {
	return t.stability
}

// Reset discards the reference sample and all motion state. Called on
// session stop and mode switch so a stale reference never leaks into a
// fresh session.
func (t *Trigger) Reset() {
	t.hasPrev = false
	t.moved = false
	t.inFlight = false
	t.state = TriggerIdle
	t.lastMotion = time.Time{}
	t.lastCapture = time.Time{}
}
