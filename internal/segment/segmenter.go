// Package segment decides when a smoothed gesture becomes a confirmed,
// user-visible event. It owns the IDLE/MOVING/STABLE/CONFIRMED state
// machine evaluated once per processed frame.
package segment

import (
	"time"

	"github.com/ayusman/mudra/internal/classify"
)

// State is the segmentation state exposed to the presentation layer.
type State string

const (
	StateIdle      State = "IDLE"
	StateMoving    State = "MOVING"
	StateStable    State = "STABLE"
	StateConfirmed State = "CONFIRMED"
)

const (
	// ConfirmThreshold is the minimum vote count (of WindowSize slots)
	// before a label can confirm.
	ConfirmThreshold = 5

	// Cooldown is the minimum interval between successive confirmations
	// of differing labels. It damps rapid oscillation between two
	// gestures near a decision boundary.
	Cooldown = 1000 * time.Millisecond
)

// Event is a confirmed gesture, emitted at most once per cooldown
// window for a given new label.
type Event struct {
	Label string
	At    time.Time
}

// Segmenter threads the voting window and confirmation memory through
// per-frame Step calls. It is owned by the engine's frame loop; all
// state lives here explicitly, and Step is the only mutation point.
type Segmenter struct {
	window      classify.Window
	state       State
	lastLabel   string
	lastConfirm time.Time

	now func() time.Time
}

// New creates a Segmenter in the IDLE state.
func New() *Segmenter {
	return &Segmenter{
		state: StateIdle,
		now:   time.Now,
	}
}

// NewWithClock creates a Segmenter with an injected clock for tests.
func NewWithClock(now func() time.Time) *Segmenter {
	s := New()
	s.now = now
	return s
}

// Step evaluates one frame. handPresent reports whether the tracker saw
// a hand; obs is that frame's classified observation (ignored when no
// hand is present). It returns the new state and a non-nil Event only
// on a fresh confirmation.
//
// Losing the hand clears the window and the last-confirmed memory, so a
// gesture re-held after a hand loss confirms again immediately. This
// forget-everything reset is deliberate.
func (s *Segmenter) Step(handPresent bool, obs classify.Observation) (State, *Event) {
	if !handPresent {
		s.Reset()
		return s.state, nil
	}

	vote := s.window.Push(obs)

	switch {
	case vote.Winner == classify.None || vote.Count < ConfirmThreshold:
		// Mixed or empty-handed window: ambiguous, not a new state.
		s.state = StateMoving

	case vote.Winner == s.lastLabel:
		// Holding an already-confirmed gesture must not re-fire.
		s.state = StateStable

	default:
		now := s.now()
		if !s.lastConfirm.IsZero() && now.Sub(s.lastConfirm) <= Cooldown {
			// A different label won the vote but the cooldown is still
			// running; suppress.
			s.state = StateMoving
			return s.state, nil
		}

		s.state = StateConfirmed
		s.lastLabel = vote.Winner
		s.lastConfirm = now
		return s.state, &Event{Label: vote.Winner, At: now}
	}

	return s.state, nil
}

// State returns the current segmentation state.
func (s *Segmenter) State() State {
	return s.state
}

// LastConfirmed returns the most recently confirmed label, or "" if
// none has been confirmed since the last reset.
func (s *Segmenter) LastConfirmed() string {
	return s.lastLabel
}

// Reset reverts to IDLE and discards the window and confirmation
// memory. Called on hand loss, session stop, and mode switch.
func (s *Segmenter) Reset() {
	s.window.Reset()
	s.state = StateIdle
	s.lastLabel = ""
	s.lastConfirm = time.Time{}
}
