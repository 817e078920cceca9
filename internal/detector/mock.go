package detector

import (
	"gocv.io/x/gocv"
)

// MockTracker is a test implementation of the Tracker interface.
// It allows tests to control the tracking results.
type MockTracker struct {
	result  *Result
	err     error
	latency func()
}

// NewMockTracker creates a new MockTracker instance.
func NewMockTracker() *MockTracker {
	return &MockTracker{}
}

// SetResult sets the result that will be returned by Track.
func (m *MockTracker) SetResult(r *Result) {
	m.result = r
}

// SetHands sets a result containing the given hands and no raw category.
func (m *MockTracker) SetHands(hands ...HandLandmarks) {
	m.result = &Result{Hands: hands, Category: NoCategory}
}

// SetError sets the error that will be returned by Track.
func (m *MockTracker) SetError(err error) {
	m.err = err
}

// SetLatency installs a hook invoked on every Track call, letting tests
// simulate a slow inference backend.
func (m *MockTracker) SetLatency(fn func()) {
	m.latency = fn
}

// Track returns the pre-configured result or error.
func (m *MockTracker) Track(frame *gocv.Mat) (*Result, error) {
	if m.latency != nil {
		m.latency()
	}
	if m.err != nil {
		return nil, m.err
	}
	if m.result == nil {
		return &Result{Category: NoCategory}, nil
	}
	return m.result, nil
}

// Close is a no-op for the mock tracker.
func (m *MockTracker) Close() error {
	return nil
}

// Preset landmark fixtures for the hand shapes the geometric classifier
// recognizes. Each places the wrist at (0.5, 0.9) with fingers rising
// toward smaller y, and satisfies the tip-versus-middle-joint wrist
// distance test for its intended openness pattern.

// openFinger lays out an extended finger column at the given x.
func openFinger(lm *HandLandmarks, mcp, pip, dip, tip int, x float64) {
	lm.Points[mcp] = Point3D{X: x, Y: 0.68}
	lm.Points[pip] = Point3D{X: x, Y: 0.55}
	lm.Points[dip] = Point3D{X: x, Y: 0.45}
	lm.Points[tip] = Point3D{X: x, Y: 0.35}
}

// curledFinger lays out a finger folded back toward the palm.
func curledFinger(lm *HandLandmarks, mcp, pip, dip, tip int, x float64) {
	lm.Points[mcp] = Point3D{X: x, Y: 0.68}
	lm.Points[pip] = Point3D{X: x, Y: 0.62}
	lm.Points[dip] = Point3D{X: x, Y: 0.70}
	lm.Points[tip] = Point3D{X: 0.5, Y: 0.78}
}

func openThumb(lm *HandLandmarks) {
	lm.Points[ThumbCMC] = Point3D{X: 0.56, Y: 0.85}
	lm.Points[ThumbMCP] = Point3D{X: 0.62, Y: 0.80}
	lm.Points[ThumbIP] = Point3D{X: 0.67, Y: 0.76}
	lm.Points[ThumbTip] = Point3D{X: 0.72, Y: 0.72}
}

func curledThumb(lm *HandLandmarks) {
	lm.Points[ThumbCMC] = Point3D{X: 0.56, Y: 0.85}
	lm.Points[ThumbMCP] = Point3D{X: 0.58, Y: 0.82}
	lm.Points[ThumbIP] = Point3D{X: 0.55, Y: 0.78}
	lm.Points[ThumbTip] = Point3D{X: 0.52, Y: 0.82}
}

func baseHand() HandLandmarks {
	lm := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}
	lm.Points[Wrist] = Point3D{X: 0.5, Y: 0.9}
	return lm
}

// CallMeLandmarks returns a hand with thumb and pinky extended and the
// remaining fingers curled.
func CallMeLandmarks() HandLandmarks {
	lm := baseHand()
	openThumb(&lm)
	curledFinger(&lm, IndexMCP, IndexPIP, IndexDIP, IndexTip, 0.56)
	curledFinger(&lm, MiddleMCP, MiddlePIP, MiddleDIP, MiddleTip, 0.50)
	curledFinger(&lm, RingMCP, RingPIP, RingDIP, RingTip, 0.44)
	openFinger(&lm, PinkyMCP, PinkyPIP, PinkyDIP, PinkyTip, 0.38)
	return lm
}

// RockOnLandmarks returns a hand with index and pinky extended and the
// remaining fingers curled.
func RockOnLandmarks() HandLandmarks {
	lm := baseHand()
	curledThumb(&lm)
	openFinger(&lm, IndexMCP, IndexPIP, IndexDIP, IndexTip, 0.56)
	curledFinger(&lm, MiddleMCP, MiddlePIP, MiddleDIP, MiddleTip, 0.50)
	curledFinger(&lm, RingMCP, RingPIP, RingDIP, RingTip, 0.44)
	openFinger(&lm, PinkyMCP, PinkyPIP, PinkyDIP, PinkyTip, 0.38)
	return lm
}

// PinchLandmarks returns a hand with thumb tip and index tip touching
// and the remaining three fingers extended.
func PinchLandmarks() HandLandmarks {
	lm := baseHand()
	lm.Points[ThumbCMC] = Point3D{X: 0.56, Y: 0.85}
	lm.Points[ThumbMCP] = Point3D{X: 0.60, Y: 0.78}
	lm.Points[ThumbIP] = Point3D{X: 0.60, Y: 0.70}
	lm.Points[ThumbTip] = Point3D{X: 0.55, Y: 0.55}
	lm.Points[IndexMCP] = Point3D{X: 0.56, Y: 0.68}
	lm.Points[IndexPIP] = Point3D{X: 0.57, Y: 0.62}
	lm.Points[IndexDIP] = Point3D{X: 0.57, Y: 0.58}
	lm.Points[IndexTip] = Point3D{X: 0.57, Y: 0.56}
	openFinger(&lm, MiddleMCP, MiddlePIP, MiddleDIP, MiddleTip, 0.50)
	openFinger(&lm, RingMCP, RingPIP, RingDIP, RingTip, 0.44)
	openFinger(&lm, PinkyMCP, PinkyPIP, PinkyDIP, PinkyTip, 0.38)
	return lm
}

// PointingLandmarks returns a hand with only the index extended, its tip
// offset horizontally from the knuckle by dx (positive points right).
func PointingLandmarks(dx float64) HandLandmarks {
	lm := baseHand()
	curledThumb(&lm)
	lm.Points[IndexMCP] = Point3D{X: 0.56, Y: 0.68}
	lm.Points[IndexPIP] = Point3D{X: 0.56 + dx/3, Y: 0.58}
	lm.Points[IndexDIP] = Point3D{X: 0.56 + 2*dx/3, Y: 0.53}
	lm.Points[IndexTip] = Point3D{X: 0.56 + dx, Y: 0.50}
	curledFinger(&lm, MiddleMCP, MiddlePIP, MiddleDIP, MiddleTip, 0.50)
	curledFinger(&lm, RingMCP, RingPIP, RingDIP, RingTip, 0.44)
	curledFinger(&lm, PinkyMCP, PinkyPIP, PinkyDIP, PinkyTip, 0.38)
	return lm
}

// OpenPalmLandmarks returns a hand with all five fingers extended.
// No classifier rule matches it.
func OpenPalmLandmarks() HandLandmarks {
	lm := baseHand()
	openThumb(&lm)
	openFinger(&lm, IndexMCP, IndexPIP, IndexDIP, IndexTip, 0.56)
	openFinger(&lm, MiddleMCP, MiddlePIP, MiddleDIP, MiddleTip, 0.50)
	openFinger(&lm, RingMCP, RingPIP, RingDIP, RingTip, 0.44)
	openFinger(&lm, PinkyMCP, PinkyPIP, PinkyDIP, PinkyTip, 0.38)
	return lm
}

// FistLandmarks returns a hand with all five fingers curled.
// No classifier rule matches it.
func FistLandmarks() HandLandmarks {
	lm := baseHand()
	curledThumb(&lm)
	curledFinger(&lm, IndexMCP, IndexPIP, IndexDIP, IndexTip, 0.56)
	curledFinger(&lm, MiddleMCP, MiddlePIP, MiddleDIP, MiddleTip, 0.50)
	curledFinger(&lm, RingMCP, RingPIP, RingDIP, RingTip, 0.44)
	curledFinger(&lm, PinkyMCP, PinkyPIP, PinkyDIP, PinkyTip, 0.38)
	return lm
}
