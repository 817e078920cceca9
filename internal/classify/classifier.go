// Package classify turns raw per-frame hand landmarks into smoothed
// gesture observations: a geometric rule classifier that can override
// the tracker's own label, and a bounded voting window that absorbs
// single-frame noise.
package classify

import (
	"github.com/ayusman/mudra/internal/detector"
)

// Gesture labels produced by the geometric classifier.
const (
	LabelCallMe     = "CallMe"
	LabelRockOn     = "RockOn"
	LabelPinch      = "Pinch"
	LabelPointLeft  = "PointLeft"
	LabelPointRight = "PointRight"
	LabelPointUp    = "PointUp"
)

const (
	// OverrideScore is the confidence assigned to a rule match. Rules
	// are treated as highly confident when they fire, overriding the
	// tracker's own label for that frame.
	OverrideScore = 0.9

	// PinchThreshold is the maximum normalized thumb-tip-to-index-tip
	// distance for the pinch rule.
	PinchThreshold = 0.06

	// PointDeadband is the horizontal offset the index tip must clear,
	// relative to its knuckle, before a pointing direction is assigned.
	// Inside the deadband the gesture reads as pointing up, which keeps
	// the label from jittering at the left/right boundary.
	PointDeadband = 0.1
)

// fingerState holds the per-finger openness vector for one frame.
type fingerState struct {
	thumb, index, middle, ring, pinky bool
}

// Classify matches one hand's landmarks against the ordered rule list,
// most specific first. It returns the matched label and true, or "" and
// false when no rule fires. It is a pure function of the landmarks: no
// memory, no side effects.
func Classify(hand *detector.HandLandmarks) (string, bool) {
	if hand == nil {
		return "", false
	}

	f := openness(hand)

	switch {
	case f.thumb && f.pinky && !f.index && !f.middle && !f.ring:
		return LabelCallMe, true

	case f.index && f.pinky && !f.thumb && !f.middle && !f.ring:
		return LabelRockOn, true

	case f.middle && f.ring && f.pinky &&
		detector.Dist(hand.Points[detector.ThumbTip], hand.Points[detector.IndexTip]) < PinchThreshold:
		return LabelPinch, true

	case f.index && !f.thumb && !f.middle && !f.ring && !f.pinky:
		return pointingLabel(hand), true
	}

	return "", false
}

// openness computes the five-bit openness vector. A finger is curled iff
// its tip is closer to the wrist than its middle joint is; the thumb
// uses the IP joint, the other fingers their PIP joints.
func openness(hand *detector.HandLandmarks) fingerState {
	open := func(tip, joint int) bool {
		return hand.WristDist(tip) >= hand.WristDist(joint)
	}

	return fingerState{
		thumb:  open(detector.ThumbTip, detector.ThumbIP),
		index:  open(detector.IndexTip, detector.IndexPIP),
		middle: open(detector.MiddleTip, detector.MiddlePIP),
		ring:   open(detector.RingTip, detector.RingPIP),
		pinky:  open(detector.PinkyTip, detector.PinkyPIP),
	}
}

// pointingLabel resolves the left/right sub-variant of a pointing hand
// by comparing the index tip's horizontal position to its knuckle.
func pointingLabel(hand *detector.HandLandmarks) string {
	dx := hand.Points[detector.IndexTip].X - hand.Points[detector.IndexMCP].X

	switch {
	case dx > PointDeadband:
		return LabelPointRight
	case dx < -PointDeadband:
		return LabelPointLeft
	default:
		return LabelPointUp
	}
}
