package detector

import "gocv.io/x/gocv"

// NoCategory is the raw category reported when the tracker has no
// confident gesture for the frame.
const NoCategory = "None"

// Result is one frame's tracker output: zero or more hands, plus the
// tracker's own raw gesture classification for at most one of them.
type Result struct {
	Hands    []HandLandmarks `json:"hands"`
	Category string          `json:"category"`
	Score    float64         `json:"score"`
}

// HandPresent reports whether at least one hand was tracked this frame.
func (r *Result) HandPresent() bool {
	return r != nil && len(r.Hands) > 0
}

// PrimaryHand returns the first tracked hand, or nil if none.
func (r *Result) PrimaryHand() *HandLandmarks {
	if r == nil || len(r.Hands) == 0 {
		return nil
	}
	return &r.Hands[0]
}

// Tracker defines the interface for hand tracking implementations.
type Tracker interface {
	// Track analyzes a video frame and returns tracked hands with the
	// raw gesture category. A result with zero hands is not an error.
	Track(frame *gocv.Mat) (*Result, error)

	// Close releases any resources held by the tracker.
	Close() error
}

// Config holds configuration options for hand tracking.
type Config struct {
	// MaxHands is the maximum number of hands to track (default: 1).
	MaxHands int

	// MinConfidence is the minimum detection confidence threshold (0.0-1.0).
	MinConfidence float64

	// MinTrackingConf is the minimum tracking confidence threshold (0.0-1.0).
	MinTrackingConf float64
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		MaxHands:        1,
		MinConfidence:   0.5,
		MinTrackingConf: 0.5,
	}
}
