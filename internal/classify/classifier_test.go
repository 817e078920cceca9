package classify

import (
	"testing"

	"github.com/ayusman/mudra/internal/detector"
)

func TestClassify_RuleLabels(t *testing.T) {
	tests := []struct {
		name string
		hand detector.HandLandmarks
		want string
	}{
		{
			name: "thumb and pinky open",
			hand: detector.CallMeLandmarks(),
			want: LabelCallMe,
		},
		{
			name: "index and pinky open",
			hand: detector.RockOnLandmarks(),
			want: LabelRockOn,
		},
		{
			name: "thumb and index tips touching",
			hand: detector.PinchLandmarks(),
			want: LabelPinch,
		},
		{
			name: "index pointing right",
			hand: detector.PointingLandmarks(0.14),
			want: LabelPointRight,
		},
		{
			name: "index pointing left",
			hand: detector.PointingLandmarks(-0.14),
			want: LabelPointLeft,
		},
		{
			name: "index pointing up",
			hand: detector.PointingLandmarks(0),
			want: LabelPointUp,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Classify(&tt.hand)
			if !ok {
				t.Fatalf("Classify() matched nothing, want %q", tt.want)
			}
			if got != tt.want {
				t.Errorf("Classify() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClassify_NoMatch(t *testing.T) {
	tests := []struct {
		name string
		hand detector.HandLandmarks
	}{
		{name: "open palm", hand: detector.OpenPalmLandmarks()},
		{name: "fist", hand: detector.FistLandmarks()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got, ok := Classify(&tt.hand); ok {
				t.Errorf("Classify() = %q, want no match", got)
			}
		})
	}
}

func TestClassify_NilHand(t *testing.T) {
	if got, ok := Classify(nil); ok {
		t.Errorf("Classify(nil) = %q, want no match", got)
	}
}

// TestClassify_CurlPolarity verifies the openness direction is not
// inverted: a hand whose thumb and pinky tips are closer to the wrist
// than their middle joints (curled), with the other fingers extended,
// is the exact inverse of the thumb-and-pinky rule and must not match
// it.
func TestClassify_CurlPolarity(t *testing.T) {
	hand := detector.OpenPalmLandmarks()

	// Curl thumb: tip closer to the wrist than the IP joint
	hand.Points[detector.ThumbIP] = detector.Point3D{X: 0.55, Y: 0.78}
	hand.Points[detector.ThumbTip] = detector.Point3D{X: 0.52, Y: 0.82}

	// Curl pinky: tip closer to the wrist than the PIP joint
	hand.Points[detector.PinkyPIP] = detector.Point3D{X: 0.38, Y: 0.62}
	hand.Points[detector.PinkyTip] = detector.Point3D{X: 0.5, Y: 0.78}

	got, ok := Classify(&hand)
	if ok && got == LabelCallMe {
		t.Errorf("Classify() = %q for curled thumb and pinky; curl polarity is inverted", got)
	}
}

func TestClassify_PointingDeadband(t *testing.T) {
	// Offsets inside the deadband must not pick a direction
	for _, dx := range []float64{0.05, -0.05, 0.09, -0.09} {
		hand := detector.PointingLandmarks(dx)
		got, ok := Classify(&hand)
		if !ok {
			t.Fatalf("Classify() matched nothing for dx=%f", dx)
		}
		if got != LabelPointUp {
			t.Errorf("Classify() = %q for dx=%f inside deadband, want %q", got, dx, LabelPointUp)
		}
	}
}

func TestClassify_PinchThreshold(t *testing.T) {
	hand := detector.PinchLandmarks()

	// Move the thumb tip away so the pinch distance exceeds the threshold
	hand.Points[detector.ThumbTip] = detector.Point3D{X: 0.70, Y: 0.50}

	got, ok := Classify(&hand)
	if ok && got == LabelPinch {
		t.Errorf("Classify() = %q with tips %.3f apart, want no pinch",
			got, detector.Dist(hand.Points[detector.ThumbTip], hand.Points[detector.IndexTip]))
	}
}

// TestClassify_Deterministic pins that classification is a pure
// function of the landmarks.
func TestClassify_Deterministic(t *testing.T) {
	hand := detector.CallMeLandmarks()

	first, ok := Classify(&hand)
	if !ok {
		t.Fatal("Classify() matched nothing")
	}

	for i := 0; i < 100; i++ {
		got, ok := Classify(&hand)
		if !ok || got != first {
			t.Fatalf("Classify() = %q (%v) on iteration %d, want %q", got, ok, i, first)
		}
	}
}
