package capture

import (
	"testing"

	"gocv.io/x/gocv"
)

func TestDownsampler_SampleShape(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	d := NewDownsampler()
	defer d.Close()

	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame.Close()
	frame.SetTo(gocv.NewScalar(200, 200, 200, 0))

	dst := make([]byte, SampleLen)
	if err := d.Downsample(&frame, dst); err != nil {
		t.Fatalf("Downsample() error = %v", err)
	}

	// A uniform frame downsamples to a uniform luminance buffer.
	for i, v := range dst {
		if v < 190 || v > 210 {
			t.Fatalf("dst[%d] = %d, want roughly 200 for a uniform frame", i, v)
		}
	}
}

func TestDownsampler_GrayInput(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	d := NewDownsampler()
	defer d.Close()

	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC1)
	defer frame.Close()

	dst := make([]byte, SampleLen)
	if err := d.Downsample(&frame, dst); err != nil {
		t.Fatalf("Downsample() on single-channel frame error = %v", err)
	}
}

func TestDownsampler_Errors(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	d := NewDownsampler()
	defer d.Close()

	dst := make([]byte, SampleLen)
	if err := d.Downsample(nil, dst); err == nil {
		t.Error("expected error for nil frame")
	}

	empty := gocv.NewMat()
	defer empty.Close()
	if err := d.Downsample(&empty, dst); err == nil {
		t.Error("expected error for empty frame")
	}

	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame.Close()
	if err := d.Downsample(&frame, make([]byte, 10)); err == nil {
		t.Error("expected error for short destination buffer")
	}
}

func TestDownsampler_ReusedAcrossFrames(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	d := NewDownsampler()
	defer d.Close()

	dark := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer dark.Close()

	bright := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer bright.Close()
	bright.SetTo(gocv.NewScalar(255, 255, 255, 0))

	a := make([]byte, SampleLen)
	b := make([]byte, SampleLen)

	if err := d.Downsample(&dark, a); err != nil {
		t.Fatalf("Downsample(dark) error = %v", err)
	}
	if err := d.Downsample(&bright, b); err != nil {
		t.Fatalf("Downsample(bright) error = %v", err)
	}

	if a[0] >= 30 {
		t.Errorf("dark sample luminance = %d, want near 0", a[0])
	}
	if b[0] <= 225 {
		t.Errorf("bright sample luminance = %d, want near 255", b[0])
	}
}
