package capture

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// Motion sample dimensions. Frames are reduced to a 64x48 luminance
// buffer before differencing; the full frame never enters the trigger.
const (
	SampleWidth  = 64
	SampleHeight = 48
	SampleLen    = SampleWidth * SampleHeight
)

// Downsampler converts full camera frames into fixed-size luminance
// samples for the capture trigger. The intermediate Mats are allocated
// once and reused, keeping the per-frame path allocation free.
type Downsampler struct {
	gray  gocv.Mat
	small gocv.Mat
}

// NewDownsampler creates a Downsampler.
func NewDownsampler() *Downsampler {
	return &Downsampler{
		gray:  gocv.NewMat(),
		small: gocv.NewMat(),
	}
}

// Downsample writes the frame's 64x48 luminance reduction into dst,
// which must be SampleLen bytes.
func (d *Downsampler) Downsample(frame *gocv.Mat, dst []byte) error {
	if frame == nil || frame.Empty() {
		return fmt.Errorf("empty frame")
	}
	if len(dst) != SampleLen {
		return fmt.Errorf("dst length %d, want %d", len(dst), SampleLen)
	}

	if frame.Channels() > 1 {
		gocv.CvtColor(*frame, &d.gray, gocv.ColorBGRToGray)
	} else {
		frame.CopyTo(&d.gray)
	}

	gocv.Resize(d.gray, &d.small, image.Point{X: SampleWidth, Y: SampleHeight}, 0, 0, gocv.InterpolationArea)

	data, err := d.small.DataPtrUint8()
	if err != nil {
		return fmt.Errorf("sample data: %w", err)
	}
	copy(dst, data)

	return nil
}

// Close releases the reusable Mats.
func (d *Downsampler) Close() {
	if !d.gray.Empty() {
		d.gray.Close()
	}
	if !d.small.Empty() {
		d.small.Close()
	}
}
