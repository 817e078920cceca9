// Package capture provides camera capture and the motion-gated capture
// trigger for the mudra gesture stabilization engine.
package capture

import (
	"errors"
	"fmt"
	"sync"

	"gocv.io/x/gocv"
)

// Default camera settings. The engine throttles its own work by wall
// clock, so the camera runs at full rate and frames not picked up by a
// gated path are simply dropped.
const (
	DefaultFPS    = 30
	DefaultWidth  = 640
	DefaultHeight = 480
)

// ErrCameraNotOpen is returned when trying to read from a camera that is not open.
var ErrCameraNotOpen = errors.New("camera is not open")

// Camera defines the interface for camera capture implementations.
type Camera interface {
	Open() error
	Close() error
	ReadFrame() (*gocv.Mat, error)
	SetFPS(fps int)
	FPS() int
	IsOpen() bool
}

// webcam captures frames from a video device through GoCV.
type webcam struct {
	deviceID int
	width    int
	height   int
	fps      int

	mu   sync.Mutex
	cap  *gocv.VideoCapture
	open bool
}

// NewCamera creates a Camera for the given device ID at the default
// resolution.
func NewCamera(deviceID int) Camera {
	return &webcam{
		deviceID: deviceID,
		width:    DefaultWidth,
		height:   DefaultHeight,
		fps:      DefaultFPS,
	}
}

// Open opens the device and applies the configured resolution and rate.
// Opening an already open camera is a no-op.
func (c *webcam) Open() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.open {
		return nil
	}

	cap, err := gocv.OpenVideoCapture(c.deviceID)
	if err != nil {
		return fmt.Errorf("open camera %d: %w", c.deviceID, err)
	}

	cap.Set(gocv.VideoCaptureFrameWidth, float64(c.width))
	cap.Set(gocv.VideoCaptureFrameHeight, float64(c.height))
	cap.Set(gocv.VideoCaptureFPS, float64(c.fps))

	c.cap = cap
	c.open = true

	return nil
}

// Close releases the device. Safe to call on a closed camera.
func (c *webcam) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.open || c.cap == nil {
		c.open = false
		return nil
	}

	err := c.cap.Close()
	c.cap = nil
	c.open = false

	return err
}

// ReadFrame reads a single frame. The caller owns the returned Mat and
// must close it.
func (c *webcam) ReadFrame() (*gocv.Mat, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.open || c.cap == nil {
		return nil, ErrCameraNotOpen
	}

	mat := gocv.NewMat()
	if ok := c.cap.Read(&mat); !ok {
		mat.Close()
		return nil, fmt.Errorf("read frame from camera %d failed", c.deviceID)
	}
	if mat.Empty() {
		mat.Close()
		return nil, errors.New("captured frame is empty")
	}

	return &mat, nil
}

// SetFPS sets the capture rate. Values <= 0 are ignored.
func (c *webcam) SetFPS(fps int) {
	if fps <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.fps = fps
	if c.cap != nil {
		c.cap.Set(gocv.VideoCaptureFPS, float64(fps))
	}
}

// FPS returns the configured capture rate.
func (c *webcam) FPS() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.fps
}

// IsOpen reports whether the device is open.
func (c *webcam) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.open
}
