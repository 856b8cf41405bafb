// Package capture grabs frames from the local camera and encodes them as
// JPEG for submission to the pose service.
package capture

import (
	"errors"
	"fmt"
	"sync"

	"gocv.io/x/gocv"
)

// ErrNoSource is returned when no video source is attached. The engine
// maps it to a skipped cycle: no point calling the service with no frame.
var ErrNoSource = errors.New("capture: no video source")

// Camera owns the device handle and a reusable capture surface. All
// methods are safe for concurrent use; Close may race with an in-flight
// CaptureJPEG from the engine.
type Camera struct {
	cfg Config

	mu      sync.Mutex
	cap     *gocv.VideoCapture
	surface gocv.Mat
	width   int
	height  int
	open    bool
}

// Open acquires the camera device. Acquisition failure is permanent for
// the session: the caller reports it once and leaves capture unavailable
// until a new session opens a new Camera.
func Open(opts ...Option) (*Camera, error) {
	cfg := DefaultConfig()
	cfg.Apply(opts...)

	cap, err := gocv.OpenVideoCapture(cfg.DeviceID)
	if err != nil {
		return nil, fmt.Errorf("capture: open device %d: %w", cfg.DeviceID, err)
	}

	c := &Camera{
		cfg:     *cfg,
		cap:     cap,
		surface: gocv.NewMat(),
		open:    true,
	}

	// Native resolution when the device reports one, else the fallback.
	c.width = int(cap.Get(gocv.VideoCaptureFrameWidth))
	c.height = int(cap.Get(gocv.VideoCaptureFrameHeight))
	if c.width <= 0 || c.height <= 0 {
		c.width = cfg.FallbackWidth
		c.height = cfg.FallbackHeight
	}

	return c, nil
}

// Resolution returns the capture resolution in pixels.
func (c *Camera) Resolution() (width, height int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.width, c.height
}

// CaptureJPEG draws the current frame into the reusable surface and
// encodes it as a lossy JPEG. The surface is resized in place by the
// device read; repeated calls do not leak prior surfaces.
func (c *Camera) CaptureJPEG() ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.open {
		return nil, ErrNoSource
	}

	if ok := c.cap.Read(&c.surface); !ok || c.surface.Empty() {
		return nil, ErrNoSource
	}

	buf, err := gocv.IMEncodeWithParams(gocv.JPEGFileExt, c.surface,
		[]int{gocv.IMWriteJpegQuality, c.cfg.JPEGQuality})
	if err != nil {
		return nil, fmt.Errorf("capture: encode: %w", err)
	}
	defer buf.Close()

	// The native buffer is freed on Close; hand back a copy.
	data := make([]byte, len(buf.GetBytes()))
	copy(data, buf.GetBytes())
	return data, nil
}

// Close releases the device and the capture surface. Safe to call more
// than once and concurrently with an in-flight capture.
func (c *Camera) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.open {
		return nil
	}
	c.open = false

	err := c.cap.Close()
	c.surface.Close()
	return err
}
