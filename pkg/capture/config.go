package capture

// Config holds camera configuration.
type Config struct {
	// DeviceID selects the V4L2/AVFoundation device.
	DeviceID int

	// Fallback resolution used when the device does not report one.
	FallbackWidth  int
	FallbackHeight int

	// JPEGQuality for encoded frames (1-100).
	JPEGQuality int
}

// Option is a functional option for configuring the camera.
type Option func(*Config)

// WithDeviceID selects the camera device.
func WithDeviceID(id int) Option {
	return func(c *Config) { c.DeviceID = id }
}

// WithFallbackResolution sets the resolution assumed when the device
// reports none.
func WithFallbackResolution(w, h int) Option {
	return func(c *Config) {
		c.FallbackWidth = w
		c.FallbackHeight = h
	}
}

// WithJPEGQuality sets the encode quality (1-100).
func WithJPEGQuality(q int) Option {
	return func(c *Config) { c.JPEGQuality = q }
}

// DefaultConfig returns sensible defaults: first device, 640x480
// fallback, quality 90.
func DefaultConfig() *Config {
	return &Config{
		DeviceID:       0,
		FallbackWidth:  640,
		FallbackHeight: 480,
		JPEGQuality:    90,
	}
}

// Apply applies functional options to the config.
func (c *Config) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(c)
	}
}
