package overlay

import (
	"log/slog"
	"time"
)

// Config holds renderer configuration.
type Config struct {
	// TickInterval is the render cadence. Defaults to ~30 FPS.
	TickInterval time.Duration

	// Reference resolution the service's coordinates are expressed in.
	ReferenceWidth  int
	ReferenceHeight int

	// Observability
	Logger *slog.Logger
}

// Option is a functional option for configuring the renderer.
type Option func(*Config)

// WithTickInterval sets the render cadence.
func WithTickInterval(d time.Duration) Option {
	return func(c *Config) { c.TickInterval = d }
}

// WithReferenceResolution sets the coordinate space of incoming results.
func WithReferenceResolution(w, h int) Option {
	return func(c *Config) {
		c.ReferenceWidth = w
		c.ReferenceHeight = h
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) { c.Logger = l }
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		TickInterval:    33 * time.Millisecond,
		ReferenceWidth:  640,
		ReferenceHeight: 480,
		Logger:          slog.Default(),
	}
}

// Apply applies functional options to the config.
func (c *Config) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(c)
	}
}
