package engine

import (
	"log/slog"
	"time"
)

// Config holds engine configuration.
type Config struct {
	// Interval between continuous cycles, measured from the end of one
	// cycle to the start of the next. Latency therefore stretches the
	// effective period instead of piling up requests.
	Interval time.Duration

	// Observability
	Logger *slog.Logger
}

// Option is a functional option for configuring the engine.
type Option func(*Config)

// WithInterval sets the continuous-mode rest interval.
func WithInterval(d time.Duration) Option {
	return func(c *Config) { c.Interval = d }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) { c.Logger = l }
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Interval: 1300 * time.Millisecond,
		Logger:   slog.Default(),
	}
}

// Apply applies functional options to the config.
func (c *Config) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(c)
	}
}
