package poseapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/yogalign/yogalign/internal/httpc"
)

// Config holds client configuration.
type Config struct {
	// BaseURL is the pose service root, e.g. "http://127.0.0.1:5000".
	BaseURL string

	// Timeout applies to every request.
	Timeout time.Duration

	// HTTPClient overrides the shared transport when set.
	HTTPClient *http.Client

	// Observability
	Logger *slog.Logger
}

// Option is a functional option for configuring the client.
type Option func(*Config)

// WithBaseURL sets the pose service root URL.
func WithBaseURL(url string) Option {
	return func(c *Config) { c.BaseURL = url }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Config) { c.Timeout = d }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Config) { c.HTTPClient = h }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) { c.Logger = l }
}

// DefaultConfig returns sensible defaults for a local pose service.
func DefaultConfig() *Config {
	return &Config{
		BaseURL: "http://127.0.0.1:5000",
		Timeout: httpc.DefaultTimeout,
		Logger:  slog.Default(),
	}
}

// Apply applies functional options to the config.
func (c *Config) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(c)
	}
}
