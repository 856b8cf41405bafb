// Package speech provides spoken audio cue providers.
//
// Providers turn short feedback phrases into audible speech. All
// implementations satisfy the Provider interface so callers can switch
// backends (or chain fallbacks) without changing code.
package speech

import "context"

// Provider defines the speech backend interface.
type Provider interface {
	// Say speaks the text, blocking until playback finishes or ctx is
	// cancelled. Cancelling the context stops the utterance.
	Say(ctx context.Context, text string) error

	// Health checks that the backend can produce audio.
	Health(ctx context.Context) error

	// Close releases any resources held by the provider.
	Close() error
}
