package speech

import (
	"context"
	"os/exec"
)

const providerLocal = "local"

// ttsBinaries is the lookup order for a system TTS command.
var ttsBinaries = []string{"say", "espeak-ng", "espeak", "spd-say"}

// Local speaks through whichever system TTS binary is installed
// ("say" on macOS, espeak variants on Linux).
type Local struct {
	binary string
}

// NewLocal finds a system TTS binary. Returns ErrUnavailable when none
// is installed.
func NewLocal() (*Local, error) {
	for _, name := range ttsBinaries {
		if path, err := exec.LookPath(name); err == nil {
			return &Local{binary: path}, nil
		}
	}
	return nil, WrapError(providerLocal, ErrUnavailable)
}

// Say runs the TTS binary. Cancelling the context kills the process,
// cutting the utterance short.
func (l *Local) Say(ctx context.Context, text string) error {
	cmd := exec.CommandContext(ctx, l.binary, text)
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return WrapError(providerLocal, err)
	}
	return nil
}

// Health reports whether the binary is still present.
func (l *Local) Health(ctx context.Context) error {
	if _, err := exec.LookPath(l.binary); err != nil {
		return WrapError(providerLocal, err)
	}
	return nil
}

// Close releases resources. The local provider holds none.
func (l *Local) Close() error {
	return nil
}

// Verify Local implements Provider at compile time.
var _ Provider = (*Local)(nil)
