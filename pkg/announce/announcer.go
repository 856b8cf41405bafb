// Package announce turns comparison feedback into spoken cues.
//
// The dispatcher keeps track of the most recent cue and suppresses
// repeats, so a practitioner holding a pose hears "correct" once
// rather than on every comparison cycle. A changed cue interrupts any
// utterance still in progress.
package announce

import (
	"context"
	"log/slog"
	"sync"

	"github.com/yogalign/yogalign/internal/log"
	"github.com/yogalign/yogalign/pkg/poseapi"
	"github.com/yogalign/yogalign/pkg/speech"
)

// Feedback signals produced by the comparison service.
const (
	SignalCorrect = "correct"
	SignalWrong   = "wrong"
)

// Phrases spoken for each feedback signal.
var phrases = map[string]string{
	SignalCorrect: "Correct pose",
	SignalWrong:   "Adjust your pose",
}

// Dispatcher speaks feedback cues through a speech provider. Repeated
// identical signals are announced only once; a new signal cancels any
// utterance still playing.
type Dispatcher struct {
	provider speech.Provider
	logger   *slog.Logger

	mu     sync.Mutex
	last   string
	cancel context.CancelFunc
	wg     sync.WaitGroup
	closed bool
}

// NewDispatcher creates a dispatcher backed by the given provider.
func NewDispatcher(provider speech.Provider) *Dispatcher {
	return &Dispatcher{
		provider: provider,
		logger:   log.With("component", "announce"),
	}
}

// Announce speaks the cue for a feedback signal. If the signal equals
// the last announced one, nothing happens. Unknown signals are spoken
// verbatim. Speech failures are logged and swallowed; feedback cues are
// best effort.
func (d *Dispatcher) Announce(signal string) {
	if signal == "" {
		return
	}
	text, ok := phrases[signal]
	if !ok {
		text = signal
	}
	d.announce(signal, text)
}

// AnnounceAdjustment speaks a per-joint correction, for example
// "Extend your left knee". Each joint has its own dedupe key so cues
// for different joints do not suppress one another.
func (d *Dispatcher) AnnounceAdjustment(adj poseapi.Adjustment) {
	if adj.JointName == "" || adj.Adjustment == "" {
		return
	}
	d.announce("adjust:"+adj.JointName, adj.Adjustment+" your "+adj.JointName)
}

func (d *Dispatcher) announce(key, text string) {
	d.mu.Lock()
	if d.closed || key == d.last {
		d.mu.Unlock()
		return
	}
	if d.cancel != nil {
		d.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	d.last = key
	d.cancel = cancel
	d.wg.Add(1)
	d.mu.Unlock()

	go func() {
		defer d.wg.Done()
		defer cancel()
		if err := d.provider.Say(ctx, text); err != nil && ctx.Err() == nil {
			d.logger.Debug("speech cue failed", "text", text, "error", err)
		}
	}()
}

// Reset clears the dedupe state so the next signal is always spoken.
// Call it when a new session starts.
func (d *Dispatcher) Reset() {
	d.mu.Lock()
	d.last = ""
	d.mu.Unlock()
}

// Close cancels any in-flight utterance and waits for it to finish.
// The underlying provider is left open; the caller owns it.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	d.closed = true
	if d.cancel != nil {
		d.cancel()
	}
	d.mu.Unlock()
	d.wg.Wait()
}
