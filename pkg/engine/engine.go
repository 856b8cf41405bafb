// Package engine drives capture -> compare cycles against the pose
// service and publishes the latest feedback snapshot for the renderer.
//
// The engine and the overlay renderer are independently scheduled loops
// that share no lock: they communicate through a single-writer,
// atomically swapped snapshot (Store). Only the engine's cycle may
// suspend (frame encode, network round-trip); the render path never
// does.
package engine

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yogalign/yogalign/pkg/poseapi"
)

// Sentinel errors for cycle scheduling.
var (
	// ErrBusy is returned when a cycle is requested while another is in
	// flight. The request is dropped, not queued.
	ErrBusy = errors.New("engine: cycle already in flight")

	// ErrSessionClosed is returned once the session has been torn down.
	ErrSessionClosed = errors.New("engine: session closed")
)

// FrameSource supplies encoded camera frames.
type FrameSource interface {
	CaptureJPEG() ([]byte, error)
}

// Comparer submits one frame for comparison. *poseapi.Client satisfies it.
type Comparer interface {
	Compare(ctx context.Context, frame []byte, params poseapi.SessionParameters) (*poseapi.ComparisonResult, error)
}

// Announcer receives the audio feedback signal of each committed result.
type Announcer interface {
	Announce(signal string)
}

// Engine is the comparison scheduler. It enforces at most one in-flight
// compare call for any timing of responses, and owns the feedback store.
type Engine struct {
	id     string
	src    FrameSource
	cmp    Comparer
	store  *Store
	cfg    Config
	logger *slog.Logger

	mu         sync.Mutex
	state      State
	continuous bool
	active     bool
	params     poseapi.SessionParameters
	lastErr    string
	ann        Announcer
	stopCh     chan struct{}
}

// New creates an engine for one comparison session.
func New(src FrameSource, cmp Comparer, opts ...Option) *Engine {
	cfg := DefaultConfig()
	cfg.Apply(opts...)

	return &Engine{
		id:     uuid.NewString(),
		src:    src,
		cmp:    cmp,
		store:  NewStore(),
		cfg:    *cfg,
		logger: cfg.Logger.With("component", "engine"),
		state:  StateIdle,
		active: true,
	}
}

// ID returns the session identifier.
func (e *Engine) ID() string { return e.id }

// Store returns the feedback store for read-only observers.
func (e *Engine) Store() *Store { return e.store }

// SetAnnouncer attaches the audio dispatcher. Optional; audio is a
// convenience, never a requirement of the comparison loop.
func (e *Engine) SetAnnouncer(a Announcer) {
	e.mu.Lock()
	e.ann = a
	e.mu.Unlock()
}

// State returns the scheduler's current cycle state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Continuous reports whether continuous mode is on.
func (e *Engine) Continuous() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.continuous
}

// LastError returns the user-visible error from the most recent failed
// cycle, or "" after a success.
func (e *Engine) LastError() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastErr
}

// Params returns a copy of the current session parameters.
func (e *Engine) Params() poseapi.SessionParameters {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.params
}

// SetParams replaces the session parameters. The change takes effect at
// the next cycle's start; a cycle already in flight keeps the values it
// captured. Switching to a different reference pose discards the stored
// feedback, since it no longer describes the pose on screen.
func (e *Engine) SetParams(p poseapi.SessionParameters) error {
	if err := p.Validate(); err != nil {
		return err
	}

	e.mu.Lock()
	refChanged := p.AsanaName != e.params.AsanaName ||
		p.ReferencePoseNumber != e.params.ReferencePoseNumber
	e.params = p
	e.mu.Unlock()

	if refChanged {
		e.store.clear()
	}
	return nil
}

// RunOnce performs a single capture -> compare cycle. It is valid only
// from Idle: a call while a cycle is in flight returns ErrBusy and does
// nothing. The cycle always returns the engine to Idle.
func (e *Engine) RunOnce(ctx context.Context) error {
	return e.runCycle(ctx, false)
}

// StartContinuous turns on continuous mode: the engine re-runs cycles,
// resting cfg.Interval between the end of one cycle and the start of the
// next. No-op when already running or after Close.
func (e *Engine) StartContinuous() {
	e.mu.Lock()
	if !e.active || e.continuous {
		e.mu.Unlock()
		return
	}
	e.continuous = true
	stop := make(chan struct{})
	e.stopCh = stop
	e.mu.Unlock()

	e.logger.Info("continuous mode started", "interval", e.cfg.Interval)
	go e.loop(stop)
}

// Stop turns continuous mode off. It is observed at the top of the next
// cycle; an in-flight compare call is not aborted, but its result is
// discarded instead of being committed after the stop.
func (e *Engine) Stop() {
	e.mu.Lock()
	if e.continuous {
		e.continuous = false
		close(e.stopCh)
		e.stopCh = nil
	}
	e.mu.Unlock()
}

// Close ends the session. Continuous mode stops, the stored feedback is
// discarded, and any cycle still in flight completes without committing.
func (e *Engine) Close() {
	e.Stop()
	e.mu.Lock()
	e.active = false
	e.mu.Unlock()
	e.store.clear()
}

func (e *Engine) loop(stop chan struct{}) {
	for {
		select {
		case <-stop:
			return
		default:
		}

		err := e.runCycle(context.Background(), true)
		if errors.Is(err, ErrSessionClosed) {
			return
		}

		// Rest measured from the end of the cycle, so latency stretches
		// the period instead of stacking requests.
		timer := time.NewTimer(e.cfg.Interval)
		select {
		case <-stop:
			timer.Stop()
			e.logger.Info("continuous mode stopped")
			return
		case <-timer.C:
		}
	}
}

func (e *Engine) runCycle(ctx context.Context, fromContinuous bool) error {
	e.mu.Lock()
	if !e.active {
		e.mu.Unlock()
		return ErrSessionClosed
	}
	if e.state != StateIdle {
		e.mu.Unlock()
		return ErrBusy
	}
	e.state = StateCapturing
	e.lastErr = ""
	params := e.params
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.state = StateIdle
		e.mu.Unlock()
	}()

	frame, err := e.src.CaptureJPEG()
	if err != nil {
		// No frame, no network call this cycle.
		e.fail(err)
		return err
	}

	e.mu.Lock()
	e.state = StateComparing
	e.mu.Unlock()

	result, err := e.cmp.Compare(ctx, frame, params)
	if err != nil {
		e.fail(err)
		return err
	}

	e.commit(result, fromContinuous)
	return nil
}

// fail records the user-visible error. The store keeps its previous
// value so stale feedback stays on screen instead of flashing empty.
func (e *Engine) fail(err error) {
	msg := userMessage(err)
	e.mu.Lock()
	e.lastErr = msg
	e.mu.Unlock()
	e.logger.Warn("comparison cycle failed", "error", err)
}

// commit publishes a completed result unless the session ended, or this
// was a continuous cycle and continuous mode was turned off while the
// call was in flight. A result must never appear after the user pressed
// stop.
func (e *Engine) commit(result *poseapi.ComparisonResult, fromContinuous bool) {
	e.mu.Lock()
	skip := !e.active || (fromContinuous && !e.continuous)
	var ann Announcer
	if !skip {
		e.lastErr = ""
		ann = e.ann
	}
	e.mu.Unlock()

	if skip {
		e.logger.Debug("discarding result from superseded cycle")
		return
	}

	e.store.replace(result)
	if ann != nil && result.AudioFeedback != "" {
		ann.Announce(result.AudioFeedback)
	}
}

// userMessage converts a cycle error into the string shown to the user.
// Service rejections surface the service's own message.
func userMessage(err error) string {
	var svc *poseapi.ServiceError
	if errors.As(err, &svc) {
		return svc.Message
	}
	return err.Error()
}
