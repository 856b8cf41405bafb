package speech

import (
	"context"
	"sync"
	"time"
)

// Mock implements Provider for testing. Behavior is customizable via
// function fields; every invocation is recorded.
type Mock struct {
	// SayFunc is called when Say is invoked. If nil, Say returns nil
	// immediately.
	SayFunc func(ctx context.Context, text string) error

	// HealthFunc is called when Health is invoked. If nil, returns nil.
	HealthFunc func(ctx context.Context) error

	mu    sync.Mutex
	calls []MockCall
}

// MockCall records a method invocation for verification.
type MockCall struct {
	Method string
	Text   string
	Time   time.Time
}

// NewMock creates a mock provider that speaks instantly and silently.
func NewMock() *Mock {
	return &Mock{}
}

// WithError returns a mock whose every method fails with err.
func WithError(err error) *Mock {
	return &Mock{
		SayFunc:    func(ctx context.Context, text string) error { return err },
		HealthFunc: func(ctx context.Context) error { return err },
	}
}

// Say calls SayFunc and records the call.
func (m *Mock) Say(ctx context.Context, text string) error {
	m.recordCall("Say", text)
	if m.SayFunc != nil {
		return m.SayFunc(ctx, text)
	}
	return nil
}

// Health calls HealthFunc and records the call.
func (m *Mock) Health(ctx context.Context) error {
	m.recordCall("Health", "")
	if m.HealthFunc != nil {
		return m.HealthFunc(ctx)
	}
	return nil
}

// Close records the call and releases nothing.
func (m *Mock) Close() error {
	m.recordCall("Close", "")
	return nil
}

func (m *Mock) recordCall(method, text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, MockCall{Method: method, Text: text, Time: time.Now()})
}

// Calls returns all recorded method calls.
func (m *Mock) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallCount returns how many times a method was called.
func (m *Mock) CallCount(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		if c.Method == method {
			n++
		}
	}
	return n
}

// Reset clears all recorded calls.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}

// Verify Mock implements Provider at compile time.
var _ Provider = (*Mock)(nil)
