package speech

import (
	"context"
	"fmt"
)

// Chain tries providers in order until one succeeds. Use it to fall
// back from a preferred backend to whatever is installed.
type Chain struct {
	providers []Provider
}

// NewChain creates a fallback chain. At least one provider is required.
func NewChain(providers ...Provider) (*Chain, error) {
	if len(providers) == 0 {
		return nil, ErrUnavailable
	}
	return &Chain{providers: providers}, nil
}

// Say tries each provider until one speaks successfully.
func (c *Chain) Say(ctx context.Context, text string) error {
	var lastErr error
	for _, p := range c.providers {
		if err := p.Say(ctx, text); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
			continue
		}
		return nil
	}
	if lastErr != nil {
		return fmt.Errorf("%w: %v", ErrAllProvidersFailed, lastErr)
	}
	return ErrAllProvidersFailed
}

// Health succeeds if any provider is healthy.
func (c *Chain) Health(ctx context.Context) error {
	var lastErr error
	for _, p := range c.providers {
		if err := p.Health(ctx); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}

// Close closes every provider in the chain.
func (c *Chain) Close() error {
	var firstErr error
	for _, p := range c.providers {
		if err := p.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Verify Chain implements Provider at compile time.
var _ Provider = (*Chain)(nil)
