package greeter

import (
	"context"
	"fmt"

	"github.com/tailored-agentic-units/relay/observability"
)

// Chain event types.
const (
	EventForward       observability.EventType = "chain.forward"
	EventForwardFailed observability.EventType = "chain.forward.failed"
)

// ChainOption configures a Chain.
type ChainOption func(*Chain)

// WithObserver overrides the default slog observer.
func WithObserver(o observability.Observer) ChainOption {
	return func(c *Chain) { c.observer = o }
}

// WithConfig applies the forward name and policy from cfg.
func WithConfig(cfg *Config) ChainOption {
	return func(c *Chain) {
		c.forwardName = cfg.ForwardName
		c.policy = cfg.Policy
	}
}

// Chain is the middle node. Each Hello makes exactly one downstream call
// with the fixed forward name and then greets the inbound caller.
//
// The downstream greeter is shared by every handler goroutine, so it must be
// safe for concurrent use. A *Client is.
type Chain struct {
	downstream  Greeter
	forwardName string
	policy      ForwardPolicy
	observer    observability.Observer
}

var _ Greeter = (*Chain)(nil)

// NewChain creates a Chain forwarding to downstream with the default
// configuration.
func NewChain(downstream Greeter, opts ...ChainOption) *Chain {
	c := &Chain{
		downstream:  downstream,
		forwardName: DefaultForwardName,
		policy:      PolicyBestEffort,
		observer:    observability.NewSlogObserver(nil),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Hello forwards, then replies "Hello {name}!". The reply does not depend on
// the downstream answer. Under PolicyStrict a downstream failure is returned
// wrapped in ErrDownstream instead.
func (c *Chain) Hello(ctx context.Context, name string) (string, error) {
	reply, err := c.downstream.Hello(ctx, c.forwardName)
	if err != nil {
		if c.policy == PolicyStrict {
			return "", fmt.Errorf("%w: %w", ErrDownstream, err)
		}
		c.observer.OnEvent(ctx, observability.NewEvent(EventForwardFailed, observability.LevelWarning, "greeter.Chain", map[string]any{
			"forward": c.forwardName,
			"error":   err.Error(),
		}))
		return Reply(name), nil
	}

	c.observer.OnEvent(ctx, observability.NewEvent(EventForward, observability.LevelVerbose, "greeter.Chain", map[string]any{
		"forward": c.forwardName,
		"reply":   reply,
	}))

	return Reply(name), nil
}
