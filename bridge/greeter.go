package bridge

import (
	"context"
	"fmt"

	"github.com/tailored-agentic-units/relay/greeter"
	"github.com/tailored-agentic-units/relay/transport"
)

type helloResult struct {
	message string
	err     error
}

// Greeter is a blocking greeter client backed by an Actor.
type Greeter struct {
	actor *Actor[string, helloResult]
	cfg   Config
}

// NewGreeter spawns an actor whose setup opens the greeter.Greeter it serves.
func NewGreeter(ctx context.Context, open func(ctx context.Context) (greeter.Greeter, error), cfg *Config, opts ...Option) *Greeter {
	setup := func(ctx context.Context) (Handler[string, helloResult], error) {
		g, err := open(ctx)
		if err != nil {
			return nil, err
		}
		return func(ctx context.Context, name string) (helloResult, error) {
			message, err := g.Hello(ctx, name)
			if connectionLost(err) {
				return helloResult{}, err
			}
			return helloResult{message: message, err: err}, nil
		}, nil
	}

	return &Greeter{
		actor: Spawn[string, helloResult](ctx, setup, append([]Option{WithName("greeter")}, opts...)...),
		cfg:   *cfg,
	}
}

// ConnectGreeter returns immediately; the actor dials address and calls
// service on it until ctx ends or the connection is lost.
func ConnectGreeter(ctx context.Context, address string, service greeter.Service, cfg *Config, opts ...ConnectOption) *Greeter {
	o := resolveConnectOptions(opts)

	open := func(ctx context.Context) (greeter.Greeter, error) {
		clientOpts, err := dial(ctx, address, &cfg.Transport, o)
		if err != nil {
			return nil, err
		}
		return greeter.NewClient(o.httpClient, transport.BaseURL(address), service, clientOpts...), nil
	}

	return NewGreeter(ctx, open, cfg, o.actorOptions...)
}

// Hello blocks until the remote greeter answers. Every failure is
// ErrInternal.
func (g *Greeter) Hello(name string) (string, error) {
	ctx, cancel := g.cfg.callContext()
	defer cancel()

	res, err := g.actor.Call(ctx, name)
	if err != nil {
		return "", err
	}
	if res.err != nil {
		return "", fmt.Errorf("%w: hello: %w", ErrInternal, res.err)
	}
	return res.message, nil
}

// Close stops the actor.
func (g *Greeter) Close() {
	g.actor.Close()
}

// Done is closed when the actor has exited.
func (g *Greeter) Done() <-chan struct{} {
	return g.actor.Done()
}

// Err returns why the actor exited.
func (g *Greeter) Err() error {
	return g.actor.Err()
}
