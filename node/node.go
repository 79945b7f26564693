// Package node assembles one process of the topology from configuration:
// a point store, the earth leaf greeter, or the engine chain greeter, served
// by a cancellable host with logging, rate limiting, and metrics wired in.
//
//	cfg := node.DefaultConfig(node.RoleEngine)
//	n, err := node.New(&cfg)
//	if err != nil {
//	    return err
//	}
//	if err := n.Start(ctx); err != nil {
//	    return err
//	}
//	defer n.Shutdown()
package node

import (
	"context"
	"fmt"
	"net/http"

	"connectrpc.com/connect"
	"github.com/google/uuid"

	"github.com/tailored-agentic-units/relay/greeter"
	"github.com/tailored-agentic-units/relay/host"
	"github.com/tailored-agentic-units/relay/interceptor"
	"github.com/tailored-agentic-units/relay/metrics"
	"github.com/tailored-agentic-units/relay/observability"
	"github.com/tailored-agentic-units/relay/point"
	"github.com/tailored-agentic-units/relay/transport"
)

// Option configures a Node before its handlers are built. Overrides replace
// the config-created defaults.
type Option func(*Node)

// WithObserver overrides the observer named in the config.
func WithObserver(o observability.Observer) Option {
	return func(n *Node) { n.observer = o }
}

// WithStore overrides the in-memory store of a store node.
func WithStore(s point.Store) Option {
	return func(n *Node) { n.store = s }
}

// WithDownstream overrides the greeter client an engine forwards to.
func WithDownstream(g greeter.Greeter) Option {
	return func(n *Node) { n.downstream = g }
}

// WithHTTPClient overrides the h2c client used for downstream calls.
func WithHTTPClient(c connect.HTTPClient) Option {
	return func(n *Node) { n.httpClient = c }
}

// Node is one server process.
type Node struct {
	cfg Config
	id  string

	observer   observability.Observer
	store      point.Store
	downstream greeter.Greeter
	httpClient connect.HTTPClient
	metrics    *metrics.Metrics

	mux  *http.ServeMux
	host *host.Host
}

// New builds a node from cfg. Nothing is bound until Start.
func New(cfg *Config, opts ...Option) (*Node, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	n := &Node{
		cfg: *cfg,
		id:  uuid.NewString(),
	}

	for _, opt := range opts {
		opt(n)
	}

	if n.observer == nil {
		observer, err := observability.Resolve(cfg.Observer)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve observer: %w", err)
		}
		if slogObserver, ok := observer.(*observability.SlogObserver); ok {
			observer = slogObserver.With("node", cfg.Name, "instance", n.id)
		}
		n.observer = observer
	}

	if n.httpClient == nil {
		n.httpClient = transport.NewHTTPClient()
	}

	if cfg.Metrics.Enabled {
		n.metrics = metrics.New(cfg.Name)
	}

	if err := n.buildMux(); err != nil {
		return nil, err
	}

	return n, nil
}

func (n *Node) buildMux() error {
	n.mux = http.NewServeMux()
	handlerOpts := []connect.HandlerOption{connect.WithInterceptors(n.serverInterceptors()...)}

	switch n.cfg.Role {
	case RoleStore:
		if n.store == nil {
			n.store = point.NewMemoryStore()
		}
		n.mux.Handle(point.NewHandler(n.store, n.observer, handlerOpts...))
		if n.metrics != nil {
			n.metrics.RegisterStoreSize(n.cfg.Name, n.store.Len)
		}

	case RoleEarth:
		n.mux.Handle(greeter.NewHandler(greeter.Earth, greeter.Leaf{}, n.observer, handlerOpts...))

	case RoleEngine:
		if n.downstream == nil {
			clientOpts, err := transport.ClientOptions(&n.cfg.Transport)
			if err != nil {
				return err
			}
			clientOpts = append(clientOpts, connect.WithInterceptors(n.clientInterceptors()...))
			n.downstream = greeter.NewClient(n.httpClient, transport.BaseURL(n.cfg.Downstream), greeter.Earth, clientOpts...)
		}
		chain := greeter.NewChain(n.downstream, greeter.WithConfig(&n.cfg.Greeter), greeter.WithObserver(n.observer))
		n.mux.Handle(greeter.NewHandler(greeter.Engine, chain, n.observer, handlerOpts...))
	}

	if n.metrics != nil {
		n.mux.Handle(n.cfg.Metrics.Path, n.metrics.Handler())
	}

	return nil
}

func (n *Node) serverInterceptors() []connect.Interceptor {
	var interceptors []connect.Interceptor
	if n.metrics != nil {
		interceptors = append(interceptors, n.metrics.Interceptor())
	}
	interceptors = append(interceptors, interceptor.Logging(n.observer))
	if n.cfg.RateLimit.Enabled {
		interceptors = append(interceptors, interceptor.RateLimit(&n.cfg.RateLimit, n.observer))
	}
	return interceptors
}

func (n *Node) clientInterceptors() []connect.Interceptor {
	var interceptors []connect.Interceptor
	if n.metrics != nil {
		interceptors = append(interceptors, n.metrics.Interceptor())
	}
	return append(interceptors, interceptor.Logging(n.observer))
}

// Start binds the listen address and serves in the background until ctx is
// cancelled or Shutdown is called.
func (n *Node) Start(ctx context.Context) error {
	if n.host != nil {
		return ErrAlreadyStarted
	}

	hostCfg := n.cfg.Host
	hostCfg.Name = n.cfg.Name

	h, err := host.Start(ctx, n.cfg.Listen, n.mux, &hostCfg, host.WithObserver(n.observer))
	if err != nil {
		return fmt.Errorf("failed to start %s node: %w", n.cfg.Role, err)
	}
	n.host = h
	return nil
}

// Shutdown stops accepting new calls and returns once the listener is
// closed. In-flight calls drain in the background.
func (n *Node) Shutdown() {
	if n.host != nil {
		n.host.Shutdown()
	}
}

// Done is closed once the node has fully stopped. It is nil before Start.
func (n *Node) Done() <-chan struct{} {
	if n.host == nil {
		return nil
	}
	return n.host.Done()
}

// Err reports a serve loop failure.
func (n *Node) Err() error {
	if n.host == nil {
		return nil
	}
	return n.host.Err()
}

// Addr returns the bound address, or the configured one before Start.
func (n *Node) Addr() string {
	if n.host == nil {
		return n.cfg.Listen
	}
	return n.host.Addr()
}

// ID returns the random instance identifier attached to this node's events.
func (n *Node) ID() string {
	return n.id
}

// Role returns the node's role.
func (n *Node) Role() Role {
	return n.cfg.Role
}

// Store returns the store served by a store node, nil otherwise.
func (n *Node) Store() point.Store {
	return n.store
}

// Metrics returns the node's collectors, nil when metrics are disabled.
func (n *Node) Metrics() *metrics.Metrics {
	return n.metrics
}

// Run starts a node and blocks until ctx is cancelled or the serve loop
// fails. After cancellation it returns once the listener is closed; calls
// still in flight are left to the drain and may not finish before the
// process exits.
func Run(ctx context.Context, cfg *Config, opts ...Option) error {
	n, err := New(cfg, opts...)
	if err != nil {
		return err
	}
	if err := n.Start(ctx); err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		n.Shutdown()
		return nil
	case <-n.Done():
		return n.Err()
	}
}
