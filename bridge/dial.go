package bridge

import (
	"context"

	"connectrpc.com/connect"

	"github.com/tailored-agentic-units/relay/transport"
)

// ConnectOption configures the client a Connect* constructor opens.
type ConnectOption func(*connectOptions)

type connectOptions struct {
	httpClient    connect.HTTPClient
	clientOptions []connect.ClientOption
	actorOptions  []Option
}

// WithHTTPClient replaces the h2c client from transport.NewHTTPClient.
func WithHTTPClient(c connect.HTTPClient) ConnectOption {
	return func(o *connectOptions) { o.httpClient = c }
}

// WithClientOptions appends connect client options such as interceptors.
func WithClientOptions(opts ...connect.ClientOption) ConnectOption {
	return func(o *connectOptions) { o.clientOptions = append(o.clientOptions, opts...) }
}

// WithActorOptions passes options through to Spawn.
func WithActorOptions(opts ...Option) ConnectOption {
	return func(o *connectOptions) { o.actorOptions = append(o.actorOptions, opts...) }
}

func resolveConnectOptions(opts []ConnectOption) connectOptions {
	var o connectOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.httpClient == nil {
		o.httpClient = transport.NewHTTPClient()
	}
	return o
}

// dial checks address is reachable and returns the connect options for cfg followed by
// any caller-supplied options.
func dial(ctx context.Context, address string, cfg *transport.Config, o connectOptions) ([]connect.ClientOption, error) {
	if err := transport.Dial(ctx, address, cfg); err != nil {
		return nil, err
	}

	clientOpts, err := transport.ClientOptions(cfg)
	if err != nil {
		return nil, err
	}
	return append(clientOpts, o.clientOptions...), nil
}
