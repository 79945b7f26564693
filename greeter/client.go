package greeter

import (
	"context"
	"fmt"

	"connectrpc.com/connect"

	earthpb "github.com/tailored-agentic-units/relay/gen/earth"
	"github.com/tailored-agentic-units/relay/gen/earth/earthpbconnect"
	enginepb "github.com/tailored-agentic-units/relay/gen/engine"
	"github.com/tailored-agentic-units/relay/gen/engine/enginepbconnect"
)

// Client calls one remote Greeter service. It is safe for concurrent use.
type Client struct {
	service Service
	hello   func(ctx context.Context, name string) (string, error)
}

var _ Greeter = (*Client)(nil)

// NewClient creates a Client for service on the node at baseURL. It panics
// on an unknown service.
func NewClient(httpClient connect.HTTPClient, baseURL string, service Service, opts ...connect.ClientOption) *Client {
	service.mustKnow()
	c := &Client{service: service}

	switch service {
	case Earth:
		earth := earthpbconnect.NewGreeterClient(httpClient, baseURL, opts...)
		c.hello = func(ctx context.Context, name string) (string, error) {
			res, err := earth.HelloEarth(ctx, connect.NewRequest(&earthpb.HelloRequest{Name: name}))
			if err != nil {
				return "", err
			}
			return res.Msg.GetMessage(), nil
		}
	case Engine:
		engine := enginepbconnect.NewGreeterClient(httpClient, baseURL, opts...)
		c.hello = func(ctx context.Context, name string) (string, error) {
			res, err := engine.HelloEngine(ctx, connect.NewRequest(&enginepb.HelloRequest{Name: name}))
			if err != nil {
				return "", err
			}
			return res.Msg.GetMessage(), nil
		}
	}

	return c
}

func (c *Client) Hello(ctx context.Context, name string) (string, error) {
	message, err := c.hello(ctx, name)
	if err != nil {
		return "", fmt.Errorf("%s: %w", c.service.Procedure(), err)
	}
	return message, nil
}
