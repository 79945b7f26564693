package point

import (
	"context"
	"fmt"

	"connectrpc.com/connect"

	pointpb "github.com/tailored-agentic-units/relay/gen/point"
	"github.com/tailored-agentic-units/relay/gen/point/pointpbconnect"
)

// Client reaches a remote point store. It is safe for concurrent use and
// reuses the connections pooled by its HTTP client.
type Client struct {
	storage pointpbconnect.PointStorageClient
}

var _ Store = (*Client)(nil)

// NewClient creates a Client for the store served at baseURL, e.g.
// "http://[::1]:50052".
func NewClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *Client {
	return &Client{
		storage: pointpbconnect.NewPointStorageClient(httpClient, baseURL, opts...),
	}
}

func (c *Client) Create(ctx context.Context, p Point) (ID, error) {
	res, err := c.storage.Create(ctx, connect.NewRequest(&pointpb.CreateRequest{Point: p.toWire()}))
	if err != nil {
		return 0, fmt.Errorf("create: %w", err)
	}
	return ID(res.Msg.GetId()), nil
}

func (c *Client) Read(ctx context.Context, id ID) (Point, error) {
	res, err := c.storage.Read(ctx, connect.NewRequest(&pointpb.ReadRequest{Id: uint64(id)}))
	if err != nil {
		return Point{}, fromConnectError("read", id, err)
	}
	return fromWire(res.Msg.GetPoint()), nil
}

func (c *Client) Update(ctx context.Context, id ID, p Point) error {
	_, err := c.storage.Update(ctx, connect.NewRequest(&pointpb.UpdateRequest{Id: uint64(id), Point: p.toWire()}))
	if err != nil {
		return fromConnectError("update", id, err)
	}
	return nil
}

func (c *Client) Delete(ctx context.Context, id ID) error {
	_, err := c.storage.Delete(ctx, connect.NewRequest(&pointpb.DeleteRequest{Id: uint64(id)}))
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	return nil
}

// Len is unknown for a remote store.
func (c *Client) Len() int {
	return -1
}

func fromConnectError(op string, id ID, err error) error {
	if connect.CodeOf(err) == connect.CodeNotFound {
		return &NotFoundError{ID: id}
	}
	return fmt.Errorf("%s: %w", op, err)
}
