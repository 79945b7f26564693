package point

import (
	"context"
	"errors"
	"net/http"

	"connectrpc.com/connect"

	pointpb "github.com/tailored-agentic-units/relay/gen/point"
	"github.com/tailored-agentic-units/relay/gen/point/pointpbconnect"
	"github.com/tailored-agentic-units/relay/observability"
)

// Store service event types.
const (
	EventCreate observability.EventType = "point.create"
	EventRead   observability.EventType = "point.read"
	EventUpdate observability.EventType = "point.update"
	EventDelete observability.EventType = "point.delete"
)

var errMissingPoint = errors.New("point is required")

type service struct {
	store    Store
	observer observability.Observer
}

var _ pointpbconnect.PointStorageHandler = (*service)(nil)

// NewHandler serves the PointStorage procedures backed by store. It returns
// the mux path prefix and the handler. A nil observer discards events.
func NewHandler(store Store, observer observability.Observer, opts ...connect.HandlerOption) (string, http.Handler) {
	if observer == nil {
		observer = observability.NoOpObserver{}
	}
	return pointpbconnect.NewPointStorageHandler(&service{store: store, observer: observer}, opts...)
}

func (s *service) Create(
	ctx context.Context,
	req *connect.Request[pointpb.CreateRequest],
) (*connect.Response[pointpb.CreateResponse], error) {
	if req.Msg.GetPoint() == nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, errMissingPoint)
	}

	id, err := s.store.Create(ctx, fromWire(req.Msg.GetPoint()))
	if err != nil {
		return nil, toConnectError(err)
	}

	s.observer.OnEvent(ctx, observability.NewEvent(EventCreate, observability.LevelInfo, "point.service", map[string]any{
		"id": uint64(id),
	}))

	return connect.NewResponse(&pointpb.CreateResponse{Id: uint64(id)}), nil
}

func (s *service) Read(
	ctx context.Context,
	req *connect.Request[pointpb.ReadRequest],
) (*connect.Response[pointpb.ReadResponse], error) {
	id := ID(req.Msg.GetId())
	s.observer.OnEvent(ctx, observability.NewEvent(EventRead, observability.LevelVerbose, "point.service", map[string]any{
		"id": uint64(id),
	}))

	p, err := s.store.Read(ctx, id)
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&pointpb.ReadResponse{Point: p.toWire()}), nil
}

func (s *service) Update(
	ctx context.Context,
	req *connect.Request[pointpb.UpdateRequest],
) (*connect.Response[pointpb.UpdateResponse], error) {
	if req.Msg.GetPoint() == nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, errMissingPoint)
	}

	id := ID(req.Msg.GetId())
	s.observer.OnEvent(ctx, observability.NewEvent(EventUpdate, observability.LevelVerbose, "point.service", map[string]any{
		"id": uint64(id),
	}))

	if err := s.store.Update(ctx, id, fromWire(req.Msg.GetPoint())); err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&pointpb.UpdateResponse{}), nil
}

func (s *service) Delete(
	ctx context.Context,
	req *connect.Request[pointpb.DeleteRequest],
) (*connect.Response[pointpb.DeleteResponse], error) {
	id := ID(req.Msg.GetId())
	s.observer.OnEvent(ctx, observability.NewEvent(EventDelete, observability.LevelVerbose, "point.service", map[string]any{
		"id": uint64(id),
	}))

	if err := s.store.Delete(ctx, id); err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&pointpb.DeleteResponse{}), nil
}

func toConnectError(err error) error {
	if errors.Is(err, ErrNotFound) {
		return connect.NewError(connect.CodeNotFound, err)
	}
	return connect.NewError(connect.CodeInternal, err)
}
