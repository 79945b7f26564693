package greeter

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"connectrpc.com/connect"

	earthpb "github.com/tailored-agentic-units/relay/gen/earth"
	"github.com/tailored-agentic-units/relay/gen/earth/earthpbconnect"
	enginepb "github.com/tailored-agentic-units/relay/gen/engine"
	"github.com/tailored-agentic-units/relay/gen/engine/enginepbconnect"
	"github.com/tailored-agentic-units/relay/observability"
)

// EventHello is emitted for every inbound Hello.
const EventHello observability.EventType = "greeter.hello"

// Service names one of the two Greeter services.
type Service string

const (
	Earth  Service = earthpbconnect.GreeterName
	Engine Service = enginepbconnect.GreeterName
)

// Procedure returns the RPC path of the service's Hello method.
func (s Service) Procedure() string {
	switch s {
	case Earth:
		return earthpbconnect.GreeterHelloEarthProcedure
	case Engine:
		return enginepbconnect.GreeterHelloEngineProcedure
	default:
		return ""
	}
}

func (s Service) mustKnow() {
	if s.Procedure() == "" {
		panic(fmt.Sprintf("greeter: unknown service %q", string(s)))
	}
}

type helloService struct {
	service  Service
	greeter  Greeter
	observer observability.Observer
}

func (h *helloService) hello(ctx context.Context, name string) (string, error) {
	h.observer.OnEvent(ctx, observability.NewEvent(EventHello, observability.LevelInfo, "greeter.service", map[string]any{
		"procedure": h.service.Procedure(),
		"name":      name,
	}))

	message, err := h.greeter.Hello(ctx, name)
	if err != nil {
		return "", toConnectError(err)
	}
	return message, nil
}

type earthHandler struct{ *helloService }

func (h earthHandler) HelloEarth(
	ctx context.Context,
	req *connect.Request[earthpb.HelloRequest],
) (*connect.Response[earthpb.HelloReply], error) {
	message, err := h.hello(ctx, req.Msg.GetName())
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&earthpb.HelloReply{Message: message}), nil
}

type engineHandler struct{ *helloService }

func (h engineHandler) HelloEngine(
	ctx context.Context,
	req *connect.Request[enginepb.HelloRequest],
) (*connect.Response[enginepb.HelloReply], error) {
	message, err := h.hello(ctx, req.Msg.GetName())
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&enginepb.HelloReply{Message: message}), nil
}

// NewHandler serves g as service. It returns the mux path and the handler.
// A nil observer discards events. It panics on an unknown service.
func NewHandler(service Service, g Greeter, observer observability.Observer, opts ...connect.HandlerOption) (string, http.Handler) {
	service.mustKnow()
	if observer == nil {
		observer = observability.NoOpObserver{}
	}

	h := &helloService{service: service, greeter: g, observer: observer}
	if service == Earth {
		return earthpbconnect.NewGreeterHandler(earthHandler{h}, opts...)
	}
	return enginepbconnect.NewGreeterHandler(engineHandler{h}, opts...)
}

func toConnectError(err error) error {
	if errors.Is(err, ErrDownstream) {
		return connect.NewError(connect.CodeUnavailable, err)
	}
	return connect.NewError(connect.CodeInternal, err)
}
