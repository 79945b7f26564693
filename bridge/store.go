package bridge

import (
	"context"
	"fmt"

	"github.com/tailored-agentic-units/relay/point"
	"github.com/tailored-agentic-units/relay/transport"
)

type storeOp int

const (
	opCreate storeOp = iota + 1
	opRead
	opUpdate
	opDelete
)

func (o storeOp) String() string {
	switch o {
	case opCreate:
		return "create"
	case opRead:
		return "read"
	case opUpdate:
		return "update"
	case opDelete:
		return "delete"
	default:
		return fmt.Sprintf("op(%d)", int(o))
	}
}

type storeRequest struct {
	op    storeOp
	id    point.ID
	point point.Point
}

// storeResponse carries the remote error alongside the result so a missing
// point reaches the caller unchanged.
type storeResponse struct {
	op    storeOp
	id    point.ID
	point point.Point
	err   error
}

func serveStore(store point.Store) Handler[storeRequest, storeResponse] {
	return func(ctx context.Context, req storeRequest) (storeResponse, error) {
		res := storeResponse{op: req.op}
		switch req.op {
		case opCreate:
			res.id, res.err = store.Create(ctx, req.point)
		case opRead:
			res.point, res.err = store.Read(ctx, req.id)
		case opUpdate:
			res.err = store.Update(ctx, req.id, req.point)
		case opDelete:
			res.err = store.Delete(ctx, req.id)
		default:
			res.op = 0
			res.err = fmt.Errorf("%w: unknown request %s", ErrInternal, req.op)
		}
		if connectionLost(res.err) {
			return res, res.err
		}
		return res, nil
	}
}

// Store is a blocking point store backed by an Actor.
type Store struct {
	actor *Actor[storeRequest, storeResponse]
	cfg   Config
}

// NewStore spawns an actor whose setup opens the point.Store it serves.
func NewStore(ctx context.Context, open func(ctx context.Context) (point.Store, error), cfg *Config, opts ...Option) *Store {
	setup := func(ctx context.Context) (Handler[storeRequest, storeResponse], error) {
		store, err := open(ctx)
		if err != nil {
			return nil, err
		}
		return serveStore(store), nil
	}

	return &Store{
		actor: Spawn[storeRequest, storeResponse](ctx, setup, append([]Option{WithName("store")}, opts...)...),
		cfg:   *cfg,
	}
}

// ConnectStore returns immediately. The actor dials address and, if the
// store is reachable, serves calls until ctx ends or the connection is lost.
// If the dial fails every call returns ErrInternal.
func ConnectStore(ctx context.Context, address string, cfg *Config, opts ...ConnectOption) *Store {
	o := resolveConnectOptions(opts)

	open := func(ctx context.Context) (point.Store, error) {
		clientOpts, err := dial(ctx, address, &cfg.Transport, o)
		if err != nil {
			return nil, err
		}
		return point.NewClient(o.httpClient, transport.BaseURL(address), clientOpts...), nil
	}

	return NewStore(ctx, open, cfg, o.actorOptions...)
}

func (s *Store) Create(p point.Point) (point.ID, error) {
	res, err := s.call(storeRequest{op: opCreate, point: p})
	return res.id, err
}

func (s *Store) Read(id point.ID) (point.Point, error) {
	res, err := s.call(storeRequest{op: opRead, id: id})
	return res.point, err
}

func (s *Store) Update(id point.ID, p point.Point) error {
	_, err := s.call(storeRequest{op: opUpdate, id: id, point: p})
	return err
}

func (s *Store) Delete(id point.ID) error {
	_, err := s.call(storeRequest{op: opDelete, id: id})
	return err
}

// Close stops the actor.
func (s *Store) Close() {
	s.actor.Close()
}

// Done is closed when the actor has exited.
func (s *Store) Done() <-chan struct{} {
	return s.actor.Done()
}

// Err returns why the actor exited.
func (s *Store) Err() error {
	return s.actor.Err()
}

func (s *Store) call(req storeRequest) (storeResponse, error) {
	ctx, cancel := s.cfg.callContext()
	defer cancel()

	res, err := s.actor.Call(ctx, req)
	if err != nil {
		return storeResponse{}, err
	}
	if err := checkTag(req.op, res.op); err != nil {
		return storeResponse{}, err
	}
	return res, remoteError(req.op, res.err)
}

func checkTag(want, got storeOp) error {
	if want != got {
		return fmt.Errorf("%w: sent %s request, got %s response", ErrInternal, want, got)
	}
	return nil
}
