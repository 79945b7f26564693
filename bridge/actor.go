// Package bridge lets synchronous code drive asynchronous RPC clients.
//
// An Actor owns one goroutine pinned to its own OS thread. The goroutine
// opens a client in its setup function and then serves requests from a
// capacity-1 mailbox, one at a time, answering through a second capacity-1
// mailbox. Callers block on both channel operations.
//
//	store := bridge.ConnectStore(ctx, "[::1]:50052", &cfg)
//	id, err := store.Create(point.Point{X: 1, Y: 2})
//	if errors.Is(err, bridge.ErrInternal) {
//	    // the actor is gone; build a new bridge
//	}
package bridge

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/tailored-agentic-units/relay/observability"
)

// EventExit is emitted once when an actor stops.
const EventExit observability.EventType = "bridge.exit"

var errActorDone = errors.New("actor exited")

// Handler serves one request. ctx is the caller's context for that call.
// Failures the caller should see as results belong in Res. A non-nil error
// means the client behind the actor is unusable: the caller gets ErrInternal
// and the actor exits with the error as its cause.
type Handler[Req, Res any] func(ctx context.Context, req Req) (Res, error)

// Setup runs on the actor goroutine before any request is served. It
// typically opens the client the handler closes over. A setup error ends the
// actor.
type Setup[Req, Res any] func(ctx context.Context) (Handler[Req, Res], error)

// Option configures an actor.
type Option func(*options)

type options struct {
	name     string
	observer observability.Observer
}

// WithName labels the actor in events.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithObserver overrides the default slog observer.
func WithObserver(observer observability.Observer) Option {
	return func(o *options) { o.observer = observer }
}

// Actor serializes calls onto a single goroutine.
type Actor[Req, Res any] struct {
	name     string
	observer observability.Observer

	requests  *mailbox[Req]
	responses *mailbox[Res]

	cancel context.CancelFunc
	done   chan struct{}

	callMu sync.Mutex // held across send and receive
	seq    uint64

	errMu sync.Mutex
	err   error
}

// Spawn starts the actor and returns without waiting for setup. The actor
// stops when ctx is cancelled, when Close is called, when setup fails, or
// when the handler panics or returns an error.
func Spawn[Req, Res any](ctx context.Context, setup Setup[Req, Res], opts ...Option) *Actor[Req, Res] {
	o := options{name: "actor"}
	for _, opt := range opts {
		opt(&o)
	}
	if o.observer == nil {
		o.observer = observability.NewSlogObserver(nil)
	}

	actorCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	a := &Actor[Req, Res]{
		name:      o.name,
		observer:  o.observer,
		requests:  newMailbox[Req](done),
		responses: newMailbox[Res](done),
		cancel:    cancel,
		done:      done,
	}

	go a.run(actorCtx, setup)

	return a
}

// Call sends req and waits for its response. Concurrent callers queue
// behind the call in flight. Any failure of the actor itself is reported as
// ErrInternal.
func (a *Actor[Req, Res]) Call(ctx context.Context, req Req) (Res, error) {
	var zero Res

	a.callMu.Lock()
	defer a.callMu.Unlock()

	a.seq++
	seq := a.seq

	if err := a.requests.send(ctx, envelope[Req]{seq: seq, ctx: ctx, msg: req}); err != nil {
		return zero, a.failure(err)
	}

	for {
		res, err := a.responses.receive(ctx)
		if err != nil {
			return zero, a.failure(err)
		}
		switch {
		case res.seq < seq:
			// left behind by a caller that gave up
			continue
		case res.seq > seq:
			return zero, fmt.Errorf("%w: response %d for request %d", ErrInternal, res.seq, seq)
		case res.err != nil:
			return zero, fmt.Errorf("%w: %s: %w", ErrInternal, a.name, res.err)
		}
		return res.msg, nil
	}
}

// Close stops the actor after the request it is serving, if any.
func (a *Actor[Req, Res]) Close() {
	a.cancel()
}

// Done is closed when the actor goroutine has exited.
func (a *Actor[Req, Res]) Done() <-chan struct{} {
	return a.done
}

// Err returns why the actor exited, or nil while it runs.
func (a *Actor[Req, Res]) Err() error {
	a.errMu.Lock()
	defer a.errMu.Unlock()
	return a.err
}

func (a *Actor[Req, Res]) failure(err error) error {
	if errors.Is(err, errActorDone) {
		if cause := a.Err(); cause != nil {
			return fmt.Errorf("%w: %s exited: %w", ErrInternal, a.name, cause)
		}
	}
	return fmt.Errorf("%w: %w", ErrInternal, err)
}

func (a *Actor[Req, Res]) run(ctx context.Context, setup Setup[Req, Res]) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(a.done)
	defer a.cancel()

	handle, err := setup(ctx)
	if err != nil {
		a.exit(ctx, fmt.Errorf("setup: %w", err))
		return
	}

	a.exit(ctx, a.serve(ctx, handle))
}

func (a *Actor[Req, Res]) serve(ctx context.Context, handle Handler[Req, Res]) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case req := <-a.requests.channel:
			msg, err := handle(req.ctx, req.msg)
			select {
			case a.responses.channel <- envelope[Res]{seq: req.seq, msg: msg, err: err}:
			case <-ctx.Done():
				return ctx.Err()
			}
			if err != nil {
				return err
			}
		}
	}
}

func (a *Actor[Req, Res]) exit(ctx context.Context, cause error) {
	a.errMu.Lock()
	a.err = cause
	a.errMu.Unlock()

	level := observability.LevelInfo
	if !errors.Is(cause, context.Canceled) {
		level = observability.LevelWarning
	}

	a.observer.OnEvent(ctx, observability.NewEvent(EventExit, level, "bridge.Actor", map[string]any{
		"actor": a.name,
		"cause": cause.Error(),
	}))
}
