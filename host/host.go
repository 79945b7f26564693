// Package host runs a connect server behind a one-shot cancellation signal.
//
// Start binds the listener and serves in the background. The host's
// supervisor races the serve loop against cancellation and yields to
// whichever resolves first. Shutdown raises the signal and returns once the
// listener is closed and idle keep-alive connections are dropped, so no new
// connection or stream is accepted afterwards. Calls that were already
// accepted may still complete within the drain window.
//
//	h, err := host.Start(ctx, "[::1]:50051", mux, &cfg)
//	if err != nil {
//	    return err
//	}
//	defer h.Shutdown()
package host

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/net/netutil"

	"github.com/tailored-agentic-units/relay/observability"
)

// Host event types.
const (
	EventStart    observability.EventType = "host.start"
	EventShutdown observability.EventType = "host.shutdown"
	EventStopped  observability.EventType = "host.stopped"
	EventFailed   observability.EventType = "host.failed"
)

// Option configures a Host.
type Option func(*Host)

// WithObserver overrides the default slog observer.
func WithObserver(o observability.Observer) Option {
	return func(h *Host) { h.observer = o }
}

// Host supervises one server's accept loop.
type Host struct {
	name         string
	addr         string
	server       *http.Server
	listener     net.Listener
	observer     observability.Observer
	drainTimeout time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	serving chan struct{} // closed when Serve returns
	done    chan struct{} // closed when fully stopped

	connMu sync.Mutex
	conns  map[net.Conn]http.ConnState

	errMu sync.Mutex
	err   error
}

// Start binds address and serves handler in the background over HTTP/1.1 and
// cleartext HTTP/2. Bind failures are returned; everything after that is
// reported through Done and Err. Cancelling ctx has the same effect as
// Shutdown.
func Start(ctx context.Context, address string, handler http.Handler, cfg *Config, opts ...Option) (*Host, error) {
	ln, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", address, err)
	}
	if cfg.MaxConns > 0 {
		ln = netutil.LimitListener(ln, cfg.MaxConns)
	}

	var protocols http.Protocols
	protocols.SetHTTP1(true)
	protocols.SetUnencryptedHTTP2(true)

	hostCtx, cancel := context.WithCancel(ctx)

	h := &Host{
		name:     cfg.Name,
		addr:     ln.Addr().String(),
		listener: ln,
		server: &http.Server{
			Protocols:         &protocols,
			ReadHeaderTimeout: cfg.ReadHeaderTimeout.Std(),
		},
		observer:     observability.NewSlogObserver(nil),
		drainTimeout: cfg.DrainTimeout.Std(),
		ctx:          hostCtx,
		cancel:       cancel,
		serving:      make(chan struct{}),
		done:         make(chan struct{}),
		conns:        make(map[net.Conn]http.ConnState),
	}
	h.server.Handler = h.gate(handler)
	h.server.ConnState = h.trackConn

	for _, opt := range opts {
		opt(h)
	}

	go h.serve()
	go h.supervise()

	h.observer.OnEvent(hostCtx, observability.NewEvent(EventStart, observability.LevelInfo, "host.Start", map[string]any{
		"host": h.name,
		"addr": h.addr,
	}))

	return h, nil
}

// Addr returns the bound listener address.
func (h *Host) Addr() string {
	return h.addr
}

// Done is closed once the host has fully stopped, after any drain.
func (h *Host) Done() <-chan struct{} {
	return h.done
}

// Err reports why the serve loop ended when it ended for a reason other
// than cancellation.
func (h *Host) Err() error {
	h.errMu.Lock()
	defer h.errMu.Unlock()
	return h.err
}

// Shutdown raises the cancellation signal and waits only until the accept
// loop has stopped and idle connections are closed. Calls after the first
// are no-ops.
func (h *Host) Shutdown() {
	h.cancel()
	<-h.serving
	h.closeIdle()
}

// gate refuses requests that arrive once cancellation is raised, including
// new streams on a connection that is still draining.
func (h *Host) gate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.ctx.Err() != nil {
			w.Header().Set("Connection", "close")
			http.Error(w, "server shutting down", http.StatusServiceUnavailable)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Host) trackConn(c net.Conn, state http.ConnState) {
	h.connMu.Lock()
	defer h.connMu.Unlock()

	switch state {
	case http.StateClosed, http.StateHijacked:
		delete(h.conns, c)
	default:
		h.conns[c] = state
	}
}

// closeIdle drops keep-alive connections with no request in flight, so a
// client cannot reuse a pooled connection after Shutdown.
func (h *Host) closeIdle() {
	h.connMu.Lock()
	defer h.connMu.Unlock()

	for c, state := range h.conns {
		if state == http.StateIdle {
			c.Close()
			delete(h.conns, c)
		}
	}
}

func (h *Host) serve() {
	defer close(h.serving)

	err := h.server.Serve(h.listener)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		h.errMu.Lock()
		h.err = err
		h.errMu.Unlock()
	}
}

func (h *Host) supervise() {
	defer close(h.done)

	select {
	case <-h.serving:
		// The loop died on its own; nothing is restarted.
		h.cancel()
		h.observer.OnEvent(context.Background(), observability.NewEvent(EventFailed, observability.LevelError, "host.supervise", map[string]any{
			"host":  h.name,
			"addr":  h.addr,
			"error": fmt.Sprint(h.Err()),
		}))
		h.server.Close()
		return

	case <-h.ctx.Done():
	}

	h.observer.OnEvent(context.Background(), observability.NewEvent(EventShutdown, observability.LevelInfo, "host.supervise", map[string]any{
		"host": h.name,
		"addr": h.addr,
	}))

	drainCtx, cancel := context.WithTimeout(context.Background(), h.drainTimeout)
	defer cancel()

	if err := h.server.Shutdown(drainCtx); err != nil {
		h.server.Close()
	}

	h.observer.OnEvent(context.Background(), observability.NewEvent(EventStopped, observability.LevelInfo, "host.supervise", map[string]any{
		"host": h.name,
		"addr": h.addr,
	}))
}
