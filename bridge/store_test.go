package bridge_test

import (
	"context"
	"errors"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/tailored-agentic-units/relay/bridge"
	"github.com/tailored-agentic-units/relay/core/config"
	"github.com/tailored-agentic-units/relay/greeter"
	"github.com/tailored-agentic-units/relay/host"
	"github.com/tailored-agentic-units/relay/observability"
	"github.com/tailored-agentic-units/relay/point"
)

func startNode(t *testing.T, register func(mux *http.ServeMux)) *host.Host {
	t.Helper()

	mux := http.NewServeMux()
	register(mux)

	cfg := host.DefaultConfig()
	h, err := host.Start(context.Background(), "127.0.0.1:0", mux, &cfg, host.WithObserver(observability.NoOpObserver{}))
	if err != nil {
		t.Fatalf("host.Start() error = %v", err)
	}
	t.Cleanup(h.Shutdown)
	return h
}

func startStore(t *testing.T) *host.Host {
	return startNode(t, func(mux *http.ServeMux) {
		mux.Handle(point.NewHandler(point.NewMemoryStore(), nil))
	})
}

func bridgeConfig() *bridge.Config {
	cfg := bridge.DefaultConfig()
	cfg.Transport.DialTimeout = config.Duration(time.Second)
	return &cfg
}

func connectStore(t *testing.T, address string) *bridge.Store {
	t.Helper()
	s := bridge.ConnectStore(context.Background(), address, bridgeConfig(),
		bridge.WithActorOptions(quiet()))
	t.Cleanup(s.Close)
	return s
}

func closedAddress(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	ln.Close()
	return addr
}

func TestStore_UpdateScenario(t *testing.T) {
	h := startStore(t)
	store := connectStore(t, h.Addr())

	current := point.Point{}
	id, err := store.Create(current)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	for i := range 10 {
		current = point.Point{X: current.X + 1, Y: current.Y + 2}
		if err := store.Update(id, current); err != nil {
			t.Fatalf("iteration %d: Update() error = %v", i, err)
		}
		got, err := store.Read(id)
		if err != nil {
			t.Fatalf("iteration %d: Read() error = %v", i, err)
		}
		if got != current {
			t.Fatalf("iteration %d: Read() = %+v, want %+v", i, got, current)
		}
	}

	if current != (point.Point{X: 10, Y: 20}) {
		t.Errorf("final point = %+v, want {10 20}", current)
	}

	if err := store.Delete(id); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := store.Delete(id); err != nil {
		t.Errorf("second Delete() error = %v, want nil", err)
	}
}

func TestStore_NotFoundPassthrough(t *testing.T) {
	h := startStore(t)
	store := connectStore(t, h.Addr())

	_, err := store.Read(point.ID(42))

	var nf *point.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("Read() error = %v, want *point.NotFoundError", err)
	}
	if nf.ID != 42 {
		t.Errorf("NotFoundError.ID = %d, want 42", nf.ID)
	}
	if errors.Is(err, bridge.ErrInternal) {
		t.Errorf("Read() error = %v, store failures must not be ErrInternal", err)
	}

	if err := store.Update(point.ID(42), point.Point{X: 1}); !errors.Is(err, point.ErrNotFound) {
		t.Errorf("Update() error = %v, want ErrNotFound", err)
	}
}

func TestStore_Unreachable(t *testing.T) {
	store := connectStore(t, closedAddress(t))

	_, err := store.Create(point.Point{X: 1})
	if !errors.Is(err, bridge.ErrInternal) {
		t.Fatalf("Create() error = %v, want ErrInternal", err)
	}
	waitClosed(t, store.Done())
	if store.Err() == nil {
		t.Error("Err() = nil, want the dial failure")
	}
}

func TestStore_HostShutdown(t *testing.T) {
	h := startStore(t)
	store := connectStore(t, h.Addr())

	if _, err := store.Create(point.Point{X: 1}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// The bridge's HTTP/2 connection is pooled and idle here. Shutdown must
	// not leave it usable, and the next call must not wait for the drain.
	h.Shutdown()

	_, err := store.Create(point.Point{X: 2})
	if !errors.Is(err, bridge.ErrInternal) {
		t.Fatalf("Create() after Shutdown error = %v, want ErrInternal", err)
	}

	waitClosed(t, store.Done())
	if err := store.Err(); err == nil || errors.Is(err, context.Canceled) {
		t.Errorf("Err() = %v, want the lost connection", err)
	}
	if _, err := store.Read(1); !errors.Is(err, bridge.ErrInternal) {
		t.Errorf("Read() on a closed bridge error = %v, want ErrInternal", err)
	}
}

func TestStore_RemoteFailureIsInternal(t *testing.T) {
	h := startNode(t, func(mux *http.ServeMux) {
		mux.Handle(point.NewHandler(failingStore{Store: point.NewMemoryStore()}, nil))
	})
	store := connectStore(t, h.Addr())

	_, err := store.Create(point.Point{X: 1})
	if !errors.Is(err, bridge.ErrInternal) {
		t.Fatalf("Create() error = %v, want ErrInternal", err)
	}
	if errors.Is(err, point.ErrNotFound) {
		t.Errorf("Create() error = %v, should not look like a missing point", err)
	}

	// the store answered, so the bridge stays usable
	if _, err := store.Read(42); !errors.Is(err, point.ErrNotFound) {
		t.Errorf("Read() error = %v, want ErrNotFound", err)
	}
	select {
	case <-store.Done():
		t.Errorf("bridge exited after an answered failure: %v", store.Err())
	default:
	}
}

func TestStore_CallTimeout(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	open := func(ctx context.Context) (point.Store, error) {
		return blockingStore{Store: point.NewMemoryStore(), release: release}, nil
	}

	cfg := bridgeConfig()
	cfg.CallTimeout = config.Duration(50 * time.Millisecond)
	store := bridge.NewStore(context.Background(), open, cfg, quiet())
	defer store.Close()

	_, err := store.Create(point.Point{})
	if !errors.Is(err, bridge.ErrInternal) || !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Create() error = %v, want ErrInternal wrapping DeadlineExceeded", err)
	}
}

func TestStore_LocalOrdering(t *testing.T) {
	mem := point.NewMemoryStore()
	open := func(ctx context.Context) (point.Store, error) { return mem, nil }

	store := bridge.NewStore(context.Background(), open, bridgeConfig(), quiet())
	defer store.Close()

	ids := make([]point.ID, 0, 5)
	for i := range 5 {
		id, err := store.Create(point.Point{X: float64(i)})
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		ids = append(ids, id)
	}

	for i, id := range ids {
		got, err := store.Read(id)
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
		if got.X != float64(i) {
			t.Errorf("Read(%d).X = %v, want %d", id, got.X, i)
		}
	}

	if mem.Len() != 5 {
		t.Errorf("Len() = %d, want 5", mem.Len())
	}
}

func TestGreeter_Hello(t *testing.T) {
	h := startNode(t, func(mux *http.ServeMux) {
		mux.Handle(greeter.NewHandler(greeter.Earth, greeter.Leaf{}, nil))
	})

	g := bridge.ConnectGreeter(context.Background(), h.Addr(), greeter.Earth, bridgeConfig(),
		bridge.WithActorOptions(quiet()))
	defer g.Close()

	got, err := g.Hello("Engine")
	if err != nil {
		t.Fatalf("Hello() error = %v", err)
	}
	if got != "Hello Engine!" {
		t.Errorf("Hello() = %q, want %q", got, "Hello Engine!")
	}
}

func TestGreeter_HostShutdown(t *testing.T) {
	h := startNode(t, func(mux *http.ServeMux) {
		mux.Handle(greeter.NewHandler(greeter.Earth, greeter.Leaf{}, nil))
	})

	g := bridge.ConnectGreeter(context.Background(), h.Addr(), greeter.Earth, bridgeConfig(),
		bridge.WithActorOptions(quiet()))
	defer g.Close()

	if _, err := g.Hello("Engine"); err != nil {
		t.Fatalf("Hello() error = %v", err)
	}

	h.Shutdown()

	if _, err := g.Hello("Engine"); !errors.Is(err, bridge.ErrInternal) {
		t.Fatalf("Hello() after Shutdown error = %v, want ErrInternal", err)
	}
	waitClosed(t, g.Done())
}

func TestGreeter_Unreachable(t *testing.T) {
	g := bridge.ConnectGreeter(context.Background(), closedAddress(t), greeter.Engine, bridgeConfig(),
		bridge.WithActorOptions(quiet()))
	defer g.Close()

	if _, err := g.Hello("Engine"); !errors.Is(err, bridge.ErrInternal) {
		t.Errorf("Hello() error = %v, want ErrInternal", err)
	}
}

type blockingStore struct {
	point.Store
	release <-chan struct{}
}

func (b blockingStore) Create(ctx context.Context, p point.Point) (point.ID, error) {
	<-b.release
	return b.Store.Create(ctx, p)
}

type failingStore struct {
	point.Store
}

func (failingStore) Create(context.Context, point.Point) (point.ID, error) {
	return 0, errors.New("disk full")
}
