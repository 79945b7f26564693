package interceptor_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"connectrpc.com/connect"

	"github.com/tailored-agentic-units/relay/greeter"
	"github.com/tailored-agentic-units/relay/interceptor"
	"github.com/tailored-agentic-units/relay/observability"
)

type recorder struct {
	mu     sync.Mutex
	events []observability.Event
}

func (r *recorder) OnEvent(_ context.Context, e observability.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) byType(typ observability.EventType) []observability.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []observability.Event
	for _, e := range r.events {
		if e.Type == typ {
			out = append(out, e)
		}
	}
	return out
}

func serveLeaf(t *testing.T, opts ...connect.HandlerOption) *greeter.Client {
	t.Helper()
	mux := http.NewServeMux()
	mux.Handle(greeter.NewHandler(greeter.Earth, greeter.Leaf{}, nil, opts...))
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return greeter.NewClient(server.Client(), server.URL, greeter.Earth)
}

func TestLogging(t *testing.T) {
	serverEvents := &recorder{}
	client := serveLeaf(t, connect.WithInterceptors(interceptor.Logging(serverEvents)))

	if _, err := client.Hello(context.Background(), "Earth"); err != nil {
		t.Fatalf("Hello() error = %v", err)
	}

	events := serverEvents.byType(interceptor.EventCallComplete)
	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}

	data := events[0].Data
	if data["procedure"] != greeter.Earth.Procedure() {
		t.Errorf("procedure = %v, want %s", data["procedure"], greeter.Earth.Procedure())
	}
	if data["side"] != "server" {
		t.Errorf("side = %v, want server", data["side"])
	}
	if data["code"] != "ok" {
		t.Errorf("code = %v, want ok", data["code"])
	}
}

func TestLogging_ClientFailure(t *testing.T) {
	events := &recorder{}
	server := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(server.Close)

	client := greeter.NewClient(server.Client(), server.URL, greeter.Earth,
		connect.WithInterceptors(interceptor.Logging(events)))

	if _, err := client.Hello(context.Background(), "Earth"); err == nil {
		t.Fatal("Hello() against a missing procedure should fail")
	}

	got := events.byType(interceptor.EventCallComplete)
	if len(got) != 1 {
		t.Fatalf("events = %d, want 1", len(got))
	}
	if got[0].Level != observability.LevelWarning {
		t.Errorf("level = %v, want %v", got[0].Level, observability.LevelWarning)
	}
	if got[0].Data["side"] != "client" {
		t.Errorf("side = %v, want client", got[0].Data["side"])
	}
}

func TestRateLimit(t *testing.T) {
	events := &recorder{}
	cfg := interceptor.RateLimitConfig{Enabled: true, RPS: 0.001, Burst: 2}
	client := serveLeaf(t, connect.WithInterceptors(interceptor.RateLimit(&cfg, events)))

	for i := range 2 {
		if _, err := client.Hello(context.Background(), "Earth"); err != nil {
			t.Fatalf("call %d: Hello() error = %v", i+1, err)
		}
	}

	_, err := client.Hello(context.Background(), "Earth")
	if code := connect.CodeOf(err); code != connect.CodeResourceExhausted {
		t.Fatalf("code = %v, want %v", code, connect.CodeResourceExhausted)
	}

	var connectErr *connect.Error
	if !errors.As(err, &connectErr) {
		t.Fatalf("error = %T, want *connect.Error", err)
	}
	if connectErr.Message() != interceptor.ErrRateLimited.Error() {
		t.Errorf("message = %q, want %q", connectErr.Message(), interceptor.ErrRateLimited.Error())
	}

	if n := len(events.byType(interceptor.EventRateLimited)); n != 1 {
		t.Errorf("rate limited events = %d, want 1", n)
	}
}

func TestRateLimitConfig_Merge(t *testing.T) {
	cfg := interceptor.DefaultRateLimitConfig()
	if cfg.Enabled {
		t.Fatal("default rate limit should be disabled")
	}

	cfg.Merge(&interceptor.RateLimitConfig{Enabled: true, Burst: 5})
	if !cfg.Enabled {
		t.Error("Enabled = false, want true")
	}
	if cfg.Burst != 5 {
		t.Errorf("Burst = %d, want 5", cfg.Burst)
	}
	if cfg.RPS != 100 {
		t.Errorf("RPS = %v, want default 100", cfg.RPS)
	}
}
