package host_test

import (
	"context"
	"io"
	"net"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/tailored-agentic-units/relay/core/config"
	"github.com/tailored-agentic-units/relay/host"
	"github.com/tailored-agentic-units/relay/observability"
	"github.com/tailored-agentic-units/relay/transport"
)

type recordingObserver struct {
	mu     sync.Mutex
	events []observability.EventType
}

func (r *recordingObserver) OnEvent(_ context.Context, event observability.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event.Type)
}

func (r *recordingObserver) types() []observability.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]observability.EventType(nil), r.events...)
}

func testConfig() *host.Config {
	cfg := host.DefaultConfig()
	cfg.Name = "test-host"
	return &cfg
}

func startHost(t *testing.T, handler http.Handler, cfg *host.Config, opts ...host.Option) *host.Host {
	t.Helper()
	opts = append([]host.Option{host.WithObserver(observability.NoOpObserver{})}, opts...)
	h, err := host.Start(context.Background(), "127.0.0.1:0", handler, cfg, opts...)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	t.Cleanup(h.Shutdown)
	return h
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "ok")
	})
}

func get(t *testing.T, client *http.Client, url string) (string, error) {
	t.Helper()
	resp, err := client.Get(url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	return string(body), err
}

func waitDone(t *testing.T, h *host.Host, within time.Duration) {
	t.Helper()
	select {
	case <-h.Done():
	case <-time.After(within):
		t.Fatalf("host did not stop within %v", within)
	}
}

func TestHost_ServesUntilShutdown(t *testing.T) {
	h := startHost(t, okHandler(), testConfig())
	url := "http://" + h.Addr()

	body, err := get(t, &http.Client{}, url)
	if err != nil {
		t.Fatalf("GET before shutdown error = %v", err)
	}
	if body != "ok" {
		t.Errorf("body = %q, want %q", body, "ok")
	}

	h.Shutdown()

	if _, err := net.DialTimeout("tcp", h.Addr(), time.Second); err == nil {
		t.Error("dial after Shutdown should fail, listener still open")
	}

	waitDone(t, h, 2*time.Second)
	if h.Err() != nil {
		t.Errorf("Err() = %v, want nil after cancellation", h.Err())
	}
}

func TestHost_ShutdownIdempotent(t *testing.T) {
	h := startHost(t, okHandler(), testConfig())

	h.Shutdown()
	h.Shutdown()

	waitDone(t, h, 2*time.Second)
}

func TestHost_InFlightCallCompletes(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(entered)
		<-release
		io.WriteString(w, "finished")
	})

	h := startHost(t, handler, testConfig())
	url := "http://" + h.Addr()

	type result struct {
		body string
		err  error
	}
	results := make(chan result, 1)
	go func() {
		resp, err := http.Get(url)
		if err != nil {
			results <- result{err: err}
			return
		}
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		results <- result{body: string(body), err: err}
	}()

	<-entered

	shutdownReturned := make(chan struct{})
	go func() {
		h.Shutdown()
		close(shutdownReturned)
	}()

	select {
	case <-shutdownReturned:
	case <-time.After(2 * time.Second):
		t.Fatal("Shutdown() waited for the in-flight call")
	}

	if _, err := net.DialTimeout("tcp", h.Addr(), time.Second); err == nil {
		t.Error("new connection accepted after Shutdown returned")
	}

	close(release)

	res := <-results
	if res.err != nil {
		t.Fatalf("in-flight call error = %v", res.err)
	}
	if res.body != "finished" {
		t.Errorf("in-flight body = %q, want %q", res.body, "finished")
	}

	waitDone(t, h, 2*time.Second)
}

func TestHost_ShutdownClosesPooledConnections(t *testing.T) {
	tests := []struct {
		name   string
		client *http.Client
	}{
		{name: "http1", client: &http.Client{Transport: &http.Transport{}}},
		{name: "h2c", client: transport.NewHTTPClient()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := startHost(t, okHandler(), testConfig())
			url := "http://" + h.Addr()

			if _, err := get(t, tt.client, url); err != nil {
				t.Fatalf("GET before shutdown error = %v", err)
			}

			h.Shutdown()

			if body, err := get(t, tt.client, url); err == nil {
				t.Errorf("GET over the pooled connection after Shutdown = %q, want error", body)
			}
		})
	}
}

func TestHost_RefusesStreamsWhileDraining(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/slow" {
			once.Do(func() { close(entered) })
			<-release
		}
		io.WriteString(w, "ok")
	})

	h := startHost(t, handler, testConfig())
	client := transport.NewHTTPClient()
	url := "http://" + h.Addr()

	slowDone := make(chan error, 1)
	go func() {
		_, err := get(t, client, url+"/slow")
		slowDone <- err
	}()
	<-entered

	h.Shutdown()

	resp, err := client.Get(url + "/fast")
	if err == nil {
		resp.Body.Close()
		if resp.StatusCode != http.StatusServiceUnavailable {
			t.Errorf("new stream after Shutdown status = %d, want error or %d", resp.StatusCode, http.StatusServiceUnavailable)
		}
	}

	close(release)
	if err := <-slowDone; err != nil {
		t.Errorf("in-flight call error = %v", err)
	}
	waitDone(t, h, 2*time.Second)
}

func TestHost_DrainTimeoutForcesClose(t *testing.T) {
	entered := make(chan struct{})
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(entered)
		<-r.Context().Done()
	})

	cfg := testConfig()
	cfg.DrainTimeout = config.Duration(50 * time.Millisecond)
	h := startHost(t, handler, cfg)

	go http.Get("http://" + h.Addr())
	<-entered

	h.Shutdown()
	waitDone(t, h, 2*time.Second)
}

func TestHost_ParentCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	h, err := host.Start(ctx, "127.0.0.1:0", okHandler(), testConfig(), host.WithObserver(observability.NoOpObserver{}))
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	cancel()
	waitDone(t, h, 2*time.Second)
}

func TestHost_BindError(t *testing.T) {
	h := startHost(t, okHandler(), testConfig())

	_, err := host.Start(context.Background(), h.Addr(), okHandler(), testConfig())
	if err == nil {
		t.Error("Start() on an address in use should fail")
	}
}

func TestHost_MaxConns(t *testing.T) {
	cfg := testConfig()
	cfg.MaxConns = 1
	h := startHost(t, okHandler(), cfg)

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	for i := range 3 {
		if _, err := get(t, client, "http://"+h.Addr()); err != nil {
			t.Fatalf("GET #%d error = %v", i+1, err)
		}
	}
}

func TestHost_Events(t *testing.T) {
	obs := &recordingObserver{}
	h := startHost(t, okHandler(), testConfig(), host.WithObserver(obs))

	h.Shutdown()
	waitDone(t, h, 2*time.Second)

	want := []observability.EventType{host.EventStart, host.EventShutdown, host.EventStopped}
	got := obs.types()
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestConfig_Merge(t *testing.T) {
	cfg := host.DefaultConfig()
	original := cfg.DrainTimeout

	cfg.Merge(&host.Config{})
	if cfg.DrainTimeout != original {
		t.Errorf("DrainTimeout = %v, want %v (preserved default)", cfg.DrainTimeout, original)
	}

	cfg.Merge(&host.Config{Name: "earth", MaxConns: 8})
	if cfg.Name != "earth" {
		t.Errorf("Name = %q, want %q", cfg.Name, "earth")
	}
	if cfg.MaxConns != 8 {
		t.Errorf("MaxConns = %d, want 8", cfg.MaxConns)
	}
}
