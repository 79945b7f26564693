package metrics_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"connectrpc.com/connect"

	"github.com/tailored-agentic-units/relay/greeter"
	"github.com/tailored-agentic-units/relay/metrics"
)

func scrape(t *testing.T, m *metrics.Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("scrape status = %d, want 200", rec.Code)
	}
	body, err := io.ReadAll(rec.Body)
	if err != nil {
		t.Fatalf("read scrape: %v", err)
	}
	return string(body)
}

func TestMetrics_Interceptor(t *testing.T) {
	m := metrics.New("earth")

	mux := http.NewServeMux()
	mux.Handle(greeter.NewHandler(greeter.Earth, greeter.Leaf{}, nil,
		connect.WithInterceptors(m.Interceptor())))
	server := httptest.NewServer(mux)
	defer server.Close()

	good := greeter.NewClient(server.Client(), server.URL, greeter.Earth)
	for range 3 {
		if _, err := good.Hello(context.Background(), "Earth"); err != nil {
			t.Fatalf("Hello() error = %v", err)
		}
	}

	snap := m.Snapshot()
	if snap.Calls != 3 {
		t.Errorf("Calls = %d, want 3", snap.Calls)
	}
	if snap.Failures != 0 {
		t.Errorf("Failures = %d, want 0", snap.Failures)
	}
	if snap.InFlight != 0 {
		t.Errorf("InFlight = %d, want 0", snap.InFlight)
	}

	body := scrape(t, m)
	for _, want := range []string{
		`relay_rpc_calls_total{code="ok",node="earth",procedure="/earth.Greeter/HelloEarth",side="server"} 3`,
		`relay_rpc_duration_seconds_count{node="earth",procedure="/earth.Greeter/HelloEarth",side="server"} 3`,
		`relay_rpc_in_flight{node="earth",side="server"} 0`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("scrape missing %q", want)
		}
	}
}

func TestMetrics_ClientFailures(t *testing.T) {
	m := metrics.New("client")

	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	client := greeter.NewClient(server.Client(), server.URL, greeter.Engine,
		connect.WithInterceptors(m.Interceptor()))

	if _, err := client.Hello(context.Background(), "Engine"); err == nil {
		t.Fatal("Hello() should fail against a missing procedure")
	}

	snap := m.Snapshot()
	if snap.Calls != 1 || snap.Failures != 1 {
		t.Errorf("Snapshot() = %+v, want 1 call and 1 failure", snap)
	}
	if !strings.Contains(scrape(t, m), `side="client"`) {
		t.Error("scrape missing client-side series")
	}
}

func TestMetrics_StoreSize(t *testing.T) {
	m := metrics.New("store")
	size := 0
	m.RegisterStoreSize("store", func() int { return size })

	size = 7
	if body := scrape(t, m); !strings.Contains(body, `relay_store_points{node="store"} 7`) {
		t.Error("scrape missing store size gauge")
	}
}

func TestConfig_Merge(t *testing.T) {
	cfg := metrics.DefaultConfig()
	if cfg.Enabled || cfg.Path != metrics.DefaultPath {
		t.Fatalf("DefaultConfig() = %+v", cfg)
	}

	cfg.Merge(&metrics.Config{Enabled: true, Path: "/prom"})
	if !cfg.Enabled || cfg.Path != "/prom" {
		t.Errorf("Merge() = %+v, want enabled at /prom", cfg)
	}
}
