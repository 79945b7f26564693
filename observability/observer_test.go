package observability_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/tailored-agentic-units/relay/observability"
)

func TestLevel_String(t *testing.T) {
	tests := []struct {
		name  string
		level observability.Level
		want  string
	}{
		{name: "trace range", level: 1, want: "TRACE"},
		{name: "verbose maps to DEBUG", level: observability.LevelVerbose, want: "DEBUG"},
		{name: "info maps to INFO", level: observability.LevelInfo, want: "INFO"},
		{name: "warning maps to WARN", level: observability.LevelWarning, want: "WARN"},
		{name: "error maps to ERROR", level: observability.LevelError, want: "ERROR"},
		{name: "fatal range", level: 21, want: "FATAL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.level.String(); got != tt.want {
				t.Errorf("Level(%d).String() = %q, want %q", tt.level, got, tt.want)
			}
		})
	}
}

func TestLevel_SlogLevel(t *testing.T) {
	tests := []struct {
		name  string
		level observability.Level
		want  slog.Level
	}{
		{name: "verbose maps to Debug", level: observability.LevelVerbose, want: slog.LevelDebug},
		{name: "info maps to Info", level: observability.LevelInfo, want: slog.LevelInfo},
		{name: "warning maps to Warn", level: observability.LevelWarning, want: slog.LevelWarn},
		{name: "error maps to Error", level: observability.LevelError, want: slog.LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.level.SlogLevel(); got != tt.want {
				t.Errorf("Level(%d).SlogLevel() = %v, want %v", tt.level, got, tt.want)
			}
		})
	}
}

func TestNewEvent(t *testing.T) {
	before := time.Now()
	event := observability.NewEvent("bridge.exit", observability.LevelWarning, "bridge.Actor", map[string]any{"error": "boom"})

	if event.Type != "bridge.exit" {
		t.Errorf("Type = %q, want %q", event.Type, "bridge.exit")
	}
	if event.Level != observability.LevelWarning {
		t.Errorf("Level = %v, want %v", event.Level, observability.LevelWarning)
	}
	if event.Timestamp.Before(before) {
		t.Errorf("Timestamp %v precedes creation time %v", event.Timestamp, before)
	}
	if event.Data["error"] != "boom" {
		t.Errorf("Data[error] = %v, want %q", event.Data["error"], "boom")
	}
}

func TestSlogObserver_With(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	obs := observability.NewSlogObserver(logger).With("node", "earth")
	obs.OnEvent(context.Background(), observability.NewEvent("host.start", observability.LevelInfo, "host.Start", nil))

	if !strings.Contains(buf.String(), "node=earth") {
		t.Errorf("expected node attribute, got: %s", buf.String())
	}
}

func TestRegistry_Resolve(t *testing.T) {
	obs, err := observability.Resolve("")
	if err != nil {
		t.Fatalf("Resolve(\"\") error = %v", err)
	}
	if _, ok := obs.(*observability.SlogObserver); !ok {
		t.Errorf("Resolve(\"\") = %T, want *SlogObserver", obs)
	}

	if _, err := observability.Resolve("missing"); err == nil {
		t.Error("Resolve(missing) should fail")
	}
	if _, err := observability.Resolve("noop, missing"); err == nil {
		t.Error("Resolve with one unknown name should fail")
	}
}

func TestRegistry_ResolveList(t *testing.T) {
	var audit []observability.Event
	observability.RegisterObserver("audit", &captureObserver{events: &audit})

	obs, err := observability.Resolve("noop, audit")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if _, ok := obs.(*observability.MultiObserver); !ok {
		t.Fatalf("Resolve() = %T, want *MultiObserver", obs)
	}

	obs.OnEvent(context.Background(), observability.NewEvent("point.create", observability.LevelInfo, "point.service", nil))
	if len(audit) != 1 {
		t.Errorf("audit received %d events, want 1", len(audit))
	}
}

func TestMultiObserver(t *testing.T) {
	var events1, events2 []observability.Event

	obs1 := &captureObserver{events: &events1}
	obs2 := &captureObserver{events: &events2}

	multi := observability.NewMultiObserver(obs1, nil, obs2)
	multi.OnEvent(context.Background(), observability.NewEvent("chain.forward", observability.LevelVerbose, "greeter.Chain", nil))

	if len(events1) != 1 {
		t.Errorf("observer 1 received %d events, want 1", len(events1))
	}
	if len(events2) != 1 {
		t.Errorf("observer 2 received %d events, want 1", len(events2))
	}
	if events1[0].Type != "chain.forward" {
		t.Errorf("observer 1 event type = %q, want %q", events1[0].Type, "chain.forward")
	}
}

func TestSlogObserver_LevelMapping(t *testing.T) {
	tests := []struct {
		name      string
		level     observability.Level
		minLevel  slog.Level
		expectLog bool
	}{
		{name: "verbose at debug handler", level: observability.LevelVerbose, minLevel: slog.LevelDebug, expectLog: true},
		{name: "verbose at info handler", level: observability.LevelVerbose, minLevel: slog.LevelInfo, expectLog: false},
		{name: "info at info handler", level: observability.LevelInfo, minLevel: slog.LevelInfo, expectLog: true},
		{name: "info at warn handler", level: observability.LevelInfo, minLevel: slog.LevelWarn, expectLog: false},
		{name: "warning at warn handler", level: observability.LevelWarning, minLevel: slog.LevelWarn, expectLog: true},
		{name: "error at error handler", level: observability.LevelError, minLevel: slog.LevelError, expectLog: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
				Level: tt.minLevel,
			}))

			obs := observability.NewSlogObserver(logger)
			obs.OnEvent(context.Background(), observability.NewEvent("host.stopped", tt.level, "host.supervise", nil))

			hasOutput := buf.Len() > 0
			if hasOutput != tt.expectLog {
				t.Errorf("log output = %v, want %v (buf: %q)", hasOutput, tt.expectLog, buf.String())
			}
		})
	}
}

func TestSlogObserver_EventTypeAsMessage(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	obs := observability.NewSlogObserver(logger)
	obs.OnEvent(context.Background(), observability.Event{
		Type:      "host.start",
		Level:     observability.LevelInfo,
		Timestamp: time.Now(),
		Source:    "host.Start",
		Data: map[string]any{
			"addr": "127.0.0.1:50051",
		},
	})

	output := buf.String()
	if !strings.Contains(output, "host.start") {
		t.Errorf("expected event type as log message, got: %s", output)
	}
	if !strings.Contains(output, "source=host.Start") {
		t.Errorf("expected source attribute, got: %s", output)
	}
	if !strings.Contains(output, "addr=127.0.0.1:50051") {
		t.Errorf("expected data attributes, got: %s", output)
	}
}

func TestRegistry_GetObserver(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr bool
	}{
		{name: "noop exists", key: "noop", wantErr: false},
		{name: "slog exists", key: "slog", wantErr: false},
		{name: "unknown fails", key: "nonexistent", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs, err := observability.GetObserver(tt.key)
			if (err != nil) != tt.wantErr {
				t.Errorf("GetObserver(%q) error = %v, wantErr %v", tt.key, err, tt.wantErr)
			}
			if !tt.wantErr && obs == nil {
				t.Errorf("GetObserver(%q) returned nil observer", tt.key)
			}
		})
	}
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	var events []observability.Event
	custom := &captureObserver{events: &events}

	observability.RegisterObserver("capture", custom)

	obs, err := observability.GetObserver("capture")
	if err != nil {
		t.Fatalf("GetObserver failed: %v", err)
	}

	obs.OnEvent(context.Background(), observability.NewEvent("rpc.call.complete", observability.LevelInfo, "interceptor.Logging", nil))

	if len(events) != 1 {
		t.Errorf("received %d events, want 1", len(events))
	}
}

type captureObserver struct {
	events *[]observability.Event
}

func (c *captureObserver) OnEvent(ctx context.Context, event observability.Event) {
	*c.events = append(*c.events, event)
}
