package observability

import (
	"context"
	"log/slog"
)

// SlogObserver emits events to a slog.Logger. The event level is mapped via
// SlogLevel and Data keys become top-level attributes.
type SlogObserver struct {
	logger *slog.Logger
}

// NewSlogObserver creates a SlogObserver that emits to the given logger. A
// nil logger falls back to slog.Default.
func NewSlogObserver(logger *slog.Logger) *SlogObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogObserver{logger: logger}
}

// With returns an observer whose records carry the given attributes, such as
// the node name.
func (o *SlogObserver) With(args ...any) *SlogObserver {
	return &SlogObserver{logger: o.logger.With(args...)}
}

func (o *SlogObserver) OnEvent(ctx context.Context, event Event) {
	attrs := make([]slog.Attr, 0, len(event.Data)+1)
	attrs = append(attrs, slog.String("source", event.Source))
	for k, v := range event.Data {
		attrs = append(attrs, slog.Any(k, v))
	}

	o.logger.LogAttrs(ctx, event.Level.SlogLevel(), string(event.Type), attrs...)
}
