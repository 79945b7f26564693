package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tailored-agentic-units/relay/bridge"
	"github.com/tailored-agentic-units/relay/greeter"
)

type greetLoop struct {
	address  string
	name     string
	interval time.Duration
	retry    time.Duration
	count    int
	cfg      *bridge.Config
	opts     []bridge.ConnectOption
	logger   *slog.Logger
}

// run connects and greets until ctx ends or count greetings succeed. Any
// failure drops the bridge and reconnects after the retry delay.
func (g *greetLoop) run(ctx context.Context) error {
	sent := 0
	for {
		err := g.session(ctx, &sent)
		if err == nil || ctx.Err() != nil {
			return ctx.Err()
		}

		g.logger.Warn("greeter unavailable, reconnecting", "address", g.address, "error", err, "retry", g.retry)
		if !sleep(ctx, g.retry) {
			return ctx.Err()
		}
	}
}

// session returns nil once count greetings have been sent.
func (g *greetLoop) session(ctx context.Context, sent *int) error {
	engine := bridge.ConnectGreeter(ctx, g.address, greeter.Engine, g.cfg, g.opts...)
	defer engine.Close()

	for g.count == 0 || *sent < g.count {
		reply, err := engine.Hello(g.name)
		if err != nil {
			return err
		}
		*sent++
		fmt.Println(reply)

		if !sleep(ctx, g.interval) {
			return ctx.Err()
		}
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
