// Command client drives the topology from plain blocking code through
// bridges. In greet mode it asks the engine for a greeting every interval
// and reconnects after a failure. In points mode it runs the update
// scenario against the store over one or more concurrent bridges.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"

	"github.com/tailored-agentic-units/relay/bridge"
	"github.com/tailored-agentic-units/relay/core/config"
	"github.com/tailored-agentic-units/relay/interceptor"
	"github.com/tailored-agentic-units/relay/node"
	"github.com/tailored-agentic-units/relay/observability"
	"github.com/tailored-agentic-units/relay/transport"
)

func main() {
	var (
		mode        = flag.String("mode", "greet", "greet or points")
		engineAddr  = flag.String("engine", node.DefaultEngineAddress, "Engine address for greet mode")
		storeAddr   = flag.String("store", node.DefaultStoreAddress, "Store address for points mode")
		name        = flag.String("name", "Engine", "Name to greet")
		interval    = flag.Duration("interval", time.Second, "Delay between greetings")
		retryDelay  = flag.Duration("retry", time.Second, "Delay before reconnecting after a failure")
		count       = flag.Int("count", 0, "Greetings to send; 0 runs until interrupted")
		bridges     = flag.Int("bridges", 1, "Concurrent store bridges in points mode")
		callTimeout = flag.Duration("call-timeout", 0, "Per-call timeout; 0 waits indefinitely")
		protocol    = flag.String("protocol", "", "connect, grpc, or grpcweb")
		verbose     = flag.Bool("verbose", false, "Enable verbose logging to stderr")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	observer := observability.NewSlogObserver(logger)

	cfg := bridge.DefaultConfig()
	cfg.Merge(&bridge.Config{
		Transport:   transport.Config{Protocol: *protocol},
		CallTimeout: config.Duration(*callTimeout),
	})

	opts := []bridge.ConnectOption{
		bridge.WithClientOptions(connect.WithInterceptors(interceptor.Logging(observer))),
		bridge.WithActorOptions(bridge.WithObserver(observer)),
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-signals
		cancel()
	}()

	var err error
	switch *mode {
	case "greet":
		g := greetLoop{
			address:  *engineAddr,
			name:     *name,
			interval: *interval,
			retry:    *retryDelay,
			count:    *count,
			cfg:      &cfg,
			opts:     opts,
			logger:   logger,
		}
		err = g.run(ctx)
	case "points":
		err = runPoints(ctx, *storeAddr, *bridges, &cfg, opts, logger)
	default:
		fmt.Fprintln(os.Stderr, "Usage: client -mode greet|points")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err != nil && ctx.Err() == nil {
		log.Fatalf("client failed: %v", err)
	}
}
