// Command store serves the keyed point store until it receives SIGINT or SIGTERM.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/tailored-agentic-units/relay/node"
	"github.com/tailored-agentic-units/relay/observability"
)

func main() {
	var (
		configFile = flag.String("config", "", "Path to node config file, YAML or JSON (optional)")
		listen     = flag.String("listen", "", "Listen address (overrides config)")
		metricsOn  = flag.Bool("metrics", false, "Serve Prometheus metrics (overrides config)")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging to stderr")
	)
	flag.Parse()

	cfg := node.DefaultConfig(node.RoleStore)
	if *configFile != "" {
		loaded, err := node.LoadConfig(*configFile, node.RoleStore)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = *loaded
	}

	if *listen != "" {
		cfg.Listen = *listen
	}
	if *metricsOn {
		cfg.Metrics.Enabled = true
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	observability.RegisterObserver("slog", observability.NewSlogObserver(logger))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-signals
		logger.Info("shutting down", "signal", sig.String())
		cancel()
	}()

	if err := node.Run(ctx, &cfg); err != nil {
		log.Fatalf("store node failed: %v", err)
	}
}
