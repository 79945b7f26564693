package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/tailored-agentic-units/relay/bridge"
	"github.com/tailored-agentic-units/relay/point"
)

const updates = 10

// runPoints runs the update scenario once per bridge, concurrently.
func runPoints(ctx context.Context, address string, bridges int, cfg *bridge.Config, opts []bridge.ConnectOption, logger *slog.Logger) error {
	if bridges < 1 {
		bridges = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	for i := range bridges {
		g.Go(func() error {
			store := bridge.ConnectStore(ctx, address, cfg, opts...)
			defer store.Close()

			final, err := scenario(store, float64(i))
			if err != nil {
				return fmt.Errorf("bridge %d: %w", i, err)
			}
			logger.Info("scenario complete", "bridge", i, "x", final.X, "y", final.Y)
			return nil
		})
	}
	return g.Wait()
}

// scenario creates a point, moves it by (1, 2) per step while reading each
// step back, then deletes it and confirms it is gone.
func scenario(store *bridge.Store, offset float64) (point.Point, error) {
	current := point.Point{X: offset, Y: offset}

	id, err := store.Create(current)
	if err != nil {
		return point.Point{}, fmt.Errorf("create: %w", err)
	}
	fmt.Printf("created point %d at (%g, %g)\n", id, current.X, current.Y)

	for step := range updates {
		current = point.Point{X: current.X + 1, Y: current.Y + 2}
		if err := store.Update(id, current); err != nil {
			return point.Point{}, fmt.Errorf("update %d: %w", step, err)
		}

		got, err := store.Read(id)
		if err != nil {
			return point.Point{}, fmt.Errorf("read %d: %w", step, err)
		}
		if got != current {
			return point.Point{}, fmt.Errorf("read %d: got %+v, want %+v", step, got, current)
		}
		fmt.Printf("point %d at (%g, %g)\n", id, got.X, got.Y)
	}

	if err := store.Delete(id); err != nil {
		return point.Point{}, fmt.Errorf("delete: %w", err)
	}
	if _, err := store.Read(id); !errors.Is(err, point.ErrNotFound) {
		return point.Point{}, fmt.Errorf("read after delete: got %v, want not found", err)
	}

	return current, nil
}
