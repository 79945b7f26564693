// Package point implements the keyed point store: an in-memory map from
// random 64-bit identifiers to two-dimensional points, the connect service
// that exposes it, and a client for reaching a remote store.
package point

import (
	"context"

	pointpb "github.com/tailored-agentic-units/relay/gen/point"
)

// ID identifies a stored point.
type ID uint64

// Point is the stored value. Updates replace it wholesale.
type Point struct {
	X float64
	Y float64
}

func (p Point) toWire() *pointpb.Point {
	return &pointpb.Point{X: p.X, Y: p.Y}
}

func fromWire(p *pointpb.Point) Point {
	return Point{X: p.GetX(), Y: p.GetY()}
}

// Store is the CRUD contract shared by the in-memory store and the remote
// client. Implementations must be safe for concurrent use.
type Store interface {
	// Create inserts p under a freshly generated ID.
	Create(ctx context.Context, p Point) (ID, error)
	// Read returns the point stored under id or a *NotFoundError.
	Read(ctx context.Context, id ID) (Point, error)
	// Update replaces the point stored under id or returns a *NotFoundError.
	Update(ctx context.Context, id ID, p Point) error
	// Delete removes id. Missing IDs are ignored.
	Delete(ctx context.Context, id ID) error
	// Len reports the number of stored points, or -1 when unknown.
	Len() int
}
