// Package greeter implements the Hello services: a leaf that answers
// directly and a chain that forwards one call downstream before answering.
package greeter

import (
	"context"
	"fmt"
)

// Greeter answers a Hello call with a greeting for name.
type Greeter interface {
	Hello(ctx context.Context, name string) (string, error)
}

// Reply formats the greeting every node returns.
func Reply(name string) string {
	return fmt.Sprintf("Hello %s!", name)
}

// Leaf greets without contacting anyone else.
type Leaf struct{}

var _ Greeter = Leaf{}

func (Leaf) Hello(_ context.Context, name string) (string, error) {
	return Reply(name), nil
}
