package point

import (
	"errors"
	"fmt"
)

// ErrNotFound matches any *NotFoundError via errors.Is.
var ErrNotFound = errors.New("point not found")

// NotFoundError reports a Read or Update against an absent ID.
type NotFoundError struct {
	ID ID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("point with id %d not found", e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
