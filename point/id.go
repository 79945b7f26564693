package point

import (
	"encoding/binary"

	"github.com/google/uuid"
)

// IDGenerator draws a candidate identifier.
type IDGenerator func() ID

// RandomID takes the high 64 bits of a random (version 4) UUID.
func RandomID() ID {
	u := uuid.New()
	return ID(binary.BigEndian.Uint64(u[:8]))
}
