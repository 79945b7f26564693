package node

import "errors"

var (
	// ErrUnknownRole is returned for a role outside store, earth, and engine.
	ErrUnknownRole = errors.New("unknown node role")

	// ErrMissingDownstream is returned when an engine has no downstream
	// address.
	ErrMissingDownstream = errors.New("engine requires a downstream address")

	// ErrAlreadyStarted is returned by a second Start.
	ErrAlreadyStarted = errors.New("node already started")
)
