package greeter

import "errors"

var (
	// ErrDownstream wraps a failed forward under the strict policy.
	ErrDownstream = errors.New("downstream greeter failed")

	// ErrUnknownPolicy is returned by Config.Validate for an unrecognized
	// forward policy.
	ErrUnknownPolicy = errors.New("unknown forward policy")
)
