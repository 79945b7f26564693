package bridge

import (
	"errors"
	"fmt"

	"connectrpc.com/connect"

	"github.com/tailored-agentic-units/relay/point"
)

// ErrInternal is the root of every bridge failure: a dead actor, a closed
// mailbox, a mismatched response, an abandoned call, a lost connection, or
// any remote error other than a missing point.
var ErrInternal = errors.New("bridge internal error")

// connectionLost reports whether err is a client-side transport failure
// rather than an answer from the peer or the caller giving up.
func connectionLost(err error) bool {
	var cerr *connect.Error
	if !errors.As(err, &cerr) || connect.IsWireError(err) {
		return false
	}
	switch cerr.Code() {
	case connect.CodeCanceled, connect.CodeDeadlineExceeded:
		return false
	}
	return true
}

// remoteError passes point.ErrNotFound through and reports every other
// failure as ErrInternal.
func remoteError(op fmt.Stringer, err error) error {
	switch {
	case err == nil, errors.Is(err, point.ErrNotFound), errors.Is(err, ErrInternal):
		return err
	}
	return fmt.Errorf("%w: %s: %w", ErrInternal, op, err)
}
