// Package interceptor provides connect interceptors shared by every node:
// per-call event logging and per-peer rate limiting.
package interceptor

import (
	"context"
	"errors"
	"net"
	"time"

	"connectrpc.com/connect"

	"github.com/tailored-agentic-units/relay/observability"
)

// Interceptor event types.
const (
	EventCallComplete observability.EventType = "rpc.call.complete"
	EventRateLimited  observability.EventType = "rpc.rate_limited"
)

// ErrRateLimited is the cause attached to CodeResourceExhausted rejections.
var ErrRateLimited = errors.New("rate limit exceeded")

// Logging emits one EventCallComplete per unary call, on both clients and
// handlers. Failed calls are logged at warning level.
func Logging(observer observability.Observer) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			res, err := next(ctx, req)

			level := observability.LevelVerbose
			code := "ok"
			if err != nil {
				level = observability.LevelWarning
				code = connect.CodeOf(err).String()
			}

			side := "server"
			if req.Spec().IsClient {
				side = "client"
			}

			observer.OnEvent(ctx, observability.NewEvent(EventCallComplete, level, "interceptor.Logging", map[string]any{
				"procedure": req.Spec().Procedure,
				"side":      side,
				"peer":      req.Peer().Addr,
				"code":      code,
				"duration":  time.Since(start).String(),
			}))

			return res, err
		}
	}
}

// RateLimit rejects inbound calls from a peer once its bucket is empty.
// Client-side calls pass through untouched.
func RateLimit(cfg *RateLimitConfig, observer observability.Observer) connect.UnaryInterceptorFunc {
	limiter := newPeerLimiter(cfg)

	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if req.Spec().IsClient {
				return next(ctx, req)
			}

			peer := peerHost(req.Peer().Addr)
			if !limiter.allow(peer, time.Now()) {
				observer.OnEvent(ctx, observability.NewEvent(EventRateLimited, observability.LevelWarning, "interceptor.RateLimit", map[string]any{
					"procedure": req.Spec().Procedure,
					"peer":      peer,
				}))
				return nil, connect.NewError(connect.CodeResourceExhausted, ErrRateLimited)
			}
			return next(ctx, req)
		}
	}
}

// peerHost drops the port so every connection from one host shares a bucket.
func peerHost(addr string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return host
}
