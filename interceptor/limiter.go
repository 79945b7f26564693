package interceptor

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const evictEvery = 512

// peerLimiter keeps one token bucket per peer and drops buckets that have
// been idle longer than idleTTL.
type peerLimiter struct {
	limit   rate.Limit
	burst   int
	idleTTL time.Duration

	mu     sync.Mutex
	byPeer map[string]*bucket
	hits   uint64
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newPeerLimiter(cfg *RateLimitConfig) *peerLimiter {
	idleTTL := cfg.IdleTTL.Std()
	if idleTTL <= 0 {
		idleTTL = 10 * time.Minute
	}
	return &peerLimiter{
		limit:   rate.Limit(cfg.RPS),
		burst:   cfg.Burst,
		idleTTL: idleTTL,
		byPeer:  make(map[string]*bucket),
	}
}

func (l *peerLimiter) allow(peer string, now time.Time) bool {
	if peer == "" {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.byPeer[peer]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.byPeer[peer] = b
	}
	b.lastSeen = now
	allowed := b.limiter.AllowN(now, 1)

	l.hits++
	if l.hits%evictEvery == 0 {
		cutoff := now.Add(-l.idleTTL)
		for k, v := range l.byPeer {
			if v.lastSeen.Before(cutoff) {
				delete(l.byPeer, k)
			}
		}
	}

	return allowed
}

func (l *peerLimiter) peers() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.byPeer)
}
