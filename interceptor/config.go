package interceptor

import (
	"time"

	"github.com/tailored-agentic-units/relay/core/config"
)

// RateLimitConfig sets the per-peer token bucket applied to inbound calls.
type RateLimitConfig struct {
	Enabled bool            `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	RPS     float64         `json:"rps,omitempty" yaml:"rps,omitempty"`
	Burst   int             `json:"burst,omitempty" yaml:"burst,omitempty"`
	IdleTTL config.Duration `json:"idle_ttl,omitempty" yaml:"idle_ttl,omitempty"`
}

// DefaultRateLimitConfig returns a disabled limiter with usable rates.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		RPS:     100,
		Burst:   50,
		IdleTTL: config.Duration(10 * time.Minute),
	}
}

// Merge applies non-zero values from source into c. Enabled is sticky: a
// source can switch the limiter on but not off.
func (c *RateLimitConfig) Merge(source *RateLimitConfig) {
	if source.Enabled {
		c.Enabled = true
	}
	if source.RPS > 0 {
		c.RPS = source.RPS
	}
	if source.Burst > 0 {
		c.Burst = source.Burst
	}
	if source.IdleTTL > 0 {
		c.IdleTTL = source.IdleTTL
	}
}
