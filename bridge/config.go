package bridge

import (
	"context"

	"github.com/tailored-agentic-units/relay/core/config"
	"github.com/tailored-agentic-units/relay/transport"
)

// Config holds the parameters shared by the store and greeter bridges.
type Config struct {
	Transport transport.Config `json:"transport" yaml:"transport"`

	// CallTimeout bounds each call. Zero waits indefinitely.
	CallTimeout config.Duration `json:"call_timeout,omitempty" yaml:"call_timeout,omitempty"`
}

// DefaultConfig returns the default bridge configuration.
func DefaultConfig() Config {
	return Config{
		Transport: transport.DefaultConfig(),
	}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	c.Transport.Merge(&source.Transport)

	if source.CallTimeout > 0 {
		c.CallTimeout = source.CallTimeout
	}
}

func (c *Config) callContext() (context.Context, context.CancelFunc) {
	if c.CallTimeout > 0 {
		return context.WithTimeout(context.Background(), c.CallTimeout.Std())
	}
	return context.WithCancel(context.Background())
}
