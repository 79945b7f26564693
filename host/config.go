package host

import (
	"time"

	"github.com/tailored-agentic-units/relay/core/config"
)

// Config holds server host parameters.
type Config struct {
	// Name labels events emitted by the host.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// DrainTimeout bounds how long in-flight calls may run after shutdown
	// before connections are force-closed.
	DrainTimeout config.Duration `json:"drain_timeout,omitempty" yaml:"drain_timeout,omitempty"`

	ReadHeaderTimeout config.Duration `json:"read_header_timeout,omitempty" yaml:"read_header_timeout,omitempty"`

	// MaxConns caps concurrent connections; zero means unlimited.
	MaxConns int `json:"max_conns,omitempty" yaml:"max_conns,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Name:              "host",
		DrainTimeout:      config.Duration(5 * time.Second),
		ReadHeaderTimeout: config.Duration(10 * time.Second),
	}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.Name != "" {
		c.Name = source.Name
	}
	if source.DrainTimeout > 0 {
		c.DrainTimeout = source.DrainTimeout
	}
	if source.ReadHeaderTimeout > 0 {
		c.ReadHeaderTimeout = source.ReadHeaderTimeout
	}
	if source.MaxConns > 0 {
		c.MaxConns = source.MaxConns
	}
}
