package transport

import (
	"time"

	"github.com/tailored-agentic-units/relay/core/config"
)

// Wire protocols understood by connect clients.
const (
	ProtocolConnect = "connect"
	ProtocolGRPC    = "grpc"
	ProtocolGRPCWeb = "grpcweb"
)

// Config holds client transport parameters.
type Config struct {
	Protocol    string          `json:"protocol,omitempty" yaml:"protocol,omitempty"`
	DialTimeout config.Duration `json:"dial_timeout,omitempty" yaml:"dial_timeout,omitempty"`
}

// DefaultConfig returns the default transport configuration.
func DefaultConfig() Config {
	return Config{
		Protocol:    ProtocolConnect,
		DialTimeout: config.Duration(5 * time.Second),
	}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.Protocol != "" {
		c.Protocol = source.Protocol
	}
	if source.DialTimeout > 0 {
		c.DialTimeout = source.DialTimeout
	}
}
