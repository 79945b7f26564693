package node

import (
	"fmt"

	"github.com/tailored-agentic-units/relay/core/config"
	"github.com/tailored-agentic-units/relay/greeter"
	"github.com/tailored-agentic-units/relay/host"
	"github.com/tailored-agentic-units/relay/interceptor"
	"github.com/tailored-agentic-units/relay/metrics"
	"github.com/tailored-agentic-units/relay/transport"
)

// Role selects which service a node serves.
type Role string

const (
	RoleStore  Role = "store"
	RoleEarth  Role = "earth"
	RoleEngine Role = "engine"
)

// Default addresses, one port per role.
const (
	DefaultEarthAddress  = "[::1]:50051"
	DefaultStoreAddress  = "[::1]:50052"
	DefaultEngineAddress = "[::1]:50053"
)

// Config holds initialization parameters for every node subsystem. Each
// section delegates to that subsystem's own Config.
type Config struct {
	Name       string `json:"name,omitempty" yaml:"name,omitempty"`
	Role       Role   `json:"role,omitempty" yaml:"role,omitempty"`
	Listen     string `json:"listen,omitempty" yaml:"listen,omitempty"`
	Downstream string `json:"downstream,omitempty" yaml:"downstream,omitempty"`

	// Observer names an entry in the observability registry.
	Observer string `json:"observer,omitempty" yaml:"observer,omitempty"`

	Host      host.Config                 `json:"host" yaml:"host"`
	Transport transport.Config            `json:"transport" yaml:"transport"`
	Greeter   greeter.Config              `json:"greeter" yaml:"greeter"`
	RateLimit interceptor.RateLimitConfig `json:"rate_limit" yaml:"rate_limit"`
	Metrics   metrics.Config              `json:"metrics" yaml:"metrics"`
}

// DefaultConfig returns defaults for role, including its listen address
// and, for an engine, the earth address as downstream.
func DefaultConfig(role Role) Config {
	cfg := Config{
		Name:      string(role),
		Role:      role,
		Observer:  "slog",
		Host:      host.DefaultConfig(),
		Transport: transport.DefaultConfig(),
		Greeter:   greeter.DefaultConfig(),
		RateLimit: interceptor.DefaultRateLimitConfig(),
		Metrics:   metrics.DefaultConfig(),
	}

	switch role {
	case RoleStore:
		cfg.Listen = DefaultStoreAddress
	case RoleEarth:
		cfg.Listen = DefaultEarthAddress
	case RoleEngine:
		cfg.Listen = DefaultEngineAddress
		cfg.Downstream = DefaultEarthAddress
	}

	return cfg
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.Name != "" {
		c.Name = source.Name
	}
	if source.Role != "" {
		c.Role = source.Role
	}
	if source.Listen != "" {
		c.Listen = source.Listen
	}
	if source.Downstream != "" {
		c.Downstream = source.Downstream
	}
	if source.Observer != "" {
		c.Observer = source.Observer
	}

	c.Host.Merge(&source.Host)
	c.Transport.Merge(&source.Transport)
	c.Greeter.Merge(&source.Greeter)
	c.RateLimit.Merge(&source.RateLimit)
	c.Metrics.Merge(&source.Metrics)
}

// Validate checks the role and the role-specific fields.
func (c *Config) Validate() error {
	switch c.Role {
	case RoleStore, RoleEarth:
	case RoleEngine:
		if c.Downstream == "" {
			return ErrMissingDownstream
		}
		if err := c.Greeter.Validate(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownRole, c.Role)
	}
	return nil
}

// LoadConfig reads a YAML or JSON file, merges it over the defaults for the
// role it names, and validates the result. fallback is used when the file
// does not set a role.
func LoadConfig(filename string, fallback Role) (*Config, error) {
	var loaded Config
	if err := config.Load(filename, &loaded); err != nil {
		return nil, err
	}

	role := loaded.Role
	if role == "" {
		role = fallback
	}

	cfg := DefaultConfig(role)
	cfg.Merge(&loaded)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", filename, err)
	}
	return &cfg, nil
}
