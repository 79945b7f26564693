package greeter

import "fmt"

// ForwardPolicy decides what a Chain does when its downstream call fails.
type ForwardPolicy string

const (
	// PolicyBestEffort logs the failure and still replies.
	PolicyBestEffort ForwardPolicy = "best-effort"
	// PolicyStrict fails the inbound call with CodeUnavailable.
	PolicyStrict ForwardPolicy = "strict"
)

// DefaultForwardName is the name a Chain sends downstream.
const DefaultForwardName = "Forwarding 'Hello' Message"

// Config holds Chain parameters.
type Config struct {
	ForwardName string        `json:"forward_name,omitempty" yaml:"forward_name,omitempty"`
	Policy      ForwardPolicy `json:"policy,omitempty" yaml:"policy,omitempty"`
}

// DefaultConfig returns the default chain configuration.
func DefaultConfig() Config {
	return Config{
		ForwardName: DefaultForwardName,
		Policy:      PolicyBestEffort,
	}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.ForwardName != "" {
		c.ForwardName = source.ForwardName
	}
	if source.Policy != "" {
		c.Policy = source.Policy
	}
}

// Validate rejects unknown policies.
func (c *Config) Validate() error {
	switch c.Policy {
	case PolicyBestEffort, PolicyStrict:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownPolicy, c.Policy)
	}
}
