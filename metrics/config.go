package metrics

// DefaultPath is where the exposition handler is mounted.
const DefaultPath = "/metrics"

// Config controls call metrics and the exposition endpoint.
type Config struct {
	Enabled bool   `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	Path    string `json:"path,omitempty" yaml:"path,omitempty"`
}

// DefaultConfig returns metrics disabled at DefaultPath.
func DefaultConfig() Config {
	return Config{Path: DefaultPath}
}

// Merge applies non-zero values from source into c. Enabled can only be
// switched on.
func (c *Config) Merge(source *Config) {
	if source.Enabled {
		c.Enabled = true
	}
	if source.Path != "" {
		c.Path = source.Path
	}
}
