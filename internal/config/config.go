// Package config reads the shared local configuration file. The file is
// owned by the account-setup flow; this pipeline only consumes it, and
// its absence is a normal, non-error state.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Defaults for configuration values. These are the single source of
// truth; no other code should duplicate them.
const (
	DefaultBaseURL  = "https://api.craftlens.dev"
	DefaultStateDir = ".craftlens"

	ConfigFileName = "config.yaml"
)

// Config is the shared local configuration consumed by the pipeline.
type Config struct {
	// Enabled gates all analysis. nil means "not configured", which
	// defaults to enabled so a fresh install observes immediately.
	Enabled *bool `yaml:"enabled,omitempty"`

	APIBaseURL string `yaml:"api_base_url,omitempty"`
	APIToken   string `yaml:"api_token,omitempty"`
	AgentID    string `yaml:"agent_id,omitempty"`
}

// DefaultStateDirPath returns the per-user state directory.
func DefaultStateDirPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultStateDir
	}
	return filepath.Join(home, DefaultStateDir)
}

// Load reads the config file from the state directory. A missing file is
// not an error and yields a zero config; only unreadable content fails.
func Load(stateDir string) (*Config, error) {
	path := filepath.Join(stateDir, ConfigFileName)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return &cfg, nil
}

// AnalysisEnabled reports whether the pipeline should run at all.
func (c *Config) AnalysisEnabled() bool {
	if c.Enabled == nil {
		return true
	}
	return *c.Enabled
}

// Authenticated reports whether submission credentials are present.
// Missing credentials are an expected state, not an error.
func (c *Config) Authenticated() bool {
	return c.APIToken != ""
}

// Agent returns the configured agent identity, or "anonymous" before
// account setup completes.
func (c *Config) Agent() string {
	if c.AgentID != "" {
		return c.AgentID
	}
	return "anonymous"
}

// BaseURL returns the configured endpoint or the default.
func (c *Config) BaseURL() string {
	if c.APIBaseURL != "" {
		return c.APIBaseURL
	}
	return DefaultBaseURL
}
