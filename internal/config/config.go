package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (AGENTGATE_*). A missing file is not
// an error; defaults apply.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// AGENTGATE_SERVER_PORT -> server.port, etc.
	if err := k.Load(env.Provider("AGENTGATE_", ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// envKey maps an environment variable to a config key. Only the first
// underscore after a known section name is a path separator; the rest
// of the key may itself contain underscores (pending_ttl_days), and
// top-level keys like data_dir have no section at all.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, "AGENTGATE_"))
	parts := strings.SplitN(s, "_", 2)
	if len(parts) == 2 {
		switch parts[0] {
		case "agent", "server", "trading", "logging":
			return parts[0] + "." + parts[1]
		}
	}
	return s
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// validModes is the set of recognized execution modes.
var validModes = map[ExecutionMode]bool{
	ModeFullyAutomated:   true,
	ModeApprovalRequired: true,
	ModeAdvisoryOnly:     true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Agent.Name == "" {
		return fmt.Errorf("agent.name is required")
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.RateLimit < 0 {
		return fmt.Errorf("server.rate_limit must be non-negative")
	}
	if c.Server.TimeoutSeconds <= 0 {
		return fmt.Errorf("server.timeout_seconds must be positive")
	}

	if c.Trading.ExecutionMode != "" && !validModes[c.Trading.ExecutionMode] {
		return fmt.Errorf("invalid trading.execution_mode %q: must be one of fully_automated, approval_required, advisory_only", c.Trading.ExecutionMode)
	}
	if c.Trading.PendingTTLDays <= 0 {
		return fmt.Errorf("trading.pending_ttl_days must be positive")
	}

	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}

	return nil
}
