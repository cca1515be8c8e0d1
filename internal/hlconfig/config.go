// Package hlconfig handles configuration loading from an optional TOML
// file and environment variable overrides.
package hlconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure. Every field is optional;
// an absent config file loads a zero Config with no error.
type Config struct {
	UsageLogPath    string    `toml:"usage_log_path"`
	DisableUsageLog bool      `toml:"disable_usage_log"`
	MCP             MCPConfig `toml:"mcp"`
}

// MCPConfig holds settings for the hashline-mcp server.
type MCPConfig struct {
	// ToolPrefix is prepended to the tool names the server registers
	// (e.g. "hashline_read" becomes "<prefix>hashline_read"), for
	// deployments that proxy several MCP servers behind one namespace.
	ToolPrefix string `toml:"tool_prefix"`
}

// Load reads configuration from path. A missing file is not an error and
// yields a zero Config; a present-but-unparseable file is. Environment
// variables, when set, override the corresponding file value.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to stat config: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate returns an error if the configuration is invalid.
func (c *Config) Validate() error {
	var errs []error

	if c.MCP.ToolPrefix != "" {
		for _, r := range c.MCP.ToolPrefix {
			if !(r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')) {
				errs = append(errs, fmt.Errorf("mcp.tool_prefix=%q: must contain only letters, digits and underscores", c.MCP.ToolPrefix))
				break
			}
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides to the
// configuration. These are the same two variables internal/usagelog
// reads directly and independently — usagelog never imports this
// package, so a command can still log usage even if config loading
// itself failed; Load mirrors the same two names here only so a caller
// that merges Config into its own reporting sees a consistent picture.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HASHLINE_USAGE_LOG"); v != "" {
		cfg.UsageLogPath = v
	}
	if _, disabled := os.LookupEnv("HASHLINE_DISABLE_USAGE_LOG"); disabled {
		cfg.DisableUsageLog = true
	}
}

// DataDir returns the path to the hashline config directory
// (~/.config/hashline, or $XDG_CONFIG_HOME/hashline if set).
func DataDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "hashline"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "hashline"), nil
}

// EnsureDataDir creates the data directory if it doesn't exist.
func EnsureDataDir() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", err
	}
	return dir, nil
}

// DefaultPath returns the default config file path (DataDir/config.toml).
func DefaultPath() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}
