// Package config loads gitlab-mcp configuration from TOML files with
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/TeslaLord/Gitlab-MCP/internal/common"
)

// Config represents the application configuration.
type Config struct {
	Server  ServerConfig         `toml:"server"`
	GitLab  GitLabConfig         `toml:"gitlab"`
	Logging common.LoggingConfig `toml:"logging"`
}

// ServerConfig contains MCP server settings.
type ServerConfig struct {
	Name string `toml:"name"`
	Port string `toml:"port"`
}

// GitLabConfig contains GitLab API settings. Token is resolved at load time
// and held read-only for the process lifetime.
type GitLabConfig struct {
	URL     string `toml:"url"`
	Token   string `toml:"token"`
	Timeout string `toml:"timeout"`
}

// GetTimeout parses and returns the request timeout duration.
func (c *GitLabConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// Load loads configuration with priority: defaults -> file -> env.
// A missing config file is not an error; defaults plus environment apply.
func Load(path string) (*Config, error) {
	config := NewDefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
			}
		} else {
			if err := toml.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config.
func applyEnvOverrides(config *Config) {
	if token := os.Getenv("GITLAB_TOKEN"); token != "" {
		config.GitLab.Token = token
	}
	if url := os.Getenv("GITLAB_URL"); url != "" {
		config.GitLab.URL = url
	}
	if port := os.Getenv("GITLAB_MCP_PORT"); port != "" {
		config.Server.Port = port
	}
	if level := os.Getenv("GITLAB_MCP_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
}
