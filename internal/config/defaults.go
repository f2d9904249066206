package config

import "github.com/TeslaLord/Gitlab-MCP/internal/common"

// NewDefaultConfig creates a configuration with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Name: "gitlab-mcp-server",
			Port: "4280",
		},
		GitLab: GitLabConfig{
			URL:     "https://gitlab.com",
			Timeout: "30s",
		},
		Logging: common.LoggingConfig{
			Level:      "info",
			Outputs:    []string{"console", "file"},
			FilePath:   "logs/gitlab-mcp.log",
			MaxSizeMB:  100,
			MaxBackups: 3,
		},
	}
}
