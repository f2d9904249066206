package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	if cfg.GitLab.URL != "https://gitlab.com" {
		t.Errorf("expected default GitLab URL https://gitlab.com, got %s", cfg.GitLab.URL)
	}
	if cfg.GitLab.Token != "" {
		t.Errorf("expected empty default token, got %q", cfg.GitLab.Token)
	}
	if cfg.Server.Name != "gitlab-mcp-server" {
		t.Errorf("expected server name gitlab-mcp-server, got %s", cfg.Server.Name)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected default log level info, got %s", cfg.Logging.Level)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error for missing file: %v", err)
	}
	if cfg.GitLab.URL != "https://gitlab.com" {
		t.Errorf("expected defaults for missing file, got URL %s", cfg.GitLab.URL)
	}
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gitlab-mcp.toml")
	content := `
[server]
name = "my-mcp"
port = "9000"

[gitlab]
url = "https://gitlab.example.com"
token = "file-token"
timeout = "10s"

[logging]
level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Server.Name != "my-mcp" {
		t.Errorf("expected server name my-mcp, got %s", cfg.Server.Name)
	}
	if cfg.GitLab.URL != "https://gitlab.example.com" {
		t.Errorf("expected file URL, got %s", cfg.GitLab.URL)
	}
	if cfg.GitLab.Token != "file-token" {
		t.Errorf("expected file token, got %s", cfg.GitLab.Token)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected debug level, got %s", cfg.Logging.Level)
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.toml")
	if err := os.WriteFile(path, []byte("not [valid toml"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid TOML, got nil")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("GITLAB_TOKEN", "env-token")
	t.Setenv("GITLAB_URL", "https://gitlab.internal")
	t.Setenv("GITLAB_MCP_PORT", "5000")
	t.Setenv("GITLAB_MCP_LOG_LEVEL", "warn")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.GitLab.Token != "env-token" {
		t.Errorf("expected env token, got %s", cfg.GitLab.Token)
	}
	if cfg.GitLab.URL != "https://gitlab.internal" {
		t.Errorf("expected env URL, got %s", cfg.GitLab.URL)
	}
	if cfg.Server.Port != "5000" {
		t.Errorf("expected env port, got %s", cfg.Server.Port)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected env log level, got %s", cfg.Logging.Level)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gitlab-mcp.toml")
	content := `
[gitlab]
token = "file-token"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	t.Setenv("GITLAB_TOKEN", "env-token")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.GitLab.Token != "env-token" {
		t.Errorf("env should override file, got %s", cfg.GitLab.Token)
	}
}

func TestGetTimeout(t *testing.T) {
	c := GitLabConfig{Timeout: "5s"}
	if got := c.GetTimeout(); got != 5*time.Second {
		t.Errorf("expected 5s, got %v", got)
	}

	c = GitLabConfig{Timeout: "garbage"}
	if got := c.GetTimeout(); got != 30*time.Second {
		t.Errorf("expected 30s fallback for invalid duration, got %v", got)
	}

	c = GitLabConfig{}
	if got := c.GetTimeout(); got != 30*time.Second {
		t.Errorf("expected 30s fallback for empty duration, got %v", got)
	}
}
