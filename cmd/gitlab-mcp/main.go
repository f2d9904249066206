// Command gitlab-mcp exposes the GitLab REST API as MCP tools.
//
// By default it serves the MCP protocol over stdio (for Claude Desktop and
// similar hosts). With -http it serves the streamable HTTP transport on the
// configured port instead.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/TeslaLord/Gitlab-MCP/internal/common"
	"github.com/TeslaLord/Gitlab-MCP/internal/config"
	"github.com/TeslaLord/Gitlab-MCP/internal/gitlab"
	"github.com/TeslaLord/Gitlab-MCP/internal/mcp"
	"github.com/TeslaLord/Gitlab-MCP/internal/server"
)

func main() {
	httpMode := flag.Bool("http", false, "Serve streamable HTTP instead of stdio")
	configFile := flag.String("config", "gitlab-mcp.toml", "Path to config file")
	check := flag.Bool("check", false, "Test the GitLab API connection and exit")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(common.GetFullVersion())
		return
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger := common.NewLoggerFromConfig(cfg.Logging)
	client := gitlab.NewClient(cfg.GitLab, logger)

	if *check {
		os.Exit(runCheck(cfg, client))
	}

	mcpSrv := mcpserver.NewMCPServer(
		cfg.Server.Name,
		common.GetVersion(),
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithResourceCapabilities(false, true),
	)

	toolCount := mcp.RegisterTools(mcpSrv, client, logger)
	mcp.RegisterResources(mcpSrv, client, logger)

	logger.Info().
		Int("tools", toolCount).
		Str("gitlab_url", cfg.GitLab.URL).
		Bool("token_set", client.HasToken()).
		Msg("gitlab-mcp initialized")

	if *httpMode {
		router := server.NewRouter(mcpSrv, logger)
		addr := ":" + cfg.Server.Port
		logger.Info().Str("addr", addr).Msg("starting MCP streamable HTTP")
		if err := http.ListenAndServe(addr, router); err != nil {
			fmt.Fprintf(os.Stderr, "http server error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Stdio transport: reads stdin, writes stdout.
	if err := mcpserver.ServeStdio(mcpSrv); err != nil {
		fmt.Fprintf(os.Stderr, "stdio server error: %v\n", err)
		os.Exit(1)
	}
}

// runCheck performs a direct connection test against GET /api/v4/user,
// bypassing the MCP layer. Prints the outcome and returns the exit code.
func runCheck(cfg *config.Config, client *gitlab.Client) int {
	fmt.Printf("GitLab URL: %s\n", cfg.GitLab.URL)
	if !client.HasToken() {
		fmt.Println("Token set:  no")
		fmt.Println()
		fmt.Println("GITLAB_TOKEN is not set. Export it and retry:")
		fmt.Println("  export GITLAB_TOKEN='your-token-here'")
		return 1
	}
	fmt.Printf("Token set:  yes (%s...)\n", tokenPreview(cfg.GitLab.Token))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	body, err := client.Get(ctx, "user", nil)
	if err != nil {
		fmt.Printf("Connection FAILED: %v\n", err)
		return 1
	}

	var user struct {
		Username string `json:"username"`
		Name     string `json:"name"`
	}
	if err := json.Unmarshal(body, &user); err != nil {
		fmt.Printf("Connection FAILED: unexpected response: %v\n", err)
		return 1
	}

	fmt.Printf("Connected as %s (%s)\n", user.Username, user.Name)
	return 0
}

// tokenPreview returns the first few characters of the token. The full
// token is never printed or logged.
func tokenPreview(token string) string {
	if len(token) <= 4 {
		return "****"
	}
	return token[:4]
}
