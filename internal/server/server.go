// Package server provides the HTTP transport for gitlab-mcp: a chi router
// exposing the streamable MCP endpoint plus a health check. The stdio
// transport bypasses this package entirely.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/TeslaLord/Gitlab-MCP/internal/common"
)

// NewRouter builds the HTTP router: /health for liveness, /mcp for the
// streamable MCP endpoint.
func NewRouter(mcpSrv *mcpserver.MCPServer, logger *common.Logger) http.Handler {
	streamable := mcpserver.NewStreamableHTTPServer(mcpSrv,
		mcpserver.WithStateLess(true),
	)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", handleHealth)
	r.Handle("/mcp", streamable)

	logger.Info().Msg("HTTP router initialized")

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"version": common.GetVersion(),
	})
}
