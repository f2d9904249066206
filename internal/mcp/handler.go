package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/TeslaLord/Gitlab-MCP/internal/common"
	"github.com/TeslaLord/Gitlab-MCP/internal/gitlab"
)

// textResult builds a successful text content result.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}

// errorResult builds an error content result. Caller mistakes and upstream
// failures are returned this way so the hosting protocol always receives a
// well-formed reply.
func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(message),
		},
		IsError: true,
	}
}

// RegisterTools registers every catalog tool on the MCP server, each wired
// to the generic handler. Returns the number of tools registered.
func RegisterTools(s *server.MCPServer, client *gitlab.Client, logger *common.Logger) int {
	catalog := Catalog()
	for _, t := range catalog {
		s.AddTool(BuildMCPTool(t), ToolHandler(client, logger, t))
	}
	return len(catalog)
}

// ToolHandler creates a handler that maps an MCP tool call onto one GitLab
// API request based on a catalog entry. Every failure (missing argument,
// upstream HTTP error, transport error) becomes an error content result;
// the handler never returns a Go error for a caller mistake.
func ToolHandler(client *gitlab.Client, logger *common.Logger, t Tool) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		log := logger.WithCorrelationId(uuid.NewString())
		args := r.GetArguments()
		if args == nil {
			args = map[string]interface{}{}
		}

		if err := ValidateArgs(t, args); err != nil {
			log.Warn().Str("tool", t.Name).Str("error", err.Error()).Msg("invalid tool call")
			return errorResult(fmt.Sprintf("Error: %v", err)), nil
		}

		path := t.Path
		query := url.Values{}
		for k, v := range t.FixedQuery {
			query.Set(k, v)
		}
		body := map[string]interface{}{}

		for _, p := range t.Params {
			switch p.In {
			case "path":
				// Required already enforced by ValidateArgs; identifiers may
				// contain '/' so each is escaped as a single segment.
				path = strings.ReplaceAll(path, "{"+p.Name+"}", url.PathEscape(stringValue(args, p)))
			case "query":
				if v := stringValue(args, p); v != "" {
					query.Set(p.Name, v)
				}
			case "body":
				if v, ok := args[p.Name]; ok && v != nil {
					body[p.Name] = v
				}
			}
		}

		log.Debug().Str("tool", t.Name).Str("method", t.Method).Str("path", path).Msg("tool call")

		respBody, err := client.Do(ctx, t.Method, path, query, bodyOrNil(body))
		if err != nil {
			log.Warn().Str("tool", t.Name).Str("error", err.Error()).Msg("tool call failed")
			return errorResult(fmt.Sprintf("Error: %v", err)), nil
		}

		return textResult(prettyJSON(respBody)), nil
	}
}

// stringValue extracts a parameter as a string, applying the catalog default
// when the argument is absent or empty. JSON numbers arrive as float64 and
// are rendered without a trailing ".0" for whole values.
func stringValue(args map[string]interface{}, p Param) string {
	v, ok := args[p.Name]
	if !ok || v == nil {
		return p.Default
	}
	switch val := v.(type) {
	case string:
		if val == "" {
			return p.Default
		}
		return val
	case float64:
		if val == float64(int64(val)) {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}

// bodyOrNil returns nil if the body map is empty, otherwise returns the map.
// This prevents sending an empty JSON object for requests without a body.
func bodyOrNil(body map[string]interface{}) interface{} {
	if len(body) == 0 {
		return nil
	}
	return body
}

// prettyJSON re-indents a JSON payload with two-space indentation.
// Non-JSON payloads pass through verbatim.
func prettyJSON(body []byte) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, body, "", "  "); err != nil {
		return string(body)
	}
	return buf.String()
}
