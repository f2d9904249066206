package mcp

import (
	"context"
	"fmt"
	"net/url"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/TeslaLord/Gitlab-MCP/internal/common"
	"github.com/TeslaLord/Gitlab-MCP/internal/gitlab"
)

// Resource URIs for the two fixed read-only views.
const (
	ResourceProjectsURI = "gitlab://projects"
	ResourceUserURI     = "gitlab://user"
)

// RegisterResources registers the fixed resource catalog on the MCP server:
// the accessible project list and the authenticated user. URIs outside this
// set are rejected by the server's resource lookup.
func RegisterResources(s *server.MCPServer, client *gitlab.Client, logger *common.Logger) {
	s.AddResource(mcp.NewResource(
		ResourceProjectsURI,
		"GitLab Projects",
		mcp.WithResourceDescription("List of accessible GitLab projects"),
		mcp.WithMIMEType("application/json"),
	), projectsResource(client, logger))

	s.AddResource(mcp.NewResource(
		ResourceUserURI,
		"Current User",
		mcp.WithResourceDescription("Information about the authenticated user"),
		mcp.WithMIMEType("application/json"),
	), userResource(client, logger))
}

// projectsResource reads the project list: membership-scoped, first 20.
func projectsResource(client *gitlab.Client, logger *common.Logger) server.ResourceHandlerFunc {
	return func(ctx context.Context, r mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		query := url.Values{}
		query.Set("membership", "true")
		query.Set("per_page", "20")

		body, err := client.Get(ctx, "projects", query)
		if err != nil {
			logger.Warn().Str("uri", r.Params.URI).Str("error", err.Error()).Msg("resource read failed")
			return errorContents(r.Params.URI, err), nil
		}
		return jsonContents(r.Params.URI, body), nil
	}
}

// userResource reads the authenticated user.
func userResource(client *gitlab.Client, logger *common.Logger) server.ResourceHandlerFunc {
	return func(ctx context.Context, r mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		body, err := client.Get(ctx, "user", nil)
		if err != nil {
			logger.Warn().Str("uri", r.Params.URI).Str("error", err.Error()).Msg("resource read failed")
			return errorContents(r.Params.URI, err), nil
		}
		return jsonContents(r.Params.URI, body), nil
	}
}

func jsonContents(uri string, body []byte) []mcp.ResourceContents {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     prettyJSON(body),
		},
	}
}

// errorContents converts a read failure into plain-text contents so the host
// always receives a well-formed reply.
func errorContents(uri string, err error) []mcp.ResourceContents {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/plain",
			Text:     fmt.Sprintf("Error: %v", err),
		},
	}
}
