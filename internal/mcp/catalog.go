// Package mcp defines the fixed GitLab tool catalog and wires it onto an
// mcp-go server. The catalog is data, not code: each entry describes one
// REST operation (method, path template, parameters), and a single generic
// handler maps validated call arguments onto one GitLab API request.
package mcp

import (
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// Tool represents one entry in the fixed tool catalog.
type Tool struct {
	Name        string
	Description string
	Method      string
	Path        string            // endpoint template relative to /api/v4, e.g. "projects/{project_id}/issues"
	FixedQuery  map[string]string // query params applied on every call
	Params      []Param
}

// Param describes one parameter for a catalog tool.
type Param struct {
	Name        string
	Type        string // string, number
	Description string
	Required    bool
	In          string // path, query, body
	Default     string // applied when the caller omits the argument
	Enum        []string
}

// Catalog returns the fixed tool catalog in stable order. Defined once at
// process start; never mutated.
func Catalog() []Tool {
	return []Tool{
		{
			Name:        "list_projects",
			Description: "List all GitLab projects accessible to the current user",
			Method:      "GET",
			Path:        "projects",
			FixedQuery:  map[string]string{"membership": "true"},
			Params: []Param{
				{Name: "per_page", Type: "number", Description: "Number of projects to return (default: 20, max: 100)", In: "query", Default: "20"},
			},
		},
		{
			Name:        "get_project",
			Description: "Get details about a specific GitLab project",
			Method:      "GET",
			Path:        "projects/{project_id}",
			Params: []Param{
				{Name: "project_id", Type: "string", Description: "The ID or URL-encoded path of the project", Required: true, In: "path"},
			},
		},
		{
			Name:        "list_issues",
			Description: "List issues in a GitLab project",
			Method:      "GET",
			Path:        "projects/{project_id}/issues",
			Params: []Param{
				{Name: "project_id", Type: "string", Description: "The ID or URL-encoded path of the project", Required: true, In: "path"},
				{Name: "state", Type: "string", Description: "Filter by state: opened, closed, or all", In: "query", Enum: []string{"opened", "closed", "all"}},
			},
		},
		{
			Name:        "create_issue",
			Description: "Create a new issue in a GitLab project",
			Method:      "POST",
			Path:        "projects/{project_id}/issues",
			Params: []Param{
				{Name: "project_id", Type: "string", Description: "The ID or URL-encoded path of the project", Required: true, In: "path"},
				{Name: "title", Type: "string", Description: "The title of the issue", Required: true, In: "body"},
				{Name: "description", Type: "string", Description: "The description of the issue", In: "body"},
				{Name: "labels", Type: "string", Description: "Comma-separated list of label names", In: "body"},
			},
		},
		{
			Name:        "list_merge_requests",
			Description: "List merge requests in a GitLab project",
			Method:      "GET",
			Path:        "projects/{project_id}/merge_requests",
			Params: []Param{
				{Name: "project_id", Type: "string", Description: "The ID or URL-encoded path of the project", Required: true, In: "path"},
				{Name: "state", Type: "string", Description: "Filter by state: opened, closed, merged, or all", In: "query", Enum: []string{"opened", "closed", "merged", "all"}},
			},
		},
		{
			Name:        "create_merge_request",
			Description: "Create a new merge request in a GitLab project",
			Method:      "POST",
			Path:        "projects/{project_id}/merge_requests",
			Params: []Param{
				{Name: "project_id", Type: "string", Description: "The ID or URL-encoded path of the project", Required: true, In: "path"},
				{Name: "source_branch", Type: "string", Description: "The source branch name", Required: true, In: "body"},
				{Name: "target_branch", Type: "string", Description: "The target branch name", Required: true, In: "body"},
				{Name: "title", Type: "string", Description: "The title of the merge request", Required: true, In: "body"},
				{Name: "description", Type: "string", Description: "The description of the merge request", In: "body"},
			},
		},
		{
			Name:        "get_file_content",
			Description: "Get the content of a file from a GitLab repository",
			Method:      "GET",
			Path:        "projects/{project_id}/repository/files/{file_path}",
			Params: []Param{
				{Name: "project_id", Type: "string", Description: "The ID or URL-encoded path of the project", Required: true, In: "path"},
				{Name: "file_path", Type: "string", Description: "The path to the file in the repository", Required: true, In: "path"},
				{Name: "ref", Type: "string", Description: "The branch, tag, or commit SHA (default: main)", In: "query", Default: "main"},
			},
		},
		{
			Name:        "list_branches",
			Description: "List branches in a GitLab project",
			Method:      "GET",
			Path:        "projects/{project_id}/repository/branches",
			Params: []Param{
				{Name: "project_id", Type: "string", Description: "The ID or URL-encoded path of the project", Required: true, In: "path"},
			},
		},
		{
			Name:        "list_commits",
			Description: "List commits in a GitLab project",
			Method:      "GET",
			Path:        "projects/{project_id}/repository/commits",
			Params: []Param{
				{Name: "project_id", Type: "string", Description: "The ID or URL-encoded path of the project", Required: true, In: "path"},
				{Name: "ref_name", Type: "string", Description: "The name of a branch, tag, or commit SHA", In: "query"},
			},
		},
	}
}

// Lookup returns the catalog entry for a tool name. The ok result is false
// for unknown names.
func Lookup(name string) (Tool, bool) {
	for _, t := range Catalog() {
		if t.Name == name {
			return t, true
		}
	}
	return Tool{}, false
}

// ValidateArgs checks call arguments against a catalog entry: every required
// parameter must be present and non-empty, and enum-constrained values must
// be one of the allowed values. Pure function, no network.
func ValidateArgs(t Tool, args map[string]interface{}) error {
	for _, p := range t.Params {
		v, present := args[p.Name]
		if p.Required {
			if !present || v == nil {
				return fmt.Errorf("missing required argument %q", p.Name)
			}
			if s, ok := v.(string); ok && s == "" {
				return fmt.Errorf("missing required argument %q", p.Name)
			}
		}
		if len(p.Enum) > 0 && present && v != nil {
			s := fmt.Sprint(v)
			if s == "" {
				continue
			}
			valid := false
			for _, allowed := range p.Enum {
				if s == allowed {
					valid = true
					break
				}
			}
			if !valid {
				return fmt.Errorf("invalid value %q for argument %q (must be one of: %s)", s, p.Name, strings.Join(p.Enum, ", "))
			}
		}
	}
	return nil
}

// BuildMCPTool converts a catalog entry into an mcp.Tool with the
// appropriate input schema.
func BuildMCPTool(t Tool) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(t.Description)}
	for _, p := range t.Params {
		opts = append(opts, buildParamOption(p))
	}
	return mcp.NewTool(t.Name, opts...)
}

// buildParamOption maps a Param to the appropriate mcp-go tool option.
func buildParamOption(p Param) mcp.ToolOption {
	var opts []mcp.PropertyOption
	if p.Description != "" {
		opts = append(opts, mcp.Description(p.Description))
	}
	if p.Required {
		opts = append(opts, mcp.Required())
	}
	if len(p.Enum) > 0 {
		opts = append(opts, mcp.Enum(p.Enum...))
	}

	switch p.Type {
	case "number":
		return mcp.WithNumber(p.Name, opts...)
	default:
		return mcp.WithString(p.Name, opts...)
	}
}
