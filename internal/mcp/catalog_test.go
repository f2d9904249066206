package mcp

import (
	"strings"
	"testing"
)

func TestCatalog_StableOrder(t *testing.T) {
	expected := []string{
		"list_projects",
		"get_project",
		"list_issues",
		"create_issue",
		"list_merge_requests",
		"create_merge_request",
		"get_file_content",
		"list_branches",
		"list_commits",
	}

	catalog := Catalog()
	if len(catalog) != len(expected) {
		t.Fatalf("expected %d tools, got %d", len(expected), len(catalog))
	}
	for i, name := range expected {
		if catalog[i].Name != name {
			t.Errorf("tool %d: expected %s, got %s", i, name, catalog[i].Name)
		}
	}
}

func TestCatalog_UniqueNames(t *testing.T) {
	seen := map[string]bool{}
	for _, tool := range Catalog() {
		if seen[tool.Name] {
			t.Errorf("duplicate tool name %s", tool.Name)
		}
		seen[tool.Name] = true
	}
}

func TestCatalog_MethodsSupported(t *testing.T) {
	for _, tool := range Catalog() {
		switch tool.Method {
		case "GET", "POST", "PUT", "DELETE":
		default:
			t.Errorf("tool %s has unsupported method %s", tool.Name, tool.Method)
		}
	}
}

func TestCatalog_PathParamsHavePlaceholders(t *testing.T) {
	for _, tool := range Catalog() {
		for _, p := range tool.Params {
			if p.In != "path" {
				continue
			}
			if !strings.Contains(tool.Path, "{"+p.Name+"}") {
				t.Errorf("tool %s: path %q missing placeholder for %s", tool.Name, tool.Path, p.Name)
			}
		}
	}
}

func TestLookup(t *testing.T) {
	tool, ok := Lookup("list_issues")
	if !ok {
		t.Fatal("expected list_issues in catalog")
	}
	if tool.Path != "projects/{project_id}/issues" {
		t.Errorf("unexpected path %s", tool.Path)
	}

	if _, ok := Lookup("bogus_tool"); ok {
		t.Error("expected Lookup to fail for unknown name")
	}
}

func TestValidateArgs_RequiredPresent(t *testing.T) {
	tool, _ := Lookup("create_merge_request")
	args := map[string]interface{}{
		"project_id":    "7",
		"source_branch": "feat",
		"target_branch": "main",
		"title":         "T",
	}
	if err := ValidateArgs(tool, args); err != nil {
		t.Errorf("expected valid args, got %v", err)
	}
}

func TestValidateArgs_MissingRequired(t *testing.T) {
	// Dropping any one required argument must name the missing field.
	for _, tool := range Catalog() {
		for _, p := range tool.Params {
			if !p.Required {
				continue
			}
			args := minimalValidArgs(tool)
			delete(args, p.Name)

			err := ValidateArgs(tool, args)
			if err == nil {
				t.Errorf("%s: expected error when %s is missing", tool.Name, p.Name)
				continue
			}
			if !strings.Contains(err.Error(), p.Name) {
				t.Errorf("%s: error should mention %q, got %q", tool.Name, p.Name, err.Error())
			}
		}
	}
}

func TestValidateArgs_EmptyStringIsMissing(t *testing.T) {
	tool, _ := Lookup("get_project")
	err := ValidateArgs(tool, map[string]interface{}{"project_id": ""})
	if err == nil || !strings.Contains(err.Error(), "project_id") {
		t.Errorf("expected missing-argument error for empty project_id, got %v", err)
	}
}

func TestValidateArgs_Enum(t *testing.T) {
	tool, _ := Lookup("list_issues")

	if err := ValidateArgs(tool, map[string]interface{}{"project_id": "42", "state": "opened"}); err != nil {
		t.Errorf("expected opened to be valid, got %v", err)
	}
	if err := ValidateArgs(tool, map[string]interface{}{"project_id": "42", "state": "merged"}); err == nil {
		t.Error("expected merged to be invalid for list_issues")
	}

	mrs, _ := Lookup("list_merge_requests")
	if err := ValidateArgs(mrs, map[string]interface{}{"project_id": "42", "state": "merged"}); err != nil {
		t.Errorf("expected merged to be valid for list_merge_requests, got %v", err)
	}
}

func TestBuildMCPTool_Schema(t *testing.T) {
	tool, _ := Lookup("create_issue")
	built := BuildMCPTool(tool)

	if built.Name != "create_issue" {
		t.Errorf("expected name create_issue, got %s", built.Name)
	}
	if built.Description == "" {
		t.Error("expected non-empty description")
	}

	required := map[string]bool{}
	for _, name := range built.InputSchema.Required {
		required[name] = true
	}
	if !required["project_id"] || !required["title"] {
		t.Errorf("expected project_id and title required, got %v", built.InputSchema.Required)
	}
	if required["description"] || required["labels"] {
		t.Errorf("optional params must not be required, got %v", built.InputSchema.Required)
	}

	for _, p := range tool.Params {
		if _, ok := built.InputSchema.Properties[p.Name]; !ok {
			t.Errorf("schema missing property %s", p.Name)
		}
	}
}

// minimalValidArgs builds the smallest argument set that passes validation
// for a catalog tool.
func minimalValidArgs(tool Tool) map[string]interface{} {
	args := map[string]interface{}{}
	for _, p := range tool.Params {
		if p.Required {
			args[p.Name] = "x"
		}
	}
	return args
}
