package mcp

import (
	"encoding/json"
	"fmt"
	"strings"

	mcplib "github.com/felixgeelhaar/mcp-go"
)

// OpenAPISpec represents a minimal OpenAPI 3.0 document.
type OpenAPISpec struct {
	OpenAPI string              `json:"openapi"`
	Info    OpenAPIInfo         `json:"info"`
	Tags    []OpenAPITag        `json:"tags,omitempty"`
	Paths   map[string]PathItem `json:"paths"`
}

// OpenAPITag groups operations by ClickUp resource.
type OpenAPITag struct {
	Name string `json:"name"`
}

// OpenAPIInfo is the info section of an OpenAPI spec.
type OpenAPIInfo struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Version     string `json:"version"`
}

// PathItem represents a single path with operations.
type PathItem struct {
	Post *Operation `json:"post,omitempty"`
}

// Operation is an OpenAPI operation.
type Operation struct {
	OperationID string              `json:"operationId"`
	Summary     string              `json:"summary,omitempty"`
	RequestBody *RequestBody        `json:"requestBody,omitempty"`
	Responses   map[string]Response `json:"responses"`
	Tags        []string            `json:"tags,omitempty"`
}

// RequestBody is the request body definition.
type RequestBody struct {
	Required bool                 `json:"required"`
	Content  map[string]MediaType `json:"content"`
}

// MediaType describes a media type with schema.
type MediaType struct {
	Schema any `json:"schema"`
}

// Response is an OpenAPI response.
type Response struct {
	Description string `json:"description"`
}

// OpenAPI returns the OpenAPI 3.0 JSON document for this server.
func (s *Server) OpenAPI() ([]byte, error) {
	return GenerateOpenAPI(s.mcpServer)
}

// GenerateOpenAPI produces an OpenAPI 3.0 JSON document from the server's registered tools.
// Each MCP tool is mapped to a POST endpoint at /tools/{tool_name} and tagged
// with its resource group (clickup_tasks_get is tagged "tasks").
func GenerateOpenAPI(srv *mcplib.Server) ([]byte, error) {
	tools := srv.Tools()

	seen := map[string]bool{}
	var tags []OpenAPITag
	paths := make(map[string]PathItem, len(tools))
	for _, t := range tools {
		op := Operation{
			OperationID: t.Name,
			Summary:     t.Description,
			Responses: map[string]Response{
				"200": {Description: "Successful response"},
				"400": {Description: "Invalid request parameters"},
				"429": {Description: "ClickUp rate limit exhausted after retries"},
				"500": {Description: "Internal server error"},
			},
			Tags: []string{toolGroup(t.Name)},
		}
		if g := toolGroup(t.Name); !seen[g] {
			seen[g] = true
			tags = append(tags, OpenAPITag{Name: g})
		}

		if schema, ok := schemaMap(t.InputSchema); ok && hasProperties(schema) {
			op.RequestBody = &RequestBody{
				Required: true,
				Content: map[string]MediaType{
					"application/json": {Schema: schema},
				},
			}
		}

		path := fmt.Sprintf("/tools/%s", t.Name)
		paths[path] = PathItem{Post: &op}
	}

	spec := OpenAPISpec{
		OpenAPI: "3.0.3",
		Info: OpenAPIInfo{
			Title:       "ClickUp MCP API",
			Description: "Auto-generated OpenAPI spec from the ClickUp MCP tool registrations.",
			Version:     SchemaVersion,
		},
		Tags:  tags,
		Paths: paths,
	}

	return json.MarshalIndent(spec, "", "  ")
}

// schemaMap normalizes a tool input schema, typed or untyped, into a
// generic JSON object.
func schemaMap(schema any) (map[string]any, bool) {
	if schema == nil {
		return nil, false
	}
	data, err := json.Marshal(schema)
	if err != nil {
		return nil, false
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil || m == nil {
		return nil, false
	}
	return m, true
}

// hasProperties checks whether a JSON Schema object has any properties defined.
func hasProperties(schema map[string]any) bool {
	props, ok := schema["properties"].(map[string]any)
	return ok && len(props) > 0
}

// knownGroups lists the two-word resource prefixes; everything else uses
// the first word after "clickup_".
var knownGroups = []string{"custom_fields"}

// toolGroup derives the resource group from a tool name.
func toolGroup(name string) string {
	rest, ok := strings.CutPrefix(name, "clickup_")
	if !ok {
		return "other"
	}
	for _, g := range knownGroups {
		if strings.HasPrefix(rest, g+"_") {
			return g
		}
	}
	if i := strings.IndexByte(rest, '_'); i > 0 {
		return rest[:i]
	}
	return rest
}
