// In file: internal/tools/types.go

// Package tools defines the declarative tool catalog of the gateway.
//
// Each tool describes itself once (its invocation path, its human-readable
// summary, and the JSON Schema of its request body). The route table and the
// capability manifest are both generated from the catalog, so no tool can be
// routed without being advertised, or advertised without being routed.
package tools

const (
	// InvokePrefix is the path prefix for action-style tools.
	InvokePrefix = "/api/invoke/"
	// QueryPrefix is the path prefix for datastore query tools.
	QueryPrefix = "/api/query-"
)

// Definition describes a tool to the orchestration client.
type Definition struct {
	// Path is the exact invocation path, e.g. "/api/invoke/scraper".
	Path string
	// OperationID is the stable identifier used by the client to refer to the tool.
	OperationID string
	// Summary is a short human-readable title.
	Summary string
	// Description explains what the tool does. The client's planner reads it to
	// decide when to call the tool, so it should say what comes back.
	Description string
	// Parameters is the JSON Schema of the accepted request body.
	Parameters JSONSchema
	// Result is the JSON Schema of a successful response body.
	Result JSONSchema
}

// JSONSchema is a structured subset of JSON Schema, enough to describe tool
// request and result bodies.
type JSONSchema struct {
	Type                 string                 `json:"type,omitempty"`
	Description          string                 `json:"description,omitempty"`
	Format               string                 `json:"format,omitempty"`
	Properties           map[string]*JSONSchema `json:"properties,omitempty"`
	Items                *JSONSchema            `json:"items,omitempty"`
	Required             []string               `json:"required,omitempty"`
	MinLength            *int                   `json:"minLength,omitempty"`
	Minimum              *float64               `json:"minimum,omitempty"`
	Maximum              *float64               `json:"maximum,omitempty"`
	Default              any                    `json:"default,omitempty"`
	AdditionalProperties *bool                  `json:"additionalProperties,omitempty"`
}

// NewDefinition is a helper that builds a Definition for a POST tool.
func NewDefinition(path, operationID, summary, description string, parameters, result JSONSchema) Definition {
	return Definition{
		Path:        path,
		OperationID: operationID,
		Summary:     summary,
		Description: description,
		Parameters:  parameters,
		Result:      result,
	}
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
func boolPtr(v bool) *bool        { return &v }
