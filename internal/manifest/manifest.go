// Package manifest generates the capability manifest served on POST /: an
// OpenAPI 3.1 document with one path per catalog tool.
package manifest

import (
	"encoding/json"
	"fmt"

	"github.com/dileep-u-k/aegis-gateway/internal/tools"
)

const (
	OpenAPIVersion = "3.1.0"
	jsonMediaType  = "application/json"
)

// Info is the manifest's info block.
type Info struct {
	Title   string `json:"title"`
	Version string `json:"version"`
}

// DefaultInfo describes the Aegis Logistics tool set.
var DefaultInfo = Info{Title: "Aegis Logistics Tools", Version: "1.0"}

type Document struct {
	OpenAPI string              `json:"openapi"`
	Info    Info                `json:"info"`
	Paths   map[string]PathItem `json:"paths"`
}

type PathItem struct {
	Post *Operation `json:"post,omitempty"`
}

type Operation struct {
	Summary     string              `json:"summary"`
	Description string              `json:"description"`
	OperationID string              `json:"operationId"`
	RequestBody RequestBody         `json:"requestBody"`
	Responses   map[string]Response `json:"responses"`
}

type RequestBody struct {
	Required bool                 `json:"required"`
	Content  map[string]MediaType `json:"content"`
}

type Response struct {
	Description string               `json:"description"`
	Content     map[string]MediaType `json:"content,omitempty"`
}

type MediaType struct {
	Schema *tools.JSONSchema `json:"schema"`
}

var errorSchema = tools.JSONSchema{
	Type: "object",
	Properties: map[string]*tools.JSONSchema{
		"error":   {Type: "string", Description: "Machine-readable error kind."},
		"message": {Type: "string", Description: "Human-readable explanation."},
	},
	Required: []string{"error", "message"},
}

// Build generates the manifest for every tool in the catalog.
func Build(info Info, catalog *tools.Catalog) Document {
	doc := Document{
		OpenAPI: OpenAPIVersion,
		Info:    info,
		Paths:   make(map[string]PathItem, catalog.ToolCount()),
	}
	for _, def := range catalog.GetDefinitions() {
		doc.Paths[def.Path] = PathItem{Post: operationFor(def)}
	}
	return doc
}

func operationFor(def tools.Definition) *Operation {
	params, result, errBody := def.Parameters, def.Result, errorSchema
	return &Operation{
		Summary:     def.Summary,
		Description: def.Description,
		OperationID: def.OperationID,
		RequestBody: RequestBody{
			Required: true,
			Content:  map[string]MediaType{jsonMediaType: {Schema: &params}},
		},
		Responses: map[string]Response{
			"200": {Description: "Successful invocation.", Content: map[string]MediaType{jsonMediaType: {Schema: &result}}},
			"400": {Description: "The request body is not well-formed JSON or violates the schema.", Content: map[string]MediaType{jsonMediaType: {Schema: &errBody}}},
			"502": {Description: "The upstream service failed.", Content: map[string]MediaType{jsonMediaType: {Schema: &errBody}}},
			"503": {Description: "The upstream service is unavailable.", Content: map[string]MediaType{jsonMediaType: {Schema: &errBody}}},
		},
	}
}

// Marshal encodes the document. Map keys are sorted by encoding/json, so the
// output is byte-identical for the same catalog.
func (d Document) Marshal() ([]byte, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("marshal manifest: %w", err)
	}
	return raw, nil
}

// ToolPaths returns the advertised tool paths.
func (d Document) ToolPaths() []string {
	paths := make([]string, 0, len(d.Paths))
	for p := range d.Paths {
		paths = append(paths, p)
	}
	return paths
}
