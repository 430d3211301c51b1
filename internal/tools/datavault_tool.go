// In file: internal/tools/datavault_tool.go
package tools

import (
	"context"
	"encoding/json"
	"fmt"
)

// --- DataVault Tool Implementation ---

const (
	// MaxTopK bounds top_k in the request schema.
	MaxTopK = 50
	// DefaultTopK is used when neither the request nor the configuration sets top_k.
	DefaultTopK = 5
)

// DataVaultTool queries the Sovereign DataVault through a VectorSearchService.
type DataVaultTool struct {
	search      VectorSearchService
	defaultTopK int
}

// Statically verify that DataVaultTool implements the Tool interface.
var _ Tool = (*DataVaultTool)(nil)

// QueryResult is the response body of a DataVault query.
type QueryResult struct {
	Status  string  `json:"status"`
	Results []Match `json:"results"`
}

// NewDataVaultTool creates a new instance of the DataVaultTool. A defaultTopK
// of zero falls back to DefaultTopK.
func NewDataVaultTool(search VectorSearchService, defaultTopK int) (*DataVaultTool, error) {
	if search == nil {
		return nil, fmt.Errorf("vector search service cannot be nil")
	}
	if defaultTopK == 0 {
		defaultTopK = DefaultTopK
	}
	if defaultTopK < 1 || defaultTopK > MaxTopK {
		return nil, fmt.Errorf("default top_k must be between 1 and %d, got %d", MaxTopK, defaultTopK)
	}
	return &DataVaultTool{search: search, defaultTopK: defaultTopK}, nil
}

// Definition describes the tool to the orchestration client.
func (dt *DataVaultTool) Definition() Definition {
	return NewDefinition(
		QueryPrefix+"datavault",
		"querySovereignDatavault",
		"Query Sovereign DataVault",
		"Runs a semantic search over the Sovereign DataVault and returns the best matching documents with their scores and metadata.",
		JSONSchema{
			Type: "object",
			Properties: map[string]*JSONSchema{
				"query": {
					Type:        "string",
					MinLength:   intPtr(1),
					Description: "Free-text search query, e.g. 'Tennyson Trail'.",
				},
				"top_k": {
					Type:        "integer",
					Minimum:     floatPtr(1),
					Maximum:     floatPtr(MaxTopK),
					Default:     dt.defaultTopK,
					Description: "Maximum number of results to return.",
				},
			},
			Required: []string{"query"},
		},
		JSONSchema{
			Type: "object",
			Properties: map[string]*JSONSchema{
				"status": {Type: "string", Description: "Always \"success\" on a 200 response."},
				"results": {
					Type: "array",
					Items: &JSONSchema{
						Type: "object",
						Properties: map[string]*JSONSchema{
							"id":       {Type: "string"},
							"score":    {Type: "number", Minimum: floatPtr(0), Maximum: floatPtr(1)},
							"metadata": {Type: "object", AdditionalProperties: boolPtr(true)},
						},
						Required: []string{"id", "score", "metadata"},
					},
				},
			},
			Required: []string{"status", "results"},
		},
	)
}

// Invoke runs the query against the vector search service.
func (dt *DataVaultTool) Invoke(ctx context.Context, arguments []byte) (any, error) {
	// top_k is a float64 because the schema's integer also admits 2.0.
	var args struct {
		Query string   `json:"query"`
		TopK  *float64 `json:"top_k"`
	}
	if err := json.Unmarshal(arguments, &args); err != nil {
		return nil, fmt.Errorf("invalid arguments for datavault: %w", err)
	}
	topK := dt.defaultTopK
	if args.TopK != nil {
		topK = int(*args.TopK)
	}

	matches, err := dt.search.Query(ctx, args.Query, topK)
	if err != nil {
		return nil, err
	}
	if matches == nil {
		matches = []Match{}
	}
	return QueryResult{Status: "success", Results: matches}, nil
}
