// In file: internal/tools/scraper_tool.go
package tools

import (
	"context"
	"encoding/json"
	"fmt"
)

// --- Scraper Tool Implementation ---

// ScraperTool exposes the Isabella web scraper: it fetches a page and returns
// a rewritten version of its content. The actual work is done by the injected
// ContentScraperService.
type ScraperTool struct {
	scraper ContentScraperService
}

// Statically verify that ScraperTool implements the Tool interface.
var _ Tool = (*ScraperTool)(nil)

// NewScraperTool creates a new instance of the ScraperTool.
func NewScraperTool(scraper ContentScraperService) (*ScraperTool, error) {
	if scraper == nil {
		return nil, fmt.Errorf("scraper service cannot be nil")
	}
	return &ScraperTool{scraper: scraper}, nil
}

// Definition describes the tool to the orchestration client.
func (st *ScraperTool) Definition() Definition {
	return NewDefinition(
		InvokePrefix+"scraper",
		"invokeIsabellaScraper",
		"Isabella Web Scraper",
		"Fetches the web page at the given URL and returns its main content, rewritten for readability.",
		JSONSchema{
			Type: "object",
			Properties: map[string]*JSONSchema{
				"url": {
					Type:        "string",
					Format:      "uri",
					Description: "Absolute URL of the page to fetch, e.g. https://example.com/article.",
				},
			},
			Required: []string{"url"},
		},
		JSONSchema{
			Type: "object",
			Properties: map[string]*JSONSchema{
				"enhanced_content": {
					Type:        "string",
					Description: "The rewritten page content.",
				},
			},
			Required: []string{"enhanced_content"},
		},
	)
}

// Invoke unmarshals the request and hands the URL to the scraper service.
func (st *ScraperTool) Invoke(ctx context.Context, arguments []byte) (any, error) {
	var args struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(arguments, &args); err != nil {
		return nil, fmt.Errorf("invalid arguments for scraper: %w", err)
	}

	result, err := st.scraper.FetchAndRewrite(ctx, args.URL)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, fmt.Errorf("scraper returned no result for %s", args.URL)
	}
	return result, nil
}
