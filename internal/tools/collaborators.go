package tools

import (
	"context"
)

// ContentScraperService fetches a page and returns a rewritten version of its content.
type ContentScraperService interface {
	FetchAndRewrite(ctx context.Context, url string) (*ScrapeResult, error)
}

// ScrapeResult is the output of ContentScraperService.
type ScrapeResult struct {
	EnhancedContent string `json:"enhanced_content"`
}

// VectorSearchService answers free-text queries against a vector datastore.
type VectorSearchService interface {
	Query(ctx context.Context, text string, topK int) ([]Match, error)
}

// Match is a single vector search hit. Score is in [0,1].
type Match struct {
	ID       string         `json:"id"`
	Score    float64        `json:"score"`
	Metadata map[string]any `json:"metadata"`
}

// PlaceholderScraper stands in for the real scraping service and always
// returns the same content.
type PlaceholderScraper struct{}

var _ ContentScraperService = PlaceholderScraper{}

const placeholderContent = "This is the beautifully rewritten content."

func (PlaceholderScraper) FetchAndRewrite(ctx context.Context, _ string) (*ScrapeResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &ScrapeResult{EnhancedContent: placeholderContent}, nil
}
