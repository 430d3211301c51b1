package tools

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeScraper struct {
	gotURL string
	err    error
}

func (f *fakeScraper) FetchAndRewrite(_ context.Context, url string) (*ScrapeResult, error) {
	f.gotURL = url
	if f.err != nil {
		return nil, f.err
	}
	return &ScrapeResult{EnhancedContent: "rewritten " + url}, nil
}

type fakeSearch struct {
	gotTopK int
	matches []Match
	err     error
}

func (f *fakeSearch) Query(_ context.Context, _ string, topK int) ([]Match, error) {
	f.gotTopK = topK
	return f.matches, f.err
}

func TestNewToolsRejectNilCollaborators(t *testing.T) {
	_, err := NewScraperTool(nil)
	assert.Error(t, err)
	_, err = NewDataVaultTool(nil, 5)
	assert.Error(t, err)
	_, err = NewDataVaultTool(&fakeSearch{}, 51)
	assert.Error(t, err)
}

func TestScraperToolInvoke(t *testing.T) {
	fs := &fakeScraper{}
	tool, err := NewScraperTool(fs)
	require.NoError(t, err)

	out, err := tool.Invoke(context.Background(), []byte(`{"url":"https://example.com"}`))
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", fs.gotURL)
	assert.Equal(t, &ScrapeResult{EnhancedContent: "rewritten https://example.com"}, out)
}

func TestScraperToolPassesCollaboratorError(t *testing.T) {
	cerr := NewCollaboratorError("ContentScraperService", KindNetworkFailure, "unreachable", nil)
	tool, _ := NewScraperTool(&fakeScraper{err: cerr})

	_, err := tool.Invoke(context.Background(), []byte(`{"url":"https://example.com"}`))
	var got *CollaboratorError
	require.True(t, errors.As(err, &got))
	assert.Equal(t, KindNetworkFailure, got.Kind)
}

func TestPlaceholderScraper(t *testing.T) {
	res, err := PlaceholderScraper{}.FetchAndRewrite(context.Background(), "https://example.com")
	require.NoError(t, err)
	assert.Equal(t, "This is the beautifully rewritten content.", res.EnhancedContent)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = PlaceholderScraper{}.FetchAndRewrite(ctx, "https://example.com")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDataVaultToolTopK(t *testing.T) {
	fs := &fakeSearch{}
	tool, err := NewDataVaultTool(fs, 0)
	require.NoError(t, err)

	out, err := tool.Invoke(context.Background(), []byte(`{"query":"x"}`))
	require.NoError(t, err)
	assert.Equal(t, DefaultTopK, fs.gotTopK)
	assert.Equal(t, QueryResult{Status: "success", Results: []Match{}}, out)

	_, err = tool.Invoke(context.Background(), []byte(`{"query":"x","top_k":2}`))
	require.NoError(t, err)
	assert.Equal(t, 2, fs.gotTopK)

	_, err = tool.Invoke(context.Background(), []byte(`{"query":"x","top_k":3.0}`))
	require.NoError(t, err)
	assert.Equal(t, 3, fs.gotTopK)
}

func TestDataVaultTennysonTrail(t *testing.T) {
	search, err := DefaultFixtures()
	require.NoError(t, err)
	tool, err := NewDataVaultTool(search, 5)
	require.NoError(t, err)

	out, err := tool.Invoke(context.Background(), []byte(`{"query":"Tennyson Trail"}`))
	require.NoError(t, err)

	raw, err := json.Marshal(out)
	require.NoError(t, err)
	var body struct {
		Status  string `json:"status"`
		Results []struct {
			ID       string         `json:"id"`
			Score    float64        `json:"score"`
			Metadata map[string]any `json:"metadata"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "success", body.Status)
	require.Len(t, body.Results, 1)
	assert.Equal(t, "tennyson-trail", body.Results[0].ID)
	assert.Equal(t, 0.95, body.Results[0].Score)
	assert.Equal(t, "Along the Tennyson Trail", body.Results[0].Metadata["title"])
}

func TestFixtureVectorSearch(t *testing.T) {
	search, err := DefaultFixtures()
	require.NoError(t, err)
	ctx := context.Background()

	matches, err := search.Query(ctx, "From Carisbrooke castle to the Needles", 5)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "needles-headland", matches[0].ID)
	assert.Equal(t, "carisbrooke-castle", matches[1].ID)

	matches, err = search.Query(ctx, "From Carisbrooke castle to the Needles", 1)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "needles-headland", matches[0].ID)

	matches, err = search.Query(ctx, "moon base", 5)
	require.NoError(t, err)
	assert.Empty(t, matches)

	_, err = search.Query(ctx, "   ", 5)
	var cerr *CollaboratorError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, KindInvalidQuery, cerr.Kind)
}

func TestFixtureMetadataIsolation(t *testing.T) {
	search, _ := DefaultFixtures()
	first, _ := search.Query(context.Background(), "tennyson", 1)
	first[0].Metadata["title"] = "mutated"

	second, _ := search.Query(context.Background(), "tennyson", 1)
	assert.Equal(t, "Along the Tennyson Trail", second[0].Metadata["title"])
}

func TestLoadFixturesRejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad yaml", "documents: [\n"},
		{"missing id", "documents:\n  - score: 0.5\n    keywords: [a]\n"},
		{"duplicate id", "documents:\n  - {id: a, score: 0.5, keywords: [a]}\n  - {id: a, score: 0.4, keywords: [b]}\n"},
		{"score too high", "documents:\n  - {id: a, score: 1.5, keywords: [a]}\n"},
		{"negative score", "documents:\n  - {id: a, score: -0.1, keywords: [a]}\n"},
		{"no keywords", "documents:\n  - {id: a, score: 0.5}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFixtures(strings.NewReader(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadFixtureFileMissing(t *testing.T) {
	_, err := LoadFixtureFile("/nonexistent/datavault.yaml")
	assert.Error(t, err)
}
