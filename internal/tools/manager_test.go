package tools

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTool struct {
	def Definition
}

func (s stubTool) Definition() Definition { return s.def }

func (s stubTool) Invoke(context.Context, []byte) (any, error) {
	return map[string]string{"ok": "yes"}, nil
}

func stub(path, op string) stubTool {
	return stubTool{def: NewDefinition(path, op, "Stub", "Stub tool", JSONSchema{Type: "object"}, JSONSchema{Type: "object"})}
}

func TestCatalogRegister(t *testing.T) {
	c := NewCatalog()
	require.NoError(t, c.Register(stub("/api/invoke/a", "a")))
	require.NoError(t, c.Register(stub("/api/query-b", "b")))

	assert.Equal(t, 2, c.ToolCount())
	defs := c.GetDefinitions()
	require.Len(t, defs, 2)
	assert.Equal(t, "/api/invoke/a", defs[0].Path)
	assert.Equal(t, "/api/query-b", defs[1].Path)

	entries := c.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "a", entries[0].Name())
	assert.Equal(t, "b", entries[1].Name())
}

func TestCatalogRegisterRejects(t *testing.T) {
	tests := []struct {
		name string
		tool Tool
	}{
		{"outside prefixes", stub("/tools/a", "a")},
		{"empty invoke name", stub("/api/invoke/", "a")},
		{"empty query name", stub("/api/query-", "a")},
		{"nested name", stub("/api/invoke/a/b", "a")},
		{"missing operation id", stub("/api/invoke/a", "")},
		{"duplicate path", stub("/api/invoke/dup", "other")},
		{"duplicate operation id", stub("/api/invoke/other", "dup")},
		{"invalid schema", stubTool{def: NewDefinition("/api/invoke/bad", "bad", "", "", JSONSchema{Type: "nonsense"}, JSONSchema{})}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCatalog()
			require.NoError(t, c.Register(stub("/api/invoke/dup", "dup")))
			assert.Error(t, c.Register(tt.tool))
			assert.Equal(t, 1, c.ToolCount())
		})
	}
}

func TestEntriesIsACopy(t *testing.T) {
	c := NewCatalog()
	require.NoError(t, c.Register(stub("/api/invoke/a", "a")))
	entries := c.Entries()
	entries[0] = nil
	assert.NotNil(t, c.Entries()[0])
}

func TestEntryValidate(t *testing.T) {
	scraper, err := NewScraperTool(PlaceholderScraper{})
	require.NoError(t, err)
	c := NewCatalog()
	require.NoError(t, c.Register(scraper))
	e := c.Entries()[0]

	tests := []struct {
		name      string
		body      string
		malformed bool
		invalid   bool
	}{
		{"valid", `{"url":"https://example.com/a"}`, false, false},
		{"empty body", ``, true, false},
		{"truncated", `{"url":`, true, false},
		{"trailing data", `{"url":"https://example.com"} {}`, true, false},
		{"extra closing brace", `{"url":"https://example.com"}}`, true, false},
		{"extra closing bracket", `{"url":"https://example.com"}]`, true, false},
		{"trailing whitespace", "{\"url\":\"https://example.com\"}\n", false, false},
		{"missing url", `{}`, false, true},
		{"wrong type", `{"url":42}`, false, true},
		{"relative url", `{"url":"not a url"}`, false, true},
		{"not an object", `[]`, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := e.Validate([]byte(tt.body))
			switch {
			case tt.malformed:
				assert.ErrorIs(t, err, ErrMalformedArguments)
			case tt.invalid:
				var ae *ArgumentError
				require.ErrorAs(t, err, &ae)
				assert.Equal(t, "/api/invoke/scraper", ae.Path)
				assert.NotEmpty(t, ae.Problems)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestCollaboratorErrorStatus(t *testing.T) {
	tests := []struct {
		kind CollaboratorKind
		want int
	}{
		{KindNetworkFailure, 502},
		{KindParseFailure, 502},
		{KindInvalidQuery, 502},
		{KindServiceUnavailable, 503},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.want, NewCollaboratorError("svc", tt.kind, "msg", nil).HTTPStatus())
		})
	}
}

func TestCollaboratorErrorUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewCollaboratorError("ContentScraperService", KindNetworkFailure, "fetch failed", cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "NetworkFailure")
	assert.Contains(t, err.Error(), "connection reset")
}
