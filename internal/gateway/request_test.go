package gateway

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dileep-u-k/aegis-gateway/internal/tools"
)

func TestNewRequest(t *testing.T) {
	var h Header
	h.Add("Content-Type", "application/json")
	body := []byte(`{"a":1}`)

	req, err := NewRequest(http.MethodPost, "/api/invoke/scraper?debug=1", h, body)
	require.NoError(t, err)
	assert.Equal(t, "POST", req.Method())
	assert.Equal(t, "/api/invoke/scraper", req.Path())
	assert.Equal(t, "debug=1", req.RawQuery())
	assert.Equal(t, "application/json", req.Header().Get("content-type"))
	assert.True(t, req.HasBody())

	// Immutability: neither the caller's slices nor the accessor results leak in.
	body[0] = 'X'
	h.Set("Content-Type", "text/plain")
	got := req.Body()
	got[1] = 'Y'
	assert.Equal(t, `{"a":1}`, string(req.Body()))
	assert.Equal(t, "application/json", req.Header().Get("Content-Type"))
}

func TestNewRequestWithoutBody(t *testing.T) {
	req, err := NewRequest(http.MethodGet, "", Header{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "/", req.Path())
	assert.False(t, req.HasBody())
	assert.Nil(t, req.Body())
	assert.Equal(t, "GET /", req.String())
}

func TestNewRequestRejects(t *testing.T) {
	tests := []struct {
		name, method, target string
	}{
		{"missing method", "", "/"},
		{"unknown method", "FETCH", "/"},
		{"lowercase method", "get", "/"},
		{"relative path", "GET", "api/invoke/scraper"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRequest(tt.method, tt.target, Header{}, nil)
			var ae *AdaptationError
			assert.ErrorAs(t, err, &ae)
		})
	}
}

func TestNewResponse(t *testing.T) {
	_, err := NewResponse(99, Header{}, nil)
	assert.Error(t, err)
	_, err = NewResponse(600, Header{}, nil)
	assert.Error(t, err)

	resp, err := JSON(http.StatusCreated, map[string]int{"n": 1})
	require.NoError(t, err)
	assert.Equal(t, 201, resp.Status())
	assert.Equal(t, "application/json", resp.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"n":1}`, string(resp.Body()))
	assert.Equal(t, 7, resp.Len())

	tagged := resp.WithHeader("ETag", `"x"`)
	assert.Equal(t, `"x"`, tagged.Header().Get("ETag"))
	assert.False(t, resp.Header().Has("ETag"))
}

func TestJSONEncodeFailure(t *testing.T) {
	_, err := JSON(http.StatusOK, map[string]any{"ch": make(chan int)})
	assert.Error(t, err)
}

func TestErrorResponse(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"adaptation", NewAdaptationError("missing method", nil), 400, `{"error":"adaptation_error","message":"missing method"}`},
		{"request", &RequestError{Code: "invalid_json", Message: "bad"}, 400, `{"error":"invalid_json","message":"bad"}`},
		{"not found", &RouteNotFound{Method: "GET", Path: "/nope"}, 404, `{"error":"not_found","message":"no route for GET /nope"}`},
		{"network failure", tools.NewCollaboratorError("ContentScraperService", tools.KindNetworkFailure, "upstream unreachable", errors.New("dial tcp: secret-host")), 502, `{"error":"NetworkFailure","message":"upstream unreachable"}`},
		{"service unavailable", tools.NewCollaboratorError("VectorSearchService", tools.KindServiceUnavailable, "index offline", nil), 503, `{"error":"ServiceUnavailable","message":"index offline"}`},
		{"fault", &HandlerFault{Route: "x", Err: errors.New("nil pointer in secret code")}, 500, `{"error":"internal_error","message":"internal server error"}`},
		{"plain error", errors.New("boom"), 500, `{"error":"internal_error","message":"internal server error"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := ErrorResponse(tt.err)
			assert.Equal(t, tt.wantStatus, resp.Status())
			assert.JSONEq(t, tt.wantBody, string(resp.Body()))
			assert.NotContains(t, string(resp.Body()), "secret")
			assert.Equal(t, "application/json", resp.Header().Get("Content-Type"))
		})
	}
}
