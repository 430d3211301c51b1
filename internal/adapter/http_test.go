package adapter

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dileep-u-k/aegis-gateway/internal/gateway"
)

func TestFromHTTP(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "http://gw.example/api/invoke/scraper?trace=1", strings.NewReader(`{"url":"https://example.com"}`))
	r.Header.Add("X-Forwarded-For", "10.0.0.1")
	r.Header.Add("X-Forwarded-For", "10.0.0.2")
	r.Header.Set("Content-Type", "application/json")

	req, err := FromHTTP(r, Limits{MaxRequestBytes: 1024})
	require.NoError(t, err)
	assert.Equal(t, "POST", req.Method())
	assert.Equal(t, "/api/invoke/scraper", req.Path())
	assert.Equal(t, "trace=1", req.RawQuery())
	assert.Equal(t, "10.0.0.1, 10.0.0.2", req.Header().Get("x-forwarded-for"))
	assert.Equal(t, "gw.example", req.Header().Get("Host"))
	assert.Equal(t, `{"url":"https://example.com"}`, string(req.Body()))
}

func TestFromHTTPNoBody(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	req, err := FromHTTP(r, Limits{})
	require.NoError(t, err)
	assert.False(t, req.HasBody())
}

func TestFromHTTPRejects(t *testing.T) {
	tooBig := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("a", 20)))

	mismatch := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("abc"))
	mismatch.ContentLength = 10

	noBody := httptest.NewRequest(http.MethodPost, "/", nil)
	noBody.ContentLength = 5

	failing := httptest.NewRequest(http.MethodPost, "/", nil)
	failing.Body = io.NopCloser(errReader{})
	failing.ContentLength = -1

	noMethod := httptest.NewRequest(http.MethodGet, "/", nil)
	noMethod.Method = ""

	badHeader := httptest.NewRequest(http.MethodGet, "/", nil)
	badHeader.Header["Bad Name"] = []string{"x"}

	tests := []struct {
		name string
		r    *http.Request
	}{
		{"nil", nil},
		{"too big", tooBig},
		{"length mismatch", mismatch},
		{"declared but missing", noBody},
		{"read failure", failing},
		{"missing method", noMethod},
		{"bad header name", badHeader},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromHTTP(tt.r, Limits{MaxRequestBytes: 10})
			var ae *gateway.AdaptationError
			assert.ErrorAs(t, err, &ae)
		})
	}
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestWriteHTTP(t *testing.T) {
	var h gateway.Header
	h.Set("Content-Type", "application/json")
	h.Set("ETag", `"abc"`)
	resp, err := gateway.NewResponse(http.StatusCreated, h, []byte(`{"ok":true}`))
	require.NoError(t, err)

	w := httptest.NewRecorder()
	require.NoError(t, WriteHTTP(w, resp))
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, `{"ok":true}`, w.Body.String())
	assert.Equal(t, `"abc"`, w.Header().Get("ETag"))
	assert.Equal(t, "11", w.Header().Get("Content-Length"))
}

type brokenWriter struct {
	httptest.ResponseRecorder
}

func (b *brokenWriter) Write([]byte) (int, error) { return 0, errors.New("client went away") }

func TestWriteHTTPFailureSurfaces(t *testing.T) {
	resp, err := gateway.JSON(http.StatusOK, map[string]string{"a": "b"})
	require.NoError(t, err)

	w := &brokenWriter{ResponseRecorder: *httptest.NewRecorder()}
	assert.Error(t, WriteHTTP(w, resp))
}
