package adapter

import (
	"encoding/base64"
	"fmt"
	"mime"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/http/httpguts"

	"github.com/dileep-u-k/aegis-gateway/internal/gateway"
)

// addHeader validates and appends one header field.
func addHeader(h *gateway.Header, name, value string) error {
	if !httpguts.ValidHeaderFieldName(name) {
		return gateway.NewAdaptationError(fmt.Sprintf("invalid header name %q", name), nil)
	}
	if !httpguts.ValidHeaderFieldValue(value) {
		return gateway.NewAdaptationError(fmt.Sprintf("invalid value for header %q", name), nil)
	}
	h.Add(name, value)
	return nil
}

// decodeBody materializes an envelope body. An empty body is reported as absent.
func decodeBody(body string, base64Encoded bool, limits Limits) ([]byte, error) {
	if body == "" {
		return nil, nil
	}
	raw := []byte(body)
	if base64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return nil, gateway.NewAdaptationError("body is not valid base64", err)
		}
		raw = decoded
	}
	if limits.MaxRequestBytes > 0 && int64(len(raw)) > limits.MaxRequestBytes {
		return nil, gateway.NewAdaptationError(fmt.Sprintf("body exceeds %d bytes", limits.MaxRequestBytes), nil)
	}
	return raw, nil
}

// checkContentLength rejects a body whose size disagrees with a declared Content-Length.
func checkContentLength(h gateway.Header, body []byte) error {
	declared := h.Get("Content-Length")
	if declared == "" {
		return nil
	}
	n, err := strconv.ParseInt(strings.TrimSpace(declared), 10, 64)
	if err != nil || n < 0 {
		return gateway.NewAdaptationError(fmt.Sprintf("invalid Content-Length %q", declared), err)
	}
	if n != int64(len(body)) {
		return gateway.NewAdaptationError(fmt.Sprintf("Content-Length is %d but body has %d bytes", n, len(body)), nil)
	}
	return nil
}

// encodeBody returns the body as an envelope string. Textual UTF-8 bodies are
// passed through as-is; anything else is base64-encoded and flagged.
func encodeBody(resp *gateway.Response) (string, bool) {
	body := resp.Body()
	if len(body) == 0 {
		return "", false
	}
	if isTextual(resp.Header().Get("Content-Type")) && utf8.Valid(body) {
		return string(body), false
	}
	return base64.StdEncoding.EncodeToString(body), true
}

func isTextual(contentType string) bool {
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	switch {
	case strings.HasPrefix(mediaType, "text/"):
		return true
	case mediaType == "application/json", strings.HasSuffix(mediaType, "+json"):
		return true
	case mediaType == "application/xml", strings.HasSuffix(mediaType, "+xml"):
		return true
	case mediaType == "application/javascript", mediaType == "application/x-www-form-urlencoded":
		return true
	}
	return false
}

func checkReplySize(payload []byte, limits Limits) ([]byte, error) {
	if limits.MaxResponseBytes > 0 && len(payload) > limits.MaxResponseBytes {
		return nil, fmt.Errorf("%w: %d > %d bytes", ErrResponseTooLarge, len(payload), limits.MaxResponseBytes)
	}
	return payload, nil
}
