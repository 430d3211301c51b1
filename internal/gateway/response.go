package gateway

import (
	"encoding/json"
	"fmt"
)

const (
	contentTypeJSON = "application/json"
	headerContent   = "Content-Type"
)

// Response is the uniform internal response produced by the dispatcher.
// It is immutable once constructed.
type Response struct {
	status int
	header Header
	body   []byte
}

// NewResponse builds a Response. The status must be in 100..599.
func NewResponse(status int, header Header, body []byte) (*Response, error) {
	if status < 100 || status > 599 {
		return nil, fmt.Errorf("status %d outside 100..599", status)
	}
	return &Response{status: status, header: header.Clone(), body: append([]byte{}, body...)}, nil
}

// JSON encodes v as the body of a response with a JSON content type.
func JSON(status int, v any) (*Response, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode response body: %w", err)
	}
	return RawJSON(status, body)
}

// RawJSON wraps an already-encoded JSON body.
func RawJSON(status int, body []byte) (*Response, error) {
	var h Header
	h.Set(headerContent, contentTypeJSON)
	return NewResponse(status, h, body)
}

func (r *Response) Status() int    { return r.status }
func (r *Response) Header() Header { return r.header.Clone() }
func (r *Response) Body() []byte   { return append([]byte{}, r.body...) }

// Len is the body length in bytes.
func (r *Response) Len() int { return len(r.body) }

// WithHeader returns a copy of r with the header field set.
func (r *Response) WithHeader(key, value string) *Response {
	out := &Response{status: r.status, header: r.header.Clone(), body: r.body}
	out.header.Set(key, value)
	return out
}
