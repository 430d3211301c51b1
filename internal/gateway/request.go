package gateway

import (
	"fmt"
	"net/http"
	"strings"
)

var knownMethods = map[string]bool{
	http.MethodGet:     true,
	http.MethodHead:    true,
	http.MethodPost:    true,
	http.MethodPut:     true,
	http.MethodPatch:   true,
	http.MethodDelete:  true,
	http.MethodOptions: true,
	http.MethodConnect: true,
	http.MethodTrace:   true,
}

// ValidMethod reports whether m is one of the standard HTTP method tokens.
func ValidMethod(m string) bool { return knownMethods[m] }

// Request is the uniform internal request every native invocation shape is
// adapted into. It is immutable: accessors return copies.
type Request struct {
	method   string
	path     string
	rawQuery string
	header   Header
	body     []byte
}

// NewRequest builds a Request from a method, a request target (path with an
// optional "?query"), a header, and a body. A nil body means no body.
// It fails with an *AdaptationError when the method or target is unusable.
func NewRequest(method, target string, header Header, body []byte) (*Request, error) {
	if method == "" {
		return nil, NewAdaptationError("missing method", nil)
	}
	if !ValidMethod(method) {
		return nil, NewAdaptationError(fmt.Sprintf("unsupported method %q", method), nil)
	}
	path, query, _ := strings.Cut(target, "?")
	if path == "" {
		path = "/"
	}
	if !strings.HasPrefix(path, "/") {
		return nil, NewAdaptationError(fmt.Sprintf("path %q must start with /", path), nil)
	}

	req := &Request{
		method:   method,
		path:     path,
		rawQuery: query,
		header:   header.Clone(),
	}
	if body != nil {
		req.body = append([]byte{}, body...)
	}
	return req, nil
}

func (r *Request) Method() string   { return r.method }
func (r *Request) Path() string     { return r.path }
func (r *Request) RawQuery() string { return r.rawQuery }
func (r *Request) Header() Header   { return r.header.Clone() }

// Body returns a copy of the body, or nil when the request has none.
func (r *Request) Body() []byte {
	if r.body == nil {
		return nil
	}
	return append([]byte{}, r.body...)
}

// HasBody reports whether the request carried a body at all.
func (r *Request) HasBody() bool { return r.body != nil }

func (r *Request) String() string { return r.method + " " + r.path }
