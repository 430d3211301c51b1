package adapter

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"

	"github.com/dileep-u-k/aegis-gateway/internal/gateway"
)

// FromHTTP adapts a pre-parsed *http.Request. The body is read fully, bounded
// by limits.MaxRequestBytes, and must agree with a declared Content-Length.
func FromHTTP(r *http.Request, limits Limits) (*gateway.Request, error) {
	if r == nil {
		return nil, gateway.NewAdaptationError("nil request", nil)
	}

	var h gateway.Header
	names := make([]string, 0, len(r.Header))
	for name := range r.Header {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		for _, v := range r.Header[name] {
			if err := addHeader(&h, name, v); err != nil {
				return nil, err
			}
		}
	}
	if r.Host != "" && !h.Has("Host") {
		h.Set("Host", r.Host)
	}

	body, err := readBody(r, limits)
	if err != nil {
		return nil, err
	}

	target := r.URL.Path
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}
	return gateway.NewRequest(r.Method, target, h, body)
}

func readBody(r *http.Request, limits Limits) ([]byte, error) {
	if r.Body == nil || r.Body == http.NoBody {
		if r.ContentLength > 0 {
			return nil, gateway.NewAdaptationError(fmt.Sprintf("Content-Length is %d but there is no body", r.ContentLength), nil)
		}
		return nil, nil
	}
	defer r.Body.Close()

	reader := io.Reader(r.Body)
	if limits.MaxRequestBytes > 0 {
		reader = io.LimitReader(r.Body, limits.MaxRequestBytes+1)
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, gateway.NewAdaptationError("body shorter than declared Content-Length", err)
		}
		return nil, gateway.NewAdaptationError("read body", err)
	}
	if limits.MaxRequestBytes > 0 && int64(len(body)) > limits.MaxRequestBytes {
		return nil, gateway.NewAdaptationError(fmt.Sprintf("body exceeds %d bytes", limits.MaxRequestBytes), nil)
	}
	if r.ContentLength >= 0 && int64(len(body)) != r.ContentLength {
		return nil, gateway.NewAdaptationError(fmt.Sprintf("Content-Length is %d but body has %d bytes", r.ContentLength, len(body)), nil)
	}
	if len(body) == 0 {
		return nil, nil
	}
	return body, nil
}

// WriteHTTP writes a uniform response to w, headers in order and body verbatim.
func WriteHTTP(w http.ResponseWriter, resp *gateway.Response) error {
	dst := w.Header()
	resp.Header().Each(func(k, v string) {
		dst[k] = []string{v}
	})
	if dst.Get("Content-Length") == "" {
		dst.Set("Content-Length", strconv.Itoa(resp.Len()))
	}
	w.WriteHeader(resp.Status())
	if _, err := w.Write(resp.Body()); err != nil {
		return fmt.Errorf("write response body: %w", err)
	}
	return nil
}
