package gateway

import (
	"net/http"
	"net/textproto"
)

// Header is an ordered header mapping with case-insensitive keys. Keys are
// stored in canonical MIME form and keep their first-insertion order. Adding a
// value for a key that is already present appends it, comma-separated (or
// "; "-separated for Cookie), as HTTP allows for repeated fields.
//
// The zero value is an empty header ready to use.
type Header struct {
	keys   []string
	values map[string]string
}

// Add appends value to key.
func (h *Header) Add(key, value string) {
	k := textproto.CanonicalMIMEHeaderKey(key)
	if h.values == nil {
		h.values = make(map[string]string)
	}
	if old, ok := h.values[k]; ok {
		sep := ", "
		if k == "Cookie" {
			sep = "; "
		}
		h.values[k] = old + sep + value
		return
	}
	h.keys = append(h.keys, k)
	h.values[k] = value
}

// Set replaces the value of key, keeping its position if it already exists.
func (h *Header) Set(key, value string) {
	k := textproto.CanonicalMIMEHeaderKey(key)
	if _, ok := h.values[k]; ok {
		h.values[k] = value
		return
	}
	h.Add(k, value)
}

// Get returns the value of key, or "" if absent.
func (h Header) Get(key string) string {
	return h.values[textproto.CanonicalMIMEHeaderKey(key)]
}

// Has reports whether key is present.
func (h Header) Has(key string) bool {
	_, ok := h.values[textproto.CanonicalMIMEHeaderKey(key)]
	return ok
}

func (h Header) Len() int { return len(h.keys) }

// Keys returns the canonical keys in insertion order.
func (h Header) Keys() []string {
	return append([]string(nil), h.keys...)
}

// Each calls fn for every field in insertion order.
func (h Header) Each(fn func(key, value string)) {
	for _, k := range h.keys {
		fn(k, h.values[k])
	}
}

// Clone returns a deep copy of h.
func (h Header) Clone() Header {
	out := Header{keys: append([]string(nil), h.keys...)}
	if h.values != nil {
		out.values = make(map[string]string, len(h.values))
		for k, v := range h.values {
			out.values[k] = v
		}
	}
	return out
}

// Map returns the header as a plain map; order is lost.
func (h Header) Map() map[string]string {
	out := make(map[string]string, len(h.keys))
	for k, v := range h.values {
		out[k] = v
	}
	return out
}

// HTTP converts the header to a net/http header.
func (h Header) HTTP() http.Header {
	out := make(http.Header, len(h.keys))
	for _, k := range h.keys {
		out[k] = []string{h.values[k]}
	}
	return out
}
