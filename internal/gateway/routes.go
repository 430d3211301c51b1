package gateway

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dileep-u-k/aegis-gateway/internal/manifest"
	"github.com/dileep-u-k/aegis-gateway/internal/tools"
	"github.com/dileep-u-k/aegis-gateway/internal/version"
)

// HandlerFunc handles one uniform request. Returning an error hands the
// failure to the dispatcher, which turns it into an error response.
type HandlerFunc func(ctx context.Context, req *Request) (*Response, error)

// RouteBinding binds an exact (method, path) pair to a handler.
type RouteBinding struct {
	Method  string
	Path    string
	Name    string
	Handler HandlerFunc
}

// RouteTable is an ordered, read-only sequence of bindings.
type RouteTable struct {
	bindings []RouteBinding
}

// NewRouteTable validates the bindings and freezes them in order. Paths are
// exact strings: gin-style ":param" and "*wildcard" segments are rejected, as
// are duplicate (method, path) pairs.
func NewRouteTable(bindings ...RouteBinding) (*RouteTable, error) {
	seen := make(map[string]bool, len(bindings))
	for _, b := range bindings {
		if !ValidMethod(b.Method) {
			return nil, fmt.Errorf("route %q: unsupported method %q", b.Path, b.Method)
		}
		if !strings.HasPrefix(b.Path, "/") {
			return nil, fmt.Errorf("route %s %q: path must start with /", b.Method, b.Path)
		}
		if strings.ContainsAny(b.Path, ":*?#") {
			return nil, fmt.Errorf("route %s %q: path must be an exact string", b.Method, b.Path)
		}
		if b.Handler == nil {
			return nil, fmt.Errorf("route %s %s: handler is nil", b.Method, b.Path)
		}
		key := b.Method + " " + b.Path
		if seen[key] {
			return nil, fmt.Errorf("route %s: registered twice", key)
		}
		seen[key] = true
	}
	return &RouteTable{bindings: append([]RouteBinding(nil), bindings...)}, nil
}

// Bindings returns the bindings in registration order.
func (t *RouteTable) Bindings() []RouteBinding {
	return append([]RouteBinding(nil), t.bindings...)
}

// Match returns the first binding whose method and path equal the arguments.
func (t *RouteTable) Match(method, path string) (RouteBinding, bool) {
	for _, b := range t.bindings {
		if b.Method == method && b.Path == path {
			return b, true
		}
	}
	return RouteBinding{}, false
}

// Count returns how many bindings match (method, path).
func (t *RouteTable) Count(method, path string) int {
	n := 0
	for _, b := range t.bindings {
		if b.Method == method && b.Path == path {
			n++
		}
	}
	return n
}

func (t *RouteTable) Len() int { return len(t.bindings) }

// TableConfig is everything BuildRouteTable needs.
type TableConfig struct {
	ServiceName string
	Info        manifest.Info
	Catalog     *tools.Catalog
	ToolTimeout time.Duration
}

// BuildRouteTable derives the full route table from the tool catalog: the
// liveness and discovery routes, plus one POST binding per tool. The manifest
// served by discovery is generated from the same catalog, which is what keeps
// routes and advertised tools in one-to-one correspondence.
func BuildRouteTable(cfg TableConfig) (*RouteTable, manifest.Document, error) {
	if cfg.Catalog == nil {
		return nil, manifest.Document{}, fmt.Errorf("tool catalog is nil")
	}
	doc := manifest.Build(cfg.Info, cfg.Catalog)
	raw, err := doc.Marshal()
	if err != nil {
		return nil, manifest.Document{}, err
	}
	liveness, err := Liveness(cfg.ServiceName)
	if err != nil {
		return nil, manifest.Document{}, err
	}

	bindings := []RouteBinding{
		{Method: http.MethodGet, Path: "/", Name: "liveness", Handler: liveness},
		{Method: http.MethodPost, Path: "/", Name: "discover", Handler: Discover(raw, version.ManifestETag(raw))},
	}
	for _, entry := range cfg.Catalog.Entries() {
		def := entry.Definition()
		bindings = append(bindings, RouteBinding{
			Method:  http.MethodPost,
			Path:    def.Path,
			Name:    entry.Name(),
			Handler: InvokeTool(entry, cfg.ToolTimeout),
		})
	}

	table, err := NewRouteTable(bindings...)
	if err != nil {
		return nil, manifest.Document{}, err
	}
	return table, doc, nil
}
