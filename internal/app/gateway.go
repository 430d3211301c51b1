// In file: internal/app/gateway.go

// Package app is the composition root shared by every entry point: it turns a
// Config into a ready Gateway whose route table, manifest and dispatcher are
// built once and then only read.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dileep-u-k/aegis-gateway/internal/adapter"
	"github.com/dileep-u-k/aegis-gateway/internal/config"
	"github.com/dileep-u-k/aegis-gateway/internal/gateway"
	"github.com/dileep-u-k/aegis-gateway/internal/logging"
	"github.com/dileep-u-k/aegis-gateway/internal/manifest"
	"github.com/dileep-u-k/aegis-gateway/internal/tools"
)

// Gateway is one process instance of the tool gateway.
type Gateway struct {
	cfg        *config.Config
	log        *logging.Logger
	dispatcher *gateway.Dispatcher
	manifest   manifest.Document
	codec      adapter.EventCodec
}

// Option overrides a collaborator, mostly for tests.
type Option func(*options)

type options struct {
	scraper tools.ContentScraperService
	search  tools.VectorSearchService
}

// WithScraper replaces the placeholder ContentScraperService.
func WithScraper(s tools.ContentScraperService) Option {
	return func(o *options) { o.scraper = s }
}

// WithVectorSearch replaces the fixture-backed VectorSearchService.
func WithVectorSearch(s tools.VectorSearchService) Option {
	return func(o *options) { o.search = s }
}

// New builds the gateway described by cfg.
func New(cfg *config.Config, log *logging.Logger, opts ...Option) (*Gateway, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if log == nil {
		log = logging.Nop()
	}
	gin.SetMode(cfg.GinMode)

	o := options{scraper: tools.PlaceholderScraper{}}
	for _, opt := range opts {
		opt(&o)
	}
	if o.search == nil {
		search, err := loadFixtures(cfg.DataVaultFixtures)
		if err != nil {
			return nil, err
		}
		o.search = search
	}

	catalog, err := newCatalog(cfg, o)
	if err != nil {
		return nil, err
	}
	table, doc, err := gateway.BuildRouteTable(gateway.TableConfig{
		ServiceName: cfg.ServiceName,
		Info:        manifest.DefaultInfo,
		Catalog:     catalog,
		ToolTimeout: cfg.ToolTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build route table: %w", err)
	}

	g := &Gateway{
		cfg:        cfg,
		log:        log.Sub("gateway"),
		dispatcher: gateway.NewDispatcher(table, log),
		manifest:   doc,
	}
	if cfg.Runtime != adapter.ShapeHTTP {
		if g.codec, err = adapter.NewEventCodec(cfg.Runtime, cfg.Limits()); err != nil {
			return nil, err
		}
	}
	g.log.Info().
		Str("runtime", cfg.Runtime).
		Int("routes", table.Len()).
		Int("tools", catalog.ToolCount()).
		Msg("gateway ready")
	return g, nil
}

func loadFixtures(path string) (*tools.FixtureVectorSearch, error) {
	if path == "" {
		search, err := tools.DefaultFixtures()
		if err != nil {
			return nil, fmt.Errorf("failed to load embedded datavault fixtures: %w", err)
		}
		return search, nil
	}
	search, err := tools.LoadFixtureFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load datavault fixtures: %w", err)
	}
	return search, nil
}

func newCatalog(cfg *config.Config, o options) (*tools.Catalog, error) {
	scraper, err := tools.NewScraperTool(o.scraper)
	if err != nil {
		return nil, fmt.Errorf("failed to create scraper tool: %w", err)
	}
	vault, err := tools.NewDataVaultTool(o.search, cfg.DataVaultTopK)
	if err != nil {
		return nil, fmt.Errorf("failed to create datavault tool: %w", err)
	}

	catalog := tools.NewCatalog()
	for _, tool := range []tools.Tool{scraper, vault} {
		if err := catalog.Register(tool); err != nil {
			return nil, err
		}
	}
	return catalog, nil
}

// Manifest returns the capability manifest served on POST /.
func (g *Gateway) Manifest() manifest.Document { return g.manifest }

// Runtime returns the configured runtime shape.
func (g *Gateway) Runtime() string { return g.cfg.Runtime }

// RequestIDHeader carries the activation's request ID. A caller-supplied
// value is echoed back; otherwise a new one is generated.
const RequestIDHeader = "X-Request-Id"

// Dispatch runs one uniform request through the dispatcher and logs the activation.
func (g *Gateway) Dispatch(ctx context.Context, req *gateway.Request) *gateway.Response {
	start := time.Now()
	id := req.Header().Get(RequestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	resp := g.dispatcher.Dispatch(ctx, req).WithHeader(RequestIDHeader, id)
	g.log.Info().
		Str("request_id", id).
		Str("runtime", g.cfg.Runtime).
		Str("method", req.Method()).
		Str("path", req.Path()).
		Int("status", resp.Status()).
		Dur("duration", time.Since(start)).
		Msg("activation")
	return resp
}

// HandleEvent is the callback for event-based runtimes. Adaptation failures
// become 400 replies; only a reply that cannot be encoded is returned as an error.
func (g *Gateway) HandleEvent(ctx context.Context, payload json.RawMessage) (json.RawMessage, error) {
	if g.codec == nil {
		return nil, fmt.Errorf("runtime %q does not accept events", g.cfg.Runtime)
	}

	var resp *gateway.Response
	req, err := g.codec.DecodeRequest(payload)
	if err != nil {
		resp = g.rejected(err)
	} else {
		resp = g.Dispatch(ctx, req)
	}

	out, err := g.codec.EncodeResponse(resp)
	if err != nil {
		g.log.Error().Err(err).Int("status", resp.Status()).Msg("failed to encode reply")
		return nil, err
	}
	return out, nil
}

// ServeHTTP serves the pre-parsed request shape.
func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var resp *gateway.Response
	req, err := adapter.FromHTTP(r, g.cfg.Limits())
	if err != nil {
		resp = g.rejected(err)
	} else {
		resp = g.Dispatch(r.Context(), req)
	}
	if err := adapter.WriteHTTP(w, resp); err != nil {
		// Headers are already out; the runtime sees a truncated reply.
		g.log.Error().Err(err).Msg("failed to write reply")
	}
}

func (g *Gateway) rejected(err error) *gateway.Response {
	id := uuid.NewString()
	resp := gateway.ErrorResponse(err).WithHeader(RequestIDHeader, id)
	g.log.Info().
		Err(err).
		Str("request_id", id).
		Str("runtime", g.cfg.Runtime).
		Int("status", resp.Status()).
		Msg("activation")
	return resp
}
