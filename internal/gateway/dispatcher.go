package gateway

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dileep-u-k/aegis-gateway/internal/logging"
)

// Dispatcher routes uniform requests through a gin engine compiled once from
// a RouteTable. It never returns an error: unmatched routes, handler errors,
// and handler panics all come back as responses.
type Dispatcher struct {
	table  *RouteTable
	engine *gin.Engine
	log    *logging.Logger
}

// outcome carries the uniform request into gin and the uniform response back out.
type outcome struct {
	req  *Request
	resp *Response
}

type outcomeKey struct{}

func outcomeFrom(c *gin.Context) *outcome {
	out, _ := c.Request.Context().Value(outcomeKey{}).(*outcome)
	return out
}

// NewDispatcher compiles the table into a gin engine. The table is only read.
func NewDispatcher(table *RouteTable, log *logging.Logger) *Dispatcher {
	if log == nil {
		log = logging.Nop()
	}
	d := &Dispatcher{table: table, log: log.Sub("dispatcher")}

	engine := gin.New()
	// Exact matching only: no redirects between "/x" and "/x/", no 405s.
	engine.RedirectTrailingSlash = false
	engine.RedirectFixedPath = false
	engine.HandleMethodNotAllowed = false
	engine.Use(gin.CustomRecoveryWithWriter(io.Discard, d.recovered), d.logRoute)
	for _, b := range table.Bindings() {
		engine.Handle(b.Method, b.Path, d.bind(b))
	}
	engine.NoRoute(d.notFound)
	d.engine = engine
	return d
}

// Table returns the route table the dispatcher was built from.
func (d *Dispatcher) Table() *RouteTable { return d.table }

// Dispatch runs req through the engine and returns the handler's response.
func (d *Dispatcher) Dispatch(ctx context.Context, req *Request) *Response {
	out := &outcome{req: req}
	hreq, err := http.NewRequestWithContext(context.WithValue(ctx, outcomeKey{}, out), req.Method(), "/", bytes.NewReader(req.Body()))
	if err != nil {
		return d.fault(req.String(), fmt.Errorf("build internal request: %w", err))
	}
	hreq.URL.Path = req.Path()
	hreq.URL.RawQuery = req.RawQuery()
	hreq.RequestURI = req.Path()
	hreq.Header = req.Header().HTTP()

	d.engine.ServeHTTP(newDiscardWriter(), hreq)

	if out.resp == nil {
		return d.fault(req.String(), errors.New("no response produced"))
	}
	return out.resp
}

func (d *Dispatcher) bind(b RouteBinding) gin.HandlerFunc {
	return func(c *gin.Context) {
		out := outcomeFrom(c)
		if out == nil {
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		resp, err := b.Handler(c.Request.Context(), out.req)
		switch {
		case err != nil:
			resp = d.handlerError(b, err)
		case resp == nil:
			resp = d.fault(b.Name, errors.New("handler returned no response"))
		}
		out.resp = resp
		c.Status(resp.Status())
	}
}

func (d *Dispatcher) handlerError(b RouteBinding, err error) *Response {
	resp := ErrorResponse(err)
	if resp.Status() >= http.StatusInternalServerError {
		d.log.Error().Err(err).Str("route", b.Name).Int("status", resp.Status()).Msg("handler failed")
	} else {
		d.log.Debug().Err(err).Str("route", b.Name).Int("status", resp.Status()).Msg("request rejected")
	}
	return resp
}

func (d *Dispatcher) fault(route string, err error) *Response {
	d.log.Error().Err(err).Str("route", route).Msg("handler fault")
	return ErrorResponse(&HandlerFault{Route: route, Err: err})
}

func (d *Dispatcher) recovered(c *gin.Context, rec any) {
	d.log.Error().
		Str("route", c.FullPath()).
		Interface("panic", rec).
		Str("stack", string(debug.Stack())).
		Msg("handler panicked")
	if out := outcomeFrom(c); out != nil {
		out.resp = ErrorResponse(&HandlerFault{Route: c.FullPath(), Err: fmt.Errorf("panic: %v", rec)})
	}
	c.AbortWithStatus(http.StatusInternalServerError)
}

func (d *Dispatcher) notFound(c *gin.Context) {
	if out := outcomeFrom(c); out != nil {
		out.resp = ErrorResponse(&RouteNotFound{Method: c.Request.Method, Path: c.Request.URL.Path})
	}
	c.Status(http.StatusNotFound)
}

func (d *Dispatcher) logRoute(c *gin.Context) {
	start := time.Now()
	c.Next()
	d.log.Debug().
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Str("route", c.FullPath()).
		Int("status", c.Writer.Status()).
		Dur("elapsed", time.Since(start)).
		Msg("dispatched")
}

// discardWriter satisfies gin's need for an http.ResponseWriter. Responses
// travel back through the outcome, so nothing written here is kept.
type discardWriter struct {
	header http.Header
}

func newDiscardWriter() *discardWriter { return &discardWriter{header: make(http.Header)} }

func (w *discardWriter) Header() http.Header         { return w.header }
func (w *discardWriter) Write(p []byte) (int, error) { return len(p), nil }
func (w *discardWriter) WriteHeader(int)             {}
