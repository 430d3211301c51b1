// In file: api/index.go

// Package handler is the entry point for the Vercel Go runtime, which calls
// Handler once per invocation on a reused process instance.
package handler

import (
	"net/http"
	"sync"

	"github.com/dileep-u-k/aegis-gateway/internal/adapter"
	"github.com/dileep-u-k/aegis-gateway/internal/app"
	"github.com/dileep-u-k/aegis-gateway/internal/config"
	"github.com/dileep-u-k/aegis-gateway/internal/gateway"
	"github.com/dileep-u-k/aegis-gateway/internal/logging"
)

// build runs once per process instance; later invocations share the result.
var build = sync.OnceValues(func() (*app.Gateway, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	// This runtime always hands over a pre-parsed request.
	cfg.Runtime = adapter.ShapeHTTP
	logger := logging.New(nil, cfg.LogLevel, "json")
	for _, w := range cfg.Warnings() {
		logger.Warn().Msg(w)
	}
	return app.New(cfg, logger)
})

// Handler serves one Vercel invocation.
func Handler(w http.ResponseWriter, r *http.Request) {
	gw, err := build()
	if err != nil {
		logging.New(nil, "error", "json").Error().Err(err).Msg("gateway unavailable")
		_ = adapter.WriteHTTP(w, gateway.ErrorResponse(err))
		return
	}
	gw.ServeHTTP(w, r)
}
