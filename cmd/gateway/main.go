// In file: cmd/gateway/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/dileep-u-k/aegis-gateway/internal/adapter"
	"github.com/dileep-u-k/aegis-gateway/internal/app"
	"github.com/dileep-u-k/aegis-gateway/internal/config"
	"github.com/dileep-u-k/aegis-gateway/internal/logging"
)

// main is the composition root: it loads configuration, builds the gateway
// once, and hands it to exactly one runtime.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "configuration error:", err)
		os.Exit(1)
	}
	logger := logging.New(nil, cfg.LogLevel, cfg.LogFormat)
	for _, w := range cfg.Warnings() {
		logger.Warn().Msg(w)
	}
	logger.Info().Str("build", GetBuildInfo().String()).Msg("starting Aegis gateway")

	gw, err := app.New(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("could not build gateway")
	}

	if gw.Runtime() != adapter.ShapeHTTP {
		// lambda.Start blocks for the life of the process.
		lambda.Start(gw.HandleEvent)
		return
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           gw,
		ReadHeaderTimeout: 10 * time.Second,
	}
	if err := runServerWithGracefulShutdown(srv, logger); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

// runServerWithGracefulShutdown handles the server lifecycle.
func runServerWithGracefulShutdown(srv *http.Server, logger *logging.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("gateway is listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("listen error: %w", err)
	case <-quit:
	}

	logger.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	logger.Info().Msg("server exited gracefully")
	return nil
}
