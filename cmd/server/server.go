package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// startHTTPServer listens on the configured port and serves router until
// ctx is cancelled, then shuts down gracefully.
func (app *application) startHTTPServer(ctx context.Context, router http.Handler) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", app.config.Server.Port))
	if err != nil {
		return fmt.Errorf("failed to listen on port %d: %w", app.config.Server.Port, err)
	}
	return app.serve(ctx, ln, router)
}

// serve runs the HTTP server on ln. Shutdown waits up to the configured
// shutdown timeout for in-flight requests before cleanup runs.
func (app *application) serve(ctx context.Context, ln net.Listener, router http.Handler) error {
	serverCfg := app.config.Server
	server := &http.Server{
		Handler:           router,
		ReadTimeout:       serverCfg.ReadTimeout,
		ReadHeaderTimeout: serverCfg.ReadTimeout,
		WriteTimeout:      serverCfg.WriteTimeout,
		IdleTimeout:       serverCfg.IdleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		app.logger.Info("Starting server", "addr", ln.Addr().String())
		serveErr <- server.Serve(ln)
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.logger.Error("Server failed", "error", err)
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		app.logger.Info("Shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), serverCfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		app.logger.Error("Server shutdown failed", "error", err)
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	app.cleanup()

	app.logger.Info("Server shutdown completed")
	return nil
}
