// Package main implements the entry point for the task API server, an
// HTTP service that manages an in-memory collection of tasks.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
)

// main is the entry point for the task-api server.
// It loads configuration, sets up logging, wires the application and serves
// HTTP until SIGINT or SIGTERM.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatalf("task-api: %v", err)
	}
}

// run holds everything main does so that errors unwind deferred calls.
func run(ctx context.Context) error {
	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}

	logger, err := setupAppLogger(cfg)
	if err != nil {
		return err
	}

	app, err := newApplication(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
