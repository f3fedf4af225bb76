package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/gabapcia/dictkit/internal/config"
	"github.com/gabapcia/dictkit/internal/dictfile"
	"github.com/gabapcia/dictkit/internal/handlers/cli"
	"github.com/gabapcia/dictkit/internal/pkg/logger"
	"github.com/gabapcia/dictkit/internal/pkg/telemetry"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "dictkit:", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	var shutdown telemetry.ShutdownFunc = telemetry.Noop
	if cfg.TelemetryEnabled {
		if shutdown, err = telemetry.Init(ctx, cfg.ServiceName); err != nil {
			return err
		}
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Warn(ctx, "telemetry shutdown failed", "error", err)
		}
	}()

	// The logger bridges to the provider registered by telemetry.Init.
	if err := logger.Init(logger.WithLevel(cfg.LogLevel)); err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx = logger.WithFields(ctx, "invocation_id", uuid.NewString())
	logger.Debug(ctx, "dictkit started", "output", cfg.Output, "telemetry", cfg.TelemetryEnabled)

	return cli.Run(ctx, dictfile.NewReader(), cfg.Output)
}
