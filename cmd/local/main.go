package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	cmdinternal "github.com/spacelift-io/metricscalr/cmd/internal"
	"github.com/spacelift-io/metricscalr/internal/tracing"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts, platform, err := cmdinternal.ParseOptions(logger)
	if err != nil {
		logger.Error("could not parse options", "error", err)
		os.Exit(1)
	}

	tp, err := tracing.InitTracer(ctx, opts.TracingExporter)
	if err != nil {
		logger.Error("could not initialize tracing", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			logger.Error("error shutting down tracer provider", "error", err)
		}
	}()

	daemon, err := cmdinternal.Build(ctx, logger, platform)
	if err != nil {
		logger.Error("could not start autoscaler", "error", err)
		os.Exit(1)
	}

	if err := daemon.Run(ctx); err != nil {
		logger.Error("autoscaler failed", "error", err)
		os.Exit(1)
	}
}
