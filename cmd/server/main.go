package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	cmdinternal "github.com/spacelift-io/metricscalr/cmd/internal"
	"github.com/spacelift-io/metricscalr/internal/tracing"
)

// The server runs the autoscaler and exposes it over HTTP, for status and
// runtime reconfiguration.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	if err := run(logger); err != nil {
		logger.Error("autoscaler failed", "error", err)
		os.Exit(1)
	}

	logger.Info("Server stopped gracefully")
}

func run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts, platform, err := cmdinternal.ParseOptions(logger)
	if err != nil {
		return err
	}

	tp, err := tracing.InitTracer(ctx, opts.TracingExporter)
	if err != nil {
		return err
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			logger.Error("error shutting down tracer provider", "error", err)
		}
	}()

	daemon, err := cmdinternal.Build(ctx, logger, platform)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:         ":" + opts.Port,
		Handler:      cmdinternal.NewHandler(daemon, logger),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return daemon.Run(groupCtx)
	})

	group.Go(func() error {
		logger.Info("Starting HTTP server", "port", opts.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()
		logger.Info("Shutdown signal received, starting graceful shutdown")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	return group.Wait()
}
