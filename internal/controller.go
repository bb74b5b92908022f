package internal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"

	"github.com/shurcooL/graphql"
	spacelift "github.com/spacelift-io/spacectl/client"
	"github.com/spacelift-io/spacectl/client/session"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/spacelift-io/metricscalr/internal/ifaces"
)

// Controller handles interactions with the Spacelift API. It reads the worker
// pool for the Spacelift metric source and drains workers for GroupPool.
type Controller struct {
	// Clients.
	Spacelift ifaces.Spacelift

	// Configuration.
	SpaceliftWorkerPoolID string

	// Telemetry.
	Tracer trace.Tracer
}

// NewController creates a Spacelift controller authenticated with an API key.
func NewController(ctx context.Context, endpoint, keyID, keySecret, workerPoolID string, tracer trace.Tracer) (*Controller, error) {
	client, err := newSpaceliftClient(ctx, endpoint, keyID, keySecret)
	if err != nil {
		return nil, err
	}

	return &Controller{
		Spacelift:             client,
		SpaceliftWorkerPoolID: workerPoolID,
		Tracer:                tracer,
	}, nil
}

func newSpaceliftClient(ctx context.Context, endpoint, keyID, keySecret string) (ifaces.Spacelift, error) {
	httpClient := &http.Client{
		Transport: otelhttp.NewTransport(
			http.DefaultTransport,
			otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string {
				return r.Host
			}),
		),
	}

	slSession, err := session.FromAPIKey(ctx, httpClient)(endpoint, keyID, keySecret)
	if err != nil {
		return nil, fmt.Errorf("could not create Spacelift session: %w", err)
	}

	return spacelift.New(httpClient, slSession), nil
}

// GetWorkerPool returns the worker pool from Spacelift, without drained
// workers, oldest worker first.
func (c *Controller) GetWorkerPool(ctx context.Context) (*WorkerPool, error) {
	ctx, span := c.Tracer.Start(ctx, "spacelift.workerpool.get")
	defer span.End()

	var details WorkerPoolDetails

	if err := c.Spacelift.Query(ctx, &details, map[string]any{"workerPool": graphql.ID(c.SpaceliftWorkerPoolID)}); err != nil {
		return nil, fmt.Errorf("could not get Spacelift worker pool details: %w", err)
	}

	if details.Pool == nil {
		return nil, errors.New("worker pool not found or not accessible")
	}

	workers := details.Pool.Workers[:0]
	for _, worker := range details.Pool.Workers {
		if !worker.Drained {
			workers = append(workers, worker)
		}
	}
	details.Pool.Workers = workers

	sort.SliceStable(details.Pool.Workers, func(i, j int) bool {
		return details.Pool.Workers[i].CreatedAt < details.Pool.Workers[j].CreatedAt
	})

	span.SetAttributes(
		attribute.Int("workers", len(details.Pool.Workers)),
		attribute.Int("pending_runs", int(details.Pool.PendingRuns)),
	)

	return details.Pool, nil
}

// DrainWorker drains a worker in the Spacelift worker pool. A worker found
// busy is undrained again and false is returned.
func (c *Controller) DrainWorker(ctx context.Context, workerID string) (bool, error) {
	ctx, span := c.Tracer.Start(ctx, "spacelift.worker.drain")
	defer span.End()

	span.SetAttributes(attribute.String("worker_id", workerID))

	worker, err := c.workerDrainSet(ctx, workerID, true)
	if err != nil {
		return false, fmt.Errorf("could not drain worker: %w", err)
	}

	span.SetAttributes(
		attribute.Bool("worker.busy", worker.Busy),
		attribute.Bool("worker.drained", worker.Drained),
	)

	if !worker.Busy {
		return true, nil
	}

	if err := c.UndrainWorker(ctx, workerID); err != nil {
		return false, fmt.Errorf("could not undrain a busy worker: %w", err)
	}

	return false, nil
}

func (c *Controller) UndrainWorker(ctx context.Context, workerID string) error {
	if _, err := c.workerDrainSet(ctx, workerID, false); err != nil {
		return fmt.Errorf("could not undrain worker: %w", err)
	}

	return nil
}

func (c *Controller) workerDrainSet(ctx context.Context, workerID string, drain bool) (*Worker, error) {
	ctx, span := c.Tracer.Start(ctx, fmt.Sprintf("spacelift.worker.setdrain.%t", drain))
	defer span.End()

	span.SetAttributes(
		attribute.String("worker_id", workerID),
		attribute.String("worker_pool_id", c.SpaceliftWorkerPoolID),
		attribute.Bool("drain", drain),
	)

	var mutation WorkerDrainSet

	variables := map[string]any{
		"workerPoolId": graphql.ID(c.SpaceliftWorkerPoolID),
		"workerId":     graphql.ID(workerID),
		"drain":        graphql.Boolean(drain),
	}

	if err := c.Spacelift.Mutate(ctx, &mutation, variables); err != nil {
		return nil, fmt.Errorf("could not set worker drain to %t: %w", drain, err)
	}

	return &mutation.Worker, nil
}
