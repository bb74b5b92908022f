package internal

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

const (
	// MetricWorkerDemand is the number of runs each worker would have to
	// handle: pending and running runs over workers.
	MetricWorkerDemand = "worker_demand"

	// MetricWorkerUtilization is the share of busy workers.
	MetricWorkerUtilization = "worker_utilization"
)

//go:generate mockery --output ./ --name WorkerPoolReader --filename mock_worker_pool_reader_test.go --outpkg internal_test
type WorkerPoolReader interface {
	GetWorkerPool(ctx context.Context) (*WorkerPool, error)
}

// SpaceliftSource is a MetricSource publishing per-worker metrics of a
// Spacelift worker pool, read every Interval.
type SpaceliftSource struct {
	*MetricBus

	Pool         WorkerPoolReader
	WorkerPoolID string
	Interval     time.Duration

	logger *slog.Logger
	now    func() time.Time
}

func NewSpaceliftSource(pool WorkerPoolReader, workerPoolID string, interval time.Duration, logger *slog.Logger) *SpaceliftSource {
	return &SpaceliftSource{
		MetricBus:    NewMetricBus(logger),
		Pool:         pool,
		WorkerPoolID: workerPoolID,
		Interval:     interval,
		logger:       logger.With("worker_pool_id", workerPoolID),
		now:          time.Now,
	}
}

// Subscribe accepts the metrics of the source's own worker pool only.
func (s *SpaceliftSource) Subscribe(ctx context.Context, ref MetricRef, handler MetricHandler) (Subscription, error) {
	if ref.ResourceID != s.WorkerPoolID {
		return "", fmt.Errorf("unknown worker pool %q", ref.ResourceID)
	}

	switch ref.MetricID {
	case MetricWorkerDemand, MetricWorkerUtilization:
	default:
		return "", fmt.Errorf("unsupported worker pool metric %q", ref.MetricID)
	}

	return s.MetricBus.Subscribe(ctx, ref, handler)
}

// Poll reads the worker pool once and publishes its metrics.
func (s *SpaceliftSource) Poll(ctx context.Context) error {
	if s.SubscriptionCount() == 0 {
		return nil
	}

	pool, err := s.Pool.GetWorkerPool(ctx)
	if err != nil {
		return fmt.Errorf("could not get worker pool: %w", err)
	}

	now := s.now()

	for metricID, value := range WorkerPoolMetrics(pool) {
		s.Publish(ctx, MetricRef{ResourceID: s.WorkerPoolID, MetricID: metricID}, Sample{Value: value, Timestamp: now})
	}

	return nil
}

// Run polls until ctx is done.
func (s *SpaceliftSource) Run(ctx context.Context) error {
	return pollEvery(ctx, s.Interval, s.logger, s.Poll)
}

// WorkerPoolMetrics computes the per-worker metrics of a worker pool. An
// empty pool counts as a single worker, so that pending runs still show up
// as demand.
func WorkerPoolMetrics(pool *WorkerPool) map[string]float64 {
	workers := len(pool.Workers)
	busy := pool.BusyWorkers()

	utilization := 0.0
	if workers > 0 {
		utilization = float64(busy) / float64(workers)
	}

	return map[string]float64{
		MetricWorkerDemand:      float64(int(pool.PendingRuns)+busy) / float64(max(workers, 1)),
		MetricWorkerUtilization: utilization,
	}
}
