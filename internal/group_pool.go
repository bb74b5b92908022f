package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Drainer drains Spacelift workers before their instances are removed.
//
//go:generate mockery --output ./ --name Drainer --filename mock_drainer_test.go --outpkg internal_test
type Drainer interface {
	GetWorkerPool(ctx context.Context) (*WorkerPool, error)

	// DrainWorker drains an idle worker. A busy worker is left undrained and
	// false is returned.
	DrainWorker(ctx context.Context, workerID string) (bool, error)

	UndrainWorker(ctx context.Context, workerID string) error
}

// GroupPool is a ResizeTarget backed by a cloud autoscaling group.
//
// Growing sets the desired capacity, up to the group's own maximum. Without
// a Drainer shrinking does the same. With one, idle workers are drained and
// their instances killed one by one, oldest first, and the shrink stops at
// the first worker that turns out to be busy.
type GroupPool struct {
	Group   GroupController
	Drainer Drainer

	Logger *slog.Logger
	Tracer trace.Tracer
}

func (p *GroupPool) CurrentSize(ctx context.Context) (int, error) {
	group, err := p.Group.GetAutoscalingGroup(ctx)
	if err != nil {
		return 0, fmt.Errorf("could not get autoscaling group: %w", err)
	}

	if group.DesiredCapacity < 0 {
		return 0, fmt.Errorf("autoscaling group %s has no desired capacity", group.Name)
	}

	return group.DesiredCapacity, nil
}

func (p *GroupPool) Resize(ctx context.Context, size int) (actual int, err error) {
	ctx, span := p.Tracer.Start(ctx, "group.resize")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "")
		}
		span.End()
	}()

	group, err := p.Group.GetAutoscalingGroup(ctx)
	if err != nil {
		return 0, fmt.Errorf("could not get autoscaling group: %w", err)
	}

	span.SetAttributes(
		attribute.String("group", group.Name),
		attribute.Int("desired_capacity", group.DesiredCapacity),
		attribute.Int("requested", size),
	)

	logger := p.Logger.With("group", group.Name, "desired_capacity", group.DesiredCapacity, "requested", size)

	switch {
	case size > group.DesiredCapacity:
		return p.grow(ctx, logger, group, size)
	case size < group.DesiredCapacity:
		return p.shrink(ctx, logger, group, size)
	}

	return group.DesiredCapacity, nil
}

func (p *GroupPool) grow(ctx context.Context, logger *slog.Logger, group *AutoScalingGroup, size int) (int, error) {
	capacity := size

	if group.MaxSize >= 0 && capacity > group.MaxSize {
		logger.Warn("requested size exceeds the group maximum", "max_size", group.MaxSize)
		capacity = group.MaxSize
	}

	if capacity <= group.DesiredCapacity {
		return group.DesiredCapacity, nil
	}

	if err := p.Group.SetCapacity(ctx, capacity); err != nil {
		return 0, fmt.Errorf("could not scale up group: %w", err)
	}

	logger.Info("scaled up group", "capacity", capacity)

	return capacity, nil
}

func (p *GroupPool) shrink(ctx context.Context, logger *slog.Logger, group *AutoScalingGroup, size int) (int, error) {
	capacity := max(size, group.MinSize)

	if capacity >= group.DesiredCapacity {
		logger.Info("group already at its minimum size", "min_size", group.MinSize)
		return group.DesiredCapacity, nil
	}

	if p.Drainer == nil {
		if err := p.Group.SetCapacity(ctx, capacity); err != nil {
			return 0, fmt.Errorf("could not scale down group: %w", err)
		}

		logger.Info("scaled down group", "capacity", capacity)

		return capacity, nil
	}

	workerPool, err := p.Drainer.GetWorkerPool(ctx)
	if err != nil {
		return 0, fmt.Errorf("could not get worker pool: %w", err)
	}

	plan, err := NewDrainPlan(workerPool, group, p.Group.WorkerIdentity)
	if err != nil {
		return 0, fmt.Errorf("could not plan the scale down: %w", err)
	}

	if stray := plan.StrayInstances(); len(stray) > 0 {
		logger.Warn("instances without a worker", "instance_ids", stray)
	}

	remaining := group.DesiredCapacity

	for _, candidate := range plan.Candidates() {
		if remaining <= capacity {
			break
		}

		logger := logger.With("worker_id", candidate.Worker.ID, "instance_id", string(candidate.InstanceID))

		drained, err := p.Drainer.DrainWorker(ctx, candidate.Worker.ID)
		if err != nil {
			return 0, fmt.Errorf("could not drain worker: %w", err)
		}

		if !drained {
			logger.Warn("worker became busy, stopping the scale down")
			break
		}

		if err := p.Group.KillInstance(ctx, string(candidate.InstanceID)); err != nil {
			return 0, errors.Join(
				fmt.Errorf("could not kill instance %s: %w", candidate.InstanceID, err),
				p.Drainer.UndrainWorker(ctx, candidate.Worker.ID),
			)
		}

		logger.Info("instance killed")
		remaining--
	}

	return remaining, nil
}
