package internal

import (
	"cmp"
	"context"
	"errors"
	"log/slog"
	"runtime/debug"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Subscription is the handle returned by MetricSource.Subscribe.
type Subscription string

// Sample is a single observation of a metric.
type Sample struct {
	Value     float64
	Timestamp time.Time
}

type MetricHandler func(ctx context.Context, sample Sample)

var ErrUnknownSubscription = errors.New("unknown subscription")

type metricSubscriber struct {
	ref     MetricRef
	handler MetricHandler
}

// MetricBus is a synchronous MetricSource that delivers published samples to
// the handlers subscribed to the sample's metric. The pollers in this
// package publish through it, and it can be fed directly.
type MetricBus struct {
	mu            sync.RWMutex
	subscriptions map[Subscription]metricSubscriber
	logger        *slog.Logger
}

func NewMetricBus(logger *slog.Logger) *MetricBus {
	return &MetricBus{
		subscriptions: make(map[Subscription]metricSubscriber),
		logger:        logger,
	}
}

func (b *MetricBus) Subscribe(_ context.Context, ref MetricRef, handler MetricHandler) (Subscription, error) {
	if handler == nil {
		return "", errors.New("metric handler must not be nil")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	id := Subscription(uuid.NewString())
	b.subscriptions[id] = metricSubscriber{ref: ref, handler: handler}

	return id, nil
}

func (b *MetricBus) Unsubscribe(_ context.Context, subscription Subscription) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.subscriptions[subscription]; !ok {
		return ErrUnknownSubscription
	}

	delete(b.subscriptions, subscription)

	return nil
}

// Publish delivers the sample to every handler subscribed to ref and
// returns how many there were. Handlers run on the caller's goroutine, with
// no lock held; a panicking handler is logged and skipped.
func (b *MetricBus) Publish(ctx context.Context, ref MetricRef, sample Sample) int {
	b.mu.RLock()
	var handlers []MetricHandler
	for _, sub := range b.subscriptions {
		if sub.ref == ref {
			handlers = append(handlers, sub.handler)
		}
	}
	b.mu.RUnlock()

	for _, handler := range handlers {
		b.safeCall(ctx, ref, handler, sample)
	}

	return len(handlers)
}

// Refs returns the distinct metrics that currently have subscribers.
func (b *MetricBus) Refs() []MetricRef {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var out []MetricRef
	for _, sub := range b.subscriptions {
		if !slices.Contains(out, sub.ref) {
			out = append(out, sub.ref)
		}
	}

	slices.SortFunc(out, func(a, b MetricRef) int {
		return cmp.Or(cmp.Compare(a.ResourceID, b.ResourceID), cmp.Compare(a.MetricID, b.MetricID))
	})

	return out
}

func (b *MetricBus) SubscriptionCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.subscriptions)
}

func (b *MetricBus) safeCall(ctx context.Context, ref MetricRef, handler MetricHandler, sample Sample) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("metric handler panicked", "metric", ref.String(), "panic", r, "stack", string(debug.Stack()))
		}
	}()

	handler(ctx, sample)
}

// pollEvery calls poll straight away and then on every tick until ctx is
// done. Poll errors are logged and do not stop the loop.
func pollEvery(ctx context.Context, interval time.Duration, logger *slog.Logger, poll func(context.Context) error) error {
	if interval <= 0 {
		return errors.New("poll interval must be positive")
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := poll(ctx); err != nil {
			logger.ErrorContext(ctx, "could not poll metrics", "error", err)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
