package internal_test

import (
	"context"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/spacelift-io/metricscalr/internal"
)

var testMetric = internal.MetricRef{ResourceID: "test-pool", MetricID: "load"}

func ptr[T any](v T) *T {
	return &v
}

func newTracer() oteltrace.Tracer {
	tp := trace.NewTracerProvider(
		trace.WithSpanProcessor(trace.NewSimpleSpanProcessor(tracetest.NewNoopExporter())),
	)

	return tp.Tracer("test")
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// testConfig is a configuration with the bounds most tests use and no
// stabilization delay.
func testConfig() internal.Config {
	cfg := internal.DefaultConfig(testMetric)
	cfg.Bounds = internal.Bounds{Lower: 50, Upper: 100}

	return cfg
}

// fakePool is a ResizeTarget that can be capped below the requested size,
// the way a cloud group stops at its own maximum.
type fakePool struct {
	mu      sync.Mutex
	size    int
	hardCap int
	resizes []int
	err     error
}

func newFakePool(size int) *fakePool {
	return &fakePool{size: size, hardCap: -1}
}

func (p *fakePool) CurrentSize(context.Context) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.size, nil
}

func (p *fakePool) Resize(_ context.Context, size int) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.resizes = append(p.resizes, size)

	if p.err != nil {
		return 0, p.err
	}

	if p.hardCap >= 0 && size > p.hardCap {
		size = p.hardCap
	}

	p.size = size

	return size, nil
}

func (p *fakePool) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.size
}

func (p *fakePool) SetHardCap(size int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.hardCap = size
}

func (p *fakePool) Resizes() []int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]int(nil), p.resizes...)
}

// recordingNotifier keeps every notification it receives.
type recordingNotifier struct {
	mu            sync.Mutex
	notifications []internal.Notification
}

func (n *recordingNotifier) Notify(_ context.Context, notification internal.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.notifications = append(n.notifications, notification)

	return nil
}

func (n *recordingNotifier) Kinds() []internal.NotificationKind {
	n.mu.Lock()
	defer n.mu.Unlock()

	var out []internal.NotificationKind
	for _, notification := range n.notifications {
		out = append(out, notification.Kind)
	}

	return out
}

func (n *recordingNotifier) OfKind(kind internal.NotificationKind) []internal.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()

	var out []internal.Notification
	for _, notification := range n.notifications {
		if notification.Kind == kind {
			out = append(out, notification)
		}
	}

	return out
}
