package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

//go:generate mockery --output ./ --name MetricSource --filename mock_metric_source_test.go --outpkg internal_test
type MetricSource interface {
	Subscribe(ctx context.Context, ref MetricRef, handler MetricHandler) (Subscription, error)
	Unsubscribe(ctx context.Context, subscription Subscription) error
}

//go:generate mockery --output ./ --name ResizeTarget --filename mock_resize_target_test.go --outpkg internal_test
type ResizeTarget interface {
	CurrentSize(ctx context.Context) (int, error)

	// Resize asks the pool to hold size units and returns how many it
	// actually holds afterwards.
	Resize(ctx context.Context, size int) (int, error)
}

// AutoScaler keeps the per-unit metric of a single pool inside the
// configured bounds by resizing the pool.
//
// Metric samples, stabilization timer firings and reconfiguration are
// serialised by mu. Calls to the resize target are made without holding it,
// and their outcome is applied under it.
type AutoScaler struct {
	source   MetricSource
	target   ResizeTarget
	notifier Notifier
	logger   *slog.Logger
	tracer   trace.Tracer
	now      func() time.Time

	config atomic.Pointer[Config]

	mu           sync.Mutex
	state        State
	subscription Subscription
	lifetime     context.Context
	cancel       context.CancelFunc
	stabilizer   *stabilizer
	ceiling      ceilingGuard
	executor     resizeExecutor
	emitter      notificationEmitter
}

type Option func(*AutoScaler)

func WithLogger(logger *slog.Logger) Option {
	return func(s *AutoScaler) { s.logger = logger }
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *AutoScaler) { s.tracer = tracer }
}

// WithNotifier sets where notifications go. By default they are logged.
func WithNotifier(notifier Notifier) Option {
	return func(s *AutoScaler) { s.notifier = notifier }
}

func WithClock(now func() time.Time) Option {
	return func(s *AutoScaler) { s.now = now }
}

// NewAutoScaler creates an autoscaler in the created state. It does nothing
// until Attach is called.
func NewAutoScaler(cfg Config, source MetricSource, target ResizeTarget, opts ...Option) (*AutoScaler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	s := &AutoScaler{
		source:     source,
		target:     target,
		logger:     slog.New(slog.DiscardHandler),
		tracer:     otel.Tracer("github.com/spacelift-io/metricscalr/internal/autoscaler"),
		now:        time.Now,
		stabilizer: newStabilizer(),
	}
	s.executor.ceiling = &s.ceiling

	for _, opt := range opts {
		opt(s)
	}

	if s.notifier == nil {
		s.notifier = LogNotifier{Logger: s.logger}
	}

	s.logger = s.logger.With("metric", cfg.Metric.String())
	s.config.Store(&cfg)

	return s, nil
}

// Attach records the pool's current size, subscribes to the metric and
// starts processing samples. A pool outside the configured limits is
// resized into them straight away.
func (s *AutoScaler) Attach(ctx context.Context) error {
	if err := s.attachable(); err != nil {
		return err
	}

	cfg := s.config.Load()

	size, err := s.target.CurrentSize(ctx)
	if err != nil {
		return fmt.Errorf("could not get current pool size: %w", err)
	}

	// Samples delivered before attach completes are discarded, so a source
	// may call back synchronously from Subscribe.
	subscription, err := s.source.Subscribe(ctx, cfg.Metric, s.onSample)
	if err != nil {
		return fmt.Errorf("could not subscribe to metric %s: %w", cfg.Metric, err)
	}

	target, run, err := s.attach(ctx, subscription, size)
	if err != nil {
		if unsubErr := s.source.Unsubscribe(ctx, subscription); unsubErr != nil {
			err = errors.Join(err, fmt.Errorf("could not unsubscribe from metric %s: %w", cfg.Metric, unsubErr))
		}

		return err
	}

	if !run {
		return nil
	}

	return s.resize(ctx, target)
}

func (s *AutoScaler) attachable() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.attachableLocked()
}

func (s *AutoScaler) attachableLocked() error {
	switch s.state {
	case StateCreated:
		return nil
	case StateDestroyed:
		return ErrDestroyed
	default:
		return ErrAlreadyAttached
	}
}

// attach moves the autoscaler to running. The state is checked again since
// the lock was not held while the pool and the source were called.
func (s *AutoScaler) attach(ctx context.Context, subscription Subscription, size int) (int, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.attachableLocked(); err != nil {
		return 0, false, err
	}

	s.subscription = subscription
	s.lifetime, s.cancel = context.WithCancel(context.WithoutCancel(ctx))
	s.state = StateRunning
	s.executor.observe(size)

	s.logger.Info("autoscaler attached", "pool_size", size)

	target, run := s.correctLimitsLocked(s.config.Load(), size)

	return target, run, nil
}

func (s *AutoScaler) onSample(ctx context.Context, sample Sample) {
	if err := s.HandleMetric(ctx, sample); err != nil {
		s.logger.Error("could not handle metric sample", "value", sample.Value, "error", err)
	}
}

// HandleMetric evaluates a single sample. Samples are discarded unless the
// autoscaler is running. A resize that needs no stabilization is performed
// before HandleMetric returns, and its error is returned.
func (s *AutoScaler) HandleMetric(ctx context.Context, sample Sample) (err error) {
	ctx, span := s.tracer.Start(ctx, "autoscaler.evaluate")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "")
		}
		span.End()
	}()

	if !s.IsRunning() {
		return nil
	}

	size, err := s.target.CurrentSize(ctx)
	if err != nil {
		return fmt.Errorf("could not get current pool size: %w", err)
	}

	span.SetAttributes(
		attribute.Int("pool_size", size),
		attribute.Float64("metric", sample.Value),
	)

	target, run, notifications, err := s.evaluate(size, sample)
	s.notify(ctx, notifications)

	if err != nil || !run {
		return err
	}

	return s.resize(ctx, target)
}

func (s *AutoScaler) evaluate(size int, sample Sample) (int, bool, []Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRunning {
		return 0, false, nil, nil
	}

	cfg := s.config.Load()

	sizing, err := Calculate(size, sample.Value, cfg.Bounds)
	if err != nil {
		return 0, false, nil, fmt.Errorf("could not calculate desired pool size: %w", err)
	}

	clamped := cfg.Limits.Clamp(sizing.Desired)

	maxAllowed := cfg.Limits.MaxSize
	if mark, ok := s.ceiling.Mark(); ok {
		maxAllowed = min(maxAllowed, mark)
	}

	notifications := s.emitter.observe(observation{
		now:         s.now(),
		poolSize:    size,
		metric:      sample.Value,
		sizing:      sizing,
		capped:      s.ceiling.Cap(clamped),
		maxAllowed:  maxAllowed,
		bounds:      cfg.Bounds,
		sinks:       cfg.Sinks,
		reraiseEach: cfg.MaxReachedNotificationDelay,
	})

	request := resizeRequest{direction: DirectionNone, currentSize: size, desired: size}

	if sizing.Direction != DirectionNone {
		desired := cfg.Step.Adjust(size, clamped, sample.Value, cfg.Bounds, cfg.Limits)

		if (sizing.Direction == DirectionGrow && desired > size) || (sizing.Direction == DirectionShrink && desired < size) {
			request.direction, request.desired = sizing.Direction, desired
		}
	}

	s.logger.Debug("evaluated metric sample",
		"pool_size", size,
		"value", sample.Value,
		"direction", request.direction.String(),
		"desired", request.desired,
		"unbounded", sizing.Desired,
	)

	target, run := s.stabilizeLocked(cfg, request)

	return target, run, notifications, nil
}

// stabilizeLocked passes a decision through the stabilization timers. It
// returns a size when the decision is to be acted upon right away.
func (s *AutoScaler) stabilizeLocked(cfg *Config, request resizeRequest) (int, bool) {
	if request.direction == DirectionNone {
		s.stabilizer.cancelAll()
		return 0, false
	}

	s.stabilizer.cancel(request.direction.opposite())

	if s.stabilizer.update(request) {
		return 0, false
	}

	delay := cfg.Stabilization.delay(request.direction)
	if delay <= 0 {
		return s.executor.offer(request)
	}

	s.stabilizer.schedule(request, delay, s.fire)

	return 0, false
}

func (s *AutoScaler) fire(direction Direction, generation uint64) {
	ctx, target, run := s.fired(direction, generation)
	if !run {
		return
	}

	if err := s.resize(ctx, target); err != nil {
		s.logger.Error("stabilized resize failed", "direction", direction.String(), "error", err)
	}
}

func (s *AutoScaler) fired(direction Direction, generation uint64) (context.Context, int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	request, ok := s.stabilizer.take(direction, generation)
	if !ok {
		return nil, 0, false
	}

	if s.state != StateRunning {
		s.logger.Debug("discarding stabilized resize", "direction", direction.String(), "state", s.state.String())
		return nil, 0, false
	}

	// The pool may have been resized since the timer was scheduled.
	request.currentSize = s.executor.lastActual(request.currentSize)
	request.desired = s.config.Load().Limits.Clamp(request.desired)
	target, run := s.executor.offer(request)

	return s.lifetime, target, run
}

// resize performs a resize the executor accepted, followed by any request
// queued while it was in flight.
func (s *AutoScaler) resize(ctx context.Context, target int) error {
	var errs []error

	for {
		actual, err := s.resizeTarget(ctx, target)
		if err != nil {
			errs = append(errs, err)
		}

		next, run := s.completeResize(actual, err)
		if !run {
			return errors.Join(errs...)
		}

		target = next
	}
}

func (s *AutoScaler) resizeTarget(ctx context.Context, target int) (int, error) {
	ctx, span := s.tracer.Start(ctx, "autoscaler.resize")
	defer span.End()

	span.SetAttributes(attribute.Int("desired", target))

	logger := s.logger.With("desired", target)

	actual, err := s.target.Resize(ctx, target)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "")
		logger.Error("could not resize pool", "error", err)

		return 0, fmt.Errorf("could not resize pool to %d: %w", target, err)
	}

	span.SetAttributes(attribute.Int("actual", actual))

	if actual < target {
		logger.Warn("pool did not reach the requested size", "actual", actual)
	} else {
		logger.Info("pool resized", "actual", actual)
	}

	return actual, nil
}

func (s *AutoScaler) completeResize(actual int, err error) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.executor.complete(actual, err)
	if next == nil || s.state != StateRunning {
		return 0, false
	}

	next.currentSize = s.executor.lastActual(next.currentSize)
	next.desired = s.config.Load().Limits.Clamp(next.desired)

	return s.executor.offer(*next)
}

func (s *AutoScaler) correctLimitsLocked(cfg *Config, size int) (int, bool) {
	corrected := cfg.Limits.Clamp(size)
	if corrected == size {
		return 0, false
	}

	direction := DirectionGrow
	if corrected < size {
		direction = DirectionShrink
	}

	s.logger.Info("pool size outside of limits", "pool_size", size, "desired", corrected)

	return s.executor.offer(resizeRequest{direction: direction, currentSize: size, desired: corrected})
}

// enforceLimits resizes a running pool into the configured limits,
// bypassing stabilization.
func (s *AutoScaler) enforceLimits(ctx context.Context) error {
	if !s.IsRunning() {
		return nil
	}

	size, err := s.target.CurrentSize(ctx)
	if err != nil {
		return fmt.Errorf("could not get current pool size: %w", err)
	}

	target, run := s.correctLimits(size)
	if !run {
		return nil
	}

	return s.resize(ctx, target)
}

func (s *AutoScaler) correctLimits(size int) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRunning {
		return 0, false
	}

	return s.correctLimitsLocked(s.config.Load(), size)
}

func (s *AutoScaler) notify(ctx context.Context, notifications []Notification) {
	for _, notification := range notifications {
		if err := s.notifier.Notify(ctx, notification); err != nil {
			s.logger.Warn("could not deliver notification", "sink", notification.Sink, "kind", string(notification.Kind), "error", err)
		}
	}
}

// Suspend stops the autoscaler from acting on samples and stabilization
// timers until Resume is called.
func (s *AutoScaler) Suspend() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.state.checkAttached(); err != nil {
		return err
	}

	if s.state == StateRunning {
		s.state = StateSuspended
		s.logger.Info("autoscaler suspended")
	}

	return nil
}

// Resume restarts a suspended autoscaler. Decisions missed while suspended
// are not replayed, but pool limits are enforced again.
func (s *AutoScaler) Resume(ctx context.Context) error {
	resumed, err := s.resume()
	if err != nil || !resumed {
		return err
	}

	return s.enforceLimits(ctx)
}

func (s *AutoScaler) resume() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.state.checkAttached(); err != nil {
		return false, err
	}

	if s.state == StateRunning {
		return false, nil
	}

	s.state = StateRunning
	s.logger.Info("autoscaler resumed")

	return true, nil
}

// Destroy cancels pending stabilization timers and unsubscribes from the
// metric. It is idempotent.
func (s *AutoScaler) Destroy(ctx context.Context) error {
	subscription, attached := s.destroy()
	if !attached {
		return nil
	}

	if err := s.source.Unsubscribe(ctx, subscription); err != nil {
		return fmt.Errorf("could not unsubscribe from metric: %w", err)
	}

	return nil
}

func (s *AutoScaler) destroy() (Subscription, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateDestroyed {
		return "", false
	}

	attached := s.state != StateCreated
	s.state = StateDestroyed

	s.stabilizer.cancelAll()
	s.executor.abandon()

	if s.cancel != nil {
		s.cancel()
	}

	s.logger.Info("autoscaler destroyed")

	return s.subscription, attached
}

func (s *AutoScaler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

func (s *AutoScaler) IsRunning() bool {
	return s.State() == StateRunning
}

func (s *AutoScaler) IsDestroyed() bool {
	return s.State() == StateDestroyed
}

// DesiredSizeHistory returns every size the autoscaler asked the pool for.
func (s *AutoScaler) DesiredSizeHistory() []int {
	s.mu.Lock()
	defer s.mu.Unlock()

	desired, _ := s.executor.history()

	return desired
}

// ActualSizeHistory returns every distinct size the pool was seen to hold,
// starting with its size on attach.
func (s *AutoScaler) ActualSizeHistory() []int {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, actual := s.executor.history()

	return actual
}

func (s *AutoScaler) CeilingMark() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.ceiling.Mark()
}

// ClearCeilingMark forgets the largest size the pool was seen to reach, so
// that the next decision may ask for more again.
func (s *AutoScaler) ClearCeilingMark() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if mark, ok := s.ceiling.Mark(); ok {
		s.logger.Info("clearing ceiling mark", "ceiling", mark)
	}

	s.ceiling.Clear()
}

// PendingResize returns the size a stabilization timer in the given
// direction will ask for when it fires.
func (s *AutoScaler) PendingResize(direction Direction) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.stabilizer.pendingTarget(direction)
}

// Snapshot returns the current configuration. An autoscaler created from it
// makes the same decisions for the same samples.
func (s *AutoScaler) Snapshot() Config {
	return *s.config.Load()
}

// Status is a point-in-time view of the autoscaler.
type Status struct {
	State              string `json:"state"`
	Config             Config `json:"config"`
	DesiredSizeHistory []int  `json:"desired_size_history"`
	ActualSizeHistory  []int  `json:"actual_size_history"`
	CeilingMark        *int   `json:"ceiling_mark,omitempty"`
	PendingGrow        *int   `json:"pending_grow,omitempty"`
	PendingShrink      *int   `json:"pending_shrink,omitempty"`
}

func (s *AutoScaler) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	desired, actual := s.executor.history()

	out := Status{
		State:              s.state.String(),
		Config:             *s.config.Load(),
		DesiredSizeHistory: desired,
		ActualSizeHistory:  actual,
	}

	if mark, ok := s.ceiling.Mark(); ok {
		out.CeilingMark = &mark
	}

	if target, ok := s.stabilizer.pendingTarget(DirectionGrow); ok {
		out.PendingGrow = &target
	}

	if target, ok := s.stabilizer.pendingTarget(DirectionShrink); ok {
		out.PendingShrink = &target
	}

	return out
}
