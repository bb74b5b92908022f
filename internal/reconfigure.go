package internal

import (
	"context"
	"fmt"
	"time"
)

// Reconfigure replaces the whole configuration. The metric reference cannot
// change. Like every mutator below, an invalid configuration is rejected and
// the previous one stays in place; new pool limits that the current pool
// size violates are enforced immediately.
func (s *AutoScaler) Reconfigure(ctx context.Context, cfg Config) error {
	return s.reconfigure(ctx, func(c *Config) { *c = cfg })
}

func (s *AutoScaler) SetBounds(ctx context.Context, bounds Bounds) error {
	return s.reconfigure(ctx, func(c *Config) { c.Bounds = bounds })
}

func (s *AutoScaler) SetMetricLowerBound(ctx context.Context, lower float64) error {
	return s.reconfigure(ctx, func(c *Config) { c.Bounds.Lower = lower })
}

func (s *AutoScaler) SetMetricUpperBound(ctx context.Context, upper float64) error {
	return s.reconfigure(ctx, func(c *Config) { c.Bounds.Upper = upper })
}

func (s *AutoScaler) SetPoolLimits(ctx context.Context, limits PoolLimits) error {
	return s.reconfigure(ctx, func(c *Config) { c.Limits = limits })
}

func (s *AutoScaler) SetMinPoolSize(ctx context.Context, size int) error {
	return s.reconfigure(ctx, func(c *Config) { c.Limits.MinSize = size })
}

func (s *AutoScaler) SetMaxPoolSize(ctx context.Context, size int) error {
	return s.reconfigure(ctx, func(c *Config) { c.Limits.MaxSize = size })
}

// SetResizeUpDelay affects timers started after the call. A pending timer
// keeps the delay it was started with.
func (s *AutoScaler) SetResizeUpDelay(ctx context.Context, delay time.Duration) error {
	return s.reconfigure(ctx, func(c *Config) { c.Stabilization.ResizeUpDelay = delay })
}

// SetResizeDownDelay affects timers started after the call. A pending timer
// keeps the delay it was started with.
func (s *AutoScaler) SetResizeDownDelay(ctx context.Context, delay time.Duration) error {
	return s.reconfigure(ctx, func(c *Config) { c.Stabilization.ResizeDownDelay = delay })
}

func (s *AutoScaler) SetResizeStep(ctx context.Context, step ResizeStep) error {
	return s.reconfigure(ctx, func(c *Config) { c.Step = step })
}

func (s *AutoScaler) SetMaxReachedNotificationDelay(ctx context.Context, delay time.Duration) error {
	return s.reconfigure(ctx, func(c *Config) { c.MaxReachedNotificationDelay = delay })
}

func (s *AutoScaler) SetSinks(ctx context.Context, sinks Sinks) error {
	return s.reconfigure(ctx, func(c *Config) { c.Sinks = sinks })
}

func (s *AutoScaler) reconfigure(ctx context.Context, modify func(*Config)) error {
	previous, current, err := s.swapConfig(modify)
	if err != nil {
		return err
	}

	if previous.Limits == current.Limits {
		return nil
	}

	return s.enforceLimits(ctx)
}

// swapConfig validates a modified copy of the configuration and swaps it in.
func (s *AutoScaler) swapConfig(modify func(*Config)) (Config, Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateDestroyed {
		return Config{}, Config{}, ErrDestroyed
	}

	previous := s.config.Load()

	next := *previous
	modify(&next)

	if next.Metric != previous.Metric {
		return Config{}, Config{}, fmt.Errorf("%w: metric reference cannot be changed", ErrInvalidConfig)
	}

	if err := next.Validate(); err != nil {
		return Config{}, Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	s.config.Store(&next)

	return *previous, next, nil
}
