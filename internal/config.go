package internal

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// DefaultMaxPoolSize is the maximum pool size used when none is configured.
const DefaultMaxPoolSize = math.MaxInt32

var ErrInvalidConfig = errors.New("invalid autoscaler configuration")

// MetricRef identifies the metric the autoscaler follows: a metric on a
// resource owned by the metric source.
type MetricRef struct {
	ResourceID string `json:"resource_id" yaml:"resource_id"`
	MetricID   string `json:"metric_id" yaml:"metric_id"`
}

func (r MetricRef) String() string {
	return r.ResourceID + "/" + r.MetricID
}

// Bounds is the per-unit target band for the metric.
type Bounds struct {
	Lower float64 `json:"lower" yaml:"lower"`
	Upper float64 `json:"upper" yaml:"upper"`
}

func (b Bounds) Validate() error {
	switch {
	case !isFinite(b.Lower) || !isFinite(b.Upper):
		return errors.New("metric bounds must be finite numbers")
	case b.Lower < 0:
		return fmt.Errorf("metric lower bound (%g) must not be negative", b.Lower)
	case b.Upper <= 0:
		return fmt.Errorf("metric upper bound (%g) must be positive", b.Upper)
	case b.Lower > b.Upper:
		return fmt.Errorf("metric lower bound (%g) must be less than or equal to the upper bound (%g)", b.Lower, b.Upper)
	}

	return nil
}

// PoolLimits clamps every size the autoscaler asks for.
type PoolLimits struct {
	MinSize int `json:"min_size" yaml:"min_size"`
	MaxSize int `json:"max_size" yaml:"max_size"`
}

func (l PoolLimits) Validate() error {
	if l.MinSize < 0 {
		return fmt.Errorf("minimum pool size (%d) must not be negative", l.MinSize)
	}

	if l.MaxSize < l.MinSize {
		return fmt.Errorf("maximum pool size (%d) must be greater than or equal to minimum pool size (%d)", l.MaxSize, l.MinSize)
	}

	return nil
}

// Clamp returns size limited to [MinSize, MaxSize].
func (l PoolLimits) Clamp(size int) int {
	return min(max(size, l.MinSize), l.MaxSize)
}

// Stabilization holds how long a need to resize must persist before the
// autoscaler acts on it, per direction.
type Stabilization struct {
	ResizeUpDelay   time.Duration `json:"resize_up_delay" yaml:"resize_up_delay"`
	ResizeDownDelay time.Duration `json:"resize_down_delay" yaml:"resize_down_delay"`
}

func (s Stabilization) Validate() error {
	var errs []error

	if s.ResizeUpDelay < 0 {
		errs = append(errs, fmt.Errorf("resize up delay (%s) must not be negative", s.ResizeUpDelay))
	}

	if s.ResizeDownDelay < 0 {
		errs = append(errs, fmt.Errorf("resize down delay (%s) must not be negative", s.ResizeDownDelay))
	}

	return errors.Join(errs...)
}

func (s Stabilization) delay(direction Direction) time.Duration {
	if direction == DirectionShrink {
		return s.ResizeDownDelay
	}

	return s.ResizeUpDelay
}

// Sinks names the notification sinks. An empty name disables the
// corresponding notification.
type Sinks struct {
	PoolHot        string `json:"pool_hot,omitempty" yaml:"pool_hot,omitempty"`
	PoolCold       string `json:"pool_cold,omitempty" yaml:"pool_cold,omitempty"`
	PoolOK         string `json:"pool_ok,omitempty" yaml:"pool_ok,omitempty"`
	MaxSizeReached string `json:"max_size_reached,omitempty" yaml:"max_size_reached,omitempty"`
}

// DefaultSinks enables every notification under its conventional name.
func DefaultSinks() Sinks {
	return Sinks{
		PoolHot:        "pool.hot",
		PoolCold:       "pool.cold",
		PoolOK:         "pool.ok",
		MaxSizeReached: "pool.max_size_reached",
	}
}

// Config is an immutable snapshot of everything that drives the
// autoscaler's decisions. It is also the serialised form used to save and
// restore an autoscaler.
type Config struct {
	Metric        MetricRef     `json:"metric" yaml:"metric"`
	Bounds        Bounds        `json:"bounds" yaml:"bounds"`
	Limits        PoolLimits    `json:"limits" yaml:"limits"`
	Stabilization Stabilization `json:"stabilization" yaml:"stabilization"`
	Step          ResizeStep    `json:"step" yaml:"step"`
	Sinks         Sinks         `json:"sinks" yaml:"sinks"`

	// MaxReachedNotificationDelay is the re-raise window of the max size
	// reached notification. Zero means it is raised once per episode.
	MaxReachedNotificationDelay time.Duration `json:"max_reached_notification_delay" yaml:"max_reached_notification_delay"`
}

// DefaultConfig returns a configuration for the given metric with default
// pool limits and no stabilization delay. Bounds must still be set.
func DefaultConfig(metric MetricRef) Config {
	return Config{
		Metric: metric,
		Limits: PoolLimits{MinSize: 1, MaxSize: DefaultMaxPoolSize},
	}
}

func (c Config) Validate() error {
	var errs []error

	if c.Metric.MetricID == "" {
		errs = append(errs, errors.New("metric ID must not be empty"))
	}

	errs = append(errs,
		c.Bounds.Validate(),
		c.Limits.Validate(),
		c.Stabilization.Validate(),
		c.Step.Validate(),
	)

	if c.MaxReachedNotificationDelay < 0 {
		errs = append(errs, fmt.Errorf("max reached notification delay (%s) must not be negative", c.MaxReachedNotificationDelay))
	}

	return errors.Join(errs...)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
