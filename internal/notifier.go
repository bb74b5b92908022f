package internal

import (
	"context"
	"log/slog"
	"time"
)

type NotificationKind string

const (
	NotificationPoolHot        NotificationKind = "pool_hot"
	NotificationPoolCold       NotificationKind = "pool_cold"
	NotificationPoolOK         NotificationKind = "pool_ok"
	NotificationMaxSizeReached NotificationKind = "max_size_reached"
)

// Notification is delivered to the configured sink of its kind.
type Notification struct {
	Sink     string           `json:"sink"`
	Kind     NotificationKind `json:"kind"`
	Time     time.Time        `json:"time"`
	PoolSize int              `json:"pool_size"`
	Metric   float64          `json:"metric"`
	Bounds   Bounds           `json:"bounds"`

	MaxSizeReached *MaxSizeReached `json:"max_size_reached,omitempty"`
}

// MaxSizeReached describes demand the pool could not follow because of its
// maximum size or its ceiling mark.
type MaxSizeReached struct {
	MaxAllowed       int           `json:"max_allowed"`
	CurrentPoolSize  int           `json:"current_pool_size"`
	CurrentUnbounded int           `json:"current_unbounded"`
	MaxUnbounded     int           `json:"max_unbounded"`
	TimeWindow       time.Duration `json:"time_window"`
}

//go:generate mockery --output ./ --name Notifier --filename mock_notifier_test.go --outpkg internal_test
type Notifier interface {
	Notify(ctx context.Context, notification Notification) error
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(ctx context.Context, notification Notification) error

func (f NotifierFunc) Notify(ctx context.Context, notification Notification) error {
	return f(ctx, notification)
}

// LogNotifier writes notifications to a structured logger.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n LogNotifier) Notify(ctx context.Context, notification Notification) error {
	logger := n.Logger.With(
		"sink", notification.Sink,
		"kind", string(notification.Kind),
		"pool_size", notification.PoolSize,
		"metric", notification.Metric,
	)

	if details := notification.MaxSizeReached; details != nil {
		logger.WarnContext(ctx, "pool cannot grow to follow demand",
			"max_allowed", details.MaxAllowed,
			"current_unbounded", details.CurrentUnbounded,
			"max_unbounded", details.MaxUnbounded,
			"time_window", details.TimeWindow,
		)
		return nil
	}

	logger.InfoContext(ctx, "pool load changed band", "lower", notification.Bounds.Lower, "upper", notification.Bounds.Upper)

	return nil
}

type band int

const (
	bandUnknown band = iota
	bandOK
	bandHot
	bandCold
)

// observation is what the emitter needs to know about a single evaluated
// metric sample.
type observation struct {
	now         time.Time
	poolSize    int
	metric      float64
	sizing      Sizing
	capped      int
	maxAllowed  int
	bounds      Bounds
	sinks       Sinks
	reraiseEach time.Duration
}

// notificationEmitter turns observations into notifications: band changes,
// and an edge-triggered max size reached alert.
type notificationEmitter struct {
	band band

	maxReached     bool
	maxUnbounded   int
	lastNotifiedAt time.Time
}

func (e *notificationEmitter) observe(o observation) []Notification {
	var out []Notification

	if n, ok := e.observeBand(o); ok {
		out = append(out, n)
	}

	if n, ok := e.observeMaxReached(o); ok {
		out = append(out, n)
	}

	return out
}

func (e *notificationEmitter) observeBand(o observation) (Notification, bool) {
	current, kind, sink := bandOK, NotificationPoolOK, o.sinks.PoolOK

	switch o.sizing.Direction {
	case DirectionGrow:
		current, kind, sink = bandHot, NotificationPoolHot, o.sinks.PoolHot
	case DirectionShrink:
		current, kind, sink = bandCold, NotificationPoolCold, o.sinks.PoolCold
	}

	if current == e.band {
		return Notification{}, false
	}

	e.band = current

	if sink == "" {
		return Notification{}, false
	}

	return Notification{
		Sink:     sink,
		Kind:     kind,
		Time:     o.now,
		PoolSize: o.poolSize,
		Metric:   o.metric,
		Bounds:   o.bounds,
	}, true
}

func (e *notificationEmitter) observeMaxReached(o observation) (Notification, bool) {
	unbounded := o.sizing.Desired

	if o.sizing.Direction != DirectionGrow || o.capped >= unbounded {
		e.maxReached, e.maxUnbounded = false, 0
		return Notification{}, false
	}

	if !e.maxReached {
		e.maxReached, e.maxUnbounded = true, unbounded
	} else {
		e.maxUnbounded = max(e.maxUnbounded, unbounded)

		if o.reraiseEach <= 0 || o.now.Sub(e.lastNotifiedAt) < o.reraiseEach {
			return Notification{}, false
		}
	}

	e.lastNotifiedAt = o.now

	if o.sinks.MaxSizeReached == "" {
		return Notification{}, false
	}

	return Notification{
		Sink:     o.sinks.MaxSizeReached,
		Kind:     NotificationMaxSizeReached,
		Time:     o.now,
		PoolSize: o.poolSize,
		Metric:   o.metric,
		Bounds:   o.bounds,
		MaxSizeReached: &MaxSizeReached{
			MaxAllowed:       o.maxAllowed,
			CurrentPoolSize:  o.poolSize,
			CurrentUnbounded: unbounded,
			MaxUnbounded:     e.maxUnbounded,
			TimeWindow:       o.reraiseEach,
		},
	}, true
}
