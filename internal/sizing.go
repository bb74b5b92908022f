package internal

import (
	"fmt"
	"math/big"
	"strconv"

	"gopkg.in/inf.v0"
)

// Direction is the way a sizing decision moves the pool.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionGrow
	DirectionShrink
)

func (d Direction) String() string {
	switch d {
	case DirectionGrow:
		return "grow"
	case DirectionShrink:
		return "shrink"
	default:
		return "none"
	}
}

func (d Direction) opposite() Direction {
	switch d {
	case DirectionGrow:
		return DirectionShrink
	case DirectionShrink:
		return DirectionGrow
	default:
		return DirectionNone
	}
}

// Sizing is the raw outcome of Calculate, before pool limits are applied.
type Sizing struct {
	Direction Direction
	Desired   int
}

// Calculate applies the proportional sizing law to a per-unit metric value.
//
// Above the upper bound the pool grows to ceil(size*metric/upper), below
// the lower bound it shrinks to floor(size*metric/lower). A metric equal to
// a bound is inside the band. A zero lower bound never shrinks.
func Calculate(currentSize int, metric float64, bounds Bounds) (Sizing, error) {
	if currentSize < 0 {
		return Sizing{}, fmt.Errorf("current pool size (%d) must not be negative", currentSize)
	}

	value, err := decimal(metric)
	if err != nil {
		return Sizing{}, fmt.Errorf("invalid metric value: %w", err)
	}

	if value.Sign() < 0 {
		return Sizing{}, fmt.Errorf("metric value (%g) must not be negative", metric)
	}

	lower, err := decimal(bounds.Lower)
	if err != nil {
		return Sizing{}, fmt.Errorf("invalid lower bound: %w", err)
	}

	upper, err := decimal(bounds.Upper)
	if err != nil {
		return Sizing{}, fmt.Errorf("invalid upper bound: %w", err)
	}

	total := new(inf.Dec).Mul(inf.NewDec(int64(currentSize), 0), value)

	switch {
	case upper.Sign() > 0 && value.Cmp(upper) > 0:
		desired := new(inf.Dec).QuoRound(total, upper, 0, inf.RoundCeil)
		return Sizing{Direction: DirectionGrow, Desired: saturatedInt(desired)}, nil
	case lower.Sign() > 0 && value.Cmp(lower) < 0:
		desired := new(inf.Dec).QuoRound(total, lower, 0, inf.RoundFloor)
		return Sizing{Direction: DirectionShrink, Desired: saturatedInt(desired)}, nil
	}

	return Sizing{Direction: DirectionNone, Desired: currentSize}, nil
}

// ResizeStep shapes how far a single decision may move the pool. Changes
// are rounded up to a multiple of the increment or cut down to the max.
// Zero values mean an increment of one and no max.
type ResizeStep struct {
	UpIncrement   int `json:"up_increment,omitempty" yaml:"up_increment,omitempty"`
	UpMax         int `json:"up_max,omitempty" yaml:"up_max,omitempty"`
	DownIncrement int `json:"down_increment,omitempty" yaml:"down_increment,omitempty"`
	DownMax       int `json:"down_max,omitempty" yaml:"down_max,omitempty"`
}

func (s ResizeStep) Validate() error {
	if s.UpIncrement < 0 || s.UpMax < 0 || s.DownIncrement < 0 || s.DownMax < 0 {
		return fmt.Errorf("resize step values must not be negative: %+v", s)
	}

	return nil
}

// Adjust applies the step to an already clamped desired size.
//
// When shrinking, the result is walked back up by the increment for as long
// as the smaller pool would immediately be above the upper bound again.
func (s ResizeStep) Adjust(currentSize, desired int, metric float64, bounds Bounds, limits PoolLimits) int {
	switch {
	case desired > currentSize:
		return limits.Clamp(currentSize + stepDelta(desired-currentSize, s.UpIncrement, s.UpMax))
	case desired < currentSize:
		increment := max(s.DownIncrement, 1)
		desired = limits.Clamp(currentSize - stepDelta(currentSize-desired, s.DownIncrement, s.DownMax))

		for desired < currentSize && runsHot(currentSize, desired, metric, bounds.Upper) {
			desired += increment
		}

		return limits.Clamp(desired)
	}

	return desired
}

func stepDelta(delta, increment, limit int) int {
	if limit > 0 && delta > limit {
		return limit
	}

	if increment > 1 && delta%increment != 0 {
		delta += increment - delta%increment
	}

	return delta
}

// runsHot reports whether the load currently spread over currentSize units
// would exceed the upper bound when spread over size units.
func runsHot(currentSize, size int, metric, upper float64) bool {
	value, err := decimal(metric)
	if err != nil {
		return false
	}

	bound, err := decimal(upper)
	if err != nil {
		return false
	}

	total := new(inf.Dec).Mul(inf.NewDec(int64(currentSize), 0), value)
	capacity := new(inf.Dec).Mul(inf.NewDec(int64(size), 0), bound)

	return total.Cmp(capacity) > 0
}

func decimal(v float64) (*inf.Dec, error) {
	if !isFinite(v) {
		return nil, fmt.Errorf("%g is not a finite number", v)
	}

	out, ok := new(inf.Dec).SetString(strconv.FormatFloat(v, 'f', -1, 64))
	if !ok {
		return nil, fmt.Errorf("could not represent %g as a decimal", v)
	}

	return out, nil
}

var maxPoolSize = big.NewInt(DefaultMaxPoolSize)

// saturatedInt converts an integral decimal, saturating at the default
// maximum pool size.
func saturatedInt(d *inf.Dec) int {
	unscaled := d.UnscaledBig()

	switch {
	case unscaled.Sign() < 0:
		return 0
	case unscaled.Cmp(maxPoolSize) > 0:
		return DefaultMaxPoolSize
	}

	return int(unscaled.Int64())
}
