package internal

import "errors"

// State is the lifecycle state of an AutoScaler.
type State int

const (
	StateCreated State = iota
	StateRunning
	StateSuspended
	StateDestroyed
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateRunning:
		return "running"
	case StateSuspended:
		return "suspended"
	case StateDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

var (
	ErrAlreadyAttached = errors.New("autoscaler already attached")
	ErrNotAttached     = errors.New("autoscaler not attached")
	ErrDestroyed       = errors.New("autoscaler already destroyed")
)

// checkAttached returns the error for calls that need an attached,
// non-destroyed autoscaler.
func (s State) checkAttached() error {
	switch s {
	case StateCreated:
		return ErrNotAttached
	case StateDestroyed:
		return ErrDestroyed
	default:
		return nil
	}
}
