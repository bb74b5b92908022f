package internal

import "time"

// resizeRequest is a decision on its way to the executor.
type resizeRequest struct {
	direction   Direction
	currentSize int
	desired     int
}

type pendingResize struct {
	generation uint64
	timer      *time.Timer
	request    resizeRequest
}

// stabilizer holds at most one delayed resize per direction. It is not safe
// for concurrent use; the AutoScaler serialises all access to it, including
// from timer callbacks, which must call take before acting.
type stabilizer struct {
	generation uint64
	pending    map[Direction]*pendingResize
}

func newStabilizer() *stabilizer {
	return &stabilizer{pending: make(map[Direction]*pendingResize)}
}

// update replaces the request of a pending resize in the request's
// direction without moving its deadline. It reports whether one was pending.
func (s *stabilizer) update(request resizeRequest) bool {
	p, ok := s.pending[request.direction]
	if ok {
		p.request = request
	}

	return ok
}

// schedule starts a timer that calls fire with the request's direction and
// a generation token once delay has elapsed.
func (s *stabilizer) schedule(request resizeRequest, delay time.Duration, fire func(Direction, uint64)) {
	s.cancel(request.direction)

	s.generation++
	generation, direction := s.generation, request.direction

	s.pending[direction] = &pendingResize{
		generation: generation,
		request:    request,
		timer:      time.AfterFunc(delay, func() { fire(direction, generation) }),
	}
}

// take removes and returns the pending request for a timer that fired. A
// stale generation means the timer was cancelled or replaced after it
// started firing, and nothing is returned.
func (s *stabilizer) take(direction Direction, generation uint64) (resizeRequest, bool) {
	p, ok := s.pending[direction]
	if !ok || p.generation != generation {
		return resizeRequest{}, false
	}

	delete(s.pending, direction)

	return p.request, true
}

func (s *stabilizer) cancel(direction Direction) bool {
	p, ok := s.pending[direction]
	if !ok {
		return false
	}

	p.timer.Stop()
	delete(s.pending, direction)

	return true
}

func (s *stabilizer) cancelAll() {
	s.cancel(DirectionGrow)
	s.cancel(DirectionShrink)
}

func (s *stabilizer) pendingTarget(direction Direction) (int, bool) {
	p, ok := s.pending[direction]
	if !ok {
		return 0, false
	}

	return p.request.desired, true
}
