package internal

import "slices"

// resizeExecutor decides which requests reach the resize target and keeps
// the size history. At most one resize is in flight; a request arriving in
// the meantime is queued, replacing any request queued before it.
//
// Like the stabilizer it relies on the AutoScaler for serialisation.
type resizeExecutor struct {
	ceiling *ceilingGuard

	desired []int
	actual  []int

	inFlight       bool
	inFlightTarget int
	queued         *resizeRequest
}

// offer returns the ceiling-capped size to resize to, or false when the
// request is already satisfied, already in flight, or was queued.
func (e *resizeExecutor) offer(request resizeRequest) (int, bool) {
	target := e.ceiling.Cap(request.desired)

	switch {
	case e.inFlight && target == e.inFlightTarget:
		e.queued = nil
		return 0, false
	case e.inFlight:
		e.queued = &request
		return 0, false
	case target == request.currentSize:
		return 0, false
	}

	e.desired = append(e.desired, target)
	e.inFlight, e.inFlightTarget = true, target

	return target, true
}

// complete records the outcome of the in-flight resize and hands back the
// queued request, if there is one.
func (e *resizeExecutor) complete(actual int, err error) *resizeRequest {
	requested := e.inFlightTarget
	e.inFlight, e.inFlightTarget = false, 0

	queued := e.queued
	e.queued = nil

	if err != nil {
		return queued
	}

	e.observe(actual)

	if actual < requested {
		e.ceiling.Set(actual)
	}

	if queued != nil {
		queued.currentSize = actual
	}

	return queued
}

// observe records a pool size unless it equals the last one recorded.
func (e *resizeExecutor) observe(size int) {
	if n := len(e.actual); n > 0 && e.actual[n-1] == size {
		return
	}

	e.actual = append(e.actual, size)
}

// lastActual returns the last recorded pool size, or fallback when none
// has been recorded yet.
func (e *resizeExecutor) lastActual(fallback int) int {
	if n := len(e.actual); n > 0 {
		return e.actual[n-1]
	}

	return fallback
}

func (e *resizeExecutor) abandon() {
	e.queued = nil
}

func (e *resizeExecutor) history() (desired, actual []int) {
	return slices.Clone(e.desired), slices.Clone(e.actual)
}
