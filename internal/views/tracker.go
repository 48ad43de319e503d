package views

import "context"

// requestTracker guards fetches triggered by a dependency change (mount, tab).
// Starting a request cancels the previous one; only the latest generation may
// settle into view state. Callers hold the owning view's lock.
type requestTracker struct {
	generation uint64
	cancel     context.CancelFunc
}

func (t *requestTracker) next(parent context.Context) (context.Context, uint64) {
	if t.cancel != nil {
		t.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	t.generation++
	t.cancel = cancel
	return ctx, t.generation
}

// settle reports whether generation is still the latest request and, if so,
// releases its context
func (t *requestTracker) settle(generation uint64) bool {
	if generation != t.generation {
		return false
	}
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	return true
}
