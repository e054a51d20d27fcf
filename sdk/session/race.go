package session

import "sync"

// raceResult is what the bootstrap race settles on: an auth event
// delivered by the listener, or the fallback timer firing.
type raceResult struct {
	event    *Event
	fallback bool
}

// oneShotRace settles on the first offered result and drops the rest.
// Losing a race means the late result is ignored, never delivered.
type oneShotRace struct {
	mu       sync.Mutex
	settled  bool
	canceled bool
	winner   chan raceResult
	done     chan struct{}
}

func newOneShotRace() *oneShotRace {
	return &oneShotRace{
		winner: make(chan raceResult, 1),
		done:   make(chan struct{}),
	}
}

// offer settles the race with r and reports whether r won.
func (o *oneShotRace) offer(r raceResult) bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.settled || o.canceled {
		return false
	}
	o.settled = true
	o.winner <- r
	return true
}

// cancel releases the waiter without settling. Idempotent.
func (o *oneShotRace) cancel() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.settled || o.canceled {
		return
	}
	o.canceled = true
	close(o.done)
}

// wait blocks until the race settles or is canceled. ok is false on
// cancellation.
func (o *oneShotRace) wait() (raceResult, bool) {
	select {
	case r := <-o.winner:
		return r, true
	case <-o.done:
		return raceResult{}, false
	}
}
