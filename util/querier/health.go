package querier

import (
	"sync"
	"time"
)

const (
	// Number of consecutive failures before an endpoint is skipped
	failureThreshold = 3
	// Time before an unhealthy endpoint is tried first again
	recoveryTimeout = 5 * time.Minute
)

type healthState struct {
	failures      int
	lastFailureAt time.Time
}

// healthTracker remembers consecutive failures per endpoint URL so that a
// call starts at an endpoint that is currently answering.
type healthTracker struct {
	mu     sync.RWMutex
	states map[string]healthState
	now    func() time.Time
}

func newHealthTracker() *healthTracker {
	return &healthTracker{
		states: make(map[string]healthState),
		now:    time.Now,
	}
}

func (h *healthTracker) recordSuccess(endpoint string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.states, endpoint)
}

func (h *healthTracker) recordFailure(endpoint string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	state := h.states[endpoint]
	state.failures++
	state.lastFailureAt = h.now()
	h.states[endpoint] = state
}

func (h *healthTracker) isHealthy(endpoint string) bool {
	h.mu.RLock()
	state, ok := h.states[endpoint]
	h.mu.RUnlock()

	if !ok || state.failures < failureThreshold {
		return true
	}
	return h.now().Sub(state.lastFailureAt) >= recoveryTimeout
}

// findHealthy returns the index of the first healthy endpoint, or 0 if none are healthy
func (h *healthTracker) findHealthy(endpoints []string) int {
	for i, endpoint := range endpoints {
		if h.isHealthy(endpoint) {
			return i
		}
	}
	return 0
}
