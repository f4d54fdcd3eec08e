package catalog

import (
	"sync"
	"time"
)

// Kind names a scan.
type Kind string

const (
	KindAvailable Kind = "available"
	KindOwned     Kind = "owned"
	KindDashboard Kind = "dashboard"
)

// ScanState follows idle -> scanning -> populated | empty and re-enters
// scanning on every trigger.
type ScanState string

const (
	StateIdle      ScanState = "idle"
	StateScanning  ScanState = "scanning"
	StatePopulated ScanState = "populated"
	StateEmpty     ScanState = "empty"
)

// ItemError is a per-item failure that caused an id or token to be left out
// of a snapshot. Item errors are kept for diagnostics only.
type ItemError struct {
	Key   string
	Stage string
	Err   error
}

func (e ItemError) Error() string {
	return e.Stage + " " + e.Key + ": " + e.Err.Error()
}

// Snapshot is the immutable result of one completed scan.
type Snapshot[T any] struct {
	Entries    []T       `json:"entries"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	scanned  int
	failures []ItemError
}

func (s *Snapshot[T]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Entries)
}

// Failures lists the items the scan left out.
func (s *Snapshot[T]) Failures() []ItemError {
	if s == nil {
		return nil
	}
	return s.failures
}

func (s *Snapshot[T]) state() ScanState {
	if s.Len() == 0 {
		return StateEmpty
	}
	return StatePopulated
}

// stateTracker holds the scan state per kind.
type stateTracker struct {
	mu     sync.RWMutex
	states map[Kind]ScanState
	last   map[Kind]time.Time
}

func newStateTracker() *stateTracker {
	return &stateTracker{
		states: map[Kind]ScanState{
			KindAvailable: StateIdle,
			KindOwned:     StateIdle,
			KindDashboard: StateIdle,
		},
		last: make(map[Kind]time.Time),
	}
}

// begin moves kind to scanning and returns the state to restore when the
// scan is abandoned.
func (t *stateTracker) begin(kind Kind) ScanState {
	t.mu.Lock()
	defer t.mu.Unlock()
	prev := t.states[kind]
	if prev == StateScanning {
		// an overlapping scan of the same kind restores to idle at worst
		prev = StateIdle
	}
	t.states[kind] = StateScanning
	return prev
}

func (t *stateTracker) finish(kind Kind, state ScanState, at time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.states[kind] = state
	t.last[kind] = at
}

func (t *stateTracker) abandon(kind Kind, prev ScanState) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.states[kind] = prev
}

func (t *stateTracker) get(kind Kind) (ScanState, time.Time) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.states[kind], t.last[kind]
}
