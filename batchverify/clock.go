package batchverify

import "time"

// Clock abstracts the monotonic timestamps bracketing a request so tests
// can inject deterministic values instead of relying on ambient wall-clock
// time.
type Clock interface {
	Now() time.Time
}

// realClock is the default Clock, backed by time.Now. time.Time values it
// returns carry a monotonic reading, so Metrics.WorkerEnd.Sub(WorkerStart)
// is immune to wall-clock adjustments.
type realClock struct{}

// Now returns the current time.
func (realClock) Now() time.Time { return time.Now() }
