// Package clock provides the time abstraction used throughout the
// orchestrator. Handlers and trace writers that record timestamps take
// a Clock instead of calling time.Now() directly; only the lock and SSH
// retry loops read the wall clock themselves, for their deadlines.
package clock

import "time"

// Clock returns the current UTC time.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock, backed by the real wall clock.
type SystemClock struct{}

// NewSystemClock returns a Clock backed by time.Now().
func NewSystemClock() SystemClock {
	return SystemClock{}
}

// Now returns the current UTC time.
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
