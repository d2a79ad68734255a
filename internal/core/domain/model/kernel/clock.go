package kernel

import "time"

// Clock abstracts the current time so lifecycle timestamps and note entries
// can be asserted in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock and normalizes it to UTC.
type SystemClock struct{}

// NewSystemClock returns the production clock.
func NewSystemClock() SystemClock {
	return SystemClock{}
}

// Now returns the current UTC time.
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// FixedClock always returns the same instant.
type FixedClock struct {
	at time.Time
}

// NewFixedClock returns a clock pinned to at.
func NewFixedClock(at time.Time) FixedClock {
	return FixedClock{at: at.UTC()}
}

// Now returns the pinned instant.
func (c FixedClock) Now() time.Time {
	return c.at
}
