package clock

import "time"

// Clock abstracts the current time so daily-board resolution, session
// expiry and progress timestamps can be driven by a mock in tests
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock
type RealClock struct{}

// New creates a new RealClock
func New() *RealClock {
	return &RealClock{}
}

// Now returns the current system time
func (c *RealClock) Now() time.Time {
	return time.Now()
}
