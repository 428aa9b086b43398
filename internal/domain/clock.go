package domain

import "time"

// Clock is the time source used to measure how long a derivation took.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system time.
type RealClock struct{}

// Now returns the current system time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// MockClock is a controllable Clock for tests. When a step is configured,
// every call to Now moves the clock forward by that step, so two readings
// taken around a derivation report a fixed elapsed duration.
type MockClock struct {
	current time.Time
	step    time.Duration
}

// NewMockClock creates a MockClock frozen at t.
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{current: t}
}

// NewSteppingClock creates a MockClock starting at t that advances by step
// after each reading.
func NewSteppingClock(t time.Time, step time.Duration) *MockClock {
	return &MockClock{current: t, step: step}
}

// Now returns the mock's current time, then applies the step.
func (c *MockClock) Now() time.Time {
	now := c.current
	c.current = c.current.Add(c.step)
	return now
}

// Advance moves the clock forward by d.
func (c *MockClock) Advance(d time.Duration) {
	c.current = c.current.Add(d)
}
