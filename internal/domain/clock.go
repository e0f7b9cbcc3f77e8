package domain

import "time"

// Clock is the time source for every expiry decision and timestamp.
// Injecting it keeps expiry behavior deterministic in tests: advancing
// a mock clock replaces sleeping past a real deadline.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system time.
type RealClock struct{}

// Now returns the current system time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// MockClock is a manually advanced Clock for tests.
type MockClock struct {
	current time.Time
}

// NewMockClock creates a MockClock frozen at the given instant.
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{current: t}
}

// Now returns the mock's current instant.
func (c *MockClock) Now() time.Time {
	return c.current
}

// Advance moves the clock forward by d.
func (c *MockClock) Advance(d time.Duration) {
	c.current = c.current.Add(d)
}

// Set jumps the clock to a specific instant.
func (c *MockClock) Set(t time.Time) {
	c.current = t
}
