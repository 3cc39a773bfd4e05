// Package ettest provides test helpers for code built on top of package et.
package ettest

import (
	"sync"
	"time"
)

// DefaultNow is the time a new MockClock starts at.
var DefaultNow = time.Date(2025, 6, 6, 12, 0, 0, 0, time.UTC)

// MockClock is an et.Clock that always returns the same time until it is changed
// using Set. It counts how often it was read.
type MockClock struct {
	mu    sync.Mutex
	now   time.Time
	calls int
}

// NewMockClock returns a MockClock set to DefaultNow.
func NewMockClock() *MockClock {
	return &MockClock{now: DefaultNow}
}

func (c *MockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.calls++
	return c.now
}

// Set changes the time returned by Now.
func (c *MockClock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = now
}

// Advance moves the clock forward by d.
func (c *MockClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
}

// Calls returns the number of times Now was called.
func (c *MockClock) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.calls
}
