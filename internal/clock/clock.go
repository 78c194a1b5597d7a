// Package clock provides the microsecond time source used to stamp trades.
//
// Timestamps are int64 microseconds since the Unix epoch, the same unit
// used for every timestamp in the model package.
package clock

import (
	"sync"
	"time"
)

// Clock returns the current time in microseconds since the Unix epoch.
type Clock interface {
	NowMicros() int64
}

// System reads the wall clock.
type System struct{}

// NowMicros returns time.Now() in microseconds.
func (System) NowMicros() int64 {
	return time.Now().UnixMicro()
}

// Func adapts a plain function to the Clock interface.
type Func func() int64

// NowMicros calls f.
func (f Func) NowMicros() int64 {
	return f()
}

// Manual is a clock that only moves when told to. Safe for concurrent use.
type Manual struct {
	mu  sync.Mutex
	now int64
}

// NewManual returns a Manual clock frozen at now (µs).
func NewManual(now int64) *Manual {
	return &Manual{now: now}
}

// NowMicros returns the current frozen time.
func (m *Manual) NowMicros() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Set moves the clock to now.
func (m *Manual) Set(now int64) {
	m.mu.Lock()
	m.now = now
	m.mu.Unlock()
}

// Advance moves the clock forward by d, truncated to whole microseconds.
func (m *Manual) Advance(d time.Duration) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now += d.Microseconds()
	return m.now
}
