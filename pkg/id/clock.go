package id

import "time"

// Clock returns the number of elapsed ticks since the Unix epoch.
type Clock interface {
	Now() int64
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() int64

func (f ClockFunc) Now() int64 { return f() }

// SystemClock reads wall time once, at construction, and advances from there
// with the process monotonic clock. Steps of the host clock after start are
// not seen, so its ticks never go backwards.
type SystemClock struct {
	unit  time.Duration
	start time.Time     // includes the monotonic reading
	wall  time.Duration // start as an offset from the Unix epoch
}

// NewSystemClock returns a clock ticking in unit.
func NewSystemClock(unit Unit) *SystemClock {
	// Don't call UTC() here, it strips the monotonic reading.
	now := time.Now()
	return &SystemClock{
		unit:  unit.Duration(),
		start: now,
		wall:  time.Duration(now.UnixNano()),
	}
}

func (c *SystemClock) Now() int64 {
	return int64((c.wall + time.Since(c.start)) / c.unit)
}
