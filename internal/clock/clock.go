// Package clock abstracts delayed callbacks so the timer can run against
// wall-clock time in production and a manually advanced clock in tests.
package clock

import "time"

// Timer is a pending callback. Stop reports whether it prevented the call;
// stopping an already stopped or fired timer is a no-op.
type Timer interface {
	Stop() bool
}

// Clock schedules callbacks.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// Real is the wall clock. Callbacks run on their own goroutine.
type Real struct{}

// Compile-time interface check.
var _ Clock = Real{}

// Now returns time.Now.
func (Real) Now() time.Time { return time.Now() }

// AfterFunc wraps time.AfterFunc.
func (Real) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
