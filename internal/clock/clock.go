// Package clock provides the time sources used by the display driver: a real
// one that spins for protocol delays, and a virtual one for tests.
package clock

import (
	"time"

	"periph.io/x/host/v3/cpu"
)

// Real uses the host monotonic clock.
type Real struct{}

func (Real) Now() time.Time {
	return time.Now()
}

// BusyWait blocks for at least d without yielding to the scheduler.
// Protocol delays are a few microseconds, far below what time.Sleep resolves.
func (Real) BusyWait(d time.Duration) {
	if d <= 0 {
		return
	}
	cpu.Nanospin(d)
}

// SleepUntil blocks until t or until stop is closed. It returns false when
// stopped.
func (Real) SleepUntil(t time.Time, stop <-chan struct{}) bool {
	d := time.Until(t)
	if d <= 0 {
		select {
		case <-stop:
			return false
		default:
			return true
		}
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-stop:
		return false
	}
}
