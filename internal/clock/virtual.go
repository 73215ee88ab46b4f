package clock

import (
	"sync"
	"time"
)

// Virtual is a clock that only moves when told to. BusyWait and SleepUntil
// advance it instantly, which lets tests check timing without waiting.
type Virtual struct {
	mu    sync.Mutex
	now   time.Time
	waits []time.Duration
	wakes []time.Time
}

func NewVirtual(start time.Time) *Virtual {
	return &Virtual{now: start}
}

func (v *Virtual) Now() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.now
}

// Advance moves the clock forward, simulating work.
func (v *Virtual) Advance(d time.Duration) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.now = v.now.Add(d)
}

func (v *Virtual) BusyWait(d time.Duration) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.waits = append(v.waits, d)
	if d > 0 {
		v.now = v.now.Add(d)
	}
}

func (v *Virtual) SleepUntil(t time.Time, stop <-chan struct{}) bool {
	select {
	case <-stop:
		return false
	default:
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if t.After(v.now) {
		v.now = t
	}
	v.wakes = append(v.wakes, v.now)
	return true
}

// Waits returns every busy-wait duration requested so far.
func (v *Virtual) Waits() []time.Duration {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]time.Duration(nil), v.waits...)
}

// Wakes returns the time of every SleepUntil return so far.
func (v *Virtual) Wakes() []time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]time.Time(nil), v.wakes...)
}
