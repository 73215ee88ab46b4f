package driver

import (
	"time"
)

// Clock is the scheduler collaborator of the driver task.
type Clock interface {
	Now() time.Time
	// SleepUntil blocks until t has passed. It returns false if stop was
	// closed first.
	SleepUntil(t time.Time, stop <-chan struct{}) bool
}

// Deadline wakes up on a fixed period measured from the previous deadline,
// not from the moment Wait is called, so time spent working inside a period
// never accumulates as drift.
type Deadline struct {
	clock  Clock
	period time.Duration
	next   time.Time
}

// NewDeadline starts the schedule at the current time.
func NewDeadline(clock Clock, period time.Duration) *Deadline {
	return &Deadline{
		clock:  clock,
		period: period,
		next:   clock.Now(),
	}
}

// Wait advances the deadline by one period and sleeps until it. A deadline
// that already passed returns immediately and the schedule still advances by
// exactly one period, letting an overrun be caught up.
func (d *Deadline) Wait(stop <-chan struct{}) bool {
	d.next = d.next.Add(d.period)
	return d.clock.SleepUntil(d.next, stop)
}

// Next is the time the following Wait will return at.
func (d *Deadline) Next() time.Time {
	return d.next.Add(d.period)
}
