package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRealBusyWait(t *testing.T) {
	c := Real{}
	start := time.Now()
	c.BusyWait(500 * time.Microsecond)
	assert.True(t, time.Since(start) >= 500*time.Microsecond)
}

func TestRealSleepUntil(t *testing.T) {
	c := Real{}
	start := time.Now()
	assert.True(t, c.SleepUntil(start.Add(20*time.Millisecond), nil))
	assert.True(t, time.Since(start) >= 20*time.Millisecond)

	assert.True(t, c.SleepUntil(start, nil), "a past deadline returns at once")

	stop := make(chan struct{})
	close(stop)
	assert.False(t, c.SleepUntil(time.Now().Add(time.Hour), stop))
	assert.False(t, c.SleepUntil(start, stop))
}

func TestVirtual(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	v := NewVirtual(start)

	v.BusyWait(time.Millisecond)
	v.Advance(time.Second)
	assert.Equal(t, start.Add(time.Second+time.Millisecond), v.Now())

	assert.True(t, v.SleepUntil(start, nil))
	assert.Equal(t, start.Add(time.Second+time.Millisecond), v.Now(), "never moves back")

	assert.True(t, v.SleepUntil(start.Add(5*time.Second), nil))
	assert.Equal(t, start.Add(5*time.Second), v.Now())

	assert.Equal(t, []time.Duration{time.Millisecond}, v.Waits())
	assert.Len(t, v.Wakes(), 2)
}
