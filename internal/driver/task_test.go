package driver

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/callebjorkell/charlcd/internal/clock"
	"github.com/callebjorkell/charlcd/internal/lcd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDisplay struct {
	mu    sync.Mutex
	calls []string
}

func (d *fakeDisplay) record(format string, args ...interface{}) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = append(d.calls, fmt.Sprintf(format, args...))
}

func (d *fakeDisplay) Init()                          { d.record("init") }
func (d *fakeDisplay) SetLine(index int, text string) { d.record("set %d %q", index, strings.TrimRight(text, " ")) }
func (d *fakeDisplay) DisplayLine(index int)          { d.record("show %d", index) }
func (d *fakeDisplay) Heartbeat()                     { d.record("beat") }

func (d *fakeDisplay) Calls() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.calls...)
}

func runFrames(t *testing.T, task *Task) {
	t.Helper()
	task.Start()
	select {
	case <-task.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the task to stop")
	}
}

func TestTaskRendersChangedRows(t *testing.T) {
	display := &fakeDisplay{}
	clk := clock.NewVirtual(testStart)
	var task *Task
	content := ContentFunc(func(f Frame) []string {
		if f.Tick == 2 {
			task.alive.Stop()
			return []string{"a", "c"}
		}
		return []string{"a", "b"}
	})
	task, err := NewTask(display, clk, content, Options{})
	require.NoError(t, err)

	runFrames(t, task)

	assert.Equal(t, []string{
		"init",
		`set 0 "a"`, "show 0", `set 1 "b"`, "show 1", "beat",
		"beat",
		`set 1 "c"`, "show 1", "beat",
	}, display.Calls())
	assert.Equal(t, Running, task.State())
	assert.Equal(t, []time.Time{
		testStart.Add(DefaultPeriod),
		testStart.Add(2 * DefaultPeriod),
	}, clk.Wakes())
}

func TestTaskReinit(t *testing.T) {
	display := &fakeDisplay{}
	clk := clock.NewVirtual(testStart)
	var task *Task
	content := ContentFunc(func(f Frame) []string {
		switch f.Tick {
		case 1:
			task.RequestReinit()
			task.RequestReinit()
		case 2:
			task.alive.Stop()
		}
		return []string{"same"}
	})
	task, err := NewTask(display, clk, content, Options{Period: time.Second})
	require.NoError(t, err)

	runFrames(t, task)

	assert.Equal(t, []string{
		"init", `set 0 "same"`, "show 0", "beat",
		"beat",
		"init", `set 0 "same"`, "show 0", "beat",
	}, display.Calls())
}

func TestTaskReinitRedrawsRowsMissingFromFrame(t *testing.T) {
	display := &fakeDisplay{}
	clk := clock.NewVirtual(testStart)
	var task *Task
	content := ContentFunc(func(f Frame) []string {
		switch f.Tick {
		case 0:
			task.RequestReinit()
			return []string{"a", "b"}
		case 1:
			return []string{"a"}
		default:
			task.alive.Stop()
			return []string{"a", "b"}
		}
	})
	task, err := NewTask(display, clk, content, Options{})
	require.NoError(t, err)

	runFrames(t, task)

	assert.Equal(t, []string{
		"init", `set 0 "a"`, "show 0", `set 1 "b"`, "show 1", "beat",
		"init", `set 0 "a"`, "show 0", "beat",
		`set 1 "b"`, "show 1", "beat",
	}, display.Calls())
}

func TestTaskStartTwice(t *testing.T) {
	display := &fakeDisplay{}
	clk := clock.NewVirtual(testStart)
	var task *Task
	content := ContentFunc(func(f Frame) []string {
		task.alive.Stop()
		return []string{"x"}
	})
	task, err := NewTask(display, clk, content, Options{})
	require.NoError(t, err)

	task.Start()
	task.Start()
	<-task.Done()

	inits := 0
	for _, c := range display.Calls() {
		if c == "init" {
			inits++
		}
	}
	assert.Equal(t, 1, inits)
}

func TestTaskPeriodWithoutDrift(t *testing.T) {
	const period = 50 * time.Millisecond
	work := []time.Duration{5, 49, 20, 0, 33, 48, 1, 12}

	display := &fakeDisplay{}
	clk := clock.NewVirtual(testStart)
	var task *Task
	var uptimes []time.Duration
	content := ContentFunc(func(f Frame) []string {
		uptimes = append(uptimes, f.Uptime)
		clk.Advance(work[f.Tick] * time.Millisecond)
		if int(f.Tick) == len(work)-1 {
			task.alive.Stop()
		}
		return nil
	})
	task, err := NewTask(display, clk, content, Options{Period: period})
	require.NoError(t, err)

	runFrames(t, task)

	wakes := clk.Wakes()
	require.Len(t, wakes, len(work)-1)
	prev := testStart
	for i, w := range wakes {
		assert.Equal(t, period, w.Sub(prev), "period %d", i)
		prev = w
	}
	for i, u := range uptimes {
		assert.Equal(t, time.Duration(i)*period, u)
	}
}

func TestTaskStopBeforeStart(t *testing.T) {
	display := &fakeDisplay{}
	task, err := NewTask(display, clock.NewVirtual(testStart), Static{"x"}, Options{})
	require.NoError(t, err)

	task.Stop()
	task.Start()

	assert.Empty(t, display.Calls())
	assert.Equal(t, Initializing, task.State())
}

func TestTaskStopRealClock(t *testing.T) {
	display := &fakeDisplay{}
	task, err := NewTask(display, clock.Real{}, Static{"x"}, Options{Period: 5 * time.Millisecond})
	require.NoError(t, err)

	task.Start()
	time.Sleep(30 * time.Millisecond)
	task.Stop()

	calls := display.Calls()
	require.NotEmpty(t, calls)
	assert.Equal(t, "init", calls[0])
	assert.Contains(t, calls, "beat")
}

func TestPrepare(t *testing.T) {
	task, err := NewTask(&fakeDisplay{}, clock.Real{}, Static{}, Options{})
	require.NoError(t, err)

	assert.Equal(t, "hi"+strings.Repeat(" ", lcd.Columns-2), task.prepare("hi"))
	long := strings.Repeat("y", lcd.Columns+3)
	assert.Equal(t, long, task.prepare(long), "truncation is left to the line buffer")
}

func TestPrepareCodepage(t *testing.T) {
	task, err := NewTask(&fakeDisplay{}, clock.Real{}, Static{}, Options{Codepage: "windows-1251"})
	require.NoError(t, err)

	assert.Equal(t, "\xcf\xf0\xe8\xe2\xe5\xf2"+strings.Repeat(" ", lcd.Columns-6), task.prepare("Привет"))
}

func TestUnknownCodepage(t *testing.T) {
	_, err := NewTask(&fakeDisplay{}, clock.Real{}, Static{}, Options{Codepage: "klingon-42"})
	assert.Error(t, err)
}

func TestRunOnce(t *testing.T) {
	display := &fakeDisplay{}
	task, err := NewTask(display, clock.NewVirtual(testStart), Static{"one", "two"}, Options{})
	require.NoError(t, err)

	task.RunOnce()

	assert.Equal(t, []string{
		"init", `set 0 "one"`, "show 0", `set 1 "two"`, "show 1",
	}, display.Calls())
	assert.Equal(t, Running, task.State())
}
