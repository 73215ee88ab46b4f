// Package driver runs the display: it initializes the controller once, then
// renders content on a fixed period until stopped.
package driver

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/callebjorkell/charlcd/internal/lcd"
	"github.com/juju/errors"
	"github.com/paulrosania/go-charset/charset"
	_ "github.com/paulrosania/go-charset/data"
	log "github.com/sirupsen/logrus"
	"github.com/temoto/alive/v2"
)

// DefaultPeriod is how often content is re-rendered.
const DefaultPeriod = 100 * time.Millisecond

type State int32

const (
	Initializing State = iota
	Running
)

func (s State) String() string {
	switch s {
	case Initializing:
		return "initializing"
	case Running:
		return "running"
	}
	return fmt.Sprintf("State(%d)", int32(s))
}

// Display is the part of *lcd.LCD the task drives.
type Display interface {
	Init()
	SetLine(index int, text string)
	DisplayLine(index int)
	Heartbeat()
}

type Options struct {
	Period time.Duration
	// Codepage names the character ROM encoding, e.g. "windows-1251".
	// Empty sends text bytes unchanged.
	Codepage string
}

// Task is the only owner of the display once started. Other goroutines talk
// to it through RequestReinit and Stop.
type Task struct {
	display Display
	clock   Clock
	content Content
	period  time.Duration
	tr      charset.Translator

	alive  *alive.Alive
	start  sync.Once
	reinit chan struct{}
	state  int32

	// shown holds the padded text last sent per row; "" means unknown.
	shown [lcd.RowCount]string
}

func NewTask(display Display, clock Clock, content Content, opt Options) (*Task, error) {
	if opt.Period <= 0 {
		opt.Period = DefaultPeriod
	}
	t := &Task{
		display: display,
		clock:   clock,
		content: content,
		period:  opt.Period,
		alive:   alive.NewAlive(),
		reinit:  make(chan struct{}, 1),
	}
	if opt.Codepage != "" {
		tr, err := charset.TranslatorTo(opt.Codepage)
		if err != nil {
			return nil, errors.Annotatef(err, "codepage %s", opt.Codepage)
		}
		t.tr = tr
	}
	return t, nil
}

// Start runs the task in its own goroutine. Only the first call has an
// effect.
func (t *Task) Start() {
	t.start.Do(func() {
		if !t.alive.Add(1) {
			return
		}
		go func() {
			defer t.alive.Done()
			t.run()
		}()
	})
}

// Stop ends the loop at the next deadline and waits for it to exit.
func (t *Task) Stop() {
	t.alive.Stop()
	t.alive.Wait()
}

// Done is closed once the task has been stopped and has exited.
func (t *Task) Done() <-chan struct{} {
	return t.alive.WaitChan()
}

func (t *Task) State() State {
	return State(atomic.LoadInt32(&t.state))
}

// RequestReinit asks the task to run the initialization sequence again at the
// start of its next period and redraw every row.
func (t *Task) RequestReinit() {
	select {
	case t.reinit <- struct{}{}:
		log.Debug("Display re-initialization requested")
	default:
	}
}

// RunOnce initializes the display and renders a single frame without
// starting the periodic loop. It must not be used on a started task.
func (t *Task) RunOnce() {
	t.setState(Initializing)
	t.display.Init()
	t.setState(Running)
	t.render(Frame{Time: t.clock.Now()})
}

func (t *Task) setState(s State) {
	log.Debugf("Display task %v", s)
	atomic.StoreInt32(&t.state, int32(s))
}

func (t *Task) run() {
	t.setState(Initializing)
	t.display.Init()
	t.setState(Running)

	deadline := NewDeadline(t.clock, t.period)
	started := t.clock.Now()
	for tick := uint64(0); ; tick++ {
		select {
		case <-t.reinit:
			log.Info("Re-initializing display")
			t.display.Init()
			t.shown = [lcd.RowCount]string{}
		default:
		}

		t.render(Frame{
			Tick:   tick,
			Time:   t.clock.Now(),
			Uptime: t.clock.Now().Sub(started),
		})
		t.display.Heartbeat()

		if !deadline.Wait(t.alive.StopChan()) {
			log.Info("Display task stopped")
			return
		}
	}
}

// render sends rows whose text changed since they were last shown.
func (t *Task) render(f Frame) {
	lines := t.content.Lines(f)
	for i := 0; i < len(lines) && i < lcd.RowCount; i++ {
		text := t.prepare(lines[i])
		if text == t.shown[i] {
			continue
		}
		t.display.SetLine(i, text)
		t.display.DisplayLine(i)
		t.shown[i] = text
	}
}

// prepare converts s to the display codepage and pads it with spaces so that
// a shorter text overwrites the previous one.
func (t *Task) prepare(s string) string {
	b := []byte(s)
	if t.tr != nil {
		_, out, err := t.tr.Translate(b, true)
		if err != nil {
			log.Warnf("Unable to translate %q: %v", s, err)
		} else {
			b = out
		}
	}
	text := string(b)
	if len(text) < lcd.Columns {
		text += strings.Repeat(" ", lcd.Columns-len(text))
	}
	return text
}
