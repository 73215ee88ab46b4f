package lcd

import (
	"time"

	"github.com/callebjorkell/charlcd/internal/clock"
	"periph.io/x/conn/v3/gpio"
)

// pulse is what the controller latched on one falling edge of E.
type pulse struct {
	rs    gpio.Level
	rw    gpio.Level
	value byte
	at    time.Time
}

// recorder is a fake pin bank that decodes enable pulses.
type recorder struct {
	assign     PinAssignment
	clk        *clock.Virtual
	levels     map[string]gpio.Level
	configured []string
	pulses     []pulse
	writes     map[string]int
}

func newRecorder(assign PinAssignment, clk *clock.Virtual) *recorder {
	return &recorder{
		assign: assign,
		clk:    clk,
		levels: make(map[string]gpio.Level),
		writes: make(map[string]int),
	}
}

func (r *recorder) ConfigureOutput(pin string) error {
	r.configured = append(r.configured, pin)
	return nil
}

func (r *recorder) Write(pin string, level gpio.Level) {
	r.writes[pin]++
	if pin == r.assign.Enable && r.levels[pin] == gpio.High && level == gpio.Low {
		var v byte
		for i, d := range r.assign.Data {
			if r.levels[d] {
				v |= 1 << uint(i)
			}
		}
		r.pulses = append(r.pulses, pulse{
			rs:    r.levels[r.assign.RegisterSelect],
			rw:    r.levels[r.assign.ReadWrite],
			value: v,
			at:    r.clk.Now(),
		})
	}
	r.levels[pin] = level
}

// bytes joins pulses into bytes, pairing nibbles on a half width bus.
func (r *recorder) bytes(skip int) []pulse {
	p := r.pulses[skip:]
	if len(r.assign.Data) == int(Full) {
		return p
	}
	var out []pulse
	for i := 0; i+1 < len(p); i += 2 {
		out = append(out, pulse{
			rs:    p[i].rs,
			rw:    p[i].rw,
			value: p[i].value<<4 | p[i+1].value,
			at:    p[i+1].at,
		})
	}
	return out
}

func (r *recorder) reset() {
	r.pulses = nil
}

var (
	halfPins = PinAssignment{
		Data:           []string{"GPIO25", "GPIO22", "GPIO23", "GPIO24"},
		RegisterSelect: "GPIO4",
		ReadWrite:      "GPIO27",
		Enable:         "GPIO17",
		Liveness:       "GPIO21",
	}
	fullPins = PinAssignment{
		Data:           []string{"1", "2", "3", "4", "5", "6", "7", "8"},
		RegisterSelect: "9",
		ReadWrite:      "10",
		Enable:         "11",
	}
	testStart = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
)

func newTestLCD(assign PinAssignment, cfg Config) (*LCD, *recorder, *clock.Virtual) {
	clk := clock.NewVirtual(testStart)
	rec := newRecorder(assign, clk)
	l, err := New(rec, assign, cfg, clk)
	if err != nil {
		panic(err)
	}
	return l, rec, clk
}
