// Package lcd drives an HD44780 compatible character display over a parallel
// GPIO bus.
//
// The controller is never read back, so every instruction is followed by a
// fixed delay long enough for the slowest chip. Nothing reports a failure: an
// unplugged display looks exactly like a working one from this side of the
// bus.
//
// # Datasheet
//
// https://www.sparkfun.com/datasheets/LCD/HD44780.pdf
package lcd

import (
	"fmt"

	"github.com/juju/errors"
	log "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/gpio"
)

type addressMode byte

const (
	modeDDRAM addressMode = iota
	modeCGRAM
)

// displayState mirrors what the controller holds, as far as can be known
// without reading it.
type displayState struct {
	mode      addressMode
	address   byte
	direction EntryDirection
	shift     bool
	lines     int
	liveness  gpio.Level
}

// advance moves the address counter the way the controller does after a
// data write.
func (s *displayState) advance() {
	s.step(s.direction)
}

// step moves the address counter one position. CGRAM wraps within 6 bits.
// DDRAM holds 80 cells: 0x00-0x4f in 1-line mode, or 0x00-0x27 and
// 0x40-0x67 in 2-line mode, where the counter jumps the gap between lines.
func (s *displayState) step(dir EntryDirection) {
	a := s.address
	switch {
	case s.mode == modeCGRAM:
		if dir == Right {
			a = (a + 1) & 0x3f
		} else {
			a = (a - 1) & 0x3f
		}
	case s.lines == 1:
		if dir == Right {
			a = (a + 1) % 0x50
		} else if a == 0x00 {
			a = 0x4f
		} else {
			a--
		}
	case dir == Right:
		switch a {
		case 0x27:
			a = 0x40
		case 0x67:
			a = 0x00
		default:
			a++
		}
	default:
		switch a {
		case 0x00:
			a = 0x67
		case 0x40:
			a = 0x27
		default:
			a--
		}
	}
	s.address = a
}

// LCD owns the pins, the controller state mirror and the line buffer. It is
// not safe for concurrent use; one goroutine owns it.
type LCD struct {
	bus   bus
	cfg   Config
	state displayState
	rows  [RowCount][RowCapacity]byte
}

// New validates the configuration, configures every assigned pin as an output
// and drives R/W low. It does not talk to the controller; call Init for that.
func New(pins Pins, assign PinAssignment, cfg Config, timer Timer) (*LCD, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	if err := assign.Validate(cfg.Width); err != nil {
		return nil, errors.Trace(err)
	}

	log.Infof("Configuring %v LCD pins", cfg.Width)
	for _, p := range assign.Pins() {
		if err := pins.ConfigureOutput(p); err != nil {
			return nil, errors.Annotatef(err, "configure pin %s", p)
		}
		pins.Write(p, gpio.Low)
	}

	return &LCD{
		bus: bus{
			pins:   pins,
			assign: assign,
			width:  cfg.Width,
			timing: cfg.Timing,
			timer:  timer,
		},
		cfg:   cfg,
		state: displayState{lines: cfg.Lines},
	}, nil
}

func (l *LCD) String() string {
	return fmt.Sprintf("HD44780 %v %d-line %v font", l.cfg.Width, l.cfg.Lines, l.cfg.Font)
}

// Clear blanks the display and resets the address counter. The controller
// also resets the entry direction to increment.
func (l *LCD) Clear() {
	l.bus.sendInstruction(ClearDisplay())
	l.bus.timer.BusyWait(l.cfg.Timing.ClearHome)
	l.state.mode = modeDDRAM
	l.state.address = 0
	l.state.direction = Right
}

// Home moves the cursor to the first position and undoes display shifts.
func (l *LCD) Home() {
	l.bus.sendInstruction(ReturnHome())
	l.bus.timer.BusyWait(l.cfg.Timing.ClearHome)
	l.state.mode = modeDDRAM
	l.state.address = 0
}

func (l *LCD) SetEntryMode(dir EntryDirection, shift bool) {
	l.bus.sendInstruction(EntryModeSet(dir, shift))
	l.state.direction = dir & 1
	l.state.shift = shift
}

func (l *LCD) SetDisplay(on, cursor, blink bool) {
	l.bus.sendInstruction(DisplayControl(on, cursor, blink))
}

// Shift moves the cursor or the whole display one position without writing.
func (l *LCD) Shift(target ShiftTarget, dir EntryDirection) {
	l.bus.sendInstruction(CursorShift(target, dir))
	if target == ShiftCursor {
		l.state.step(dir)
	}
}

// SetCGRAMAddress points the address counter into character generator RAM.
// Following data writes go to glyph rows instead of the display.
func (l *LCD) SetCGRAMAddress(addr byte) {
	l.bus.sendInstruction(SetCGRAMAddress(addr))
	l.state.mode = modeCGRAM
	l.state.address = addr & 0x3f
}

func (l *LCD) SetDDRAMAddress(addr byte) {
	l.bus.sendInstruction(SetDDRAMAddress(addr))
	l.state.mode = modeDDRAM
	l.state.address = addr & 0x7f
}

// MoveTo puts the cursor at a zero based row and column. Positions outside
// the display are ignored.
func (l *LCD) MoveTo(row, col int) {
	start, ok := RowAddress(row)
	if !ok || col < 0 || col >= Columns {
		log.Debugf("lcd: ignoring cursor move to %d,%d", row, col)
		return
	}
	l.SetDDRAMAddress(start + byte(col))
}

// WriteByte sends one character code at the current address.
func (l *LCD) WriteByte(c byte) error {
	l.bus.sendData(c)
	l.state.advance()
	return nil
}

// Write sends every byte as character data. It never fails.
func (l *LCD) Write(p []byte) (int, error) {
	for _, c := range p {
		_ = l.WriteByte(c)
	}
	return len(p), nil
}

func (l *LCD) WriteString(s string) (int, error) {
	return l.Write([]byte(s))
}

// Heartbeat toggles the liveness pin, if one is assigned.
func (l *LCD) Heartbeat() {
	if l.bus.assign.Liveness == "" {
		return
	}
	l.state.liveness = !l.state.liveness
	l.bus.pins.Write(l.bus.assign.Liveness, l.state.liveness)
}
