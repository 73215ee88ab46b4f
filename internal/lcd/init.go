package lcd

import (
	log "github.com/sirupsen/logrus"
)

// Init brings the controller from an unknown state to the configured mode.
// The order of the steps is fixed by the datasheet and must not change.
func (l *LCD) Init() {
	log.Infof("Initializing %v", l)
	t := l.cfg.Timing

	l.bus.timer.BusyWait(t.PowerOn)

	fn := FunctionSet(l.cfg.Width, l.cfg.Lines, l.cfg.Font)
	if l.cfg.Width == Half {
		// The controller wakes up in 8-bit mode and samples D4..D7 only, so
		// the first pulse switches it to 4-bit before any full byte is sent.
		l.bus.sendNibble(fn)
		l.bus.timer.BusyWait(t.Settle)
	}

	l.bus.sendInstruction(fn)
	l.bus.timer.BusyWait(t.Settle)

	l.Clear()

	l.SetDisplay(true, l.cfg.Cursor, l.cfg.Blink)
	l.SetEntryMode(l.cfg.Direction, l.cfg.AutoShift)

	start, _ := RowAddress(l.cfg.StartRow)
	l.SetDDRAMAddress(start)
}
