package lcd

import (
	"time"

	log "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/gpio"
)

// Timer provides the protocol delays. They are shorter than any scheduler
// tick, so implementations spin instead of sleeping.
type Timer interface {
	BusyWait(d time.Duration)
}

// bus transmits encoded bytes. R/W is tied low, the controller is never read.
type bus struct {
	pins   Pins
	assign PinAssignment
	width  BusWidth
	timing Timing
	timer  Timer
}

func (b *bus) sendInstruction(bits byte) {
	log.Debugf("lcd: instruction 0x%02x", bits)
	b.sendByte(bits, command)
}

func (b *bus) sendData(bits byte) {
	log.Tracef("lcd: data 0x%02x", bits)
	b.sendByte(bits, character)
}

func (b *bus) sendByte(bits byte, mode gpio.Level) {
	b.pins.Write(b.assign.RegisterSelect, mode)
	if b.width == Full {
		b.pulse(bits)
		return
	}
	b.pulse(bits >> 4)
	b.pulse(bits & 0x0f)
}

// sendNibble transmits the high nibble of an instruction as a single pulse.
// Only meaningful on a half width bus during initialization.
func (b *bus) sendNibble(bits byte) {
	log.Debugf("lcd: nibble 0x%x", bits>>4)
	b.pins.Write(b.assign.RegisterSelect, command)
	b.pulse(bits >> 4)
}

// pulse puts the low len(Data) bits of value on the data lines and commits
// them with one enable pulse.
func (b *bus) pulse(value byte) {
	b.pins.Write(b.assign.Enable, gpio.High)
	for i, pin := range b.assign.Data {
		b.pins.Write(pin, value&(1<<uint(i)) != 0)
	}
	b.timer.BusyWait(b.timing.EnablePulse)
	b.pins.Write(b.assign.Enable, gpio.Low)
	b.timer.BusyWait(b.timing.Settle)
}
