//go:build pi

package pins

import (
	"github.com/callebjorkell/charlcd/internal/lcd"
	"github.com/juju/errors"
	log "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// Periph drives pins through periph.io, addressing them by name ("GPIO25").
type Periph struct {
	pins map[string]gpio.PinIO
}

func openPeriph() (lcd.Pins, error) {
	p, err := NewPeriph()
	if err != nil {
		return nil, err
	}
	return p, nil
}

func NewPeriph() (*Periph, error) {
	if _, err := host.Init(); err != nil {
		return nil, errors.Annotate(err, "unable to initialize periph")
	}
	return &Periph{pins: make(map[string]gpio.PinIO)}, nil
}

func (p *Periph) ConfigureOutput(name string) error {
	pin := gpioreg.ByName(name)
	if pin == nil {
		return errors.NotFoundf("gpio %s", name)
	}
	if err := pin.Out(gpio.Low); err != nil {
		return errors.Annotatef(err, "set %s as output", name)
	}
	p.pins[name] = pin
	return nil
}

func (p *Periph) Write(name string, level gpio.Level) {
	pin, ok := p.pins[name]
	if !ok {
		log.Warnf("pins: write to unconfigured pin %s", name)
		return
	}
	if err := pin.Out(level); err != nil {
		log.Warnf("pins: %s: %v", name, err)
	}
}
