package pins

import (
	"sync"

	log "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/gpio"
)

// Dummy is a pin bank that is not connected to anything. It logs every
// transition and remembers the last level, which makes it usable on a
// development machine.
type Dummy struct {
	mu     sync.Mutex
	levels map[string]gpio.Level
}

func NewDummy() *Dummy {
	log.Infoln("Using dummy pins, nothing will show on a display")
	return &Dummy{levels: make(map[string]gpio.Level)}
}

func (d *Dummy) ConfigureOutput(pin string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	log.Debugf("pins: %s configured as output", pin)
	d.levels[pin] = gpio.Low
	return nil
}

func (d *Dummy) Write(pin string, level gpio.Level) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.levels[pin]; !ok {
		log.Warnf("pins: write to unconfigured pin %s", pin)
	}
	log.Tracef("pins: %s %v", pin, level)
	d.levels[pin] = level
}

// Level returns the last level written to the pin.
func (d *Dummy) Level(pin string) gpio.Level {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.levels[pin]
}
