//go:build linux

package pins

import (
	"strconv"

	"github.com/callebjorkell/charlcd/internal/lcd"
	"github.com/juju/errors"
	log "github.com/sirupsen/logrus"
	cdev "github.com/temoto/gpio-cdev-go"
	"periph.io/x/conn/v3/gpio"
)

type cdevLine struct {
	handle cdev.Lineser
	set    cdev.LineSetFunc
}

// Cdev drives pins through the Linux GPIO character device. Pins are named by
// their line offset on the chip ("25").
type Cdev struct {
	chip  cdev.Chiper
	lines map[string]cdevLine
}

func openCdev(path string) (lcd.Pins, error) {
	c, err := NewCdev(path)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// NewCdev opens a GPIO chip such as /dev/gpiochip0.
func NewCdev(path string) (*Cdev, error) {
	chip, err := cdev.Open(path, consumer)
	if err != nil {
		return nil, errors.Annotatef(err, "open %s", path)
	}
	return newCdev(chip), nil
}

func newCdev(chip cdev.Chiper) *Cdev {
	return &Cdev{
		chip:  chip,
		lines: make(map[string]cdevLine),
	}
}

func (c *Cdev) ConfigureOutput(pin string) error {
	offset, err := strconv.ParseUint(pin, 10, 32)
	if err != nil {
		return errors.NotValidf("line offset %q", pin)
	}
	handle, err := c.chip.OpenLines(cdev.GPIOHANDLE_REQUEST_OUTPUT, consumer, uint32(offset))
	if err != nil {
		return errors.Annotatef(err, "request line %d", offset)
	}
	l := cdevLine{handle: handle, set: handle.SetFunc(uint32(offset))}
	l.set(0)
	if err := handle.Flush(); err != nil {
		_ = handle.Close()
		return errors.Annotatef(err, "drive line %d low", offset)
	}
	c.lines[pin] = l
	return nil
}

func (c *Cdev) Write(pin string, level gpio.Level) {
	l, ok := c.lines[pin]
	if !ok {
		log.Warnf("pins: write to unconfigured line %s", pin)
		return
	}
	var v byte
	if level {
		v = 1
	}
	l.set(v)
	if err := l.handle.Flush(); err != nil {
		log.Warnf("pins: line %s: %v", pin, err)
	}
}

// Close releases every requested line and the chip.
func (c *Cdev) Close() error {
	for pin, l := range c.lines {
		if err := l.handle.Close(); err != nil {
			log.Debugf("pins: closing line %s: %v", pin, err)
		}
		delete(c.lines, pin)
	}
	return errors.Trace(c.chip.Close())
}
