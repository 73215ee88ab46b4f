package driver

import (
	"time"

	"github.com/callebjorkell/charlcd/internal/lcd"
	"github.com/juju/errors"
	log "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/gpio"
)

// Walk is a wiring check. It drives each pin high for one period and low for
// the next, one pin after another, until stop is closed. A probe or an LED on
// each line shows whether the assignment matches the harness.
func Walk(pins lcd.Pins, ids []string, clock Clock, period time.Duration, stop <-chan struct{}) error {
	if len(ids) == 0 {
		return errors.NotValidf("empty pin list")
	}
	for _, id := range ids {
		if err := pins.ConfigureOutput(id); err != nil {
			return errors.Annotatef(err, "configure pin %s", id)
		}
		pins.Write(id, gpio.Low)
	}

	log.Infof("Walking %d pins every %v", len(ids), period)
	deadline := NewDeadline(clock, period)
	for {
		for _, id := range ids {
			log.Debugf("Pin %s high", id)
			pins.Write(id, gpio.High)
			if !deadline.Wait(stop) {
				pins.Write(id, gpio.Low)
				return nil
			}
			pins.Write(id, gpio.Low)
			if !deadline.Wait(stop) {
				return nil
			}
		}
	}
}
