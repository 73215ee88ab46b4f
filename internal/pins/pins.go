// Package pins provides the GPIO backends the LCD can be wired through.
package pins

import (
	"github.com/callebjorkell/charlcd/internal/lcd"
	"github.com/juju/errors"
)

const consumer = "charlcd"

// Open returns the pin backend with the given name. chip is only used by the
// cdev backend and defaults to /dev/gpiochip0.
func Open(driver, chip string) (lcd.Pins, error) {
	switch driver {
	case "periph":
		return openPeriph()
	case "cdev":
		if chip == "" {
			chip = "/dev/gpiochip0"
		}
		return openCdev(chip)
	case "dummy", "":
		return NewDummy(), nil
	}
	return nil, errors.NotValidf("pin driver %q", driver)
}
