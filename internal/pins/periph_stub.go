//go:build !pi

package pins

import (
	"github.com/callebjorkell/charlcd/internal/lcd"
	"github.com/juju/errors"
)

func openPeriph() (lcd.Pins, error) {
	return nil, errors.NotSupportedf("periph pins in a build without the pi tag")
}
