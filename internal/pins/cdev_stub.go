//go:build !linux

package pins

import (
	"github.com/callebjorkell/charlcd/internal/lcd"
	"github.com/juju/errors"
)

func openCdev(path string) (lcd.Pins, error) {
	return nil, errors.NotSupportedf("gpio character device %s on this platform", path)
}
