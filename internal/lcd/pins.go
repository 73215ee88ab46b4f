package lcd

import (
	"github.com/juju/errors"
	"periph.io/x/conn/v3/gpio"
)

// Pins is the GPIO collaborator. Pin identifiers are whatever the
// implementation resolves: periph names ("GPIO25") or character device line
// offsets ("25").
type Pins interface {
	ConfigureOutput(pin string) error
	Write(pin string, level gpio.Level)
}

// PinAssignment maps controller signals to host pins. Data lists the data
// lines from the least significant up: D0..D7 for a full width bus, D4..D7
// for a half width bus.
type PinAssignment struct {
	Data           []string
	RegisterSelect string
	ReadWrite      string
	Enable         string
	// Liveness is optional and toggled once per driver period.
	Liveness string
}

// Pins lists every assigned pin: control lines, data lines, then liveness.
func (a PinAssignment) Pins() []string {
	p := []string{a.RegisterSelect, a.ReadWrite, a.Enable}
	p = append(p, a.Data...)
	if a.Liveness != "" {
		p = append(p, a.Liveness)
	}
	return p
}

// Validate checks the assignment against the bus width.
func (a PinAssignment) Validate(width BusWidth) error {
	if width != Half && width != Full {
		return errors.NotValidf("bus width %d", byte(width))
	}
	if len(a.Data) != int(width) {
		return errors.NotValidf("%d data pins for a %v bus", len(a.Data), width)
	}
	if a.RegisterSelect == "" {
		return errors.NotValidf("empty register select pin")
	}
	if a.ReadWrite == "" {
		return errors.NotValidf("empty read/write pin")
	}
	if a.Enable == "" {
		return errors.NotValidf("empty enable pin")
	}
	seen := make(map[string]bool)
	for _, p := range a.Pins() {
		if p == "" {
			return errors.NotValidf("empty data pin")
		}
		if seen[p] {
			return errors.NotValidf("pin %s assigned twice", p)
		}
		seen[p] = true
	}
	return nil
}
