package lcd

import (
	"github.com/juju/errors"
)

// Config holds the controller options applied by Init.
type Config struct {
	Width     BusWidth
	Lines     int
	Font      Font
	Cursor    bool
	Blink     bool
	Direction EntryDirection
	AutoShift bool
	// StartRow is the row the address counter points at after Init.
	StartRow int
	Timing   Timing
}

// DefaultConfig is a two line, 4-bit display with the cursor hidden and
// text running left to right.
func DefaultConfig() Config {
	return Config{
		Width:     Half,
		Lines:     2,
		Font:      FontA,
		Direction: Right,
		Timing:    DefaultTiming(),
	}
}

// Validate rejects any option outside its enumerated domain and any delay
// below the datasheet floor.
func (c Config) Validate() error {
	if c.Width != Half && c.Width != Full {
		return errors.NotValidf("bus width %d", byte(c.Width))
	}
	if c.Lines != 1 && c.Lines != 2 {
		return errors.NotValidf("line count %d", c.Lines)
	}
	if c.Font != FontA && c.Font != FontB {
		return errors.NotValidf("font %d", byte(c.Font))
	}
	if c.Direction != Left && c.Direction != Right {
		return errors.NotValidf("entry direction %d", byte(c.Direction))
	}
	if _, ok := RowAddress(c.StartRow); !ok {
		return errors.NotValidf("start row %d", c.StartRow)
	}
	return errors.Trace(c.Timing.Validate())
}

// Validate rejects delays shorter than the datasheet allows.
func (t Timing) Validate() error {
	switch {
	case t.EnablePulse < MinEnablePulse:
		return errors.NotValidf("enable pulse %v (min %v)", t.EnablePulse, MinEnablePulse)
	case t.Settle < MinSettle:
		return errors.NotValidf("settle delay %v (min %v)", t.Settle, MinSettle)
	case t.PowerOn < MinPowerOn:
		return errors.NotValidf("power-on delay %v (min %v)", t.PowerOn, MinPowerOn)
	case t.ClearHome < MinClearHome:
		return errors.NotValidf("clear/home delay %v (min %v)", t.ClearHome, MinClearHome)
	}
	return nil
}
