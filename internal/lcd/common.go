package lcd

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
)

// BusWidth is the number of data lines wired between the host and the controller.
type BusWidth byte

const (
	Half BusWidth = 4
	Full BusWidth = 8
)

func (w BusWidth) String() string {
	switch w {
	case Half:
		return "4-bit"
	case Full:
		return "8-bit"
	}
	return fmt.Sprintf("BusWidth(%d)", byte(w))
}

// Font selects the character matrix.
type Font byte

const (
	FontA Font = 0 // 5x8 dots
	FontB Font = 1 // 5x10 dots
)

func (f Font) String() string {
	switch f {
	case FontA:
		return "5x8"
	case FontB:
		return "5x10"
	}
	return fmt.Sprintf("Font(%d)", byte(f))
}

// EntryDirection is the way the address counter moves after each data write.
type EntryDirection byte

const (
	Left  EntryDirection = 0 // decrement
	Right EntryDirection = 1 // increment
)

func (d EntryDirection) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("EntryDirection(%d)", byte(d))
}

// ShiftTarget chooses between moving the cursor and shifting the whole display.
type ShiftTarget byte

const (
	ShiftCursor  ShiftTarget = 0
	ShiftDisplay ShiftTarget = 1
)

const (
	// RowCount is the number of rows held by the line buffer.
	RowCount = 4
	// Columns is the number of visible characters per row.
	Columns = 16
	// RowCapacity is the storage per row: the visible characters plus a terminator.
	RowCapacity = Columns + 1

	character = gpio.High
	command   = gpio.Low
)

// rowAddress holds the DDRAM start address of every row. Rows 0 and 2 share
// the first physical DDRAM line, rows 1 and 3 the second.
var rowAddress = [RowCount]byte{0x00, 0x40, Columns, 0x40 + Columns}

// RowAddress returns the DDRAM start address of the row, or false when the row
// does not exist.
func RowAddress(row int) (byte, bool) {
	if row < 0 || row >= RowCount {
		return 0, false
	}
	return rowAddress[row], true
}

// Datasheet floors. Waiting longer is always safe.
const (
	MinEnablePulse = 1 * time.Microsecond
	MinSettle      = 50 * time.Microsecond
	MinPowerOn     = 50 * time.Millisecond
	MinClearHome   = 2 * time.Millisecond
)

// Timing holds the delays the driver waits for. None of them may be shorter
// than the matching Min* constant.
type Timing struct {
	EnablePulse time.Duration
	Settle      time.Duration
	PowerOn     time.Duration
	ClearHome   time.Duration
}

// DefaultTiming is the datasheet minimum for every delay.
func DefaultTiming() Timing {
	return Timing{
		EnablePulse: MinEnablePulse,
		Settle:      MinSettle,
		PowerOn:     MinPowerOn,
		ClearHome:   MinClearHome,
	}
}
