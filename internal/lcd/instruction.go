package lcd

// Instruction register opcodes. The opcode is the highest set bit, the
// parameters occupy the bits below it.
const (
	opClear    byte = 0x01
	opHome     byte = 0x02
	opEntry    byte = 0x04
	opControl  byte = 0x08
	opShift    byte = 0x10
	opFunction byte = 0x20
	opCGRAM    byte = 0x40
	opDDRAM    byte = 0x80
)

func bit(b bool) byte {
	if b {
		return 1
	}
	return 0
}

// ClearDisplay blanks DDRAM and returns the address counter to 0.
func ClearDisplay() byte {
	return opClear
}

// ReturnHome moves the cursor to address 0 and undoes any display shift.
func ReturnHome() byte {
	return opHome
}

// EntryModeSet encodes 0000 01 ID S.
func EntryModeSet(dir EntryDirection, shift bool) byte {
	return opEntry | (byte(dir)&1)<<1 | bit(shift)
}

// DisplayControl encodes 0000 1 D C B.
func DisplayControl(on, cursor, blink bool) byte {
	return opControl | bit(on)<<2 | bit(cursor)<<1 | bit(blink)
}

// CursorShift encodes 0001 SC RL --.
func CursorShift(target ShiftTarget, dir EntryDirection) byte {
	return opShift | (byte(target)&1)<<3 | (byte(dir)&1)<<2
}

// FunctionSet encodes 001 DL N F --. Only a two-line display sets N.
func FunctionSet(width BusWidth, lines int, font Font) byte {
	return opFunction | bit(width == Full)<<4 | bit(lines == 2)<<3 | (byte(font)&1)<<2
}

// SetCGRAMAddress encodes 01 AAAAAA.
func SetCGRAMAddress(addr byte) byte {
	return opCGRAM | addr&0x3f
}

// SetDDRAMAddress encodes 1 AAAAAAA.
func SetDDRAMAddress(addr byte) byte {
	return opDDRAM | addr&0x7f
}
