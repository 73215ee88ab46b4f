package lcd

import (
	"bytes"
)

// SetLine stores text for a row. Indexes outside [0, RowCount) are ignored.
// At most RowCapacity-1 bytes are kept, copying stops at the first NUL, and
// the stored row is always terminated.
func (l *LCD) SetLine(index int, text string) {
	if index < 0 || index >= RowCount {
		return
	}
	row := &l.rows[index]
	n := 0
	for n < RowCapacity-1 && n < len(text) && text[n] != 0 {
		row[n] = text[n]
		n++
	}
	row[n] = 0
}

// Line returns the stored text of a row, or "" for an invalid index.
func (l *LCD) Line(index int) string {
	if index < 0 || index >= RowCount {
		return ""
	}
	return string(l.stored(index))
}

func (l *LCD) stored(index int) []byte {
	row := l.rows[index][:]
	if i := bytes.IndexByte(row, 0); i >= 0 {
		return row[:i]
	}
	return row
}

// DisplayLine moves to the start of the row and sends its stored characters.
// Indexes outside [0, RowCount) are ignored. Cells past the stored text keep
// whatever they showed before.
func (l *LCD) DisplayLine(index int) {
	start, ok := RowAddress(index)
	if !ok {
		return
	}
	l.SetDDRAMAddress(start)
	for _, c := range l.stored(index) {
		_ = l.WriteByte(c)
	}
}
