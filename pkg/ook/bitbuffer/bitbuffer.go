// Package bitbuffer accumulates demodulated bits into rows.  Each row
// holds one frame's worth of bits; repeated frames within a single
// transmission land in separate rows.
package bitbuffer

import (
	"fmt"
	"strings"
)

// BitBuffer is a growable sequence of bit rows.  The zero value is
// ready to use and holds a single empty row.
type BitBuffer struct {
	rows [][]byte
}

func New() *BitBuffer {
	return &BitBuffer{}
}

// AddBit appends a single bit (0 or 1) to the current row.
func (b *BitBuffer) AddBit(bit byte) {
	if len(b.rows) == 0 {
		b.rows = append(b.rows, nil)
	}
	b.rows[len(b.rows)-1] = append(b.rows[len(b.rows)-1], bit&1)
}

// AddRow starts a new empty row; subsequent AddBit calls fill it.
func (b *BitBuffer) AddRow() {
	if len(b.rows) == 0 {
		b.rows = append(b.rows, nil)
	}
	b.rows = append(b.rows, nil)
}

// Clear discards all accumulated rows.
func (b *BitBuffer) Clear() {
	b.rows = b.rows[:0]
}

// NumRows returns the number of rows, counting the implicit first row
// even before any bit has been added.
func (b *BitBuffer) NumRows() int {
	if len(b.rows) == 0 {
		return 1
	}
	return len(b.rows)
}

// RowLen returns the number of bits in row n, or 0 for rows that do
// not exist.  RowLen(0) > 0 is the test for "a frame has been
// accumulated".
func (b *BitBuffer) RowLen(n int) int {
	if n < 0 || n >= len(b.rows) {
		return 0
	}
	return len(b.rows[n])
}

// Row returns the bits of row n.  The returned slice is owned by the
// buffer and valid only until the next mutation.
func (b *BitBuffer) Row(n int) []byte {
	if n < 0 || n >= len(b.rows) {
		return nil
	}
	return b.rows[n]
}

// RowBytes packs row n MSB-first into bytes, zero-padding the tail.
func (b *BitBuffer) RowBytes(n int) []byte {
	row := b.Row(n)
	if len(row) == 0 {
		return nil
	}
	out := make([]byte, (len(row)+7)/8)
	for i, bit := range row {
		if bit != 0 {
			out[i/8] |= 0x80 >> (uint(i) % 8)
		}
	}
	return out
}

// String renders the buffer for diagnostic dumps: one line per row
// with bit count and hex payload.
func (b *BitBuffer) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d rows\n", b.NumRows())
	for n := 0; n < b.NumRows(); n++ {
		fmt.Fprintf(&sb, "[%02d] {%2d} %02x\n", n, b.RowLen(n), b.RowBytes(n))
	}
	return sb.String()
}
