package tape

import (
	"bufio"
	"io"
)

// Size is the length of the cell tape. The pointer starts in the middle so
// programs can move freely in either direction.
const Size = 65536

// Machine is the runtime a compiled program executes against: a flat tape of
// signed integer cells, a pointer register, a byte output sink and a byte
// input source.
type Machine struct {
	Cells []int
	Ptr   int

	In *Input

	// Out is where output instructions write, one byte per instruction.
	// If nil, output is discarded.
	Out io.Writer
}

// NewMachine builds a machine with the pointer parked mid-tape. literal is
// the pre-supplied input buffer (may be nil); src is the optional line source
// consulted once the buffer runs out.
func NewMachine(literal []byte, src io.Reader, out io.Writer) *Machine {
	return &Machine{
		Cells: make([]int, Size),
		Ptr:   Size / 2,
		In:    NewInput(literal, src),
		Out:   out,
	}
}

// Add adds delta to the cell at the given offset from the pointer.
func (m *Machine) Add(off, delta int) {
	m.Cells[m.Ptr+off] += delta
}

// Set stores v into the cell at the given offset from the pointer.
func (m *Machine) Set(off, v int) {
	m.Cells[m.Ptr+off] = v
}

// CondClear zeroes the cell at the given offset, but only when the current
// cell is nonzero. Used for clears that are valid only if the source loop
// would have run at least once.
func (m *Machine) CondClear(off int) {
	if m.Cells[m.Ptr] != 0 {
		m.Cells[m.Ptr+off] = 0
	}
}

// AddMul adds (or subtracts, when neg) the current cell scaled by mul/div to
// the cell at the given offset. When shift is nonzero the scale is a right
// shift instead.
func (m *Machine) AddMul(off int, neg bool, mul, div, shift int) {
	v := m.Cells[m.Ptr]
	if shift > 0 {
		v >>= uint(shift)
	} else {
		v = v * mul / div
	}
	if neg {
		m.Cells[m.Ptr+off] -= v
	} else {
		m.Cells[m.Ptr+off] += v
	}
}

// Move shifts the pointer by delta cells.
func (m *Machine) Move(delta int) {
	m.Ptr += delta
}

// ScanRight advances the pointer to the nearest zero cell at or right of the
// current position.
func (m *Machine) ScanRight() {
	for m.Cells[m.Ptr] != 0 {
		m.Ptr++
	}
}

// ScanLeft walks the pointer left to the nearest zero cell.
func (m *Machine) ScanLeft() {
	for m.Cells[m.Ptr] != 0 {
		m.Ptr--
	}
}

// Output writes the current cell to the output sink as a single byte.
func (m *Machine) Output() {
	if m.Out == nil {
		return
	}
	m.Out.Write([]byte{byte(m.Cells[m.Ptr])})
}

// Read stores the next input byte into the current cell.
func (m *Machine) Read() {
	m.Cells[m.Ptr] = m.In.Next()
}

// Input is the byte source of a running program: a pre-supplied buffer
// consumed in order, refilled one line at a time from an optional external
// source once exhausted.
type Input struct {
	buf []byte
	cur int
	src *bufio.Reader
}

// NewInput wraps a literal buffer and an optional line source.
func NewInput(literal []byte, src io.Reader) *Input {
	in := &Input{buf: literal}
	if src != nil {
		in.src = bufio.NewReader(src)
	}
	return in
}

// Next returns the next buffered byte. On exhaustion it reads one line from
// the external source, appends a zero sentinel and resets the cursor. With no
// source attached it yields the sentinel zero directly; blocking or
// terminating instead are equally valid choices, this one keeps the machine
// total.
func (in *Input) Next() int {
	if in.cur >= len(in.buf) {
		if in.src == nil {
			return 0
		}
		line, err := in.src.ReadBytes('\n')
		if len(line) == 0 && err != nil {
			return 0
		}
		in.buf = append(line, 0)
		in.cur = 0
	}
	b := in.buf[in.cur]
	in.cur++
	return int(b)
}

// Push appends a byte to the input buffer. Used by interactive front ends to
// feed keystrokes to a running program.
func (in *Input) Push(b byte) {
	in.buf = append(in.buf, b)
}
