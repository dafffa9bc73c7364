package cpu

import (
	"iter"
	"slices"
)

const (
	REGISTER_COUNT = 16 // Default number of registers.
)

// RegisterBank is a fixed size set of registers.
// Values are stored exactly as written.
type RegisterBank struct {
	regs []Cell
}

// NewRegisterBank creates a zeroed register bank.
func NewRegisterBank(count int) (rb *RegisterBank) {
	rb = &RegisterBank{
		regs: make([]Cell, count),
	}

	rb.Reset()

	return
}

// Reset sets all registers to zero.
func (rb *RegisterBank) Reset() {
	for n := range rb.regs {
		rb.regs[n] = CELL_ZERO
	}
}

// Size returns the number of registers.
func (rb *RegisterBank) Size() int {
	return len(rb.regs)
}

// Get returns register r, or CELL_ZERO and ErrRegisterRange.
func (rb *RegisterBank) Get(r int) (value Cell, err error) {
	if r < 0 || r >= len(rb.regs) {
		value = CELL_ZERO
		err = ErrRegisterRange
		return
	}

	value = rb.regs[r]
	return
}

// Set writes register r verbatim.
func (rb *RegisterBank) Set(r int, value Cell) (err error) {
	if r < 0 || r >= len(rb.regs) {
		err = ErrRegisterRange
		return
	}

	rb.regs[r] = value
	return
}

// Dump returns the registers keyed by index.
func (rb *RegisterBank) Dump() iter.Seq2[int, Cell] {
	return slices.All(rb.regs)
}
