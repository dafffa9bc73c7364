package cpu

import (
	"iter"

	"github.com/ezrec/vole/internal"
)

const (
	MEMORY_SIZE = 256 // Default number of memory cells.
	ROW_SIZE    = 16  // Cells per row of a memory dump.
)

// Memory is a fixed size bank of cells.
type Memory struct {
	cells []Cell
}

// NewMemory creates a zeroed memory of size cells.
func NewMemory(size int) (mem *Memory) {
	mem = &Memory{
		cells: make([]Cell, size),
	}

	mem.Reset()

	return
}

// Reset sets all cells to zero.
func (mem *Memory) Reset() {
	for n := range mem.cells {
		mem.cells[n] = CELL_ZERO
	}
}

// Size returns the number of cells.
func (mem *Memory) Size() int {
	return len(mem.cells)
}

// Get returns the cell at addr.
// An address out of range returns CELL_ZERO and ErrAddressRange.
func (mem *Memory) Get(addr int) (value Cell, err error) {
	if addr < 0 || addr >= len(mem.cells) {
		value = CELL_ZERO
		err = ErrAddressRange
		return
	}

	value = mem.cells[addr]
	return
}

// Set writes the normalized value at addr.
// An address out of range writes nothing and returns ErrAddressRange.
func (mem *Memory) Set(addr int, value Cell) (err error) {
	if addr < 0 || addr >= len(mem.cells) {
		err = ErrAddressRange
		return
	}

	mem.cells[addr] = value.Normalize()
	return
}

// Dump returns the memory as rows of ROW_SIZE cells, keyed by row index.
func (mem *Memory) Dump() iter.Seq2[int, []Cell] {
	return internal.IterRows(mem.cells, ROW_SIZE)
}
