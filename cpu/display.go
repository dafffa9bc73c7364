package cpu

import (
	"iter"
)

// Display renders machine state and program output for a person.
type Display interface {
	// Message shows a single status line.
	Message(text string)
	// Registers shows the register bank, keyed by register number.
	Registers(regs iter.Seq2[int, Cell])
	// Memory shows memory as rows of cells, keyed by row index.
	Memory(rows iter.Seq2[int, []Cell])
	// Screen shows program output.
	Screen(text string)
}
