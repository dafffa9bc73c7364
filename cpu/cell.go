package cpu

import (
	"fmt"
	"strconv"
	"strings"
)

// Cell is the text held by a memory cell or register.
// Memory cells are always two upper case hex digits; a register may hold
// any text its last writer chose.
type Cell string

const CELL_ZERO = Cell("00") // Value of a cleared cell.

// CellOf formats a byte as a two digit hex cell.
func CellOf(value byte) Cell {
	return Cell(fmt.Sprintf("%02X", value))
}

// Normalize pads the cell to two digits and upper cases it.
func (cell Cell) Normalize() Cell {
	for len(cell) < 2 {
		cell = "0" + cell
	}
	return Cell(strings.ToUpper(string(cell)))
}

// Byte parses the cell as a hex byte.
func (cell Cell) Byte() (value byte, err error) {
	v, err := strconv.ParseUint(string(cell), 16, 8)
	if err != nil {
		err = ErrCellValue(cell)
		return
	}

	value = byte(v)
	return
}

// Float parses the cell as a decimal number.
func (cell Cell) Float() (value float32, err error) {
	v, err := strconv.ParseFloat(string(cell), 32)
	if err != nil {
		err = ErrCellValue(cell)
		return
	}

	value = float32(v)
	return
}
