package display

import (
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/ezrec/vole/cpu"
	"github.com/ezrec/vole/translate"
)

var f = translate.From

// Text writes machine state to a console as plain text.
type Text struct {
	Output io.Writer
}

var _ cpu.Display = (*Text)(nil)

// Message writes the line as is.
func (t *Text) Message(text string) {
	fmt.Fprintln(t.Output, text)
}

// Registers writes one register per line, as `R3: 0F`.
func (t *Text) Registers(regs iter.Seq2[int, cpu.Cell]) {
	fmt.Fprintln(t.Output, f("Registers:"))
	for r, value := range regs {
		fmt.Fprintf(t.Output, "R%X: %v\n", r, value)
	}
}

// Memory writes one row per line, prefixed by the row index in hex.
func (t *Text) Memory(rows iter.Seq2[int, []cpu.Cell]) {
	fmt.Fprintln(t.Output, f("Memory Contents:"))
	for row, cells := range rows {
		strs := make([]string, len(cells))
		for n, cell := range cells {
			strs[n] = string(cell)
		}
		fmt.Fprintf(t.Output, "%X: %v\n", row, strings.Join(strs, " "))
	}
}

// Screen writes program output.
func (t *Text) Screen(text string) {
	fmt.Fprintln(t.Output, text)
}
