package display

import (
	"iter"
	"slices"

	"github.com/ezrec/vole/cpu"
)

// Record keeps what was last shown, for reporting as JSON.
type Record struct {
	Log    []string   `json:"messages,omitempty"`  // Every message, in order.
	Regs   []string   `json:"registers,omitempty"` // Last register dump.
	Cells  [][]string `json:"memory,omitempty"`    // Last memory dump, by row.
	Output []string   `json:"screen,omitempty"`    // Program output.
}

var _ cpu.Display = (*Record)(nil)

// Reset forgets everything recorded.
func (rec *Record) Reset() {
	*rec = Record{}
}

// Snapshot returns a copy of the record.
func (rec *Record) Snapshot() (snap Record) {
	snap = Record{
		Log:    slices.Clone(rec.Log),
		Regs:   slices.Clone(rec.Regs),
		Output: slices.Clone(rec.Output),
	}
	for _, row := range rec.Cells {
		snap.Cells = append(snap.Cells, slices.Clone(row))
	}
	return
}

// Message appends to the message log.
func (rec *Record) Message(text string) {
	rec.Log = append(rec.Log, text)
}

// Registers replaces the recorded register bank.
func (rec *Record) Registers(regs iter.Seq2[int, cpu.Cell]) {
	rec.Regs = nil
	for _, value := range regs {
		rec.Regs = append(rec.Regs, string(value))
	}
}

// Memory replaces the recorded memory dump.
func (rec *Record) Memory(rows iter.Seq2[int, []cpu.Cell]) {
	rec.Cells = nil
	for _, cells := range rows {
		row := make([]string, len(cells))
		for n, cell := range cells {
			row[n] = string(cell)
		}
		rec.Cells = append(rec.Cells, row)
	}
}

// Screen appends to the program output.
func (rec *Record) Screen(text string) {
	rec.Output = append(rec.Output, text)
}
