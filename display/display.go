// Package display provides the sinks a Vole machine reports its state to.
package display

import (
	"iter"

	"github.com/ezrec/vole/cpu"
)

// Discard drops everything shown to it.
type Discard struct{}

var _ cpu.Display = Discard{}

func (Discard) Message(text string)                      {}
func (Discard) Registers(regs iter.Seq2[int, cpu.Cell]) {}
func (Discard) Memory(rows iter.Seq2[int, []cpu.Cell])  {}
func (Discard) Screen(text string)                       {}
