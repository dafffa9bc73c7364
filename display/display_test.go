package display

import (
	"bytes"
	"encoding/json"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/vole/cpu"
)

func TestText(t *testing.T) {
	assert := assert.New(t)

	out := &bytes.Buffer{}
	text := &Text{Output: out}

	text.Message("Program Halted")
	text.Registers(slices.All([]cpu.Cell{"05", "03", "08"}))

	mem := cpu.NewMemory(32)
	assert.NoError(mem.Set(0, "20"))
	assert.NoError(mem.Set(17, "C0"))
	text.Memory(mem.Dump())
	text.Screen("hello")

	assert.Equal("Program Halted\n"+
		"Registers:\n"+
		"R0: 05\n"+
		"R1: 03\n"+
		"R2: 08\n"+
		"Memory Contents:\n"+
		"0: 20 00 00 00 00 00 00 00 00 00 00 00 00 00 00 00\n"+
		"1: 00 C0 00 00 00 00 00 00 00 00 00 00 00 00 00 00\n"+
		"hello\n", out.String())
}

func TestTextRegisterIndex(t *testing.T) {
	assert := assert.New(t)

	out := &bytes.Buffer{}
	text := &Text{Output: out}

	rb := cpu.NewRegisterBank(cpu.REGISTER_COUNT)
	assert.NoError(rb.Set(15, "FF"))
	text.Registers(rb.Dump())

	assert.Contains(out.String(), "RA: 00\n")
	assert.Contains(out.String(), "RF: FF\n")
}

func TestRecord(t *testing.T) {
	assert := assert.New(t)

	rec := &Record{}
	rec.Message("one")
	rec.Message("two")
	rec.Registers(slices.All([]cpu.Cell{"01", "02"}))
	rec.Registers(slices.All([]cpu.Cell{"0A"}))
	rec.Memory(cpu.NewMemory(20).Dump())
	rec.Screen("out")

	assert.Equal([]string{"one", "two"}, rec.Log)
	assert.Equal([]string{"0A"}, rec.Regs)
	assert.Len(rec.Cells, 2)
	assert.Len(rec.Cells[1], 4)
	assert.Equal([]string{"out"}, rec.Output)

	snap := rec.Snapshot()
	rec.Cells[0][0] = "FF"
	rec.Message("three")
	assert.Equal("00", snap.Cells[0][0])
	assert.Len(snap.Log, 2)

	rec.Reset()
	assert.Empty(rec.Log)
	assert.Empty(rec.Regs)
	assert.Empty(rec.Cells)
	assert.Empty(rec.Output)
}

func TestRecordJSON(t *testing.T) {
	assert := assert.New(t)

	rec := &Record{}
	rec.Message("Program Halted")
	rec.Registers(slices.All([]cpu.Cell{"05"}))

	data, err := json.Marshal(rec)
	assert.NoError(err)
	assert.JSONEq(`{"messages":["Program Halted"],"registers":["05"]}`, string(data))
}

func TestDiscard(t *testing.T) {
	var d cpu.Display = Discard{}

	d.Message("x")
	d.Registers(cpu.NewRegisterBank(2).Dump())
	d.Memory(cpu.NewMemory(2).Dump())
	d.Screen("y")
}
