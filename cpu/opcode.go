package cpu

import (
	"fmt"
)

// Opcode is the top nibble of an instruction.
type Opcode int

//go:generate go tool stringer -linecomment -type=Opcode
const (
	OP_LOAD      = Opcode(0x1) // load
	OP_LOAD_IMM  = Opcode(0x2) // loadi
	OP_STORE     = Opcode(0x3) // store
	OP_MOVE      = Opcode(0x4) // move
	OP_ADD       = Opcode(0x5) // add
	OP_ADD_FLOAT = Opcode(0x6) // addf
	OP_JUMPEQ    = Opcode(0xb) // jumpeq
	OP_HALT      = Opcode(0xc) // halt
)

// Instruction is a single 16-bit instruction word.
type Instruction uint16

// MakeInstruction packs an opcode and its three operand nibbles.
func MakeInstruction(op Opcode, r, x, y int) Instruction {
	return Instruction((uint16(op)&0xf)<<12 | (uint16(r)&0xf)<<8 | (uint16(x)&0xf)<<4 | (uint16(y) & 0xf))
}

// MakeInstructionXY packs an opcode, register and byte operand.
func MakeInstructionXY(op Opcode, r int, xy byte) Instruction {
	return MakeInstruction(op, r, int(xy>>4), int(xy&0xf))
}

// Opcode returns bits 15-12.
func (in Instruction) Opcode() Opcode {
	return Opcode((in >> 12) & 0xf)
}

// R returns bits 11-8.
func (in Instruction) R() int {
	return int((in >> 8) & 0xf)
}

// X returns bits 7-4.
func (in Instruction) X() int {
	return int((in >> 4) & 0xf)
}

// Y returns bits 3-0.
func (in Instruction) Y() int {
	return int(in & 0xf)
}

// XY returns the low byte.
func (in Instruction) XY() byte {
	return byte(in & 0xff)
}

// Token returns the instruction as four hex digits.
func (in Instruction) Token() string {
	return fmt.Sprintf("%04X", uint16(in))
}

// String returns the assembly language representation of this instruction.
func (in Instruction) String() (out string) {
	op := in.Opcode()

	switch op {
	case OP_LOAD, OP_LOAD_IMM, OP_STORE, OP_JUMPEQ:
		out = fmt.Sprintf("%v r%d 0x%02X", op, in.R(), in.XY())
	case OP_MOVE:
		out = fmt.Sprintf("%v r%d r%d", op, in.X(), in.Y())
	case OP_ADD, OP_ADD_FLOAT:
		out = fmt.Sprintf("%v r%d r%d r%d", op, in.R(), in.X(), in.Y())
	case OP_HALT:
		out = op.String()
	default:
		out = fmt.Sprintf(".word 0x%04X", uint16(in))
	}

	return
}
