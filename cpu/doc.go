// Package cpu implements the processor, memory and assembler for the Vole
// machine.
//
// The machine has a byte-addressable memory of 256 cells, sixteen registers,
// a program counter and an instruction register. Instructions are sixteen
// bits wide, stored high byte first, and split into a 4-bit opcode and three
// 4-bit operand fields R, X and Y. Cells are kept as hexadecimal text so the
// floating point add can leave its decimal result in a register.
//
// The assembler provides a small assembly language for the Vole instruction
// set, supporting labels, equates, and compile-time expression evaluation.
package cpu
