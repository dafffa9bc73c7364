// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"errors"
	"strconv"

	"go.uber.org/zap"
)

// Cpu is the simulation context for the Vole processor.
type Cpu struct {
	Pc       int           // Program counter, a byte address.
	Ir       string        // Instruction register, as fetched.
	Register *RegisterBank // Register bank.

	logger *zap.Logger
}

type CpuOpt func(*Cpu) *Cpu

// LoggerOpt sets the logger used for faults and tracing.
func LoggerOpt(l *zap.Logger) CpuOpt {
	return func(cpu *Cpu) *Cpu {
		cpu.logger = l
		return cpu
	}
}

// NewCpu creates a new CPU with count registers.
func NewCpu(count int, opts ...CpuOpt) (cpu *Cpu) {
	cpu = &Cpu{
		Register: NewRegisterBank(count),
		logger:   zap.L(),
	}

	for _, opt := range opts {
		cpu = opt(cpu)
	}

	cpu.logger = cpu.logger.Named("cpu")

	return
}

// Reset clears the program counter, instruction register and registers.
func (cpu *Cpu) Reset() {
	cpu.Pc = 0
	cpu.Ir = ""
	cpu.Register.Reset()
}

// IncrementPC advances to the next instruction.
func (cpu *Cpu) IncrementPC() {
	cpu.Pc += 2
}

// Fetch loads the two cells at the program counter into the instruction
// register. The program counter is unchanged.
func (cpu *Cpu) Fetch(memory *Memory) {
	hi := cpu.readMemory(memory, cpu.Pc)
	lo := cpu.readMemory(memory, cpu.Pc+1)

	cpu.Ir = string(hi) + string(lo)
}

// Execute decodes and executes the instruction register.
// done is set when the program halts or faults; a fault also sets err.
func (cpu *Cpu) Execute(memory *Memory, display Display) (done bool, err error) {
	word, perr := strconv.ParseUint(cpu.Ir, 16, 16)
	if perr != nil {
		done = true
		err = ErrInstruction(cpu.Ir)
		return
	}

	in := Instruction(word)

	defer func() {
		if err != nil {
			done = true
			err = errors.Join(ErrOpcode(in), err)
		}
	}()

	cpu.logger.Debug("execute",
		zap.Int("pc", cpu.Pc),
		zap.Stringer("instruction", in))

	switch in.Opcode() {
	case OP_LOAD:
		cpu.writeRegister(in.R(), cpu.readMemory(memory, int(in.XY())))
	case OP_LOAD_IMM:
		cpu.writeRegister(in.R(), CellOf(in.XY()))
	case OP_STORE:
		cpu.writeMemory(memory, int(in.XY()), cpu.readRegister(in.R()))
	case OP_MOVE:
		cpu.writeRegister(in.Y(), cpu.readRegister(in.X()))
	case OP_ADD:
		var a, b byte
		a, err = cpu.readRegister(in.X()).Byte()
		if err != nil {
			return
		}
		b, err = cpu.readRegister(in.Y()).Byte()
		if err != nil {
			return
		}
		cpu.writeRegister(in.R(), CellOf(maskSum(a, b)))
	case OP_ADD_FLOAT:
		var a, b float32
		a, err = cpu.readRegister(in.X()).Float()
		if err != nil {
			return
		}
		b, err = cpu.readRegister(in.Y()).Float()
		if err != nil {
			return
		}
		cpu.writeRegister(in.R(), Cell(strconv.FormatFloat(float64(a+b), 'f', 6, 32)))
	case OP_JUMPEQ:
		if cpu.readRegister(in.R()) == cpu.readRegister(0) {
			cpu.Pc = int(in.XY())
		}
	case OP_HALT:
		display.Message(f("Program Halted"))
		cpu.IncrementPC()
		done = true
	default:
		err = ErrOpcodeInvalid
		return
	}

	return
}

// maskSum adds two bytes, keeping only the low nibble of sums above 0x0F.
func maskSum(a, b byte) byte {
	sum := uint(a) + uint(b)
	if sum > 0x0f {
		sum &= 0x0f
	}
	return byte(sum)
}

// Status shows the address of the last executed instruction, the
// instruction register, and the registers. Before the first fetch the
// address and instruction show as dashes.
func (cpu *Cpu) Status(display Display) {
	if len(cpu.Ir) == 0 {
		display.Message(f("PC: --  IR: ----"))
	} else {
		display.Message(f("PC: %02X  IR: %v", cpu.Pc-2, cpu.Ir))
	}
	display.Registers(cpu.Register.Dump())
}

func (cpu *Cpu) readMemory(memory *Memory, addr int) Cell {
	value, err := memory.Get(addr)
	if err != nil {
		cpu.logger.Warn("memory read", zap.Int("addr", addr), zap.Error(err))
	}
	return value
}

func (cpu *Cpu) writeMemory(memory *Memory, addr int, value Cell) {
	err := memory.Set(addr, value)
	if err != nil {
		cpu.logger.Warn("memory write", zap.Int("addr", addr), zap.Error(err))
	}
}

func (cpu *Cpu) readRegister(r int) Cell {
	value, err := cpu.Register.Get(r)
	if err != nil {
		cpu.logger.Warn("register read", zap.Int("register", r), zap.Error(err))
	}
	return value
}

func (cpu *Cpu) writeRegister(r int, value Cell) {
	err := cpu.Register.Set(r, value)
	if err != nil {
		cpu.logger.Warn("register write", zap.Int("register", r), zap.Error(err))
	}
}
