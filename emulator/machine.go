// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator drives a Vole CPU over its memory, one program at a time.
package emulator

import (
	"context"

	"go.uber.org/zap"

	"github.com/ezrec/vole/cpu"
	"github.com/ezrec/vole/display"
)

// Machine state. CPU + memory + the loaded program bound.
type Machine struct {
	Cpu         *cpu.Cpu    // Reference to the CPU simulation.
	Memory      *cpu.Memory // Main memory.
	Display     cpu.Display // Where status and output are shown.
	ProgramSize int         // Byte length of the loaded program.

	memorySize    int
	registerCount int
	logger        *zap.Logger
}

type MachineOpt func(*Machine) *Machine

// LoggerOpt sets the logger for the machine and its CPU.
func LoggerOpt(l *zap.Logger) MachineOpt {
	return func(m *Machine) *Machine {
		m.logger = l
		return m
	}
}

// DisplayOpt sets the display sink.
func DisplayOpt(d cpu.Display) MachineOpt {
	return func(m *Machine) *Machine {
		m.Display = d
		return m
	}
}

// MemoryOpt sets the number of memory cells.
func MemoryOpt(size int) MachineOpt {
	return func(m *Machine) *Machine {
		m.memorySize = size
		return m
	}
}

// RegisterOpt sets the number of registers.
func RegisterOpt(count int) MachineOpt {
	return func(m *Machine) *Machine {
		m.registerCount = count
		return m
	}
}

// NewMachine creates a new machine with cleared memory and registers.
func NewMachine(opts ...MachineOpt) (m *Machine) {
	m = &Machine{
		Display:       display.Discard{},
		memorySize:    cpu.MEMORY_SIZE,
		registerCount: cpu.REGISTER_COUNT,
		logger:        zap.L(),
	}

	for _, opt := range opts {
		m = opt(m)
	}

	m.Cpu = cpu.NewCpu(m.registerCount, cpu.LoggerOpt(m.logger))
	m.Memory = cpu.NewMemory(m.memorySize)
	m.logger = m.logger.Named("machine")

	return
}

// Reset clears memory, the CPU, and the loaded program.
func (m *Machine) Reset() {
	m.Cpu.Reset()
	m.Memory.Reset()
	m.ProgramSize = 0
}

// Load writes program tokens into memory from address zero.
// Each token must be four hex digits; the first bad token stops the load,
// leaving earlier tokens in memory and no program loaded.
func (m *Machine) Load(tokens []string) (err error) {
	m.ProgramSize = 0

	for n, token := range tokens {
		if len(token) != 4 {
			err = &ErrLoad{Index: n, Token: token, Err: cpu.ErrTokenSize}
			m.logger.Warn("load", zap.Error(err))
			return
		}
		addr := n * 2
		for i, cell := range []cpu.Cell{cpu.Cell(token[:2]), cpu.Cell(token[2:])} {
			err = m.Memory.Set(addr+i, cell)
			if err != nil {
				err = &ErrLoad{Index: n, Token: token, Err: err}
				m.logger.Warn("load", zap.Error(err))
				return
			}
		}
	}

	m.ProgramSize = len(tokens) * 2

	m.logger.Debug("load", zap.Int("size", m.ProgramSize))

	return
}

// Tick performs a single fetch and execute of the CPU.
// done is set once the program has halted, faulted, or run off its end.
func (m *Machine) Tick() (done bool, err error) {
	if m.Cpu.Pc >= m.ProgramSize {
		done = true
		return
	}

	pc := m.Cpu.Pc
	defer func() {
		if err != nil {
			err = &ErrRuntime{Pc: pc, Err: err}
			m.logger.Warn("fault", zap.Error(err))
		}
	}()

	m.Cpu.Fetch(m.Memory)
	done, err = m.Cpu.Execute(m.Memory, m.Display)
	if done {
		return
	}

	m.Cpu.IncrementPC()

	return
}

// Run executes the program to completion, then shows the CPU status.
func (m *Machine) Run() (err error) {
	return m.RunContext(context.Background())
}

// RunContext is Run, stopping early with the context's error once ctx is
// done. The CPU status is shown either way.
func (m *Machine) RunContext(ctx context.Context) (err error) {
	for done := false; !done; {
		err = ctx.Err()
		if err != nil {
			m.logger.Warn("run stopped", zap.Int("pc", m.Cpu.Pc), zap.Error(err))
			break
		}
		done, err = m.Tick()
	}

	m.Cpu.Status(m.Display)

	return
}

// Step executes a single instruction and shows the CPU status.
// Call again until done is set.
func (m *Machine) Step() (done bool, err error) {
	if m.Cpu.Pc >= m.ProgramSize {
		done = true
		return
	}

	done, err = m.Tick()
	m.Cpu.Status(m.Display)

	if !done && m.Cpu.Pc >= m.ProgramSize {
		done = true
	}

	return
}

// Status shows the CPU status and all of memory.
func (m *Machine) Status() {
	m.Cpu.Status(m.Display)
	m.ShowMemory()
}

// ShowMemory shows all of memory, without the CPU status.
func (m *Machine) ShowMemory() {
	m.Display.Memory(m.Memory.Dump())
}
