// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
	"go.uber.org/zap"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":         "0",
	"MEMORY_SIZE":    fmt.Sprintf("%d", MEMORY_SIZE),
	"REGISTER_COUNT": fmt.Sprintf("%d", REGISTER_COUNT),
}

// Assembler is a single pass assembler for the Vole instruction set.
type Assembler struct {
	Logger *zap.Logger // If set, logs each source line at debug level.
	Lines  []Line      // List of generated lines.

	predefine map[string]string // Predefines
	Label     map[string]int    // Map of jump labels to byte addresses.
	Equate    map[string]string // Map of equates.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// opcodeMap maps mnemonics to opcodes.
var opcodeMap = map[string]Opcode{
	OP_LOAD.String():      OP_LOAD,
	OP_LOAD_IMM.String():  OP_LOAD_IMM,
	OP_STORE.String():     OP_STORE,
	OP_MOVE.String():      OP_MOVE,
	OP_ADD.String():       OP_ADD,
	OP_ADD_FLOAT.String(): OP_ADD_FLOAT,
	OP_JUMPEQ.String():    OP_JUMPEQ,
	OP_HALT.String():      OP_HALT,
}

// valueOf returns the value of a simple word.
func (asm *Assembler) valueOf(word string) (value int64, err error) {
	value, err = strconv.ParseInt(word, 0, 32)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	return
}

// byteOf returns the value of a word that must fit in a byte.
// Negative values down to -128 are stored as two's complement.
func (asm *Assembler) byteOf(word string) (value byte, err error) {
	v64, err := asm.valueOf(word)
	if err != nil {
		return
	}

	if v64 < -0x80 || v64 > 0xff {
		err = ErrValueRange
		return
	}

	value = byte(v64)
	return
}

// registerOf returns the register number for rN.
func (asm *Assembler) registerOf(word string) (reg int, err error) {
	if len(word) < 2 || word[0] != 'r' {
		err = ErrRegisterInvalid
		return
	}

	reg, err = strconv.Atoi(word[1:])
	if err != nil || reg < 0 || reg >= REGISTER_COUNT {
		err = ErrRegisterInvalid
		return
	}

	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var v64 int64
		v64, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			err = nil
			continue
		}
		pred[key] = starlark.MakeInt64(v64)
	}
	for key, addr := range asm.Label {
		pred[key] = starlark.MakeInt(addr)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

// parseLine expands a single line into words, consuming equates and labels.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do $() evaluations
	re := regexp.MustCompile(`\$\([^\$]*\)`)
	line = re.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%d", value)
	})
	if err != nil {
		return
	}

	words = strings.Fields(line)

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for n, word := range words {
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	for len(words) > 0 && strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		asm.Label[label] = asm.currentAddr()
		words = words[1:]
	}

	return
}

// currentAddr gets the address of the next instruction.
func (asm *Assembler) currentAddr() int {
	if len(asm.Lines) == 0 {
		return 0
	}

	return asm.Lines[len(asm.Lines)-1].Addr + 2
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Label = make(map[string]int, 16)
	asm.Lines = asm.Lines[:0]
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Logger != nil {
			asm.Logger.Debug("assemble", zap.Int("line", lineno), zap.String("text", text))
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])

		var words []string
		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	// Final linking of jump labels.
	for n := range asm.Lines {
		ln := &asm.Lines[n]

		if len(ln.LinkLabel) == 0 {
			continue
		}
		addr, ok := asm.Label[ln.LinkLabel]
		if !ok {
			lineno = ln.LineNo
			line = strings.Join(ln.Words, " ")
			err = ErrLabelMissing(ln.LinkLabel)
			return
		}
		if addr > 0xff {
			lineno = ln.LineNo
			line = strings.Join(ln.Words, " ")
			err = ErrValueRange
			return
		}
		ln.Code |= Instruction(addr)
	}

	prog = &Program{
		Lines: slices.Clone(asm.Lines),
	}

	return
}

// isLabel returns true if the word can only be a jump label.
func isLabel(word string) bool {
	if len(word) == 0 {
		return false
	}
	c := word[0]
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	var code Instruction
	var label string

	// no-op
	if len(words) == 0 {
		return
	}

	initial_words := words

	defer func() {
		if err != nil {
			return
		}
		ln := Line{LineNo: lineno, Addr: asm.currentAddr(), Words: initial_words, Code: code, LinkLabel: label}
		asm.Lines = append(asm.Lines, ln)
	}()

	// Alternate syntax substitutions
	switch {
	case len(words) == 2 && words[0] == "jump":
		// jump TARGET => jumpeq r0 TARGET
		words = []string{"jumpeq", "r0", words[1]}
	case words[0] == ".word":
		if len(words) != 2 {
			err = ErrOpcodeValueMissing
			return
		}
		var v64 int64
		v64, err = asm.valueOf(words[1])
		if err != nil {
			return
		}
		if v64 < 0 || v64 > 0xffff {
			err = ErrValueRange
			return
		}
		code = Instruction(v64)
		return
	}

	op, ok := opcodeMap[words[0]]
	if !ok {
		err = ErrOpcodeInvalid
		return
	}

	args := words[1:]

	need := map[Opcode]int{
		OP_LOAD:      2,
		OP_LOAD_IMM:  2,
		OP_STORE:     2,
		OP_MOVE:      2,
		OP_ADD:       3,
		OP_ADD_FLOAT: 3,
		OP_JUMPEQ:    2,
		OP_HALT:      0,
	}[op]
	if len(args) < need {
		err = ErrOpcodeValueMissing
		return
	}
	if len(args) > need {
		err = ErrOpcodeExtraArgs
		return
	}

	regs := make([]int, 0, 3)

	switch op {
	case OP_LOAD, OP_LOAD_IMM, OP_STORE, OP_JUMPEQ:
		var r int
		r, err = asm.registerOf(args[0])
		if err != nil {
			return
		}
		if op == OP_JUMPEQ && isLabel(args[1]) {
			code = MakeInstructionXY(op, r, 0)
			label = args[1]
			return
		}
		var xy byte
		xy, err = asm.byteOf(args[1])
		if err != nil {
			return
		}
		code = MakeInstructionXY(op, r, xy)
	case OP_MOVE, OP_ADD, OP_ADD_FLOAT:
		for _, arg := range args {
			var r int
			r, err = asm.registerOf(arg)
			if err != nil {
				return
			}
			regs = append(regs, r)
		}
		if op == OP_MOVE {
			code = MakeInstruction(op, 0, regs[0], regs[1])
		} else {
			code = MakeInstruction(op, regs[0], regs[1], regs[2])
		}
	case OP_HALT:
		code = MakeInstruction(op, 0, 0, 0)
	}

	return
}
