package cpu

import (
	"errors"

	"github.com/ezrec/vole/translate"
)

var f = translate.From

var (
	// Storage errors
	ErrAddressRange  = errors.New(f("memory address out of bounds"))
	ErrRegisterRange = errors.New(f("register out of bounds"))

	// Instruction decode errors
	ErrDecode    = errors.New(f("decode"))
	ErrTokenSize = errors.New(f("token is not 4 characters"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrOpcodeInvalid      = errors.New(f("opcode invalid"))
	ErrRegisterInvalid    = errors.New(f("register invalid"))
	ErrValueRange         = errors.New(f("value out of range"))
)

// ErrInstruction is an instruction register that is not a hexadecimal word.
type ErrInstruction string

func (ei ErrInstruction) Error() string {
	return f("instruction '%v' is not hexadecimal", string(ei))
}

func (ei ErrInstruction) Is(err error) bool {
	return err == ErrDecode
}

// ErrOpcode names the instruction a fault was raised by. The fault itself
// is joined alongside it.
type ErrOpcode Instruction

func (eo ErrOpcode) Error() string {
	return f("instruction 0x%04X '%v'", uint16(eo), Instruction(eo))
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return ok || err == ErrDecode
}

// ErrCellValue is a register cell that cannot be read as a number.
type ErrCellValue Cell

func (ec ErrCellValue) Error() string {
	return f("cell '%v' is not a number", string(ec))
}

func (ec ErrCellValue) Is(err error) bool {
	return err == ErrDecode
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
