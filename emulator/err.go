package emulator

import (
	"github.com/ezrec/vole/translate"
)

var f = translate.From

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Pc  int
	Err error
}

func (err *ErrRuntime) Error() string {
	return f("pc %02X %v", err.Pc, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}

// ErrLoad indicates the program token that stopped a load.
type ErrLoad struct {
	Index int
	Token string
	Err   error
}

func (err *ErrLoad) Error() string {
	return f("token %d '%v' %v", err.Index, err.Token, err.Err)
}

func (err *ErrLoad) Unwrap() error {
	return err.Err
}
