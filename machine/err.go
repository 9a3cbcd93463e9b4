package machine

import (
	"github.com/ezrec/sicxe/translate"
)

var f = translate.From

// ErrLoadTooLarge is a program image that does not fit the load region.
type ErrLoadTooLarge int

func (err ErrLoadTooLarge) Error() string {
	return f("program of %d bytes exceeds the %d byte load region", int(err), MAX_PROGRAM)
}

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	PC     uint64 // Program counter of the failing instruction.
	LineNo int    // Source line, if a listing is loaded.
	Err    error
}

func (err *ErrRuntime) Error() string {
	if err.LineNo == 0 {
		return f("pc %06X %v", err.PC, err.Err)
	}
	return f("pc %06X line %d %v", err.PC, err.LineNo, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
