package macro

import (
	"github.com/ezrec/sicxe/translate"
)

var f = translate.From

// ErrParameterCount is a macro call whose argument count does not match the
// macro's parameter count.
type ErrParameterCount struct {
	Macro    string
	Expected int
	Received int
}

func (err ErrParameterCount) Error() string {
	return f("macro %v expects %d parameters, received %d", err.Macro, err.Expected, err.Received)
}

// ErrMacroDepth is a macro expansion nested deeper than the processor allows.
type ErrMacroDepth struct {
	Macro string
	Depth int
}

func (err ErrMacroDepth) Error() string {
	return f("macro %v expansion exceeds depth %d", err.Macro, err.Depth)
}

// ErrMacroOpen is a macro definition with no closing MEND.
type ErrMacroOpen struct {
	Macro  string
	LineNo int
}

func (err ErrMacroOpen) Error() string {
	return f("macro %v defined at line %d has no MEND", err.Macro, err.LineNo)
}

// ErrMacro locates an error in the expansion of a macro call.
type ErrMacro struct {
	Macro  string
	LineNo int
	Err    error
}

func (err ErrMacro) Error() string {
	return f("line %d: macro %v: %v", err.LineNo, err.Macro, err.Err)
}

func (err ErrMacro) Unwrap() error {
	return err.Err
}
