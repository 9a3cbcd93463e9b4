// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package asm

import (
	"errors"

	"github.com/ezrec/sicxe/translate"
)

var f = translate.From

var (
	ErrProgramNameMissing = errors.New(f("program name missing"))
)

// ErrDuplicateSymbol is a label defined more than once.
type ErrDuplicateSymbol string

func (err ErrDuplicateSymbol) Error() string {
	return f("symbol %v defined multiple times", string(err))
}

// ErrUnknownOperation is a mnemonic missing from the operation table.
type ErrUnknownOperation string

func (err ErrUnknownOperation) Error() string {
	return f("operation %v unknown", string(err))
}

// ErrInvalidOperand is an operand that is neither a symbol nor a number.
type ErrInvalidOperand string

func (err ErrInvalidOperand) Error() string {
	return f("operand '%v' invalid", string(err))
}

// ErrInvalidRegister is a register operand that names no register.
type ErrInvalidRegister string

func (err ErrInvalidRegister) Error() string {
	return f("register '%v' invalid", string(err))
}

// ErrProgramNameTooLong is a program name that does not fit the header record.
type ErrProgramNameTooLong string

func (err ErrProgramNameTooLong) Error() string {
	return f("program name %v longer than 6 characters", string(err))
}

// ErrOperandTooLarge is an operand value that does not fit its field.
type ErrOperandTooLarge struct {
	Operand string
	Value   int64
	Bits    int
}

func (err ErrOperandTooLarge) Error() string {
	return f("operand '%v' (%#x) does not fit in %v bits", err.Operand, err.Value, err.Bits)
}

// ErrParseExpression is a $(...) operand that does not evaluate to an integer.
type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

// ErrSyntax locates an assembly error in the source.
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
