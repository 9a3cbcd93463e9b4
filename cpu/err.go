// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"errors"

	"github.com/ezrec/sicxe/translate"
)

var f = translate.From

var (
	// Execution errors
	ErrInvalidProgramCounter = errors.New(f("program counter invalid"))
	ErrInvalidAddress        = errors.New(f("address invalid"))
	ErrInvalidAddressingMode = errors.New(f("addressing mode invalid"))
	ErrUnknownRegister       = errors.New(f("register unknown"))
	ErrUnknownOpcode         = errors.New(f("opcode unknown"))
	ErrDivideByZero          = errors.New(f("division by zero"))
)

// ErrOpcode identifies the instruction that failed to execute.
type ErrOpcode Instruction

func (eo ErrOpcode) Error() string {
	return f("bad instruction at %06X: %v", eo.Address, Instruction(eo).String())
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

// ErrAddress reports a memory access outside of the memory image.
type ErrAddress uint64

func (ea ErrAddress) Error() string {
	return f("address %06X out of range", uint64(ea))
}

func (ea ErrAddress) Unwrap() error {
	return ErrInvalidAddress
}

// ErrRegister reports a register field that names no register.
type ErrRegister int

func (er ErrRegister) Error() string {
	return f("register %v unknown", int(er))
}

func (er ErrRegister) Unwrap() error {
	return ErrUnknownRegister
}
