// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package asm

import (
	"github.com/ezrec/sicxe/cpu"
)

// Kind is the kind of operation table entry.
type Kind int

//go:generate go tool stringer -linecomment -type=Kind
const (
	KIND_START       = Kind(0) // START
	KIND_END         = Kind(1) // END
	KIND_BYTE        = Kind(2) // BYTE
	KIND_WORD        = Kind(3) // WORD
	KIND_RESW        = Kind(4) // RESW
	KIND_RESB        = Kind(5) // RESB
	KIND_INSTRUCTION = Kind(6) // instruction
)

// Operation is an entry of the operation table.
type Operation struct {
	Kind   Kind
	Opcode byte // Instruction opcode, high 6 bits significant.
	Format int  // Instruction size in bytes: 2, 3 or 4.
}

// Size returns the number of bytes an instruction occupies.
func (op Operation) Size() int {
	if op.Kind != KIND_INSTRUCTION {
		return 0
	}
	return op.Format
}

// registerOps are the format 2 mnemonics.
var registerOps = map[string]byte{
	"ADDR":   cpu.OP_ADDR,
	"CLEAR":  cpu.OP_CLEAR,
	"COMPR":  cpu.OP_COMPR,
	"DIVR":   cpu.OP_DIVR,
	"MULR":   cpu.OP_MULR,
	"RMO":    cpu.OP_RMO,
	"SHIFTL": cpu.OP_SHIFTL,
	"SHIFTR": cpu.OP_SHIFTR,
	"SUBR":   cpu.OP_SUBR,
	"TIXR":   cpu.OP_TIXR,
}

// memoryOps are the format 3 mnemonics, each with a '+' format 4 twin.
var memoryOps = map[string]byte{
	"ADD":  cpu.OP_ADD,
	"AND":  cpu.OP_AND,
	"COMP": cpu.OP_COMP,
	"DIV":  cpu.OP_DIV,
	"J":    cpu.OP_J,
	"JEQ":  cpu.OP_JEQ,
	"JGT":  cpu.OP_JGT,
	"JLT":  cpu.OP_JLT,
	"JSUB": cpu.OP_JSUB,
	"LDA":  cpu.OP_LDA,
	"LDB":  cpu.OP_LDB,
	"LDCH": cpu.OP_LDCH,
	"LDL":  cpu.OP_LDL,
	"LDS":  cpu.OP_LDS,
	"LDT":  cpu.OP_LDT,
	"LDX":  cpu.OP_LDX,
	"MUL":  cpu.OP_MUL,
	"OR":   cpu.OP_OR,
	"RSUB": cpu.OP_RSUB,
	"STA":  cpu.OP_STA,
	"STB":  cpu.OP_STB,
	"STCH": cpu.OP_STCH,
	"STL":  cpu.OP_STL,
	"STS":  cpu.OP_STS,
	"STT":  cpu.OP_STT,
	"STX":  cpu.OP_STX,
	"SUB":  cpu.OP_SUB,
	"TIX":  cpu.OP_TIX,
}

// opTable maps mnemonics to operations. Built once, never modified.
var opTable = func() map[string]Operation {
	table := map[string]Operation{
		"START": {Kind: KIND_START},
		"END":   {Kind: KIND_END},
		"BYTE":  {Kind: KIND_BYTE},
		"WORD":  {Kind: KIND_WORD},
		"RESW":  {Kind: KIND_RESW},
		"RESB":  {Kind: KIND_RESB},
	}

	for name, opcode := range registerOps {
		table[name] = Operation{Kind: KIND_INSTRUCTION, Opcode: opcode, Format: 2}
	}

	for name, opcode := range memoryOps {
		table[name] = Operation{Kind: KIND_INSTRUCTION, Opcode: opcode, Format: 3}
		table["+"+name] = Operation{Kind: KIND_INSTRUCTION, Opcode: opcode, Format: 4}
	}

	return table
}()

// Lookup returns the operation for a mnemonic. Mnemonics are case-sensitive.
func Lookup(mnemonic string) (op Operation, ok bool) {
	op, ok = opTable[mnemonic]
	return
}

// regTable maps register names to register file slots.
var regTable = map[string]int{
	"A":  cpu.REG_A,
	"X":  cpu.REG_X,
	"L":  cpu.REG_L,
	"B":  cpu.REG_B,
	"S":  cpu.REG_S,
	"T":  cpu.REG_T,
	"F":  cpu.REG_F,
	"PC": cpu.REG_PC,
	"SW": cpu.REG_SW,
}

// RegisterIndex returns the register file slot of a register name.
func RegisterIndex(name string) (index int, ok bool) {
	index, ok = regTable[name]
	return
}
