// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
)

// Format 3/4 opcodes. The low two bits are the addressing mode.
const (
	OP_LDA  = byte(0x00)
	OP_LDX  = byte(0x04)
	OP_LDL  = byte(0x08)
	OP_STA  = byte(0x0C)
	OP_STX  = byte(0x10)
	OP_STL  = byte(0x14)
	OP_ADD  = byte(0x18)
	OP_SUB  = byte(0x1C)
	OP_MUL  = byte(0x20)
	OP_DIV  = byte(0x24)
	OP_COMP = byte(0x28)
	OP_TIX  = byte(0x2C)
	OP_JEQ  = byte(0x30)
	OP_JGT  = byte(0x34)
	OP_JLT  = byte(0x38)
	OP_J    = byte(0x3C)
	OP_AND  = byte(0x40)
	OP_OR   = byte(0x44)
	OP_JSUB = byte(0x48)
	OP_RSUB = byte(0x4C)
	OP_LDCH = byte(0x50)
	OP_STCH = byte(0x54)
	OP_LDB  = byte(0x68)
	OP_LDS  = byte(0x6C)
	OP_LDT  = byte(0x74)
	OP_STB  = byte(0x78)
	OP_STS  = byte(0x7C)
	OP_STT  = byte(0x84)
)

// Format 2 (register-register) opcodes.
const (
	OP_ADDR   = byte(0x90)
	OP_SUBR   = byte(0x94)
	OP_MULR   = byte(0x98)
	OP_DIVR   = byte(0x9C)
	OP_COMPR  = byte(0xA0)
	OP_SHIFTL = byte(0xA4)
	OP_SHIFTR = byte(0xA8)
	OP_RMO    = byte(0xAC)
	OP_CLEAR  = byte(0xB4)
	OP_TIXR   = byte(0xB8)
)

// Flag nibble bits of a format 3/4 instruction.
const (
	FLAG_X = byte(8) // Indexed by X.
	FLAG_B = byte(4) // Base relative.
	FLAG_P = byte(2) // PC relative.
	FLAG_E = byte(1) // Extended (format 4).
)

// Mode is the addressing mode family of a format 3/4 instruction.
type Mode int

//go:generate go tool stringer -linecomment -type=Mode
const (
	MODE_LEGACY    = Mode(0) // sic
	MODE_IMMEDIATE = Mode(1) // immediate
	MODE_INDIRECT  = Mode(2) // indirect
	MODE_DIRECT    = Mode(3) // direct
)

var mnemonic = map[byte]string{
	OP_LDA: "LDA", OP_LDX: "LDX", OP_LDL: "LDL", OP_STA: "STA",
	OP_STX: "STX", OP_STL: "STL", OP_ADD: "ADD", OP_SUB: "SUB",
	OP_MUL: "MUL", OP_DIV: "DIV", OP_COMP: "COMP", OP_TIX: "TIX",
	OP_JEQ: "JEQ", OP_JGT: "JGT", OP_JLT: "JLT", OP_J: "J",
	OP_AND: "AND", OP_OR: "OR", OP_JSUB: "JSUB", OP_RSUB: "RSUB",
	OP_LDCH: "LDCH", OP_STCH: "STCH", OP_LDB: "LDB", OP_LDS: "LDS",
	OP_LDT: "LDT", OP_STB: "STB", OP_STS: "STS", OP_STT: "STT",

	OP_ADDR: "ADDR", OP_SUBR: "SUBR", OP_MULR: "MULR", OP_DIVR: "DIVR",
	OP_COMPR: "COMPR", OP_SHIFTL: "SHIFTL", OP_SHIFTR: "SHIFTR",
	OP_RMO: "RMO", OP_CLEAR: "CLEAR", OP_TIXR: "TIXR",
}

// Mnemonic returns the assembler name of an opcode, or "" if unknown.
func Mnemonic(opcode byte) string {
	return mnemonic[opcode]
}

// IsRegisterOpcode returns true if the opcode byte is a two byte register-register instruction.
func IsRegisterOpcode(opcode byte) bool {
	switch opcode {
	case OP_ADDR, OP_CLEAR, OP_COMPR, OP_DIVR, OP_MULR, OP_RMO,
		OP_SHIFTL, OP_SHIFTR, OP_SUBR, OP_TIXR:
		return true
	}
	return false
}

// offset describes how the flag nibble forms an operand.
type offset struct {
	width int  // Bits of the address/value field.
	pc    bool // Add PC.
	base  bool // Add B.
	index bool // Add X.
}

// flagOffset maps the flag nibble of immediate, indirect and direct
// instructions to its operand layout. Index forms are direct only.
var flagOffset = map[byte]offset{
	0:               {width: 12},
	FLAG_E:          {width: 20},
	FLAG_P:          {width: 12, pc: true},
	FLAG_B:          {width: 12, base: true},
	FLAG_X:          {width: 12, index: true},
	FLAG_X | FLAG_E: {width: 20, index: true},
	FLAG_X | FLAG_P: {width: 12, pc: true, index: true},
	FLAG_X | FLAG_B: {width: 12, base: true, index: true},
}

// Instruction is a decoded SIC/XE instruction.
type Instruction struct {
	Address uint64 // Address the instruction was fetched from.
	Opcode  byte   // Opcode with the addressing mode bits cleared.
	Format  int    // 2, 3 or 4. Legacy SIC instructions are format 3.
	Mode    Mode   // Addressing mode family (format 3/4 only).
	Flags   byte   // Flag nibble (format 3/4 only).
	R1      int    // First register field (format 2 only).
	R2      int    // Second register field (format 2 only).
	Target  uint64 // Effective address, or the literal of an immediate.
	Length  int    // Instruction length in bytes.
}

// Decode decodes the instruction at PC.
func Decode(regs *Registers, mem []byte) (ins Instruction, err error) {
	pc := regs[REG_PC]
	if pc >= uint64(len(mem)) {
		err = ErrInvalidProgramCounter
		return
	}

	ins.Address = pc
	br := newBitReader(mem[pc:])

	op, err := br.Read(8)
	if err != nil {
		return
	}

	if IsRegisterOpcode(byte(op)) {
		var r1, r2 uint32
		if r1, err = br.Read(4); err != nil {
			return
		}
		if r2, err = br.Read(4); err != nil {
			return
		}
		ins.Opcode = byte(op)
		ins.Format = 2
		ins.R1 = int(r1)
		ins.R2 = int(r2)
		ins.Length = br.Bytes()
		return
	}

	ins.Opcode = byte(op) & 0xFC
	ins.Mode = Mode(op & 0x3)
	ins.Format = 3

	if ins.Mode == MODE_LEGACY {
		var x, addr uint32
		if x, err = br.Read(1); err != nil {
			return
		}
		if addr, err = br.Read(15); err != nil {
			return
		}
		ins.Target = uint64(addr)
		if x != 0 {
			ins.Flags = FLAG_X
			ins.Target += regs[REG_X]
		}
		ins.Length = br.Bytes()
		return
	}

	flags, err := br.Read(4)
	if err != nil {
		return
	}
	ins.Flags = byte(flags)

	layout, ok := flagOffset[ins.Flags]
	if !ok || (layout.index && ins.Mode != MODE_DIRECT) {
		err = ErrInvalidAddressingMode
		return
	}

	field, err := br.Read(layout.width)
	if err != nil {
		return
	}

	ins.Target = uint64(field)
	if layout.pc {
		ins.Target += pc
	}
	if layout.base {
		ins.Target += regs[REG_B]
	}
	if layout.index {
		ins.Target += regs[REG_X]
	}
	if layout.width == 20 {
		ins.Format = 4
	}
	ins.Length = br.Bytes()

	return
}

// String returns the assembly language representation of the instruction.
func (ins Instruction) String() string {
	name := Mnemonic(ins.Opcode)
	if name == "" {
		name = fmt.Sprintf("?%02X", ins.Opcode)
	}

	switch ins.Format {
	case 2:
		switch ins.Opcode {
		case OP_CLEAR, OP_TIXR:
			return fmt.Sprintf("%v %v", name, RegisterName(ins.R1))
		case OP_SHIFTL, OP_SHIFTR:
			return fmt.Sprintf("%v %v,%d", name, RegisterName(ins.R1), ins.R2)
		}
		return fmt.Sprintf("%v %v,%v", name, RegisterName(ins.R1), RegisterName(ins.R2))
	case 4:
		name = "+" + name
	}

	sigil := ""
	switch ins.Mode {
	case MODE_IMMEDIATE:
		sigil = "#"
	case MODE_INDIRECT:
		sigil = "@"
	}

	return fmt.Sprintf("%v %v%X (%v)", name, sigil, ins.Target, ins.Mode)
}
