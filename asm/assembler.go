// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package asm

import (
	"encoding/hex"
	"log"
	"strconv"
	"strings"

	"github.com/ezrec/sicxe/cpu"
	"github.com/ezrec/sicxe/object"
)

// wordMax is the largest unsigned 24-bit word.
const wordMax = 1<<24 - 1

// Assembler is a two pass SIC/XE assembler.
type Assembler struct {
	Verbose bool // If set, verbosely logs the assembler actions.
}

// Assemble runs both passes over the source.
func (asm *Assembler) Assemble(text string) (prog *Program, err error) {
	symbols, err := asm.Pass1(text)
	if err != nil {
		return
	}

	prog, err = asm.Pass2(text, symbols)
	return
}

// Assemble runs both passes with the default assembler.
func Assemble(text string) (prog *Program, err error) {
	asm := &Assembler{}
	return asm.Assemble(text)
}

// Pass1 assigns an address to every label.
func (asm *Assembler) Pass1(text string) (symbols SymbolTable, err error) {
	src, err := parseSource(text)
	if err != nil {
		return
	}

	symbols = SymbolTable{}
	locctr := src.Start

	for _, st := range src.Body {
		if len(st.Label) != 0 {
			if _, dup := symbols[st.Label]; dup {
				err = ErrSyntax{LineNo: st.LineNo, Line: st.Source, Err: ErrDuplicateSymbol(st.Label)}
				return
			}
			if asm.Verbose {
				log.Printf("asm: %v = %06X", st.Label, locctr)
			}
			symbols[st.Label] = locctr
		}

		// Unknown mnemonics are reported by pass 2.
		if !st.Known {
			continue
		}
		if st.Op.Kind == KIND_END {
			break
		}

		var size int
		size, err = sizeOf(st, symbols)
		if err != nil {
			err = ErrSyntax{LineNo: st.LineNo, Line: st.Source, Err: err}
			return
		}
		locctr += size
	}

	return
}

// Pass2 generates the code of every statement.
func (asm *Assembler) Pass2(text string, symbols SymbolTable) (prog *Program, err error) {
	src, err := parseSource(text)
	if err != nil {
		return
	}

	if len(src.Name) == 0 {
		err = ErrProgramNameMissing
		return
	}
	if len(src.Name) > object.NAME_LIMIT {
		err = ErrSyntax{LineNo: src.Head.LineNo, Line: src.Head.Source, Err: ErrProgramNameTooLong(src.Name)}
		return
	}

	prog = &Program{
		Name:    src.Name,
		Start:   src.Start,
		Symbols: symbols,
	}

	locctr := src.Start
	for _, st := range src.Body {
		line := Line{LineNo: st.LineNo, Address: locctr, Source: st.Source}

		if len(st.Mnemonic) == 0 {
			prog.Lines = append(prog.Lines, line)
			continue
		}

		if !st.Known {
			err = ErrSyntax{LineNo: st.LineNo, Line: st.Source, Err: ErrUnknownOperation(st.Mnemonic)}
			prog = nil
			return
		}

		if st.Op.Kind == KIND_END {
			prog.Lines = append(prog.Lines, line)
			break
		}

		var size int
		size, err = sizeOf(st, symbols)
		if err == nil {
			line.Code, err = encode(st, symbols)
		}
		if err != nil {
			err = ErrSyntax{LineNo: st.LineNo, Line: st.Source, Err: err}
			prog = nil
			return
		}

		if asm.Verbose {
			log.Printf("asm: %06X %-12X %v", locctr, line.Code, strings.TrimSpace(st.Source))
		}

		prog.Lines = append(prog.Lines, line)
		locctr += size
	}

	prog.Length = locctr - src.Start

	return
}

// resolve returns the value of an operand: a symbol, a decimal literal or
// a $(...) expression.
func resolve(operand string, symbols SymbolTable) (value int64, err error) {
	if addr, ok := symbols[operand]; ok {
		value = int64(addr)
		return
	}

	if isExpr(operand) {
		return evalExpr(operand, symbols)
	}

	value, err = strconv.ParseInt(operand, 10, 64)
	if err != nil {
		err = ErrInvalidOperand(operand)
		return
	}

	return
}

// count resolves a reservation count.
func count(operand string, symbols SymbolTable) (n int, err error) {
	value, err := resolve(operand, symbols)
	if err != nil {
		return
	}
	if value < 0 || value > wordMax {
		err = ErrInvalidOperand(operand)
		return
	}
	n = int(value)
	return
}

// byteLiteral decodes a C'...' or X'...' constant. Odd length hex
// constants are padded with a leading zero.
func byteLiteral(operand string) (data []byte, err error) {
	if len(operand) < 3 || operand[1] != '\'' || operand[len(operand)-1] != '\'' {
		err = ErrInvalidOperand(operand)
		return
	}

	inner := operand[2 : len(operand)-1]
	switch operand[0] {
	case 'C':
		data = []byte(inner)
	case 'X':
		if len(inner)%2 != 0 {
			inner = "0" + inner
		}
		data, err = hex.DecodeString(inner)
		if err != nil {
			err = ErrInvalidOperand(operand)
		}
	default:
		err = ErrInvalidOperand(operand)
	}

	return
}

// sizeOf returns the bytes a statement occupies.
func sizeOf(st statement, symbols SymbolTable) (size int, err error) {
	switch st.Op.Kind {
	case KIND_BYTE:
		var data []byte
		data, err = byteLiteral(st.Operand)
		size = len(data)
	case KIND_WORD:
		size = 3
	case KIND_RESW:
		size, err = count(st.Operand, symbols)
		size *= 3
	case KIND_RESB:
		size, err = count(st.Operand, symbols)
	case KIND_INSTRUCTION:
		size = st.Op.Format
	}
	return
}

// encode generates the code of a statement.
func encode(st statement, symbols SymbolTable) (code []byte, err error) {
	switch st.Op.Kind {
	case KIND_BYTE:
		code, err = byteLiteral(st.Operand)
	case KIND_WORD:
		var value int64
		value, err = resolve(st.Operand, symbols)
		if err != nil {
			return
		}
		if value < -(1<<23) || value > wordMax {
			err = ErrOperandTooLarge{Operand: st.Operand, Value: value, Bits: 24}
			return
		}
		code = []byte{byte(value >> 16), byte(value >> 8), byte(value)}
	case KIND_INSTRUCTION:
		if st.Op.Format == 2 {
			code, err = encodeRegister(st)
		} else {
			code, err = encodeMemory(st, symbols)
		}
	}
	return
}

// register resolves a register operand by name or slot number.
func register(name string) (index int, err error) {
	index, ok := RegisterIndex(name)
	if ok {
		return
	}

	slot, perr := strconv.Atoi(name)
	if perr != nil || slot < 0 || slot >= cpu.REGISTER_COUNT {
		err = ErrInvalidRegister(name)
		return
	}

	index = slot
	return
}

// encodeRegister generates a format 2 instruction.
func encodeRegister(st statement) (code []byte, err error) {
	opcode := st.Op.Opcode

	var r1, r2 int
	switch opcode {
	case cpu.OP_CLEAR, cpu.OP_TIXR:
		r1, err = register(st.Operand)
	default:
		first, second, ok := strings.Cut(st.Operand, ",")
		if !ok {
			err = ErrInvalidOperand(st.Operand)
			return
		}
		first = strings.TrimSpace(first)
		second = strings.TrimSpace(second)
		if r1, err = register(first); err != nil {
			return
		}
		switch opcode {
		case cpu.OP_SHIFTL, cpu.OP_SHIFTR:
			r2, err = strconv.Atoi(second)
			if err != nil || r2 < 0 || r2 > 15 {
				err = ErrInvalidOperand(second)
			}
		default:
			r2, err = register(second)
		}
	}
	if err != nil {
		return
	}

	code = []byte{opcode, byte(r1<<4 | r2)}
	return
}

// encodeMemory generates a format 3 or 4 instruction.
func encodeMemory(st statement, symbols SymbolTable) (code []byte, err error) {
	operand := st.Operand

	mode := cpu.MODE_DIRECT
	switch {
	case strings.HasPrefix(operand, "#"):
		mode = cpu.MODE_IMMEDIATE
		operand = operand[1:]
	case strings.HasPrefix(operand, "@"):
		mode = cpu.MODE_INDIRECT
		operand = operand[1:]
	}

	var flags byte
	if strings.HasSuffix(operand, ",X") {
		if mode != cpu.MODE_DIRECT {
			err = ErrInvalidOperand(st.Operand)
			return
		}
		flags |= cpu.FLAG_X
		operand = strings.TrimSpace(strings.TrimSuffix(operand, ",X"))
	}

	bits := 12
	if st.Op.Format == 4 {
		flags |= cpu.FLAG_E
		bits = 20
	}

	var value int64
	if len(operand) != 0 {
		value, err = resolve(operand, symbols)
		if err != nil {
			return
		}
	}
	if value < 0 {
		err = ErrInvalidOperand(st.Operand)
		return
	}
	if value >= 1<<bits {
		err = ErrOperandTooLarge{Operand: st.Operand, Value: value, Bits: bits}
		return
	}

	code = []byte{st.Op.Opcode | byte(mode), flags<<4 | byte(value>>(bits-4))&0xF}
	for shift := bits - 12; shift >= 0; shift -= 8 {
		code = append(code, byte(value>>shift))
	}

	return
}
