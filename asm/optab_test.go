package asm

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/sicxe/cpu"
)

func TestLookup(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		mnemonic string
		kind     Kind
		opcode   byte
		size     int
	}){
		{"START", KIND_START, 0, 0},
		{"END", KIND_END, 0, 0},
		{"BYTE", KIND_BYTE, 0, 0},
		{"WORD", KIND_WORD, 0, 0},
		{"RESW", KIND_RESW, 0, 0},
		{"RESB", KIND_RESB, 0, 0},
		{"ADD", KIND_INSTRUCTION, cpu.OP_ADD, 3},
		{"+ADD", KIND_INSTRUCTION, cpu.OP_ADD, 4},
		{"CLEAR", KIND_INSTRUCTION, cpu.OP_CLEAR, 2},
		{"TIXR", KIND_INSTRUCTION, cpu.OP_TIXR, 2},
		{"RSUB", KIND_INSTRUCTION, cpu.OP_RSUB, 3},
		{"+JSUB", KIND_INSTRUCTION, cpu.OP_JSUB, 4},
	}

	for _, entry := range table {
		op, ok := Lookup(entry.mnemonic)
		assert.True(ok, entry.mnemonic)
		assert.Equal(entry.kind, op.Kind, entry.mnemonic)
		assert.Equal(entry.opcode, op.Opcode, entry.mnemonic)
		assert.Equal(entry.size, op.Size(), entry.mnemonic)
	}

	for _, name := range []string{"add", "+CLEAR", "+START", "MACRO", ""} {
		_, ok := Lookup(name)
		assert.False(ok, name)
	}

	assert.Equal("RESW", KIND_RESW.String())
	assert.Equal("instruction", KIND_INSTRUCTION.String())
}

func TestRegisterIndex(t *testing.T) {
	assert := assert.New(t)

	for name, slot := range map[string]int{"A": 0, "X": 1, "L": 2, "B": 3, "S": 4, "T": 5, "F": 6, "PC": 8, "SW": 9} {
		index, ok := RegisterIndex(name)
		assert.True(ok, name)
		assert.Equal(slot, index, name)
	}

	_, ok := RegisterIndex("R7")
	assert.False(ok)
}
