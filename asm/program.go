// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package asm

import (
	"fmt"
	"iter"
	"maps"
	"slices"
	"strings"

	"github.com/ezrec/sicxe/object"
)

// SymbolTable maps labels to addresses.
type SymbolTable map[string]int

// All yields the symbols in name order.
func (symbols SymbolTable) All() iter.Seq2[string, int] {
	return func(yield func(string, int) bool) {
		for _, name := range slices.Sorted(maps.Keys(symbols)) {
			if !yield(name, symbols[name]) {
				return
			}
		}
	}
}

// Line is one listing entry of an assembled program.
type Line struct {
	LineNo  int    // Source line number.
	Address int    // Location counter at the line.
	Source  string // Source text.
	Code    []byte // Generated code, if any.
}

// Program is an assembled program.
type Program struct {
	Name    string
	Start   int
	Length  int
	Symbols SymbolTable
	Lines   []Line
}

// Code returns the generated code of every line, in order.
func (prog *Program) Code() (code []byte) {
	for _, line := range prog.Lines {
		code = append(code, line.Code...)
	}
	return
}

// Record returns the program as an object record.
func (prog *Program) Record() (rec *object.Record) {
	rec = &object.Record{
		Name:   prog.Name,
		Start:  uint32(prog.Start),
		Length: uint32(prog.Length),
		Entry:  uint32(prog.Start),
	}

	for _, line := range prog.Lines {
		if len(line.Code) != 0 {
			rec.Append(uint32(line.Address), line.Code)
		}
	}

	return
}

// Object returns the program in object text format.
func (prog *Program) Object() string {
	return object.Format(prog.Record())
}

// Debug returns the listing line generating code at an address.
func (prog *Program) Debug(addr int) (line Line, ok bool) {
	for _, line = range prog.Lines {
		if addr >= line.Address && addr < line.Address+len(line.Code) {
			ok = true
			return
		}
	}
	line = Line{}
	return
}

// Listing returns the assembly listing and symbol table.
func (prog *Program) Listing() string {
	var sb strings.Builder

	for _, line := range prog.Lines {
		fmt.Fprintf(&sb, "%4d %06X %-8X %v\n", line.LineNo, line.Address, line.Code, line.Source)
	}

	sb.WriteString("\n")
	for name, addr := range prog.Symbols.All() {
		fmt.Fprintf(&sb, "%-8v %06X\n", name, addr)
	}

	return sb.String()
}
