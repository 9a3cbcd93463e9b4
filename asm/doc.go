// Package asm implements a two pass SIC/XE assembler.
//
// Pass 1 walks the (macro expanded) source and assigns every label the
// value of the location counter. Pass 2 walks the same lines again, encodes
// each instruction and data directive, and produces a Program listing that
// renders as H/T/E object records.
//
// Operands may be symbols, decimal literals, or compile-time expressions of
// the form $(...) evaluated against the symbol table.
package asm
