// Package cpu implements the SIC/XE execution engine.
//
// The register file holds ten slots (A, X, L, B, S, T, F, an unused slot, PC
// and SW). All slots are 24 bits wide except F, which is 48 bits; every write
// wraps modulo the slot width. The engine fetches, decodes and executes one
// instruction per Step against a caller-owned memory image, and keeps no
// state of its own beyond the register file.
//
// Instructions are either the fixed two byte register-register forms, or
// format 3/4 instructions whose low opcode bits select one of four
// addressing mode families, followed by a flag nibble that selects the
// operand width and the PC, base or index relative offset.
package cpu
