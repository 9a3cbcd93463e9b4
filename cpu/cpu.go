// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"errors"
	"log"
)

// Cpu is the simulation context of the SIC/XE processor.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	// LegacyJumps makes a jump load PC with the operand value (the word at
	// the target for memory modes), and still adds the instruction length
	// after a taken jump.
	LegacyJumps bool

	Registers Registers // Register file.
	Ticks     int       // Instructions executed.

	jumped bool // PC was written by the current instruction.
}

// Execute performs a single fetch-decode-execute cycle on a register file
// and memory image with the default engine options.
func Execute(regs *Registers, mem []byte) (err error) {
	cpu := Cpu{Registers: *regs}
	err = cpu.Step(mem)
	*regs = cpu.Registers
	return
}

// Reset clears the register file and statistics.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	clear(cpu.Registers[:])
	cpu.Ticks = 0
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() string {
	return cpu.Registers.String()
}

// Step executes a single instruction from memory.
func (cpu *Cpu) Step(mem []byte) (err error) {
	regs := &cpu.Registers

	ins, err := Decode(regs, mem)
	if err != nil {
		return
	}

	if cpu.Verbose {
		log.Printf("cpu: %06X %v", ins.Address, ins)
	}

	defer func() {
		if err != nil {
			err = errors.Join(ErrOpcode(ins), err)
		}
	}()

	cpu.jumped = false
	if ins.Format == 2 {
		err = cpu.executeRegister(ins)
	} else {
		err = cpu.executeMemory(ins, mem)
	}
	if err != nil {
		return
	}

	if !cpu.jumped || cpu.LegacyJumps {
		regs.Write(REG_PC, regs[REG_PC]+uint64(ins.Length))
	}

	cpu.Ticks++

	return
}

// set writes a register, noting writes to PC as jumps.
func (cpu *Cpu) set(slot int, value uint64) (err error) {
	_, err = cpu.Registers.Write(slot, value)
	if err == nil && slot == REG_PC {
		cpu.jumped = true
	}
	return
}

// executeRegister executes a format 2 instruction.
func (cpu *Cpu) executeRegister(ins Instruction) (err error) {
	regs := &cpu.Registers

	r1, err := regs.Read(ins.R1)
	if err != nil {
		return
	}

	// Shift counts and single register forms do not name a second register.
	var r2 uint64
	switch ins.Opcode {
	case OP_SHIFTL, OP_SHIFTR, OP_CLEAR, OP_TIXR:
	default:
		r2, err = regs.Read(ins.R2)
		if err != nil {
			return
		}
	}

	// Two register forms combine r1 into r2: SUBR is r2-r1, DIVR is r2/r1.
	switch ins.Opcode {
	case OP_ADDR:
		err = cpu.set(ins.R2, r2+r1)
	case OP_SUBR:
		err = cpu.set(ins.R2, r2-r1)
	case OP_MULR:
		err = cpu.set(ins.R2, r2*r1)
	case OP_DIVR:
		if r1 == 0 {
			err = ErrDivideByZero
			return
		}
		err = cpu.set(ins.R2, r2/r1)
	case OP_RMO:
		err = cpu.set(ins.R2, r1)
	case OP_CLEAR:
		err = cpu.set(ins.R1, 0)
	case OP_SHIFTL:
		err = cpu.set(ins.R1, r1<<uint(ins.R2))
	case OP_SHIFTR:
		err = cpu.set(ins.R1, r1>>uint(ins.R2))
	case OP_COMPR:
		regs.SetCond(r1, r2)
	case OP_TIXR:
		x, _ := regs.Write(REG_X, regs[REG_X]+1)
		// TIXR X compares against the incremented value.
		if ins.R1 == REG_X {
			r1 = x
		}
		regs.SetCond(x, r1)
	default:
		err = ErrUnknownOpcode
	}

	return
}

// readWord reads a big-endian 24-bit word.
func readWord(mem []byte, addr uint64) (value uint64, err error) {
	if addr+3 > uint64(len(mem)) {
		err = ErrAddress(addr)
		return
	}
	value = uint64(mem[addr])<<16 | uint64(mem[addr+1])<<8 | uint64(mem[addr+2])
	return
}

// writeWord writes a big-endian 24-bit word.
func writeWord(mem []byte, addr uint64, value uint64) (err error) {
	if addr+3 > uint64(len(mem)) {
		err = ErrAddress(addr)
		return
	}
	mem[addr] = byte(value >> 16)
	mem[addr+1] = byte(value >> 8)
	mem[addr+2] = byte(value)
	return
}

// address returns the memory address an instruction refers to.
// Indirect instructions dereference their target once.
func address(ins Instruction, mem []byte) (addr uint64, err error) {
	switch ins.Mode {
	case MODE_IMMEDIATE:
		err = ErrInvalidAddressingMode
	case MODE_INDIRECT:
		addr, err = readWord(mem, ins.Target)
	default:
		addr = ins.Target
	}
	return
}

// value returns the 24-bit operand of an instruction.
func value(ins Instruction, mem []byte) (val uint64, err error) {
	if ins.Mode == MODE_IMMEDIATE {
		val = ins.Target
		return
	}

	addr, err := address(ins, mem)
	if err != nil {
		return
	}

	return readWord(mem, addr)
}

// jumpTarget returns the destination of a jump.
func (cpu *Cpu) jumpTarget(ins Instruction, mem []byte) (target uint64, err error) {
	if cpu.LegacyJumps {
		return value(ins, mem)
	}
	if ins.Mode == MODE_IMMEDIATE {
		target = ins.Target
		return
	}
	return address(ins, mem)
}

// executeMemory executes a format 3/4 or legacy SIC instruction.
func (cpu *Cpu) executeMemory(ins Instruction, mem []byte) (err error) {
	regs := &cpu.Registers

	// Operand fetch for the arithmetic and load group.
	load := func(slot int, op func(reg, val uint64) uint64) (err error) {
		val, err := value(ins, mem)
		if err != nil {
			return
		}
		return cpu.set(slot, op(regs[slot], val))
	}
	replace := func(_, val uint64) uint64 { return val }

	// Operand store for the store group.
	store := func(slot int) (err error) {
		addr, err := address(ins, mem)
		if err != nil {
			return
		}
		return writeWord(mem, addr, regs[slot])
	}

	jump := func(cond bool) (err error) {
		target, err := cpu.jumpTarget(ins, mem)
		if err != nil || !cond {
			return
		}
		return cpu.set(REG_PC, target)
	}

	switch ins.Opcode {
	case OP_ADD:
		err = load(REG_A, func(a, v uint64) uint64 { return a + v })
	case OP_SUB:
		err = load(REG_A, func(a, v uint64) uint64 { return a - v })
	case OP_MUL:
		err = load(REG_A, func(a, v uint64) uint64 { return a * v })
	case OP_DIV:
		var val uint64
		val, err = value(ins, mem)
		if err != nil {
			return
		}
		if val == 0 {
			err = ErrDivideByZero
			return
		}
		err = cpu.set(REG_A, regs[REG_A]/val)
	case OP_AND:
		err = load(REG_A, func(a, v uint64) uint64 { return a & v })
	case OP_OR:
		err = load(REG_A, func(a, v uint64) uint64 { return a | v })
	case OP_LDA:
		err = load(REG_A, replace)
	case OP_LDX:
		err = load(REG_X, replace)
	case OP_LDL:
		err = load(REG_L, replace)
	case OP_LDB:
		err = load(REG_B, replace)
	case OP_LDS:
		err = load(REG_S, replace)
	case OP_LDT:
		err = load(REG_T, replace)
	case OP_LDCH:
		var ch uint64
		if ins.Mode == MODE_IMMEDIATE {
			ch = ins.Target
		} else {
			var addr uint64
			addr, err = address(ins, mem)
			if err != nil {
				return
			}
			if addr >= uint64(len(mem)) {
				err = ErrAddress(addr)
				return
			}
			ch = uint64(mem[addr])
		}
		err = cpu.set(REG_A, (regs[REG_A]&^0xFF)|(ch&0xFF))
	case OP_STA:
		err = store(REG_A)
	case OP_STX:
		err = store(REG_X)
	case OP_STL:
		err = store(REG_L)
	case OP_STB:
		err = store(REG_B)
	case OP_STS:
		err = store(REG_S)
	case OP_STT:
		err = store(REG_T)
	case OP_STCH:
		var addr uint64
		addr, err = address(ins, mem)
		if err != nil {
			return
		}
		if addr >= uint64(len(mem)) {
			err = ErrAddress(addr)
			return
		}
		mem[addr] = byte(regs[REG_A])
	case OP_COMP:
		var val uint64
		val, err = value(ins, mem)
		if err != nil {
			return
		}
		regs.SetCond(regs[REG_A], val)
	case OP_TIX:
		var val uint64
		val, err = value(ins, mem)
		if err != nil {
			return
		}
		x, _ := regs.Write(REG_X, regs[REG_X]+1)
		regs.SetCond(x, val)
	case OP_J:
		err = jump(true)
	case OP_JEQ:
		err = jump(regs.Cond() == CC_EQUAL)
	case OP_JGT:
		err = jump(regs.Cond() == CC_GREATER)
	case OP_JLT:
		err = jump(regs.Cond() == CC_LESS)
	case OP_JSUB:
		var target uint64
		target, err = cpu.jumpTarget(ins, mem)
		if err != nil {
			return
		}
		regs.Write(REG_L, regs[REG_PC]+uint64(ins.Length))
		err = cpu.set(REG_PC, target)
	case OP_RSUB:
		err = cpu.set(REG_PC, regs[REG_L])
	default:
		err = ErrUnknownOpcode
	}

	return
}
