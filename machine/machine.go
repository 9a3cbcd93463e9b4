// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package machine is a SIC/XE machine: a CPU, a memory image and a program
// loader.
package machine

import (
	"context"
	"fmt"
	"log"

	"github.com/ezrec/sicxe/asm"
	"github.com/ezrec/sicxe/cpu"
	"github.com/ezrec/sicxe/object"
)

const (
	MEMORY_SIZE  = 32768                      // Bytes of memory.
	LOAD_ADDRESS = 0x6000                     // Programs are loaded here.
	MAX_PROGRAM  = MEMORY_SIZE - LOAD_ADDRESS // Largest loadable program.
)

// Machine state. CPU + memory + loaded program.
type Machine struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *asm.Program // Listing of the loaded program, if known.

	memory [MEMORY_SIZE]byte
	loaded int
}

// NewMachine creates a machine with PC at the load address.
func NewMachine() (mach *Machine) {
	mach = &Machine{
		Cpu: &cpu.Cpu{},
	}

	mach.Registers[cpu.REG_PC] = LOAD_ADDRESS

	return
}

// Load clears the program region, copies a program image to the load
// address and points PC at it.
func (mach *Machine) Load(data []byte) (err error) {
	if len(data) > MAX_PROGRAM {
		err = ErrLoadTooLarge(len(data))
		return
	}

	if mach.Verbose {
		log.Printf("machine: load %d bytes at %06X", len(data), LOAD_ADDRESS)
	}

	clear(mach.memory[LOAD_ADDRESS:])
	copy(mach.memory[LOAD_ADDRESS:], data)
	mach.loaded = len(data)
	mach.Program = nil
	mach.Registers[cpu.REG_PC] = LOAD_ADDRESS

	return
}

// LoadHex loads a program in raw hex format.
func (mach *Machine) LoadHex(text string) (err error) {
	data, err := object.ParseHex(text)
	if err != nil {
		return
	}

	return mach.Load(data)
}

// LoadObject loads a program from object records. The image is placed at
// the load address whatever its start address.
func (mach *Machine) LoadObject(text string) (err error) {
	rec, err := object.Parse(text)
	if err != nil {
		return
	}

	if extent := rec.Extent(); extent > MAX_PROGRAM {
		err = ErrLoadTooLarge(extent)
		return
	}

	return mach.Load(rec.Image())
}

// LoadProgram loads an assembled program, keeping its listing for
// runtime error locations.
func (mach *Machine) LoadProgram(prog *asm.Program) (err error) {
	err = mach.Load(prog.Record().Image())
	if err != nil {
		return
	}

	mach.Program = prog

	return
}

// Reset clears the program region and the registers.
func (mach *Machine) Reset() {
	if mach.Verbose {
		log.Printf("machine: reset")
	}

	clear(mach.memory[LOAD_ADDRESS:])
	mach.loaded = 0
	mach.Program = nil

	mach.Cpu.Verbose = mach.Verbose
	mach.Cpu.Reset()
	mach.Registers[cpu.REG_PC] = LOAD_ADDRESS
}

// ClearScratch clears the memory below the load address.
func (mach *Machine) ClearScratch() {
	clear(mach.memory[:LOAD_ADDRESS])
}

// Register returns the value of a register slot.
func (mach *Machine) Register(index int) (value uint64, ok bool) {
	value, err := mach.Registers.Read(index)
	ok = err == nil
	return
}

// Memory returns a copy of the memory image.
func (mach *Machine) Memory() []byte {
	mem := make([]byte, MEMORY_SIZE)
	copy(mem, mach.memory[:])
	return mem
}

// Loaded returns the size of the loaded program.
func (mach *Machine) Loaded() int {
	return mach.loaded
}

// Halted returns true if PC is just past the end of the loaded program.
func (mach *Machine) Halted() bool {
	return mach.Registers[cpu.REG_PC] == uint64(LOAD_ADDRESS+mach.loaded)
}

// LineNo returns the source line of the instruction at PC, or 0 if not known.
func (mach *Machine) LineNo() int {
	if mach.Program == nil {
		return 0
	}

	addr := int(mach.Registers[cpu.REG_PC]) - LOAD_ADDRESS + mach.Program.Start
	line, ok := mach.Program.Debug(addr)
	if !ok {
		return 0
	}

	return line.LineNo
}

// Step executes a single instruction of the loaded program.
func (mach *Machine) Step() (err error) {
	mach.Cpu.Verbose = mach.Verbose

	pc := mach.Registers[cpu.REG_PC]
	lineno := mach.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{PC: pc, LineNo: lineno, Err: err}
		}
	}()

	if pc < LOAD_ADDRESS || pc >= uint64(LOAD_ADDRESS+mach.loaded) {
		err = cpu.ErrInvalidProgramCounter
		return
	}

	err = mach.Cpu.Step(mach.memory[:])

	return
}

// Run steps until an error, cancellation of ctx, or limit steps if limit is
// positive.
func (mach *Machine) Run(ctx context.Context, limit int) (steps int, err error) {
	for limit <= 0 || steps < limit {
		err = ctx.Err()
		if err != nil {
			return
		}

		err = mach.Step()
		if err != nil {
			return
		}
		steps++
	}

	return
}

// String returns the machine state as a string.
func (mach *Machine) String() string {
	return mach.Cpu.String() + fmt.Sprintf("LEN: %06X\nTCK: %d\n", mach.loaded, mach.Cpu.Ticks)
}
