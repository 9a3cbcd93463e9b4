// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
)

// Register slot indexes.
const (
	REG_A  = 0
	REG_X  = 1
	REG_L  = 2
	REG_B  = 3
	REG_S  = 4
	REG_T  = 5
	REG_F  = 6
	REG_PC = 8
	REG_SW = 9

	REGISTER_COUNT = 10
)

const (
	WORD_MASK  = uint64(1<<24 - 1) // Width of every slot but F.
	FLOAT_MASK = uint64(1<<48 - 1) // Width of the F slot.
)

// Condition code values held in SW bits 16-17.
const (
	CC_MASK    = uint64(0x030000)
	CC_EQUAL   = uint64(0x000000)
	CC_GREATER = uint64(0x010000)
	CC_LESS    = uint64(0x030000)
)

var registerName = [REGISTER_COUNT]string{"A", "X", "L", "B", "S", "T", "F", "R7", "PC", "SW"}

// RegisterName returns the architectural name of a register slot.
func RegisterName(slot int) string {
	if slot < 0 || slot >= REGISTER_COUNT {
		return fmt.Sprintf("R%d", slot)
	}
	return registerName[slot]
}

// Wrap reduces a raw value to the bit width of a register slot.
func Wrap(slot int, raw uint64) (stored uint64) {
	if slot == REG_F {
		return raw & FLOAT_MASK
	}
	return raw & WORD_MASK
}

// Registers is the SIC/XE register file.
type Registers [REGISTER_COUNT]uint64

// Read returns the value of a register slot.
func (regs *Registers) Read(slot int) (value uint64, err error) {
	if slot < 0 || slot >= REGISTER_COUNT {
		err = ErrRegister(slot)
		return
	}
	value = regs[slot]
	return
}

// Write stores a value into a register slot, wrapped to the slot width.
func (regs *Registers) Write(slot int, raw uint64) (stored uint64, err error) {
	if slot < 0 || slot >= REGISTER_COUNT {
		err = ErrRegister(slot)
		return
	}
	stored = Wrap(slot, raw)
	regs[slot] = stored
	return
}

// Cond returns the condition code bits of SW.
func (regs *Registers) Cond() uint64 {
	return regs[REG_SW] & CC_MASK
}

// SetCond replaces the condition code bits of SW with the result of comparing a to b.
func (regs *Registers) SetCond(a, b uint64) {
	cc := CC_EQUAL
	switch {
	case a > b:
		cc = CC_GREATER
	case a < b:
		cc = CC_LESS
	}
	regs[REG_SW] = Wrap(REG_SW, (regs[REG_SW]&^CC_MASK)|cc)
}

// String returns the register file in the layout of a front panel.
func (regs *Registers) String() (text string) {
	for slot, val := range regs {
		if slot == 7 {
			continue
		}
		if slot == REG_F {
			text += fmt.Sprintf("% 3s: %012X\n", RegisterName(slot), val)
			continue
		}
		text += fmt.Sprintf("% 3s: %06X\n", RegisterName(slot), val)
	}
	return
}
