package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func FuzzCpu(f *testing.F) {
	f.Add(byte(0x19), byte(0x00), byte(0x01), byte(0x00), false)
	f.Add(byte(0xB4), byte(0x00), byte(0x00), byte(0x00), false)
	f.Add(byte(0x3F), byte(0x10), byte(0x60), byte(0x00), true)
	f.Add(byte(0x03), byte(0xC0), byte(0x01), byte(0x00), false)
	f.Add(byte(0xFF), byte(0xFF), byte(0xFF), byte(0xFF), true)

	f.Fuzz(func(t *testing.T, b0, b1, b2, b3 byte, legacy bool) {
		assert := assert.New(t)

		cpu, mem := newTestCpu(b0, b1, b2, b3)
		cpu.LegacyJumps = legacy
		cpu.Registers[REG_A] = 0x123456
		cpu.Registers[REG_X] = 0x000010
		cpu.Registers[REG_B] = 0x000200
		cpu.Registers[REG_L] = 0x006000
		cpu.Registers[REG_F] = 0xFFFFFFFFFFFF

		err := cpu.Step(mem)
		if err != nil {
			assert.Equal(uint64(0x6000), cpu.Registers[REG_PC])
			assert.Equal(0, cpu.Ticks)
			return
		}

		assert.Equal(1, cpu.Ticks)
		for slot, value := range cpu.Registers {
			assert.Equal(Wrap(slot, value), value, RegisterName(slot))
		}
	})
}
