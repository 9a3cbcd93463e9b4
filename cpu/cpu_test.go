package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestCpu(program ...byte) (cpu *Cpu, mem []byte) {
	mem = make([]byte, 0x8000)
	copy(mem[0x6000:], program)
	cpu = &Cpu{}
	cpu.Registers[REG_PC] = 0x6000
	return
}

func run(t *testing.T, cpu *Cpu, mem []byte, steps int) {
	for n := range steps {
		err := cpu.Step(mem)
		if err != nil {
			t.Fatalf("step %d: %v", n, err)
		}
	}
}

func TestCpu_AddImmediate(t *testing.T) {
	assert := assert.New(t)

	cpu, mem := newTestCpu(
		0xB4, 0x00, // CLEAR A
		0x19, 0x00, 0x01, // ADD #1
		0x19, 0x00, 0x01, // ADD #1
		0x19, 0x00, 0x01, // ADD #1
	)
	cpu.Registers[REG_A] = 0x55

	run(t, cpu, mem, 4)
	assert.Equal(uint64(3), cpu.Registers[REG_A])
	assert.Equal(uint64(0x600B), cpu.Registers[REG_PC])
	assert.Equal(4, cpu.Ticks)
}

func TestExecute(t *testing.T) {
	assert := assert.New(t)

	mem := make([]byte, 0x8000)
	copy(mem[0x6000:], []byte{0x19, 0x00, 0x2A})

	var regs Registers
	regs[REG_PC] = 0x6000
	err := Execute(&regs, mem)
	assert.NoError(err)
	assert.Equal(uint64(0x2A), regs[REG_A])
	assert.Equal(uint64(0x6003), regs[REG_PC])
}

func TestCpu_Arithmetic(t *testing.T) {
	assert := assert.New(t)

	cpu, mem := newTestCpu(
		0x01, 0x00, 0x0A, // LDA #10
		0x21, 0x00, 0x03, // MUL #3
		0x1D, 0x00, 0x05, // SUB #5
		0x25, 0x00, 0x05, // DIV #5
		0x41, 0x00, 0x04, // AND #4
		0x45, 0x00, 0x03, // OR #3
		0x1D, 0x00, 0x08, // SUB #8
	)

	expected := []uint64{10, 30, 25, 5, 4, 7, 0xFFFFFF}
	for n, value := range expected {
		err := cpu.Step(mem)
		assert.NoError(err)
		assert.Equal(value, cpu.Registers[REG_A], n)
	}
}

func TestCpu_Register(t *testing.T) {
	assert := assert.New(t)

	cpu, mem := newTestCpu(
		0x90, 0x04, // ADDR A,S  S <- S+A
		0x94, 0x04, // SUBR A,S  S <- S-A
		0x98, 0x04, // MULR A,S  S <- S*A
		0x9C, 0x04, // DIVR A,S  S <- S/A
		0xAC, 0x45, // RMO S,T
		0xA4, 0x44, // SHIFTL S,4
		0xA8, 0x41, // SHIFTR S,1
		0xB4, 0x40, // CLEAR S
	)
	cpu.Registers[REG_A] = 3
	cpu.Registers[REG_S] = 10

	expected := []uint64{13, 10, 30, 10, 10, 0xA0, 0x50, 0}
	for n, value := range expected {
		err := cpu.Step(mem)
		assert.NoError(err)
		assert.Equal(value, cpu.Registers[REG_S], n)
	}
	assert.Equal(uint64(10), cpu.Registers[REG_T])
	assert.Equal(uint64(3), cpu.Registers[REG_A])
}

func TestCpu_ShiftWraps(t *testing.T) {
	assert := assert.New(t)

	cpu, mem := newTestCpu(0xA4, 0x0F) // SHIFTL A,15
	cpu.Registers[REG_A] = 0xFFFF

	run(t, cpu, mem, 1)
	assert.Equal(uint64(0xFF8000), cpu.Registers[REG_A])
}

func TestCpu_LoadStore(t *testing.T) {
	assert := assert.New(t)

	cpu, mem := newTestCpu(
		0x01, 0x00, 0x2A, // LDA #42
		0x0F, 0x01, 0x00, // STA 0x100
		0xB4, 0x00, // CLEAR A
		0x03, 0x01, 0x00, // LDA 0x100
		0x05, 0x00, 0x03, // LDX #3
		0x13, 0x81, 0x00, // STX 0x100,X
		0x77, 0x01, 0x03, // LDT 0x103
	)

	run(t, cpu, mem, 7)
	assert.Equal([]byte{0x00, 0x00, 0x2A}, mem[0x100:0x103])
	assert.Equal(uint64(0x2A), cpu.Registers[REG_A])
	assert.Equal([]byte{0x00, 0x00, 0x03}, mem[0x103:0x106])
	assert.Equal(uint64(3), cpu.Registers[REG_T])
}

func TestCpu_Indirect(t *testing.T) {
	assert := assert.New(t)

	cpu, mem := newTestCpu(
		0x02, 0x02, 0x00, // LDA @0x200
		0x0E, 0x02, 0x03, // STA @0x203
	)
	copy(mem[0x200:], []byte{0x00, 0x01, 0x00, 0x00, 0x01, 0x10})
	copy(mem[0x100:], []byte{0x00, 0x00, 0x2A})

	run(t, cpu, mem, 2)
	assert.Equal(uint64(0x2A), cpu.Registers[REG_A])
	assert.Equal([]byte{0x00, 0x00, 0x2A}, mem[0x110:0x113])
}

func TestCpu_Characters(t *testing.T) {
	assert := assert.New(t)

	cpu, mem := newTestCpu(
		0x01, 0x01, 0x41, // LDA #0x141
		0x57, 0x01, 0x00, // STCH 0x100
		0xB4, 0x00, // CLEAR A
		0x53, 0x01, 0x00, // LDCH 0x100
	)

	run(t, cpu, mem, 4)
	assert.Equal(byte(0x41), mem[0x100])
	assert.Equal(uint64(0x41), cpu.Registers[REG_A])
}

// compareAndJump loads A and S, compares them, and takes a +JEQ/+JGT/+JLT
// over a LDA #99.
func compareAndJump(a, s byte, jump byte, legacy bool) (cpu *Cpu, mem []byte) {
	cpu, mem = newTestCpu(
		0x01, 0x00, a, // LDA #a
		0x6D, 0x00, s, // LDS #s
		0xA0, 0x04, // COMPR A,S
		jump | 1, 0x10, 0x60, 0x10, // +Jxx #0x6010
		0x01, 0x00, 0x63, // LDA #99
		0x00,             // pad
		0x19, 0x00, 0x01, // 6010: ADD #1
	)
	cpu.LegacyJumps = legacy
	return
}

func TestCpu_ConditionalJump(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name  string
		a, s  byte
		jump  byte
		taken bool
	}){
		{"jeq_taken", 5, 5, OP_JEQ, true},
		{"jeq_not", 5, 6, OP_JEQ, false},
		{"jgt_taken", 7, 6, OP_JGT, true},
		{"jgt_not", 5, 6, OP_JGT, false},
		{"jlt_taken", 5, 6, OP_JLT, true},
		{"jlt_not", 6, 6, OP_JLT, false},
	}

	for _, entry := range table {
		cpu, mem := compareAndJump(entry.a, entry.s, entry.jump, false)
		run(t, cpu, mem, 4)
		if entry.taken {
			assert.Equal(uint64(0x6010), cpu.Registers[REG_PC], entry.name)
			run(t, cpu, mem, 1)
			assert.Equal(uint64(entry.a)+1, cpu.Registers[REG_A], entry.name)
		} else {
			assert.Equal(uint64(0x600C), cpu.Registers[REG_PC], entry.name)
			run(t, cpu, mem, 1)
			assert.Equal(uint64(99), cpu.Registers[REG_A], entry.name)
		}
	}
}

func TestCpu_LegacyJumps(t *testing.T) {
	assert := assert.New(t)

	cpu, mem := compareAndJump(5, 5, OP_JEQ, true)
	run(t, cpu, mem, 4)
	assert.Equal(uint64(0x6014), cpu.Registers[REG_PC])

	// Direct mode jumps load the word at the target.
	cpu, mem = newTestCpu(0x3F, 0x01, 0x00) // J 0x100
	copy(mem[0x100:], []byte{0x00, 0x60, 0x00})
	cpu.LegacyJumps = true
	run(t, cpu, mem, 1)
	assert.Equal(uint64(0x6003), cpu.Registers[REG_PC])

	cpu, mem = newTestCpu(0x3F, 0x01, 0x00) // J 0x100
	run(t, cpu, mem, 1)
	assert.Equal(uint64(0x100), cpu.Registers[REG_PC])
}

func TestCpu_Subroutine(t *testing.T) {
	assert := assert.New(t)

	cpu, mem := newTestCpu(
		0x49, 0x10, 0x60, 0x08, // +JSUB #0x6008
		0x19, 0x00, 0x01, // 6004: ADD #1
		0x00,             // pad
		0x19, 0x00, 0x02, // 6008: ADD #2
		0x4F, 0x00, 0x00, // RSUB
	)

	run(t, cpu, mem, 1)
	assert.Equal(uint64(0x6004), cpu.Registers[REG_L])
	assert.Equal(uint64(0x6008), cpu.Registers[REG_PC])

	run(t, cpu, mem, 2)
	assert.Equal(uint64(0x6004), cpu.Registers[REG_PC])

	run(t, cpu, mem, 1)
	assert.Equal(uint64(3), cpu.Registers[REG_A])
}

func TestCpu_Tixr(t *testing.T) {
	assert := assert.New(t)

	cpu, mem := newTestCpu(
		0x75, 0x00, 0x03, // LDT #3
		0xB8, 0x50, // 6003: TIXR T
		0x39, 0x10, 0x60, 0x03, // +JLT #0x6003
	)

	run(t, cpu, mem, 7)
	assert.Equal(uint64(3), cpu.Registers[REG_X])
	assert.Equal(CC_EQUAL, cpu.Registers.Cond())
	assert.Equal(uint64(0x6009), cpu.Registers[REG_PC])
}

func TestCpu_Tix(t *testing.T) {
	assert := assert.New(t)

	cpu, mem := newTestCpu(
		0x2D, 0x00, 0x02, // TIX #2
		0x2D, 0x00, 0x02, // TIX #2
		0x2D, 0x00, 0x02, // TIX #2
		0x29, 0x00, 0x05, // COMP #5
	)

	run(t, cpu, mem, 1)
	assert.Equal(CC_LESS, cpu.Registers.Cond())
	run(t, cpu, mem, 1)
	assert.Equal(CC_EQUAL, cpu.Registers.Cond())
	run(t, cpu, mem, 1)
	assert.Equal(CC_GREATER, cpu.Registers.Cond())
	run(t, cpu, mem, 1)
	assert.Equal(CC_LESS, cpu.Registers.Cond())
}

func TestCpu_Errors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name string
		code []byte
		err  error
	}){
		{"unknown_opcode", []byte{0xC5, 0x00, 0x00}, ErrUnknownOpcode},
		{"unknown_register", []byte{0xB4, 0xC0}, ErrUnknownRegister},
		{"unknown_register2", []byte{0x90, 0x0B}, ErrUnknownRegister},
		{"divr_zero", []byte{0x9C, 0x04}, ErrDivideByZero},
		{"div_zero", []byte{0x25, 0x00, 0x00}, ErrDivideByZero},
		{"store_immediate", []byte{0x0D, 0x01, 0x00}, ErrInvalidAddressingMode},
		{"load_range", []byte{0x03, 0x10, 0x7F, 0xFF}, ErrInvalidAddress},
		{"indirect_range", []byte{0x02, 0x10, 0x7F, 0xFE}, ErrInvalidAddress},
	}

	for _, entry := range table {
		cpu, mem := newTestCpu(entry.code...)
		err := cpu.Step(mem)
		assert.ErrorIs(err, entry.err, entry.name)
		assert.ErrorIs(err, ErrOpcode{}, entry.name)
		assert.Equal(uint64(0x6000), cpu.Registers[REG_PC], entry.name)
		assert.Equal(0, cpu.Ticks, entry.name)
	}
}

func TestCpu_InvalidProgramCounter(t *testing.T) {
	assert := assert.New(t)

	cpu, mem := newTestCpu()
	cpu.Registers[REG_PC] = 0x8000

	err := cpu.Step(mem)
	assert.ErrorIs(err, ErrInvalidProgramCounter)
}

func TestCpu_Reset(t *testing.T) {
	assert := assert.New(t)

	cpu, mem := newTestCpu(0x19, 0x00, 0x01)
	run(t, cpu, mem, 1)

	cpu.Reset()
	assert.Equal(Registers{}, cpu.Registers)
	assert.Equal(0, cpu.Ticks)
}
