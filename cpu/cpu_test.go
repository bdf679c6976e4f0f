package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testBus struct {
	mem [0x10000]uint8
}

func (b *testBus) Read(addr uint16) uint8       { return b.mem[addr] }
func (b *testBus) Write(addr uint16, val uint8) { b.mem[addr] = val }

func newTestCPU(resetVector uint16) (*CPU, *testBus) {
	bus := &testBus{}
	bus.mem[vectorReset] = uint8(resetVector)
	bus.mem[vectorReset+1] = uint8(resetVector >> 8)
	return New(bus), bus
}

func runInstruction(c *CPU) {
	c.Cycle()
	for c.remainingCycles > 0 {
		c.Cycle()
	}
}

func TestResetDeterminism(t *testing.T) {
	c, bus := newTestCPU(0x8000)
	assert.Equal(t, uint16(0x8000), c.PC)
	assert.Equal(t, uint8(0xFD), c.SP)
	assert.True(t, c.P.IsSet(FlagInterruptDisable))
	assert.True(t, c.P.IsSet(FlagUnused))

	bus.mem[vectorReset] = 0x34
	bus.mem[vectorReset+1] = 0x12
	c.Reset()
	assert.Equal(t, uint16(0x1234), c.PC)
}

// Scenario 1: LDA immediate then Z/N flags.
func TestScenarioLDAImmediateZeroFlag(t *testing.T) {
	c, bus := newTestCPU(0x0001)
	bus.mem[0x0001] = 0xA9
	bus.mem[0x0002] = 0x00

	runInstruction(c)

	assert.Equal(t, uint8(0x00), c.A)
	assert.True(t, c.P.IsSet(FlagZero))
	assert.False(t, c.P.IsSet(FlagNegative))
	assert.Equal(t, uint16(0x0003), c.PC)
	assert.Equal(t, uint64(2), c.totalCycles)
}

// Scenario 2: LDA absolute reads through bus.
func TestScenarioLDAAbsolute(t *testing.T) {
	c, bus := newTestCPU(0x0001)
	bus.mem[0x0001] = 0xAD
	bus.mem[0x0002] = 0x04
	bus.mem[0x0003] = 0x00
	bus.mem[0x0004] = 0x33

	runInstruction(c)

	assert.Equal(t, uint8(0x33), c.A)
	assert.Equal(t, uint16(0x0004), c.PC)
	assert.Equal(t, uint64(4), c.totalCycles)
}

// Scenario 3: ADC with overflow.
func TestScenarioADCOverflow(t *testing.T) {
	c, bus := newTestCPU(0x0001)
	c.A = 0x50
	c.P.Clear(FlagCarry)
	bus.mem[0x0001] = 0x69
	bus.mem[0x0002] = 0x50

	runInstruction(c)

	assert.Equal(t, uint8(0xA0), c.A)
	assert.False(t, c.P.IsSet(FlagCarry))
	assert.True(t, c.P.IsSet(FlagOverflow))
	assert.True(t, c.P.IsSet(FlagNegative))
	assert.False(t, c.P.IsSet(FlagZero))
}

// Scenario 4: indirect JMP page-wrap bug.
func TestScenarioIndirectJMPPageWrapBug(t *testing.T) {
	c, bus := newTestCPU(0x0001)
	bus.mem[0x0001] = 0x6C
	bus.mem[0x0002] = 0xFF
	bus.mem[0x0003] = 0x30
	bus.mem[0x30FF] = 0x40
	bus.mem[0x3000] = 0x80
	bus.mem[0x3100] = 0x50

	runInstruction(c)

	assert.Equal(t, uint16(0x8040), c.PC)
}

// Scenario 5: page-cross cycle penalty.
func TestScenarioPageCrossCyclePenalty(t *testing.T) {
	c, bus := newTestCPU(0x0001)
	c.X = 0x20
	bus.mem[0x0001] = 0xBD // LDA $12F0,X
	bus.mem[0x0002] = 0xF0
	bus.mem[0x0003] = 0x12
	bus.mem[0x1310] = 0x7E

	runInstruction(c)

	assert.Equal(t, uint8(0x7E), c.A)
	assert.Equal(t, uint64(5), c.totalCycles)
}

func TestStackRoundTrip(t *testing.T) {
	c, bus := newTestCPU(0x0001)
	c.A = 0x80 // negative
	bus.mem[0x0001] = 0x48 // PHA
	bus.mem[0x0002] = 0xA9 // LDA #0 (clobber A)
	bus.mem[0x0003] = 0x00
	bus.mem[0x0004] = 0x68 // PLA

	runInstruction(c)
	runInstruction(c)
	require.Equal(t, uint8(0x00), c.A)
	runInstruction(c)

	assert.Equal(t, uint8(0x80), c.A)
	assert.True(t, c.P.IsSet(FlagNegative))
	assert.False(t, c.P.IsSet(FlagZero))
}

func TestZeroPageYIndexesByY(t *testing.T) {
	c, bus := newTestCPU(0x0001)
	c.Y = 0x05
	c.X = 0xFF // if the bug were present, X would be used instead
	bus.mem[0x0001] = 0xB6 // LDX $10,Y
	bus.mem[0x0002] = 0x10
	bus.mem[0x0015] = 0x42

	runInstruction(c)

	assert.Equal(t, uint8(0x42), c.X)
}

func TestJSRJumpsToAddressingResolvedTarget(t *testing.T) {
	c, bus := newTestCPU(0x0001)
	bus.mem[0x0001] = 0x20 // JSR $1234
	bus.mem[0x0002] = 0x34
	bus.mem[0x0003] = 0x12

	runInstruction(c)

	assert.Equal(t, uint16(0x1234), c.PC)
	// pushed return address is PC-1 = 0x0003
	assert.Equal(t, uint8(0x00), bus.mem[0x01FD])
	assert.Equal(t, uint8(0x03), bus.mem[0x01FC])
}

func TestRTSReturnsAfterJSR(t *testing.T) {
	c, bus := newTestCPU(0x0001)
	bus.mem[0x0001] = 0x20 // JSR $0010
	bus.mem[0x0002] = 0x10
	bus.mem[0x0003] = 0x00
	bus.mem[0x0010] = 0x60 // RTS

	runInstruction(c) // JSR
	runInstruction(c) // RTS

	assert.Equal(t, uint16(0x0004), c.PC)
}

func TestRelativeAddressingSignExtends(t *testing.T) {
	c, bus := newTestCPU(0x0010)
	c.P.Set(FlagCarry)
	bus.mem[0x0010] = 0xB0 // BCS -2 (branch to self - 0, loops back)
	bus.mem[0x0011] = 0xFE // -2

	runInstruction(c)

	assert.Equal(t, uint16(0x0010), c.PC)
}

func TestBRKPushesBreakAndUnusedSet(t *testing.T) {
	c, bus := newTestCPU(0x0001)
	bus.mem[vectorIRQ] = 0x00
	bus.mem[vectorIRQ+1] = 0x90
	bus.mem[0x0001] = 0x00 // BRK

	runInstruction(c)

	assert.Equal(t, uint16(0x9000), c.PC)
	assert.True(t, c.P.IsSet(FlagInterruptDisable))
	pushedStatus := bus.mem[0x01FC]
	assert.NotZero(t, pushedStatus&FlagBreak)
	assert.NotZero(t, pushedStatus&FlagUnused)
}

func TestPHPPushesBreakAndUnusedButPRegisterUnaffected(t *testing.T) {
	c, bus := newTestCPU(0x0001)
	c.P.Clear(FlagBreak)
	bus.mem[0x0001] = 0x08 // PHP

	runInstruction(c)

	pushed := bus.mem[0x01FC]
	assert.NotZero(t, pushed&FlagBreak)
	assert.NotZero(t, pushed&FlagUnused)
}

func TestPLPMasksBreakAndUnusedFromStack(t *testing.T) {
	c, bus := newTestCPU(0x0001)
	c.SP = 0xFC
	bus.mem[0x01FD] = 0xFF // every bit set, including break
	bus.mem[0x0001] = 0x28 // PLP

	runInstruction(c)

	assert.False(t, c.P.IsSet(FlagBreak))
	assert.True(t, c.P.IsSet(FlagUnused))
	assert.True(t, c.P.IsSet(FlagCarry))
}

func TestCompareEquivalentToSubtractAndDiscard(t *testing.T) {
	cCmp, busCmp := newTestCPU(0x0001)
	cCmp.A = 0x10
	cCmp.P.Set(FlagCarry)
	busCmp.mem[0x0001] = 0xC9 // CMP #$05
	busCmp.mem[0x0002] = 0x05

	cSbc, busSbc := newTestCPU(0x0001)
	cSbc.A = 0x10
	cSbc.P.Set(FlagCarry)
	busSbc.mem[0x0001] = 0xE9 // SBC #$05
	busSbc.mem[0x0002] = 0x05

	runInstruction(cCmp)
	runInstruction(cSbc)

	assert.Equal(t, cCmp.P.IsSet(FlagCarry), cSbc.P.IsSet(FlagCarry))
	assert.Equal(t, cCmp.P.IsSet(FlagZero), cSbc.P.IsSet(FlagZero))
	assert.Equal(t, cCmp.P.IsSet(FlagNegative), cSbc.P.IsSet(FlagNegative))
}

func TestUnusedFlagAlwaysSetInvariant(t *testing.T) {
	c, bus := newTestCPU(0x0001)
	bus.mem[0x0001] = 0x18 // CLC
	runInstruction(c)
	assert.True(t, c.P.IsSet(FlagUnused))
}

func TestNMITakesPriorityAndVectorsCorrectly(t *testing.T) {
	c, bus := newTestCPU(0x0001)
	bus.mem[vectorNMI] = 0x00
	bus.mem[vectorNMI+1] = 0xA0
	bus.mem[0x0001] = 0xEA // NOP

	c.TriggerNMI()
	runInstruction(c)

	assert.Equal(t, uint16(0xA000), c.PC)
}

func TestStallAddsCyclesWithoutDecoding(t *testing.T) {
	c, bus := newTestCPU(0x0001)
	bus.mem[0x0001] = 0xA9
	bus.mem[0x0002] = 0x42

	c.Stall(3)
	for i := 0; i < 3; i++ {
		c.Cycle()
	}
	assert.Equal(t, uint8(0), c.A) // instruction not yet decoded

	runInstruction(c)
	assert.Equal(t, uint8(0x42), c.A)
}
