package bus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCPU struct {
	cycles  uint64
	stalled int
}

func (c *fakeCPU) Cycle()          { c.cycles++ }
func (c *fakeCPU) TriggerNMI()     {}
func (c *fakeCPU) TriggerIRQ()     {}
func (c *fakeCPU) Stall(n int)     { c.stalled += n }
func (c *fakeCPU) Cycles() uint64  { return c.cycles }

type fakePPU struct {
	regs    [8]uint8
	oam     [256]uint8
	lastReg uint16
}

func (p *fakePPU) ReadRegister(addr uint16) uint8       { p.lastReg = addr; return p.regs[addr&0x7] }
func (p *fakePPU) WriteRegister(addr uint16, val uint8) { p.lastReg = addr; p.regs[addr&0x7] = val }
func (p *fakePPU) WriteOAMByte(index uint8, val uint8)  { p.oam[index] = val }

type fakeCartridge struct {
	prg [0xC000]uint8
}

func (c *fakeCartridge) ReadPRG(addr uint16) uint8       { return c.prg[addr-0x4020] }
func (c *fakeCartridge) WritePRG(addr uint16, val uint8) { c.prg[addr-0x4020] = val }

type fakeController struct {
	writes []uint8
	bit    uint8
}

func (c *fakeController) Read() uint8       { return c.bit }
func (c *fakeController) Write(val uint8)   { c.writes = append(c.writes, val) }

func newTestBus() (*Bus, *fakeCPU, *fakePPU, *fakeCartridge, *fakeController, *fakeController) {
	b := New()
	cpu := &fakeCPU{}
	ppu := &fakePPU{}
	cart := &fakeCartridge{}
	pad1 := &fakeController{}
	pad2 := &fakeController{}
	b.ConnectCPU(cpu)
	b.ConnectPPU(ppu)
	b.ConnectCartridge(cart)
	b.ConnectController1(pad1)
	b.ConnectController2(pad2)
	return b, cpu, ppu, cart, pad1, pad2
}

func TestRAMMirrorsEvery2KiB(t *testing.T) {
	b, _, _, _, _, _ := newTestBus()

	for i := 0; i < 10; i++ {
		b.Write(uint16(i), uint8(i+1))
	}

	for _, base := range []uint16{0, 0x0800, 0x1000, 0x1800} {
		for i := 0; i < 10; i++ {
			assert.Equal(t, uint8(i+1), b.Read(base+uint16(i)))
		}
	}
}

func TestPPURegisterWindowMirrorsEvery8Bytes(t *testing.T) {
	b, _, ppu, _, _, _ := newTestBus()

	b.Write(0x2000, 0x42)
	assert.Equal(t, uint16(0), ppu.lastReg)

	b.Write(0x3FF8, 0x99)
	assert.Equal(t, uint16(0), ppu.lastReg)
	assert.Equal(t, uint8(0x99), ppu.regs[0])
}

func TestControllerWritesReachBothPads(t *testing.T) {
	b, _, _, _, pad1, pad2 := newTestBus()

	b.Write(0x4016, 0x01)

	require.Len(t, pad1.writes, 1)
	require.Len(t, pad2.writes, 1)
	assert.Equal(t, uint8(0x01), pad1.writes[0])
}

func TestControllerReadsArePerPad(t *testing.T) {
	b, _, _, _, pad1, pad2 := newTestBus()
	pad1.bit = 1
	pad2.bit = 0

	assert.Equal(t, uint8(1), b.Read(0x4016))
	assert.Equal(t, uint8(0), b.Read(0x4017))
}

func TestCartridgeSpaceRoutesToPRG(t *testing.T) {
	b, _, _, cart, _, _ := newTestBus()
	cart.prg[0] = 0x55

	assert.Equal(t, uint8(0x55), b.Read(0x4020))

	b.Write(0x4020, 0xAA)
	assert.Equal(t, uint8(0xAA), cart.prg[0])
}

func TestStubbedAPURegisterReadsZero(t *testing.T) {
	b, _, _, _, _, _ := newTestBus()
	assert.Equal(t, uint8(0), b.Read(0x4010))
}

func TestOAMDMACopies256BytesAndStallsCPU(t *testing.T) {
	b, cpu, ppu, _, _, _ := newTestBus()
	for i := 0; i < 256; i++ {
		b.Write(uint16(i), uint8(i))
	}

	b.Write(0x4014, 0x00) // page 0, which is internal RAM

	for i := 0; i < 256; i++ {
		assert.Equal(t, uint8(i), ppu.oam[i])
	}
	assert.Equal(t, 513, cpu.stalled)
}

func TestOAMDMACosts514CyclesOnOddCycleCount(t *testing.T) {
	b, cpu, _, _, _, _ := newTestBus()
	cpu.cycles = 1 // odd

	b.Write(0x4014, 0x00)

	assert.Equal(t, 514, cpu.stalled)
}

func TestCycleForwardsToCPU(t *testing.T) {
	b, cpu, _, _, _, _ := newTestBus()
	b.Cycle()
	b.Cycle()
	assert.Equal(t, uint64(2), cpu.cycles)
}
