// Package bus implements the NES CPU memory bus: address decode
// across internal RAM, the PPU register window, the APU/controller
// stub range, and cartridge space, plus OAM DMA.
//
// Grounded on _examples/bdwalton-gintendo/console/bus.go's Read/Write
// switch and Run loop, generalized to spec.md §4.E's decode table and
// stripped of its ebiten-driven Draw/Layout/Update (video presentation
// is out of scope, see DESIGN.md).
package bus

import (
	"github.com/golang/glog"
)

const ramSize = 0x0800

// CPU is the subset of the cpu package's state this bus needs to
// drive: one cycle at a time, with the ability to stall it for OAM
// DMA and raise its interrupt lines.
type CPU interface {
	Cycle()
	TriggerNMI()
	TriggerIRQ()
	Stall(cycles int)
	Cycles() uint64
}

// PPU is the subset of the ppu package's state the bus routes
// register accesses and OAM DMA bytes to.
type PPU interface {
	ReadRegister(addr uint16) uint8
	WriteRegister(addr uint16, val uint8)
	WriteOAMByte(index uint8, val uint8)
}

// Cartridge is the subset of the cartridge package's state the bus
// routes PRG accesses to.
type Cartridge interface {
	ReadPRG(addr uint16) uint8
	WritePRG(addr uint16, val uint8)
}

// Controller is the subset of the controller's state the bus routes
// $4016/$4017 accesses to.
type Controller interface {
	Read() uint8
	Write(val uint8)
}

// Bus owns internal RAM and wires together the CPU, PPU, cartridge,
// and controllers that share the NES's single address space.
type Bus struct {
	cpu  CPU
	ppu  PPU
	cart Cartridge
	pad1 Controller
	pad2 Controller

	ram [ramSize]uint8
}

// New builds a Bus with no collaborators attached; Connect* wires them
// in, idempotently (repeated calls just reassign the reference).
func New() *Bus {
	return &Bus{}
}

func (b *Bus) ConnectCPU(c CPU)               { b.cpu = c }
func (b *Bus) ConnectPPU(p PPU)               { b.ppu = p }
func (b *Bus) ConnectCartridge(c Cartridge)   { b.cart = c }
func (b *Bus) ConnectController1(c Controller) { b.pad1 = c }
func (b *Bus) ConnectController2(c Controller) { b.pad2 = c }

// Cycle forwards a single tick to the CPU, per spec.md §4.E.
func (b *Bus) Cycle() {
	b.cpu.Cycle()
}

// Read services a CPU-side memory read per spec.md §4.E's decode
// table. An out-of-range or unroutable access logs and returns 0.
func (b *Bus) Read(addr uint16) uint8 {
	switch {
	case addr <= 0x1FFF:
		return b.ram[addr&0x07FF]
	case addr <= 0x3FFF:
		return b.ppu.ReadRegister(addr & 0x2007)
	case addr == 0x4016:
		return b.readController(b.pad1)
	case addr == 0x4017:
		return b.readController(b.pad2)
	case addr <= 0x401F:
		glog.V(2).Infof("bus: read from stubbed APU/test register %#04x", addr)
		return 0
	case addr >= 0x4020:
		return b.readCartridge(addr)
	default:
		glog.Errorf("bus: unroutable read at %#04x", addr)
		return 0
	}
}

func (b *Bus) readController(c Controller) uint8 {
	if c == nil {
		return 0
	}
	return c.Read()
}

func (b *Bus) readCartridge(addr uint16) uint8 {
	if b.cart == nil {
		glog.Errorf("bus: read at %#04x with no cartridge attached", addr)
		return 0
	}
	return b.cart.ReadPRG(addr)
}

// Write services a CPU-side memory write per spec.md §4.E's decode
// table, including the OAM DMA EXPANSION at $4014.
func (b *Bus) Write(addr uint16, val uint8) {
	switch {
	case addr <= 0x1FFF:
		b.ram[addr&0x07FF] = val
	case addr <= 0x3FFF:
		b.ppu.WriteRegister(addr&0x2007, val)
	case addr == 0x4014:
		b.oamDMA(val)
	case addr == 0x4016:
		b.writeController(val)
	case addr == 0x4017:
		glog.V(2).Infof("bus: write to stubbed APU frame-counter register %#04x", addr)
	case addr <= 0x401F:
		glog.V(2).Infof("bus: write to stubbed APU/test register %#04x ignored", addr)
	case addr >= 0x4020:
		b.writeCartridge(addr, val)
	default:
		glog.Errorf("bus: unroutable write at %#04x", addr)
	}
}

// writeController latches the strobe bit into both controller ports,
// matching real hardware wiring ($4016 writes go to both pads; only
// $4016/$4017 reads are per-pad).
func (b *Bus) writeController(val uint8) {
	if b.pad1 != nil {
		b.pad1.Write(val)
	}
	if b.pad2 != nil {
		b.pad2.Write(val)
	}
}

func (b *Bus) writeCartridge(addr uint16, val uint8) {
	if b.cart == nil {
		glog.Errorf("bus: write at %#04x with no cartridge attached", addr)
		return
	}
	b.cart.WritePRG(addr, val)
}

// oamDMA implements the $4014 EXPANSION: copy one 256-byte CPU page
// into PPU OAM and stall the CPU for 513 cycles (514 if the current
// CPU cycle count is odd), per SPEC_FULL.md §4.E.
//
// Grounded on _examples/bdwalton-gintendo/console/bus.go's OAMDMA
// handling, corrected to the documented 513/514-cycle cost rather
// than the teacher's un-costed byte copy.
func (b *Bus) oamDMA(page uint8) {
	base := uint16(page) << 8
	for i := 0; i < 256; i++ {
		val := b.Read(base + uint16(i))
		b.ppu.WriteOAMByte(uint8(i), val)
	}

	cycles := 513
	if b.cpu.Cycles()%2 == 1 {
		cycles = 514
	}
	b.cpu.Stall(cycles)
}
