package ppu

import "github.com/golang/glog"

const (
	oamSize = 256

	regCtrl    = 0x2000
	regMask    = 0x2001
	regStatus  = 0x2002
	regOAMAddr = 0x2003
	regOAMData = 0x2004
	regScroll  = 0x2005
	regAddr    = 0x2006
	regData    = 0x2007
)

// CHR is the cartridge-side collaborator a PPU reads pattern/palette
// data through. Rendering itself is out of scope (spec.md §4.D); this
// interface exists only so PPUDATA's buffered-read side effect has
// somewhere to pull bytes from.
type CHR interface {
	ReadCHR(addr uint16) uint8
	WriteCHR(addr uint16, val uint8)
}

// PPU implements the eight CPU-facing registers at $2000-$2007 and the
// loopy v/t scroll/address latch. Dot-by-dot rendering is stubbed, per
// spec.md §4.D: "Rendering ... is intentionally unspecified."
//
// Grounded on _examples/bdwalton-gintendo/ppu/ppu.go's WriteReg/ReadReg
// dispatch and internal-register set, reimplemented over the named
// Control/Mask/Status/Loopy wrappers in registers.go.
type PPU struct {
	chr CHR

	ctrl   Control
	mask   Mask
	status Status

	v, t        Loopy
	fineX       uint8
	writeToggle bool

	oamAddr uint8
	oam     [oamSize]uint8

	dataBuffer uint8
	busLatch   uint8 // last byte written to any register; stands in for open bus

	vram    [2048]uint8
	palette [32]uint8
}

// New builds a PPU wired to chr for CHR-space reads/writes. chr may be
// nil until a cartridge is attached; reads before that return 0.
func New(chr CHR) *PPU {
	return &PPU{chr: chr}
}

// AttachCartridge rewires the PPU's CHR-space collaborator, e.g. after
// loading a new cartridge.
func (p *PPU) AttachCartridge(chr CHR) {
	p.chr = chr
}

// Reset clears the write toggle; all other PPU state is left as-is,
// matching spec.md §4.D: "leave other PPU state unspecified."
func (p *PPU) Reset() {
	p.writeToggle = false
}

// ReadRegister services a CPU read of the PPU register window
// ($2000-$3FFF, mirrored every 8 bytes per spec.md §4.D).
func (p *PPU) ReadRegister(addr uint16) uint8 {
	switch addr & 0x2007 {
	case regStatus:
		result := (p.status.Value() & 0xE0) | (p.busLatch & 0x1F)
		p.status.Clear(statusVBlank)
		p.writeToggle = false
		return result
	case regOAMData:
		return p.oam[p.oamAddr]
	case regData:
		return p.readData()
	default:
		glog.V(2).Infof("ppu: read from write-only register %#04x returns open bus", addr)
		return 0
	}
}

func (p *PPU) readData() uint8 {
	addr := p.v.Value()
	var result uint8

	if addr >= 0x3F00 {
		result = p.readVRAM(addr)
		p.dataBuffer = p.readVRAM(addr - 0x1000)
	} else {
		result = p.dataBuffer
		p.dataBuffer = p.readVRAM(addr)
	}

	p.v.SetValue(addr + p.ctrl.VRAMIncrement())
	return result
}

// WriteRegister services a CPU write of the PPU register window.
func (p *PPU) WriteRegister(addr uint16, val uint8) {
	p.busLatch = val
	switch addr & 0x2007 {
	case regCtrl:
		p.ctrl.SetValue(val)
		p.t.SetNametable(uint16(val & 0x03))
	case regMask:
		p.mask.SetValue(val)
	case regOAMAddr:
		p.oamAddr = val
	case regOAMData:
		p.oam[p.oamAddr] = val
		p.oamAddr++
	case regScroll:
		p.writeScroll(val)
	case regAddr:
		p.writeAddr(val)
	case regData:
		p.writeData(val)
	default:
		glog.V(2).Infof("ppu: write to read-only register %#04x ignored", addr)
	}
}

func (p *PPU) writeScroll(val uint8) {
	if !p.writeToggle {
		p.fineX = val & 0x07
		p.t.SetCoarseX(uint16(val) >> 3)
	} else {
		p.t.SetFineY(uint16(val) & 0x07)
		p.t.SetCoarseY(uint16(val) >> 3)
	}
	p.writeToggle = !p.writeToggle
}

func (p *PPU) writeAddr(val uint8) {
	if !p.writeToggle {
		p.t.SetValue((p.t.Value() & 0x00FF) | (uint16(val&0x3F) << 8))
	} else {
		p.t.SetValue((p.t.Value() & 0xFF00) | uint16(val))
		p.v.SetValue(p.t.Value())
	}
	p.writeToggle = !p.writeToggle
}

func (p *PPU) writeData(val uint8) {
	addr := p.v.Value()
	p.writeVRAM(addr, val)
	p.v.SetValue(addr + p.ctrl.VRAMIncrement())
}

func (p *PPU) readVRAM(addr uint16) uint8 {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		if p.chr == nil {
			return 0
		}
		return p.chr.ReadCHR(addr)
	case addr < 0x3F00:
		return p.vram[p.mirror(addr)]
	default:
		return p.palette[paletteIndex(addr)]
	}
}

func (p *PPU) writeVRAM(addr uint16, val uint8) {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		if p.chr != nil {
			p.chr.WriteCHR(addr, val)
		}
	case addr < 0x3F00:
		p.vram[p.mirror(addr)] = val
	default:
		p.palette[paletteIndex(addr)] = val
	}
}

// mirror folds a $2000-$2FFF nametable address into the PPU's 2 KiB of
// internal VRAM; mirroring mode (horizontal/vertical/four-screen) is a
// cartridge property out of scope for the CPU-facing register slice,
// so this uses a flat mod-2048 fold.
func (p *PPU) mirror(addr uint16) uint16 {
	return (addr - 0x2000) % 2048
}

// paletteIndex folds $3F00-$3FFF into the 32-entry palette RAM,
// mirroring the backdrop-color addresses ($3F10/$14/$18/$1C alias
// $3F00/$04/$08/$0C).
func paletteIndex(addr uint16) uint16 {
	i := (addr - 0x3F00) % 32
	if i >= 16 && i%4 == 0 {
		i -= 16
	}
	return i
}

// TriggerVBlank sets the vblank status bit and reports whether NMI
// generation is currently enabled, so the bus can raise the CPU's NMI
// line. Called by the driver once per frame; dot-by-dot scanline
// timing is out of scope.
func (p *PPU) TriggerVBlank() bool {
	p.status.Set(statusVBlank)
	return p.ctrl.NMIEnabled()
}

// WriteOAMByte writes a single byte into OAM at the given index; used
// by the bus's OAM DMA ($4014) handler.
func (p *PPU) WriteOAMByte(index uint8, val uint8) {
	p.oam[index] = val
}

// Sprites decodes the 64 OAM entries for debugger display.
func (p *PPU) Sprites() [64]Sprite {
	var out [64]Sprite
	for i := range out {
		out[i] = OAMFromBytes(p.oam[i*4 : i*4+4])
	}
	return out
}
