// Package ppu implements the NES PPU's CPU-facing register slice: the
// eight memory-mapped registers at $2000-$2007 and the internal
// "loopy" v/t scroll/address latches. Dot-by-dot rendering is out of
// scope — see spec.md §4.D.
//
// Grounded on _examples/bdwalton-gintendo/ppu/{register,loopy,oam}.go
// for the register/latch shapes, reimplemented over bitfield.Register
// per SPEC_FULL.md §3's generic-register note, and cross-checked
// against _examples/original_source/src/registers/loopy.h for the
// exact v/t field layout.
package ppu

import "github.com/caseyscarborough/nes/bitfield"

// Control is PPUCTRL ($2000), write-only from the CPU's perspective.
type Control struct {
	bitfield.Register[uint8]
}

const (
	ctrlNametableX     uint8 = 1 << 0
	ctrlNametableY     uint8 = 1 << 1
	ctrlIncrementMode  uint8 = 1 << 2
	ctrlSpritePattern  uint8 = 1 << 3
	ctrlBGPattern      uint8 = 1 << 4
	ctrlSpriteSize     uint8 = 1 << 5
	ctrlMasterSlave    uint8 = 1 << 6
	ctrlGenerateNMI    uint8 = 1 << 7
)

// VRAMIncrement reports the per-PPUDATA-access address step: 1 when
// IncrementMode is clear, 32 when set.
func (c *Control) VRAMIncrement() uint16 {
	if c.IsSet(ctrlIncrementMode) {
		return 32
	}
	return 1
}

func (c *Control) NMIEnabled() bool { return c.IsSet(ctrlGenerateNMI) }

// Mask is PPUMASK ($2001), write-only.
type Mask struct {
	bitfield.Register[uint8]
}

const (
	maskGreyscale     uint8 = 1 << 0
	maskShowBGLeft    uint8 = 1 << 1
	maskShowSpriteLeft uint8 = 1 << 2
	maskShowBG        uint8 = 1 << 3
	maskShowSprites   uint8 = 1 << 4
)

func (m *Mask) RenderingEnabled() bool {
	return m.IsSet(maskShowBG) || m.IsSet(maskShowSprites)
}

// Status is PPUSTATUS ($2002), read-only from the CPU's perspective.
type Status struct {
	bitfield.Register[uint8]
}

const (
	statusSpriteOverflow uint8 = 1 << 5
	statusSprite0Hit     uint8 = 1 << 6
	statusVBlank         uint8 = 1 << 7
)

// Loopy is the 15-bit v/t scroll/address register described by
// spec.md §9: yyy NN YYYYY XXXXX (fine Y, nametable select, coarse Y,
// coarse X).
type Loopy struct {
	bitfield.Register[uint16]
}

const (
	loopyCoarseX uint16 = 0x001F
	loopyCoarseY uint16 = 0x03E0
	loopyNametable uint16 = 0x0C00
	loopyFineY   uint16 = 0x7000
)

func (l *Loopy) CoarseX() uint16     { return l.Field(loopyCoarseX) }
func (l *Loopy) SetCoarseX(v uint16) { l.SetField(loopyCoarseX, v) }
func (l *Loopy) CoarseY() uint16     { return l.Field(loopyCoarseY) }
func (l *Loopy) SetCoarseY(v uint16) { l.SetField(loopyCoarseY, v) }
func (l *Loopy) Nametable() uint16     { return l.Field(loopyNametable) }
func (l *Loopy) SetNametable(v uint16) { l.SetField(loopyNametable, v) }
func (l *Loopy) FineY() uint16     { return l.Field(loopyFineY) }
func (l *Loopy) SetFineY(v uint16) { l.SetField(loopyFineY, v) }
