// Package cartridge parses iNES-format ROM images and owns the
// loaded PRG/CHR banks plus the mapper that translates addresses into
// them.
//
// Grounded on _examples/bdwalton-gintendo/nesrom/{nesrom,header}.go
// for the header layout and load sequence, cross-checked against
// _examples/original_source/src/cartridge.cpp for field-by-field
// semantics (mapper-id composition, trainer skip, mirroring/TV-system
// derivation).
package cartridge

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/golang/glog"

	"github.com/caseyscarborough/nes/mapper"
)

const (
	headerSize  = 16
	trainerSize = 512
	prgBankSize = 16 * 1024
	chrBankSize = 8 * 1024
)

var inesMagic = [4]byte{'N', 'E', 'S', 0x1A}

// Mirroring identifies how the PPU's two physical nametables are
// mapped across the four logical nametable slots.
type Mirroring uint8

const (
	MirrorHorizontal Mirroring = iota
	MirrorVertical
	MirrorFourScreen
)

func (m Mirroring) String() string {
	switch m {
	case MirrorVertical:
		return "vertical"
	case MirrorFourScreen:
		return "four-screen"
	default:
		return "horizontal"
	}
}

// TVSystem identifies the broadcast standard the cartridge targets.
type TVSystem uint8

const (
	NTSC TVSystem = iota
	PAL
)

// INESRevision distinguishes the original iNES container format from
// its NES 2.0 successor (detected, but not fully decoded — NES 2.0's
// extended size fields are out of scope).
type INESRevision uint8

const (
	INES1 INESRevision = iota + 1
	INES2
)

// Header holds the metadata parsed from a ROM's 16-byte iNES header.
type Header struct {
	PRGBanks   uint8 // 16 KiB units
	CHRBanks   uint8 // 8 KiB units
	MapperID   uint8
	Mirroring  Mirroring
	TVSystem   TVSystem
	Revision   INESRevision
	hasTrainer bool
}

func parseHeader(raw [headerSize]byte) (Header, error) {
	if !bytes.Equal(raw[0:4], inesMagic[:]) {
		return Header{}, fmt.Errorf("cartridge: bad iNES magic %x", raw[0:4])
	}

	prgBanks := raw[4]
	if prgBanks == 0 {
		return Header{}, fmt.Errorf("cartridge: zero PRG bank count")
	}

	flags6 := raw[6]
	flags7 := raw[7]
	flags9 := raw[9]

	h := Header{
		PRGBanks:   prgBanks,
		CHRBanks:   raw[5],
		MapperID:   (flags6 >> 4) | (flags7 & 0xF0),
		hasTrainer: flags6&0x04 != 0,
	}

	switch {
	case flags6&0x08 != 0:
		h.Mirroring = MirrorFourScreen
	case flags6&0x01 != 0:
		h.Mirroring = MirrorVertical
	default:
		h.Mirroring = MirrorHorizontal
	}

	if flags9&0x01 != 0 {
		h.TVSystem = PAL
	} else {
		h.TVSystem = NTSC
	}

	if flags7&0x0C == 0x08 {
		h.Revision = INES2
	} else {
		h.Revision = INES1
	}

	return h, nil
}

// Cartridge owns the PRG/CHR ROM banks loaded from an iNES image and
// the mapper that translates CPU/PPU addresses into them.
type Cartridge struct {
	Header Header
	prg    []byte
	chr    []byte
	mapper mapper.Mapper
}

// Load opens path, parses its iNES header, and builds the cartridge's
// PRG/CHR banks and mapper. Any failure (open, short read, bad magic,
// zero PRG count, unsupported mapper) aborts the whole load.
func Load(path string) (*Cartridge, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cartridge: opening %q: %w", path, err)
	}
	defer f.Close()

	return load(f)
}

func load(r io.Reader) (*Cartridge, error) {
	var raw [headerSize]byte
	if _, err := io.ReadFull(r, raw[:]); err != nil {
		return nil, fmt.Errorf("cartridge: reading header: %w", err)
	}

	h, err := parseHeader(raw)
	if err != nil {
		return nil, err
	}

	if h.hasTrainer {
		var trainer [trainerSize]byte
		if _, err := io.ReadFull(r, trainer[:]); err != nil {
			return nil, fmt.Errorf("cartridge: reading trainer: %w", err)
		}
	}

	prg := make([]byte, int(h.PRGBanks)*prgBankSize)
	if _, err := io.ReadFull(r, prg); err != nil {
		return nil, fmt.Errorf("cartridge: reading %d PRG bank(s): %w", h.PRGBanks, err)
	}

	chr := make([]byte, int(h.CHRBanks)*chrBankSize)
	if h.CHRBanks > 0 {
		if _, err := io.ReadFull(r, chr); err != nil {
			return nil, fmt.Errorf("cartridge: reading %d CHR bank(s): %w", h.CHRBanks, err)
		}
	}

	m, err := mapper.New(h.MapperID, mapper.Geometry{PRGBanks: h.PRGBanks, CHRBanks: h.CHRBanks})
	if err != nil {
		return nil, fmt.Errorf("cartridge: %w", err)
	}

	glog.Infof("cartridge: loaded mapper %s, prg=%dx16KiB chr=%dx8KiB mirroring=%s tv=%v rev=%d",
		m.Name(), h.PRGBanks, h.CHRBanks, h.Mirroring, h.TVSystem, h.Revision)

	return &Cartridge{Header: h, prg: prg, chr: chr, mapper: m}, nil
}

// ReadPRG reads a byte through the mapper's PRG translation.
func (c *Cartridge) ReadPRG(addr uint16) uint8 {
	i := c.mapper.MapPRG(addr)
	if i == mapper.Unmapped || i >= len(c.prg) {
		glog.V(2).Infof("cartridge: unmapped PRG read at %#04x", addr)
		return 0
	}
	return c.prg[i]
}

// WritePRG writes through the mapper's PRG translation. PRG ROM is
// read-only for NROM; a write that lands there is logged and dropped.
func (c *Cartridge) WritePRG(addr uint16, val uint8) {
	if !c.mapper.PRGIsWritable(addr) {
		glog.Infof("cartridge: ignored write to read-only PRG at %#04x", addr)
		return
	}
	i := c.mapper.MapPRG(addr)
	if i == mapper.Unmapped || i >= len(c.prg) {
		return
	}
	c.prg[i] = val
}

// ReadCHR reads a byte through the mapper's CHR translation.
func (c *Cartridge) ReadCHR(addr uint16) uint8 {
	i := c.mapper.MapCHR(addr)
	if i == mapper.Unmapped || i >= len(c.chr) {
		glog.V(2).Infof("cartridge: unmapped CHR read at %#04x", addr)
		return 0
	}
	return c.chr[i]
}

// WriteCHR writes through the mapper's CHR translation; this is a
// no-op for cartridges whose CHR is ROM, but mapper variants with CHR
// RAM will route through it.
func (c *Cartridge) WriteCHR(addr uint16, val uint8) {
	i := c.mapper.MapCHR(addr)
	if i == mapper.Unmapped || i >= len(c.chr) {
		return
	}
	c.chr[i] = val
}

// MapperName reports the loaded mapper's human-readable name, for
// logging and the debugger.
func (c *Cartridge) MapperName() string {
	return c.mapper.Name()
}
