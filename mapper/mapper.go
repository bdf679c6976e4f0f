// Package mapper implements the cartridge address-translation variants
// referenced numerically by iNES ROM headers.
//
// Grounded on _examples/bdwalton-gintendo/mappers/mapper_basics.go's
// registry pattern (RegisterMapper/Get, keyed by mapper id) and
// _examples/original_source/src/mappers/mapper.h's two-pure-function
// contract (map_prg/map_chr), per §9's "Mapper polymorphism" design
// note: a tagged variant per mapper id rather than an abstract base.
package mapper

import "fmt"

// Unmapped is returned by Map{PRG,CHR} when the address should be
// ignored rather than translated (e.g. a write into ROM space).
const Unmapped = -1

// Mapper translates cartridge-space addresses into indices within the
// cartridge's PRG/CHR byte sequences.
type Mapper interface {
	// ID is the iNES mapper number this variant implements.
	ID() uint8
	// Name is a short human-readable label, used in logs and the
	// debugger.
	Name() string
	// MapPRG translates a CPU address in 0x4020..0xFFFF into a PRG
	// ROM index, or Unmapped.
	MapPRG(addr uint16) int
	// MapCHR translates a PPU address in 0x0000..0x1FFF into a CHR
	// index, or Unmapped.
	MapCHR(addr uint16) int
	// PRGIsWritable reports whether MapPRG's target may be written
	// (true only for mappers with PRG-RAM backed banking).
	PRGIsWritable(addr uint16) bool
}

// Geometry describes a cartridge's bank counts in the mapper's native
// units (16 KiB for PRG, 8 KiB for CHR); mappers that bank-switch need
// these to compute MapPRG/MapCHR.
type Geometry struct {
	PRGBanks uint8
	CHRBanks uint8
}

// constructor builds a Mapper for a cartridge of the given geometry.
type constructor func(Geometry) (Mapper, error)

var registry = map[uint8]constructor{}

// register associates a mapper id with its constructor. Called from
// each mapper variant's init().
func register(id uint8, ctor constructor) {
	if _, exists := registry[id]; exists {
		panic(fmt.Sprintf("mapper: id %d registered twice", id))
	}
	registry[id] = ctor
}

// New builds the Mapper for the given iNES mapper id and cartridge
// geometry, or reports an error if the id has no registered
// implementation.
func New(id uint8, geom Geometry) (Mapper, error) {
	ctor, ok := registry[id]
	if !ok {
		return nil, fmt.Errorf("mapper: unsupported mapper id %d", id)
	}
	return ctor(geom)
}
