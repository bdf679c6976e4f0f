package cpu

import "github.com/caseyscarborough/nes/bitfield"

// Status is the 6502 processor status register P, reusing the same
// generic bit-field register as the PPU's control/mask/loopy
// registers (SPEC_FULL.md §3's generic-register note).
type Status struct {
	bitfield.Register[uint8]
}

const (
	FlagCarry            uint8 = 1 << 0
	FlagZero             uint8 = 1 << 1
	FlagInterruptDisable uint8 = 1 << 2
	FlagDecimal          uint8 = 1 << 3
	FlagBreak            uint8 = 1 << 4
	FlagUnused           uint8 = 1 << 5
	FlagOverflow         uint8 = 1 << 6
	FlagNegative         uint8 = 1 << 7
)

// setNZ updates Zero and Negative from v, the idiom every load,
// transfer, and increment/decrement instruction shares.
func (s *Status) setNZ(v uint8) {
	s.SetIf(FlagZero, v == 0)
	s.SetIf(FlagNegative, v&0x80 != 0)
}
