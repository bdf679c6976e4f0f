package cpu

// AddressMode identifies one of the 6502's thirteen addressing modes.
type AddressMode uint8

const (
	ModeImplied AddressMode = iota
	ModeAccumulator
	ModeImmediate
	ModeZeroPage
	ModeZeroPageX
	ModeZeroPageY
	ModeAbsolute
	ModeAbsoluteX
	ModeAbsoluteY
	ModeIndirect
	ModeIndirectX
	ModeIndirectY
	ModeRelative
)

var addressModeNames = [...]string{
	ModeImplied:     "impl",
	ModeAccumulator: "acc",
	ModeImmediate:   "imm",
	ModeZeroPage:    "zp",
	ModeZeroPageX:   "zp,x",
	ModeZeroPageY:   "zp,y",
	ModeAbsolute:    "abs",
	ModeAbsoluteX:   "abs,x",
	ModeAbsoluteY:   "abs,y",
	ModeIndirect:    "ind",
	ModeIndirectX:   "ind,x",
	ModeIndirectY:   "ind,y",
	ModeRelative:    "rel",
}

func (m AddressMode) String() string { return addressModeNames[m] }

// addrFunc populates c.currentAddress (reading 0, 1, or 2 operand
// bytes from PC and advancing it accordingly) and may add an extra
// cycle for a crossed page boundary, per spec.md §4.F.
type addrFunc func(c *CPU)

var addrModeFuncs = [...]addrFunc{
	ModeImplied:     addrImplied,
	ModeAccumulator: addrImplied,
	ModeImmediate:   addrImmediate,
	ModeZeroPage:    addrZeroPage,
	ModeZeroPageX:   addrZeroPageX,
	ModeZeroPageY:   addrZeroPageY,
	ModeAbsolute:    addrAbsolute,
	ModeAbsoluteX:   addrAbsoluteX,
	ModeAbsoluteY:   addrAbsoluteY,
	ModeIndirect:    addrIndirect,
	ModeIndirectX:   addrIndirectX,
	ModeIndirectY:   addrIndirectY,
	ModeRelative:    addrRelative,
}

// addrImplied covers both Implied and Accumulator: neither reads an
// operand byte. Accumulator's "address" is never used — instructions
// route through loadOperand/storeOperand instead.
func addrImplied(c *CPU) {}

func addrImmediate(c *CPU) {
	c.currentAddress = c.PC
	c.PC++
}

func addrZeroPage(c *CPU) {
	c.currentAddress = uint16(c.read(c.PC))
	c.PC++
}

func addrZeroPageX(c *CPU) {
	c.currentAddress = uint16(c.read(c.PC) + c.X)
	c.PC++
}

// addrZeroPageY indexes by Y. spec.md §9 Open Question: the original
// mistakenly indexed ZeroPageY by X; LDX/STX's zero-page,Y forms are
// the only users of this mode and must index by Y.
func addrZeroPageY(c *CPU) {
	c.currentAddress = uint16(c.read(c.PC) + c.Y)
	c.PC++
}

func addrAbsolute(c *CPU) {
	c.currentAddress = c.read16(c.PC)
	c.PC += 2
}

func addrAbsoluteX(c *CPU) {
	base := c.read16(c.PC)
	c.PC += 2
	addr := base + uint16(c.X)
	if pageCross(base, addr) {
		c.remainingCycles++
	}
	c.currentAddress = addr
}

func addrAbsoluteY(c *CPU) {
	base := c.read16(c.PC)
	c.PC += 2
	addr := base + uint16(c.Y)
	if pageCross(base, addr) {
		c.remainingCycles++
	}
	c.currentAddress = addr
}

// addrIndirect implements JMP ($nnnn): fetch a two-byte pointer from
// the absolute address at PC..PC+1 (§9 Open Question: the original
// read the pointer from PC directly rather than via an absolute-mode
// fetch), then dereference it with the page-wrap hardware bug — if
// the pointer's low byte is 0xFF, the high byte is fetched from the
// same page rather than the next.
func addrIndirect(c *CPU) {
	ptr := c.read16(c.PC)
	c.PC += 2

	lo := uint16(c.read(ptr))
	var hiAddr uint16
	if ptr&0x00FF == 0x00FF {
		hiAddr = ptr & 0xFF00
	} else {
		hiAddr = ptr + 1
	}
	hi := uint16(c.read(hiAddr))
	c.currentAddress = hi<<8 | lo
}

// addrIndirectX is pre-indexed: fetch a one-byte operand, add X with
// zero-page wrap, then read a two-byte pointer from zero page (each
// byte individually wrapped within page 0).
func addrIndirectX(c *CPU) {
	operand := c.read(c.PC)
	c.PC++
	ptr := operand + c.X
	lo := uint16(c.read(uint16(ptr)))
	hi := uint16(c.read(uint16(ptr + 1)))
	c.currentAddress = hi<<8 | lo
}

// addrIndirectY is post-indexed: fetch a one-byte zero-page pointer,
// read a two-byte pointer from it, then add Y; +1 cycle if the
// addition crosses a page.
func addrIndirectY(c *CPU) {
	operand := c.read(c.PC)
	c.PC++
	lo := uint16(c.read(uint16(operand)))
	hi := uint16(c.read(uint16(operand + 1)))
	base := hi<<8 | lo
	addr := base + uint16(c.Y)
	if pageCross(base, addr) {
		c.remainingCycles++
	}
	c.currentAddress = addr
}

// addrRelative reads a signed operand byte and resolves the target
// address relative to the PC *after* consuming that byte (§9 Open
// Question: the original added the raw, un-sign-extended byte).
func addrRelative(c *CPU) {
	offset := int8(c.read(c.PC))
	c.PC++
	c.currentAddress = uint16(int32(c.PC) + int32(offset))
}
