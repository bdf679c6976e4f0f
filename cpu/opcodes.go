package cpu

// descriptor is one entry of the 256-slot opcode table spec.md §9's
// "Opcode dispatch" design note calls for: an addressing mode and an
// operation, looked up by opcode byte. Unlike the note's suggestion of
// tagged enums switched on by the interpreter, this stores bound
// function values directly — Go has no virtual-call overhead to avoid
// by doing otherwise, and it keeps the table a flat, inspectable data
// structure (each entry's op is a plain top-level function, not a
// method bound to an instance).
type descriptor struct {
	name   string
	mode   AddressMode
	cycles uint8
	op     instrFunc
}

// opcodeTable is indexed by opcode byte. Every slot is populated (NOP
// by default), so decode never fails — spec.md §7: "Unimplemented
// opcode: impossible because every opcode byte has a descriptor."
//
// Grounded on _examples/bdwalton-gintendo/mos6502/mos6502.go's opcode
// map, converted to a dense array and corrected per §9's Open
// Question: the source's map had 0x82/0x83/0x87 each assigned twice
// while 0xB2/0xB3/0xB7 went unassigned. Neither trio corresponds to a
// real 6502 instruction (6502 has no LDA/LDX addressing form that
// lands there); the fix is simply that this table, being a true
// 256-slot array keyed by a unique index, cannot express a duplicate
// assignment — every legal opcode appears exactly once and every
// other slot is the NOP default.
var opcodeTable [256]descriptor

func init() {
	for i := range opcodeTable {
		opcodeTable[i] = descriptor{"NOP", ModeImplied, 2, opNOP}
	}

	set := func(op uint8, name string, mode AddressMode, cycles uint8, fn instrFunc) {
		opcodeTable[op] = descriptor{name, mode, cycles, fn}
	}

	// ADC
	set(0x69, "ADC", ModeImmediate, 2, opADC)
	set(0x65, "ADC", ModeZeroPage, 3, opADC)
	set(0x75, "ADC", ModeZeroPageX, 4, opADC)
	set(0x6D, "ADC", ModeAbsolute, 4, opADC)
	set(0x7D, "ADC", ModeAbsoluteX, 4, opADC)
	set(0x79, "ADC", ModeAbsoluteY, 4, opADC)
	set(0x61, "ADC", ModeIndirectX, 6, opADC)
	set(0x71, "ADC", ModeIndirectY, 5, opADC)

	// AND
	set(0x29, "AND", ModeImmediate, 2, opAND)
	set(0x25, "AND", ModeZeroPage, 3, opAND)
	set(0x35, "AND", ModeZeroPageX, 4, opAND)
	set(0x2D, "AND", ModeAbsolute, 4, opAND)
	set(0x3D, "AND", ModeAbsoluteX, 4, opAND)
	set(0x39, "AND", ModeAbsoluteY, 4, opAND)
	set(0x21, "AND", ModeIndirectX, 6, opAND)
	set(0x31, "AND", ModeIndirectY, 5, opAND)

	// ASL
	set(0x0A, "ASL", ModeAccumulator, 2, opASL)
	set(0x06, "ASL", ModeZeroPage, 5, opASL)
	set(0x16, "ASL", ModeZeroPageX, 6, opASL)
	set(0x0E, "ASL", ModeAbsolute, 6, opASL)
	set(0x1E, "ASL", ModeAbsoluteX, 7, opASL)

	// Branches
	set(0x90, "BCC", ModeRelative, 2, opBCC)
	set(0xB0, "BCS", ModeRelative, 2, opBCS)
	set(0xF0, "BEQ", ModeRelative, 2, opBEQ)
	set(0x30, "BMI", ModeRelative, 2, opBMI)
	set(0xD0, "BNE", ModeRelative, 2, opBNE)
	set(0x10, "BPL", ModeRelative, 2, opBPL)
	set(0x50, "BVC", ModeRelative, 2, opBVC)
	set(0x70, "BVS", ModeRelative, 2, opBVS)

	// BIT
	set(0x24, "BIT", ModeZeroPage, 3, opBIT)
	set(0x2C, "BIT", ModeAbsolute, 4, opBIT)

	// BRK
	set(0x00, "BRK", ModeImplied, 7, opBRK)

	// Flags
	set(0x18, "CLC", ModeImplied, 2, opCLC)
	set(0xD8, "CLD", ModeImplied, 2, opCLD)
	set(0x58, "CLI", ModeImplied, 2, opCLI)
	set(0xB8, "CLV", ModeImplied, 2, opCLV)
	set(0x38, "SEC", ModeImplied, 2, opSEC)
	set(0xF8, "SED", ModeImplied, 2, opSED)
	set(0x78, "SEI", ModeImplied, 2, opSEI)

	// CMP/CPX/CPY
	set(0xC9, "CMP", ModeImmediate, 2, opCMP)
	set(0xC5, "CMP", ModeZeroPage, 3, opCMP)
	set(0xD5, "CMP", ModeZeroPageX, 4, opCMP)
	set(0xCD, "CMP", ModeAbsolute, 4, opCMP)
	set(0xDD, "CMP", ModeAbsoluteX, 4, opCMP)
	set(0xD9, "CMP", ModeAbsoluteY, 4, opCMP)
	set(0xC1, "CMP", ModeIndirectX, 6, opCMP)
	set(0xD1, "CMP", ModeIndirectY, 5, opCMP)
	set(0xE0, "CPX", ModeImmediate, 2, opCPX)
	set(0xE4, "CPX", ModeZeroPage, 3, opCPX)
	set(0xEC, "CPX", ModeAbsolute, 4, opCPX)
	set(0xC0, "CPY", ModeImmediate, 2, opCPY)
	set(0xC4, "CPY", ModeZeroPage, 3, opCPY)
	set(0xCC, "CPY", ModeAbsolute, 4, opCPY)

	// DEC/DEX/DEY
	set(0xC6, "DEC", ModeZeroPage, 5, opDEC)
	set(0xD6, "DEC", ModeZeroPageX, 6, opDEC)
	set(0xCE, "DEC", ModeAbsolute, 6, opDEC)
	set(0xDE, "DEC", ModeAbsoluteX, 7, opDEC)
	set(0xCA, "DEX", ModeImplied, 2, opDEX)
	set(0x88, "DEY", ModeImplied, 2, opDEY)

	// EOR
	set(0x49, "EOR", ModeImmediate, 2, opEOR)
	set(0x45, "EOR", ModeZeroPage, 3, opEOR)
	set(0x55, "EOR", ModeZeroPageX, 4, opEOR)
	set(0x4D, "EOR", ModeAbsolute, 4, opEOR)
	set(0x5D, "EOR", ModeAbsoluteX, 4, opEOR)
	set(0x59, "EOR", ModeAbsoluteY, 4, opEOR)
	set(0x41, "EOR", ModeIndirectX, 6, opEOR)
	set(0x51, "EOR", ModeIndirectY, 5, opEOR)

	// INC/INX/INY
	set(0xE6, "INC", ModeZeroPage, 5, opINC)
	set(0xF6, "INC", ModeZeroPageX, 6, opINC)
	set(0xEE, "INC", ModeAbsolute, 6, opINC)
	set(0xFE, "INC", ModeAbsoluteX, 7, opINC)
	set(0xE8, "INX", ModeImplied, 2, opINX)
	set(0xC8, "INY", ModeImplied, 2, opINY)

	// JMP/JSR
	set(0x4C, "JMP", ModeAbsolute, 3, opJMP)
	set(0x6C, "JMP", ModeIndirect, 5, opJMP)
	set(0x20, "JSR", ModeAbsolute, 6, opJSR)

	// LDA/LDX/LDY
	set(0xA9, "LDA", ModeImmediate, 2, opLDA)
	set(0xA5, "LDA", ModeZeroPage, 3, opLDA)
	set(0xB5, "LDA", ModeZeroPageX, 4, opLDA)
	set(0xAD, "LDA", ModeAbsolute, 4, opLDA)
	set(0xBD, "LDA", ModeAbsoluteX, 4, opLDA)
	set(0xB9, "LDA", ModeAbsoluteY, 4, opLDA)
	set(0xA1, "LDA", ModeIndirectX, 6, opLDA)
	set(0xB1, "LDA", ModeIndirectY, 5, opLDA)
	set(0xA2, "LDX", ModeImmediate, 2, opLDX)
	set(0xA6, "LDX", ModeZeroPage, 3, opLDX)
	set(0xB6, "LDX", ModeZeroPageY, 4, opLDX)
	set(0xAE, "LDX", ModeAbsolute, 4, opLDX)
	set(0xBE, "LDX", ModeAbsoluteY, 4, opLDX)
	set(0xA0, "LDY", ModeImmediate, 2, opLDY)
	set(0xA4, "LDY", ModeZeroPage, 3, opLDY)
	set(0xB4, "LDY", ModeZeroPageX, 4, opLDY)
	set(0xAC, "LDY", ModeAbsolute, 4, opLDY)
	set(0xBC, "LDY", ModeAbsoluteX, 4, opLDY)

	// LSR
	set(0x4A, "LSR", ModeAccumulator, 2, opLSR)
	set(0x46, "LSR", ModeZeroPage, 5, opLSR)
	set(0x56, "LSR", ModeZeroPageX, 6, opLSR)
	set(0x4E, "LSR", ModeAbsolute, 6, opLSR)
	set(0x5E, "LSR", ModeAbsoluteX, 7, opLSR)

	// NOP (explicit; redundant with the default but documents intent)
	set(0xEA, "NOP", ModeImplied, 2, opNOP)

	// ORA
	set(0x09, "ORA", ModeImmediate, 2, opORA)
	set(0x05, "ORA", ModeZeroPage, 3, opORA)
	set(0x15, "ORA", ModeZeroPageX, 4, opORA)
	set(0x0D, "ORA", ModeAbsolute, 4, opORA)
	set(0x1D, "ORA", ModeAbsoluteX, 4, opORA)
	set(0x19, "ORA", ModeAbsoluteY, 4, opORA)
	set(0x01, "ORA", ModeIndirectX, 6, opORA)
	set(0x11, "ORA", ModeIndirectY, 5, opORA)

	// Stack
	set(0x48, "PHA", ModeImplied, 3, opPHA)
	set(0x08, "PHP", ModeImplied, 3, opPHP)
	set(0x68, "PLA", ModeImplied, 4, opPLA)
	set(0x28, "PLP", ModeImplied, 4, opPLP)

	// ROL/ROR
	set(0x2A, "ROL", ModeAccumulator, 2, opROL)
	set(0x26, "ROL", ModeZeroPage, 5, opROL)
	set(0x36, "ROL", ModeZeroPageX, 6, opROL)
	set(0x2E, "ROL", ModeAbsolute, 6, opROL)
	set(0x3E, "ROL", ModeAbsoluteX, 7, opROL)
	set(0x6A, "ROR", ModeAccumulator, 2, opROR)
	set(0x66, "ROR", ModeZeroPage, 5, opROR)
	set(0x76, "ROR", ModeZeroPageX, 6, opROR)
	set(0x6E, "ROR", ModeAbsolute, 6, opROR)
	set(0x7E, "ROR", ModeAbsoluteX, 7, opROR)

	// RTI/RTS
	set(0x40, "RTI", ModeImplied, 6, opRTI)
	set(0x60, "RTS", ModeImplied, 6, opRTS)

	// SBC
	set(0xE9, "SBC", ModeImmediate, 2, opSBC)
	set(0xE5, "SBC", ModeZeroPage, 3, opSBC)
	set(0xF5, "SBC", ModeZeroPageX, 4, opSBC)
	set(0xED, "SBC", ModeAbsolute, 4, opSBC)
	set(0xFD, "SBC", ModeAbsoluteX, 4, opSBC)
	set(0xF9, "SBC", ModeAbsoluteY, 4, opSBC)
	set(0xE1, "SBC", ModeIndirectX, 6, opSBC)
	set(0xF1, "SBC", ModeIndirectY, 5, opSBC)

	// STA/STX/STY
	set(0x85, "STA", ModeZeroPage, 3, opSTA)
	set(0x95, "STA", ModeZeroPageX, 4, opSTA)
	set(0x8D, "STA", ModeAbsolute, 4, opSTA)
	set(0x9D, "STA", ModeAbsoluteX, 5, opSTA)
	set(0x99, "STA", ModeAbsoluteY, 5, opSTA)
	set(0x81, "STA", ModeIndirectX, 6, opSTA)
	set(0x91, "STA", ModeIndirectY, 6, opSTA)
	set(0x86, "STX", ModeZeroPage, 3, opSTX)
	set(0x96, "STX", ModeZeroPageY, 4, opSTX)
	set(0x8E, "STX", ModeAbsolute, 4, opSTX)
	set(0x84, "STY", ModeZeroPage, 3, opSTY)
	set(0x94, "STY", ModeZeroPageX, 4, opSTY)
	set(0x8C, "STY", ModeAbsolute, 4, opSTY)

	// Transfers
	set(0xAA, "TAX", ModeImplied, 2, opTAX)
	set(0xA8, "TAY", ModeImplied, 2, opTAY)
	set(0xBA, "TSX", ModeImplied, 2, opTSX)
	set(0x8A, "TXA", ModeImplied, 2, opTXA)
	set(0x9A, "TXS", ModeImplied, 2, opTXS)
	set(0x98, "TYA", ModeImplied, 2, opTYA)
}
