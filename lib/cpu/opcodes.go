package cpu

// Addressing modes. ModeInvalid is zero so an uninitialised entry is
// caught by the validity test.
const (
	ModeInvalid = iota
	ModeZeroPage
	ModeIndexedZeroPageX
	ModeIndexedZeroPageY
	ModeAbsolute
	ModeIndexedAbsoluteX
	ModeIndexedAbsoluteY
	ModeIndirect
	ModeImplied
	ModeAccumulator
	ModeImmediate
	ModeRelative
	ModeIndexedIndirectX
	ModeIndirectIndexedY
)

// Instruction is the static description of an opcode: mnemonic, operand
// size, base cycle cost, the extra cost on a page cross and whether the
// opcode is an official one. The evaluators live on the Cpu since they
// need its state.
type Instruction struct {
	Name string

	Size       uint8
	Cycles     uint8
	PageCycles uint8
	Mode       uint8

	Legal bool
}

// OpTable describes all 256 opcodes, unofficial ones included. The jam
// opcodes are listed as KIL. Shared with the disassembler.
var OpTable = [256]Instruction{
	0x00: {"BRK", 1, 7, 0, ModeImplied, true},
	0x01: {"ORA", 2, 6, 0, ModeIndexedIndirectX, true},
	0x02: {"KIL", 1, 2, 0, ModeImplied, false},
	0x03: {"SLO", 2, 8, 0, ModeIndexedIndirectX, false},
	0x04: {"NOP", 2, 3, 0, ModeZeroPage, false},
	0x05: {"ORA", 2, 3, 0, ModeZeroPage, true},
	0x06: {"ASL", 2, 5, 0, ModeZeroPage, true},
	0x07: {"SLO", 2, 5, 0, ModeZeroPage, false},
	0x08: {"PHP", 1, 3, 0, ModeImplied, true},
	0x09: {"ORA", 2, 2, 0, ModeImmediate, true},
	0x0A: {"ASL", 1, 2, 0, ModeAccumulator, true},
	0x0B: {"ANC", 2, 2, 0, ModeImmediate, false},
	0x0C: {"NOP", 3, 4, 0, ModeAbsolute, false},
	0x0D: {"ORA", 3, 4, 0, ModeAbsolute, true},
	0x0E: {"ASL", 3, 6, 0, ModeAbsolute, true},
	0x0F: {"SLO", 3, 6, 0, ModeAbsolute, false},
	0x10: {"BPL", 2, 2, 0, ModeRelative, true},
	0x11: {"ORA", 2, 5, 1, ModeIndirectIndexedY, true},
	0x12: {"KIL", 1, 2, 0, ModeImplied, false},
	0x13: {"SLO", 2, 8, 0, ModeIndirectIndexedY, false},
	0x14: {"NOP", 2, 4, 0, ModeIndexedZeroPageX, false},
	0x15: {"ORA", 2, 4, 0, ModeIndexedZeroPageX, true},
	0x16: {"ASL", 2, 6, 0, ModeIndexedZeroPageX, true},
	0x17: {"SLO", 2, 6, 0, ModeIndexedZeroPageX, false},
	0x18: {"CLC", 1, 2, 0, ModeImplied, true},
	0x19: {"ORA", 3, 4, 1, ModeIndexedAbsoluteY, true},
	0x1A: {"NOP", 1, 2, 0, ModeImplied, false},
	0x1B: {"SLO", 3, 7, 0, ModeIndexedAbsoluteY, false},
	0x1C: {"NOP", 3, 4, 1, ModeIndexedAbsoluteX, false},
	0x1D: {"ORA", 3, 4, 1, ModeIndexedAbsoluteX, true},
	0x1E: {"ASL", 3, 7, 0, ModeIndexedAbsoluteX, true},
	0x1F: {"SLO", 3, 7, 0, ModeIndexedAbsoluteX, false},
	0x20: {"JSR", 3, 6, 0, ModeAbsolute, true},
	0x21: {"AND", 2, 6, 0, ModeIndexedIndirectX, true},
	0x22: {"KIL", 1, 2, 0, ModeImplied, false},
	0x23: {"RLA", 2, 8, 0, ModeIndexedIndirectX, false},
	0x24: {"BIT", 2, 3, 0, ModeZeroPage, true},
	0x25: {"AND", 2, 3, 0, ModeZeroPage, true},
	0x26: {"ROL", 2, 5, 0, ModeZeroPage, true},
	0x27: {"RLA", 2, 5, 0, ModeZeroPage, false},
	0x28: {"PLP", 1, 4, 0, ModeImplied, true},
	0x29: {"AND", 2, 2, 0, ModeImmediate, true},
	0x2A: {"ROL", 1, 2, 0, ModeAccumulator, true},
	0x2B: {"ANC", 2, 2, 0, ModeImmediate, false},
	0x2C: {"BIT", 3, 4, 0, ModeAbsolute, true},
	0x2D: {"AND", 3, 4, 0, ModeAbsolute, true},
	0x2E: {"ROL", 3, 6, 0, ModeAbsolute, true},
	0x2F: {"RLA", 3, 6, 0, ModeAbsolute, false},
	0x30: {"BMI", 2, 2, 0, ModeRelative, true},
	0x31: {"AND", 2, 5, 1, ModeIndirectIndexedY, true},
	0x32: {"KIL", 1, 2, 0, ModeImplied, false},
	0x33: {"RLA", 2, 8, 0, ModeIndirectIndexedY, false},
	0x34: {"NOP", 2, 4, 0, ModeIndexedZeroPageX, false},
	0x35: {"AND", 2, 4, 0, ModeIndexedZeroPageX, true},
	0x36: {"ROL", 2, 6, 0, ModeIndexedZeroPageX, true},
	0x37: {"RLA", 2, 6, 0, ModeIndexedZeroPageX, false},
	0x38: {"SEC", 1, 2, 0, ModeImplied, true},
	0x39: {"AND", 3, 4, 1, ModeIndexedAbsoluteY, true},
	0x3A: {"NOP", 1, 2, 0, ModeImplied, false},
	0x3B: {"RLA", 3, 7, 0, ModeIndexedAbsoluteY, false},
	0x3C: {"NOP", 3, 4, 1, ModeIndexedAbsoluteX, false},
	0x3D: {"AND", 3, 4, 1, ModeIndexedAbsoluteX, true},
	0x3E: {"ROL", 3, 7, 0, ModeIndexedAbsoluteX, true},
	0x3F: {"RLA", 3, 7, 0, ModeIndexedAbsoluteX, false},
	0x40: {"RTI", 1, 6, 0, ModeImplied, true},
	0x41: {"EOR", 2, 6, 0, ModeIndexedIndirectX, true},
	0x42: {"KIL", 1, 2, 0, ModeImplied, false},
	0x43: {"SRE", 2, 8, 0, ModeIndexedIndirectX, false},
	0x44: {"NOP", 2, 3, 0, ModeZeroPage, false},
	0x45: {"EOR", 2, 3, 0, ModeZeroPage, true},
	0x46: {"LSR", 2, 5, 0, ModeZeroPage, true},
	0x47: {"SRE", 2, 5, 0, ModeZeroPage, false},
	0x48: {"PHA", 1, 3, 0, ModeImplied, true},
	0x49: {"EOR", 2, 2, 0, ModeImmediate, true},
	0x4A: {"LSR", 1, 2, 0, ModeAccumulator, true},
	0x4B: {"ALR", 2, 2, 0, ModeImmediate, false},
	0x4C: {"JMP", 3, 3, 0, ModeAbsolute, true},
	0x4D: {"EOR", 3, 4, 0, ModeAbsolute, true},
	0x4E: {"LSR", 3, 6, 0, ModeAbsolute, true},
	0x4F: {"SRE", 3, 6, 0, ModeAbsolute, false},
	0x50: {"BVC", 2, 2, 0, ModeRelative, true},
	0x51: {"EOR", 2, 5, 1, ModeIndirectIndexedY, true},
	0x52: {"KIL", 1, 2, 0, ModeImplied, false},
	0x53: {"SRE", 2, 8, 0, ModeIndirectIndexedY, false},
	0x54: {"NOP", 2, 4, 0, ModeIndexedZeroPageX, false},
	0x55: {"EOR", 2, 4, 0, ModeIndexedZeroPageX, true},
	0x56: {"LSR", 2, 6, 0, ModeIndexedZeroPageX, true},
	0x57: {"SRE", 2, 6, 0, ModeIndexedZeroPageX, false},
	0x58: {"CLI", 1, 2, 0, ModeImplied, true},
	0x59: {"EOR", 3, 4, 1, ModeIndexedAbsoluteY, true},
	0x5A: {"NOP", 1, 2, 0, ModeImplied, false},
	0x5B: {"SRE", 3, 7, 0, ModeIndexedAbsoluteY, false},
	0x5C: {"NOP", 3, 4, 1, ModeIndexedAbsoluteX, false},
	0x5D: {"EOR", 3, 4, 1, ModeIndexedAbsoluteX, true},
	0x5E: {"LSR", 3, 7, 0, ModeIndexedAbsoluteX, true},
	0x5F: {"SRE", 3, 7, 0, ModeIndexedAbsoluteX, false},
	0x60: {"RTS", 1, 6, 0, ModeImplied, true},
	0x61: {"ADC", 2, 6, 0, ModeIndexedIndirectX, true},
	0x62: {"KIL", 1, 2, 0, ModeImplied, false},
	0x63: {"RRA", 2, 8, 0, ModeIndexedIndirectX, false},
	0x64: {"NOP", 2, 3, 0, ModeZeroPage, false},
	0x65: {"ADC", 2, 3, 0, ModeZeroPage, true},
	0x66: {"ROR", 2, 5, 0, ModeZeroPage, true},
	0x67: {"RRA", 2, 5, 0, ModeZeroPage, false},
	0x68: {"PLA", 1, 4, 0, ModeImplied, true},
	0x69: {"ADC", 2, 2, 0, ModeImmediate, true},
	0x6A: {"ROR", 1, 2, 0, ModeAccumulator, true},
	0x6B: {"ARR", 2, 2, 0, ModeImmediate, false},
	0x6C: {"JMP", 3, 5, 0, ModeIndirect, true},
	0x6D: {"ADC", 3, 4, 0, ModeAbsolute, true},
	0x6E: {"ROR", 3, 6, 0, ModeAbsolute, true},
	0x6F: {"RRA", 3, 6, 0, ModeAbsolute, false},
	0x70: {"BVS", 2, 2, 0, ModeRelative, true},
	0x71: {"ADC", 2, 5, 1, ModeIndirectIndexedY, true},
	0x72: {"KIL", 1, 2, 0, ModeImplied, false},
	0x73: {"RRA", 2, 8, 0, ModeIndirectIndexedY, false},
	0x74: {"NOP", 2, 4, 0, ModeIndexedZeroPageX, false},
	0x75: {"ADC", 2, 4, 0, ModeIndexedZeroPageX, true},
	0x76: {"ROR", 2, 6, 0, ModeIndexedZeroPageX, true},
	0x77: {"RRA", 2, 6, 0, ModeIndexedZeroPageX, false},
	0x78: {"SEI", 1, 2, 0, ModeImplied, true},
	0x79: {"ADC", 3, 4, 1, ModeIndexedAbsoluteY, true},
	0x7A: {"NOP", 1, 2, 0, ModeImplied, false},
	0x7B: {"RRA", 3, 7, 0, ModeIndexedAbsoluteY, false},
	0x7C: {"NOP", 3, 4, 1, ModeIndexedAbsoluteX, false},
	0x7D: {"ADC", 3, 4, 1, ModeIndexedAbsoluteX, true},
	0x7E: {"ROR", 3, 7, 0, ModeIndexedAbsoluteX, true},
	0x7F: {"RRA", 3, 7, 0, ModeIndexedAbsoluteX, false},
	0x80: {"NOP", 2, 2, 0, ModeImmediate, false},
	0x81: {"STA", 2, 6, 0, ModeIndexedIndirectX, true},
	0x82: {"NOP", 2, 2, 0, ModeImmediate, false},
	0x83: {"SAX", 2, 6, 0, ModeIndexedIndirectX, false},
	0x84: {"STY", 2, 3, 0, ModeZeroPage, true},
	0x85: {"STA", 2, 3, 0, ModeZeroPage, true},
	0x86: {"STX", 2, 3, 0, ModeZeroPage, true},
	0x87: {"SAX", 2, 3, 0, ModeZeroPage, false},
	0x88: {"DEY", 1, 2, 0, ModeImplied, true},
	0x89: {"NOP", 2, 2, 0, ModeImmediate, false},
	0x8A: {"TXA", 1, 2, 0, ModeImplied, true},
	0x8B: {"XAA", 2, 2, 0, ModeImmediate, false},
	0x8C: {"STY", 3, 4, 0, ModeAbsolute, true},
	0x8D: {"STA", 3, 4, 0, ModeAbsolute, true},
	0x8E: {"STX", 3, 4, 0, ModeAbsolute, true},
	0x8F: {"SAX", 3, 4, 0, ModeAbsolute, false},
	0x90: {"BCC", 2, 2, 0, ModeRelative, true},
	0x91: {"STA", 2, 6, 0, ModeIndirectIndexedY, true},
	0x92: {"KIL", 1, 2, 0, ModeImplied, false},
	0x93: {"AHX", 2, 6, 0, ModeIndirectIndexedY, false},
	0x94: {"STY", 2, 4, 0, ModeIndexedZeroPageX, true},
	0x95: {"STA", 2, 4, 0, ModeIndexedZeroPageX, true},
	0x96: {"STX", 2, 4, 0, ModeIndexedZeroPageY, true},
	0x97: {"SAX", 2, 4, 0, ModeIndexedZeroPageY, false},
	0x98: {"TYA", 1, 2, 0, ModeImplied, true},
	0x99: {"STA", 3, 5, 0, ModeIndexedAbsoluteY, true},
	0x9A: {"TXS", 1, 2, 0, ModeImplied, true},
	0x9B: {"TAS", 3, 5, 0, ModeIndexedAbsoluteY, false},
	0x9C: {"SHY", 3, 5, 0, ModeIndexedAbsoluteX, false},
	0x9D: {"STA", 3, 5, 0, ModeIndexedAbsoluteX, true},
	0x9E: {"SHX", 3, 5, 0, ModeIndexedAbsoluteY, false},
	0x9F: {"AHX", 3, 5, 0, ModeIndexedAbsoluteY, false},
	0xA0: {"LDY", 2, 2, 0, ModeImmediate, true},
	0xA1: {"LDA", 2, 6, 0, ModeIndexedIndirectX, true},
	0xA2: {"LDX", 2, 2, 0, ModeImmediate, true},
	0xA3: {"LAX", 2, 6, 0, ModeIndexedIndirectX, false},
	0xA4: {"LDY", 2, 3, 0, ModeZeroPage, true},
	0xA5: {"LDA", 2, 3, 0, ModeZeroPage, true},
	0xA6: {"LDX", 2, 3, 0, ModeZeroPage, true},
	0xA7: {"LAX", 2, 3, 0, ModeZeroPage, false},
	0xA8: {"TAY", 1, 2, 0, ModeImplied, true},
	0xA9: {"LDA", 2, 2, 0, ModeImmediate, true},
	0xAA: {"TAX", 1, 2, 0, ModeImplied, true},
	0xAB: {"LAX", 2, 2, 0, ModeImmediate, false},
	0xAC: {"LDY", 3, 4, 0, ModeAbsolute, true},
	0xAD: {"LDA", 3, 4, 0, ModeAbsolute, true},
	0xAE: {"LDX", 3, 4, 0, ModeAbsolute, true},
	0xAF: {"LAX", 3, 4, 0, ModeAbsolute, false},
	0xB0: {"BCS", 2, 2, 0, ModeRelative, true},
	0xB1: {"LDA", 2, 5, 1, ModeIndirectIndexedY, true},
	0xB2: {"KIL", 1, 2, 0, ModeImplied, false},
	0xB3: {"LAX", 2, 5, 1, ModeIndirectIndexedY, false},
	0xB4: {"LDY", 2, 4, 0, ModeIndexedZeroPageX, true},
	0xB5: {"LDA", 2, 4, 0, ModeIndexedZeroPageX, true},
	0xB6: {"LDX", 2, 4, 0, ModeIndexedZeroPageY, true},
	0xB7: {"LAX", 2, 4, 0, ModeIndexedZeroPageY, false},
	0xB8: {"CLV", 1, 2, 0, ModeImplied, true},
	0xB9: {"LDA", 3, 4, 1, ModeIndexedAbsoluteY, true},
	0xBA: {"TSX", 1, 2, 0, ModeImplied, true},
	0xBB: {"LAS", 3, 4, 1, ModeIndexedAbsoluteY, false},
	0xBC: {"LDY", 3, 4, 1, ModeIndexedAbsoluteX, true},
	0xBD: {"LDA", 3, 4, 1, ModeIndexedAbsoluteX, true},
	0xBE: {"LDX", 3, 4, 1, ModeIndexedAbsoluteY, true},
	0xBF: {"LAX", 3, 4, 1, ModeIndexedAbsoluteY, false},
	0xC0: {"CPY", 2, 2, 0, ModeImmediate, true},
	0xC1: {"CMP", 2, 6, 0, ModeIndexedIndirectX, true},
	0xC2: {"NOP", 2, 2, 0, ModeImmediate, false},
	0xC3: {"DCP", 2, 8, 0, ModeIndexedIndirectX, false},
	0xC4: {"CPY", 2, 3, 0, ModeZeroPage, true},
	0xC5: {"CMP", 2, 3, 0, ModeZeroPage, true},
	0xC6: {"DEC", 2, 5, 0, ModeZeroPage, true},
	0xC7: {"DCP", 2, 5, 0, ModeZeroPage, false},
	0xC8: {"INY", 1, 2, 0, ModeImplied, true},
	0xC9: {"CMP", 2, 2, 0, ModeImmediate, true},
	0xCA: {"DEX", 1, 2, 0, ModeImplied, true},
	0xCB: {"AXS", 2, 2, 0, ModeImmediate, false},
	0xCC: {"CPY", 3, 4, 0, ModeAbsolute, true},
	0xCD: {"CMP", 3, 4, 0, ModeAbsolute, true},
	0xCE: {"DEC", 3, 6, 0, ModeAbsolute, true},
	0xCF: {"DCP", 3, 6, 0, ModeAbsolute, false},
	0xD0: {"BNE", 2, 2, 0, ModeRelative, true},
	0xD1: {"CMP", 2, 5, 1, ModeIndirectIndexedY, true},
	0xD2: {"KIL", 1, 2, 0, ModeImplied, false},
	0xD3: {"DCP", 2, 8, 0, ModeIndirectIndexedY, false},
	0xD4: {"NOP", 2, 4, 0, ModeIndexedZeroPageX, false},
	0xD5: {"CMP", 2, 4, 0, ModeIndexedZeroPageX, true},
	0xD6: {"DEC", 2, 6, 0, ModeIndexedZeroPageX, true},
	0xD7: {"DCP", 2, 6, 0, ModeIndexedZeroPageX, false},
	0xD8: {"CLD", 1, 2, 0, ModeImplied, true},
	0xD9: {"CMP", 3, 4, 1, ModeIndexedAbsoluteY, true},
	0xDA: {"NOP", 1, 2, 0, ModeImplied, false},
	0xDB: {"DCP", 3, 7, 0, ModeIndexedAbsoluteY, false},
	0xDC: {"NOP", 3, 4, 1, ModeIndexedAbsoluteX, false},
	0xDD: {"CMP", 3, 4, 1, ModeIndexedAbsoluteX, true},
	0xDE: {"DEC", 3, 7, 0, ModeIndexedAbsoluteX, true},
	0xDF: {"DCP", 3, 7, 0, ModeIndexedAbsoluteX, false},
	0xE0: {"CPX", 2, 2, 0, ModeImmediate, true},
	0xE1: {"SBC", 2, 6, 0, ModeIndexedIndirectX, true},
	0xE2: {"NOP", 2, 2, 0, ModeImmediate, false},
	0xE3: {"ISB", 2, 8, 0, ModeIndexedIndirectX, false},
	0xE4: {"CPX", 2, 3, 0, ModeZeroPage, true},
	0xE5: {"SBC", 2, 3, 0, ModeZeroPage, true},
	0xE6: {"INC", 2, 5, 0, ModeZeroPage, true},
	0xE7: {"ISB", 2, 5, 0, ModeZeroPage, false},
	0xE8: {"INX", 1, 2, 0, ModeImplied, true},
	0xE9: {"SBC", 2, 2, 0, ModeImmediate, true},
	0xEA: {"NOP", 1, 2, 0, ModeImplied, true},
	0xEB: {"SBC", 2, 2, 0, ModeImmediate, false},
	0xEC: {"CPX", 3, 4, 0, ModeAbsolute, true},
	0xED: {"SBC", 3, 4, 0, ModeAbsolute, true},
	0xEE: {"INC", 3, 6, 0, ModeAbsolute, true},
	0xEF: {"ISB", 3, 6, 0, ModeAbsolute, false},
	0xF0: {"BEQ", 2, 2, 0, ModeRelative, true},
	0xF1: {"SBC", 2, 5, 1, ModeIndirectIndexedY, true},
	0xF2: {"KIL", 1, 2, 0, ModeImplied, false},
	0xF3: {"ISB", 2, 8, 0, ModeIndirectIndexedY, false},
	0xF4: {"NOP", 2, 4, 0, ModeIndexedZeroPageX, false},
	0xF5: {"SBC", 2, 4, 0, ModeIndexedZeroPageX, true},
	0xF6: {"INC", 2, 6, 0, ModeIndexedZeroPageX, true},
	0xF7: {"ISB", 2, 6, 0, ModeIndexedZeroPageX, false},
	0xF8: {"SED", 1, 2, 0, ModeImplied, true},
	0xF9: {"SBC", 3, 4, 1, ModeIndexedAbsoluteY, true},
	0xFA: {"NOP", 1, 2, 0, ModeImplied, false},
	0xFB: {"ISB", 3, 7, 0, ModeIndexedAbsoluteY, false},
	0xFC: {"NOP", 3, 4, 1, ModeIndexedAbsoluteX, false},
	0xFD: {"SBC", 3, 4, 1, ModeIndexedAbsoluteX, true},
	0xFE: {"INC", 3, 7, 0, ModeIndexedAbsoluteX, true},
	0xFF: {"ISB", 3, 7, 0, ModeIndexedAbsoluteX, false},
}

// setupIns binds an evaluator to every opcode. The binding is per Cpu
// since the evaluators close over it.
func (c *Cpu) setupIns() {
	evals := map[string]func(){
		"ADC": c.adc, "AND": c.and, "ASL": c.asl, "BCC": c.bcc,
		"BCS": c.bcs, "BEQ": c.beq, "BIT": c.bit, "BMI": c.bmi,
		"BNE": c.bne, "BPL": c.bpl, "BRK": c.brk, "BVC": c.bvc,
		"BVS": c.bvs, "CLC": c.clc, "CLD": c.cld, "CLI": c.cli,
		"CLV": c.clv, "CMP": c.cmp, "CPX": c.cpx, "CPY": c.cpy,
		"DEC": c.dec, "DEX": c.dex, "DEY": c.dey, "EOR": c.eor,
		"INC": c.inc, "INX": c.inx, "INY": c.iny, "JMP": c.jmp,
		"JSR": c.jsr, "LDA": c.lda, "LDX": c.ldx, "LDY": c.ldy,
		"LSR": c.lsr, "NOP": c.nop, "ORA": c.ora, "PHA": c.pha,
		"PHP": c.php, "PLA": c.pla, "PLP": c.plp, "ROL": c.rol,
		"ROR": c.ror, "RTI": c.rti, "RTS": c.rts, "SBC": c.sbc,
		"SEC": c.sec, "SED": c.sed, "SEI": c.sei, "STA": c.sta,
		"STX": c.stx, "STY": c.sty, "TAX": c.tax, "TAY": c.tay,
		"TSX": c.tsx, "TXA": c.txa, "TXS": c.txs, "TYA": c.tya,

		"AHX": c.ahx, "ALR": c.alr, "ANC": c.anc, "ARR": c.arr,
		"AXS": c.axs, "DCP": c.dcp, "ISB": c.isb, "KIL": c.kil,
		"LAS": c.las, "LAX": c.lax, "RLA": c.rla, "RRA": c.rra,
		"SAX": c.sax, "SHX": c.shx, "SHY": c.shy, "SLO": c.slo,
		"SRE": c.sre, "TAS": c.tas, "XAA": c.xaa,
	}
	for op, ins := range OpTable {
		eval, ok := evals[ins.Name]
		if !ok {
			panic("no evaluator for " + ins.Name)
		}
		c.eval[op] = eval
	}
}
