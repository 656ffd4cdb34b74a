package mappers

import (
	"log"

	"github.com/famicore/famicore/lib/common"
)

// MapperMMC1 is board 1, configured one bit at a time through a serial
// shift register.
//
// CPU $6000-$7FFF: 8K PRG RAM
// CPU $8000-$BFFF: 16K PRG ROM bank, switchable or fixed to the first
// CPU $C000-$FFFF: 16K PRG ROM bank, fixed to the last or switchable
// PPU $0000-$0FFF: 4K switchable CHR bank
// PPU $1000-$1FFF: 4K switchable CHR bank
type MapperMMC1 struct {
	cart *Cartridge

	shift   uint8
	counter uint8

	control  uint8
	chrBank0 uint8
	chrBank1 uint8
	prgBank  uint8

	prgBankMode uint8
	chrBankMode uint8

	prgBanks [2]uint32
	chrBanks [2]uint32
}

func (m *MapperMMC1) OnA12Rising() {}

func (m *MapperMMC1) Init() {
	// power up with the last bank fixed at $C000
	m.writeInner(0x8000, 0x0C)
}

// Load ($8000-$FFFF)
//
// 7  bit  0
// ---- ----
// Rxxx xxxD
// |       |
// |       +- data bit, shifted in LSB first
// +--------- 1: reset the shifter and lock $C000 to the last bank
func (m *MapperMMC1) writeLoad(addr uint16, val uint8) {
	if (val & 0x80) != 0 {
		m.shift = 0
		m.counter = 0
		m.writeInner(0x8000, m.control|0x0C)
		return
	}

	m.shift |= (val & 0x1) << m.counter
	m.counter++

	// the fifth bit lands in the register the address selects
	if m.counter == 5 {
		m.writeInner(addr, m.shift)
		m.shift = 0
		m.counter = 0
	}
}

func (m *MapperMMC1) writeInner(addr uint16, val uint8) {
	switch {
	case addr < 0xA000:
		m.writeControl(val)
	case addr < 0xC000:
		m.chrBank0 = val & 0x1F
	case addr < 0xE000:
		m.chrBank1 = val & 0x1F
	default:
		// bit 4 is the PRG RAM disable, ignored here
		m.prgBank = val & 0x0F
	}
	m.updateBanks()
}

// Control ($8000-$9FFF)
//
// 4bit0
// -----
// CPPMM
// |||||
// |||++- mirroring (0: one screen low; 1: one screen high;
// |||               2: vertical; 3: horizontal)
// |++--- PRG bank mode (0,1: 32K at $8000; 2: first bank fixed at
// |                     $8000; 3: last bank fixed at $C000)
// +----- CHR bank mode (0: one 8K bank; 1: two 4K banks)
func (m *MapperMMC1) writeControl(val uint8) {
	m.control = val & 0x1F

	switch val & 0x3 {
	case 0:
		m.cart.SetMirroring(common.SingleScreenLowMirroring)
	case 1:
		m.cart.SetMirroring(common.SingleScreenHighMirroring)
	case 2:
		m.cart.SetMirroring(common.VerticalMirroring)
	case 3:
		m.cart.SetMirroring(common.HorizontalMirroring)
	}
	m.prgBankMode = (val >> 2) & 0x3
	m.chrBankMode = (val >> 4) & 0x1
}

func (m *MapperMMC1) updateBanks() {
	if m.chrBankMode == 0 {
		// one 8K bank, the low bit of the select is ignored
		bank := (uint32(m.chrBank0) >> 1) * 0x2000
		m.chrBanks[0] = bank
		m.chrBanks[1] = bank + 0x1000
	} else {
		m.chrBanks[0] = uint32(m.chrBank0) * 0x1000
		m.chrBanks[1] = uint32(m.chrBank1) * 0x1000
	}

	switch m.prgBankMode {
	case 0, 1:
		// 32K mode, the low bit of the select is ignored
		bank := (uint32(m.prgBank) >> 1) * 0x8000
		m.prgBanks[0] = bank
		m.prgBanks[1] = bank + 0x4000
	case 2:
		m.prgBanks[0] = 0
		m.prgBanks[1] = uint32(m.prgBank) * 0x4000
	case 3:
		m.prgBanks[0] = uint32(m.prgBank) * 0x4000
		m.prgBanks[1] = uint32(m.cart.prgRom.Size()) - 0x4000
	}
}

func (m *MapperMMC1) Read8(addr uint16) uint8 {
	switch {
	case addr < 0x1000:
		return m.cart.chr.Read8At(m.chrBanks[0] + uint32(addr))
	case addr < 0x2000:
		return m.cart.chr.Read8At(m.chrBanks[1] + uint32(addr-0x1000))
	case addr >= 0x6000 && addr < 0x8000:
		return m.cart.prgRam.Read8(addr - 0x6000)
	case addr >= 0x8000 && addr < 0xC000:
		return m.cart.prgRom.Read8At(m.prgBanks[0] + uint32(addr-0x8000))
	case addr >= 0xC000:
		return m.cart.prgRom.Read8At(m.prgBanks[1] + uint32(addr-0xC000))
	default:
		log.Printf("mmc1: read of unmapped address 0x%04x", addr)
		return 0
	}
}

func (m *MapperMMC1) Write8(addr uint16, val uint8) {
	switch {
	case addr < 0x1000:
		if m.cart.chr.Writable() {
			m.cart.chr.Write8At(m.chrBanks[0]+uint32(addr), val)
		} else {
			log.Printf("mmc1: write of 0x%02x to CHR ROM at 0x%04x", val, addr)
		}
	case addr < 0x2000:
		if m.cart.chr.Writable() {
			m.cart.chr.Write8At(m.chrBanks[1]+uint32(addr-0x1000), val)
		} else {
			log.Printf("mmc1: write of 0x%02x to CHR ROM at 0x%04x", val, addr)
		}
	case addr >= 0x6000 && addr < 0x8000:
		m.cart.prgRam.Write8(addr-0x6000, val)
	case addr >= 0x8000:
		m.writeLoad(addr, val)
	default:
		log.Printf("mmc1: write of 0x%02x to unmapped address 0x%04x", val, addr)
	}
}
