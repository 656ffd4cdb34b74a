package mappers

import (
	"log"

	"github.com/famicore/famicore/lib/common"
)

// MapperMMC3 is board 4: four pairs of registers selected by address
// parity, fine grained PRG/CHR banking and a scanline counter clocked
// by rising edges of the PPU A12 line.
//
// CPU $6000-$7FFF: 8K PRG RAM
// CPU $8000-$FFFF: four 8K PRG ROM banks, two switchable
// PPU $0000-$1FFF: two 2K plus four 1K CHR banks
type MapperMMC3 struct {
	cart *Cartridge

	bankSelect    uint8
	registers     [8]uint8
	prgRamProtect uint8

	irqLatch  uint8
	irqReload bool
	irqEnable bool
	counter   uint8

	prgBanks [4]uint32
	chrBanks [8]uint32
}

func (m *MapperMMC3) Init() {
	m.irqEnable = false
	m.updateBanks()
}

// the scanline counter: reload on zero or after a reload request,
// otherwise count down, and fire on the transition to zero
func (m *MapperMMC3) OnA12Rising() {
	if m.counter == 0 || m.irqReload {
		m.counter = m.irqLatch
		m.irqReload = false
	} else {
		m.counter--
		if m.counter == 0 && m.irqEnable {
			m.cart.interrupts.Raise(common.IntIrqMapper)
		}
	}
}

func (m *MapperMMC3) writeInner(addr uint16, val uint8) {
	even := (addr & 1) == 0
	switch {
	case addr < 0xA000 && even:
		m.bankSelect = val
		m.updateBanks()
	case addr < 0xA000:
		m.registers[m.bankSelect&7] = val
		m.updateBanks()
	case addr < 0xC000 && even:
		m.writeMirroring(val)
	case addr < 0xC000:
		m.prgRamProtect = val
	case addr < 0xE000 && even:
		m.irqLatch = val
	case addr < 0xE000:
		m.counter = 0
		m.irqReload = true
	case even:
		// disabling also acknowledges a pending interrupt
		m.irqEnable = false
		m.cart.interrupts.Clear(common.IntIrqMapper)
	default:
		m.irqEnable = true
	}
}

// Mirroring ($A000-$BFFE, even), ignored on four screen boards
func (m *MapperMMC3) writeMirroring(val uint8) {
	if m.cart.config.mirror == common.QuadScreenMirroring {
		return
	}
	if (val & 1) == 0 {
		m.cart.SetMirroring(common.VerticalMirroring)
	} else {
		m.cart.SetMirroring(common.HorizontalMirroring)
	}
}

// Bank select ($8000-$9FFE, even)
//
// 7  bit  0
// ---- ----
// CPMx xRRR
// |||   |||
// |||   +++- bank register to update on the next bank data write
// ||+------- nothing on the MMC3
// |+-------- PRG bank mode (which of $8000/$C000 is switchable)
// +--------- CHR A12 inversion (swaps the 2K and 1K bank halves)
func (m *MapperMMC3) updateBanks() {
	chrInvert := (m.bankSelect & 0x80) != 0
	prgInvert := (m.bankSelect & 0x40) != 0

	// R0/R1 are 2K banks with the low bit forced clear, R2-R5 are 1K
	two := [4]uint32{
		uint32(m.registers[0]&0xFE) * 0x400,
		uint32(m.registers[0]&0xFE)*0x400 + 0x400,
		uint32(m.registers[1]&0xFE) * 0x400,
		uint32(m.registers[1]&0xFE)*0x400 + 0x400,
	}
	one := [4]uint32{
		uint32(m.registers[2]) * 0x400,
		uint32(m.registers[3]) * 0x400,
		uint32(m.registers[4]) * 0x400,
		uint32(m.registers[5]) * 0x400,
	}
	if !chrInvert {
		copy(m.chrBanks[0:4], two[:])
		copy(m.chrBanks[4:8], one[:])
	} else {
		copy(m.chrBanks[0:4], one[:])
		copy(m.chrBanks[4:8], two[:])
	}

	romSize := uint32(m.cart.prgRom.Size())
	swappable := uint32(m.registers[6]) * 0x2000
	m.prgBanks[1] = uint32(m.registers[7]) * 0x2000
	m.prgBanks[3] = romSize - 0x2000
	if !prgInvert {
		m.prgBanks[0] = swappable
		m.prgBanks[2] = romSize - 0x4000
	} else {
		m.prgBanks[0] = romSize - 0x4000
		m.prgBanks[2] = swappable
	}
}

func (m *MapperMMC3) Read8(addr uint16) uint8 {
	switch {
	case addr < 0x2000:
		bank := addr / 0x400
		offset := uint32(addr % 0x400)
		return m.cart.chr.Read8At(m.chrBanks[bank] + offset)
	case addr >= 0x6000 && addr < 0x8000:
		return m.cart.prgRam.Read8(addr - 0x6000)
	case addr >= 0x8000:
		bank := (addr - 0x8000) / 0x2000
		offset := uint32((addr - 0x8000) % 0x2000)
		return m.cart.prgRom.Read8At(m.prgBanks[bank] + offset)
	default:
		log.Printf("mmc3: read of unmapped address 0x%04x", addr)
		return 0
	}
}

func (m *MapperMMC3) Write8(addr uint16, val uint8) {
	switch {
	case addr < 0x2000:
		if m.cart.chr.Writable() {
			bank := addr / 0x400
			offset := uint32(addr % 0x400)
			m.cart.chr.Write8At(m.chrBanks[bank]+offset, val)
		} else {
			log.Printf("mmc3: write of 0x%02x to CHR ROM at 0x%04x", val, addr)
		}
	case addr >= 0x6000 && addr < 0x8000:
		m.cart.prgRam.Write8(addr-0x6000, val)
	case addr >= 0x8000:
		m.writeInner(addr, val)
	default:
		log.Printf("mmc3: write of 0x%02x to unmapped address 0x%04x", val, addr)
	}
}
