package mappers

import "log"

// MapperNROM is the bankless board 0.
//
// CPU $6000-$7FFF: PRG RAM
// CPU $8000-$FFFF: 32K of PRG ROM, or 16K mirrored twice (NROM-128)
// PPU $0000-$1FFF: CHR ROM or CHR RAM
type MapperNROM struct {
	cart *Cartridge
}

func (m *MapperNROM) Init()        {}
func (m *MapperNROM) OnA12Rising() {}

func (m *MapperNROM) Read8(addr uint16) uint8 {
	switch {
	case addr < 0x2000:
		return m.cart.chr.Read8(addr)
	case addr >= 0x6000 && addr < 0x8000:
		return m.cart.prgRam.Read8((addr - 0x6000) % uint16(m.cart.prgRam.Size()))
	case addr >= 0x8000:
		return m.cart.prgRom.Read8(uint16(int(addr-0x8000) % m.cart.prgRom.Size()))
	default:
		log.Printf("nrom: read of unmapped address 0x%04x", addr)
		return 0
	}
}

func (m *MapperNROM) Write8(addr uint16, val uint8) {
	switch {
	case addr < 0x2000:
		if m.cart.chr.Writable() {
			m.cart.chr.Write8(addr, val)
		} else {
			log.Printf("nrom: write of 0x%02x to CHR ROM at 0x%04x", val, addr)
		}
	case addr >= 0x6000 && addr < 0x8000:
		m.cart.prgRam.Write8((addr-0x6000)%uint16(m.cart.prgRam.Size()), val)
	default:
		log.Printf("nrom: write of 0x%02x to read only address 0x%04x", val, addr)
	}
}
