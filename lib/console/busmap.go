package console

import (
	"github.com/famicore/famicore/lib/common"
)

// Each chip sees the machine through its own address decoding. The
// mapper structs below are those decoders, one per bus map.

// cpuMapper decodes the cpu address space:
// $0000-$1FFF 2KB internal ram, mirrored
// $2000-$3FFF ppu registers, mirrored every 8 bytes
// $4000-$4017 apu, dma and controller registers
// $4018-$401F test mode, unused
// $4020-$FFFF cartridge space
type cpuMapper struct {
	*Console
}

func (m *cpuMapper) Read8(addr uint16) uint8 {
	switch {
	case addr < 0x2000:
		return m.ram.Read8(addr % 0x800)
	case addr < 0x4000:
		return m.ppu.Read8(addr)
	case addr == 0x4015:
		return m.apu.Read8(addr)
	case addr == 0x4016 || addr == 0x4017:
		return m.ctrl.Read8(addr)
	case addr < 0x4020:
		// open bus
		return 0
	default:
		return m.cart.Mapper.Read8(addr)
	}
}

func (m *cpuMapper) Write8(addr uint16, val uint8) {
	switch {
	case addr < 0x2000:
		m.ram.Write8(addr%0x800, val)
	case addr < 0x4000:
		m.ppu.Write8(addr, val)
	case addr == 0x4014:
		m.dma.Write8(addr, val)
	case addr == 0x4016:
		m.ctrl.Write8(addr, val)
	case addr <= 0x4013 || addr == 0x4015 || addr == 0x4017:
		m.apu.Write8(addr, val)
	case addr < 0x4020:
		// test mode registers, ignored
	default:
		m.cart.Mapper.Write8(addr, val)
	}
}

// ppuMapper decodes the 14 bit ppu address space:
// $0000-$1FFF pattern tables, on the cartridge
// $2000-$2FFF nametables, cartridge wired mirroring
// $3000-$3EFF nametable mirror
// $3F00-$3FFF palette ram, mirrored every 32 bytes
// addresses past $3FFF wrap, the bus only has 14 lines
type ppuMapper struct {
	*Console
}

func (m *ppuMapper) Read8(addr uint16) uint8 {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		return m.cart.Mapper.Read8(addr)
	case addr < 0x3000:
		return m.cart.Tables.Read8(addr)
	case addr < 0x3F00:
		return m.cart.Tables.Read8(addr - 0x1000)
	case addr < 0x4000:
		return m.ppu.Palette.Read8(addr % 32)
	}
	return 0
}

func (m *ppuMapper) Write8(addr uint16, val uint8) {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		m.cart.Mapper.Write8(addr, val)
	case addr < 0x3000:
		m.cart.Tables.Write8(addr, val)
	case addr < 0x3F00:
		m.cart.Tables.Write8(addr-0x1000, val)
	case addr < 0x4000:
		m.ppu.Palette.Write8(addr%32, val)
	}
}

// dmaMapper reads from the cpu map and writes into OAMDATA
type dmaMapper struct {
	*Console
}

func (m *dmaMapper) Read8(addr uint16) uint8 {
	return m.cpu.Read8(addr)
}
func (m *dmaMapper) Write8(addr uint16, val uint8) {
	m.ppu.Write8(addr, val)
}

// apuMapper reads cpu memory for the dmc sample fetcher
type apuMapper struct {
	*Console
}

func (m *apuMapper) Read8(addr uint16) uint8 {
	return m.cpu.Read8(addr)
}
func (m *apuMapper) Write8(addr uint16, val uint8) {
}
