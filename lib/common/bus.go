package common

import "fmt"

// BusInt is the single doorway every component uses for hardware access;
// nothing reads or writes another component directly.
type BusInt interface {
	Read8(uint16) uint8
	Write8(uint16, uint8)
}

// BusExtInt adds the little-endian 16bit helpers used by the CPU for
// vector and pointer fetches.
type BusExtInt interface {
	BusInt
	Read16(uint16) uint16
	Write16(uint16, uint16)
}

// Each device gets its own view of the address space. The CPU sees the
// CPU memory map, the PPU its own 14bit space, the DMA engine a hybrid
// of the two and the DMC sample reader the CPU map again.
const (
	MapCPUId = iota
	MapPPUId
	MapDMAId
	MapAPUId

	busMaps
)

type Bus struct {
	maps [busMaps]BusMap
}

// BusMap binds a route table (a BusInt) to a device slot and decorates
// it with the 16bit helpers.
type BusMap struct {
	mapId int

	BusInt
}

func (b *BusMap) Read8(addr uint16) uint8 {
	if b.BusInt == nil {
		panic(fmt.Errorf("%w: map %d read of 0x%04x before connect",
			ErrBusUnmapped, b.mapId, addr))
	}
	return b.BusInt.Read8(addr)
}
func (b *BusMap) Read16(addr uint16) uint16 {
	return uint16(b.Read8(addr)) | uint16(b.Read8(addr+1))<<8
}

func (b *BusMap) Write8(addr uint16, val uint8) {
	if b.BusInt == nil {
		panic(fmt.Errorf("%w: map %d write of 0x%04x before connect",
			ErrBusUnmapped, b.mapId, addr))
	}
	b.BusInt.Write8(addr, val)
}
func (b *BusMap) Write16(addr uint16, val uint16) {
	b.Write8(addr, uint8(val&0xFF))
	b.Write8(addr+1, uint8(val>>8))
}

func (b *Bus) Init() {
	for i := range b.maps {
		b.maps[i] = BusMap{mapId: i}
	}
}

func (b *Bus) Connect(mapId int, busInt BusInt) {
	b.maps[mapId].BusInt = busInt
}

func (b *Bus) GetBusInt(mapId int) *BusMap {
	return &b.maps[mapId]
}
