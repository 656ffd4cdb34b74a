package common

import "io"

// Ram is plain byte-addressable memory; mirroring is the bus' job, so
// callers always pass in-range offsets.
type Ram struct {
	ram []byte
}

func (r *Ram) Init(size int) {
	r.ram = make([]byte, size)
}

func (r *Ram) InitNfill(size int, fill uint8) {
	r.Init(size)
	for i := range r.ram {
		r.ram[i] = fill
	}
}

func (r *Ram) Size() int {
	return len(r.ram)
}

func (r *Ram) Read8(addr uint16) uint8 {
	return r.ram[addr]
}
func (r *Ram) Write8(addr uint16, val uint8) {
	r.ram[addr] = val
}

// LoadFrom reads as much as the reader holds, up to the ram size.
// Battery saves may legitimately be shorter than the chip.
func (r *Ram) LoadFrom(reader io.Reader) (int, error) {
	n, err := io.ReadFull(reader, r.ram)
	if err == io.ErrUnexpectedEOF || err == io.EOF {
		err = nil
	}
	return n, err
}
func (r *Ram) SaveTo(writer io.Writer) (int, error) {
	return writer.Write(r.ram)
}

// little endian
func (r *Ram) Read16(addr uint16) uint16 {
	return uint16(r.Read8(addr)) | uint16(r.Read8(addr+1))<<8
}
func (r *Ram) Write16(addr uint16, val uint16) {
	r.Write8(addr, uint8(val&0xFF))
	r.Write8(addr+1, uint8(val>>8))
}

// Rom models a mask ROM chip. CHR RAM boards reuse it with the writable
// switch on; writing a real ROM is an internal defect so it panics
// rather than being ignored.
type Rom struct {
	rom []byte

	writable bool
}

func (r *Rom) Init(size int, writable bool) {
	r.rom = make([]byte, size)
	r.writable = writable
}

func (r *Rom) LoadFrom(reader io.Reader) (int, error) {
	return io.ReadFull(reader, r.rom)
}

func (r *Rom) Size() int {
	return len(r.rom)
}

func (r *Rom) Writable() bool {
	return r.writable
}

func (r *Rom) Read8(addr uint16) uint8 {
	return r.rom[addr]
}

// Read8At takes a physical offset wider than the CPU window, for banked
// access by the mappers.
func (r *Rom) Read8At(addr uint32) uint8 {
	return r.rom[addr]
}

// little endian
func (r *Rom) Read16(addr uint16) uint16 {
	return uint16(r.Read8(addr)) | uint16(r.Read8(addr+1))<<8
}

func (r *Rom) Write8(addr uint16, val uint8) {
	r.Write8At(uint32(addr), val)
}
func (r *Rom) Write8At(addr uint32, val uint8) {
	if !r.writable {
		panic("rom is not writable")
	}
	r.rom[addr] = val
}
func (r *Rom) Write16(addr uint16, val uint16) {
	r.Write8(addr, uint8(val&0xFF))
	r.Write8(addr+1, uint8(val>>8))
}
