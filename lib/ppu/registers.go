package ppu

import (
	"github.com/famicore/famicore/lib/common"
)

const (
	PPUCTRL = iota
	PPUMASK
	PPUSTATUS
	OAMADDR
	OAMDATA
	PPUSCROLL
	PPUADDR
	PPUDATA
)

const (
	statusSpriteOverflow = 1 << 5
	statusSprite0Hit     = 1 << 6
	statusVBlank         = 1 << 7

	ctrlNMI = 1 << 7
)

// http://wiki.nesdev.com/w/index.php/PPU_scrolling
//    First      Second
// /¯¯¯¯¯¯¯¯¯\ /¯¯¯¯¯¯¯\
// 0 0yy NN YY YYY XXXXX
//   ||| || || ||| +++++-- coarse X scroll
//   ||| || ++-+++-------- coarse Y scroll
//   ||| ++--------------- nametable select
//   +++------------------ fine Y scroll
type loopyRegister struct {
	common.Register16
}

func (l *loopyRegister) setNameTables(val uint16) {
	l.Val = (l.Val & 0xF3FF) | ((val & 0x3) << 10)
}
func (l *loopyRegister) getNameTables() uint16 {
	return (l.Val & 0x0C00) >> 10
}
func (l *loopyRegister) flipNameTableH() {
	l.Val ^= 0x0400
}
func (l *loopyRegister) flipNameTableV() {
	l.Val ^= 0x0800
}

func (l *loopyRegister) setCoarseX(val uint16) {
	l.Val = (l.Val & 0xFFE0) | (val & 0x1F)
}
func (l *loopyRegister) getCoarseX() uint16 {
	return l.Val & 0x1F
}

func (l *loopyRegister) setCoarseY(val uint16) {
	l.Val = (l.Val & 0xFC1F) | ((val & 0x1F) << 5)
}
func (l *loopyRegister) getCoarseY() uint16 {
	return (l.Val >> 5) & 0x1F
}

func (l *loopyRegister) setFineY(val uint16) {
	l.Val = (l.Val & 0x8FFF) | ((val & 0x7) << 12)
}
func (l *loopyRegister) getFineY() uint16 {
	return (l.Val >> 12) & 0x7
}

func (l *loopyRegister) setMsb(val uint8) {
	l.Val = (l.Val & 0x80FF) | ((uint16(val) & 0x3F) << 8)
}
func (l *loopyRegister) setLsb(val uint8) {
	l.Val = (l.Val & 0xFF00) | uint16(val)
}

func (l *loopyRegister) copy(t loopyRegister) {
	l.Val = t.Val
}

// v: ....F.. ...EDCBA = t: ....F.. ...EDCBA
func (l *loopyRegister) copyHori(t loopyRegister) {
	l.Val = (l.Val & 0xFBE0) | (t.Val & 0x041F)
}

// v: IHGF.ED CBA..... = t: IHGF.ED CBA.....
func (l *loopyRegister) copyVert(t loopyRegister) {
	l.Val = (l.Val & 0x841F) | (t.Val & 0x7BE0)
}

func (l *loopyRegister) inc(val uint16) {
	l.Val += val
}

/* PPUCTRL
7  bit  0
---- ----
VPHB SINN
|||| ||||
|||| ||++- Base nametable address
|||| |+--- VRAM address increment per CPU read/write of PPUDATA
|||| |     (0: add 1, going across; 1: add 32, going down)
|||| +---- Sprite pattern table address for 8x8 sprites
|||+------ Background pattern table address (0: $0000; 1: $1000)
||+------- Sprite size (0: 8x8 pixels; 1: 8x16 pixels)
|+-------- PPU master/slave select
+--------- Generate an NMI at the start of vertical blanking
*/

func (p *Ppu) getVRAMAddrInc() uint16 {
	if p.regs[PPUCTRL].Val&4 == 0 {
		return 1
	}
	return 32
}

func (p *Ppu) getSpritePattern() uint16 {
	return (uint16(p.regs[PPUCTRL].Val&8) >> 3) * 0x1000
}

func (p *Ppu) getBackgroundTable() uint16 {
	return (uint16(p.regs[PPUCTRL].Val&16) >> 4) * 0x1000
}

func (p *Ppu) getSpriteSize() (uint8, uint8) {
	return 8, (((p.regs[PPUCTRL].Val >> 5) & 0x1) * 8) + 8
}

func (p *Ppu) writeControl() {
	val := p.regs[PPUCTRL].Val

	// t: ....BA.. ........ = d: ......BA
	p.tRAM.setNameTables(uint16(val))

	// turning NMI generation on while the vblank flag is up raises the
	// interrupt immediately
	wasEnabled := p.nmiOut
	p.nmiOut = val&ctrlNMI != 0
	if !wasEnabled && p.nmiOut && p.regs[PPUSTATUS].Val&statusVBlank != 0 {
		p.interrupts.Raise(common.IntNMI)
	}
}

/* PPU Mask
7  bit  0
---- ----
BGRs bMmG
|||| ||||
|||| |||+- Greyscale
|||| ||+-- 1: Show background in leftmost 8 pixels of screen
|||| |+--- 1: Show sprites in leftmost 8 pixels of screen
|||| +---- 1: Show background
|||+------ 1: Show sprites
||+------- Emphasize red
|+-------- Emphasize green
+--------- Emphasize blue
*/

func (p *Ppu) greyscale() bool {
	return p.regs[PPUMASK].Val&1 == 1
}
func (p *Ppu) showBackgroundLeft() bool {
	return (p.regs[PPUMASK].Val>>1)&1 == 1
}
func (p *Ppu) showSpritesLeft() bool {
	return (p.regs[PPUMASK].Val>>2)&1 == 1
}
func (p *Ppu) showBackground() bool {
	return (p.regs[PPUMASK].Val>>3)&1 == 1
}
func (p *Ppu) showSprites() bool {
	return (p.regs[PPUMASK].Val>>4)&1 == 1
}
func (p *Ppu) renderingEnabled() bool {
	return p.showBackground() || p.showSprites()
}

// the low 5 bits of PPUSTATUS float with whatever was last put on the
// register bus
func (p *Ppu) setLastRegWrite(val uint8) {
	p.regs[PPUSTATUS].Val = (p.regs[PPUSTATUS].Val & 0xE0) | (val & 0x1F)
}

func (p *Ppu) readPPUStatus() uint8 {
	val := p.regs[PPUSTATUS].Val

	p.regs[PPUSTATUS].Clr(statusVBlank)
	p.wToggle.Val = 0

	// reading the flag around the moment it is raised loses the NMI for
	// that frame: one dot early suppresses the flag itself, on the next
	// couple of dots the flag reads back but the NMI is cancelled
	if p.scanLine == 241 {
		switch p.cycle {
		case 0:
			p.suppressVBlank = true
		case 1, 2:
			p.interrupts.Clear(common.IntNMI)
		}
	}
	return val
}

func (p *Ppu) writePPUScroll() {
	val := p.regs[PPUSCROLL].Read()
	if p.wToggle.Val == 0 {
		// t: ....... ...HGFED = d: HGFED...
		// x:              CBA = d: .....CBA
		p.tRAM.setCoarseX(uint16(val) >> 3)
		p.xFine.Write(val & 0x7)
		p.wToggle.Val = 1
	} else {
		// t: CBA..HG FED..... = d: HGFEDCBA
		p.tRAM.setFineY(uint16(val))
		p.tRAM.setCoarseY(uint16(val) >> 3)
		p.wToggle.Val = 0
	}
}

func (p *Ppu) writePPUAddr() {
	val := p.regs[PPUADDR].Read()
	if p.wToggle.Val == 0 {
		// t: .FEDCBA ........ = d: ..FEDCBA
		// t: X...... ........ = 0
		p.tRAM.setMsb(val)
		p.wToggle.Val = 1
	} else {
		// t: ....... HGFEDCBA = d: HGFEDCBA
		// v = t
		p.tRAM.setLsb(val)
		p.vRAM.copy(p.tRAM)
		p.wToggle.Val = 0
	}
}

func (p *Ppu) readPPUData() uint8 {
	val := p.BusInt.Read8(p.vRAM.Val)

	// reads below the palettes go through a one deep buffer: the CPU
	// gets the buffered byte and the buffer refills from the current
	// address. Palette reads are immediate but still refill the buffer
	// from the nametable underneath.
	if p.vRAM.Val%0x4000 < 0x3F00 {
		p.vRAMBuffer, val = val, p.vRAMBuffer
	} else {
		p.vRAMBuffer = p.BusInt.Read8(p.vRAM.Val - 0x1000)
	}
	p.regs[PPUDATA].Val = val

	p.vRAM.inc(p.getVRAMAddrInc())
	return val
}

func (p *Ppu) writePPUData() {
	p.BusInt.Write8(p.vRAM.Val, p.regs[PPUDATA].Val)
	p.vRAM.inc(p.getVRAMAddrInc())
}

// OAMDATA reads do not bump OAMADDR, writes do
func (p *Ppu) readOAMData() uint8 {
	val := p.rOAM.Read8(uint16(p.regs[OAMADDR].Val))
	p.regs[OAMDATA].Val = val
	return val
}

func (p *Ppu) writeOAMData() {
	addr := p.regs[OAMADDR].Val
	p.rOAM.Write8(uint16(addr), p.regs[OAMDATA].Val)
	p.regs[OAMADDR].Val = addr + 1
}

func (p *Ppu) initRegisters() {
	// CPU mapped registers
	p.regs[PPUCTRL].InitHooked("PPUCTRL", 0, p.writeControl, nil)
	p.regs[PPUMASK].Init("PPUMASK", 0)
	p.regs[PPUSTATUS].InitHooked("PPUSTATUS", 0, nil, p.readPPUStatus)
	p.regs[OAMADDR].Init("OAMADDR", 0)
	p.regs[OAMDATA].InitHooked("OAMDATA", 0, p.writeOAMData, p.readOAMData)
	p.regs[PPUSCROLL].InitHooked("PPUSCROLL", 0, p.writePPUScroll, nil)
	p.regs[PPUADDR].InitHooked("PPUADDR", 0, p.writePPUAddr, nil)
	p.regs[PPUDATA].InitHooked("PPUDATA", 0, p.writePPUData, p.readPPUData)

	// internal registers
	p.vRAM.Init("v", 0)
	p.tRAM.Init("t", 0)
	p.xFine.Init("x", 0)
	p.wToggle.Init("w", 0)
}
