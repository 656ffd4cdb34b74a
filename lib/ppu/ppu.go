package ppu

import (
	"image/color"

	"github.com/famicore/famicore/lib/common"
)

// Ppu runs the 341x262 NTSC dot grid: scanlines 0-239 are visible, 240
// is idle, the vblank flag goes up at dot 1 of 241 and the pre-render
// line 261 reloads the vertical scroll for the next frame. One call to
// Exec is one dot.
type Ppu struct {
	common.BusInt

	interrupts common.InterruptLines

	cycle    int
	scanLine int
	odd      bool
	verbose  bool

	// cpu mapped registers
	regs [8]common.Register

	// internal scroll registers:
	// http://wiki.nesdev.com/w/index.php/PPU_scrolling
	vRAM    loopyRegister // current VRAM address (15 bits)
	tRAM    loopyRegister // temporary VRAM address (15 bits)
	xFine   common.Register
	wToggle common.Register

	rOAM common.Ram
	// sprite output units for the line being drawn
	pOAM [64]OamSprite
	// secondary OAM, filled by sprite evaluation for the next line
	sOAM        [64]OamSprite
	spriteCount uint8
	maxSprites  uint8

	// background fetch pipeline
	nametableEntry uint8
	attributeEntry uint8
	lowOrderByte   uint8
	highOrderByte  uint8
	rowShifter     uint64

	vRAMBuffer uint8

	// per dot draw decision
	bgIndex    uint8
	bgPalette  uint8
	fgIndex    uint8
	fgPalette  uint8
	fgPriority bool
	fgSprite0  bool

	nmiOut          bool
	suppressVBlank  bool

	Palette Palette

	framebuffer *common.Framebuffer
}

// Init connects the ppu to its own address space. spriteLimit keeps
// the hardware 8 sprites per line cap; turning it off is a de-flicker
// cheat that renders all 64.
func (p *Ppu) Init(busInt common.BusInt, verbose bool, interrupts common.InterruptLines,
	framebuffer *common.Framebuffer, spriteLimit bool) {
	p.verbose = verbose
	p.BusInt = busInt
	p.interrupts = interrupts
	p.framebuffer = framebuffer

	p.maxSprites = 64
	if spriteLimit {
		p.maxSprites = 8
	}

	p.reinit()
}

func (p *Ppu) reinit() {
	p.cycle = 0
	p.scanLine = 261
	p.odd = false
	p.nmiOut = false
	p.suppressVBlank = false
	p.vRAMBuffer = 0
	p.rowShifter = 0

	p.rOAM.InitNfill(256, 0xFE)
	p.clearSprites()
	p.Palette.init()
	p.initRegisters()
}

func (p *Ppu) Reset() {
	p.reinit()
}

// Exec runs a single ppu dot.
func (p *Ppu) Exec() {
	if p.cycle == 1 {
		switch p.scanLine {
		case 241:
			p.startVBlank()
		case 261:
			p.stopVBlank()
		}
	}

	// setup values for this dot's draw decision
	x := uint8(p.cycle - 1)
	y := uint8(p.scanLine)
	p.bgIndex = 0
	p.bgPalette = 0
	p.fgIndex = 0
	p.fgPalette = 0
	p.fgPriority = false
	p.fgSprite0 = false

	// http://wiki.nesdev.com/w/images/d/d1/Ntsc_timing.png
	visibleLine := p.scanLine < 240
	preRenderLine := p.scanLine == 261
	renderLine := visibleLine || preRenderLine
	visibleCycle := p.cycle >= 1 && p.cycle <= 256
	fetchCycle := visibleCycle || (p.cycle >= 321 && p.cycle <= 336)

	if p.renderingEnabled() {
		if renderLine && fetchCycle {
			if visibleLine && visibleCycle && p.showBackground() {
				if p.showBackgroundLeft() || x > 7 {
					bgPix := p.getBgPixel()
					p.bgIndex = bgPix & 0x3
					p.bgPalette = (bgPix >> 2) & 0x3
				}
			}

			p.updateShifter()
			switch p.cycle % 8 {
			case 1:
				p.nametableEntry = p.BusInt.Read8(0x2000 | (p.vRAM.Val & 0x0FFF))
			case 3:
				//  NN 1111 YYY XXX
				//  || |||| ||| +++-- high 3 bits of coarse X (X/4)
				//  || |||| +++------ high 3 bits of coarse Y (Y/4)
				//  || ++++---------- attribute offset (960 bytes)
				//  ++--------------- nametable select
				vv := 0x2000 | 0x03C0 | p.vRAM.getNameTables()<<10 |
					((p.vRAM.getCoarseY() >> 2) << 3) | (p.vRAM.getCoarseX() >> 2)
				p.attributeEntry = p.BusInt.Read8(vv)

				// BR BL TR TL, shift to the right half nibble
				if (p.vRAM.getCoarseY() & 0x02) != 0 {
					p.attributeEntry >>= 4
				}
				if (p.vRAM.getCoarseX() & 0x02) != 0 {
					p.attributeEntry >>= 2
				}
			case 5:
				p.lowOrderByte = p.BusInt.Read8(p.getBackgroundTable() |
					uint16(p.nametableEntry)<<4 | p.vRAM.getFineY())
			case 7:
				p.highOrderByte = p.BusInt.Read8(p.getBackgroundTable() |
					uint16(p.nametableEntry)<<4 | p.vRAM.getFineY() | 8)
			case 0:
				p.buildBgPixelRow()
				p.incHori()
			}
		}

		if renderLine {
			if p.cycle == 256 {
				p.incVert()
			}
			if p.cycle == 257 {
				// Horizontal(v) = Horizontal(t)
				p.vRAM.copyHori(p.tRAM)
			}
		}

		if preRenderLine && p.cycle >= 280 && p.cycle <= 304 {
			// Vertical(v) = Vertical(t)
			p.vRAM.copyVert(p.tRAM)
		}
	}

	if visibleLine && p.showSprites() {
		switch p.cycle {
		// the hardware spreads these over the whole line, bundling each
		// phase on its first dot keeps the observable behaviour
		case 1:
			p.clearSecOAM()
		case 257:
			p.evalSprites()
		case 321:
			p.loadSprites()
		}

		if visibleCycle {
			p.spritePixel(x)
		}
	}

	if visibleLine && visibleCycle {
		p.drawPixel(x, y, p.muxPixel(x))
	}

	p.advanceDot()
}

func (p *Ppu) advanceDot() {
	p.cycle++

	// odd frames are one dot shorter when rendering: the pre-render
	// line's last idle dot is skipped
	if p.cycle == 340 && p.scanLine == 261 && p.odd && p.renderingEnabled() {
		p.cycle++
	}

	if p.cycle > 340 {
		p.cycle = 0
		p.scanLine++
		if p.scanLine > 261 {
			p.scanLine = 0
			p.odd = !p.odd
		}
	}
}

func (p *Ppu) startVBlank() {
	p.framebuffer.Swap()

	if !p.suppressVBlank {
		p.regs[PPUSTATUS].Set(statusVBlank)
		if p.nmiOut {
			p.interrupts.Raise(common.IntNMI)
		}
	}
	p.suppressVBlank = false
}

func (p *Ppu) stopVBlank() {
	p.regs[PPUSTATUS].Clr(statusVBlank | statusSprite0Hit | statusSpriteOverflow)
}

// Increment Horizontal(v)
func (p *Ppu) incHori() {
	if p.vRAM.getCoarseX() == 31 {
		p.vRAM.setCoarseX(0)
		p.vRAM.flipNameTableH()
	} else {
		p.vRAM.setCoarseX(p.vRAM.getCoarseX() + 1)
	}
}

// Increment Vertical(v)
func (p *Ppu) incVert() {
	fineY := p.vRAM.getFineY()
	if fineY < 7 {
		p.vRAM.setFineY(fineY + 1)
		return
	}
	p.vRAM.setFineY(0)
	y := p.vRAM.getCoarseY()
	switch y {
	case 29:
		y = 0
		p.vRAM.flipNameTableV()
	case 31:
		// coarse Y past the nametable wraps without switching it
		y = 0
	default:
		y++
	}
	p.vRAM.setCoarseY(y)
}

func (p *Ppu) updateShifter() {
	// palette and pixel index, aaii per pixel
	p.rowShifter <<= 4
}

// 1 row of aaii*8
func (p *Ppu) buildBgPixelRow() {
	attr := (p.attributeEntry & 0x3) << 2
	for i := uint(0); i < 8; i++ {
		pixel := uint64(attr | (p.highOrderByte>>6)&2 | (p.lowOrderByte>>7)&1)
		p.rowShifter |= pixel << ((7 - i) * 4)
		p.highOrderByte <<= 1
		p.lowOrderByte <<= 1
	}
}

func (p *Ppu) getBgPixel() uint8 {
	return uint8(p.rowShifter >> (32 + ((7 - p.xFine.Val) * 4)))
}

// muxPixel picks between background and sprite per transparency
// (index 0) and the sprite priority bit
func (p *Ppu) muxPixel(x uint8) color.RGBA {
	var addr uint16
	switch {
	case p.bgIndex == 0 && p.fgIndex == 0:
		addr = 0x3F00
	case p.bgIndex == 0 && p.fgIndex > 0:
		addr = 0x3F00 + uint16((p.fgPalette+4)*4+p.fgIndex)
	case p.bgIndex > 0 && p.fgIndex == 0:
		addr = 0x3F00 + uint16(p.bgPalette*4+p.bgIndex)
	default:
		if p.fgSprite0 && x != 255 {
			p.regs[PPUSTATUS].Set(statusSprite0Hit)
		}
		if p.fgPriority {
			addr = 0x3F00 + uint16((p.fgPalette+4)*4+p.fgIndex)
		} else {
			addr = 0x3F00 + uint16(p.bgPalette*4+p.bgIndex)
		}
	}

	idx := p.BusInt.Read8(addr)
	if p.greyscale() {
		idx &= 0x30
	}
	return p.Palette.nesPalette[idx%64]
}

func (p *Ppu) drawPixel(x, y uint8, c color.RGBA) {
	p.framebuffer.Write()[uint(y)*common.FrameXWidth+uint(x)] = c
}

// A12OutputHigh proxies the pattern table address line the MMC3 counts
// scanlines with. The line rises once per rendered line: around dot
// 260 when the background fetches from $0000 (sprites from $1000), or
// dot 324 when the background table is at $1000.
func (p *Ppu) A12OutputHigh() bool {
	if !p.renderingEnabled() {
		return false
	}
	if p.scanLine >= 240 && p.scanLine != 261 {
		return false
	}
	cycle := 260
	if p.getBackgroundTable() == 0x1000 {
		cycle = 324
	}
	return p.cycle == cycle
}

// VBlank reports whether the vblank flag is up, without the read side
// effects of PPUSTATUS.
func (p *Ppu) VBlank() bool {
	return p.regs[PPUSTATUS].Val&statusVBlank != 0
}

// Dot returns the current scanline and cycle.
func (p *Ppu) Dot() (scanLine, cycle int) {
	return p.scanLine, p.cycle
}

// cpu facing register file at $2000-$2007, mirrored every 8 bytes up
// to $3FFF

// BusInt
func (p *Ppu) Read8(addr uint16) uint8 {
	switch 0x2000 + addr%8 {
	case 0x2002:
		return p.regs[PPUSTATUS].Read()
	case 0x2004:
		return p.regs[OAMDATA].Read()
	case 0x2007:
		return p.regs[PPUDATA].Read()
	}
	// write only registers read back the floating bus
	return p.regs[PPUSTATUS].Val & 0x1F
}

func (p *Ppu) Write8(addr uint16, val uint8) {
	p.setLastRegWrite(val)

	switch 0x2000 + addr%8 {
	case 0x2000:
		p.regs[PPUCTRL].Write(val)
	case 0x2001:
		p.regs[PPUMASK].Write(val)
	case 0x2002:
		// read only
	case 0x2003:
		p.regs[OAMADDR].Write(val)
	case 0x2004:
		p.regs[OAMDATA].Write(val)
	case 0x2005:
		p.regs[PPUSCROLL].Write(val)
	case 0x2006:
		p.regs[PPUADDR].Write(val)
	case 0x2007:
		p.regs[PPUDATA].Write(val)
	}
}
