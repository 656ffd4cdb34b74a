package ppu

// http://wiki.nesdev.com/w/index.php/PPU_OAM
type OamSprite struct {
	// Y position of top of sprite
	yPos uint8
	// Tile index number
	tIndex uint8
	// Sprite Attributes
	attributes uint8
	// X position of left side of sprite
	xPos uint8

	// pattern row for the current line
	lsbIndex uint8
	msbIndex uint8

	// index into primary OAM, 64 marks an empty unit
	id uint8
}

const (
	attrPalette  = 0x03
	attrPriority = 0x20
	attrFlipH    = 0x40
	attrFlipV    = 0x80
)

func (p *Ppu) clearSprites() {
	for i := range p.pOAM {
		p.pOAM[i] = OamSprite{id: 64}
		p.sOAM[i] = OamSprite{id: 64}
	}
	p.spriteCount = 0
}

// the secondary OAM clear the hardware runs over dots 1-64
func (p *Ppu) clearSecOAM() {
	for i := range p.sOAM {
		p.sOAM[i] = OamSprite{
			yPos:       0xFF,
			tIndex:     0xFF,
			attributes: 0xFF,
			xPos:       0xFF,
			id:         64,
		}
	}
}

// evalSprites scans primary OAM for sprites in range of the next line.
// Sprites show up one line below their Y byte, which is why the range
// test uses the line the evaluation runs on.
func (p *Ppu) evalSprites() {
	_, h := p.getSpriteSize()
	p.spriteCount = 0

	n := 0
	for ; n < 64 && p.spriteCount < p.maxSprites; n++ {
		y := p.rOAM.Read8(uint16(n * 4))
		row := p.scanLine - int(y)
		if row < 0 || row >= int(h) {
			continue
		}
		s := &p.sOAM[p.spriteCount]
		s.yPos = y
		s.tIndex = p.rOAM.Read8(uint16(n*4 + 1))
		s.attributes = p.rOAM.Read8(uint16(n*4 + 2))
		s.xPos = p.rOAM.Read8(uint16(n*4 + 3))
		s.id = uint8(n)
		p.spriteCount++
	}

	if p.spriteCount == 8 && p.maxSprites == 8 {
		p.evalOverflow(n, int(h))
	} else if p.spriteCount > 8 {
		// limit disabled: the flag still reflects what the hardware
		// would have set
		p.regs[PPUSTATUS].Set(statusSpriteOverflow)
	}
}

// the ninth sprite search is broken in hardware: once eight are found
// the evaluator starts bumping both the sprite index and the byte
// offset, so it mostly tests tile/attribute/X bytes as Y coordinates.
// False positives and negatives included.
func (p *Ppu) evalOverflow(n int, h int) {
	m := 0
	for ; n < 64; n++ {
		y := p.rOAM.Read8(uint16(n*4 + m))
		row := p.scanLine - int(y)
		if row >= 0 && row < h {
			p.regs[PPUSTATUS].Set(statusSpriteOverflow)
			return
		}
		m = (m + 1) % 4
	}
}

// loadSprites turns secondary OAM into the output units for the next
// line, fetching each sprite's pattern row.
func (p *Ppu) loadSprites() {
	_, h := p.getSpriteSize()
	for i := range p.pOAM {
		p.pOAM[i] = p.sOAM[i]
		s := &p.pOAM[i]
		if s.id == 64 {
			continue
		}

		row := p.scanLine - int(s.yPos)
		if s.attributes&attrFlipV != 0 {
			row = int(h) - 1 - row
		}

		var addr uint16
		if h == 16 {
			// 8x16 sprites take their table from tile bit 0 and span
			// two consecutive tiles
			tile := s.tIndex
			addr = uint16(tile&1)*0x1000 + uint16(tile&0xFE)*16 +
				uint16(row) + uint16(row&8)
		} else {
			addr = p.getSpritePattern() + uint16(s.tIndex)*16 + uint16(row)
		}

		s.lsbIndex = p.BusInt.Read8(addr)
		s.msbIndex = p.BusInt.Read8(addr + 8)
	}
}

// spritePixel finds the first non transparent sprite pixel at x and
// leaves it in the fg draw state for the mux.
func (p *Ppu) spritePixel(x uint8) {
	if !p.showSpritesLeft() && x <= 7 {
		return
	}
	for i := uint8(0); i < p.maxSprites; i++ {
		s := &p.pOAM[i]
		if s.id == 64 {
			break
		}

		xi := uint(x) - uint(s.xPos)
		if xi >= 8 {
			continue
		}

		bit := 8 - xi - 1
		if s.attributes&attrFlipH != 0 {
			bit = xi
		}

		b0 := (s.lsbIndex >> bit) & 1
		b1 := (s.msbIndex >> bit) & 1
		index := b0 | (b1 << 1)
		if index == 0 {
			continue
		}

		// first opaque pixel wins regardless of priority
		p.fgIndex = index
		p.fgPalette = s.attributes & attrPalette
		p.fgPriority = s.attributes&attrPriority == 0
		p.fgSprite0 = s.id == 0
		return
	}
}
