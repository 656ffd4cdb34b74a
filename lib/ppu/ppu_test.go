package ppu

import (
	"testing"

	"github.com/famicore/famicore/lib/common"
)

// minimal ppu address space: 8K CHR RAM, vertically mirrored
// nametables and the ppu's own palette RAM
type ppuTestBus struct {
	chr [0x2000]uint8
	nt  common.NameTables
	pal *Palette
}

func (b *ppuTestBus) Read8(addr uint16) uint8 {
	addr %= 0x4000
	switch {
	case addr < 0x2000:
		return b.chr[addr]
	case addr < 0x3F00:
		return b.nt.Read8(addr)
	default:
		return b.pal.Read8(addr)
	}
}
func (b *ppuTestBus) Write8(addr uint16, val uint8) {
	addr %= 0x4000
	switch {
	case addr < 0x2000:
		b.chr[addr] = val
	case addr < 0x3F00:
		b.nt.Write8(addr, val)
	default:
		b.pal.Write8(addr, val)
	}
}

type intRec struct {
	nmiCount int
	raised   uint8
}

func (r *intRec) Raise(flags uint8) {
	if flags&common.IntNMI != 0 {
		r.nmiCount++
	}
	r.raised |= flags
}
func (r *intRec) Clear(flags uint8) {
	r.raised &= ^flags
}

func newTestPpu() (*Ppu, *ppuTestBus, *intRec) {
	p := &Ppu{}
	bus := &ppuTestBus{}
	bus.nt.Init(common.VerticalMirroring)
	ir := &intRec{}
	fb := &common.Framebuffer{}
	fb.Init()
	p.Init(bus, false, ir, fb, true)
	bus.pal = &p.Palette
	return p, bus, ir
}

func runFrame(p *Ppu) int {
	fb := p.framebuffer
	start := fb.Frames
	dots := 0
	for fb.Frames == start {
		p.Exec()
		dots++
	}
	return dots
}

func TestVBlankAndNmiTiming(t *testing.T) {
	p, _, ir := newTestPpu()
	p.Write8(0x2000, 0x80) // NMI on

	for i := 0; !p.VBlank(); i++ {
		p.Exec()
		if i > 341*262 {
			t.Fatal("vblank flag never went up")
		}
	}
	sl, cy := p.Dot()
	if sl != 241 || cy != 2 {
		t.Errorf("vblank raised at (%d,%d), want right after (241,1)", sl, cy)
	}
	if ir.nmiCount != 1 {
		t.Fatalf("nmi raised %d times, want 1", ir.nmiCount)
	}

	// stays up until the pre-render line clears it
	for i := 0; p.VBlank(); i++ {
		p.Exec()
		if i > 341*30 {
			t.Fatal("vblank flag never cleared")
		}
	}
	sl, _ = p.Dot()
	if sl != 261 {
		t.Errorf("vblank cleared on line %d, want 261", sl)
	}
	if ir.nmiCount != 1 {
		t.Errorf("nmi raised %d times in one frame, want 1", ir.nmiCount)
	}
}

func TestNmiOncePerFrame(t *testing.T) {
	p, _, ir := newTestPpu()
	p.Write8(0x2000, 0x80)

	for i := 0; i < 341*262*3; i++ {
		p.Exec()
	}
	if ir.nmiCount != 3 {
		t.Errorf("nmi raised %d times over 3 frames, want 3", ir.nmiCount)
	}
}

func TestNmiDisabled(t *testing.T) {
	p, _, ir := newTestPpu()
	for i := 0; i < 341*262; i++ {
		p.Exec()
	}
	if ir.nmiCount != 0 {
		t.Errorf("nmi raised %d times with generation off, want 0", ir.nmiCount)
	}
}

func TestEnablingNmiDuringVBlankRaisesIt(t *testing.T) {
	p, _, ir := newTestPpu()

	for !p.VBlank() {
		p.Exec()
	}
	if ir.nmiCount != 0 {
		t.Fatal("nmi raised while disabled")
	}
	p.Write8(0x2000, 0x80)
	if ir.nmiCount != 1 {
		t.Errorf("enabling nmi mid vblank raised %d, want 1", ir.nmiCount)
	}
}

func TestStatusReadClearsFlagAndToggle(t *testing.T) {
	p, _, _ := newTestPpu()
	for !p.VBlank() {
		p.Exec()
	}

	p.Write8(0x2006, 0x20) // w: 0 -> 1
	val := p.Read8(0x2002)
	if val&statusVBlank == 0 {
		t.Error("status read should report vblank")
	}
	if p.VBlank() {
		t.Error("status read should clear the vblank flag")
	}
	if p.wToggle.Val != 0 {
		t.Error("status read should reset the write toggle")
	}

	if val = p.Read8(0x2002); val&statusVBlank != 0 {
		t.Error("second status read should report vblank clear")
	}
}

func TestStatusReadRaceCancelsNmi(t *testing.T) {
	p, _, ir := newTestPpu()
	p.Write8(0x2000, 0x80)
	for !p.VBlank() {
		p.Exec()
	}
	// dot (241,2): flag reads set but the nmi for this frame is lost
	p.Read8(0x2002)
	if ir.raised&common.IntNMI != 0 {
		t.Error("status read in the race window should cancel the nmi")
	}
}

func TestPpuDataBufferedRead(t *testing.T) {
	p, bus, _ := newTestPpu()
	bus.nt.Write8(0x2005, 0x42)

	p.Write8(0x2006, 0x20)
	p.Write8(0x2006, 0x05)

	if v := p.Read8(0x2007); v != 0 {
		t.Errorf("first read returned 0x%02x, want stale buffer 0", v)
	}
	if v := p.Read8(0x2007); v != 0x42 {
		t.Errorf("second read returned 0x%02x, want 0x42", v)
	}
}

func TestPpuDataPaletteReadIsImmediate(t *testing.T) {
	p, _, _ := newTestPpu()

	p.Write8(0x2006, 0x3F)
	p.Write8(0x2006, 0x00)
	p.Write8(0x2007, 0x21)

	p.Write8(0x2006, 0x3F)
	p.Write8(0x2006, 0x00)
	if v := p.Read8(0x2007); v != 0x21 {
		t.Errorf("palette read returned 0x%02x, want 0x21", v)
	}
}

func TestPaletteMirrors(t *testing.T) {
	p, _, _ := newTestPpu()
	p.Palette.Write8(0x3F10, 0x2A)
	if v := p.Palette.Read8(0x3F00); v != 0x2A {
		t.Errorf("$3F10 write did not mirror to $3F00, got 0x%02x", v)
	}
	p.Palette.Write8(0x3F04, 0x11)
	if v := p.Palette.Read8(0x3F14); v != 0x11 {
		t.Errorf("$3F14 read did not mirror $3F04, got 0x%02x", v)
	}
}

func TestVRamIncrementStride(t *testing.T) {
	p, _, _ := newTestPpu()

	p.Write8(0x2006, 0x20)
	p.Write8(0x2006, 0x00)
	p.Read8(0x2007)
	if p.vRAM.Val != 0x2001 {
		t.Errorf("vram = 0x%04x, want 0x2001", p.vRAM.Val)
	}

	p.Write8(0x2000, 0x04) // +32 mode
	p.Read8(0x2007)
	if p.vRAM.Val != 0x2021 {
		t.Errorf("vram = 0x%04x, want 0x2021", p.vRAM.Val)
	}
}

func TestOamDataReadDoesNotIncrement(t *testing.T) {
	p, _, _ := newTestPpu()

	p.Write8(0x2003, 0x05)
	p.Write8(0x2004, 0xAB)
	if p.regs[OAMADDR].Val != 0x06 {
		t.Errorf("OAMADDR = 0x%02x after write, want 0x06", p.regs[OAMADDR].Val)
	}
	if v := p.rOAM.Read8(0x05); v != 0xAB {
		t.Errorf("oam[5] = 0x%02x, want 0xAB", v)
	}

	p.Write8(0x2003, 0x05)
	p.Read8(0x2004)
	if p.regs[OAMADDR].Val != 0x05 {
		t.Errorf("OAMADDR = 0x%02x after read, want 0x05", p.regs[OAMADDR].Val)
	}
}

func TestRegisterMirroring(t *testing.T) {
	p, _, _ := newTestPpu()
	// $2008 decodes as $2000
	p.Write8(0x2008, 0x80)
	if p.regs[PPUCTRL].Val != 0x80 {
		t.Errorf("PPUCTRL = 0x%02x, want 0x80 via the $2008 mirror", p.regs[PPUCTRL].Val)
	}
}

func TestOddFrameSkip(t *testing.T) {
	p, _, _ := newTestPpu()
	p.Write8(0x2001, 0x08) // background on

	runFrame(p) // settle on a frame boundary
	a := runFrame(p)
	b := runFrame(p)
	if a+b != 89341+89342 {
		t.Errorf("frame pair = %d+%d dots, want 89341+89342", a, b)
	}
	if a == b {
		t.Error("odd frames should be one dot shorter with rendering on")
	}

	// rendering off: every frame is the full 89342 dots
	p.Write8(0x2001, 0x00)
	runFrame(p)
	if dots := runFrame(p); dots != 89342 {
		t.Errorf("idle frame = %d dots, want 89342", dots)
	}
}

func TestSprite0Hit(t *testing.T) {
	p, bus, _ := newTestPpu()

	// tile 0: background, solid colour 1
	for i := 0; i < 8; i++ {
		bus.chr[i] = 0xFF
	}
	// tile 1: sprite, solid colour 1
	for i := 16; i < 24; i++ {
		bus.chr[i] = 0xFF
	}

	// sprite 0 in the middle of the screen
	p.rOAM.Write8(0, 100) // y
	p.rOAM.Write8(1, 1)   // tile
	p.rOAM.Write8(2, 0)   // attributes
	p.rOAM.Write8(3, 100) // x

	p.Write8(0x2001, 0x1E) // bg + sprites + left columns

	for i := 0; i < 341*(22+110); i++ {
		p.Exec()
	}
	if p.regs[PPUSTATUS].Val&statusSprite0Hit == 0 {
		t.Fatal("sprite 0 hit not set over an opaque background")
	}

	// cleared on the pre-render line
	for sl, _ := p.Dot(); sl != 261; sl, _ = p.Dot() {
		p.Exec()
	}
	p.Exec()
	p.Exec()
	if p.regs[PPUSTATUS].Val&statusSprite0Hit != 0 {
		t.Error("sprite 0 hit should clear on the pre-render line")
	}
}

func TestSpriteOverflowBug(t *testing.T) {
	p, _, _ := newTestPpu()
	p.Write8(0x2001, 0x10) // sprites on

	// nine sprites on line 100: the real evaluator sets overflow here
	for i := uint16(0); i < 9; i++ {
		p.rOAM.Write8(i*4+0, 100)
		p.rOAM.Write8(i*4+1, 1)
		p.rOAM.Write8(i*4+2, 0)
		p.rOAM.Write8(i*4+3, uint8(i*8))
	}

	for i := 0; i < 341*110; i++ {
		p.Exec()
	}
	if p.regs[PPUSTATUS].Val&statusSpriteOverflow == 0 {
		t.Error("nine sprites in range should set the overflow flag")
	}
}

func TestScrollRegisters(t *testing.T) {
	p, _, _ := newTestPpu()

	// $2005 x then y
	p.Write8(0x2005, 0x7D) // coarse X = 15, fine x = 5
	if p.tRAM.getCoarseX() != 15 || p.xFine.Val != 5 {
		t.Errorf("first scroll write: coarseX=%d fineX=%d, want 15/5",
			p.tRAM.getCoarseX(), p.xFine.Val)
	}
	p.Write8(0x2005, 0x5E) // coarse Y = 11, fine y = 6
	if p.tRAM.getCoarseY() != 11 || p.tRAM.getFineY() != 6 {
		t.Errorf("second scroll write: coarseY=%d fineY=%d, want 11/6",
			p.tRAM.getCoarseY(), p.tRAM.getFineY())
	}

	// $2006 shares the same toggle
	p.Write8(0x2006, 0x21)
	p.Write8(0x2006, 0x08)
	if p.vRAM.Val != 0x2108 {
		t.Errorf("vram = 0x%04x, want 0x2108", p.vRAM.Val)
	}
}
