package apu

import (
	"testing"

	"github.com/famicore/famicore/lib/common"
	"github.com/famicore/famicore/lib/speakers"
)

type flatBus struct {
	mem [0x10000]uint8
}

func (b *flatBus) Read8(addr uint16) uint8 {
	return b.mem[addr]
}
func (b *flatBus) Write8(addr uint16, val uint8) {
	b.mem[addr] = val
}

type irqRec struct {
	lines uint8
}

func (r *irqRec) Raise(mask uint8) {
	r.lines |= mask
}
func (r *irqRec) Clear(mask uint8) {
	r.lines &= ^mask
}

func newTestApu(lib speakers.AudioLib) (*Apu, *irqRec) {
	rec := &irqRec{}
	a := &Apu{}
	a.Init(&flatBus{}, rec, false, false, lib)
	return a, rec
}

func TestFourStepFrameIrq(t *testing.T) {
	a, rec := newTestApu(speakers.Nil)
	a.Write8(0x4017, 0x00)

	a.Ticks(4*NesApuFrameCycles - 1)
	if rec.lines&common.IntIrqApu != 0 {
		t.Fatalf("frame irq raised before the sequence completed")
	}

	a.Ticks(1)
	if rec.lines&common.IntIrqApu == 0 {
		t.Fatalf("frame irq not raised at the end of the 4 step sequence")
	}

	status := a.Read8(0x4015)
	if status&bFrameIrq == 0 {
		t.Fatalf("status read did not report the frame irq")
	}
	if rec.lines&common.IntIrqApu != 0 {
		t.Errorf("status read did not drop the irq line")
	}
	if a.Read8(0x4015)&bFrameIrq != 0 {
		t.Errorf("frame irq flag survived the status read")
	}
}

func TestFrameIrqInhibit(t *testing.T) {
	a, rec := newTestApu(speakers.Nil)

	a.Write8(0x4017, 0x40)
	a.Ticks(4 * NesApuFrameCycles)
	if rec.lines&common.IntIrqApu != 0 {
		t.Fatalf("inhibited frame irq was raised")
	}
	if a.Read8(0x4015)&bFrameIrq != 0 {
		t.Fatalf("inhibited frame irq flag was set")
	}

	// the inhibit bit also clears a pending interrupt
	a.Write8(0x4017, 0x00)
	a.Ticks(4 * NesApuFrameCycles)
	if rec.lines&common.IntIrqApu == 0 {
		t.Fatalf("frame irq not raised after re-enabling")
	}
	a.Write8(0x4017, 0x40)
	if rec.lines&common.IntIrqApu != 0 {
		t.Errorf("pending frame irq survived the inhibit write")
	}
}

func TestFiveStepModeRaisesNoIrq(t *testing.T) {
	a, rec := newTestApu(speakers.Nil)

	a.Write8(0x4017, 0x80)
	a.Ticks(10 * NesApuFrameCycles)
	if rec.lines&common.IntIrqApu != 0 {
		t.Errorf("5 step mode raised a frame irq")
	}
}

func TestFiveStepWriteClocksImmediately(t *testing.T) {
	a, _ := newTestApu(speakers.Nil)

	a.Write8(0x4015, 0x01) // enable pulse 1
	a.Write8(0x4000, 0x00) // halt off
	a.Write8(0x4003, 0x18) // length 2

	if a.Read8(0x4015)&bP1 == 0 {
		t.Fatalf("pulse 1 length did not load")
	}

	// each write to $4017 with the mode bit set clocks the length
	// counters straight away
	a.Write8(0x4017, 0x80)
	if a.Read8(0x4015)&bP1 == 0 {
		t.Fatalf("length drained after a single immediate clock")
	}
	a.Write8(0x4017, 0x80)
	if a.Read8(0x4015)&bP1 != 0 {
		t.Errorf("length still up after two immediate clocks")
	}
}

func TestLengthCountersClockedAtHalfFrames(t *testing.T) {
	a, _ := newTestApu(speakers.Nil)

	a.Write8(0x4015, 0x01)
	a.Write8(0x4000, 0x00)
	a.Write8(0x4003, 0x18) // length 2
	a.Write8(0x4017, 0x00)

	// 4 step mode clocks the length counters at steps 2 and 0
	a.Ticks(2 * NesApuFrameCycles)
	if a.Read8(0x4015)&bP1 == 0 {
		t.Fatalf("length drained after a single half frame")
	}
	a.Ticks(2 * NesApuFrameCycles)
	if a.Read8(0x4015)&bP1 != 0 {
		t.Errorf("length still up after two half frames")
	}
}

func TestStatusReadClearsFrameIrqNotDmc(t *testing.T) {
	a, rec := newTestApu(speakers.Nil)

	// a 1 byte non looping sample with the irq enabled ends immediately
	a.Write8(0x4010, 0x8F)
	a.Write8(0x4013, 0x00)
	a.Write8(0x4015, 0x10)
	a.Ticks(2)
	if rec.lines&common.IntIrqDmc == 0 {
		t.Fatalf("dmc irq not raised at sample end")
	}

	a.Ticks(4 * NesApuFrameCycles)
	if rec.lines&common.IntIrqApu == 0 {
		t.Fatalf("frame irq not raised")
	}

	status := a.Read8(0x4015)
	if status&bFrameIrq == 0 || status&bDmcIrq == 0 {
		t.Fatalf("status did not report both irqs: %#02x", status)
	}

	status = a.Read8(0x4015)
	if status&bFrameIrq != 0 {
		t.Errorf("frame irq flag survived the status read")
	}
	if status&bDmcIrq == 0 {
		t.Errorf("status read cleared the dmc irq flag")
	}
	if rec.lines&common.IntIrqDmc == 0 {
		t.Errorf("status read dropped the dmc irq line")
	}
}

func TestChannelDisableZeroesLength(t *testing.T) {
	a, _ := newTestApu(speakers.Nil)

	a.Write8(0x4015, 0x01)
	a.Write8(0x4003, 0x08) // length 254

	if a.Read8(0x4015)&bP1 == 0 {
		t.Fatalf("pulse 1 length did not load")
	}

	a.Write8(0x4015, 0x00)
	if a.Read8(0x4015)&bP1 != 0 {
		t.Fatalf("disable kept the length counter")
	}

	// re-enabling does not bring the old length back
	a.Write8(0x4015, 0x01)
	if a.Read8(0x4015)&bP1 != 0 {
		t.Errorf("enable restored a zeroed length counter")
	}
}

func TestSamplePacing(t *testing.T) {
	a, _ := newTestApu(speakers.Queue)
	queue := a.Speaker().(*speakers.SpeakerQueue)
	queue.Drain()

	a.Ticks(NesBaseFrequency)

	got := len(queue.Drain())
	want := a.speaker.SampleRate()
	if got < want-2 || got > want+2 {
		t.Errorf("samples in one emulated second: got %v, want about %v", got, want)
	}
}
