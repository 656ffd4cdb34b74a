package waves

import (
	"testing"

	"github.com/famicore/famicore/lib/common"
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

func TestDurationCounterTable(t *testing.T) {
	cases := []struct {
		load uint8
		want uint8
	}{
		{0x00, 10},
		{0x01, 254},
		{0x03, 2},
		{0x0F, 14},
		{0x10, 12},
		{0x18, 192},
		{0x1F, 30},
	}
	for _, c := range cases {
		if got := DurationCounterTable(c.load); got != c.want {
			t.Errorf("load %#02x: got %v, want %v", c.load, got, c.want)
		}
	}
}

func TestDurationCounterHaltAndFloor(t *testing.T) {
	d := DurationCounter{}
	d.reset()
	d.set(false)
	d.reload(0x03) // 2

	d.tick()
	if d.mute() {
		t.Fatalf("muted after a single tick of a 2 tick counter")
	}
	d.tick()
	if !d.mute() {
		t.Fatalf("not muted after the counter ran out")
	}

	// never underflows
	d.tick()
	if d.counter != 0 {
		t.Errorf("counter underflowed to %v", d.counter)
	}

	// halting freezes the count
	d.reload(0x03)
	d.set(true)
	d.tick()
	d.tick()
	d.tick()
	if d.counter != 2 {
		t.Errorf("halted counter moved, got %v", d.counter)
	}
}

func TestSweepOnesComplementNegate(t *testing.T) {
	p1, p2 := &Pulse{}, &Pulse{}
	p1.Init(true)
	p2.Init(false)
	p1.setPeriod(0x200)
	p2.setPeriod(0x200)

	for _, p := range []*Pulse{p1, p2} {
		p.sweep.negate = true
		p.sweep.shift = 1
	}

	if got := p1.sweep.targetPeriod(); got != 0x0FF {
		t.Errorf("pulse 1 target: got %#x, want 0xff", got)
	}
	if got := p2.sweep.targetPeriod(); got != 0x100 {
		t.Errorf("pulse 2 target: got %#x, want 0x100", got)
	}
}

func TestSweepMuting(t *testing.T) {
	p := &Pulse{}
	p.Init(true)

	// target period overflow mutes even with the sweep disabled
	p.setPeriod(0x7FF)
	p.sweep.shift = 1
	if !p.sweep.mute() {
		t.Errorf("overflowing target did not mute")
	}

	// a too small current period always mutes
	p.setPeriod(4)
	if !p.sweep.mute() {
		t.Errorf("period below 8 did not mute")
	}

	p.setPeriod(0x100)
	if p.sweep.mute() {
		t.Errorf("healthy period muted")
	}
}

func TestSweepShiftZeroNeverUpdates(t *testing.T) {
	p := &Pulse{}
	p.Init(true)
	p.setPeriod(0x100)
	p.sweep.enabled = true
	p.sweep.shift = 0
	p.sweep.divider = 0

	p.sweep.tick()
	if p.getPeriod() != 0x100 {
		t.Errorf("period changed with shift 0: %#x", p.getPeriod())
	}
}

func TestSweepUpdatesOnDividerExpiry(t *testing.T) {
	p := &Pulse{}
	p.Init(true)
	p.setPeriod(0x100)
	p.sweep.enabled = true
	p.sweep.shift = 2
	p.sweep.dividerReload = 1
	p.sweep.divider = 1

	p.sweep.tick() // divider 1 -> 0, no update yet
	if p.getPeriod() != 0x100 {
		t.Fatalf("period changed before the divider expired")
	}
	p.sweep.tick() // divider 0: update and reload
	if p.getPeriod() != 0x140 {
		t.Errorf("period after sweep: got %#x, want 0x140", p.getPeriod())
	}
}

func TestEnvelopeDecayAndLoop(t *testing.T) {
	e := Envelope{}
	e.reset()
	e.reload = 0 // divider period 1
	e.start = true

	e.tick()
	if e.decay != 15 {
		t.Fatalf("decay after start: got %v, want 15", e.decay)
	}

	for i := 0; i < 15; i++ {
		e.tick()
	}
	if e.decay != 0 {
		t.Fatalf("decay after draining: got %v, want 0", e.decay)
	}

	// without loop it stays at 0
	e.tick()
	if e.decay != 0 {
		t.Errorf("decay moved without loop: %v", e.decay)
	}

	e.loop = true
	e.tick()
	if e.decay != 15 {
		t.Errorf("looped decay: got %v, want 15", e.decay)
	}
}

func TestLinearCounterReloadFlag(t *testing.T) {
	l := LinearCounter{}
	l.reset()
	l.setup(false, 5)
	l.start()

	l.tick() // reload, then clears the flag since control is off
	if l.counter != 5 || l.reload {
		t.Fatalf("after reload tick: counter %v reload %v", l.counter, l.reload)
	}
	l.tick()
	if l.counter != 4 {
		t.Errorf("counter: got %v, want 4", l.counter)
	}

	// with control on the flag sticks and keeps reloading
	l.setup(true, 5)
	l.start()
	l.tick()
	l.tick()
	if l.counter != 5 || !l.reload {
		t.Errorf("control reload: counter %v reload %v", l.counter, l.reload)
	}
}

func TestTriangleFreezesWhenMuted(t *testing.T) {
	tri := &Triangle{}
	tri.Init()
	tri.Enable(true)
	tri.Write8(0x4008, 0x02) // linear reload 2
	tri.Write8(0x400A, 0x00) // period 0, sequencer steps every tick
	tri.Write8(0x400B, 0x08) // length load 1 -> 254, starts linear
	tri.QuarterFrameTick()   // linear counter = 2

	tri.Tick()
	tri.Tick()
	moved := tri.Sample()
	if moved != 13 {
		t.Fatalf("sequencer: got %v, want 13", moved)
	}

	// drain the linear counter, the output holds its level
	tri.QuarterFrameTick()
	tri.QuarterFrameTick()
	tri.Tick()
	tri.Tick()
	if got := tri.Sample(); got != moved {
		t.Errorf("muted triangle moved: got %v, want %v", got, moved)
	}
}

func TestNoiseLfsrTaps(t *testing.T) {
	n := &Noise{}
	n.Init()
	n.Write8(0x400E, 0x00) // mode 0, fastest period

	// shift register starts at 1: feedback = bit0 ^ bit1 = 1
	n.shiftRegister = 1
	n.timer.timer = 0
	n.Tick()
	if n.shiftRegister != 0x4000 {
		t.Errorf("mode 0 shift: got %#x, want 0x4000", n.shiftRegister)
	}

	n.Write8(0x400E, 0x80) // mode 1, tap bit 6
	n.shiftRegister = 0x40
	n.timer.timer = 0
	n.Tick()
	if n.shiftRegister != 0x4020 {
		t.Errorf("mode 1 shift: got %#x, want 0x4020", n.shiftRegister)
	}
}

func TestPulseWriteSemantics(t *testing.T) {
	p := &Pulse{}
	p.Init(true)

	// length loads are gated by the enable flag
	p.Write8(0x4003, 0x08)
	if p.Enabled() {
		t.Fatalf("disabled pulse loaded a length")
	}
	p.Enable(true)
	p.Write8(0x4003, 0x08)
	if !p.Enabled() {
		t.Fatalf("enabled pulse did not load a length")
	}

	// the high timer write restarts the sequence and the envelope
	p.sequencer.column = 5
	p.envelope.start = false
	p.Write8(0x4003, 0x08)
	if p.sequencer.column != 0 {
		t.Errorf("sequence did not restart, column %v", p.sequencer.column)
	}
	if !p.envelope.start {
		t.Errorf("envelope start flag not raised")
	}

	// disabling zeroes the length counter
	p.Enable(false)
	if p.Enabled() {
		t.Errorf("disable kept the length counter")
	}
}

func TestDmcSampleEndIrq(t *testing.T) {
	bus := &flatBus{}
	rec := &irqRec{}
	d := &Dmc{}
	d.Init(bus, rec)

	d.Write8(0x4010, 0x8F) // irq enable, fastest rate
	d.Write8(0x4013, 0x00) // 1 byte sample
	d.Enable(true)

	d.Tick() // fetches the only byte, the sample ends
	if !d.IrqAsserted() {
		t.Fatalf("irq flag not set at sample end")
	}
	if rec.lines&common.IntIrqDmc == 0 {
		t.Fatalf("irq line not raised")
	}

	// dropping the irq enable bit clears the flag and the line
	d.Write8(0x4010, 0x0F)
	if d.IrqAsserted() || rec.lines&common.IntIrqDmc != 0 {
		t.Errorf("irq not cleared by the enable bit")
	}
}

func TestDmcLoopRestarts(t *testing.T) {
	bus := &flatBus{}
	rec := &irqRec{}
	d := &Dmc{}
	d.Init(bus, rec)

	d.Write8(0x4010, 0xCF) // irq enable + loop
	d.Write8(0x4012, 0x01) // $C040
	d.Write8(0x4013, 0x00) // 1 byte sample
	d.Enable(true)

	d.Tick()
	if d.IrqAsserted() {
		t.Fatalf("looped sample raised an irq")
	}
	if !d.Enabled() {
		t.Fatalf("looped sample did not reload")
	}
	if d.sampleAddr != 0xC040 {
		t.Errorf("loop restart address: got %#x, want 0xc040", d.sampleAddr)
	}
}

func TestDmcAddressWraps(t *testing.T) {
	bus := &flatBus{}
	d := &Dmc{}
	d.Init(bus, &irqRec{})

	d.sampleAddr = 0xFFFF
	d.sampleLen = 2
	d.fetch()
	if d.sampleAddr != 0x8000 {
		t.Errorf("address after $ffff: got %#x, want 0x8000", d.sampleAddr)
	}
}

func TestDmcOutputLevelClamps(t *testing.T) {
	bus := &flatBus{}
	d := &Dmc{}
	d.Init(bus, &irqRec{})

	d.Write8(0x4011, 0x7E)
	d.silenceFlag = false
	d.shiftRegister = 0xFF
	d.bitsRemaining = 8
	d.timer.timer = 0
	d.Tick()
	if d.outputLevel != 0x7E {
		t.Errorf("output level rose past 125: %v", d.outputLevel)
	}

	d.Write8(0x4011, 0x01)
	d.silenceFlag = false
	d.shiftRegister = 0x00
	d.bitsRemaining = 8
	d.timer.timer = 0
	d.Tick()
	if d.outputLevel != 0x01 {
		t.Errorf("output level fell below 0: %v", d.outputLevel)
	}
}
