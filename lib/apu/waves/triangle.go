package waves

// Triangle is the 32 step triangle channel at $4008-$400B. Its timer
// runs at CPU rate, twice the pace of the pulse timers.
type Triangle struct {
	sequencer Sequencer
	duration  DurationCounter
	linearCnt LinearCounter

	clock   uint64
	period  uint16
	enabled bool
}

func (t *Triangle) setPeriod(period uint16) {
	t.period = period
}
func (t *Triangle) getPeriod() uint16 {
	return t.period
}

func (t *Triangle) dutyTable() [][]uint8 {
	return [][]uint8{
		{15, 14, 13, 12, 11, 10, 9, 8,
			7, 6, 5, 4, 3, 2, 1, 0,
			0, 1, 2, 3, 4, 5, 6, 7,
			8, 9, 10, 11, 12, 13, 14, 15},
	}
}

func (t *Triangle) Init() {
	t.clock = 0
	t.period = 0
	t.enabled = false
	t.duration.reset()
	t.sequencer.init(t.dutyTable(), t)
	t.linearCnt.reset()
}

func (t *Triangle) Tick() {
	t.clock++
	// the sequencer only advances while both counters are live, which
	// freezes the output at its current level instead of popping to 0
	if t.linearCnt.mute() || t.duration.mute() {
		return
	}
	t.sequencer.tick()
}

func (t *Triangle) Write8(addr uint16, val uint8) {
	switch addr {
	// control/halt flag and linear counter load
	case 0x4008:
		t.duration.set((val & 0x80) != 0)
		t.linearCnt.setup((val&0x80) != 0, val&0x7F)
	case 0x4009:
		// unused
	case 0x400A:
		t.sequencer.resetLow(val)
	// length counter load, timer high
	case 0x400B:
		t.sequencer.resetHigh(val & 0x7)
		if t.enabled {
			t.duration.reload((val & 0xF8) >> 3)
		}
		t.linearCnt.start()
	}
}

// the sequencer holds its position while muted so the output is simply
// whatever level it stopped at
func (t *Triangle) Sample() float64 {
	return float64(t.sequencer.value())
}

func (t *Triangle) QuarterFrameTick() {
	t.linearCnt.tick()
}
func (t *Triangle) HalfFrameTick() {
	t.duration.tick()
}

func (t *Triangle) Enabled() bool {
	return !t.duration.mute()
}
func (t *Triangle) Enable(yes bool) {
	t.enabled = yes
	if !yes {
		t.duration.counter = 0
	}
}
