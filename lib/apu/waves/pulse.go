package waves

// Pulse is one of the two square channels at $4000-$4003 / $4004-$4007.
type Pulse struct {
	dutyCycleMode uint8 // 0,1,2,3

	constVolume bool
	volume      uint8 // doubles as the envelope divider period

	pulseOne bool

	sequencer Sequencer
	duration  DurationCounter
	envelope  Envelope
	sweep     Sweep

	clock   uint64
	period  uint16
	enabled bool
}

func (p *Pulse) setPeriod(period uint16) {
	p.period = period
}
func (p *Pulse) getPeriod() uint16 {
	return p.period
}

func (p *Pulse) Init(pulseOne bool) {
	p.pulseOne = pulseOne
	p.dutyCycleMode = 0
	p.clock = 0
	p.period = 0
	p.enabled = false
	p.duration.reset()
	p.sequencer.init(p.dutyTable(), p)
	p.envelope.reset()
	p.sweep.init(p, pulseOne)
}

func (p *Pulse) Tick() {
	p.clock++
	p.sequencer.tick()
}

func (p *Pulse) dutyTable() [][]uint8 {
	return [][]uint8{
		{0, 1, 0, 0, 0, 0, 0, 0}, // 12.5%
		{0, 1, 1, 0, 0, 0, 0, 0}, // 25%
		{0, 1, 1, 1, 1, 0, 0, 0}, // 50%
		{1, 0, 0, 1, 1, 1, 1, 1}, // 25% negated
	}
}

func (p *Pulse) Write8(addr uint16, val uint8) {
	if !p.pulseOne {
		addr -= 4
	}
	switch addr {
	// duty, length counter halt, const volume / envelope period
	case 0x4000:
		p.dutyCycleMode = (val & 0xC0) >> 6
		p.sequencer.selectRow(p.dutyCycleMode)
		p.duration.set((val & 0x20) != 0)

		p.volume = val & 0xF
		p.constVolume = (val & 0x10) != 0
		p.envelope.loop = p.duration.halt
		p.envelope.reload = p.volume
	case 0x4001:
		p.sweep.enabled = (val & 0x80) != 0
		p.sweep.dividerReload = (val & 0x70) >> 4
		p.sweep.negate = (val & 0x8) != 0
		p.sweep.shift = val & 0x7
		p.sweep.reload = true
	case 0x4002:
		p.sequencer.resetLow(val)
	case 0x4003:
		p.sequencer.resetHigh(val & 0x7)
		if p.enabled {
			p.duration.reload((val & 0xF8) >> 3)
		}
		// the sequence restarts at its first value and the envelope
		// restarts; the period divider is untouched
		p.sequencer.restart()
		p.envelope.start = true
	}
}

func (p *Pulse) Sample() float64 {
	if p.sequencer.value() == 0 ||
		p.duration.mute() ||
		p.sweep.mute() {
		return 0.0
	}
	if p.constVolume {
		return float64(p.volume)
	}
	return float64(p.envelope.decay)
}

func (p *Pulse) QuarterFrameTick() {
	p.envelope.tick()
}
func (p *Pulse) HalfFrameTick() {
	p.duration.tick()
	p.sweep.tick()
}

func (p *Pulse) Enabled() bool {
	return !p.duration.mute()
}
func (p *Pulse) Enable(yes bool) {
	p.enabled = yes
	if !yes {
		p.duration.counter = 0
	}
}
