package waves

// The shared sub-units: every channel is assembled from a timer or
// sequencer, a length counter and, depending on the channel, an
// envelope, sweep or linear counter.

type timerPeriodInterface interface {
	setPeriod(uint16)
	getPeriod() uint16
}

// https://wiki.nesdev.com/w/index.php/APU_Length_Counter
//      |  0   1   2   3   4   5   6   7    8   9   A   B   C   D   E   F
// -----+----------------------------------------------------------------
// 00-0F  10,254, 20,  2, 40,  4, 80,  6, 160,  8, 60, 10, 14, 12, 26, 14,
// 10-1F  12, 16, 24, 18, 48, 20, 96, 22, 192, 24, 72, 26, 16, 28, 32, 30
func DurationCounterTable(load uint8) uint8 {
	table := [][]uint8{
		{10, 254, 20, 2, 40, 4, 80, 6, 160, 8, 60, 10, 14, 12, 26, 14},
		{12, 16, 24, 18, 48, 20, 96, 22, 192, 24, 72, 26, 16, 28, 32, 30},
	}
	return table[(load&0x10)>>4][load&0xF]
}

// DurationCounter is the length counter: it silences the channel when
// it runs out and never underflows.
type DurationCounter struct {
	counter uint8
	halt    bool
}

func (d *DurationCounter) tick() {
	if !d.halt && d.counter > 0 {
		d.counter--
	}
}
func (d *DurationCounter) reset() {
	d.counter = 0
	d.halt = true
}
func (d *DurationCounter) set(halt bool) {
	d.halt = halt
}
func (d *DurationCounter) reload(val uint8) {
	d.counter = DurationCounterTable(val)
}
func (d *DurationCounter) mute() bool {
	return d.counter == 0
}

type Timer struct {
	clock uint

	timer  uint16 // 12bit, max value 4068
	reload uint16
}

func (t *Timer) reset() {
	t.clock = 0
	t.timer = 0
	t.reload = 0
}
func (t *Timer) set(reload uint16) {
	t.reload = reload
}
func (t *Timer) tick() bool {
	t.clock++

	if t.timer > 0 {
		t.timer--
		return false
	}
	t.timer = t.reload
	return true
}

// Sequencer walks a waveform table at the pace set by the channel's
// period register.
type Sequencer struct {
	clock uint

	timer uint16 // 11bit

	table  [][]uint8
	width  uint8
	row    uint8
	column uint8

	period timerPeriodInterface
}

func (s *Sequencer) init(table [][]uint8, period timerPeriodInterface) {
	s.table = table
	s.width = uint8(len(table[0]))
	s.column = 0
	s.row = 0
	s.period = period

	s.reset()
}
func (s *Sequencer) reset() {
	s.clock = 0
	s.timer = 0
}

// restart puts the sequence back at its first value, as a write to the
// channel's high timer register does
func (s *Sequencer) restart() {
	s.column = 0
}

func (s *Sequencer) selectRow(row uint8) {
	s.row = row
}
func (s *Sequencer) resetLow(value uint8) {
	s.period.setPeriod((s.period.getPeriod() & 0x700) | uint16(value))
}
func (s *Sequencer) resetHigh(value uint8) {
	s.period.setPeriod((s.period.getPeriod() & 0xFF) | (uint16(value) << 8))
}

func (s *Sequencer) tick() {
	s.clock++

	if s.timer > 0 {
		s.timer--
	} else {
		s.timer = s.period.getPeriod()
		s.column = (s.column + 1) % s.width
	}
}

func (s *Sequencer) value() uint8 {
	return s.table[s.row][s.column]
}

// Envelope holds the start flag, divider and decay level counter.
type Envelope struct {
	start   bool
	loop    bool
	divider uint8
	reload  uint8
	decay   uint8
}

func (e *Envelope) reset() {
	e.start = false
	e.loop = false
	e.divider = 0
	e.reload = 0
	e.decay = 0
}

func (e *Envelope) tick() {
	if e.start {
		e.start = false
		e.decay = 15
		e.divider = e.reload
		return
	}
	if e.divider == 0 {
		e.divider = e.reload
		if e.decay > 0 {
			e.decay--
		} else if e.loop {
			e.decay = 15
		}
	} else {
		e.divider--
	}
}

// Sweep periodically adjusts a pulse channel's period up or down.
type Sweep struct {
	reload        bool
	enabled       bool
	negate        bool
	shift         uint8
	divider       uint8
	dividerReload uint8

	// pulse 1 negates with ones' complement, pulse 2 with two's
	onesComplement bool

	pulse timerPeriodInterface
}

func (s *Sweep) init(pulse timerPeriodInterface, onesComplement bool) {
	s.pulse = pulse
	s.onesComplement = onesComplement
}

func (s *Sweep) tick() {
	if s.divider == 0 && s.enabled && s.shift > 0 && !s.mute() {
		s.pulse.setPeriod(s.targetPeriod())
	}

	if s.divider == 0 || s.reload {
		s.reload = false
		s.divider = s.dividerReload
	} else {
		s.divider--
	}
}

// a target period overflow silences the channel even with the sweep
// disabled, and a too small current period always mutes; this is why
// fully disabling a sweep takes a write of $08
func (s *Sweep) mute() bool {
	return s.targetPeriod() > 0x7FF || s.pulse.getPeriod() < 8
}

func (s *Sweep) targetPeriod() uint16 {
	rawPeriod := s.pulse.getPeriod()
	change := rawPeriod >> s.shift

	if s.negate {
		if s.onesComplement {
			// making 20 negative produces -21
			return rawPeriod - change - 1
		}
		return rawPeriod - change
	}
	return rawPeriod + change
}

// LinearCounter gates the triangle with finer resolution than the
// length counter.
type LinearCounter struct {
	counterReload uint8
	counter       uint8

	reload  bool
	control bool
}

func (l *LinearCounter) reset() {
	l.counter = 0
	l.counterReload = 0
	l.reload = false
	l.control = false
}

func (l *LinearCounter) setup(control bool, reload uint8) {
	l.control = control
	l.counterReload = reload
}

func (l *LinearCounter) start() {
	l.reload = true
}

// on a linear counter clock: reload if the flag is up, else count
// down; the reload flag only clears when control is off
func (l *LinearCounter) tick() {
	if l.reload {
		l.counter = l.counterReload
	} else if l.counter > 0 {
		l.counter--
	}
	if !l.control {
		l.reload = false
	}
}

func (l *LinearCounter) mute() bool {
	return l.counter == 0
}
