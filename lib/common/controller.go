package common

// Button bit order matches the hardware shift register read-out.
const (
	BitA = iota
	BitB
	BitSelect
	BitStart
	BitUp
	BitDown
	BitLeft
	BitRight
)

type gamePad struct {
	buttons uint8
	shift   uint8
}

// reading past the eighth bit returns 1 on an official controller
func (g *gamePad) read(strobe bool) uint8 {
	if strobe {
		// while the strobe is held the shifter is continuously reloaded
		// so every read sees the live A button
		return g.buttons & 1
	}
	if g.shift >= 8 {
		return 1
	}
	bit := (g.buttons >> g.shift) & 1
	g.shift++
	return bit
}

// Controllers implements the two controller ports at $4016/$4017. The
// host latches button state asynchronously; games see it only through
// the strobe/read sequence.
type Controllers struct {
	pads   [2]gamePad
	strobe bool
}

func (c *Controllers) Init() {
	c.pads = [2]gamePad{}
	c.strobe = false
}

func (c *Controllers) Reset() {
	c.Init()
}

// Poke latches a single button.
func (c *Controllers) Poke(port uint8, button uint8, pressed bool) {
	if port > 1 || button > BitRight {
		return
	}
	if pressed {
		c.pads[port].buttons |= 1 << button
	} else {
		c.pads[port].buttons &= ^(1 << button)
	}
}

// SetButtons latches the whole pad at once, bit order as the Bit*
// constants.
func (c *Controllers) SetButtons(port uint8, mask uint8) {
	if port > 1 {
		return
	}
	c.pads[port].buttons = mask
}

// BusInt
func (c *Controllers) Read8(addr uint16) uint8 {
	switch addr {
	case 0x4016:
		return c.pads[0].read(c.strobe)
	case 0x4017:
		return c.pads[1].read(c.strobe)
	}
	return 0
}

func (c *Controllers) Write8(addr uint16, val uint8) {
	if addr != 0x4016 {
		return
	}
	strobe := val&1 == 1
	if c.strobe && !strobe {
		// strobe falling edge reloads the shifters
		for i := range c.pads {
			c.pads[i].shift = 0
		}
	}
	c.strobe = strobe
}
