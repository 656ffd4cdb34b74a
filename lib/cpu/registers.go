package cpu

import (
	"fmt"

	"github.com/famicore/famicore/lib/common"
)

const (
	C = 0 // Carry
	Z = 1 // Zero Result
	I = 2 // Interrupt Disable
	D = 3 // Decimal Mode
	B = 4 // Break Command
	E = 5 // Expansion
	V = 6 // Overflow
	N = 7 // Negative Result

	BC = 1 << C
	BZ = 1 << Z
	BI = 1 << I
	BD = 1 << D
	BB = 1 << B
	BE = 1 << E
	BV = 1 << V
	BN = 1 << N
)

// psRegister keeps each status flag in its own byte so flag math never
// needs shifting in the hot instruction path.
type psRegister struct {
	bit [8]uint8

	name string
}

func (psr *psRegister) Read() uint8 {
	return 0 |
		psr.bit[C]<<C |
		psr.bit[Z]<<Z |
		psr.bit[I]<<I |
		psr.bit[D]<<D |
		psr.bit[B]<<B |
		psr.bit[E]<<E |
		psr.bit[V]<<V |
		psr.bit[N]<<N
}

// Set updates the selected flags from value. Z and N are special: Z is
// set when value is zero and N tracks the sign bit, which is why value
// is signed. The remaining flags copy their own bit out of value.
func (psr *psRegister) Set(flags int, value int8) {
	if (flags & BZ) == BZ {
		if value == 0 {
			psr.bit[Z] = 1
		} else {
			psr.bit[Z] = 0
		}
	}
	if (flags & BN) == BN {
		if value < 0 {
			psr.bit[N] = 1
		} else {
			psr.bit[N] = 0
		}
	}
	for _, f := range [...]int{C, I, D, B, E, V} {
		if (flags & (1 << f)) != 0 {
			psr.bit[f] = uint8(value>>f) & 1
		}
	}
}

func (psr *psRegister) Write(value uint8) {
	for f := range psr.bit {
		psr.bit[f] = (value >> f) & 1
	}
}

func (psr psRegister) String() string {
	return fmt.Sprintf("%s: 0x%02x (N:%d V:%d E:%d B:%d D:%d I:%d Z:%d C:%d)", psr.name, psr.Read(),
		psr.bit[N], psr.bit[V], psr.bit[E], psr.bit[B], psr.bit[D], psr.bit[I], psr.bit[Z], psr.bit[C])
}

func (psr *psRegister) init(name string, val uint8) {
	psr.Write(val)
	psr.name = name
}

type Registers struct {
	Pc common.Register16
	Sp common.Register
	Ps psRegister

	Ac common.Register
	X  common.Register
	Y  common.Register
}

// power-on state: SP ends up at $FD after the reset sequence's three
// dummy stack pushes, P starts as $24
func (r *Registers) Init() {
	r.Pc.Init("Pc", 0xFFFC)
	r.Sp.Init("Sp", 0xFD)
	r.Ps.init("Ps", BI|BE)
	r.Ac.Init("Ac", 0)
	r.X.Init("X", 0)
	r.Y.Init("Y", 0)
}

func (r Registers) String() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s", r.Pc, r.Sp, r.Ps, r.Ac, r.X, r.Y)
}
