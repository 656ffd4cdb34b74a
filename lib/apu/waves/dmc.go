package waves

import "github.com/famicore/famicore/lib/common"

// Dmc plays delta encoded samples fetched straight from CPU memory,
// registers $4010-$4013. Finishing a non looped sample can raise the
// DMC interrupt.
type Dmc struct {
	common.BusInt
	interrupts common.InterruptLines

	// flags and rate
	irqEnable bool
	irqFlag   bool
	loopFlag  bool
	rateTicks uint16

	outputLevel   uint8
	sampleAddrRld uint16
	sampleLenRld  uint16

	sampleBuffer uint8
	sampleReady  bool
	sampleAddr   uint16
	sampleLen    uint16

	shiftRegister uint8
	bitsRemaining uint8
	silenceFlag   bool

	timer Timer

	clock   uint64
	enabled bool
}

// https://wiki.nesdev.com/w/index.php/APU_DMC
// CPU cycles between output level changes; all even since there are
// two CPU cycles in an APU cycle. The Dmc ticks at APU rate so the
// table values are halved on load.
func rateTable() []uint16 {
	return []uint16{
		428, 380, 340, 320, 286, 254, 226, 214,
		190, 160, 142, 128, 106, 84, 72, 54,
	}
}

func sampleAddr(a uint8) uint16 {
	return 0xC000 + (uint16(a) * 64)
}
func sampleLen(l uint8) uint16 {
	return 1 + (uint16(l) * 16)
}

func (d *Dmc) Init(busInt common.BusInt, interrupts common.InterruptLines) {
	d.BusInt = busInt
	d.interrupts = interrupts

	d.irqEnable = false
	d.irqFlag = false
	d.loopFlag = false
	d.rateTicks = rateTable()[0] / 2
	d.outputLevel = 0
	d.sampleAddrRld = sampleAddr(0)
	d.sampleAddr = d.sampleAddrRld
	d.sampleLenRld = sampleLen(0)
	d.sampleLen = 0
	d.sampleBuffer = 0
	d.sampleReady = false

	d.clock = 0
	d.shiftRegister = 0
	d.bitsRemaining = 0
	d.silenceFlag = true
	d.timer.reset()
	d.timer.set(d.rateTicks)
	d.enabled = false
}

func (d *Dmc) restart() {
	d.sampleLen = d.sampleLenRld
	d.sampleAddr = d.sampleAddrRld
}

// fetch the next sample byte into the buffer; the address wraps from
// $FFFF back to $8000
func (d *Dmc) fetch() {
	d.sampleBuffer = d.Read8(d.sampleAddr)
	d.sampleReady = true
	if d.sampleAddr == 0xFFFF {
		d.sampleAddr = 0x8000
	} else {
		d.sampleAddr++
	}
	d.sampleLen--

	if d.sampleLen == 0 {
		if d.loopFlag {
			d.restart()
		} else if d.irqEnable {
			d.irqFlag = true
			d.interrupts.Raise(common.IntIrqDmc)
		}
	}
}

func (d *Dmc) Tick() {
	d.clock++

	if !d.sampleReady && d.sampleLen > 0 {
		d.fetch()
	}

	if !d.timer.tick() {
		return
	}

	if d.bitsRemaining == 0 {
		d.bitsRemaining = 8
		if !d.sampleReady {
			d.silenceFlag = true
		} else {
			d.silenceFlag = false
			d.shiftRegister = d.sampleBuffer
			d.sampleReady = false
		}
	}

	if !d.silenceFlag {
		if (d.shiftRegister & 1) == 1 {
			if d.outputLevel <= 125 {
				d.outputLevel += 2
			}
		} else {
			if d.outputLevel >= 2 {
				d.outputLevel -= 2
			}
		}
		d.shiftRegister >>= 1
	}
	d.bitsRemaining--
}

func (d *Dmc) Write8(addr uint16, val uint8) {
	switch addr {
	// flags and rate
	case 0x4010:
		d.irqEnable = (val & 0x80) != 0
		if !d.irqEnable {
			d.ClearIrq()
		}
		d.loopFlag = (val & 0x40) != 0
		d.rateTicks = rateTable()[val&0xF] / 2
		d.timer.set(d.rateTicks)

	// direct load
	case 0x4011:
		d.outputLevel = val & 0x7F

	// sample address
	case 0x4012:
		d.sampleAddrRld = sampleAddr(val)

	// sample length
	case 0x4013:
		d.sampleLenRld = sampleLen(val)
	}
}

func (d *Dmc) Sample() float64 {
	return float64(d.outputLevel)
}

func (d *Dmc) IrqAsserted() bool {
	return d.irqFlag
}
func (d *Dmc) ClearIrq() {
	d.irqFlag = false
	d.interrupts.Clear(common.IntIrqDmc)
}

func (d *Dmc) Enabled() bool {
	return d.sampleLen > 0
}

// Enable restarts a drained sample, disabling drops the remainder.
// Either way the DMC interrupt flag is cleared by the $4015 write.
func (d *Dmc) Enable(yes bool) {
	d.enabled = yes
	if !yes {
		d.sampleLen = 0
	} else if d.sampleLen == 0 {
		d.restart()
	}
	d.ClearIrq()
}
