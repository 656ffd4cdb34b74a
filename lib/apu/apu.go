package apu

import (
	"fmt"
	"log"
	"time"

	"github.com/famicore/famicore/lib/apu/waves"
	"github.com/famicore/famicore/lib/common"
	"github.com/famicore/famicore/lib/speakers"
)

const NesBaseFrequency = 1789773 // NTSC
const NesApuFrameCycles = 7457
const NesApuVolumeGain = 0.012

// $4015 enable bits
// ---D NT21  DMC (D), noise (N), triangle (T) and the pulse channels
const (
	bP1 = 1 << 0
	bP2 = 1 << 1
	bT  = 1 << 2
	bN  = 1 << 3
	bD  = 1 << 4

	bFrameIrq = 1 << 6
	bDmcIrq   = 1 << 7
)

// Apu runs the five channels and the frame sequencer off the CPU clock
// and pushes the mixed output to an audio backend.
type Apu struct {
	common.BusInt
	interrupts common.InterruptLines

	pulse1   waves.Pulse
	pulse2   waves.Pulse
	triangle waves.Triangle
	noise    waves.Noise
	dmc      waves.Dmc

	clock   uint
	verbose bool
	enabled bool

	frameCounter uint
	frameStep    uint
	frameMode    uint
	frameIrqEn   bool
	frameIrqFlag bool

	logAudio      bool
	samples       uint
	sampleLogTime time.Time
	samplesTotal  uint

	status common.Register

	audioLib speakers.AudioLib
	speaker  speakers.AudioSpeaker

	sampleTicks       float64
	sampleTargetTicks float64
}

func (a *Apu) Init(busInt common.BusInt, interrupts common.InterruptLines, verbose bool, logAudio bool, audioLib speakers.AudioLib) {
	a.BusInt = busInt
	a.interrupts = interrupts

	a.verbose = verbose
	a.logAudio = logAudio
	a.audioLib = audioLib
	a.enabled = true
	a.speaker = speakers.NewSpeaker(a.audioLib)

	a.Reset()
}

func (a *Apu) Reset() {
	if !a.enabled {
		return
	}

	a.pulse1.Init(true)
	a.pulse2.Init(false)
	a.triangle.Init()
	a.noise.Init()
	a.dmc.Init(a.BusInt, a.interrupts)

	a.speaker.Reset()
	a.sampleTicks = float64(NesBaseFrequency) / float64(a.speaker.SampleRate())
	a.sampleTargetTicks = a.sampleTicks

	a.sampleLogTime = time.Now()
	a.samples = 0
	a.samplesTotal = 0

	a.clock = 0
	a.frameCounter = 0
	a.frameStep = 0
	a.frameMode = 0
	a.frameIrqEn = true
	a.frameIrqFlag = false

	a.status.InitHooked("status", 0, a.writeStatusReg, a.readStatusReg)
}

func (a *Apu) Play() {
	a.speaker.Play()
}
func (a *Apu) Stop() {
	a.Reset()
	a.enabled = false
	a.speaker.Stop()
}

// Speaker exposes the audio backend, mainly so a queue speaker can be
// drained by a recorder.
func (a *Apu) Speaker() speakers.AudioSpeaker {
	return a.speaker
}

func (a *Apu) writeStatusReg() {
	a.pulse1.Enable((a.status.Val & bP1) != 0)
	a.pulse2.Enable((a.status.Val & bP2) != 0)
	a.triangle.Enable((a.status.Val & bT) != 0)
	a.noise.Enable((a.status.Val & bN) != 0)
	a.dmc.Enable((a.status.Val & bD) != 0)
}

// reading $4015 clears the frame interrupt flag but not the DMC one
func (a *Apu) readStatusReg() uint8 {
	status := a.Status()
	a.clearFrameIrq()
	return status
}

// Status is the $4015 view without the read side effect, for debug
// snapshots.
func (a *Apu) Status() uint8 {
	status := uint8(0)
	if a.pulse1.Enabled() {
		status |= bP1
	}
	if a.pulse2.Enabled() {
		status |= bP2
	}
	if a.triangle.Enabled() {
		status |= bT
	}
	if a.noise.Enabled() {
		status |= bN
	}
	if a.dmc.Enabled() {
		status |= bD
	}
	if a.frameIrqFlag {
		status |= bFrameIrq
	}
	if a.dmc.IrqAsserted() {
		status |= bDmcIrq
	}
	return status
}

var lastLagReported time.Time

func (a *Apu) addSample(val float64) {
	if !a.speaker.Sample(val) {
		if time.Now().Second()-lastLagReported.Second() > 1 {
			lastLagReported = time.Now()
			go fmt.Printf("the audio speaker is falling behind the sample stream\n")
		}
	}
	a.logSampling()
}
func (a *Apu) logSampling() {
	a.samples++
	a.samplesTotal++

	if !a.logAudio {
		return
	}

	if (a.samples % uint(a.speaker.SampleRate())) == 0 {
		sps := float64(a.samples) / time.Since(a.sampleLogTime).Seconds()
		a.sampleLogTime = time.Now()
		hz := NesBaseFrequency / (float64(a.clock) / float64(a.samplesTotal))
		a.samples = 0
		go fmt.Printf("sampling: real %v Hz, apu %v Hz\n", sps, hz)
	}
}

func (a *Apu) Ticks(nTicks int) {
	if !a.enabled {
		return
	}

	for i := 0; i < nTicks; i++ {
		a.tick()
	}
}

// the APU proper runs every other CPU cycle but the triangle timer and
// the frame counter are clocked at CPU rate, so everything is driven
// off CPU ticks with the pulses, noise and DMC on the even ones
func (a *Apu) tick() {
	a.clock++

	a.frameTick()
	if (a.clock % 2) == 0 {
		a.pulse1.Tick()
		a.pulse2.Tick()
		a.noise.Tick()
		a.dmc.Tick()
	}
	a.triangle.Tick()
	a.sample()
}

func (a *Apu) sample() {
	if float64(a.clock) >= a.sampleTargetTicks {
		a.sampleTargetTicks += a.sampleTicks
		a.addSample(a.mix())
	}
}

// the linear approximation of the NES mixer
func (a *Apu) mix() float64 {
	pulses := NesApuVolumeGain * (a.pulse1.Sample() + a.pulse2.Sample())
	triangle := 0.00851 * a.triangle.Sample()
	noise := 0.00494 * a.noise.Sample()
	dmc := 0.00335 * a.dmc.Sample()
	return pulses + triangle + noise + dmc
}

func (a *Apu) AudioBufferReady() bool {
	return a.speaker.BufferReady()
}

func (a *Apu) quarterFrameTick() {
	a.pulse1.QuarterFrameTick()
	a.pulse2.QuarterFrameTick()
	a.triangle.QuarterFrameTick()
	a.noise.QuarterFrameTick()
}

func (a *Apu) halfFrameTick() {
	a.pulse1.HalfFrameTick()
	a.pulse2.HalfFrameTick()
	a.triangle.HalfFrameTick()
	a.noise.HalfFrameTick()
}

// mode 0:    mode 1:       function
// ---------  -----------  -----------------------------
//  - - - f    - - - - -    IRQ (if bit 6 is clear)
//  - l - l    - l - - l    Length counter and sweep
//  e e e e    e e e - e    Envelope and linear counter
func (a *Apu) frameTick() {
	a.frameCounter++
	if a.frameCounter < NesApuFrameCycles {
		return
	}
	a.frameCounter = 0

	if a.frameMode == 0 {
		// 4 step sequence, steps 1,2,3,0
		a.frameStep = (a.frameStep + 1) % 4

		a.quarterFrameTick()
		if a.frameStep == 2 || a.frameStep == 0 {
			a.halfFrameTick()
		}
		if a.frameStep == 0 {
			a.raiseFrameIrq()
		}
	} else {
		// 5 step sequence, steps 1,2,3,4,0, nothing on step 4
		a.frameStep = (a.frameStep + 1) % 5

		if a.frameStep != 4 {
			a.quarterFrameTick()
		}
		if a.frameStep == 2 || a.frameStep == 0 {
			a.halfFrameTick()
		}
	}
}

func (a *Apu) raiseFrameIrq() {
	if a.frameIrqEn {
		a.frameIrqFlag = true
		a.interrupts.Raise(common.IntIrqApu)
	}
}
func (a *Apu) clearFrameIrq() {
	a.frameIrqFlag = false
	a.interrupts.Clear(common.IntIrqApu)
}

func (a *Apu) Read8(addr uint16) uint8 {
	switch addr {
	case 0x4015:
		return a.status.Read()
	default:
		log.Printf("error: read from unmapped apu address 0x%04x\n", addr)
	}
	return 0
}

func (a *Apu) Write8(addr uint16, val uint8) {
	switch {
	case addr >= 0x4000 && addr <= 0x4003:
		a.pulse1.Write8(addr, val)
	case addr >= 0x4004 && addr <= 0x4007:
		a.pulse2.Write8(addr, val)
	case addr >= 0x4008 && addr <= 0x400B:
		a.triangle.Write8(addr, val)
	case addr >= 0x400C && addr <= 0x400F:
		a.noise.Write8(addr, val)
	case addr >= 0x4010 && addr <= 0x4013:
		a.dmc.Write8(addr, val)
	case addr == 0x4015:
		a.status.Write(val)
	case addr == 0x4017:
		a.frameMode = uint(val&0x80) >> 7
		a.frameIrqEn = (val & 0x40) == 0
		if !a.frameIrqEn {
			// the inhibit flag also clears a pending frame interrupt
			a.clearFrameIrq()
		}
		a.frameStep = 0
		a.frameCounter = 0
		if a.frameMode != 0 {
			a.quarterFrameTick()
			a.halfFrameTick()
		}
	}
}
