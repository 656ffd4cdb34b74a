package console

import (
	"fmt"
	"image/color"
	"log"
	"time"

	"github.com/famicore/famicore/lib/apu"
	"github.com/famicore/famicore/lib/common"
	"github.com/famicore/famicore/lib/cpu"
	"github.com/famicore/famicore/lib/mappers"
	"github.com/famicore/famicore/lib/ppu"
	"github.com/famicore/famicore/lib/speakers"
	"github.com/famicore/famicore/lib/ui"
)

const NesBaseFrequency = 1789773 // NTSC
//const NesBaseFrequency = 1662607 // PAL

// Console wires the chips to their bus views and owns the master clock:
// the cpu is stepped one instruction at a time and the ppu, apu, dma
// and mapper are run for the cycles it consumed.
type Console struct {
	bus common.Bus

	cpu  cpu.Cpu
	ram  common.Ram
	cart mappers.Cartridge
	ppu  ppu.Ppu
	dma  common.Dma
	apu  apu.Apu
	ctrl common.Controllers

	screen ui.Screen

	opRequests uint32
	stopped    bool

	// options
	verbose     bool
	strictCpu   bool
	cartPath    string
	palettePath string
	freeRun     bool
	audioLib    speakers.AudioLib
	audioLog    bool
	spriteLimit bool
}

func New(options ...Option) (*Console, error) {
	n := &Console{
		audioLib:    speakers.Nil,
		spriteLimit: true,
	}
	for i, option := range options {
		if err := option(n); err != nil {
			return nil, fmt.Errorf("option %d: %w", i, err)
		}
	}
	if err := n.init(); err != nil {
		return nil, err
	}
	return n, nil
}

func (n *Console) init() error {
	n.bus.Init()

	// the cpu doubles as the interrupt line hub
	if err := n.cart.Init(n.cartPath, &n.cpu); err != nil {
		return fmt.Errorf("cartridge init: %w", err)
	}

	n.ram.Init(0x800)
	n.ctrl.Init()
	n.screen.Init(n)

	n.cpu.Init(n.bus.GetBusInt(common.MapCPUId), n.verbose, n.strictCpu)
	n.ppu.Init(n.bus.GetBusInt(common.MapPPUId), n.verbose, &n.cpu,
		&n.screen.Framebuffer, n.spriteLimit)
	n.dma.Init(n.bus.GetBusInt(common.MapDMAId))
	n.apu.Init(n.bus.GetBusInt(common.MapAPUId), &n.cpu, n.verbose, n.audioLog, n.audioLib)

	if n.palettePath != "" {
		if err := n.ppu.Palette.SetPalette(n.palettePath); err != nil {
			return err
		}
	}

	n.bus.Connect(common.MapCPUId, &cpuMapper{n})
	n.bus.Connect(common.MapPPUId, &ppuMapper{n})
	n.bus.Connect(common.MapDMAId, &dmaMapper{n})
	n.bus.Connect(common.MapAPUId, &apuMapper{n})

	n.cpu.Reset()
	return nil
}

func (n *Console) CPU() *cpu.Cpu {
	return &n.cpu
}
func (n *Console) PPU() *ppu.Ppu {
	return &n.ppu
}
func (n *Console) APU() *apu.Apu {
	return &n.apu
}
func (n *Console) Framebuffer() *common.Framebuffer {
	return &n.screen.Framebuffer
}

// Poke latches a controller button from the frontend.
func (n *Console) Poke(controllerId uint8, button uint8, pressed bool) {
	n.ctrl.Poke(controllerId, button, pressed)
}

// SetButtons latches a whole pad at once, bit order per common.BitA..
func (n *Console) SetButtons(controllerId uint8, buttons uint8) {
	n.ctrl.SetButtons(controllerId, buttons)
}

func (n *Console) Request(request common.OpRequest) {
	n.opRequests |= 1 << uint(request)
}

// Reset requests a console reset at the next step boundary.
func (n *Console) Reset() {
	n.Request(common.ResetRequest)
}

func (n *Console) Stop() {
	n.cart.Stop()
	n.apu.Stop()
	n.stopped = true
}

// the cpu reads its vector before the cartridge re-initialises, the
// same order the hardware lines settle in
func (n *Console) reset() {
	n.ppu.Reset()
	n.dma.Reset()
	n.cpu.Reset()
	n.apu.Reset()
	n.ctrl.Reset()
	if err := n.cart.Reset(); err != nil {
		log.Printf("cartridge reset: %v", err)
	}
}

func (n *Console) processOpRequests() {
	if n.opRequests&(1<<uint(common.ResetRequest)) != 0 {
		n.reset()
		n.opRequests &= ^uint32(1 << uint(common.ResetRequest))
	}
	if n.opRequests&(1<<uint(common.StopRequest)) != 0 {
		n.Stop()
		n.opRequests &= ^uint32(1 << uint(common.StopRequest))
	}
}

// stepInstruction runs one cpu instruction and drags every other
// component along for the cycles it took. While a dma transfer is in
// flight the cpu is stalled and the rest of the machine keeps going
// one cycle at a time.
func (n *Console) stepInstruction() (int, error) {
	ticks := 1
	if !n.dma.Active() {
		ticks = n.cpu.Tick()
	}
	if err := n.cpu.Err(); err != nil {
		return 0, err
	}

	// 3 ppu dots per cpu cycle; the mapper watches the ppu A12 line
	for i := 0; i < 3*ticks; i++ {
		n.ppu.Exec()
		if n.ppu.A12OutputHigh() {
			n.cart.Mapper.OnA12Rising()
		}
	}

	n.dma.Ticks(ticks)
	n.apu.Ticks(ticks)

	return ticks, nil
}

// Step emulates the given stretch of wall clock time.
func (n *Console) Step(seconds float64) error {
	runCycles := int(float64(NesBaseFrequency) * seconds)

	for runCycles > 0 {
		ticks, err := n.stepInstruction()
		if err != nil {
			return err
		}
		runCycles -= ticks
	}

	n.processOpRequests()
	return nil
}

// RunFrame emulates up to the next framebuffer swap and returns the
// completed frame plus, when a queue speaker is attached, the audio
// accumulated since the previous call.
func (n *Console) RunFrame() ([]color.RGBA, []float64, error) {
	start := n.screen.Framebuffer.Frames
	for n.screen.Framebuffer.Frames == start {
		if _, err := n.stepInstruction(); err != nil {
			return nil, nil, err
		}
	}
	n.processOpRequests()

	var samples []float64
	if queue, ok := n.apu.Speaker().(*speakers.SpeakerQueue); ok {
		samples = queue.Drain()
	}
	return n.screen.Framebuffer.Read(), samples, nil
}

// Run is the blocking frontend loop: window plus audio paced stepping.
func (n *Console) Run() {
	n.screen.Run()

	if n.freeRun {
		n.runFree()
		return
	}

	tmr := time.Tick(time.Second / 240)
	for !n.apu.AudioBufferReady() {
		// pre-fill enough sound samples
		if err := n.Step((time.Second / 240).Seconds()); err != nil {
			log.Printf("cpu jammed: %v", err)
			n.Stop()
			return
		}
		<-tmr
	}

	n.apu.Play()
	for !n.stopped {
		if err := n.Step((time.Second / 240).Seconds()); err != nil {
			log.Printf("cpu jammed: %v", err)
			n.Stop()
			return
		}
		<-tmr
	}
}

// runFree steps as fast as the host allows, still pacing the audio
// start on a filled buffer.
func (n *Console) runFree() {
	for !n.apu.AudioBufferReady() {
		if err := n.Step((time.Second / 240).Seconds()); err != nil {
			log.Printf("cpu jammed: %v", err)
			n.Stop()
			return
		}
	}
	n.apu.Play()

	for !n.stopped {
		if err := n.Step(time.Second.Seconds()); err != nil {
			log.Printf("cpu jammed: %v", err)
			n.Stop()
			return
		}
	}
}
