// Package famicore is the emulator frontend surface: build a console
// with options, run it against a window and speakers or step it under
// programmatic control.
package famicore

import (
	"image/color"

	"github.com/famicore/famicore/lib/console"
)

// Console is a powered-up machine.
type Console interface {
	// Run blocks, driving the window and audio in real time.
	Run()
	// Stop powers the machine down, flushing battery backed ram.
	Stop()
	// Reset requests a reset at the next step boundary.
	Reset()
	// Poke latches a controller button.
	Poke(controllerId uint8, button uint8, pressed bool)
	// SetButtons latches a whole pad bitmask.
	SetButtons(controllerId uint8, buttons uint8)
	// Step emulates the given stretch of time.
	Step(seconds float64) error
	// RunFrame emulates up to the next completed video frame, returning
	// the frame and any queued audio samples.
	RunFrame() ([]color.RGBA, []float64, error)
	// Snapshot copies out the machine state without perturbing it.
	Snapshot() console.Snapshot
}

func NewConsole(options ...console.Option) (Console, error) {
	return console.New(options...)
}

// re-exported options, so callers only need this package
var (
	CartPath     = console.CartPath
	Verbose      = console.Verbose
	StrictCpu    = console.StrictCpu
	FreeRun      = console.FreeRun
	AudioLibrary = console.AudioLibrary
	AudioLogging = console.AudioLogging
	SpriteLimit  = console.SpriteLimit
	PalettePath  = console.PalettePath
)
