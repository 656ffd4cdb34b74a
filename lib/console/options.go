package console

import (
	"github.com/famicore/famicore/lib/speakers"
)

// Option configures a Console before it powers up.
type Option func(*Console) error

// CartPath selects the iNES image to load. An empty path boots the
// writable default cart.
func CartPath(path string) Option {
	return func(n *Console) error {
		n.cartPath = path
		return nil
	}
}

// Verbose enables instruction and register tracing.
func Verbose(verbose bool) Option {
	return func(n *Console) error {
		n.verbose = verbose
		return nil
	}
}

// StrictCpu makes unimplemented or jamming opcodes surface as errors
// rather than being skipped.
func StrictCpu(strict bool) Option {
	return func(n *Console) error {
		n.strictCpu = strict
		return nil
	}
}

// FreeRun removes the realtime pacing, running as fast as the host can.
func FreeRun(freeRun bool) Option {
	return func(n *Console) error {
		n.freeRun = freeRun
		return nil
	}
}

// AudioLibrary selects the audio backend by name.
func AudioLibrary(name string) Option {
	return func(n *Console) error {
		lib, err := speakers.GetAudioLib(name)
		if err != nil {
			return err
		}
		n.audioLib = lib
		return nil
	}
}

// AudioLogging dumps sample pacing statistics while running.
func AudioLogging(logAudio bool) Option {
	return func(n *Console) error {
		n.audioLog = logAudio
		return nil
	}
}

// SpriteLimit toggles the 8 sprites per scanline hardware limit.
func SpriteLimit(limit bool) Option {
	return func(n *Console) error {
		n.spriteLimit = limit
		return nil
	}
}

// PalettePath loads a 64 entry .pal colour palette file.
func PalettePath(path string) Option {
	return func(n *Console) error {
		n.palettePath = path
		return nil
	}
}
