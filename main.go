package main

import (
	"flag"
	"fmt"
	"os"

	famicore "github.com/famicore/famicore/lib"
	"github.com/famicore/famicore/lib/speakers"
)

func validRomPath(romPath string) error {
	stat, err := os.Stat(romPath)
	if err != nil {
		return fmt.Errorf("rom file %q does not exist or is not valid", romPath)
	}
	if stat.IsDir() {
		return fmt.Errorf("rom file %q points to a directory", romPath)
	}
	return nil
}

func main() {
	romPath := flag.String("rom", "", "path to the iNES rom file to run")
	audioLib := flag.String("audio", speakers.Beep, "audio backend: nil, beep, portaudio or oto")
	palette := flag.String("palette", "", "optional 64 entry .pal colour palette file")
	verbose := flag.Bool("verbose", false, "trace every instruction")
	strict := flag.Bool("strict", false, "stop on unimplemented or jam opcodes")
	freeRun := flag.Bool("freerun", false, "run as fast as the host allows")
	spriteLimit := flag.Bool("spritelimit", true, "keep the 8 sprites per scanline hardware limit")
	flag.Parse()

	if *romPath == "" {
		flag.Usage()
		os.Exit(2)
	}
	if err := validRomPath(*romPath); err != nil {
		fmt.Printf("failed to start famicore: %v\n", err)
		os.Exit(1)
	}

	console, err := famicore.NewConsole(
		famicore.CartPath(*romPath),
		famicore.AudioLibrary(*audioLib),
		famicore.PalettePath(*palette),
		famicore.Verbose(*verbose),
		famicore.StrictCpu(*strict),
		famicore.FreeRun(*freeRun),
		famicore.SpriteLimit(*spriteLimit),
	)
	if err != nil {
		fmt.Printf("failed to start famicore: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("starting famicore with %s\n", *romPath)
	console.Run()
}
