package ui

import (
	"fmt"
	"image/color"
	"os"
	"runtime"
	"time"

	"github.com/faiface/pixel"
	"github.com/faiface/pixel/pixelgl"
	"golang.org/x/image/colornames"

	"github.com/famicore/famicore/lib/common"
)

const (
	screenFrameRatio = 3
	screenXWidth     = common.FrameXWidth * screenFrameRatio
	screenYHeight    = common.FrameYHeight * screenFrameRatio
)

// Machine is the console as seen from the window: button pokes in,
// operation requests out.
type Machine interface {
	Poke(controllerId uint8, button uint8, pressed bool)
	Request(request common.OpRequest)
}

type Screen struct {
	machine Machine

	window *pixelgl.Window

	// front and back buffers
	buffer0 *pixel.PictureData
	buffer1 *pixel.PictureData
	sprite  *pixel.Sprite

	Framebuffer common.Framebuffer

	// FPS stats
	fpsChannel   <-chan time.Time
	fpsLastFrame uint
}

func (s *Screen) Init(machine Machine) {
	s.machine = machine
	s.setSprite()
}

// Run spawns the render loop; it owns its OS thread as the GL context
// requires.
func (s *Screen) Run() {
	go func() {
		runtime.LockOSThread()
		pixelgl.Run(s.runThread)
		os.Exit(0)
	}()
}

func (s *Screen) runThread() {
	cfg := pixelgl.WindowConfig{
		Title:  "famicore",
		Bounds: pixel.R(0, 0, screenXWidth, screenYHeight),
		VSync:  true,
	}
	window, err := pixelgl.NewWindow(cfg)
	if err != nil {
		panic(err)
	}
	window.Clear(colornames.Black)

	s.window = window
	s.fpsChannel = time.Tick(time.Second)
	s.fpsLastFrame = 0

	s.runner()
}

func (s *Screen) runner() {
	lastLoopFrames := uint(0)
	for !s.window.Closed() {

		<-s.Framebuffer.FrameUpdated

		frameDiff := s.Framebuffer.Frames - lastLoopFrames
		if frameDiff > 0 {
			if frameDiff > 1 {
				fmt.Printf("skipped %v frames\n", frameDiff-1)
			}

			s.draw()
			s.window.Update()
			lastLoopFrames = s.Framebuffer.Frames
		}

		s.updateFpsTitle()
		s.updateControllers()
	}
	s.machine.Request(common.StopRequest)
}

var buttons = [8]struct {
	id  uint8
	key pixelgl.Button
}{
	{common.BitA, pixelgl.KeyS},
	{common.BitB, pixelgl.KeyA},
	{common.BitSelect, pixelgl.KeyLeftShift},
	{common.BitStart, pixelgl.KeyEnter},
	{common.BitUp, pixelgl.KeyUp},
	{common.BitDown, pixelgl.KeyDown},
	{common.BitLeft, pixelgl.KeyLeft},
	{common.BitRight, pixelgl.KeyRight},
}

func (s *Screen) updateControllers() {
	onePressed := false
	for _, button := range buttons {
		pressed := s.window.Pressed(button.key)
		s.machine.Poke(0, button.id, pressed)
		if pressed {
			onePressed = true
		}
	}

	if s.window.Pressed(pixelgl.KeyLeftControl) && s.window.JustPressed(pixelgl.KeyR) {
		s.machine.Request(common.ResetRequest)
		onePressed = true
	}

	if onePressed {
		s.window.UpdateInput()
	}
}

func (s *Screen) updateFpsTitle() {
	select {
	case <-s.fpsChannel:
		frames := s.Framebuffer.Frames - s.fpsLastFrame
		s.fpsLastFrame = s.Framebuffer.Frames

		s.window.SetTitle(fmt.Sprintf("famicore | FPS: %d", frames))
	default:
	}
}

func (s *Screen) draw() {
	s.updateSprite()
	s.sprite.Draw(s.window, pixel.IM.
		Moved(s.window.Bounds().Center()).
		ScaledXY(s.window.Bounds().Center(), pixel.V(screenFrameRatio, screenFrameRatio)))
}

// the ppu draws into the indexed buffer, so the stable frame is the
// other one
func (s *Screen) updateSprite() {
	if s.Framebuffer.FrameIndex == 1 {
		s.sprite = pixel.NewSprite(s.buffer0, pixel.R(0, 0, common.FrameXWidth, common.FrameYHeight))
	} else {
		s.sprite = pixel.NewSprite(s.buffer1, pixel.R(0, 0, common.FrameXWidth, common.FrameYHeight))
	}
}

func (s *Screen) setSprite() {
	s.buffer0 = &pixel.PictureData{
		Pix:    make([]color.RGBA, common.FrameXWidth*common.FrameYHeight),
		Stride: common.FrameXWidth,
		Rect:   pixel.R(0, 0, common.FrameXWidth, common.FrameYHeight),
	}
	s.buffer1 = &pixel.PictureData{
		Pix:    make([]color.RGBA, common.FrameXWidth*common.FrameYHeight),
		Stride: common.FrameXWidth,
		Rect:   pixel.R(0, 0, common.FrameXWidth, common.FrameYHeight),
	}

	s.Framebuffer = common.Framebuffer{
		Buffer0:      s.buffer0.Pix,
		Buffer1:      s.buffer1.Pix,
		FrameIndex:   0,
		FrameUpdated: make(chan bool, 1),
		Frames:       0,
	}

	s.updateSprite()
}
