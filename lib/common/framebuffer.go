package common

import "image/color"

const (
	FrameXWidth  = 256
	FrameYHeight = 240
)

// Framebuffer is double buffered: the ppu draws into Buffer0/1 picked by
// the write index while the frontend reads the other one. The swap
// happens once per frame at vblank so readers never see a torn frame.
type Framebuffer struct {
	Buffer0 []color.RGBA
	Buffer1 []color.RGBA

	// buffer currently being drawn into
	FrameIndex int
	Frames     uint

	FrameUpdated chan bool
}

func (f *Framebuffer) Init() {
	f.Buffer0 = make([]color.RGBA, FrameXWidth*FrameYHeight)
	f.Buffer1 = make([]color.RGBA, FrameXWidth*FrameYHeight)
	f.FrameIndex = 0
	f.Frames = 0
	f.FrameUpdated = make(chan bool, 1)
}

// Write returns the buffer the ppu should draw into.
func (f *Framebuffer) Write() []color.RGBA {
	if f.FrameIndex == 0 {
		return f.Buffer0
	}
	return f.Buffer1
}

// Read returns the last completed frame.
func (f *Framebuffer) Read() []color.RGBA {
	if f.FrameIndex == 0 {
		return f.Buffer1
	}
	return f.Buffer0
}

// Swap flips the buffers and signals the frontend, dropping the signal
// if the previous one has not been consumed yet.
func (f *Framebuffer) Swap() {
	f.FrameIndex ^= 1
	f.Frames++
	select {
	case f.FrameUpdated <- true:
	default:
	}
}
