package record

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"golang.org/x/image/draw"

	"github.com/famicore/famicore/lib/common"
)

// Snapshot copies the last completed frame out of the framebuffer.
func Snapshot(framebuffer *common.Framebuffer) *image.RGBA {
	frame := framebuffer.Read()
	img := image.NewRGBA(image.Rect(0, 0, common.FrameXWidth, common.FrameYHeight))
	for i, c := range frame {
		img.Pix[i*4+0] = c.R
		img.Pix[i*4+1] = c.G
		img.Pix[i*4+2] = c.B
		img.Pix[i*4+3] = c.A
	}
	return img
}

// SaveFrame writes the last completed frame as a png, scaled up by the
// given integer factor. Nearest neighbour keeps the pixels crisp.
func SaveFrame(framebuffer *common.Framebuffer, scale int, path string) error {
	if scale < 1 {
		scale = 1
	}

	img := Snapshot(framebuffer)
	out := image.Image(img)
	if scale > 1 {
		scaled := image.NewRGBA(image.Rect(0, 0,
			common.FrameXWidth*scale, common.FrameYHeight*scale))
		draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), img, img.Bounds(), draw.Src, nil)
		out = scaled
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %v: %w", path, err)
	}
	if err := png.Encode(file, out); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
