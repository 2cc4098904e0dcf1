package app

import (
	"image/color"

	"pixelpipe/hal"

	"tinygo.org/x/tinyfont"
)

var (
	overlayFG = color.RGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}
	overlayBG = color.RGBA{R: 0x18, G: 0x18, B: 0x18, A: 0xff}
)

const overlayHeight = 10

// fbDisplay adapts a hal.Framebuffer to drivers.Displayer so tinyfont can
// draw on it.
type fbDisplay struct {
	fb hal.Framebuffer
}

func (d *fbDisplay) Size() (x, y int16) {
	if d.fb == nil {
		return 0, 0
	}
	return int16(d.fb.Width()), int16(d.fb.Height())
}

// SetPixel writes the red channel as gray; the overlay palette is
// achromatic so nothing is lost.
func (d *fbDisplay) SetPixel(x, y int16, c color.RGBA) {
	hal.PutGray(d.fb, int(x), int(y), c.R)
}

func (d *fbDisplay) Display() error { return nil }

// drawStatus paints the status bar across the top of the framebuffer:
// active mode plus completed upload count.
func drawStatus(fb hal.Framebuffer, text string) {
	if fb == nil || fb.Buffer() == nil {
		return
	}
	d := &fbDisplay{fb: fb}
	w, _ := d.Size()
	for y := int16(0); y < overlayHeight; y++ {
		for x := int16(0); x < w; x++ {
			hal.PutGray(fb, int(x), int(y), overlayBG.R)
		}
	}
	tinyfont.WriteLine(d, &tinyfont.Org01, 2, 7, text, overlayFG)
}
