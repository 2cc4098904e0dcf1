//go:build tinygo && baremetal

package hal

import (
	"machine"

	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/st7789"
)

// The panel is mounted landscape; the 640x480 raster is shown decimated
// 2:1 by the app.
const (
	lcdWidth  = 320
	lcdHeight = 240
)

func initST7789() (*st7789.Device, error) {
	spi := machine.SPI0
	err := spi.Configure(machine.SPIConfig{
		SCK:       machine.GP18,
		SDO:       machine.GP19,
		SDI:       machine.GP16,
		Frequency: 62_500_000,
	})
	if err != nil {
		return nil, err
	}

	d := st7789.New(spi,
		machine.GP20, // reset
		machine.GP21, // dc
		machine.GP17, // cs
		machine.GP22, // backlight
	)
	d.Configure(st7789.Config{
		Width:    240,
		Height:   320,
		Rotation: drivers.Rotation90,
	})
	return &d, nil
}

// lcdFramebuffer buffers one RGB565 frame in RAM and pushes it to the
// panel on Present. The buffer is little-endian like the host framebuffer;
// the panel wants big-endian, so Present swaps while filling the tx chunk.
type lcdFramebuffer struct {
	lcd    *st7789.Device
	width  int
	height int
	buf    []byte
	tx     []byte
}

func newLCDFramebuffer(lcd *st7789.Device, width, height int) *lcdFramebuffer {
	return &lcdFramebuffer{
		lcd:    lcd,
		width:  width,
		height: height,
		buf:    make([]byte, width*height*2),
		tx:     make([]byte, width*2*8), // 8 rows per push
	}
}

func (f *lcdFramebuffer) Width() int          { return f.width }
func (f *lcdFramebuffer) Height() int         { return f.height }
func (f *lcdFramebuffer) Format() PixelFormat { return PixelFormatRGB565 }
func (f *lcdFramebuffer) StrideBytes() int    { return f.width * 2 }
func (f *lcdFramebuffer) Buffer() []byte      { return f.buf }

func (f *lcdFramebuffer) ClearRGB(r, g, b uint8) {
	pixel := rgb565(r, g, b)
	lo := byte(pixel)
	hi := byte(pixel >> 8)
	for i := 0; i < len(f.buf); i += 2 {
		f.buf[i] = lo
		f.buf[i+1] = hi
	}
}

func (f *lcdFramebuffer) Present() error {
	rowBytes := f.width * 2
	rowsPerPush := len(f.tx) / rowBytes
	for y := 0; y < f.height; y += rowsPerPush {
		rows := rowsPerPush
		if y+rows > f.height {
			rows = f.height - y
		}
		n := rows * rowBytes
		src := f.buf[y*rowBytes : y*rowBytes+n]
		for i := 0; i < n; i += 2 {
			f.tx[i] = src[i+1]
			f.tx[i+1] = src[i]
		}
		if err := f.lcd.DrawRGBBitmap8(0, int16(y), f.tx[:n], int16(f.width), int16(rows)); err != nil {
			return err
		}
	}
	return nil
}
