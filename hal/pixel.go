package hal

func rgb565(r, g, b uint8) uint16 {
	rr := uint16(r>>3) & 0x1F
	gg := uint16(g>>2) & 0x3F
	bb := uint16(b>>3) & 0x1F
	return (rr << 11) | (gg << 5) | bb
}

func rgb888From565(p uint16) (r, g, b uint8) {
	rr := (p >> 11) & 0x1F
	gg := (p >> 5) & 0x3F
	bb := p & 0x1F

	r = uint8((rr * 255) / 31)
	g = uint8((gg * 255) / 63)
	b = uint8((bb * 255) / 31)
	return r, g, b
}

// PutGray writes one grayscale pixel into an RGB565 framebuffer. The
// filtered sample stream lands on screen through this. Out-of-bounds
// coordinates are ignored.
func PutGray(fb Framebuffer, x, y int, v uint8) {
	if fb == nil || fb.Format() != PixelFormatRGB565 {
		return
	}
	if x < 0 || x >= fb.Width() || y < 0 || y >= fb.Height() {
		return
	}
	buf := fb.Buffer()
	if buf == nil {
		return
	}
	pixel := rgb565(v, v, v)
	i := y*fb.StrideBytes() + x*2
	buf[i] = byte(pixel)
	buf[i+1] = byte(pixel >> 8)
}
