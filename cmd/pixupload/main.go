// pixupload converts an image to the frame format the board expects
// (grayscale, row-major, one byte per pixel) and streams it to a serial
// port. With -port - it writes to stdout, which pipes straight into the
// host build:
//
//	pixupload -image lena.png -port - | pixelpipe -headless
package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"time"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

const chunkSize = 1024

func main() {
	var (
		imagePath = flag.String("image", "", "Input image (PNG, JPEG or BMP).")
		portPath  = flag.String("port", "", "Serial device or file to write to ('-' for stdout).")
		width     = flag.Int("width", 640, "Frame width in pixels.")
		height    = flag.Int("height", 480, "Frame height in pixels.")
		quiet     = flag.Bool("quiet", false, "Suppress progress output.")
	)
	flag.Parse()

	if *imagePath == "" || *portPath == "" {
		fatalf("usage: pixupload -image in.png -port /dev/ttyUSB0 [-width 640 -height 480]")
	}
	if *width < 3 || *height < 3 {
		fatalf("frame %dx%d too small", *width, *height)
	}

	frame, err := loadFrame(*imagePath, *width, *height, *quiet)
	if err != nil {
		fatalf("load: %v", err)
	}

	out, closeOut, err := openPort(*portPath)
	if err != nil {
		fatalf("port: %v", err)
	}
	defer closeOut()

	if err := upload(out, frame, *quiet); err != nil {
		fatalf("upload: %v", err)
	}
}

// loadFrame decodes the image and scales it onto a grayscale frame of the
// requested geometry.
func loadFrame(path string, w, h int, quiet bool) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	src, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %q: %w", path, err)
	}
	if !quiet {
		b := src.Bounds()
		fmt.Fprintf(os.Stderr, "loaded %s (%s, %dx%d)\n", path, format, b.Dx(), b.Dy())
	}

	gray := image.NewGray(image.Rect(0, 0, w, h))
	draw.BiLinear.Scale(gray, gray.Bounds(), src, src.Bounds(), draw.Src, nil)

	if gray.Stride == w {
		return gray.Pix, nil
	}
	frame := make([]byte, w*h)
	for r := 0; r < h; r++ {
		copy(frame[r*w:(r+1)*w], gray.Pix[r*gray.Stride:])
	}
	return frame, nil
}

func openPort(path string) (*os.File, func(), error) {
	if path == "-" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}

// upload streams the raw frame in chunks. There is no framing on the
// wire; the receiver counts bytes.
func upload(out *os.File, frame []byte, quiet bool) error {
	start := time.Now()
	for off := 0; off < len(frame); off += chunkSize {
		end := off + chunkSize
		if end > len(frame) {
			end = len(frame)
		}
		if _, err := out.Write(frame[off:end]); err != nil {
			return err
		}
		if !quiet && off%(chunkSize*64) == 0 {
			fmt.Fprintf(os.Stderr, "\rupload %3d%%", off*100/len(frame))
		}
	}
	if err := out.Sync(); err != nil && out != os.Stdout {
		return err
	}

	if !quiet {
		d := time.Since(start)
		rate := float64(len(frame)) / d.Seconds()
		fmt.Fprintf(os.Stderr, "\rupload 100%%  %d pixels in %.2fs (%.0f px/s, %.1f KB/s)\n",
			len(frame), d.Seconds(), rate, rate/1024)
	}
	return nil
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
