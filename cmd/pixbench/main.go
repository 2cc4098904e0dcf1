// pixbench compares the pipelined engine against a straightforward
// per-window convolution on the same frame. It checks that the two agree
// bit for bit on the valid region, then reports per-frame timings.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"pixelpipe/engine"
)

func main() {
	var (
		width  = flag.Int("width", 640, "Frame width in pixels.")
		height = flag.Int("height", 480, "Frame height in pixels.")
		frames = flag.Int("frames", 10, "Frames per timing run.")
		seed   = flag.Int64("seed", 1, "Frame content seed.")
	)
	flag.Parse()

	if *width < 3 || *height < 3 {
		fatalf("frame %dx%d too small", *width, *height)
	}

	frame := make([]uint8, *width**height)
	rng := rand.New(rand.NewSource(*seed))
	for i := range frame {
		frame[i] = uint8(rng.Intn(256))
	}

	ops := []struct {
		name string
		pipe func() (engine.Stepper, error)
		ref  func(frame []uint8, w, h int) []uint8
	}{
		{"identity", pipeFor(engine.Identity, *width), refConv(engine.Identity)},
		{"blur", pipeFor(engine.Gaussian, *width), refConv(engine.Gaussian)},
		{"sobel-x", pipeFor(engine.SobelX, *width), refConv(engine.SobelX)},
		{"edge", edgePipe(*width), refEdge},
	}

	fmt.Printf("frame %dx%d, %d frames per run\n\n", *width, *height, *frames)
	fmt.Printf("%-10s %12s %12s %8s\n", "op", "pipeline", "reference", "ratio")

	for _, op := range ops {
		p, err := op.pipe()
		if err != nil {
			fatalf("%s: %v", op.name, err)
		}

		got := runPipeline(p, frame, *width, *height)
		want := op.ref(frame, *width, *height)
		if err := compare(got, want, *width, *height); err != nil {
			fatalf("%s: %v", op.name, err)
		}

		pipeMS := timeRun(*frames, func() {
			p.Reset()
			runPipeline(p, frame, *width, *height)
		})
		refMS := timeRun(*frames, func() {
			op.ref(frame, *width, *height)
		})

		fmt.Printf("%-10s %9.2f ms %9.2f ms %7.2fx\n", op.name, pipeMS, refMS, refMS/pipeMS)
	}
}

func pipeFor(k engine.Kernel, width int) func() (engine.Stepper, error) {
	return func() (engine.Stepper, error) {
		return engine.NewConvolutionPipeline(k, width)
	}
}

func edgePipe(width int) func() (engine.Stepper, error) {
	return func() (engine.Stepper, error) {
		return engine.NewEdgeMagnitudeCombiner(width)
	}
}

// runPipeline feeds one frame in scan order plus enough flush ticks to
// drain the pipeline, collecting valid outputs by their position tags.
func runPipeline(p engine.Stepper, frame []uint8, w, h int) []uint8 {
	out := make([]uint8, w*h)
	emit := func(o engine.Output) {
		if o.Valid {
			out[int(o.Row)*w+int(o.Column)] = o.Sample
		}
	}
	for r := 0; r < h; r++ {
		for c := 0; c < w; c++ {
			emit(p.Step(engine.Input{
				Sample: frame[r*w+c],
				Valid:  true,
				Column: uint32(c),
				Row:    uint32(r),
			}))
		}
	}
	for i := 0; i < engine.Depth; i++ {
		emit(p.Step(engine.Input{}))
	}
	return out
}

// refConv builds the plain nested-loop convolution for one kernel, using
// the same fixed-point arithmetic as the engine.
func refConv(k engine.Kernel) func(frame []uint8, w, h int) []uint8 {
	return func(frame []uint8, w, h int) []uint8 {
		out := make([]uint8, w*h)
		shift := k.NormShift + 8
		for r := 2; r < h; r++ {
			for c := 2; c < w; c++ {
				var acc int32
				for kr := 0; kr < 3; kr++ {
					for kc := 0; kc < 3; kc++ {
						px := int32(frame[(r-2+kr)*w+(c-2+kc)]) << 8
						acc += int32(k.Coeff[kr][kc]) * px
					}
				}
				out[r*w+c] = clamp(acc >> shift)
			}
		}
		return out
	}
}

func refEdge(frame []uint8, w, h int) []uint8 {
	gx := refConv(engine.SobelX)(frame, w, h)
	gy := refConv(engine.SobelY)(frame, w, h)
	out := make([]uint8, w*h)
	for i := range out {
		out[i] = clamp(int32(gx[i]) + int32(gy[i]))
	}
	return out
}

func clamp(v int32) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// compare checks the valid region (everything the boundary policy keeps).
func compare(got, want []uint8, w, h int) error {
	for r := 2; r < h; r++ {
		for c := 2; c < w; c++ {
			if got[r*w+c] != want[r*w+c] {
				return fmt.Errorf("mismatch at (%d,%d): pipeline %d, reference %d",
					c, r, got[r*w+c], want[r*w+c])
			}
		}
	}
	return nil
}

func timeRun(frames int, run func()) float64 {
	start := time.Now()
	for i := 0; i < frames; i++ {
		run()
	}
	return time.Since(start).Seconds() * 1e3 / float64(frames)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
