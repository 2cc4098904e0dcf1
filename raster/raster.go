// Package raster generates the position-tagged sample stream the pipeline
// consumes, modeled on a VGA-style scan with blanking intervals.
//
// One Tick emits one stream element. During the visible region the element
// carries a sample from the frame source; during horizontal and vertical
// blanking it is marked invalid, which the pipeline propagates without
// consuming history.
package raster

import (
	"fmt"

	"pixelpipe/engine"
)

// Source supplies samples by scan position. framestore.Store implements it.
type Source interface {
	At(col, row int) uint8
}

// Timing describes one scan geometry. Blanking counts are the extra ticks
// appended to each line and each frame.
type Timing struct {
	Width  int
	Height int
	HBlank int
	VBlank int
}

// VGA640x480 is the reference board's scan: 800 ticks per line, 525 lines
// per frame at the classic 25.175 MHz dot clock.
var VGA640x480 = Timing{Width: 640, Height: 480, HBlank: 160, VBlank: 45}

func (t Timing) validate() error {
	if t.Width < 3 || t.Height < 3 {
		return fmt.Errorf("raster: visible region %dx%d too small", t.Width, t.Height)
	}
	if t.HBlank < 0 || t.VBlank < 0 {
		return fmt.Errorf("raster: negative blanking interval")
	}
	return nil
}

// TicksPerFrame is the total tick count of one scan, blanking included.
func (t Timing) TicksPerFrame() int {
	return (t.Width + t.HBlank) * (t.Height + t.VBlank)
}

// Generator walks the scan and emits one engine.Input per tick. The row
// counter is frame-global: it only resets when the whole scan wraps, which
// is what the window buffer's boundary policy requires.
type Generator struct {
	timing Timing
	src    Source
	col    int
	row    int
	frames uint64
}

// NewGenerator builds a generator over src.
func NewGenerator(timing Timing, src Source) (*Generator, error) {
	if err := timing.validate(); err != nil {
		return nil, err
	}
	if src == nil {
		return nil, fmt.Errorf("raster: nil source")
	}
	return &Generator{timing: timing, src: src}, nil
}

// Timing returns the scan geometry.
func (g *Generator) Timing() Timing { return g.timing }

// Frames counts completed scans.
func (g *Generator) Frames() uint64 { return g.frames }

// Tick emits the stream element at the current scan position and advances
// the counters. It never blocks and never skips a tick.
func (g *Generator) Tick() engine.Input {
	visible := g.col < g.timing.Width && g.row < g.timing.Height
	in := engine.Input{
		Valid:  visible,
		Column: uint32(g.col),
		Row:    uint32(g.row),
	}
	if visible {
		in.Sample = g.src.At(g.col, g.row)
	}

	g.col++
	if g.col == g.timing.Width+g.timing.HBlank {
		g.col = 0
		g.row++
		if g.row == g.timing.Height+g.timing.VBlank {
			g.row = 0
			g.frames++
		}
	}
	return in
}

// Reset rewinds the scan to the top-left of the frame.
func (g *Generator) Reset() {
	g.col = 0
	g.row = 0
}
