package engine

import (
	"math/rand"
	"testing"
)

// runFrame streams one full frame through p in raster order, then Depth
// invalid flush ticks so every accepted sample's output is observed. The
// returned slice holds one element per tick.
func runFrame(t *testing.T, p Stepper, pix func(col, row int) uint8, width, height int) []Output {
	t.Helper()
	out := make([]Output, 0, width*height+Depth)
	for r := 0; r < height; r++ {
		for c := 0; c < width; c++ {
			out = append(out, p.Step(Input{
				Sample: pix(c, r),
				Valid:  true,
				Column: uint32(c),
				Row:    uint32(r),
			}))
		}
	}
	for i := 0; i < Depth; i++ {
		out = append(out, p.Step(Input{}))
	}
	return out
}

func newPipe(t *testing.T, k Kernel, width int) *ConvolutionPipeline {
	t.Helper()
	p, err := NewConvolutionPipeline(k, width)
	if err != nil {
		t.Fatalf("NewConvolutionPipeline: %v", err)
	}
	return p
}

func TestOutputOffsetByDepth(t *testing.T) {
	const width, height = 6, 5
	p := newPipe(t, Identity, width)

	out := runFrame(t, p, func(c, r int) uint8 { return uint8(c + r) }, width, height)

	if len(out) != width*height+Depth {
		t.Fatalf("got %d outputs for %d ticks", len(out), width*height+Depth)
	}
	for n := 0; n < Depth; n++ {
		if out[n].Valid {
			t.Fatalf("output %d valid during pipeline fill", n)
		}
	}
	// The n-th output carries the position tag of the n-Depth-th input.
	for n := Depth; n < len(out); n++ {
		in := n - Depth
		c, r := in%width, in/width
		wantValid := r >= 2 && c >= 2
		if out[n].Valid != wantValid {
			t.Fatalf("output %d valid = %v, want %v (anchor %d,%d)", n, out[n].Valid, wantValid, r, c)
		}
		if !out[n].Valid {
			continue
		}
		if out[n].Column != uint32(c) || out[n].Row != uint32(r) {
			t.Fatalf("output %d tagged (%d,%d), want (%d,%d)",
				n, out[n].Row, out[n].Column, r, c)
		}
	}
}

// Scenario: an 8-wide, 3-row ramp through Identity. Rows 0-1 and the first
// two columns of row 2 are suppressed; each valid output is the window
// center, i.e. the ramp value one row and one column back from the anchor.
func TestIdentityRampFrame(t *testing.T) {
	const width, height = 8, 3
	pix := func(c, r int) uint8 { return uint8(r*width + c) }
	p := newPipe(t, Identity, width)

	out := runFrame(t, p, pix, width, height)

	var valid int
	for n, o := range out {
		if !o.Valid {
			continue
		}
		valid++
		if o.Row != 2 || o.Column < 2 {
			t.Fatalf("output %d tagged (%d,%d), outside the valid region", n, o.Row, o.Column)
		}
		want := pix(int(o.Column)-1, int(o.Row)-1)
		if o.Sample != want {
			t.Fatalf("identity output at (%d,%d) = %d, want %d", o.Row, o.Column, o.Sample, want)
		}
	}
	if valid != width-2 {
		t.Fatalf("got %d valid outputs, want %d", valid, width-2)
	}
}

// Scenario: a uniform 5x5 field of 128 through Gaussian. Coefficients are
// normalized to sum to exactly 1, so every valid output is 128.
func TestGaussianUniformField(t *testing.T) {
	const width, height = 5, 5
	p := newPipe(t, Gaussian, width)

	out := runFrame(t, p, func(c, r int) uint8 { return 128 }, width, height)

	var valid int
	for _, o := range out {
		if !o.Valid {
			continue
		}
		valid++
		if o.Sample != 128 {
			t.Fatalf("gaussian output at (%d,%d) = %d, want 128", o.Row, o.Column, o.Sample)
		}
	}
	if want := (width - 2) * (height - 2); valid != want {
		t.Fatalf("got %d valid outputs, want %d", valid, want)
	}
}

func TestSaturationClamp(t *testing.T) {
	const width, height = 5, 5

	// Nine 1.0 coefficients with only the promotion shift: a 9x gain.
	var gain [3][3]Fixed
	for r := range gain {
		for c := range gain[r] {
			gain[r][c] = One
		}
	}
	over, err := NewKernel(gain, 8)
	if err != nil {
		t.Fatalf("NewKernel: %v", err)
	}

	// A lone negative center: every result is negative.
	var neg [3][3]Fixed
	neg[1][1] = -One
	under, err := NewKernel(neg, 8)
	if err != nil {
		t.Fatalf("NewKernel: %v", err)
	}

	cases := []struct {
		name string
		k    Kernel
		pix  uint8
		want uint8
	}{
		{"overflow clamps to 255", over, 40, 255}, // 9*40 = 360
		{"in-range passes", over, 10, 90},
		{"negative clamps to 0", under, 100, 0},
	}
	for _, tc := range cases {
		p := newPipe(t, tc.k, width)
		out := runFrame(t, p, func(c, r int) uint8 { return tc.pix }, width, height)
		for _, o := range out {
			if o.Valid && o.Sample != tc.want {
				t.Fatalf("%s: output at (%d,%d) = %d, want %d",
					tc.name, o.Row, o.Column, o.Sample, tc.want)
			}
		}
	}
}

func TestNormalizationTruncates(t *testing.T) {
	// Identity center with one extra shift bit halves the sample; the
	// fractional remainder is discarded, not rounded.
	var coeff [3][3]Fixed
	coeff[1][1] = One
	half, err := NewKernel(coeff, 9)
	if err != nil {
		t.Fatalf("NewKernel: %v", err)
	}

	const width, height = 5, 5
	p := newPipe(t, half, width)
	out := runFrame(t, p, func(c, r int) uint8 { return 5 }, width, height)
	for _, o := range out {
		if o.Valid && o.Sample != 2 {
			t.Fatalf("truncated output = %d, want 2", o.Sample)
		}
	}
}

func TestDeterministicReplay(t *testing.T) {
	const width, ticks = 7, 400

	stream := make([]Input, ticks)
	rng := rand.New(rand.NewSource(1))
	col, row := 0, 0
	for i := range stream {
		in := Input{
			Sample: uint8(rng.Intn(256)),
			Valid:  rng.Intn(8) != 0, // occasional blanking ticks
			Column: uint32(col),
			Row:    uint32(row),
		}
		stream[i] = in
		if in.Valid {
			col++
			if col == width {
				col = 0
				row++
			}
		}
	}

	run := func() []Output {
		p := newPipe(t, Gaussian, width)
		out := make([]Output, len(stream))
		for i, in := range stream {
			out[i] = p.Step(in)
		}
		return out
	}

	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("replay diverged at tick %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestResetMatchesFreshPipeline(t *testing.T) {
	const width, height = 6, 4
	pix := func(c, r int) uint8 { return uint8(31*r + 5*c) }

	p := newPipe(t, SobelX, width)
	first := runFrame(t, p, pix, width, height)

	p.Reset()
	second := runFrame(t, p, pix, width, height)

	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("tick %d after reset = %+v, want %+v", i, second[i], first[i])
		}
	}
}
