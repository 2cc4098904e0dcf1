package engine

import "fmt"

// Depth is the fixed number of ticks between a sample entering the pipeline
// and its corresponding output, independent of the kernel.
const Depth = 7

// tag rides alongside each stage latch: the validity bit plus the scan
// position of the sample the latch was derived from.
type tag struct {
	valid bool
	col   uint32
	row   uint32
}

// ConvolutionPipeline is a fully pipelined 3x3 fixed-point convolver. One
// Step call is one global tick: every stage latch advances exactly once,
// consuming the value its upstream latched on the previous tick.
//
// Stage latches, counted from the raw sample:
//
//	s1  window formation (LineWindowBuffer)
//	s2  per-cell promotion to Q8.8
//	s3  nine coefficient products (32-bit signed, exact)
//	s4  first-level pairwise sums (4) plus the ninth product carried
//	s5  second-level pairwise sums (2) plus the carried product
//	s6  final sum
//	s7  normalize (arithmetic right-shift, truncating) and clamp to [0,255]
//
// The pairwise 4-2-1 reduction order is fixed; it bounds per-stage adder
// depth and makes the summation order canonical.
type ConvolutionPipeline struct {
	kernel Kernel
	shift  uint // NormShift plus the coefficient fraction width
	win    *LineWindowBuffer

	s1  Window
	s2  [3][3]int32
	s3  [9]int32
	s4  [4]int32
	s4c int32
	s5  [2]int32
	s5c int32
	s6  int32
	s7  Output

	// t[i] tags the s(i+2) latch (t[0] for s2 through t[4] for s6); s7
	// carries its tag inside the Output latch, s1 inside t1.
	t  [5]tag
	t1 tag
}

// NewConvolutionPipeline builds a pipeline for one kernel and frame width.
// The kernel is immutable for the lifetime of the instance; misconfigured
// kernels fail here, never at Step time.
func NewConvolutionPipeline(k Kernel, width int) (*ConvolutionPipeline, error) {
	if err := k.validate(); err != nil {
		return nil, fmt.Errorf("engine: convolution pipeline: %w", err)
	}
	win, err := NewLineWindowBuffer(width)
	if err != nil {
		return nil, err
	}
	return &ConvolutionPipeline{
		kernel: k,
		shift:  k.NormShift + fracBits,
		win:    win,
	}, nil
}

// Kernel returns the kernel the pipeline was constructed with.
func (p *ConvolutionPipeline) Kernel() Kernel { return p.kernel }

// Step advances the pipeline one tick. The returned element left the final
// stage this tick and corresponds to the input accepted Depth calls earlier
// (invalid while the pipe is still filling).
func (p *ConvolutionPipeline) Step(in Input) Output {
	out := p.s7

	// Stages run newest-output first so each reads its upstream latch
	// before that latch is overwritten.

	// s7: normalize and saturate the final sum.
	p.s7 = Output{
		Sample: saturate(p.s6 >> p.shift),
		Valid:  p.t[4].valid,
		Column: p.t[4].col,
		Row:    p.t[4].row,
	}

	// s6: final reduction.
	p.s6 = p.s5[0] + p.s5[1] + p.s5c

	// s5: second-level pairwise sums.
	p.s5[0] = p.s4[0] + p.s4[1]
	p.s5[1] = p.s4[2] + p.s4[3]
	p.s5c = p.s4c

	// s4: first-level pairwise sums; the ninth product rides along.
	p.s4[0] = p.s3[0] + p.s3[1]
	p.s4[1] = p.s3[2] + p.s3[3]
	p.s4[2] = p.s3[4] + p.s3[5]
	p.s4[3] = p.s3[6] + p.s3[7]
	p.s4c = p.s3[8]

	// s3: nine coefficient products, exact in 32 bits.
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			p.s3[r*3+c] = int32(p.kernel.Coeff[r][c]) * p.s2[r][c]
		}
	}

	// s2: promote the window cells.
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			p.s2[r][c] = promote(p.s1.Px[r][c])
		}
	}

	// Validity and position shift register, one slot per stage.
	for i := len(p.t) - 1; i > 0; i-- {
		p.t[i] = p.t[i-1]
	}
	p.t[0] = p.t1

	// s1: window formation.
	w, ok := p.win.Advance(in.Sample, in.Valid, in.Column, in.Row)
	p.s1 = w
	p.t1 = tag{valid: ok, col: in.Column, row: in.Row}

	return out
}

// Reset clears every stage latch, validity bit and the window history
// within one tick. In-flight partial sums are discarded; there is no drain.
func (p *ConvolutionPipeline) Reset() {
	p.win.Reset()
	p.s1 = Window{}
	p.s2 = [3][3]int32{}
	p.s3 = [9]int32{}
	p.s4 = [4]int32{}
	p.s4c = 0
	p.s5 = [2]int32{}
	p.s5c = 0
	p.s6 = 0
	p.s7 = Output{}
	p.t = [5]tag{}
	p.t1 = tag{}
}
