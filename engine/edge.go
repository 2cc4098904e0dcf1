package engine

// EdgeMagnitudeCombiner runs SobelX and SobelY pipelines in lock-step and
// merges their outputs into an edge-strength stream, approximating gradient
// magnitude as |Gx| + |Gy| instead of the Euclidean norm.
//
// Each channel is saturated to [0,255] by its own pipeline before the
// combine, so negative gradient contributions are already clipped away at
// this point. The combiner sums the two nonnegative 8-bit values into a
// 9-bit sum and re-saturates.
type EdgeMagnitudeCombiner struct {
	gx *ConvolutionPipeline
	gy *ConvolutionPipeline
}

// NewEdgeMagnitudeCombiner builds the two gradient pipelines for the given
// frame width. The pipelines share no mutable state.
func NewEdgeMagnitudeCombiner(width int) (*EdgeMagnitudeCombiner, error) {
	gx, err := NewConvolutionPipeline(SobelX, width)
	if err != nil {
		return nil, err
	}
	gy, err := NewConvolutionPipeline(SobelY, width)
	if err != nil {
		return nil, err
	}
	return &EdgeMagnitudeCombiner{gx: gx, gy: gy}, nil
}

// Step feeds the same input to both gradient pipelines and combines the
// two elements leaving them this tick. The two pipes are structurally
// identical and stay synchronized, but validity is still the explicit AND
// of both flags rather than an assumption.
func (e *EdgeMagnitudeCombiner) Step(in Input) Output {
	ox := e.gx.Step(in)
	oy := e.gy.Step(in)

	sum := int32(ox.Sample) + int32(oy.Sample)
	return Output{
		Sample: saturate(sum),
		Valid:  ox.Valid && oy.Valid,
		Column: ox.Column,
		Row:    ox.Row,
	}
}

// Reset clears both gradient pipelines.
func (e *EdgeMagnitudeCombiner) Reset() {
	e.gx.Reset()
	e.gy.Reset()
}
