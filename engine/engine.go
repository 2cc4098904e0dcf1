package engine

// Input is one element of the raster-scan sample stream, position-tagged by
// the upstream raster source. Row is frame-global and must not reset
// mid-frame; the boundary policy in LineWindowBuffer depends on it.
type Input struct {
	Sample uint8
	Valid  bool
	Column uint32
	Row    uint32
}

// Output is one element of the filtered stream. Column and Row tag the scan
// position the sample belongs to (the position of the input accepted Depth
// ticks earlier). Consumers must treat Valid=false elements as absent, not
// as black pixels.
type Output struct {
	Sample uint8
	Valid  bool
	Column uint32
	Row    uint32
}

// Stepper is a synchronous pipeline advanced one tick per call.
//
// Step never blocks and never drops an accepted element: every call
// consumes one input and returns one (possibly invalid) output.
type Stepper interface {
	Step(in Input) Output
	Reset()
}
