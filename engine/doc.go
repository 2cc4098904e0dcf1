// Package engine implements a deterministic fixed-point 3x3 convolution
// pipeline over a raster-scan sample stream.
//
// The engine mirrors a synchronous hardware dataflow: every call to Step
// advances one global tick, consumes exactly one (possibly invalid) input
// element and produces exactly one (possibly invalid) output element. There
// is no backpressure and no reordering; the n-th output always corresponds
// to the n-th input, offset by the fixed pipeline depth.
//
// Pipeline (fixed, one tick per stage):
//
//	Window → Promote → Multiply → Reduce(4) → Reduce(2) → Reduce(1) → Normalize+Saturate.
//
// Arithmetic is Q8.8 fixed point. All state is allocated at construction;
// the steady-state path does not allocate.
package engine
