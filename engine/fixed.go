package engine

// Fixed is a signed Q8.8 fixed-point value: 8 integer bits, 8 fractional bits.
type Fixed int16

// fracBits is the fractional width shared by coefficients and promoted samples.
const fracBits = 8

// One is 1.0 in Q8.8.
const One Fixed = 1 << fracBits

// FixedFromInt converts a small integer to Q8.8.
func FixedFromInt(v int) Fixed { return Fixed(v << fracBits) }

// Float returns the real value of f. Diagnostics only; the pipeline never
// touches floating point.
func (f Fixed) Float() float64 { return float64(f) / float64(One) }

// promote widens a raw 8-bit sample to Q8.8. The scaled value of 255 does
// not fit a signed 16-bit word, so promoted samples live in int32 from the
// start and all downstream arithmetic is 32-bit.
func promote(s uint8) int32 { return int32(s) << fracBits }

// saturate clamps a normalized accumulator value to the 8-bit sample range.
// Negative results clip to 0, overflow clips to 255; nothing wraps and
// nothing is reported as an error.
func saturate(v int32) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
