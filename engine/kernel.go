package engine

import "fmt"

// maxNormShift keeps the total normalization shift (NormShift plus the
// coefficient fraction width) inside a 32-bit accumulator.
const maxNormShift = 23

// Kernel is an immutable 3x3 coefficient matrix in Q8.8 plus the arithmetic
// right-shift that undoes the sample promotion and the kernel's own gain.
//
// A kernel is fixed when a pipeline is constructed; there is no runtime
// reconfiguration.
type Kernel struct {
	Coeff     [3][3]Fixed
	NormShift uint
}

// NewKernel builds a custom kernel, rejecting shift amounts the accumulator
// cannot honor. Preset kernels are package variables and need no check.
func NewKernel(coeff [3][3]Fixed, normShift uint) (Kernel, error) {
	k := Kernel{Coeff: coeff, NormShift: normShift}
	if err := k.validate(); err != nil {
		return Kernel{}, err
	}
	return k, nil
}

func (k Kernel) validate() error {
	if k.NormShift > maxNormShift {
		return fmt.Errorf("engine: norm shift %d out of range [0,%d]", k.NormShift, maxNormShift)
	}
	return nil
}

// Preset kernels. NormShift counts the 8 bits of sample promotion plus the
// kernel's power-of-two gain (Gaussian coefficients sum to 16, hence 8+4).
var (
	// Identity passes the center sample through unchanged.
	Identity = Kernel{
		Coeff: [3][3]Fixed{
			{0, 0, 0},
			{0, One, 0},
			{0, 0, 0},
		},
		NormShift: 8,
	}

	// SobelX estimates the horizontal intensity gradient.
	SobelX = Kernel{
		Coeff: [3][3]Fixed{
			{-One, 0, One},
			{-2 * One, 0, 2 * One},
			{-One, 0, One},
		},
		NormShift: 8,
	}

	// SobelY estimates the vertical intensity gradient.
	SobelY = Kernel{
		Coeff: [3][3]Fixed{
			{-One, -2 * One, -One},
			{0, 0, 0},
			{One, 2 * One, One},
		},
		NormShift: 8,
	}

	// Gaussian is a 3x3 binomial blur; coefficients sum to 16.
	Gaussian = Kernel{
		Coeff: [3][3]Fixed{
			{One, 2 * One, One},
			{2 * One, 4 * One, 2 * One},
			{One, 2 * One, One},
		},
		NormShift: 12,
	}
)
