package engine

import "testing"

func TestNewKernelRejectsBadShift(t *testing.T) {
	var coeff [3][3]Fixed
	coeff[1][1] = One

	if _, err := NewKernel(coeff, maxNormShift); err != nil {
		t.Fatalf("NewKernel(shift=%d): %v", maxNormShift, err)
	}
	if _, err := NewKernel(coeff, maxNormShift+1); err == nil {
		t.Fatalf("NewKernel(shift=%d) succeeded, want error", maxNormShift+1)
	}
}

func TestPresetShifts(t *testing.T) {
	cases := []struct {
		name  string
		k     Kernel
		shift uint
	}{
		{"identity", Identity, 8},
		{"sobel-x", SobelX, 8},
		{"sobel-y", SobelY, 8},
		{"gaussian", Gaussian, 12},
	}
	for _, tc := range cases {
		if tc.k.NormShift != tc.shift {
			t.Fatalf("%s NormShift = %d, want %d", tc.name, tc.k.NormShift, tc.shift)
		}
		if err := tc.k.validate(); err != nil {
			t.Fatalf("%s validate: %v", tc.name, err)
		}
	}
}

func TestGaussianGainMatchesShift(t *testing.T) {
	var sum int32
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			sum += int32(Gaussian.Coeff[r][c])
		}
	}
	// Coefficients sum to 16.0, so NormShift carries 4 bits beyond the
	// 8-bit sample promotion.
	if sum != 16*int32(One) {
		t.Fatalf("gaussian coefficient sum = %d, want %d", sum, 16*int32(One))
	}
}
