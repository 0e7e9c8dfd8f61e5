package ft

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"
)

// Power computes |X[k]|^2 for each complex bin into dst. dst and spec must
// have the same length.
//
// The squared magnitudes are computed through SIMD block operations on
// unpacked real and imaginary parts.
func Power(dst []float64, spec []complex128) error {
	if len(dst) != len(spec) {
		return fmt.Errorf("%w: dst %d, spec %d", ErrLengthMismatch, len(dst), len(spec))
	}
	if len(spec) == 0 {
		return nil
	}

	re := make([]float64, len(spec))
	im := make([]float64, len(spec))
	for i, c := range spec {
		re[i] = real(c)
		im[i] = imag(c)
	}
	vecmath.Power(dst, re, im)
	return nil
}

// Magnitude computes |X[k]| for each complex bin into dst. dst and spec must
// have the same length.
func Magnitude(dst []float64, spec []complex128) error {
	if len(dst) != len(spec) {
		return fmt.Errorf("%w: dst %d, spec %d", ErrLengthMismatch, len(dst), len(spec))
	}
	if len(spec) == 0 {
		return nil
	}

	re := make([]float64, len(spec))
	im := make([]float64, len(spec))
	for i, c := range spec {
		re[i] = real(c)
		im[i] = imag(c)
	}
	vecmath.Magnitude(dst, re, im)
	return nil
}
