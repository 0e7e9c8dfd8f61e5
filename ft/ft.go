// Package ft provides the Fourier-transform plumbing shared by the spatial
// filters: centered spatial-frequency axes, fftshift-style reorderings, and
// 2D forward/inverse transforms.
//
// Everything here uses one convention: frequency-domain data is stored with
// the zero-frequency bin moved to the center index n/2 by [Shift], and
// [Frequencies] produces the axis matching exactly that ordering. Mixing
// these helpers with a differently-centered transform silently corrupts any
// mask built from the frequency axes, so consumers must not reorder bins on
// their own.
package ft

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/dsp/fourier"
)

var (
	ErrInvalidLength  = errors.New("ft: length must be positive")
	ErrInvalidSpacing = errors.New("ft: sample spacing must be positive")
	ErrLengthMismatch = errors.New("ft: buffer length mismatch")
)

// Frequencies returns the n spatial-frequency bins of a centered discrete
// Fourier transform of an n-sample signal with the given physical sample
// spacing. The bins ascend from negative to positive frequency with the
// zero-frequency bin at index n/2, matching [Shift] ordering.
func Frequencies(spacing float64, n int) ([]float64, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, n)
	}
	if spacing <= 0 {
		return nil, fmt.Errorf("%w: %g", ErrInvalidSpacing, spacing)
	}

	out := make([]float64, n)
	span := float64(n) * spacing
	for i := range out {
		out[i] = float64(i-n/2) / span
	}
	return out, nil
}

// Shift rotates src so the zero-frequency bin lands at index n/2, writing
// into dst. It is the 1D fftshift. dst and src must have equal length and
// must not alias.
func Shift(dst, src []complex128) error {
	n := len(src)
	if len(dst) != n {
		return fmt.Errorf("%w: dst %d, src %d", ErrLengthMismatch, len(dst), n)
	}
	half := n / 2
	for i, v := range src {
		dst[(i+half)%n] = v
	}
	return nil
}

// InverseShift undoes [Shift]: dst[i] = src[(i + n/2) mod n]. For odd
// lengths the two rotations differ, so the correct one must be used on each
// side of a transform. dst and src must not alias.
func InverseShift(dst, src []complex128) error {
	n := len(src)
	if len(dst) != n {
		return fmt.Errorf("%w: dst %d, src %d", ErrLengthMismatch, len(dst), n)
	}
	half := n / 2
	for i := range dst {
		dst[i] = src[(i+half)%n]
	}
	return nil
}

// Transform2D performs forward and inverse 2D discrete Fourier transforms on
// row-major complex grids by transforming rows, then columns. Plans are
// created once per shape and reused across calls. A Transform2D is not safe
// for concurrent use.
type Transform2D struct {
	w, h int
	fx   *fourier.CmplxFFT
	fy   *fourier.CmplxFFT

	rowBuf []complex128
	colIn  []complex128
	colOut []complex128
}

// NewTransform2D creates a transform for grids of width w and height h.
func NewTransform2D(w, h int) (*Transform2D, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidLength, w, h)
	}
	return &Transform2D{
		w:      w,
		h:      h,
		fx:     fourier.NewCmplxFFT(w),
		fy:     fourier.NewCmplxFFT(h),
		rowBuf: make([]complex128, w),
		colIn:  make([]complex128, h),
		colOut: make([]complex128, h),
	}, nil
}

// Forward computes the unnormalized forward 2D transform of src into dst.
// Both must have length w*h. dst and src may alias.
func (t *Transform2D) Forward(dst, src []complex128) error {
	if err := t.check(dst, src); err != nil {
		return err
	}

	for y := 0; y < t.h; y++ {
		row := src[y*t.w : (y+1)*t.w]
		t.fx.Coefficients(t.rowBuf, row)
		copy(dst[y*t.w:(y+1)*t.w], t.rowBuf)
	}

	for x := 0; x < t.w; x++ {
		for y := 0; y < t.h; y++ {
			t.colIn[y] = dst[y*t.w+x]
		}
		t.fy.Coefficients(t.colOut, t.colIn)
		for y := 0; y < t.h; y++ {
			dst[y*t.w+x] = t.colOut[y]
		}
	}
	return nil
}

// Inverse computes the inverse 2D transform of src into dst, normalized by
// 1/(w*h) so that Inverse(Forward(x)) == x. dst and src may alias.
func (t *Transform2D) Inverse(dst, src []complex128) error {
	if err := t.check(dst, src); err != nil {
		return err
	}

	for y := 0; y < t.h; y++ {
		row := src[y*t.w : (y+1)*t.w]
		t.fx.Sequence(t.rowBuf, row)
		copy(dst[y*t.w:(y+1)*t.w], t.rowBuf)
	}

	for x := 0; x < t.w; x++ {
		for y := 0; y < t.h; y++ {
			t.colIn[y] = dst[y*t.w+x]
		}
		t.fy.Sequence(t.colOut, t.colIn)
		for y := 0; y < t.h; y++ {
			dst[y*t.w+x] = t.colOut[y]
		}
	}

	scale := complex(1/float64(t.w*t.h), 0)
	for i := range dst {
		dst[i] *= scale
	}
	return nil
}

func (t *Transform2D) check(dst, src []complex128) error {
	if len(src) != t.w*t.h || len(dst) != t.w*t.h {
		return fmt.Errorf("%w: dst %d, src %d, want %d", ErrLengthMismatch, len(dst), len(src), t.w*t.h)
	}
	return nil
}

// Shift2D applies [Shift] along both axes of a row-major w x h complex grid.
// dst and src must not alias.
func Shift2D(dst, src []complex128, w, h int) error {
	return shift2D(dst, src, w, h, w/2, h/2)
}

// InverseShift2D applies [InverseShift] along both axes of a row-major
// w x h complex grid. dst and src must not alias.
func InverseShift2D(dst, src []complex128, w, h int) error {
	// Rolling by +n/2 on the output side equals rolling by -(n/2) on the
	// input side, which is what ifftshift does.
	return shift2D(dst, src, w, h, w-w/2, h-h/2)
}

func shift2D(dst, src []complex128, w, h, dx, dy int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidLength, w, h)
	}
	if len(src) != w*h || len(dst) != w*h {
		return fmt.Errorf("%w: dst %d, src %d, want %d", ErrLengthMismatch, len(dst), len(src), w*h)
	}

	for y := 0; y < h; y++ {
		ty := (y + dy) % h
		for x := 0; x < w; x++ {
			tx := (x + dx) % w
			dst[ty*w+tx] = src[y*w+x]
		}
	}
	return nil
}
