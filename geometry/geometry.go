// Package geometry generates aperture masks over the unit square and
// applies them to measurement grids.
//
// Masks are grids of ones inside the shape and zeros outside, evaluated
// over normalized coordinates spanning [-1, 1] on both axes. Applying a
// mask marks the outside samples invalid, the same dropout representation
// instruments use for unmeasurable regions.
package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/samkberry/prysm/coordinates"
	"github.com/samkberry/prysm/grid"
)

var (
	ErrInvalidRadius = errors.New("geometry: radius must be non-negative")
	ErrInvalidSides  = errors.New("geometry: polygon needs at least 3 sides")
	ErrInvalidSigma  = errors.New("geometry: sigma must be positive")
	ErrShapeMismatch = errors.New("geometry: mask shape does not match grid")
)

// Circle returns a binary circular mask. radius is normalized so 1 fills
// the array extent; radius 0 is a fully opaque mask.
func Circle(samples int, radius float64) (*grid.Grid, error) {
	if radius < 0 {
		return nil, fmt.Errorf("%w: %g", ErrInvalidRadius, radius)
	}
	return radialMask(samples, func(rho float64) bool { return rho <= radius })
}

// InvertedCircle returns a central obscuration: zeros inside the radius,
// ones outside.
func InvertedCircle(samples int, radius float64) (*grid.Grid, error) {
	if radius < 0 {
		return nil, fmt.Errorf("%w: %g", ErrInvalidRadius, radius)
	}
	return radialMask(samples, func(rho float64) bool { return rho >= radius })
}

// Annulus returns ones between the inner and outer radii, the aperture of
// an obscured telescope pupil.
func Annulus(samples int, inner, outer float64) (*grid.Grid, error) {
	if inner < 0 || outer < inner {
		return nil, fmt.Errorf("%w: inner %g, outer %g", ErrInvalidRadius, inner, outer)
	}
	return radialMask(samples, func(rho float64) bool { return rho >= inner && rho <= outer })
}

// Gaussian returns a smooth apodization mask with the given width
// parameter, peaking at 1 in the center. sigma is the half width at half
// maximum in normalized radius units.
func Gaussian(samples int, sigma float64) (*grid.Grid, error) {
	if sigma <= 0 {
		return nil, fmt.Errorf("%w: %g", ErrInvalidSigma, sigma)
	}

	rho, _, err := coordinates.RhoPhiGrid(samples, samples)
	if err != nil {
		return nil, fmt.Errorf("geometry: %w", err)
	}

	out, err := grid.New(samples, samples)
	if err != nil {
		return nil, fmt.Errorf("geometry: %w", err)
	}
	vals := out.Values()
	for i, r := range rho.Values() {
		vals[i] = math.Exp(-math.Ln2 * r * r / (sigma * sigma))
	}
	return out, nil
}

// Rectangle returns a binary rectangular mask with the given half widths
// in normalized coordinates.
func Rectangle(samples int, halfWidth, halfHeight float64) (*grid.Grid, error) {
	if halfWidth < 0 || halfHeight < 0 {
		return nil, fmt.Errorf("%w: %g x %g", ErrInvalidRadius, halfWidth, halfHeight)
	}

	ax := coordinates.UnitAxis(samples)
	out, err := grid.New(samples, samples)
	if err != nil {
		return nil, fmt.Errorf("geometry: %w", err)
	}
	for iy, y := range ax {
		for ix, x := range ax {
			if math.Abs(x) <= halfWidth && math.Abs(y) <= halfHeight {
				out.Set(ix, iy, 1)
			}
		}
	}
	return out, nil
}

// RegularPolygon returns a binary mask of a convex regular polygon with
// the given side count, one vertex pointing along +y.
func RegularPolygon(samples, sides int, radius float64) (*grid.Grid, error) {
	if sides < 3 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSides, sides)
	}
	if radius < 0 {
		return nil, fmt.Errorf("%w: %g", ErrInvalidRadius, radius)
	}

	vx := make([]float64, sides)
	vy := make([]float64, sides)
	step := 2 * math.Pi / float64(sides)
	for k := range vx {
		vx[k] = radius * math.Sin(float64(k)*step)
		vy[k] = radius * math.Cos(float64(k)*step)
	}

	ax := coordinates.UnitAxis(samples)
	out, err := grid.New(samples, samples)
	if err != nil {
		return nil, fmt.Errorf("geometry: %w", err)
	}
	for iy, y := range ax {
		for ix, x := range ax {
			if insideConvex(x, y, vx, vy) {
				out.Set(ix, iy, 1)
			}
		}
	}
	return out, nil
}

// insideConvex reports whether (x, y) lies inside or on the boundary of
// the convex polygon given by counterclockwise-or-clockwise consistent
// vertices.
func insideConvex(x, y float64, vx, vy []float64) bool {
	n := len(vx)
	var sign float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		cross := (vx[j]-vx[i])*(y-vy[i]) - (vy[j]-vy[i])*(x-vx[i])
		if cross == 0 {
			continue
		}
		if sign == 0 {
			sign = cross
			continue
		}
		if sign*cross < 0 {
			return false
		}
	}
	return true
}

// Apply marks every sample of g where the mask is zero as invalid and
// scales the rest by the mask value. Binary masks pass interior samples
// through unchanged; apodizing masks attenuate them. g is modified in
// place and returned.
func Apply(g, mask *grid.Grid) (*grid.Grid, error) {
	if !g.SameShape(mask) {
		return nil, fmt.Errorf("%w: %dx%d vs %dx%d",
			ErrShapeMismatch, mask.Width(), mask.Height(), g.Width(), g.Height())
	}

	vals := g.Values()
	vecmath.MulBlockInPlace(vals, mask.Values())
	for i, mv := range mask.Values() {
		if mv == 0 {
			vals[i] = math.NaN()
		}
	}
	return g, nil
}

func radialMask(samples int, inside func(rho float64) bool) (*grid.Grid, error) {
	rho, _, err := coordinates.RhoPhiGrid(samples, samples)
	if err != nil {
		return nil, fmt.Errorf("geometry: %w", err)
	}

	out, err := grid.New(samples, samples)
	if err != nil {
		return nil, fmt.Errorf("geometry: %w", err)
	}
	vals := out.Values()
	for i, r := range rho.Values() {
		if inside(r) {
			vals[i] = 1
		}
	}
	return out, nil
}
