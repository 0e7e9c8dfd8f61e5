package zernike

import "math"

// Term is a single Zernike polynomial: its conventional name, the
// normalization factor that scales it to unit RMS over the unit disk, and
// its evaluation in polar coordinates.
type Term struct {
	Name string
	Norm float64
	fn   func(rho, phi float64) float64
}

// Eval evaluates the term at the given polar coordinates, without
// normalization.
func (t Term) Eval(rho, phi float64) float64 { return t.fn(rho, phi) }

// cosTerm and sinTerm build azimuthal terms from a radial polynomial.
func cosTerm(m float64, radial func(rho float64) float64) func(rho, phi float64) float64 {
	return func(rho, phi float64) float64 { return radial(rho) * math.Cos(m*phi) }
}

func sinTerm(m float64, radial func(rho float64) float64) func(rho, phi float64) float64 {
	return func(rho, phi float64) float64 { return radial(rho) * math.Sin(m*phi) }
}

// polyval evaluates sum(c[i] * rho^p[i]) with matching coefficient and
// power slices.
func polyval(coefs []float64, powers []float64) func(rho float64) float64 {
	return func(rho float64) float64 {
		var sum float64
		for i, c := range coefs {
			sum += c * math.Pow(rho, powers[i])
		}
		return sum
	}
}

var (
	sqrt2  = math.Sqrt2
	sqrt3  = math.Sqrt(3)
	sqrt5  = math.Sqrt(5)
	sqrt6  = math.Sqrt(6)
	sqrt7  = math.Sqrt(7)
	sqrt10 = math.Sqrt(10)
	sqrt11 = math.Sqrt(11)
	sqrt13 = math.Sqrt(13)
	sqrt14 = math.Sqrt(14)
	sqrt22 = math.Sqrt(22)
)

// terms lists the Zernike polynomials in the Wyant/Fringe ordering used by
// interferometrists. Paired terms come Y (cosine) first, X (sine) second.
var terms = []Term{
	{"Piston", 1, func(rho, phi float64) float64 { return 1 }},
	{"Tilt Y", 2, cosTerm(1, polyval([]float64{1}, []float64{1}))},
	{"Tilt X", 2, sinTerm(1, polyval([]float64{1}, []float64{1}))},
	{"Defocus", sqrt3, func(rho, phi float64) float64 { return 2*rho*rho - 1 }},
	{"Primary Astigmatism 0°", sqrt6, cosTerm(2, polyval([]float64{1}, []float64{2}))},
	{"Primary Astigmatism 45°", sqrt6, sinTerm(2, polyval([]float64{1}, []float64{2}))},
	{"Primary Coma Y", 2 * sqrt2, cosTerm(1, polyval([]float64{-2, 3}, []float64{1, 3}))},
	{"Primary Coma X", 2 * sqrt2, sinTerm(1, polyval([]float64{-2, 3}, []float64{1, 3}))},
	{"Primary Spherical", sqrt5, func(rho, phi float64) float64 {
		r2 := rho * rho
		return 6*r2*r2 - 6*r2 + 1
	}},
	{"Primary Trefoil Y", 2 * sqrt2, cosTerm(3, polyval([]float64{1}, []float64{3}))},
	{"Primary Trefoil X", 2 * sqrt2, sinTerm(3, polyval([]float64{1}, []float64{3}))},
	{"Secondary Astigmatism 0°", sqrt10, cosTerm(2, polyval([]float64{-3, 4}, []float64{2, 4}))},
	{"Secondary Astigmatism 45°", sqrt10, sinTerm(2, polyval([]float64{-3, 4}, []float64{2, 4}))},
	{"Secondary Coma Y", 2 * sqrt3, cosTerm(1, polyval([]float64{3, -12, 10}, []float64{1, 3, 5}))},
	{"Secondary Coma X", 2 * sqrt3, sinTerm(1, polyval([]float64{3, -12, 10}, []float64{1, 3, 5}))},
	{"Secondary Spherical", sqrt7, func(rho, phi float64) float64 {
		r2 := rho * rho
		return 20*r2*r2*r2 - 30*r2*r2 + 12*r2 - 1
	}},
	{"Primary Tetrafoil Y", sqrt10, cosTerm(4, polyval([]float64{1}, []float64{4}))},
	{"Primary Tetrafoil X", sqrt10, sinTerm(4, polyval([]float64{1}, []float64{4}))},
	{"Secondary Trefoil Y", 2 * sqrt3, cosTerm(3, polyval([]float64{-4, 5}, []float64{3, 5}))},
	{"Secondary Trefoil X", 2 * sqrt3, sinTerm(3, polyval([]float64{-4, 5}, []float64{3, 5}))},
	{"Tertiary Astigmatism 0°", sqrt14, cosTerm(2, polyval([]float64{6, -20, 15}, []float64{2, 4, 6}))},
	{"Tertiary Astigmatism 45°", sqrt14, sinTerm(2, polyval([]float64{6, -20, 15}, []float64{2, 4, 6}))},
	{"Tertiary Coma Y", 4, cosTerm(1, polyval([]float64{-4, 30, -60, 35}, []float64{1, 3, 5, 7}))},
	{"Tertiary Coma X", 4, sinTerm(1, polyval([]float64{-4, 30, -60, 35}, []float64{1, 3, 5, 7}))},
	{"Tertiary Spherical", 3, func(rho, phi float64) float64 {
		r2 := rho * rho
		r4 := r2 * r2
		return 70*r4*r4 - 140*r4*r2 + 90*r4 - 20*r2 + 1
	}},
	{"Primary Pentafoil Y", 2 * sqrt3, cosTerm(5, polyval([]float64{1}, []float64{5}))},
	{"Primary Pentafoil X", 2 * sqrt3, sinTerm(5, polyval([]float64{1}, []float64{5}))},
	{"Secondary Tetrafoil Y", sqrt14, cosTerm(4, polyval([]float64{-5, 6}, []float64{4, 6}))},
	{"Secondary Tetrafoil X", sqrt14, sinTerm(4, polyval([]float64{-5, 6}, []float64{4, 6}))},
	{"Tertiary Trefoil Y", 4, cosTerm(3, polyval([]float64{10, -30, 21}, []float64{3, 5, 7}))},
	{"Tertiary Trefoil X", 4, sinTerm(3, polyval([]float64{10, -30, 21}, []float64{3, 5, 7}))},
	{"Quaternary Astigmatism 0°", 3 * sqrt2, cosTerm(2, polyval([]float64{10, -30, 21}, []float64{2, 4, 6}))},
	{"Quaternary Astigmatism 45°", 3 * sqrt2, sinTerm(2, polyval([]float64{10, -30, 21}, []float64{2, 4, 6}))},
	{"Quaternary Coma Y", 2 * sqrt5, cosTerm(1, polyval([]float64{5, -60, 210, -280, 126}, []float64{1, 3, 5, 7, 9}))},
	{"Quaternary Coma X", 2 * sqrt5, sinTerm(1, polyval([]float64{5, -60, 210, -280, 126}, []float64{1, 3, 5, 7, 9}))},
	{"Quaternary Spherical", sqrt11, func(rho, phi float64) float64 {
		r2 := rho * rho
		r4 := r2 * r2
		return 252*r4*r4*r2 - 630*r4*r4 + 560*r4*r2 - 210*r4 + 30*r2 - 1
	}},
	{"Primary Hexafoil Y", sqrt14, cosTerm(6, polyval([]float64{1}, []float64{6}))},
	{"Primary Hexafoil X", sqrt14, sinTerm(6, polyval([]float64{1}, []float64{6}))},
	{"Secondary Pentafoil Y", 4, cosTerm(5, polyval([]float64{-6, 7}, []float64{5, 7}))},
	{"Secondary Pentafoil X", 4, sinTerm(5, polyval([]float64{-6, 7}, []float64{5, 7}))},
	{"Tertiary Tetrafoil Y", 3 * sqrt2, cosTerm(4, polyval([]float64{15, -42, 28}, []float64{4, 6, 8}))},
	{"Tertiary Tetrafoil X", 3 * sqrt2, sinTerm(4, polyval([]float64{15, -42, 28}, []float64{4, 6, 8}))},
	{"Quaternary Trefoil Y", 2 * sqrt5, cosTerm(3, polyval([]float64{-20, 105, -168, 84}, []float64{3, 5, 7, 9}))},
	{"Quaternary Trefoil X", 2 * sqrt5, sinTerm(3, polyval([]float64{-20, 105, -168, 84}, []float64{3, 5, 7, 9}))},
	{"Quinternary Astigmatism 0°", sqrt22, cosTerm(2, polyval([]float64{15, -140, 420, -504, 210}, []float64{2, 4, 6, 8, 10}))},
	{"Quinternary Astigmatism 45°", sqrt22, sinTerm(2, polyval([]float64{15, -140, 420, -504, 210}, []float64{2, 4, 6, 8, 10}))},
	{"Quinternary Coma Y", 2 * sqrt6, cosTerm(1, polyval([]float64{-6, 105, -560, 1260, -1260, 462}, []float64{1, 3, 5, 7, 9, 11}))},
	{"Quinternary Coma X", 2 * sqrt6, sinTerm(1, polyval([]float64{-6, 105, -560, 1260, -1260, 462}, []float64{1, 3, 5, 7, 9, 11}))},
	{"Quinternary Spherical", sqrt13, func(rho, phi float64) float64 {
		r2 := rho * rho
		r4 := r2 * r2
		r6 := r4 * r2
		return 924*r6*r6 - 2772*r4*r6 + 3150*r4*r4 - 1680*r6 + 420*r4 - 42*r2 + 1
	}},
	{"Primary Septafoil Y", 4, cosTerm(7, polyval([]float64{4}, []float64{7}))},
	{"Primary Septafoil X", 4, sinTerm(7, polyval([]float64{4}, []float64{7}))},
}
