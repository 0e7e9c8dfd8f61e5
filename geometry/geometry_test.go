package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/samkberry/prysm/grid"
)

func TestCircle(t *testing.T) {
	c, err := Circle(5, 1)
	if err != nil {
		t.Fatalf("Circle: %v", err)
	}

	// Center and edge midpoints are inside, corners are outside.
	if c.At(2, 2) != 1 {
		t.Error("center not inside circle")
	}
	if c.At(4, 2) != 1 || c.At(2, 0) != 1 {
		t.Error("edge midpoint not inside unit circle")
	}
	if c.At(0, 0) != 0 || c.At(4, 4) != 0 {
		t.Error("corner inside unit circle")
	}
}

func TestCircle_ZeroRadius(t *testing.T) {
	c, err := Circle(4, 0)
	if err != nil {
		t.Fatalf("Circle: %v", err)
	}
	for i, v := range c.Values() {
		// Only an exactly-zero rho sample can survive radius 0, and a
		// 4-sample axis has none.
		if v != 0 {
			t.Fatalf("sample %d inside zero-radius circle", i)
		}
	}
}

func TestCircle_NegativeRadius(t *testing.T) {
	if _, err := Circle(8, -1); !errors.Is(err, ErrInvalidRadius) {
		t.Errorf("negative radius: got %v, want ErrInvalidRadius", err)
	}
}

func TestInvertedCircle(t *testing.T) {
	c, err := InvertedCircle(5, 0.5)
	if err != nil {
		t.Fatalf("InvertedCircle: %v", err)
	}
	if c.At(2, 2) != 0 {
		t.Error("center not obscured")
	}
	if c.At(0, 0) != 1 {
		t.Error("corner obscured")
	}
}

func TestAnnulus(t *testing.T) {
	a, err := Annulus(9, 0.3, 1)
	if err != nil {
		t.Fatalf("Annulus: %v", err)
	}
	if a.At(4, 4) != 0 {
		t.Error("annulus center not obscured")
	}
	if a.At(8, 4) != 1 {
		t.Error("edge midpoint not inside annulus")
	}
	if a.At(0, 0) != 0 {
		t.Error("corner inside annulus")
	}

	if _, err := Annulus(9, 1, 0.3); !errors.Is(err, ErrInvalidRadius) {
		t.Errorf("inverted radii: got %v, want ErrInvalidRadius", err)
	}
}

func TestGaussian(t *testing.T) {
	g, err := Gaussian(9, 0.5)
	if err != nil {
		t.Fatalf("Gaussian: %v", err)
	}
	if got := g.At(4, 4); math.Abs(got-1) > 1e-12 {
		t.Errorf("peak: got %g, want 1", got)
	}
	// Half maximum at rho = sigma.
	if got := g.At(6, 4); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("value at rho=sigma: got %g, want 0.5", got)
	}
	// Monotone falloff toward the corner.
	if g.At(0, 0) >= g.At(2, 2) {
		t.Error("gaussian does not fall off toward the corner")
	}

	if _, err := Gaussian(8, 0); !errors.Is(err, ErrInvalidSigma) {
		t.Errorf("zero sigma: got %v, want ErrInvalidSigma", err)
	}
}

func TestRectangle(t *testing.T) {
	r, err := Rectangle(5, 1, 0.5)
	if err != nil {
		t.Fatalf("Rectangle: %v", err)
	}
	if r.At(0, 2) != 1 || r.At(4, 2) != 1 {
		t.Error("full-width row not inside rectangle")
	}
	if r.At(2, 0) != 0 || r.At(2, 4) != 0 {
		t.Error("sample outside half-height inside rectangle")
	}
}

func TestRegularPolygon(t *testing.T) {
	sq, err := RegularPolygon(17, 4, 1)
	if err != nil {
		t.Fatalf("RegularPolygon: %v", err)
	}
	// A 4-gon with vertex on +y is a diamond: center inside, corners out.
	if sq.At(8, 8) != 1 {
		t.Error("center not inside polygon")
	}
	if sq.At(0, 0) != 0 || sq.At(16, 16) != 0 {
		t.Error("array corner inside diamond")
	}
	// Vertices on the axes are on the boundary.
	if sq.At(8, 0) != 1 || sq.At(8, 16) != 1 {
		t.Error("polygon vertex not inside mask")
	}

	if _, err := RegularPolygon(8, 2, 1); !errors.Is(err, ErrInvalidSides) {
		t.Errorf("2 sides: got %v, want ErrInvalidSides", err)
	}
}

func TestApply(t *testing.T) {
	g, err := grid.NewFilled(5, 5, 3)
	if err != nil {
		t.Fatalf("NewFilled: %v", err)
	}
	mask, err := Circle(5, 1)
	if err != nil {
		t.Fatalf("Circle: %v", err)
	}

	if _, err := Apply(g, mask); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !math.IsNaN(g.At(0, 0)) {
		t.Error("masked-out sample not invalid")
	}
	if g.At(2, 2) != 3 {
		t.Errorf("interior sample changed: got %g, want 3", g.At(2, 2))
	}
}

func TestApply_Apodizing(t *testing.T) {
	g, err := grid.NewFilled(9, 9, 2)
	if err != nil {
		t.Fatalf("NewFilled: %v", err)
	}
	mask, err := Gaussian(9, 0.5)
	if err != nil {
		t.Fatalf("Gaussian: %v", err)
	}
	if _, err := Apply(g, mask); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	// Attenuation at rho=sigma halves the value.
	if got := g.At(6, 4); math.Abs(got-1) > 1e-12 {
		t.Errorf("apodized value: got %g, want 1", got)
	}
}

func TestApply_ShapeMismatch(t *testing.T) {
	g, err := grid.New(4, 4)
	if err != nil {
		t.Fatalf("grid.New: %v", err)
	}
	mask, err := Circle(5, 1)
	if err != nil {
		t.Fatalf("Circle: %v", err)
	}
	if _, err := Apply(g, mask); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("mismatched mask: got %v, want ErrShapeMismatch", err)
	}
}
