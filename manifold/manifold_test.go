package manifold

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

func TestProjectUnitNorm(t *testing.T) {
	v := mat.NewDense(3, 2, []float64{
		3, 4,
		1, 0,
		-2, 2,
	})
	Project(v)
	n, _ := v.Dims()
	for i := 0; i < n; i++ {
		norm := floats.Norm(v.RawRowView(i), 2)
		if math.Abs(norm-1) > 1e-10 {
			t.Errorf("row %d: norm = %v, want 1", i, norm)
		}
	}
}

func TestProjectIdempotent(t *testing.T) {
	v := mat.NewDense(2, 3, []float64{
		5, -1, 2,
		0.1, 0.2, 0.3,
	})
	Project(v)
	once := mat.DenseCopyOf(v)
	Project(v)
	if !mat.EqualApprox(v, once, 1e-12) {
		t.Fatalf("project∘project != project: got %v, want %v",
			mat.Formatted(v), mat.Formatted(once))
	}
}

func TestProjectZeroRowUnchanged(t *testing.T) {
	v := mat.NewDense(2, 2, []float64{
		0, 0,
		3, 4,
	})
	Project(v)
	if v.At(0, 0) != 0 || v.At(0, 1) != 0 {
		t.Errorf("zero row mutated: %v %v", v.At(0, 0), v.At(0, 1))
	}
	if math.Abs(floats.Norm(v.RawRowView(1), 2)-1) > 1e-12 {
		t.Errorf("nonzero row not normalized")
	}
}

func TestProjectRowPreservesDirection(t *testing.T) {
	row := []float64{2, 0, 0}
	ProjectRow(row)
	want := []float64{1, 0, 0}
	if !floats.EqualApprox(row, want, 1e-12) {
		t.Fatalf("ProjectRow(%v) = %v, want %v", []float64{2, 0, 0}, row, want)
	}
}
