package oracle

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/dkenefake/mixingcut/sparse"
)

func triangleQ() *sparse.CSRMatrix {
	// Unweighted triangle, MAX-CUT formulated as minimization: the
	// loader builds Q = -(D-A)/4 (off-diagonal w/4); for this
	// test we use a plain symmetric matrix and cross-check against a
	// dense reference, independent of the sign convention.
	tm := sparse.NewTripletMatrix(3)
	tm.Add(0, 1, 0.5)
	tm.Add(1, 0, 0.5)
	tm.Add(0, 2, 0.5)
	tm.Add(2, 0, 0.5)
	tm.Add(1, 2, 0.5)
	tm.Add(2, 1, 0.5)
	return tm.ToCSR()
}

func denseObjective(q *sparse.CSRMatrix, v *mat.Dense) float64 {
	qd := q.Dense()
	n, k := v.Dims()
	var vvt mat.Dense
	vvt.Mul(v, v.T())

	var trace float64
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			trace += qd.At(i, j) * vvt.At(i, j)
		}
	}
	_ = k
	return trace
}

func TestObjectiveMatchesDenseReference(t *testing.T) {
	q := triangleQ()
	v := mat.NewDense(3, 2, []float64{
		1, 0,
		0, 1,
		0.6, 0.8,
	})
	got := Objective(q, v)
	want := denseObjective(q, v)
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("Objective = %v, want %v", got, want)
	}
}

func TestGradientFiniteDifference(t *testing.T) {
	q := triangleQ()
	v := mat.NewDense(3, 2, []float64{
		0.8, 0.6,
		0.0, 1.0,
		-0.6, 0.8,
	})

	grad := mat.NewDense(3, 2, nil)
	Gradient(q, v, grad)

	const h = 1e-6
	for i := 0; i < 3; i++ {
		for j := 0; j < 2; j++ {
			plus := mat.DenseCopyOf(v)
			plus.Set(i, j, plus.At(i, j)+h)
			minus := mat.DenseCopyOf(v)
			minus.Set(i, j, minus.At(i, j)-h)

			fd := (Objective(q, plus) - Objective(q, minus)) / (2 * h)
			analytic := grad.At(i, j)
			if math.Abs(fd-analytic) > 1e-4 {
				t.Errorf("grad[%d][%d]: finite diff %v, analytic %v", i, j, fd, analytic)
			}
		}
	}
}

func TestQNormIsMaxAbsRowSum(t *testing.T) {
	q := triangleQ()
	got := QNorm(q)
	want := 1.0 // each row has two 0.5 entries
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("QNorm = %v, want %v", got, want)
	}
}

func TestRoundedObjectiveMirrorsObjective(t *testing.T) {
	q := triangleQ()
	x := []float64{1, -1, 1}
	v := mat.NewDense(3, 1, x)
	got := RoundedObjective(q, x)
	want := Objective(q, v)
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("RoundedObjective = %v, want %v", got, want)
	}
}

func TestDualBoundBoundsObjective(t *testing.T) {
	// MAX-CUT formulation: Q = -(D-A)/4 for the triangle so that
	// minimizing tr(QVVᵀ) corresponds to maximizing the cut.
	tm := sparse.NewTripletMatrix(3)
	w := 0.25
	tm.Add(0, 1, w)
	tm.Add(1, 0, w)
	tm.Add(0, 2, w)
	tm.Add(2, 0, w)
	tm.Add(1, 2, w)
	tm.Add(2, 1, w)
	tm.Add(0, 0, -0.5)
	tm.Add(1, 1, -0.5)
	tm.Add(2, 2, -0.5)
	q := tm.ToCSR()

	v := mat.NewDense(3, 2, []float64{
		1, 0,
		-0.5, 0.866025403784,
		-0.5, -0.866025403784,
	})

	primal := Objective(q, v)
	bound, err := DualBound(q, v)
	if err != nil {
		t.Fatalf("DualBound: %v", err)
	}
	if bound > primal+1e-6 {
		t.Fatalf("dual bound %v exceeds primal objective %v", bound, primal)
	}
}
