// Package oracle evaluates the quadratic trace objective, its gradient,
// the row-sum operator norm used to size a safe step, and the dual
// variables/bound that certify solution quality (spec §4.2, C2).
//
// Every function here is a pure function of (Q, V) or (Q, x); none of
// them mutate Q, and all assume Q is symmetric per the DATA MODEL
// invariant established by graphio.ReadGraph.
package oracle

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/dkenefake/mixingcut/sparse"
)

// Objective computes tr(Q·V·Vᵀ) via the symmetric sparse traversal of
// spec §4.2: diagonal entries contribute once, off-diagonal entries
// (i<j) contribute with a factor of 2. This resolves Open Question 1 by
// matching graphio.ReadGraph's loader convention — the loader stores the
// same off-diagonal value (w/4) at both (i,j) and (j,i), so counting only
// the i<j half with a factor of 2 counts each edge exactly once.
func Objective(q *sparse.CSRMatrix, v *mat.Dense) float64 {
	var trace float64
	q.All(func(i, j int, val float64) {
		if i == j {
			row := v.RawRowView(i)
			trace += val * floats.Dot(row, row)
			return
		}
		if i < j {
			trace += 2 * val * floats.Dot(v.RawRowView(i), v.RawRowView(j))
		}
	})
	return trace
}

// RoundedObjective mirrors Objective with scalar products x_i·x_j in
// place of the row dot products, for a rounded ±1 assignment x.
func RoundedObjective(q *sparse.CSRMatrix, x []float64) float64 {
	var trace float64
	q.All(func(i, j int, val float64) {
		if i == j {
			trace += val * x[i] * x[i]
			return
		}
		if i < j {
			trace += 2 * val * x[i] * x[j]
		}
	})
	return trace
}

// Gradient computes grad = 2·Q·V into dst, which must already be sized
// n×k. Callers on the hot path (step.Grad, step.GradAdv) pass a reused
// scratch buffer to avoid an allocation every iteration, per spec §4.2
// ("Implementations should fuse with the step if possible").
func Gradient(q *sparse.CSRMatrix, v, dst *mat.Dense) {
	q.MulDenseInto(dst, v)
	dst.Scale(2, dst)
}

// QNorm computes the induced ℓ∞→ℓ∞ operator norm of q: the maximum
// absolute row sum, max_i Σ_j |Q[i,j]|. This resolves Open Question 2 in
// favor of the spec's explicit statement — accumulating into c[i] only,
// never double-counting into c[j] as some source revisions did.
func QNorm(q *sparse.CSRMatrix) float64 {
	n := q.Dims()
	var maxRowSum float64
	for i := 0; i < n; i++ {
		_, vals := q.RowNonzeros(i)
		var rowSum float64
		for _, val := range vals {
			rowSum += abs(val)
		}
		if rowSum > maxRowSum {
			maxRowSum = rowSum
		}
	}
	return maxRowSum
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// DualVariables computes y_i = ⟨(Q·V)[i,·], V[i,·]⟩ for every row i
// (spec §4.2, §3). g is scratch space sized n×k; it is overwritten with
// Q·V (without the factor 2 that Gradient applies).
func DualVariables(q *sparse.CSRMatrix, v, g *mat.Dense) []float64 {
	q.MulDenseInto(g, v)
	n, _ := v.Dims()
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		y[i] = floats.Dot(g.RawRowView(i), v.RawRowView(i))
	}
	return y
}

// DualBound computes the Lagrangian dual lower bound
//
//	β = Σ y_i + n·λ_min(Q − diag(y))
//
// by forming the dense symmetric S = Q − diag(y) and running a
// symmetric eigensolver for its smallest eigenvalue. This is
// intentionally O(n³) and meant to run once, on demand (spec §4.2).
//
// DualBound returns an error if the eigendecomposition fails to
// converge; per spec §7, this is fatal only for the dual-bound path —
// the caller's primal result remains valid regardless.
func DualBound(q *sparse.CSRMatrix, v *mat.Dense) (float64, error) {
	n, k := v.Dims()
	gbuf := mat.NewDense(n, k, nil)
	y := DualVariables(q, v, gbuf)

	s := mat.NewSymDense(n, nil)
	q.All(func(i, j int, val float64) {
		if i <= j {
			s.SetSym(i, j, val)
		}
	})
	for i := 0; i < n; i++ {
		s.SetSym(i, i, s.At(i, i)-y[i])
	}

	var eig mat.EigenSym
	ok := eig.Factorize(s, false)
	if !ok {
		return 0, fmt.Errorf("oracle: dual bound eigendecomposition did not converge")
	}
	// Factorize returns eigenvalues in ascending order, so the first
	// entry is λ_min directly.
	minEig := eig.Values(nil)[0]

	return floats.Sum(y) + float64(n)*minEig, nil
}
