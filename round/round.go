// Package round implements Goemans-Williamson randomized hyperplane
// rounding: drawing a random direction on the unit sphere and projecting
// V onto it to produce a ±1 assignment, retaining the best objective
// seen across repeated trials (spec §4.5, C5). Grounded on
// maxcut_oracle.rs::compute_rounded_sol.
package round

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/dkenefake/mixingcut/internal/gwrand"
	"github.com/dkenefake/mixingcut/oracle"
	"github.com/dkenefake/mixingcut/sparse"
)

// DefaultTrials is the default round count T from spec §4.5.
const DefaultTrials = 1000

// Result holds the best rounded assignment found and its objective.
type Result struct {
	X   []float64
	Obj float64
}

// Round performs trials rounds of randomized hyperplane rounding against
// q and v, returning the assignment with the minimum observed rounded
// objective (the solver minimizes tr(QVVᵀ), so the best cut corresponds
// to the smallest rounded objective, per spec §4.5 step 4).
//
// If trials <= 0, DefaultTrials is used. seed seeds the PRNG that draws
// the random hyperplane directions. r and x scratch buffers are
// allocated once and reused across trials, per spec §4.5.
func Round(q *sparse.CSRMatrix, v *mat.Dense, trials int, seed uint64) Result {
	if trials <= 0 {
		trials = DefaultTrials
	}
	src := gwrand.New(seed)

	n, k := v.Dims()
	r := make([]float64, k)
	x := make([]float64, n)
	best := make([]float64, n)
	bestObj := math.Inf(1)

	for t := 0; t < trials; t++ {
		for j := range r {
			r[j] = src.NormFloat64()
		}
		if norm := floats.Norm(r, 2); norm != 0 {
			floats.Scale(1/norm, r)
		}

		for i := 0; i < n; i++ {
			x[i] = sign(floats.Dot(v.RawRowView(i), r))
		}

		obj := oracle.RoundedObjective(q, x)
		if obj < bestObj {
			bestObj = obj
			copy(best, x)
		}
	}

	return Result{X: best, Obj: bestObj}
}

// sign implements spec §4.5 step 2's convention sign(0) = -1.
func sign(x float64) float64 {
	if x > 0 {
		return 1
	}
	return -1
}
