// Package manifold implements the retraction onto the oblique manifold:
// renormalizing every row of a dense matrix to unit ℓ₂ norm (spec §4.1,
// C1). It is grounded on the original solver's sdp_project::project,
// which calls ndarray_linalg::norm::normalize(V, NormalizeAxis::Row).
package manifold

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Project renormalizes every row of v to unit ℓ₂ norm in place. A row
// whose norm is exactly zero is left unchanged — dividing by zero is
// suppressed rather than propagating a NaN (spec §4.1, §7, §9).
func Project(v *mat.Dense) {
	n, _ := v.Dims()
	for i := 0; i < n; i++ {
		ProjectRow(v.RawRowView(i))
	}
}

// ProjectRow renormalizes a single row in place. It is the unit of work
// Project applies to every row, and is exported so step rules that touch
// one row at a time (Coord, CoordNoStep) can call it without allocating
// a throwaway *mat.Dense.
func ProjectRow(row []float64) {
	norm := floats.Norm(row, 2)
	if norm == 0 {
		return
	}
	floats.Scale(1/norm, row)
}
