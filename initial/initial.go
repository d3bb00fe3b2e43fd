// Package initial draws the starting point V₀ for the optimizer: an
// n×k matrix of i.i.d. standard normal entries, retracted onto the
// oblique manifold (spec §4.4, C4). Grounded on initialize.rs's
// make_random_matrix.
package initial

import (
	"gonum.org/v1/gonum/mat"

	"github.com/dkenefake/mixingcut/internal/gwrand"
	"github.com/dkenefake/mixingcut/manifold"
)

// Random returns a fresh n×k matrix with N(0,1) entries projected onto
// the oblique manifold, using a PRNG seeded from seed (spec §4.4: "the
// generator is seeded deterministically from a default seed").
func Random(n, k int, seed uint64) *mat.Dense {
	src := gwrand.New(seed)
	v := mat.NewDense(n, k, nil)
	for i := 0; i < n; i++ {
		row := v.RawRowView(i)
		for j := range row {
			row[j] = src.NormFloat64()
		}
	}
	manifold.Project(v)
	return v
}
