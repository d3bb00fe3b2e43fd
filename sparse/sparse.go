// Package sparse implements the symmetric sparse matrix Q used throughout
// mixingcut: a triplet builder fed by the graph loader, compressed once
// into row-indexed storage for the hot optimization loop.
//
// The shape mirrors gonum's own two-stage assembly pattern — build into a
// mutable type, then compress into the form the numerical code actually
// consumes — the way mat.EigenSym.Factorize copies its input into a
// SymDense before handing it to LAPACK's Syev.
package sparse

import "gonum.org/v1/gonum/mat"

// Triplet is one (row, col, value) entry as accumulated by a graph loader.
type Triplet struct {
	Row, Col int
	Value    float64
}

// TripletMatrix accumulates triplet entries for an n×n matrix before
// compression. Entries are not deduplicated or summed at insertion time;
// duplicate (row, col) pairs are summed during ToCSR, matching the
// behavior of add-triplet sparse builders such as sprs::TriMat.
type TripletMatrix struct {
	n        int
	triplets []Triplet
}

// NewTripletMatrix returns an empty builder for an n×n matrix.
func NewTripletMatrix(n int) *TripletMatrix {
	if n <= 0 {
		panic("sparse: non-positive dimension")
	}
	return &TripletMatrix{n: n}
}

// Dims returns the matrix dimension n.
func (t *TripletMatrix) Dims() int { return t.n }

// Add records a triplet contribution at (row, col). Out-of-range indices
// panic; callers (graphio.ReadGraph) are expected to have already bounds
// checked against the declared vertex count.
func (t *TripletMatrix) Add(row, col int, value float64) {
	if row < 0 || row >= t.n || col < 0 || col >= t.n {
		panic("sparse: triplet index out of range")
	}
	t.triplets = append(t.triplets, Triplet{Row: row, Col: col, Value: value})
}

// ToCSR compresses the accumulated triplets into row-major compressed
// storage, summing duplicate (row, col) entries.
func (t *TripletMatrix) ToCSR() *CSRMatrix {
	n := t.n

	counts := make([]int, n)
	for _, trip := range t.triplets {
		counts[trip.Row]++
	}

	rowStart := make([]int, n+1)
	for i := 0; i < n; i++ {
		rowStart[i+1] = rowStart[i] + counts[i]
	}

	cols := make([]int, len(t.triplets))
	vals := make([]float64, len(t.triplets))
	cursor := append([]int(nil), rowStart[:n]...)
	for _, trip := range t.triplets {
		idx := cursor[trip.Row]
		cols[idx] = trip.Col
		vals[idx] = trip.Value
		cursor[trip.Row]++
	}

	m := &CSRMatrix{n: n, rowStart: rowStart, cols: cols, vals: vals}
	m.coalesce()
	return m
}

// CSRMatrix is an immutable, row-indexed sparse n×n matrix. It is the Q
// operator: symmetric by construction of the loader, read-only for the
// remainder of the program's lifetime (§3 DATA MODEL).
type CSRMatrix struct {
	n        int
	rowStart []int     // length n+1
	cols     []int     // length nnz, sorted within each row after coalesce
	vals     []float64 // length nnz
}

// Dims returns the matrix dimension n.
func (m *CSRMatrix) Dims() int { return m.n }

// NNZ returns the number of stored entries, both triangles counted.
func (m *CSRMatrix) NNZ() int { return len(m.vals) }

// coalesce sorts each row's entries by column and merges duplicates by
// summation, so later traversals never see a (row, col) pair twice.
func (m *CSRMatrix) coalesce() {
	newCols := make([]int, 0, len(m.cols))
	newVals := make([]float64, 0, len(m.vals))
	newStart := make([]int, m.n+1)

	for i := 0; i < m.n; i++ {
		lo, hi := m.rowStart[i], m.rowStart[i+1]
		row := newRowEntries(m.cols[lo:hi], m.vals[lo:hi])
		row.sortByColumn()

		for j := 0; j < len(row.cols); {
			col := row.cols[j]
			sum := row.vals[j]
			j++
			for j < len(row.cols) && row.cols[j] == col {
				sum += row.vals[j]
				j++
			}
			newCols = append(newCols, col)
			newVals = append(newVals, sum)
		}
		newStart[i+1] = len(newCols)
	}

	m.rowStart = newStart
	m.cols = newCols
	m.vals = newVals
}

// RowNonzeros returns the column indices and values stored in row i, in
// ascending column order. The returned slices are views into the
// matrix's internal storage and must not be mutated.
func (m *CSRMatrix) RowNonzeros(i int) (cols []int, vals []float64) {
	lo, hi := m.rowStart[i], m.rowStart[i+1]
	return m.cols[lo:hi], m.vals[lo:hi]
}

// All invokes yield once per stored entry (i, j, v), in row-major order.
// Both triangles are visited for off-diagonal entries, matching the
// loader's convention of storing both symmetric halves (spec §6, §4.2).
func (m *CSRMatrix) All(yield func(i, j int, v float64)) {
	for i := 0; i < m.n; i++ {
		cols, vals := m.RowNonzeros(i)
		for k, j := range cols {
			yield(i, j, vals[k])
		}
	}
}

// Dense materializes the full n×n dense form. oracle.DualBound does not
// use it; it fills its mat.SymDense directly from All.
func (m *CSRMatrix) Dense() *mat.Dense {
	d := mat.NewDense(m.n, m.n, nil)
	m.All(func(i, j int, v float64) {
		d.Set(i, j, d.At(i, j)+v)
	})
	return d
}

// MulDenseInto computes dst = Q·V, row by row, without materializing Q
// densely. dst and v must both be n×k with the same k, and dst must not
// alias v. It panics if the dimensions disagree.
func (m *CSRMatrix) MulDenseInto(dst, v *mat.Dense) {
	n, k := v.Dims()
	if n != m.n {
		panic("sparse: dimension mismatch between Q and V")
	}
	dr, dc := dst.Dims()
	if dr != n || dc != k {
		panic("sparse: dimension mismatch between Q and destination")
	}
	for i := 0; i < n; i++ {
		out := dst.RawRowView(i)
		for c := range out {
			out[c] = 0
		}
		cols, vals := m.RowNonzeros(i)
		for idx, j := range cols {
			qij := vals[idx]
			row := v.RawRowView(j)
			for c, x := range row {
				out[c] += qij * x
			}
		}
	}
}

type rowEntries struct {
	cols []int
	vals []float64
}

func newRowEntries(cols []int, vals []float64) rowEntries {
	// copy so in-place sorting never aliases the builder's backing arrays
	c := append([]int(nil), cols...)
	v := append([]float64(nil), vals...)
	return rowEntries{cols: c, vals: v}
}

// sortByColumn performs an insertion sort; rows are short relative to n
// for the sparse graphs this solver targets, and insertion sort avoids
// pulling in sort.Interface boilerplate for a handful of entries.
func (r rowEntries) sortByColumn() {
	for i := 1; i < len(r.cols); i++ {
		col, val := r.cols[i], r.vals[i]
		j := i - 1
		for j >= 0 && r.cols[j] > col {
			r.cols[j+1] = r.cols[j]
			r.vals[j+1] = r.vals[j]
			j--
		}
		r.cols[j+1] = col
		r.vals[j+1] = val
	}
}
