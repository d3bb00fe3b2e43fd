package sparse

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestToCSRCoalescesDuplicates(t *testing.T) {
	tm := NewTripletMatrix(2)
	tm.Add(0, 1, 0.5)
	tm.Add(0, 1, 0.25)
	tm.Add(1, 0, 0.75)

	m := tm.ToCSR()
	if got, want := m.NNZ(), 2; got != want {
		t.Fatalf("NNZ() = %d, want %d", got, want)
	}
	cols, vals := m.RowNonzeros(0)
	if len(cols) != 1 || cols[0] != 1 || !approxEqual(vals[0], 0.75, 1e-12) {
		t.Fatalf("row 0 = %v %v, want [1] [0.75]", cols, vals)
	}
}

func TestAllVisitsBothTriangles(t *testing.T) {
	tm := NewTripletMatrix(3)
	tm.Add(0, 1, 0.5)
	tm.Add(1, 0, 0.5)
	tm.Add(2, 2, 3)
	m := tm.ToCSR()

	var count int
	var sum float64
	m.All(func(i, j int, v float64) {
		count++
		sum += v
	})
	if count != 3 {
		t.Fatalf("visited %d entries, want 3", count)
	}
	if !approxEqual(sum, 0.5+0.5+3, 1e-12) {
		t.Fatalf("sum = %v", sum)
	}
}

func TestDenseMatchesTriplets(t *testing.T) {
	tm := NewTripletMatrix(2)
	tm.Add(0, 0, 1)
	tm.Add(0, 1, 2)
	tm.Add(1, 0, 2)
	tm.Add(1, 1, 3)
	m := tm.ToCSR()

	d := m.Dense()
	want := mat.NewDense(2, 2, []float64{1, 2, 2, 3})
	if !mat.EqualApprox(d, want, 1e-12) {
		t.Fatalf("Dense() = %v, want %v", mat.Formatted(d), mat.Formatted(want))
	}
}

func TestMulDenseIntoMatchesReference(t *testing.T) {
	tm := NewTripletMatrix(3)
	tm.Add(0, 0, 1)
	tm.Add(0, 1, 2)
	tm.Add(1, 0, 2)
	tm.Add(1, 1, 1)
	tm.Add(2, 2, 4)
	m := tm.ToCSR()

	v := mat.NewDense(3, 2, []float64{
		1, 0,
		0, 1,
		2, 2,
	})
	dst := mat.NewDense(3, 2, nil)
	m.MulDenseInto(dst, v)

	var want mat.Dense
	want.Mul(m.Dense(), v)

	if !mat.EqualApprox(dst, &want, 1e-9) {
		t.Fatalf("MulDenseInto = %v, want %v", mat.Formatted(dst), mat.Formatted(&want))
	}
}

func TestSortByColumnOrdersRow(t *testing.T) {
	tm := NewTripletMatrix(4)
	tm.Add(0, 3, 1)
	tm.Add(0, 1, 1)
	tm.Add(0, 2, 1)
	m := tm.ToCSR()
	cols, _ := m.RowNonzeros(0)
	for i := 1; i < len(cols); i++ {
		if cols[i-1] >= cols[i] {
			t.Fatalf("row not sorted: %v", cols)
		}
	}
}
