// Package step implements the four update rules of spec §4.3 (C3): the
// projected-gradient step, its quadratic-interpolated line search
// variant, and coordinate descent with and without an explicit step.
// Each is grounded on the corresponding function in the original
// solver's step_rules.rs.
package step

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/dkenefake/mixingcut/manifold"
	"github.com/dkenefake/mixingcut/oracle"
	"github.com/dkenefake/mixingcut/sparse"
)

// Kind tags which of the four update rules a Rule value implements. The
// Driver dispatches on Kind rather than a string, per spec §9 ("Dynamic
// step-rule dispatch").
type Kind int

// KindCoordNoStep is the zero value, so a zero solver.Config selects the
// default step rule.
const (
	KindCoordNoStep Kind = iota
	KindGrad
	KindGradAdv
	KindCoord
)

// String renders the step-rule name used by the CLI's -step_rule flag.
func (k Kind) String() string {
	switch k {
	case KindGrad:
		return "grad"
	case KindGradAdv:
		return "grad_adv"
	case KindCoord:
		return "coord"
	case KindCoordNoStep:
		return "coord_no_step"
	default:
		return "unknown"
	}
}

// ParseKind resolves a CLI step-rule name to a Kind. Unknown names fall
// back to KindGrad, per spec §6's CLI surface table.
func ParseKind(name string) Kind {
	switch name {
	case "grad":
		return KindGrad
	case "grad_adv":
		return KindGradAdv
	case "coord":
		return KindCoord
	case "coord_no_step":
		return KindCoordNoStep
	default:
		return KindGrad
	}
}

// Rule is an immutable, precomputed step-rule value: a Kind plus the
// "safe" step size α = 1/‖Q‖_row (spec §3, "Step rule (variant)").
type Rule struct {
	Kind  Kind
	Alpha float64

	// scratch holds reusable buffers sized lazily on first Apply, so
	// repeated calls across iterations do not allocate.
	scratch *workspace
}

// NewRule builds a Rule for kind with the given safe step size. alpha
// must be strictly positive.
func NewRule(kind Kind, alpha float64) *Rule {
	if alpha <= 0 {
		panic("step: alpha must be positive")
	}
	return &Rule{Kind: kind, Alpha: alpha}
}

type workspace struct {
	grad, trial, trialPos, trialNeg *mat.Dense
	rowBuf                          []float64
}

func (r *Rule) workspaceFor(n, k int) *workspace {
	if r.scratch != nil {
		return r.scratch
	}
	r.scratch = &workspace{
		grad:      mat.NewDense(n, k, nil),
		trial:     mat.NewDense(n, k, nil),
		trialPos:  mat.NewDense(n, k, nil),
		trialNeg:  mat.NewDense(n, k, nil),
		rowBuf:    make([]float64, k),
	}
	return r.scratch
}

// Apply runs the receiver's step rule once, mutating v in place (and
// also returning it, so callers can write `v = rule.Apply(q, v)` in the
// Driver's loop the way the original Rust make_step* functions threaded
// ownership of V through each call).
func (r *Rule) Apply(q *sparse.CSRMatrix, v *mat.Dense) *mat.Dense {
	switch r.Kind {
	case KindGrad:
		return r.applyGrad(q, v)
	case KindGradAdv:
		return r.applyGradAdv(q, v)
	case KindCoord:
		return r.applyCoord(q, v)
	case KindCoordNoStep:
		return r.applyCoordNoStep(q, v)
	default:
		panic("step: unknown kind")
	}
}

// applyGrad implements V ← Project(V − α·2QV) (step_rules.rs::make_step).
func (r *Rule) applyGrad(q *sparse.CSRMatrix, v *mat.Dense) *mat.Dense {
	n, k := v.Dims()
	ws := r.workspaceFor(n, k)
	oracle.Gradient(q, v, ws.grad)

	v.Sub(v, scaled(ws.trial, ws.grad, r.Alpha))
	manifold.Project(v)
	return v
}

// applyGradAdv implements the quadratic-interpolated line search of
// step_rules.rs::make_step_adv, including the signed-α* / non-descent
// fallback behavior specified in §4.3 and §9.
func (r *Rule) applyGradAdv(q *sparse.CSRMatrix, v *mat.Dense) *mat.Dense {
	n, k := v.Dims()
	ws := r.workspaceFor(n, k)
	oracle.Gradient(q, v, ws.grad)

	f0 := oracle.Objective(q, v)

	ws.trialPos.Add(v, scaled(ws.trial, ws.grad, r.Alpha))
	fPlus := oracle.Objective(q, ws.trialPos)

	// trial is reused as scratch for the -α branch too; trialPos has
	// already captured the +α evaluation above.
	negGrad := scaled(ws.trial, ws.grad, -r.Alpha)
	ws.trialNeg.Add(v, negGrad)
	fMinus := oracle.Objective(q, ws.trialNeg)

	x := fPlus - f0
	y := fMinus - f0

	alpha := r.Alpha
	denom := x + y
	if denom != 0 {
		alpha = 0.5 * (y - x) * r.Alpha / denom
	}

	candidate := mat.DenseCopyOf(v)
	candidate.Sub(candidate, scaled(ws.trial, ws.grad, alpha))
	if oracle.Objective(q, candidate) > f0 {
		alpha = r.Alpha
		candidate.Copy(v)
		candidate.Sub(candidate, scaled(ws.trial, ws.grad, alpha))
	}

	v.Copy(candidate)
	manifold.Project(v)
	return v
}

// applyCoord implements coordinate descent with a step (Gauss-Seidel
// sweep): step_rules.rs::make_step_coord.
func (r *Rule) applyCoord(q *sparse.CSRMatrix, v *mat.Dense) *mat.Dense {
	n, k := v.Dims()
	ws := r.workspaceFor(n, k)
	g := ws.rowBuf

	for i := 0; i < n; i++ {
		for c := range g {
			g[c] = 0
		}
		cols, vals := q.RowNonzeros(i)
		for idx, j := range cols {
			floats.AddScaled(g, vals[idx], v.RawRowView(j))
		}

		row := v.RawRowView(i)
		floats.AddScaled(row, -r.Alpha, g)
		manifold.ProjectRow(row)
	}
	return v
}

// applyCoordNoStep implements the fully corrective closed-form sweep:
// step_rules.rs::make_step_coord_no_step. A row whose accumulated h_i is
// exactly zero is left unchanged, per spec §4.3 and §7.
func (r *Rule) applyCoordNoStep(q *sparse.CSRMatrix, v *mat.Dense) *mat.Dense {
	n, k := v.Dims()
	ws := r.workspaceFor(n, k)
	h := ws.rowBuf

	for i := 0; i < n; i++ {
		for c := range h {
			h[c] = 0
		}
		cols, vals := q.RowNonzeros(i)
		for idx, j := range cols {
			floats.AddScaled(h, -vals[idx], v.RawRowView(j))
		}

		norm := floats.Norm(h, 2)
		if norm == 0 {
			continue
		}
		row := v.RawRowView(i)
		copy(row, h)
		floats.Scale(1/norm, row)
	}
	return v
}

// scaled writes dst = alpha*src and returns dst, used to build the "alpha*gradient" term fed to Sub/Add
// without a second temporary per call site.
func scaled(dst, src *mat.Dense, alpha float64) *mat.Dense {
	dst.Scale(alpha, src)
	return dst
}
