// Package solver implements the Driver (spec §4.6, C6): the orchestration
// loop that ties Projection, Oracle, Step, Initializer and Rounder
// together into a single Run call. Grounded on main.rs's solve loop and
// modeled structurally on gonum.org/v1/gonum/optimize's Settings/Method
// "fill in defaults, then iterate" convention.
package solver

import (
	"fmt"
	"math"
	"time"

	"github.com/dkenefake/mixingcut/initial"
	"github.com/dkenefake/mixingcut/oracle"
	"github.com/dkenefake/mixingcut/round"
	"github.com/dkenefake/mixingcut/sparse"
	"github.com/dkenefake/mixingcut/step"
)

// Logger is called once with the initial objective (iteration index 0)
// and then once per iteration with the running objective, the
// iteration index, and the wall-clock time elapsed (in seconds) since Run
// started, mirroring main.rs's "i obj elapsed_micros" progress line. The
// core never constructs one itself; a nil Logger does nothing. Tracking
// elapsed here rather than in the caller follows gonum/optimize's own
// convention of timing the loop directly (optimize/global.go's
// startTime/time.Since feeding Stats.Runtime) — reading the clock for
// progress reporting is not the kind of I/O spec §5 rules out of the core
// loop.
type Logger func(iter int, obj, elapsed float64)

// Config collects every knob of the Driver (spec §6's CLI surface table,
// modeled on a configuration record rather than CLI flags directly).
// Zero values are meaningful: withDefaults fills them in the same way
// optimize.GradientDescent.Init substitutes a default Linesearcher/StepSizer
// when the caller leaves them nil.
type Config struct {
	// Rank selects k via ChooseRank. 0 and 1 are policy codes (spec §4.6
	// step 2); any value >= 2 is used verbatim.
	Rank int

	// Tolerance is the stopping threshold on |Δobj| (default 1e-2).
	Tolerance float64

	// MaxIters caps the convergence loop (default 1000).
	MaxIters int

	// StepKind selects which of the four step rules to build (default
	// step.KindCoordNoStep, per spec §6).
	StepKind step.Kind

	// DualBound requests the optional Lagrangian dual lower bound.
	DualBound bool

	// RoundTrials is the number of randomized-hyperplane trials run by
	// the Rounder (0 uses round.DefaultTrials).
	RoundTrials int

	// Seed feeds both the Initializer and the Rounder's PRNGs (0 uses
	// each package's own default seed).
	Seed uint64

	// Logger, if non-nil, is invoked once before the loop and then once
	// per loop iteration.
	Logger Logger
}

const (
	defaultTolerance = 1e-2
	defaultMaxIters  = 1000
)

func (c Config) withDefaults() Config {
	if c.Tolerance <= 0 {
		c.Tolerance = defaultTolerance
	}
	if c.MaxIters <= 0 {
		c.MaxIters = defaultMaxIters
	}
	return c
}

// ChooseRank implements spec §4.6 step 2's rank policy: rank 0 picks
// ⌊2·log2 n⌋, rank 1 picks ⌊√(2n)⌋, and any rank >= 2 is used verbatim.
func ChooseRank(n, rank int) int {
	switch rank {
	case 0:
		return int(2 * math.Log2(float64(n)))
	case 1:
		return int(math.Sqrt(2 * float64(n)))
	default:
		return rank
	}
}

// Result is the Driver's final output: the rounded ±1 assignment, its
// rounded objective, the converged primal objective, the iteration count
// actually run, and — when requested — the dual lower bound.
type Result struct {
	X          []float64
	RoundedObj float64
	PrimalObj  float64
	Iterations int

	DualBoundValue float64
	HasDualBound   bool
}

// Run executes the full Driver pipeline of spec §4.6 against q, returning
// the rounded solution. It never performs I/O; callers own reading q
// (graphio.ReadGraph) and writing the result (graphio.WriteSolution).
func Run(q *sparse.CSRMatrix, cfg Config) (Result, error) {
	cfg = cfg.withDefaults()

	n := q.Dims()
	k := ChooseRank(n, cfg.Rank)
	if k < 1 {
		k = 1
	}

	rowNorm := oracle.QNorm(q)
	alpha := 1.0
	if rowNorm > 0 {
		alpha = 1.0 / rowNorm
	}

	v := initial.Random(n, k, cfg.Seed)
	rule := step.NewRule(cfg.StepKind, alpha)

	start := time.Now()
	fPrev := oracle.Objective(q, v)
	if cfg.Logger != nil {
		cfg.Logger(0, fPrev, time.Since(start).Seconds())
	}

	iter := 0
	for ; iter < cfg.MaxIters; iter++ {
		v = rule.Apply(q, v)
		fNew := oracle.Objective(q, v)

		if cfg.Logger != nil {
			cfg.Logger(iter+1, fNew, time.Since(start).Seconds())
		}

		if math.Abs(fNew-fPrev) < cfg.Tolerance {
			fPrev = fNew
			iter++
			break
		}
		if fNew > fPrev {
			// Monotonicity guard (spec §4.6 step 6d): treat as
			// termination, not an error. The step before this one
			// remains the reported primal objective.
			iter++
			break
		}
		fPrev = fNew
	}

	rr := round.Round(q, v, cfg.RoundTrials, cfg.Seed)

	result := Result{
		X:          rr.X,
		RoundedObj: rr.Obj,
		PrimalObj:  fPrev,
		Iterations: iter,
	}

	if cfg.DualBound {
		bound, err := oracle.DualBound(q, v)
		if err != nil {
			return result, fmt.Errorf("solver: dual bound: %w", err)
		}
		result.DualBoundValue = bound
		result.HasDualBound = true
	}

	return result, nil
}
