// Command mixingcut reads a weighted graph, runs the low-rank MAX-CUT
// solver (spec §4.6, C6), and writes the rounded ±1 assignment to a
// solution file. Flag parsing and progress printing are the thin,
// external collaborators named in spec §1/§6; the optimizer core itself
// never touches flag, log, or the filesystem. Grounded on
// dsp/window/cmd/leakage's flag+log.Fatal CLI shape.
package main

import (
	"flag"
	"log"

	"github.com/dkenefake/mixingcut/graphio"
	"github.com/dkenefake/mixingcut/solver"
	"github.com/dkenefake/mixingcut/step"
)

func main() {
	inputPath := flag.String("input_path", "", "path to the input graph file (required)")
	outputPath := flag.String("output_path", "output.txt", "path to write the solution file")
	rank := flag.Int("rank", 0, "rank k of V; 0 selects floor(2*log2(n)), 1 selects floor(sqrt(2n)), >=2 used verbatim")
	tolerance := flag.Float64("tolerance", 1e-2, "stopping tolerance on |delta objective|")
	maxIters := flag.Int("max_iters", 1000, "maximum number of optimizer iterations")
	stepRuleName := flag.String("step_rule", "coord_no_step", "one of grad, grad_adv, coord, coord_no_step")
	indexCorrection := flag.Int("index_correction", graphio.DefaultIndexCorrection, "integer subtracted from each graph file endpoint")
	dualBound := flag.Bool("dual_bound", false, "compute and print the Lagrangian dual lower bound")
	verbose := flag.Bool("verbose", false, "print progress every iteration")
	seed := flag.Uint64("seed", 0, "PRNG seed for the initializer and rounder (0 uses each package's default)")
	roundTrials := flag.Int("round_trials", 0, "number of randomized-hyperplane rounding trials (0 uses the package default)")
	flag.Parse()

	if *inputPath == "" {
		log.Fatal("mixingcut: -input_path is required")
	}

	q, err := graphio.ReadGraph(*inputPath, *indexCorrection)
	if err != nil {
		log.Fatalf("mixingcut: %v", err)
	}

	var logger solver.Logger
	if *verbose {
		logger = func(iter int, obj, elapsed float64) {
			log.Printf("%d %v %v", iter, obj, elapsed)
		}
	}

	result, err := solver.Run(q, solver.Config{
		Rank:        *rank,
		Tolerance:   *tolerance,
		MaxIters:    *maxIters,
		StepKind:    step.ParseKind(*stepRuleName),
		DualBound:   *dualBound,
		RoundTrials: *roundTrials,
		Seed:        *seed,
		Logger:      logger,
	})
	if err != nil {
		log.Fatalf("mixingcut: %v", err)
	}

	if *dualBound && result.HasDualBound {
		log.Printf("dual bound: %v", result.DualBoundValue)
	}

	if err := graphio.WriteSolution(*outputPath, result.X, result.RoundedObj); err != nil {
		log.Fatalf("mixingcut: %v", err)
	}
}
