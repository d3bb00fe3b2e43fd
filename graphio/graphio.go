// Package graphio implements the two thin I/O collaborators the core
// solver treats as external (spec §1, §6): the line-oriented graph file
// reader that produces Q, and the solution file writer. Grounded on
// read_graph.rs's read_graph_matrix/write_solution_matrix.
package graphio

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dkenefake/mixingcut/sparse"
)

// DefaultIndexCorrection is subtracted from every parsed endpoint,
// matching the 1-indexed convention of the sample graph files (spec §6).
const DefaultIndexCorrection = 1

type edge struct {
	i, j int
	w    float64
}

// ReadGraph parses a line-oriented graph file and builds the MAX-CUT
// operator Q (spec §3, §6, §9 "Sign convention on objective").
//
// Line 1 is the vertex count n. Each subsequent line is either "i j w"
// (an edge of weight w), "i j" (weight defaults to 1.0), or anything
// else, which is silently ignored (spec §7, "malformed graph line").
// Endpoints have indexCorrection subtracted before use.
//
// Q is assembled as the standard Goemans-Williamson SDP relaxation
// matrix Q = -(D-A)/4, where A is the weighted adjacency implied by the
// edge lines and D is the corresponding weighted degree: off-diagonal
// entries are set to w_ij/4 (both symmetric halves) and each vertex's
// diagonal accumulates -degree_i/4. A line with i == j is treated as an
// explicit self-loop and its weight is added to that vertex's diagonal
// on top of the degree term, mirroring the generic "contribute (i,i,w)"
// rule of §6. This is the specific resolution of §9's open sign-convention
// question adopted here; see DESIGN.md.
func ReadGraph(path string, indexCorrection int) (*sparse.CSRMatrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("graphio: opening %s: %w", path, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	if !sc.Scan() {
		return nil, fmt.Errorf("graphio: %s: missing vertex count line", path)
	}
	n, err := strconv.Atoi(strings.TrimSpace(sc.Text()))
	if err != nil {
		return nil, fmt.Errorf("graphio: %s: invalid vertex count: %w", path, err)
	}
	if n <= 0 {
		return nil, fmt.Errorf("graphio: %s: vertex count must be positive, got %d", path, n)
	}

	selfLoop := make([]float64, n)
	degree := make([]float64, n)
	var edges []edge

	for sc.Scan() {
		fields := strings.Fields(sc.Text())

		var i, j int
		var w float64
		var ok bool
		switch len(fields) {
		case 3:
			i, j, w, ok = parseTriplet(fields, indexCorrection)
		case 2:
			i, j, ok = parsePair(fields, indexCorrection)
			w = 1.0
		default:
			ok = false
		}
		if !ok || i < 0 || i >= n || j < 0 || j >= n {
			continue // malformed or out-of-range line: silently ignored (§7)
		}

		if i == j {
			selfLoop[i] += w
			continue
		}
		degree[i] += w
		degree[j] += w
		edges = append(edges, edge{i: i, j: j, w: w})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("graphio: reading %s: %w", path, err)
	}

	tm := sparse.NewTripletMatrix(n)
	for _, e := range edges {
		tm.Add(e.i, e.j, e.w/4)
		tm.Add(e.j, e.i, e.w/4)
	}
	for i := 0; i < n; i++ {
		if d := selfLoop[i] - degree[i]/4; d != 0 {
			tm.Add(i, i, d)
		}
	}

	return tm.ToCSR(), nil
}

func parseTriplet(fields []string, indexCorrection int) (i, j int, w float64, ok bool) {
	i, err1 := strconv.Atoi(fields[0])
	j, err2 := strconv.Atoi(fields[1])
	w, err3 := strconv.ParseFloat(fields[2], 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, 0, 0, false
	}
	return i - indexCorrection, j - indexCorrection, w, true
}

func parsePair(fields []string, indexCorrection int) (i, j int, ok bool) {
	i, err1 := strconv.Atoi(fields[0])
	j, err2 := strconv.Atoi(fields[1])
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return i - indexCorrection, j - indexCorrection, true
}

// WriteSolution writes the solution file format of spec §6: the final
// objective on line 1, then each entry of x on its own line. Grounded on
// read_graph.rs's write_solution_matrix.
func WriteSolution(path string, x []float64, objective float64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("graphio: creating %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if _, err := fmt.Fprintln(w, objective); err != nil {
		return fmt.Errorf("graphio: writing %s: %w", path, err)
	}
	for _, xi := range x {
		if _, err := fmt.Fprintln(w, xi); err != nil {
			return fmt.Errorf("graphio: writing %s: %w", path, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("graphio: flushing %s: %w", path, err)
	}
	return nil
}
