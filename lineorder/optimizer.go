package lineorder

import (
	"time"

	"github.com/linegrid/octilayout/comb"
	"github.com/linegrid/octilayout/graph"
	"github.com/linegrid/octilayout/ilpsolve"
)

// Mode selects which strategy is allowed to run; Auto dispatches by
// component size exactly as the source does.
type Mode int

const (
	Auto Mode = iota
	Null
	Exhaustive
	ILP
)

// Result holds the computed Configuration and the number of components
// whose ILP request fell back to the input ordering.
type Result struct {
	Config       Configuration
	ILPFallbacks int
}

// Optimize computes a Configuration minimizing the total crossing and
// splitting score over cg, dispatching each connected component of cg
// independently.
func Optimize(cg *comb.Graph, mode Mode, w Weights, ilpPref ilpsolve.Preference, ilpTimeLimit time.Duration) Result {
	cfg := identityConfiguration(cg)
	res := Result{Config: cfg}

	for _, comp := range connectedComponents(cg) {
		maxCard := 0
		solutionSpace := 1
		for _, e := range comp {
			n := len(LinesOf(cg, e))
			if n > maxCard {
				maxCard = n
			}
			solutionSpace *= factorial(n)
		}

		switch {
		case mode == Null || maxCard <= 1:
			// leave cfg unchanged for this component
		case mode == Exhaustive || (mode == Auto && solutionSpace < 10):
			exhaustiveOptimize(cg, comp, cfg, w)
		default:
			fellBack := ilpOptimize(cg, comp, cfg, w, ilpPref, ilpTimeLimit)
			if fellBack {
				res.ILPFallbacks++
			}
		}
	}

	return res
}

func identityConfiguration(cg *comb.Graph) Configuration {
	cfg := make(Configuration)
	for _, e := range cg.G.Edges() {
		cfg[e] = IdentityOrdering(len(LinesOf(cg, e)))
	}
	return cfg
}

// connectedComponents returns the edge sets of each connected
// component of cg, treating it as undirected (each transit edge
// appears as both directed halves, already symmetric).
func connectedComponents(cg *comb.Graph) [][]graph.EdgeID {
	visited := make(map[graph.NodeID]bool)
	var comps [][]graph.EdgeID

	for _, n := range cg.G.Nodes() {
		if visited[n] {
			continue
		}
		var edges []graph.EdgeID
		seenEdges := make(map[graph.EdgeID]bool)
		stack := []graph.NodeID{n}
		visited[n] = true
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, e := range cg.G.Out(cur) {
				if !seenEdges[e] {
					seenEdges[e] = true
					edges = append(edges, e)
				}
				_, _, to, ok := cg.G.Edge(e)
				if ok && !visited[to] {
					visited[to] = true
					stack = append(stack, to)
				}
			}
		}
		if len(edges) > 0 {
			comps = append(comps, edges)
		}
	}
	return comps
}

func factorial(n int) int {
	f := 1
	for i := 2; i <= n; i++ {
		f *= i
	}
	return f
}

// exhaustiveOptimize brute-forces every permutation combination across
// the edges of comp and keeps the assignment with the lowest total
// score over the component's nodes.
func exhaustiveOptimize(cg *comb.Graph, comp []graph.EdgeID, cfg Configuration, w Weights) {
	nodes := nodesOf(cg, comp)

	best := make(Configuration, len(comp))
	for _, e := range comp {
		best[e] = append(Ordering{}, cfg[e]...)
	}
	bestScore := totalScore(cg, nodes, cfg, w)

	var assign func(i int)
	working := make(Configuration, len(comp))
	for e, o := range cfg {
		working[e] = append(Ordering{}, o...)
	}

	assign = func(i int) {
		if i == len(comp) {
			score := totalScore(cg, nodes, working, w)
			if score < bestScore {
				bestScore = score
				for _, e := range comp {
					best[e] = append(Ordering{}, working[e]...)
				}
			}
			return
		}
		e := comp[i]
		n := len(LinesOf(cg, e))
		permute(n, func(p Ordering) {
			working[e] = p
			assign(i + 1)
		})
	}
	assign(0)

	for _, e := range comp {
		cfg[e] = best[e]
	}
}

func nodesOf(cg *comb.Graph, edges []graph.EdgeID) []graph.NodeID {
	seen := make(map[graph.NodeID]bool)
	var out []graph.NodeID
	for _, e := range edges {
		_, from, to, ok := cg.G.Edge(e)
		if !ok {
			continue
		}
		if !seen[from] {
			seen[from] = true
			out = append(out, from)
		}
		if !seen[to] {
			seen[to] = true
			out = append(out, to)
		}
	}
	return out
}

func totalScore(cg *comb.Graph, nodes []graph.NodeID, cfg Configuration, w Weights) float64 {
	var total float64
	for _, n := range nodes {
		total += Score(cg, n, cfg, w)
	}
	return total
}

// permute calls f once for every permutation of {0, ..., n-1}.
func permute(n int, f func(Ordering)) {
	if n == 0 {
		f(Ordering{})
		return
	}
	perm := make(Ordering, n)
	for i := range perm {
		perm[i] = i
	}
	var heap func(k int)
	heap = func(k int) {
		if k == 1 {
			f(append(Ordering{}, perm...))
			return
		}
		for i := 0; i < k; i++ {
			heap(k - 1)
			if k%2 == 0 {
				perm[i], perm[k-1] = perm[k-1], perm[i]
			} else {
				perm[0], perm[k-1] = perm[k-1], perm[0]
			}
		}
	}
	heap(n)
}

// ilpOptimize builds a 0/1 program for the component (one variable per
// (edge, line, position) triple, with constraints that give every line
// exactly one position and every position exactly one line) and hands
// it to the preferred available solver. The program has no
// crossing-indicator variables and no objective, so any feasible
// permutation the solver returns is accepted. If no solver resolves,
// or the solve fails or is infeasible, it leaves cfg unchanged for
// this component and returns true.
func ilpOptimize(cg *comb.Graph, comp []graph.EdgeID, cfg Configuration, w Weights, pref ilpsolve.Preference, timeLimit time.Duration) bool {
	solver, ok := ilpsolve.Resolve(pref)
	if !ok {
		return true
	}

	vars := make(map[[3]int]int) // (edgeIdx, lineIdx, position) -> var id
	for ei, e := range comp {
		n := len(LinesOf(cg, e))
		for li := 0; li < n; li++ {
			for pos := 0; pos < n; pos++ {
				vars[[3]int{ei, li, pos}] = solver.AddVar(ilpsolve.Binary, 0, 1)
			}
		}
	}
	for ei, e := range comp {
		n := len(LinesOf(cg, e))
		for li := 0; li < n; li++ {
			coeffs := make(map[int]float64, n)
			for pos := 0; pos < n; pos++ {
				coeffs[vars[[3]int{ei, li, pos}]] = 1
			}
			solver.AddConstraint(coeffs, 1, 1)
		}
		for pos := 0; pos < n; pos++ {
			coeffs := make(map[int]float64, n)
			for li := 0; li < n; li++ {
				coeffs[vars[[3]int{ei, li, pos}]] = 1
			}
			solver.AddConstraint(coeffs, 1, 1)
		}
	}

	sol, err := solver.Solve(timeLimit)
	if err != nil || !sol.Feasible {
		return true
	}

	for ei, e := range comp {
		n := len(LinesOf(cg, e))
		ordering := make(Ordering, n)
		for li := 0; li < n; li++ {
			for pos := 0; pos < n; pos++ {
				if sol.Values[vars[[3]int{ei, li, pos}]] > 0.5 {
					ordering[li] = pos
				}
			}
		}
		cfg[e] = ordering
	}
	return false
}
