// Package router runs shortest-path search over a basegraph.GridGraph:
// a standard Dijkstra from a single source hub to a set of candidate
// target hubs, and an A* variant using an admissible heuristic. It
// generalizes the teacher's link_router.go routeFinder (an ad hoc,
// per-route implicit-graph A* search over a map[GridPos]gridNode) into
// a reusable search over the grid graph's explicit node/edge arena.
package router

import (
	"github.com/linegrid/octilayout/basegraph"
	"github.com/linegrid/octilayout/graph"
	"github.com/linegrid/octilayout/internal/gridq"
)

// Step is one traversed grid edge.
type Step struct {
	Edge graph.EdgeID
	From graph.NodeID
	To   graph.NodeID
}

// Result is a found path: its steps in traversal order, its total
// cost, and which target node it actually reached.
type Result struct {
	Steps  []Step
	Cost   float64
	Target graph.NodeID
}

type searchState struct {
	dist map[graph.NodeID]float64
	prev map[graph.NodeID]Step
	seen map[graph.NodeID]bool
}

func newSearchState() *searchState {
	return &searchState{
		dist: make(map[graph.NodeID]float64),
		prev: make(map[graph.NodeID]Step),
		seen: make(map[graph.NodeID]bool),
	}
}

func (s *searchState) reconstruct(target graph.NodeID) Result {
	var steps []Step
	cur := target
	for {
		step, ok := s.prev[cur]
		if !ok {
			break
		}
		steps = append([]Step{step}, steps...)
		cur = step.From
	}
	return Result{Steps: steps, Cost: s.dist[target], Target: target}
}

// Dijkstra searches from source to the nearest node in targets,
// honoring the grid's current (possibly closed, Inf-cost) edges.
// Returns false if no target is reachable.
func Dijkstra(gg *basegraph.GridGraph, source graph.NodeID, targets map[graph.NodeID]bool) (Result, bool) {
	return search(gg, source, targets, func(graph.NodeID, float64) float64 { return 0 })
}

// AStar searches from source to the nearest node in targetCells'
// hubs, using gg's admissible grid heuristic.
func AStar(gg *basegraph.GridGraph, source graph.NodeID, targets map[graph.NodeID]bool, targetCells []gridq.Pos) (Result, bool) {
	return search(gg, source, targets, func(n graph.NodeID, _ float64) float64 {
		np, ok := gg.G.Node(n)
		if !ok {
			return 0
		}
		return gg.HeurCostToSet(np.Centroid, targetCells)
	})
}

func search(gg *basegraph.GridGraph, source graph.NodeID, targets map[graph.NodeID]bool, heuristic func(graph.NodeID, float64) float64) (Result, bool) {
	st := newSearchState()
	st.dist[source] = 0

	pq := &gridq.PriorityQueue[graph.NodeID]{}
	pq.Push(source, heuristic(source, 0))

	for !pq.Empty() {
		n, ok := pq.Pop()
		if !ok {
			break
		}
		if st.seen[n] {
			continue
		}
		st.seen[n] = true

		if targets[n] {
			return st.reconstruct(n), true
		}

		base := st.dist[n]
		for _, e := range gg.G.Out(n) {
			ep, _, to, ok := gg.G.Edge(e)
			if !ok || ep.Cost >= basegraph.Inf {
				continue
			}
			if st.seen[to] {
				continue
			}
			next := base + ep.Cost
			if cur, visited := st.dist[to]; !visited || next < cur {
				st.dist[to] = next
				st.prev[to] = Step{Edge: e, From: n, To: to}
				pq.Push(to, next+heuristic(to, next))
			}
		}
	}

	return Result{}, false
}
