package basegraph

import (
	"github.com/linegrid/octilayout/geo"
	"github.com/linegrid/octilayout/internal/gridq"
)

// HeurCost returns a lower bound on the routing cost between two
// world-space points, used as the A* heuristic. Every real edge costs
// at least RealBase per CellSize of distance traveled (diagonal edges
// cost RealBase*DiagonalFactor over DiagonalFactor*CellSize of
// distance, the same rate), and bend/sink edges only add further cost,
// so straight-line distance scaled by that rate never overestimates
// the true path cost: the heuristic is admissible by construction.
func (gg *GridGraph) HeurCost(a, b geo.Point) float64 {
	rate := gg.Pens.RealBase / gg.CellSize
	return a.Dist(b) * rate
}

// CheapestSinkCost returns the minimum open arrival-sink cost among the
// given target cells, a constant lower bound on the cost of entering
// the target set from just outside it.
func (gg *GridGraph) CheapestSinkCost(cells []gridq.Pos) float64 {
	cheapest := Inf
	for _, cell := range cells {
		for _, d := range AllDirections {
			e := gg.sinkTo[cell][d]
			ep, _, _, ok := gg.G.Edge(e)
			if !ok || !ep.Open {
				continue
			}
			if ep.Cost < cheapest {
				cheapest = ep.Cost
			}
		}
	}
	if cheapest == Inf {
		return 0
	}
	return cheapest
}

// HeurCostToSet returns the admissible A* heuristic from p to the
// nearest of a set of target cells: the minimum grid-heuristic
// distance to any target centroid, plus the cheapest open arrival-sink
// cost among them.
func (gg *GridGraph) HeurCostToSet(p geo.Point, cells []gridq.Pos) float64 {
	if len(cells) == 0 {
		return 0
	}
	best := Inf
	for _, cell := range cells {
		hub, ok := gg.Hub(cell)
		if !ok {
			continue
		}
		np, ok := gg.G.Node(hub)
		if !ok {
			continue
		}
		d := gg.HeurCost(p, np.Centroid)
		if d < best {
			best = d
		}
	}
	if best == Inf {
		return 0
	}
	return best + gg.CheapestSinkCost(cells)
}
