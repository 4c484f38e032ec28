package basegraph

import (
	"sort"

	"github.com/linegrid/octilayout/geo"
	"github.com/linegrid/octilayout/graph"
	"github.com/linegrid/octilayout/internal/gridq"
)

// OpenSinkFr sets a finite cost on the departure sink in direction d at
// hub's cell, allowing the router to leave the hub in that direction.
func (gg *GridGraph) OpenSinkFr(cell gridq.Pos, d Direction, cost float64) {
	e := gg.sinkFrom[cell][d]
	ep, from, to, ok := gg.G.Edge(e)
	if !ok {
		return
	}
	ep.Cost = cost
	ep.Open = true
	gg.G.SetEdge(e, ep)
	_ = from
	_ = to
}

// CloseSinkFr closes the departure sink in direction d, setting its cost to Inf.
func (gg *GridGraph) CloseSinkFr(cell gridq.Pos, d Direction) {
	e := gg.sinkFrom[cell][d]
	ep, _, _, ok := gg.G.Edge(e)
	if !ok {
		return
	}
	ep.Cost = Inf
	ep.Open = false
	gg.G.SetEdge(e, ep)
}

// OpenSinkTo sets a finite cost on the arrival sink from direction d,
// allowing the router to enter the hub from that direction.
func (gg *GridGraph) OpenSinkTo(cell gridq.Pos, d Direction, cost float64) {
	e := gg.sinkTo[cell][d]
	ep, _, _, ok := gg.G.Edge(e)
	if !ok {
		return
	}
	ep.Cost = cost
	ep.Open = true
	gg.G.SetEdge(e, ep)
}

// CloseSinkTo closes the arrival sink from direction d.
func (gg *GridGraph) CloseSinkTo(cell gridq.Pos, d Direction) {
	e := gg.sinkTo[cell][d]
	ep, _, _, ok := gg.G.Edge(e)
	if !ok {
		return
	}
	ep.Cost = Inf
	ep.Open = false
	gg.G.SetEdge(e, ep)
}

// OpenTurns enables every bend edge at cell's hub (sets cost to its base).
func (gg *GridGraph) OpenTurns(cell gridq.Pos) {
	for from := range AllDirections {
		for to := range AllDirections {
			if from == to {
				continue
			}
			e, ok := gg.bendEdge[bendKey{cell, Direction(from), Direction(to)}]
			if !ok {
				continue
			}
			ep, _, _, ok := gg.G.Edge(e)
			if !ok {
				continue
			}
			ep.Cost = ep.BaseCost
			gg.G.SetEdge(e, ep)
		}
	}
}

// CloseTurns disables every bend edge at cell's hub.
func (gg *GridGraph) CloseTurns(cell gridq.Pos) {
	for from := range AllDirections {
		for to := range AllDirections {
			if from == to {
				continue
			}
			e, ok := gg.bendEdge[bendKey{cell, Direction(from), Direction(to)}]
			if !ok {
				continue
			}
			ep, _, _, ok := gg.G.Edge(e)
			if !ok {
				continue
			}
			ep.Cost = Inf
			gg.G.SetEdge(e, ep)
		}
	}
}

// SettleNode records the hub at cell as occupied by combination node cn
// and closes it to further routing (all sinks and turns closed).
func (gg *GridGraph) SettleNode(cell gridq.Pos, cn graph.NodeID) {
	hub, ok := gg.Hub(cell)
	if !ok {
		return
	}
	np, _ := gg.G.Node(hub)
	np.Settled = true
	np.SettledBy = cn
	gg.G.SetNode(hub, np)

	for _, d := range AllDirections {
		gg.CloseSinkFr(cell, d)
		gg.CloseSinkTo(cell, d)
	}
	gg.CloseTurns(cell)
}

// UnsettleNode reverses SettleNode, reopening turns (sinks stay closed
// until the caller reopens them for a subsequent search).
func (gg *GridGraph) UnsettleNode(cell gridq.Pos) {
	hub, ok := gg.Hub(cell)
	if !ok {
		return
	}
	np, _ := gg.G.Node(hub)
	np.Settled = false
	np.SettledBy = 0
	gg.G.SetNode(hub, np)
	gg.OpenTurns(cell)
}

// IsSettled reports whether the hub at cell is currently settled.
func (gg *GridGraph) IsSettled(cell gridq.Pos) bool {
	hub, ok := gg.Hub(cell)
	if !ok {
		return false
	}
	np, _ := gg.G.Node(hub)
	return np.Settled
}

// SettleEdge marks the real edge leaving cell in direction d as carrying
// the routed combination edge ce: it becomes non-reusable (cost raised
// to Inf) and ce is added to the resident set of both directions,
// preserving the symmetric residency invariant.
func (gg *GridGraph) SettleEdge(cell gridq.Pos, d Direction, ce graph.EdgeID) {
	fwdID, ok := gg.realEdge[realKey{cell, d}]
	if !ok {
		return
	}
	n, ok := gg.neighborCell(cell, d)
	if !ok {
		return
	}
	bwdID, ok := gg.realEdge[realKey{n, d.Opposite()}]
	if !ok {
		return
	}

	for _, id := range []graph.EdgeID{fwdID, bwdID} {
		ep, _, _, ok := gg.G.Edge(id)
		if !ok {
			continue
		}
		ep.Cost = Inf
		if ep.Residents == nil {
			ep.Residents = map[graph.EdgeID]bool{}
		}
		ep.Residents[ce] = true
		gg.G.SetEdge(id, ep)
	}

	fwdEp, _, _, _ := gg.G.Edge(fwdID)
	bwdEp, _, _, _ := gg.G.Edge(bwdID)
	if fwdEp.Residents[ce] != bwdEp.Residents[ce] {
		panic("basegraph: real edge residency symmetry violated")
	}
}

// RealEdgeResidents returns the combination edges resident on the real
// edge leaving cell in direction d.
func (gg *GridGraph) RealEdgeResidents(cell gridq.Pos, d Direction) []graph.EdgeID {
	id, ok := gg.realEdge[realKey{cell, d}]
	if !ok {
		return nil
	}
	ep, _, _, ok := gg.G.Edge(id)
	if !ok {
		return nil
	}
	out := make([]graph.EdgeID, 0, len(ep.Residents))
	for ce := range ep.Residents {
		out = append(out, ce)
	}
	return out
}

// CostVector is an 8-entry array of additive costs indexed by
// Direction, written to a hub's departure sinks by AddCostVector and
// removed exactly by RemoveCostVector.
type CostVector [8]float64

// AddCostVector adds vec[d] to the departure-sink cost in direction d
// at cell's hub, for every d, and returns vec unchanged as the
// caller's handle to reverse the operation. This mirrors the source's
// addCostVec/removeCostVector reversible-write contract.
func (gg *GridGraph) AddCostVector(cell gridq.Pos, vec CostVector) CostVector {
	for _, d := range AllDirections {
		e := gg.sinkFrom[cell][d]
		ep, _, _, ok := gg.G.Edge(e)
		if !ok || !ep.Open {
			continue
		}
		ep.Cost += vec[d]
		gg.G.SetEdge(e, ep)
	}
	return vec
}

// RemoveCostVector subtracts vec, exactly undoing a prior AddCostVector
// call for the same cell.
func (gg *GridGraph) RemoveCostVector(cell gridq.Pos, vec CostVector) {
	for _, d := range AllDirections {
		e := gg.sinkFrom[cell][d]
		ep, _, _, ok := gg.G.Edge(e)
		if !ok || !ep.Open {
			continue
		}
		ep.Cost -= vec[d]
		if ep.Cost < -1e-6 {
			panic("basegraph: cost-vector reversibility violated, sink cost went negative")
		}
		gg.G.SetEdge(e, ep)
	}
}

// SurchargeBend permanently raises the cost of the bend edges at
// cell's hub that join port used with its two 45-degree neighbor
// ports (both directions of travel), modeling the
// future-occupancy penalty a just-settled direction imposes on later
// routes through the same hub (the octilinearizer's balance pass).
// Unlike AddCostVector/RemoveCostVector this is not reversed: the
// surcharge reflects the real edge's now-permanent residency.
func (gg *GridGraph) SurchargeBend(cell gridq.Pos, used Direction, amount float64) {
	for _, d := range AllDirections {
		if d == used || used.TurnSteps(d) > 1 {
			continue
		}
		for _, key := range [2]bendKey{{cell, used, d}, {cell, d, used}} {
			e, ok := gg.bendEdge[key]
			if !ok {
				continue
			}
			ep, _, _, ok := gg.G.Edge(e)
			if !ok {
				continue
			}
			ep.BaseCost += amount
			ep.Cost += amount
			gg.G.SetEdge(e, ep)
		}
	}
}

// AddObstacle flags every hub whose centroid falls within radius of p
// as an obstacle. GetGridNodeCandidates never returns a flagged hub, so
// no combination node is placed there; the hub's sink, bend and real
// edge costs are left unchanged.
func (gg *GridGraph) AddObstacle(p geo.Point, radius float64) {
	for cell, hub := range gg.hubAt {
		np, ok := gg.G.Node(hub)
		if !ok {
			continue
		}
		if np.Centroid.Dist(p) <= radius {
			np.Obstacle = true
			gg.G.SetNode(hub, np)
			_ = cell
		}
	}
}

// Candidate is one result of a nearest-hub search.
type Candidate struct {
	Cell gridq.Pos
	Dist float64
}

// GetGridNodeCandidates returns every hub within Euclidean distance
// maxD of p, except obstacle hubs, ascending by distance.
func (gg *GridGraph) GetGridNodeCandidates(p geo.Point, maxD float64) []Candidate {
	out := make([]Candidate, 0)
	for cell, hub := range gg.hubAt {
		np, ok := gg.G.Node(hub)
		if !ok || np.Obstacle {
			continue
		}
		d := np.Centroid.Dist(p)
		if d <= maxD {
			out = append(out, Candidate{Cell: cell, Dist: d})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Dist < out[j].Dist })
	return out
}

// GetUnsettledCandidates filters GetGridNodeCandidates to hubs that are
// not currently settled.
func (gg *GridGraph) GetUnsettledCandidates(p geo.Point, maxD float64) []Candidate {
	all := gg.GetGridNodeCandidates(p, maxD)
	out := make([]Candidate, 0, len(all))
	for _, c := range all {
		if !gg.IsSettled(c.Cell) {
			out = append(out, c)
		}
	}
	return out
}
