// Package pens computes the additive cost vectors written onto a grid
// hub's departure sinks before a router call and removed afterward:
// bend penalty, topology-block penalty, spacing penalty and the
// node-movement penalty used when a target candidate sits away from
// its ideal grid position. It is grounded on GridGraph's
// nodeBendPen/topoBlockPen/spacingPen methods in the original
// base-graph interface, reexpressed as free functions that build a
// basegraph.CostVector rather than mutating hidden per-node state.
package pens

import "github.com/linegrid/octilayout/basegraph"

// Weights holds the scalar weights applied to each penalty kind.
// These correspond to the CLI's penalty-weight configuration surface.
type Weights struct {
	Bend         float64
	TopoBlock    float64
	Spacing      float64
	MovePerGrid  float64
	Splitting    float64
	CrossingSame float64
	CrossingDiff float64
}

// DefaultWeights returns a reasonable penalty-weight set.
func DefaultWeights() Weights {
	return Weights{
		Bend:         1,
		TopoBlock:    400,
		Spacing:      100,
		MovePerGrid:  50,
		Splitting:    50,
		CrossingSame: 100,
		CrossingDiff: 150,
	}
}

// BendVector returns, for every candidate departure direction d, the
// cost of bending from the direction that would continue the
// previously-laid segment of the combination edge (or, if none exists
// yet, the ideal direction towards the target) to d.
func BendVector(w Weights, from basegraph.Direction, hasPrev bool, idealTowards basegraph.Direction) basegraph.CostVector {
	ref := idealTowards
	if hasPrev {
		ref = from
	}
	var vec basegraph.CostVector
	for _, d := range basegraph.AllDirections {
		steps := ref.TurnSteps(d)
		vec[d] = w.Bend * float64(steps*steps)
	}
	return vec
}

// TopoBlockVector surcharges any direction already claimed at the hub
// by a different incident combination edge of the same combination
// node, when choosing it would violate the node's precomputed angular
// ordering. claimed holds the directions already in use at the hub;
// allowed holds the directions used by the edges immediately before
// and after the edge being routed in the node's angular ordering. A
// claimed direction that is also allowed is considered
// order-consistent and left unpenalized, any other claimed direction
// is blocked.
func TopoBlockVector(w Weights, claimed map[basegraph.Direction]bool, allowed map[basegraph.Direction]bool) basegraph.CostVector {
	var vec basegraph.CostVector
	for _, d := range basegraph.AllDirections {
		if claimed[d] && !allowed[d] {
			vec[d] = w.TopoBlock
		}
	}
	return vec
}

// SpacingVector discourages directions angularly close to directions
// already used by adjacent combination edges at the hub, proportional
// to how many other used directions lie one 45-degree step away.
func SpacingVector(w Weights, used []basegraph.Direction) basegraph.CostVector {
	var vec basegraph.CostVector
	for _, d := range basegraph.AllDirections {
		var conflicts int
		for _, u := range used {
			if d == u {
				continue
			}
			if d.TurnSteps(u) <= 1 {
				conflicts++
			}
		}
		vec[d] = w.Spacing * float64(conflicts)
	}
	return vec
}

// MovementCost returns the cost of opening a target sink gridDist cells
// away from the combination node's ideal grid position, optionally
// adding a topology surcharge when moving would force a previously
// routed neighbor into a forbidden relative position.
func MovementCost(w Weights, gridDist float64, topoConflict bool) float64 {
	cost := gridDist * w.MovePerGrid
	if topoConflict {
		cost += w.TopoBlock
	}
	return cost
}
