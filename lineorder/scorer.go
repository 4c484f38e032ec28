// Package lineorder assigns, per combination edge, a permutation of
// its lines that minimizes weighted crossings and splittings over the
// drawn graph, dispatching by connected component to a null,
// exhaustive or ILP strategy. It is grounded on CombOptimizer.cpp and
// Scorer.h, reexpressed over the comb package's graph/EdgePayload
// types rather than the original's pointer-based TransitGraph.
package lineorder

import (
	"github.com/linegrid/octilayout/comb"
	"github.com/linegrid/octilayout/graph"
	"github.com/linegrid/octilayout/transit"
)

// Ordering is a permutation of an edge's line list: Ordering[i] is the
// position of LinesOf(e)[i] among the edge's parallel tracks.
type Ordering []int

// Configuration maps every combination edge to its current ordering.
type Configuration map[graph.EdgeID]Ordering

// Weights holds the per-crossing-kind penalty weights.
type Weights struct {
	SameSeg   float64
	DiffSeg   float64
	Splitting float64
}

// DefaultWeights returns a reasonable penalty set.
func DefaultWeights() Weights {
	return Weights{SameSeg: 100, DiffSeg: 150, Splitting: 50}
}

// LinesOf returns the distinct lines carried by combination edge e, in
// a deterministic order derived from its children.
func LinesOf(cg *comb.Graph, e graph.EdgeID) []transit.LineID {
	ep, _, _, ok := cg.G.Edge(e)
	if !ok {
		return nil
	}
	seen := make(map[transit.LineID]bool)
	var out []transit.LineID
	for _, child := range ep.Children {
		cep, _, _, ok := cg.Transit.G.Edge(child)
		if !ok {
			continue
		}
		for _, occ := range cep.Lines {
			if occ.Line == nil || seen[occ.Line.ID] {
				continue
			}
			seen[occ.Line.ID] = true
			out = append(out, occ.Line.ID)
		}
	}
	return out
}

// IdentityOrdering returns the unchanged ordering 0..n-1 for an edge
// carrying n lines.
func IdentityOrdering(n int) Ordering {
	o := make(Ordering, n)
	for i := range o {
		o[i] = i
	}
	return o
}

func position(o Ordering, lineIdx int) int {
	if lineIdx < 0 || lineIdx >= len(o) {
		return -1
	}
	return o[lineIdx]
}

// Score returns the total weighted crossing/splitting cost at node n,
// summed over every pair of incident edges that share at least one
// line, under configuration cfg.
func Score(cg *comb.Graph, n graph.NodeID, cfg Configuration, w Weights) float64 {
	var total float64
	incident := cg.G.Out(n)
	type pairKey struct {
		edges [2]graph.EdgeID
		lines [2]transit.LineID
	}
	processed := make(map[pairKey]bool)

	for i, ea := range incident {
		linesA := LinesOf(cg, ea)
		for a := 0; a < len(linesA); a++ {
			for b := a + 1; b < len(linesA); b++ {
				for j, eb := range incident {
					if i == j {
						continue
					}
					la, lb := linesA[a], linesA[b]
					if lb < la {
						la, lb = lb, la
					}
					key := pairKey{edgeKey(ea, eb), [2]transit.LineID{la, lb}}
					if processed[key] {
						continue
					}

					linesB := LinesOf(cg, eb)
					posA1, posA2 := position(cfg[ea], indexOf(linesA, linesA[a])), position(cfg[ea], indexOf(linesA, linesA[b]))
					idxB1, idxB2 := indexOf(linesB, linesA[a]), indexOf(linesB, linesA[b])

					if idxB1 < 0 || idxB2 < 0 {
						continue
					}
					processed[key] = true

					posB1, posB2 := position(cfg[eb], idxB1), position(cfg[eb], idxB2)
					if posA1 < 0 || posA2 < 0 || posB1 < 0 || posB2 < 0 {
						continue
					}

					sameOrder := (posA1 < posA2) == (posB1 < posB2)
					if !sameOrder {
						total += w.SameSeg
					}
					if abs(posA1-posA2) == 1 && abs(posB1-posB2) != 1 {
						total += w.Splitting
					}
				}
			}
		}
	}

	processedDiff := make(map[[3]graph.EdgeID]bool)
	for _, ea := range incident {
		linesA := LinesOf(cg, ea)
		for a := 0; a < len(linesA); a++ {
			for b := a + 1; b < len(linesA); b++ {
				if diffSegCrosses(cg, n, ea, linesA[a], linesA[b], cfg, processedDiff) {
					total += w.DiffSeg
				}
			}
		}
	}
	return total
}

// diffSegCrosses reports whether the pair (la, lb), both carried on
// ea, continues at n into two distinct outgoing edges whose positions
// in n's angular EdgeOrder interleave with the pair's relative order
// on ea — the different-segment crossing term of the layout objective
// (getEdgePartnerPairs in the source: pairs of distinct outgoing edges
// where one line continues into each).
func diffSegCrosses(cg *comb.Graph, n graph.NodeID, ea graph.EdgeID, la, lb transit.LineID, cfg Configuration, seen map[[3]graph.EdgeID]bool) bool {
	ea2, ok1 := continuesInto(cg, n, ea, la)
	eb2, ok2 := continuesInto(cg, n, ea, lb)
	if !ok1 || !ok2 || ea2 == eb2 {
		return false
	}
	key := [3]graph.EdgeID{ea, ea2, eb2}
	if ea2 > eb2 {
		key = [3]graph.EdgeID{ea, eb2, ea2}
	}
	if seen[key] {
		return false
	}
	seen[key] = true

	origin := circularIndex(cg, n, ea)
	idx1 := circularIndex(cg, n, ea2)
	idx2 := circularIndex(cg, n, eb2)
	if origin < 0 || idx1 < 0 || idx2 < 0 {
		return false
	}
	count := len(cg.G.Out(n))
	step1 := ((idx1-origin)%count + count) % count
	step2 := ((idx2-origin)%count + count) % count

	linesA := LinesOf(cg, ea)
	posA1 := position(cfg[ea], indexOf(linesA, la))
	posA2 := position(cfg[ea], indexOf(linesA, lb))
	if posA1 < 0 || posA2 < 0 {
		return false
	}
	return (posA1 < posA2) != (step1 < step2)
}

// continuesInto returns the single outgoing edge, other than from,
// that carries line id at n, or false if none or more than one does.
func continuesInto(cg *comb.Graph, n graph.NodeID, from graph.EdgeID, id transit.LineID) (graph.EdgeID, bool) {
	var found graph.EdgeID
	count := 0
	for _, e := range cg.G.Out(n) {
		if e == from {
			continue
		}
		for _, l := range LinesOf(cg, e) {
			if l == id {
				found = e
				count++
				break
			}
		}
	}
	if count != 1 {
		return 0, false
	}
	return found, true
}

// circularIndex returns e's position in n's precomputed angular
// EdgeOrder, or -1 if n has no such edge.
func circularIndex(cg *comb.Graph, n graph.NodeID, e graph.EdgeID) int {
	np, ok := cg.G.Node(n)
	if !ok {
		return -1
	}
	for i, oe := range np.EdgeOrder {
		if oe == e {
			return i
		}
	}
	return -1
}

// ForbiddenPairs returns every pair of distinct lines incident at n
// whose continuation crosses (same-segment or different-segment)
// under cfg's current orderings — the data a downstream writer can
// surface as a station's forbidden line connections.
func ForbiddenPairs(cg *comb.Graph, n graph.NodeID, cfg Configuration) [][2]transit.LineID {
	var out [][2]transit.LineID
	seenPair := make(map[[2]transit.LineID]bool)
	incident := cg.G.Out(n)
	processedDiff := make(map[[3]graph.EdgeID]bool)

	for _, ea := range incident {
		linesA := LinesOf(cg, ea)
		posA := cfg[ea]
		for a := 0; a < len(linesA); a++ {
			for b := a + 1; b < len(linesA); b++ {
				la, lb := linesA[a], linesA[b]
				pairKey := [2]transit.LineID{la, lb}
				if la > lb {
					pairKey = [2]transit.LineID{lb, la}
				}
				if seenPair[pairKey] {
					continue
				}

				crosses := diffSegCrosses(cg, n, ea, la, lb, cfg, processedDiff)
				if !crosses {
					for _, eb := range incident {
						if eb == ea {
							continue
						}
						linesB := LinesOf(cg, eb)
						idxB1, idxB2 := indexOf(linesB, la), indexOf(linesB, lb)
						if idxB1 < 0 || idxB2 < 0 {
							continue
						}
						posB1, posB2 := position(cfg[eb], idxB1), position(cfg[eb], idxB2)
						posA1, posA2 := position(posA, a), position(posA, b)
						if posA1 < 0 || posA2 < 0 || posB1 < 0 || posB2 < 0 {
							continue
						}
						if (posA1 < posA2) != (posB1 < posB2) {
							crosses = true
							break
						}
					}
				}

				if crosses {
					seenPair[pairKey] = true
					out = append(out, pairKey)
				}
			}
		}
	}
	return out
}

func indexOf(lines []transit.LineID, id transit.LineID) int {
	for i, l := range lines {
		if l == id {
			return i
		}
	}
	return -1
}

func edgeKey(a, b graph.EdgeID) [2]graph.EdgeID {
	if a < b {
		return [2]graph.EdgeID{a, b}
	}
	return [2]graph.EdgeID{b, a}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
