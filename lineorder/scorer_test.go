package lineorder_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/linegrid/octilayout/comb"
	"github.com/linegrid/octilayout/geo"
	"github.com/linegrid/octilayout/graph"
	"github.com/linegrid/octilayout/lineorder"
	"github.com/linegrid/octilayout/transit"
)

// splitStar builds a 3-way node N where edge ea carries both L1 and
// L2, L1 continues alone into eb and L2 continues alone into ec, with
// eb and ec on either side of ea in N's angular order. This is the
// shape the different-segment crossing term exists to penalize: a and
// b split apart at N into two distinct onward edges.
func splitStar(t *testing.T) (cg *comb.Graph, center graph.NodeID) {
	t.Helper()
	tg := transit.New()
	n := tg.AddNode(geo.Point{X: 0, Y: 0}, &transit.Station{ID: "N"})
	e1 := tg.AddNode(geo.Point{X: 10, Y: 0}, &transit.Station{ID: "E1"})
	e2 := tg.AddNode(geo.Point{X: -10, Y: 10}, &transit.Station{ID: "E2"})
	e3 := tg.AddNode(geo.Point{X: -10, Y: -10}, &transit.Station{ID: "E3"})

	l1 := &transit.Line{ID: "L1"}
	l2 := &transit.Line{ID: "L2"}

	tg.AddEdge(n, e1, geo.Polyline{{X: 0, Y: 0}, {X: 10, Y: 0}}, []transit.LineOcc{{Line: l1}, {Line: l2}})
	tg.AddEdge(n, e2, geo.Polyline{{X: 0, Y: 0}, {X: -10, Y: 10}}, []transit.LineOcc{{Line: l1}})
	tg.AddEdge(n, e3, geo.Polyline{{X: 0, Y: 0}, {X: -10, Y: -10}}, []transit.LineOcc{{Line: l2}})

	cg = comb.Build(tg)
	cg.ComputeEdgeOrdering()
	return cg, combNodeOf(cg, n)
}

// combNodeOf returns the combination node built from transit node tn.
func combNodeOf(cg *comb.Graph, tn graph.NodeID) graph.NodeID {
	for _, cn := range cg.G.Nodes() {
		np, ok := cg.G.Node(cn)
		if ok && np.Transit == tn {
			return cn
		}
	}
	return 0
}

func identityConfig(cg *comb.Graph, n graph.NodeID) lineorder.Configuration {
	cfg := lineorder.Configuration{}
	for _, e := range cg.G.Out(n) {
		cfg[e] = lineorder.IdentityOrdering(len(lineorder.LinesOf(cg, e)))
	}
	return cfg
}

func TestScoreCountsDifferentSegmentCrossing(t *testing.T) {
	cg, n := splitStar(t)
	w := lineorder.Weights{SameSeg: 0, DiffSeg: 150, Splitting: 0}

	cfg := identityConfig(cg, n)
	require.Equal(t, 0.0, lineorder.Score(cg, n, cfg, w),
		"identity ordering keeps L1/L2 in the same relative order as their onward edges")

	// Reverse the shared edge's ordering: L2 now precedes L1 on ea, but
	// eb (L1's continuation) still precedes ec (L2's) angularly, so the
	// two orders disagree and the pair crosses.
	for e, o := range cfg {
		if len(o) == 2 {
			cfg[e] = lineorder.Ordering{1, 0}
		}
	}
	require.Equal(t, w.DiffSeg, lineorder.Score(cg, n, cfg, w))
}

func TestForbiddenPairsNamesTheCrossingLines(t *testing.T) {
	cg, n := splitStar(t)
	cfg := identityConfig(cg, n)
	for e, o := range cfg {
		if len(o) == 2 {
			cfg[e] = lineorder.Ordering{1, 0}
		}
	}

	pairs := lineorder.ForbiddenPairs(cg, n, cfg)
	require.Len(t, pairs, 1)
	require.ElementsMatch(t,
		[]transit.LineID{"L1", "L2"},
		[]transit.LineID{pairs[0][0], pairs[0][1]})
}
