package lineorder_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/linegrid/octilayout/comb"
	"github.com/linegrid/octilayout/geo"
	"github.com/linegrid/octilayout/ilpsolve"
	"github.com/linegrid/octilayout/lineorder"
	"github.com/linegrid/octilayout/transit"
)

func twoLineCrossing(t *testing.T) *comb.Graph {
	t.Helper()
	tg := transit.New()
	n := tg.AddNode(geo.Point{X: 0, Y: 0}, &transit.Station{ID: "N"})
	e1 := tg.AddNode(geo.Point{X: 10, Y: 0}, &transit.Station{ID: "E1"})
	e2 := tg.AddNode(geo.Point{X: -10, Y: 0}, &transit.Station{ID: "E2"})

	l1 := &transit.Line{ID: "L1"}
	l2 := &transit.Line{ID: "L2"}

	tg.AddEdge(n, e1, geo.Polyline{{X: 0, Y: 0}, {X: 10, Y: 0}}, []transit.LineOcc{{Line: l1}, {Line: l2}})
	tg.AddEdge(n, e2, geo.Polyline{{X: 0, Y: 0}, {X: -10, Y: 0}}, []transit.LineOcc{{Line: l1}, {Line: l2}})

	return comb.Build(tg)
}

func TestOptimizeNullModeLeavesOrderingUnchanged(t *testing.T) {
	cg := twoLineCrossing(t)
	w := lineorder.DefaultWeights()
	res := lineorder.Optimize(cg, lineorder.Null, w, ilpsolve.Preference{}, time.Second)

	for _, o := range res.Config {
		for i, pos := range o {
			require.Equal(t, i, pos, "null mode must not reorder")
		}
	}
}

func TestOptimizeAutoModeProducesValidPermutations(t *testing.T) {
	cg := twoLineCrossing(t)
	w := lineorder.DefaultWeights()
	res := lineorder.Optimize(cg, lineorder.Auto, w, ilpsolve.Preference{}, time.Second)

	for e, o := range res.Config {
		n := len(lineorder.LinesOf(cg, e))
		require.Len(t, o, n)
		seen := make(map[int]bool)
		for _, pos := range o {
			require.False(t, seen[pos], "each position used at most once")
			seen[pos] = true
		}
	}
}

func TestIlpModeFallsBackWhenNoSolverLinked(t *testing.T) {
	cg := twoLineCrossing(t)
	w := lineorder.DefaultWeights()
	res := lineorder.Optimize(cg, lineorder.ILP, w, ilpsolve.Preference{Wish: "gurobi"}, time.Second)

	require.Greater(t, res.ILPFallbacks, 0, "no ILP solver is linked in this build")
}
