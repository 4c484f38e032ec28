package pens_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/linegrid/octilayout/basegraph"
	"github.com/linegrid/octilayout/pens"
)

func TestBendVectorStraightIsCheapest(t *testing.T) {
	w := pens.DefaultWeights()
	vec := pens.BendVector(w, basegraph.DirE, true, basegraph.DirE)

	require.Equal(t, 0.0, vec[basegraph.DirE])
	for _, d := range basegraph.AllDirections {
		if d != basegraph.DirE {
			require.Greater(t, vec[d], 0.0)
		}
	}
}

func TestSpacingVectorPenalizesNearbyUsedDirections(t *testing.T) {
	w := pens.DefaultWeights()
	vec := pens.SpacingVector(w, []basegraph.Direction{basegraph.DirN})

	require.Equal(t, 0.0, vec[basegraph.DirS], "opposite direction is unaffected by a single close-range conflict")
	require.Greater(t, vec[basegraph.DirNE], 0.0)
	require.Greater(t, vec[basegraph.DirNW], 0.0)
}

func TestTopoBlockVectorOnlyBlocksDisallowedClaims(t *testing.T) {
	w := pens.DefaultWeights()
	claimed := map[basegraph.Direction]bool{basegraph.DirN: true, basegraph.DirE: true}
	allowed := map[basegraph.Direction]bool{basegraph.DirE: true}

	vec := pens.TopoBlockVector(w, claimed, allowed)

	require.Equal(t, 0.0, vec[basegraph.DirE], "allowed claim is not penalized")
	require.Equal(t, w.TopoBlock, vec[basegraph.DirN])
}
