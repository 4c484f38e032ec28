package octi

import (
	"github.com/linegrid/octilayout/basegraph"
	"github.com/linegrid/octilayout/pens"
)

// Config parameterizes a single layout attempt.
type Config struct {
	GridSize      float64
	ShortEdgeFrac float64 // fraction of GridSize below which an edge is collapsed, default 0.5
	MaxGrDistMul  float64 // frGr candidate search radius as a multiple of GridSize, default 1.7
	AbortAfter    int     // 0 means unbounded
	Verify        bool    // cross-check Dijkstra against A* on every search
	Pens          basegraph.Penalties
	Weights       pens.Weights
	HananIters    int // extra uniform grid subdivisions, see basegraph.NewHanan
}

// DefaultConfig returns a reasonable configuration for GridSize gs.
func DefaultConfig(gs float64) Config {
	return Config{
		GridSize:      gs,
		ShortEdgeFrac: 0.5,
		MaxGrDistMul:  1.7,
		Pens:          basegraph.DefaultPenalties(),
		Weights:       pens.DefaultWeights(),
	}
}
