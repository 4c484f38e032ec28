package octi

import (
	"github.com/linegrid/octilayout/basegraph"
	"github.com/linegrid/octilayout/geo"
	"github.com/linegrid/octilayout/router"
)

// BuildPolyline reconstructs the geographic polyline for a routed
// combination edge from the grid path returned by the router: it
// walks the path in order, keeping only the real (non-secondary) grid
// edges, smooths the takeoff from the source's geographic position
// with a cubic Bezier into the first hub centroid, and appends the
// target's geographic position at the end.
func BuildPolyline(gg *basegraph.GridGraph, result router.Result, from, to geo.Point) geo.Polyline {
	pl := make(geo.Polyline, 0, len(result.Steps)*2+2)
	first := true

	for _, step := range result.Steps {
		fp, ok1 := gg.G.Node(step.From)
		tp, ok2 := gg.G.Node(step.To)
		if !ok1 || !ok2 {
			continue
		}
		if fp.Kind != basegraph.KindPort || tp.Kind != basegraph.KindPort || fp.Cell == tp.Cell {
			continue // secondary edge: sink (hub<->port) or bend (same-hub port<->port)
		}

		if first {
			pl = append(pl, from)
			bc := geo.CubicBezier{P0: from, P1: from, P2: from, P3: fp.Centroid}
			rendered := bc.Render(10)
			if len(rendered) > 1 {
				pl = append(pl, rendered[1:]...)
			}
			first = false
		}

		pl = append(pl, fp.Centroid, tp.Centroid)
	}

	pl = append(pl, to)
	return pl.Fix()
}
