package statsreport_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/linegrid/octilayout/octi"
	"github.com/linegrid/octilayout/statsreport"
)

func TestDumpIncludesObservedValues(t *testing.T) {
	r := statsreport.New()
	r.Observe(&octi.Result{Generations: 3, TotalCost: 42.5, Unrouted: []octi.UnroutedEdge{{}}}, 1)

	out, err := r.Dump()
	require.NoError(t, err)
	require.True(t, strings.Contains(out, "octilayout_generations_total 3"))
	require.True(t, strings.Contains(out, "octilayout_ilp_fallbacks 1"))
}
