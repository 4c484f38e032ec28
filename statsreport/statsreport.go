// Package statsreport publishes layout-run metrics through
// prometheus/client_golang's registry, driven by the CLI "--stats"
// flag: generations run, total routing cost, unrouted-edge count and
// ILP fallback count.
package statsreport

import (
	"bytes"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/expfmt"

	"github.com/linegrid/octilayout/octi"
)

// Reporter holds the gauges published for a single layout run.
type Reporter struct {
	reg *prometheus.Registry

	generations  prometheus.Gauge
	totalCost    prometheus.Gauge
	unrouted     prometheus.Gauge
	ilpFallbacks prometheus.Gauge
}

// New returns a Reporter with a private registry, so running multiple
// layouts in one process (e.g. a rotation sweep) never collides on
// metric registration.
func New() *Reporter {
	reg := prometheus.NewRegistry()
	r := &Reporter{
		reg: reg,
		generations: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "octilayout_generations_total",
			Help: "Number of routing generations executed by the octilinearizer driver.",
		}),
		totalCost: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "octilayout_total_routing_cost",
			Help: "Sum of per-edge shortest-path costs accepted by the driver.",
		}),
		unrouted: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "octilayout_unrouted_edges",
			Help: "Number of combination edges the driver could not route.",
		}),
		ilpFallbacks: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "octilayout_ilp_fallbacks",
			Help: "Number of line-order components that fell back to their input ordering.",
		}),
	}
	reg.MustRegister(r.generations, r.totalCost, r.unrouted, r.ilpFallbacks)
	return r
}

// Observe records the outcome of an octi.Result and an optional count
// of ILP fallbacks reported by lineorder.Optimize.
func (r *Reporter) Observe(res *octi.Result, ilpFallbacks int) {
	r.generations.Set(float64(res.Generations))
	r.totalCost.Set(res.TotalCost)
	r.unrouted.Set(float64(len(res.Unrouted)))
	r.ilpFallbacks.Set(float64(ilpFallbacks))
}

// Dump renders the current metrics in Prometheus text exposition
// format.
func (r *Reporter) Dump() (string, error) {
	mfs, err := r.reg.Gather()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	for _, mf := range mfs {
		if _, err := expfmt.MetricFamilyToText(&buf, mf); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}
