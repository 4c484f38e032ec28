// Command octilayout lays out a transit network topology octilinearly
// and writes a GeoJSON FeatureCollection of the result.
//
// Usage:
//
//	octilayout [flags] [input [output]]
//
// If input is omitted or "-", the network is read from standard input.
// If output is omitted or "-", the result is written to standard output.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"encoding/json"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/linegrid/octilayout/config"
	"github.com/linegrid/octilayout/ilpsolve"
	"github.com/linegrid/octilayout/iocodec"
	"github.com/linegrid/octilayout/lineorder"
	"github.com/linegrid/octilayout/obslog"
	"github.com/linegrid/octilayout/octi"
	"github.com/linegrid/octilayout/statsreport"
)

var (
	configPath string
	gridSize   float64
	optMode    string
	ilpSolver  string
	verify     bool
	writeStats bool
	dumpConfig bool
)

func init() {
	pflag.StringVar(&configPath, "config", "", "path to a YAML config file")
	pflag.Float64Var(&gridSize, "grid-size", 0, "grid cell size, overrides the config file")
	pflag.StringVar(&optMode, "opt-mode", "", "line-order optimization mode: null, exhaust, ilp, comb")
	pflag.StringVar(&ilpSolver, "ilp-solver", "", "preferred ILP solver name")
	pflag.BoolVar(&verify, "verify", false, "cross-check Dijkstra against A* on every search")
	pflag.BoolVar(&writeStats, "stats", false, "dump a Prometheus text exposition of run stats to stderr")
	pflag.BoolVar(&dumpConfig, "dumpconf", false, "dump the effective config as YAML to stdout and exit")
}

func main() {
	pflag.Parse()
	os.Exit(run())
}

func run() int {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error loading config %s: %s\n", configPath, err)
			return 1
		}
		cfg = loaded
	}
	if gridSize > 0 {
		cfg.GridSize = gridSize
	}
	if optMode != "" {
		cfg.OptMode = config.OptMode(optMode)
	}
	if ilpSolver != "" {
		cfg.ILPSolver = ilpSolver
	}
	cfg.WriteStats = cfg.WriteStats || writeStats

	if dumpConfig {
		data, err := yaml.Marshal(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error dumping config: %s\n", err)
			return 1
		}
		os.Stdout.Write(data)
		return 0
	}

	var in io.Reader = os.Stdin
	if pflag.NArg() > 0 && pflag.Arg(0) != "-" {
		f, err := os.Open(pflag.Arg(0))
		if err != nil {
			fmt.Fprintf(os.Stderr, "error opening input file %s: %s\n", pflag.Arg(0), err)
			return 1
		}
		defer f.Close()
		in = f
	}

	var out io.Writer = os.Stdout
	if pflag.NArg() > 1 && pflag.Arg(1) != "-" {
		f, err := os.Create(pflag.Arg(1))
		if err != nil {
			fmt.Fprintf(os.Stderr, "error opening output file %s: %s\n", pflag.Arg(1), err)
			return 1
		}
		defer f.Close()
		out = f
	}

	var net iocodec.Network
	if err := json.NewDecoder(in).Decode(&net); err != nil {
		fmt.Fprintf(os.Stderr, "error parsing network: %s\n", err)
		return 1
	}

	tg, err := net.Decode()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error decoding network: %s\n", err)
		return 1
	}

	octiCfg := octi.DefaultConfig(cfg.GridSize)
	octiCfg.Verify = verify
	octiCfg.HananIters = cfg.HananIters
	octiCfg.AbortAfter = cfg.AbortAfter
	octiCfg.Pens.BendBase = cfg.Pens.Bend
	octiCfg.Weights.Splitting = cfg.Pens.Splitting
	octiCfg.Weights.CrossingSame = cfg.Pens.CrossingSame
	octiCfg.Weights.CrossingDiff = cfg.Pens.CrossingDiff
	octiCfg.Weights.MovePerGrid = cfg.Pens.Movement

	result := octi.Layout(tg, octiCfg)

	lw := lineorder.DefaultWeights()
	lw.SameSeg = cfg.Pens.CrossingSame
	lw.DiffSeg = cfg.Pens.CrossingDiff
	lw.Splitting = cfg.Pens.Splitting

	lineRes := lineorder.Optimize(result.Comb, optModeOf(cfg.OptMode), lw,
		ilpsolve.Preference{Wish: cfg.ILPSolver}, cfg.ILPTimeLimit)

	if cfg.WriteStats {
		reporter := statsreport.New()
		reporter.Observe(result, lineRes.ILPFallbacks)
		dump, err := reporter.Dump()
		if err == nil {
			fmt.Fprint(os.Stderr, dump)
		}
	}

	if len(result.Unrouted) > 0 || lineRes.ILPFallbacks > 0 {
		logger := obslog.New()
		ctx := context.Background()
		for _, u := range result.Unrouted {
			logger.NoPath(ctx, int(u.Edge))
		}
		if lineRes.ILPFallbacks > 0 {
			logger.ILPFallback(ctx, 0, "no ilp solver registered")
		}
		fmt.Fprintf(os.Stderr, "status: %d ilp fallbacks; %s\n",
			lineRes.ILPFallbacks, result.UnroutedErr())
	}

	if err := iocodec.WriteGeoJSON(out, result.Comb, lineRes.Config); err != nil {
		fmt.Fprintf(os.Stderr, "error writing geojson: %s\n", err)
		return 1
	}

	return 0
}

func optModeOf(m config.OptMode) lineorder.Mode {
	switch m {
	case config.OptNull:
		return lineorder.Null
	case config.OptExh:
		return lineorder.Exhaustive
	case config.OptILP:
		return lineorder.ILP
	default:
		return lineorder.Auto
	}
}
