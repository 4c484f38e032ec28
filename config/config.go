// Package config defines the CLI/file configuration surface: grid
// size, optimization mode, ILP solver preference, penalty weights and
// the other knobs enumerated in the specification's external-interface
// section. Values load from YAML (gopkg.in/yaml.v3, mirroring the
// pack's other config-file consumers) and may be overridden by flags
// parsed with spf13/pflag, matching the rest of the retrieved corpus's
// CLI convention rather than the teacher's own bare stdlib flag usage.
package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/linegrid/octilayout/option"
)

// OptMode selects the line-order optimizer's dispatch policy.
type OptMode string

const (
	OptNull OptMode = "null"
	OptExh  OptMode = "exhaust"
	OptILP  OptMode = "ilp"
	OptComb OptMode = "comb" // per-component automatic dispatch (the default)
)

// BaseGraphType selects a grid graph variant.
type BaseGraphType string

const (
	BaseOcti8 BaseGraphType = "octi-8" // 8 canonical directions, this module's only implemented variant
	BaseOcti4 BaseGraphType = "octi-4"
	BaseOcti5 BaseGraphType = "octi-5"
	BaseHex   BaseGraphType = "hex"
)

// Penalties holds the weighted cost contributions used across the
// cost model and line-order optimizer.
type Penalties struct {
	Bend         float64 `yaml:"bend"`
	CrossingSame float64 `yaml:"crossing_same_seg"`
	CrossingDiff float64 `yaml:"crossing_diff_seg"`
	Splitting    float64 `yaml:"splitting"`
	Movement     float64 `yaml:"movement"`
}

// DefaultPenalties returns the module's default penalty weights.
func DefaultPenalties() Penalties {
	return Penalties{
		Bend:         1,
		CrossingSame: 100,
		CrossingDiff: 150,
		Splitting:    50,
		Movement:     50,
	}
}

// Config is the full set of fields controlling a layout run.
type Config struct {
	GridSize      float64       `yaml:"grid_size"`
	BorderRadius  float64       `yaml:"border_radius"`
	PrintMode     string        `yaml:"print_mode"`
	OptMode       OptMode       `yaml:"opt_mode"`
	ILPSolver     string        `yaml:"ilp_solver"`
	ILPTimeLimit  time.Duration `yaml:"ilp_time_limit"`
	ILPCacheDir   string        `yaml:"ilp_cache_dir"`
	ObstaclePath  string         `yaml:"obstacle_path"`
	MaxGrDist     option.Float64 `yaml:"max_gr_dist"`
	AbortAfter    int            `yaml:"abort_after"`
	HananIters    int           `yaml:"hanan_iters"`
	WriteStats    bool          `yaml:"write_stats"`
	BaseGraphType BaseGraphType `yaml:"base_graph_type"`
	Pens          Penalties     `yaml:"penalties"`
}

// Default returns the module's baseline configuration.
func Default() Config {
	return Config{
		GridSize:      100,
		BorderRadius:  0,
		PrintMode:     "geojson",
		OptMode:       OptComb,
		ILPSolver:     "",
		ILPTimeLimit:  30 * time.Second,
		ILPCacheDir:   "",
		AbortAfter:    0,
		HananIters:    0,
		WriteStats:    false,
		BaseGraphType: BaseOcti8,
		Pens:          DefaultPenalties(),
	}
}

// Load reads and parses a YAML configuration file, starting from
// Default() so unset fields keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes cfg to path as YAML.
func Save(cfg Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
