// Package config loads the TOML run descriptor the register-placer CLI
// accepts as an alternative to positional arguments: dataset root,
// scorecard directory, assigner choice and an optional target-period
// override.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Assigner names the latency-assignment strategy a Run should use.
// The zero value and AssignerBoth both mean "run ASAP and Greedy and
// keep the better per evaluate.IsBetter" — the default §6 mandates;
// naming a single strategy is an explicit opt-out for callers who only
// want one and don't need the comparison.
type Assigner string

const (
	AssignerBoth   Assigner = "both"
	AssignerASAP   Assigner = "asap"
	AssignerGreedy Assigner = "greedy"
)

// RunsBoth reports whether a Run should evaluate both strategies.
func (a Assigner) RunsBoth() bool {
	return a == "" || a == AssignerBoth
}

// ErrMissingDatasetRoot is returned when a run descriptor omits the
// dataset root, which every run needs to discover anything to solve.
var ErrMissingDatasetRoot = errors.New("config: dataset_root is required")

// Run is one CLI invocation's worth of configuration, whether it came
// from a TOML file or was assembled from flags.
type Run struct {
	DatasetRoot    string   `toml:"dataset_root"`
	ScorecardDir   string   `toml:"scorecard_dir"`
	Assigner       Assigner `toml:"assigner"`
	TargetPeriodPS int64    `toml:"target_period_ps"`
	DotDir         string   `toml:"dot_dir"`
	Render         bool     `toml:"render"`
	RedisAddr      string   `toml:"redis_addr"`
}

// Load reads and validates a Run from the TOML file at path.
func Load(path string) (*Run, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var r Run
	if err := toml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return &r, r.Validate()
}

// Validate reports whether r has enough information to run.
func (r *Run) Validate() error {
	if r.DatasetRoot == "" {
		return ErrMissingDatasetRoot
	}

	return nil
}
