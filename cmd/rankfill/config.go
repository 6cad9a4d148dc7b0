// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/rankfill/dataset"
	"github.com/katalvlaran/rankfill/softimpute"
)

// Config binds the file-configurable parts of the pipeline. Precedence is
// flags > file > defaults; flags are applied by the commands after load.
type Config struct {
	Filter FilterConfig `yaml:"filter"`
	Solver SolverConfig `yaml:"solver"`
	Output OutputConfig `yaml:"output"`
}

// FilterConfig mirrors dataset.Rules in file form.
type FilterConfig struct {
	// Events whitelists event names; empty admits all.
	Events []string `yaml:"events"`

	// NotBefore drops older observations; 2006-01-02 layout, empty
	// disables the window.
	NotBefore string `yaml:"not_before"`

	MinEventsPerCompetitor int `yaml:"min_events_per_competitor"`
	MinCompetitorsPerEvent int `yaml:"min_competitors_per_event"`
}

// SolverConfig mirrors softimpute.Options in file form.
type SolverConfig struct {
	MaxRank         int     `yaml:"max_rank"`
	MaxIterations   int     `yaml:"max_iterations"`
	Tolerance       float64 `yaml:"tolerance"`
	GridSize        int     `yaml:"grid_size"`
	LambdaFloor     float64 `yaml:"lambda_floor"`
	FinalLambda     float64 `yaml:"final_lambda"`
	RankEpsilon     float64 `yaml:"rank_epsilon"`
	HoldoutFraction float64 `yaml:"holdout_fraction"`
	Seed            int64   `yaml:"seed"`
	Workers         int     `yaml:"workers"`
}

// OutputConfig controls export shape.
type OutputConfig struct {
	// OriginalUnits inverts the standardization before exporting the
	// completed matrix. Off by default: standardized units are the model's
	// native scale.
	OriginalUnits bool `yaml:"original_units"`
}

// DefaultConfig mirrors the library defaults with no filtering.
func DefaultConfig() Config {
	o := softimpute.DefaultOptions()

	return Config{
		Solver: SolverConfig{
			MaxRank:         o.MaxRank,
			MaxIterations:   o.MaxIterations,
			Tolerance:       o.Tolerance,
			GridSize:        o.GridSize,
			LambdaFloor:     o.LambdaFloor,
			FinalLambda:     o.FinalLambda,
			RankEpsilon:     o.RankEpsilon,
			HoldoutFraction: o.HoldoutFraction,
			Seed:            o.Seed,
			Workers:         o.Workers,
		},
	}
}

// LoadConfig reads defaults and overlays the YAML file when a path is
// given. An explicitly named file must exist; deeper validation is left to
// the packages that consume each section, which report precise sentinels.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

// options converts the solver section to library options.
func (c SolverConfig) options() softimpute.Options {
	return softimpute.Options{
		MaxRank:         c.MaxRank,
		MaxIterations:   c.MaxIterations,
		Tolerance:       c.Tolerance,
		GridSize:        c.GridSize,
		LambdaFloor:     c.LambdaFloor,
		FinalLambda:     c.FinalLambda,
		RankEpsilon:     c.RankEpsilon,
		HoldoutFraction: c.HoldoutFraction,
		Seed:            c.Seed,
		Workers:         c.Workers,
	}
}

// rules converts the filter section to dataset rules, attaching the logger.
func (c FilterConfig) rules(logger *logrus.Entry) (dataset.Rules, error) {
	r := dataset.Rules{
		Events:                 c.Events,
		MinEventsPerCompetitor: c.MinEventsPerCompetitor,
		MinCompetitorsPerEvent: c.MinCompetitorsPerEvent,
		Logger:                 logger,
	}

	if c.NotBefore != "" {
		cutoff, err := time.Parse("2006-01-02", c.NotBefore)
		if err != nil {
			return r, fmt.Errorf("filter.not_before %q: %w", c.NotBefore, err)
		}
		r.NotBefore = cutoff
	}

	return r, nil
}
