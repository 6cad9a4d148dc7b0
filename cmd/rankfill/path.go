// SPDX-License-Identifier: MIT

package main

import (
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/rankfill/holdout"
	"github.com/katalvlaran/rankfill/matrix"
	"github.com/katalvlaran/rankfill/report"
	"github.com/katalvlaran/rankfill/softimpute"
	"github.com/katalvlaran/rankfill/zscore"
)

// pathOptions carries the path command's flag values.
type pathOptions struct {
	root *rootOptions

	input      string
	curveOut   string
	jsonOut    string
	configPath string

	seed            int64
	workers         int
	holdoutFraction float64
	gridSize        int
}

// newPathCommand builds the sweep-only command: run model selection over the
// λ-grid and print the curve, without the final refit or matrix export.
func newPathCommand(root *rootOptions) *cobra.Command {
	opts := &pathOptions{root: root}

	cmd := &cobra.Command{
		Use:   "path",
		Short: "Sweep the lambda grid and print the selection curve",
		Long: `Path runs ingestion, standardization, the holdout split and the λ-grid
sweep, then prints the (lambda, rmse, rank) curve as CSV. No final refit, no
completed matrix. Use it to inspect how shrinkage trades rank against
held-out error before committing to a full run.

Examples:
  rankfill path --input scores.csv
  rankfill path --input scores.csv --grid-size 25 --curve curve.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPath(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.input, "input", "", "CSV of competitor,event,score[,date] records (required)")
	_ = cmd.MarkFlagRequired("input")
	cmd.Flags().StringVar(&opts.curveOut, "curve", "", "write the curve CSV here (default stdout)")
	cmd.Flags().StringVar(&opts.jsonOut, "json", "", "write the sweep diagnostics JSON here")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "YAML file with filter rules and solver options")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "seed for the holdout split")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "concurrent lambda trials (0 = sequential)")
	cmd.Flags().Float64Var(&opts.holdoutFraction, "holdout-fraction", 0, "share of observed cells held out for selection")
	cmd.Flags().IntVar(&opts.gridSize, "grid-size", 0, "number of lambda grid points")

	return cmd
}

func applyPathFlags(cmd *cobra.Command, opts *pathOptions, cfg *Config) {
	if cmd.Flags().Changed("seed") {
		cfg.Solver.Seed = opts.seed
	}
	if cmd.Flags().Changed("workers") {
		cfg.Solver.Workers = opts.workers
	}
	if cmd.Flags().Changed("holdout-fraction") {
		cfg.Solver.HoldoutFraction = opts.holdoutFraction
	}
	if cmd.Flags().Changed("grid-size") {
		cfg.Solver.GridSize = opts.gridSize
	}
}

func runPath(cmd *cobra.Command, opts *pathOptions) error {
	logger := newLogger(opts.root, "path")

	cfg, err := LoadConfig(opts.configPath)
	if err != nil {
		return err
	}
	applyPathFlags(cmd, opts, &cfg)

	table, err := loadTable(logger, opts.input, cfg.Filter)
	if err != nil {
		return err
	}
	if err = matrix.ValidateCoverage(table.Matrix); err != nil {
		return err
	}

	solver := cfg.Solver.options()

	// Same staging as a full run, stopped after selection.
	z, _, err := zscore.Standardize(table.Matrix)
	if err != nil {
		return err
	}
	train, held, err := holdout.Split(z, solver.HoldoutFraction, holdout.NewRNG(solver.Seed))
	if err != nil {
		return err
	}
	lambdaMax, err := softimpute.LambdaMax(z, train)
	if err != nil {
		return err
	}
	grid, err := softimpute.Grid(lambdaMax, solver.LambdaFloor, solver.GridSize)
	if err != nil {
		return err
	}
	path, err := softimpute.SelectRank(z, train, held, grid, solver)
	if err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{
		"lambda_max": lambdaMax,
		"lambda":     path.Best.Lambda,
		"rank":       path.Best.Rank,
		"rmse":       path.Best.RMSE,
	}).Info("path selected")

	diag := &report.Diagnostics{
		RunID:            uuid.New(),
		CreatedAt:        time.Now().UTC(),
		Rows:             table.Matrix.Rows(),
		Cols:             table.Matrix.Cols(),
		ObservedFraction: float64(table.Matrix.ObservedCount()) / float64(table.Matrix.Rows()*table.Matrix.Cols()),
		HeldOut:          len(held),
		Seed:             solver.Seed,
		LambdaMax:        lambdaMax,
		Lambda:           path.Best.Lambda,
		Rank:             path.Best.Rank,
		RMSE:             path.Best.RMSE,
		Converged:        path.Best.Converged,
		Curve:            report.CurveFromTrials(path.Trials),
	}

	if opts.jsonOut != "" {
		if err = writeTo(opts.jsonOut, cmd.OutOrStdout(), diag.WriteJSON); err != nil {
			return err
		}
	}

	return writeTo(opts.curveOut, cmd.OutOrStdout(), diag.WriteCurveCSV)
}
